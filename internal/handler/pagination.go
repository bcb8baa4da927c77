package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"giftcertificates/backend/internal/paging"
)

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse converts a page of entities into its response form.
func NewPaginatedResponse[T, R any](page paging.Page[T], convert func(T) R) PaginatedResponse[R] {
	converted := paging.Map(page, convert)
	return PaginatedResponse[R]{
		Data: converted.Content,
		Meta: PaginationMeta{
			TotalItems:  page.TotalItems,
			TotalPages:  page.TotalPages(),
			CurrentPage: page.Page,
			PageSize:    page.Size,
		},
	}
}

// pageableFromQuery reads page, size and the repeatable sort parameter.
// Malformed numbers fall back to the defaults.
func pageableFromQuery(c *gin.Context) paging.Pageable {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		page = 0
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(paging.DefaultSize)))
	if err != nil {
		size = paging.DefaultSize
	}

	var sorts []paging.Sort
	for _, raw := range c.QueryArray("sort") {
		if raw == "" {
			continue
		}
		sorts = append(sorts, paging.ParseSort(raw))
	}
	return paging.New(page, size, sorts...)
}
