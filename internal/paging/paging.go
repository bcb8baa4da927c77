// Package paging describes page requests and page results shared by the
// service and repository layers.
package paging

import (
	"fmt"
	"math"
	"strings"

	"giftcertificates/backend/internal/apperror"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and everything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders results by one API field.
type Sort struct {
	Field     string
	Direction Direction
}

// ParseSort parses "field" or "field,dir".
func ParseSort(s string) Sort {
	field, dir, _ := strings.Cut(s, ",")
	return Sort{Field: strings.TrimSpace(field), Direction: ParseDirection(dir)}
}

// Pageable is a zero-based page request.
type Pageable struct {
	Page int
	Size int
	Sort []Sort
}

// New clamps page and size into their valid ranges.
func New(page, size int, sort ...Sort) Pageable {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Unpaged returns the first page of the largest allowed size.
func Unpaged() Pageable {
	return New(0, MaxSize)
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing, so huge page numbers still land past the last row.
func (p Pageable) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Columns maps sortable API field names to column expressions.
type Columns map[string]string

// Validate rejects sort fields that are not in c, one message per field.
func (c Columns) Validate(p Pageable) error {
	var messages []string
	for _, s := range p.Sort {
		if _, ok := c[s.Field]; !ok {
			messages = append(messages, fmt.Sprintf("cannot sort by field [%s]", s.Field))
		}
	}
	if len(messages) > 0 {
		return apperror.Validation(messages...)
	}
	return nil
}

// OrderBy renders the ORDER BY expressions for p. Unknown fields are skipped;
// callers validate first. The id column always closes the ordering so pages
// are stable.
func (c Columns) OrderBy(p Pageable) []string {
	exprs := make([]string, 0, len(p.Sort)+1)
	idSorted := false
	for _, s := range p.Sort {
		column, ok := c[s.Field]
		if !ok {
			continue
		}
		if s.Field == "id" {
			idSorted = true
		}
		exprs = append(exprs, column+" "+strings.ToUpper(string(s.Direction)))
	}
	if id, ok := c["id"]; ok && !idSorted {
		exprs = append(exprs, id+" ASC")
	}
	return exprs
}

// Page is one slice of a result set plus the request that produced it.
type Page[T any] struct {
	Content    []T
	TotalItems int64
	Page       int
	Size       int
}

// TotalPages returns the number of pages for TotalItems at Size.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

// Map converts the content of a page, keeping its metadata.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return Page[R]{Content: out, TotalItems: p.TotalItems, Page: p.Page, Size: p.Size}
}
