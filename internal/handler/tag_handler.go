package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/service"
)

// region --- DTOs ---

// TagRequest is the body of tag create and update requests.
type TagRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"beauty"`
}

// TagResponse is the public view of a tag.
type TagResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"beauty"`
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}

// endregion

// TagHandler serves the /tags endpoints.
type TagHandler struct {
	tags service.TagService
}

// NewTagHandler creates a new TagHandler instance.
func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// GetTags godoc
// @Summary      List tags
// @Description  Lists tags whose name contains the given text, ignoring case.
// @Tags         tags
// @Produce      json
// @Param        name  query     string  false  "Part of the tag name"
// @Param        page  query     int     false  "Zero-based page number" default(0)
// @Param        size  query     int     false  "Items per page" default(20)
// @Param        sort  query     []string false "Sort as field[,asc|desc]; fields: id, name" collectionFormat(multi)
// @Success      200  {object}  PaginatedTagResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	filter := repository.TagFilter{Name: queryString(c, "name")}

	page, err := h.tags.FindAll(c.Request.Context(), filter, pageableFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(page, newTagResponse))
}

// GetTag godoc
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tag, err := h.tags.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTagResponse(*tag))
}

// GetMostWidelyUsedTag godoc
// @Summary      Most widely used tag of the top customer
// @Description  Finds the user whose orders cost the most in total and returns the tag found most often on the certificates they ordered.
// @Tags         tags
// @Produce      json
// @Success      200  {object}  TagResponse
// @Failure      404  {object}  ErrorResponse "No orders yet"
// @Router       /tags/most-widely-used [get]
func (h *TagHandler) GetMostWidelyUsedTag(c *gin.Context) {
	tag, err := h.tags.FindMostWidelyUsed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTagResponse(*tag))
}

// CreateTag godoc
// @Summary      Create a new tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        input body TagRequest true "Tag Info"
// @Success      201  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Tag already exists"
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var input TagRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTagResponse(*tag))
}

// UpdateTag godoc
// @Summary      Rename a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id   path      int      true  "Tag ID"
// @Param        input body TagRequest true "New Tag Info"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Failure      409  {object}  ErrorResponse "Name taken by another tag"
// @Router       /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input TagRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tags.Update(c.Request.Context(), id, input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTagResponse(*tag))
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Deletes a tag and detaches it from every gift certificate.
// @Tags         tags
// @Param        id   path      int  true  "Tag ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PaginatedTagResponse documents a page of tags.
type PaginatedTagResponse struct {
	Data []TagResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
