package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/optional"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/service"
)

// region --- DTOs ---

// GiftCertificateRequest is the body of a create request.
type GiftCertificateRequest struct {
	Name        string           `json:"name" binding:"required,max=255" example:"Spa day"`
	Description string           `json:"description" binding:"required" example:"A full day in the spa"`
	Price       *decimal.Decimal `json:"price" binding:"required,gte=0.01" swaggertype:"number" example:"99.90"`
	Duration    *int             `json:"duration" binding:"required,gte=1" example:"30"`
	Tags        []TagRequest     `json:"tags" binding:"omitempty,dive"`
}

// GiftCertificateUpdateRequest is the body of a partial update. Omitted or
// null fields are left unchanged; a present tags list replaces all tags.
type GiftCertificateUpdateRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255" example:"Spa weekend"`
	Description *string          `json:"description" binding:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gte=0.01" swaggertype:"number" example:"149.90"`
	Duration    *int             `json:"duration" binding:"omitempty,gte=1" example:"60"`
	Tags        []TagRequest     `json:"tags" binding:"omitempty,dive"`
}

// GiftCertificateResponse is the public view of a gift certificate.
type GiftCertificateResponse struct {
	ID             uint            `json:"id" example:"1"`
	Name           string          `json:"name" example:"Spa day"`
	Description    string          `json:"description" example:"A full day in the spa"`
	Price          decimal.Decimal `json:"price" swaggertype:"number" example:"99.90"`
	Duration       int             `json:"duration" example:"30"`
	CreateDate     time.Time       `json:"createDate"`
	LastUpdateDate time.Time       `json:"lastUpdateDate"`
	Tags           []TagResponse   `json:"tags"`
}

// PaginatedGiftCertificateResponse documents a page of gift certificates.
type PaginatedGiftCertificateResponse struct {
	Data []GiftCertificateResponse `json:"data"`
	Meta PaginationMeta            `json:"meta"`
}

func newGiftCertificateResponse(gc models.GiftCertificate) GiftCertificateResponse {
	tags := make([]TagResponse, len(gc.Tags))
	for i, tag := range gc.Tags {
		tags[i] = newTagResponse(tag)
	}
	return GiftCertificateResponse{
		ID:             gc.ID,
		Name:           gc.Name,
		Description:    gc.Description,
		Price:          gc.Price,
		Duration:       gc.Duration,
		CreateDate:     gc.CreateDate,
		LastUpdateDate: gc.LastUpdateDate,
		Tags:           tags,
	}
}

func tagNames(tags []TagRequest) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func (r GiftCertificateRequest) toNew() service.NewGiftCertificate {
	return service.NewGiftCertificate{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Duration:    *r.Duration,
		TagNames:    tagNames(r.Tags),
	}
}

func (r GiftCertificateUpdateRequest) toPatch() service.GiftCertificatePatch {
	patch := service.GiftCertificatePatch{
		Name:        optional.FromPtr(r.Name),
		Description: optional.FromPtr(r.Description),
		Price:       optional.FromPtr(r.Price),
		Duration:    optional.FromPtr(r.Duration),
	}
	if r.Tags != nil {
		patch.TagNames = optional.Of(tagNames(r.Tags))
	}
	return patch
}

// endregion

// GiftCertificateHandler serves the /gift-certificates endpoints.
type GiftCertificateHandler struct {
	certificates service.GiftCertificateService
}

// NewGiftCertificateHandler creates a new GiftCertificateHandler instance.
func NewGiftCertificateHandler(certificates service.GiftCertificateService) *GiftCertificateHandler {
	return &GiftCertificateHandler{certificates: certificates}
}

// GetGiftCertificates godoc
// @Summary      List gift certificates
// @Description  With tagName, lists certificates carrying exactly that tag. Otherwise with part, lists certificates whose name or description contains it. Otherwise with sortBy, lists all certificates sorted by that field. Otherwise filters by the name, description, price and duration parameters.
// @Tags         gift-certificates
// @Produce      json
// @Param        tagName      query  string  false  "Exact tag name"
// @Param        part         query  string  false  "Part of the name or description"
// @Param        sortBy       query  string  false  "Field to sort by" Enums(id, name, description, price, duration, createDate, lastUpdateDate)
// @Param        order        query  string  false  "Sort direction for sortBy" Enums(asc, desc)
// @Param        name         query  string  false  "Part of the name"
// @Param        description  query  string  false  "Part of the description"
// @Param        price        query  number  false  "Exact price"
// @Param        duration     query  int     false  "Exact duration in days"
// @Param        page         query  int     false  "Zero-based page number" default(0)
// @Param        size         query  int     false  "Items per page" default(20)
// @Param        sort         query  []string false "Sort as field[,asc|desc]" collectionFormat(multi)
// @Success      200  {object}  PaginatedGiftCertificateResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /gift-certificates [get]
func (h *GiftCertificateHandler) GetGiftCertificates(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageableFromQuery(c)

	var (
		page paging.Page[models.GiftCertificate]
		err  error
	)
	if tagName, ok := c.GetQuery("tagName"); ok {
		page, err = h.certificates.FindAllByTagName(ctx, tagName, p)
	} else if part, ok := c.GetQuery("part"); ok {
		page, err = h.certificates.FindAllByPartNameOrDescription(ctx, part, p)
	} else if sortBy, ok := c.GetQuery("sortBy"); ok {
		page, err = h.certificates.FindAllSortedBy(ctx, sortBy, c.Query("order"), p)
	} else {
		var filter repository.GiftCertificateFilter
		if filter, err = giftCertificateFilterFromQuery(c); err == nil {
			page, err = h.certificates.FindAll(ctx, filter, p)
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(page, newGiftCertificateResponse))
}

func giftCertificateFilterFromQuery(c *gin.Context) (repository.GiftCertificateFilter, error) {
	filter := repository.GiftCertificateFilter{
		Name:        queryString(c, "name"),
		Description: queryString(c, "description"),
	}
	var err error
	if filter.Price, err = queryDecimal(c, "price"); err != nil {
		return filter, err
	}
	if filter.Duration, err = queryInt(c, "duration"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetGiftCertificate godoc
// @Summary      Get a gift certificate
// @Tags         gift-certificates
// @Produce      json
// @Param        id   path      int  true  "Gift certificate ID"
// @Success      200  {object}  GiftCertificateResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Gift certificate not found"
// @Router       /gift-certificates/{id} [get]
func (h *GiftCertificateHandler) GetGiftCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	gc, err := h.certificates.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGiftCertificateResponse(*gc))
}

// CreateGiftCertificate godoc
// @Summary      Create a gift certificate
// @Description  Tags are given by name; unknown names are created.
// @Tags         gift-certificates
// @Accept       json
// @Produce      json
// @Param        input body GiftCertificateRequest true "Gift certificate"
// @Success      201  {object}  GiftCertificateResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /gift-certificates [post]
func (h *GiftCertificateHandler) CreateGiftCertificate(c *gin.Context) {
	var input GiftCertificateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	gc, err := h.certificates.Create(c.Request.Context(), input.toNew())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGiftCertificateResponse(*gc))
}

// UpdateGiftCertificate godoc
// @Summary      Update a gift certificate
// @Description  Only the fields present in the body change.
// @Tags         gift-certificates
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Gift certificate ID"
// @Param        input body GiftCertificateUpdateRequest true "Fields to change"
// @Success      200  {object}  GiftCertificateResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Gift certificate not found"
// @Router       /gift-certificates/{id} [put]
func (h *GiftCertificateHandler) UpdateGiftCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input GiftCertificateUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	gc, err := h.certificates.Update(c.Request.Context(), id, input.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGiftCertificateResponse(*gc))
}

// DeleteGiftCertificate godoc
// @Summary      Delete a gift certificate
// @Tags         gift-certificates
// @Param        id   path      int  true  "Gift certificate ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Gift certificate not found"
// @Router       /gift-certificates/{id} [delete]
func (h *GiftCertificateHandler) DeleteGiftCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.certificates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
