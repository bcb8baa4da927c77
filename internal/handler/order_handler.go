package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/service"
)

// region --- DTOs ---

// OrderRequest is the body of an order request.
type OrderRequest struct {
	UserID            uint `json:"userId" binding:"required" example:"1"`
	GiftCertificateID uint `json:"giftCertificateId" binding:"required" example:"1"`
}

// OrderResponse is the public view of an order. Price is the certificate
// price at the moment the order was placed.
type OrderResponse struct {
	ID              uint                    `json:"id" example:"1"`
	Price           decimal.Decimal         `json:"price" swaggertype:"number" example:"99.90"`
	Date            time.Time               `json:"date"`
	User            UserResponse            `json:"user"`
	GiftCertificate GiftCertificateResponse `json:"giftCertificate"`
}

// PaginatedOrderResponse documents a page of orders.
type PaginatedOrderResponse struct {
	Data []OrderResponse `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}

func newOrderResponse(order models.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		Price:           order.Price,
		Date:            order.Date,
		User:            newUserResponse(order.User),
		GiftCertificate: newGiftCertificateResponse(order.GiftCertificate),
	}
}

// endregion

// OrderHandler serves the /orders endpoints.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new OrderHandler instance.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetOrders godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        price  query     number  false  "Exact price"
// @Param        page   query     int     false  "Zero-based page number" default(0)
// @Param        size   query     int     false  "Items per page" default(20)
// @Param        sort   query     []string false "Sort as field[,asc|desc]; fields: id, price, date" collectionFormat(multi)
// @Success      200  {object}  PaginatedOrderResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	price, err := queryDecimal(c, "price")
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.orders.FindAll(c.Request.Context(), repository.OrderFilter{Price: price}, pageableFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(page, newOrderResponse))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Order not found"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}

// CreateOrder godoc
// @Summary      Place an order
// @Description  Orders a gift certificate for a user at the certificate's current price.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        input body OrderRequest true "Order"
// @Success      201  {object}  OrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User or gift certificate not found"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input OrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), input.UserID, input.GiftCertificateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order))
}
