package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/service"
)

// region --- DTOs ---

// UserRequest defines the structure for user registration.
type UserRequest struct {
	Username  string `json:"username" binding:"required,max=255" example:"jdoe"`
	FirstName string `json:"firstName" binding:"required,max=255" example:"John"`
	LastName  string `json:"lastName" binding:"required,max=255" example:"Doe"`
	Email     string `json:"email" binding:"required,email,max=255" example:"jdoe@example.com"`
}

// UserResponse defines the structure for a user's profile.
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"jdoe"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" example:"jdoe@example.com"`
}

// PaginatedUserResponse defines the structure for a paginated list of users.
type PaginatedUserResponse struct {
	Data []UserResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// endregion

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUsers godoc
// @Summary      List users
// @Description  String filters match parts of the field, ignoring case.
// @Tags         users
// @Produce      json
// @Param        username   query  string  false  "Part of the username"
// @Param        firstName  query  string  false  "Part of the first name"
// @Param        lastName   query  string  false  "Part of the last name"
// @Param        email      query  string  false  "Part of the email"
// @Param        page       query  int     false  "Zero-based page number" default(0)
// @Param        size       query  int     false  "Items per page" default(20)
// @Param        sort       query  []string false "Sort as field[,asc|desc]" collectionFormat(multi)
// @Success      200  {object}  PaginatedUserResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Username:  queryString(c, "username"),
		FirstName: queryString(c, "firstName"),
		LastName:  queryString(c, "lastName"),
		Email:     queryString(c, "email"),
	}

	page, err := h.users.FindAll(c.Request.Context(), filter, pageableFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(page, newUserResponse))
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// GetUserOrders godoc
// @Summary      List the orders of a user
// @Tags         users
// @Produce      json
// @Param        id    path   int  true   "User ID"
// @Param        page  query  int  false  "Zero-based page number" default(0)
// @Param        size  query  int  false  "Items per page" default(20)
// @Param        sort  query  []string false "Sort as field[,asc|desc]; fields: id, price, date" collectionFormat(multi)
// @Success      200  {object}  PaginatedOrderResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{id}/orders [get]
func (h *UserHandler) GetUserOrders(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.users.FindOrdersByUserID(c.Request.Context(), id, pageableFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(page, newOrderResponse))
}

// CreateUser godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UserRequest true "User Info"
// @Success      201  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username or email already taken"
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input UserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := &models.User{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(*user))
}
