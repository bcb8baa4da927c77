package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/apperror"
	"giftcertificates/backend/internal/validation"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int      `json:"status" example:"404"`
	Type      string   `json:"type" example:"NOT_FOUND"`
	Messages  []string `json:"messages" example:"Tag with id = [999] not found"`
	Timestamp string   `json:"timestamp" example:"2024-03-01T12:00:00Z"`
}

const internalErrorMessage = "Internal server error"

// respondError writes err as an ErrorResponse. Errors without a client-facing
// meaning are attached to the context for the request logger and reported
// with a generic message.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()
	messages := appErr.Messages
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		messages = []string{internalErrorMessage}
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:    status,
		Type:      statusType(status),
		Messages:  messages,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondBindError reports a request body that could not be decoded or
// failed validation.
func respondBindError(c *gin.Context, err error) {
	respondError(c, validation.FromBindError(err))
}

// statusType renders e.g. 404 as "NOT_FOUND".
func statusType(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// region --- Request parameters ---

// parseID reads the :id path parameter. It responds with 400 and returns
// false when the parameter is not a positive integer in BIGINT range.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		respondError(c, apperror.Validation("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// queryString returns the query parameter key, or nil when it is absent.
func queryString(c *gin.Context, key string) *string {
	if value, ok := c.GetQuery(key); ok {
		return &value
	}
	return nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation(key + " must be an integer")
	}
	return &value, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation(key + " must be a decimal number")
	}
	return &value, nil
}

// endregion
