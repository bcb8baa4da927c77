// Package routes defines HTTP routes for the gift certificate API.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"giftcertificates/backend/internal/handler"
)

// Handlers groups the handlers mounted by Setup.
type Handlers struct {
	Tags             *handler.TagHandler
	GiftCertificates *handler.GiftCertificateHandler
	Orders           *handler.OrderHandler
	Users            *handler.UserHandler
	Health           *handler.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers) {
	// Operational endpoints
	router.GET("/ping", h.Health.Ping)
	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		tags := apiV1.Group("/tags")
		{
			tags.GET("", h.Tags.GetTags)
			tags.GET("/most-widely-used", h.Tags.GetMostWidelyUsedTag) // Must be before /:id
			tags.GET("/:id", h.Tags.GetTag)
			tags.POST("", h.Tags.CreateTag)
			tags.PUT("/:id", h.Tags.UpdateTag)
			tags.DELETE("/:id", h.Tags.DeleteTag)
		}

		certificates := apiV1.Group("/gift-certificates")
		{
			certificates.GET("", h.GiftCertificates.GetGiftCertificates)
			certificates.GET("/:id", h.GiftCertificates.GetGiftCertificate)
			certificates.POST("", h.GiftCertificates.CreateGiftCertificate)
			certificates.PUT("/:id", h.GiftCertificates.UpdateGiftCertificate)
			certificates.DELETE("/:id", h.GiftCertificates.DeleteGiftCertificate)
		}

		orders := apiV1.Group("/orders")
		{
			orders.GET("", h.Orders.GetOrders)
			orders.GET("/:id", h.Orders.GetOrder)
			orders.POST("", h.Orders.CreateOrder)
		}

		users := apiV1.Group("/users")
		{
			users.GET("", h.Users.GetUsers)
			users.GET("/:id", h.Users.GetUser)
			users.GET("/:id/orders", h.Users.GetUserOrders)
			users.POST("", h.Users.CreateUser)
		}
	}
}
