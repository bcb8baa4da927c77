package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	// Swagger imports
	_ "giftcertificates/backend/docs" // This is important for swag to find the generated docs

	"giftcertificates/backend/internal/config"
	"giftcertificates/backend/internal/database"
	"giftcertificates/backend/internal/handler"
	"giftcertificates/backend/internal/logging"
	"giftcertificates/backend/internal/metrics"
	"giftcertificates/backend/internal/middleware"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/routes"
	"giftcertificates/backend/internal/service"
	"giftcertificates/backend/internal/validation"
)

// @title           Gift Certificates API
// @version         1.0
// @description     Gift certificates, tags, users and their orders.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	entry := logger.WithField("component", "server")

	// Prices are written as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Connect(cfg.DatabaseURL, logger, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		SlowThreshold:   cfg.DBSlowThreshold,
	})
	if err != nil {
		entry.WithError(err).Fatal("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		entry.WithError(err).Fatal("Failed to access connection pool")
	}
	defer sqlDB.Close()

	if cfg.MigrateOnStart {
		if err := database.Migrate(db, logger); err != nil {
			entry.WithError(err).Fatal("Failed to migrate database")
		}
	}

	if err := validation.RegisterWithGin(); err != nil {
		entry.WithError(err).Fatal("Failed to configure request validation")
	}

	// Initialize repositories
	tx := repository.NewTransactor(db)
	tagRepo := repository.NewTagRepository(db)
	gcRepo := repository.NewGiftCertificateRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	tagService := service.NewTagService(tx, tagRepo)
	gcService := service.NewGiftCertificateService(tx, gcRepo, tagRepo)
	orderService := service.NewOrderService(tx, orderRepo, userRepo, gcRepo)
	userService := service.NewUserService(tx, userRepo, orderRepo)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		metrics.NewHTTPMetrics().Middleware(),
	)

	routes.Setup(router, routes.Handlers{
		Tags:             handler.NewTagHandler(tagService),
		GiftCertificates: handler.NewGiftCertificateHandler(gcService),
		Orders:           handler.NewOrderHandler(orderService),
		Users:            handler.NewUserHandler(userService),
		Health:           handler.NewHealthHandler(sqlDB),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		entry.WithField("addr", srv.Addr).Info("Server is running")
		entry.Infof("Swagger UI is available at http://localhost%s/swagger/index.html", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.WithError(err).Error("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	entry.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		entry.WithError(err).Warn("Server shutdown with error")
	}
}
