package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/clients"
	"hotelreserve/internal/config"
	"hotelreserve/internal/database"
	"hotelreserve/internal/events"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/payment"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"
)

func main() {
	cfg, err := config.Load("payment")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("payment")
	defer logg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connect failed", zap.Error(err))
	}

	paymentRepo := repository.NewPaymentRepository(db)
	bookingClient := clients.NewBookingClient(cfg.BookingURL, cfg.InternalToken)

	var publisher payment.EventPublisher
	if pub, err := events.NewPublisher(cfg.RabbitURL, logg); err != nil {
		logg.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
	} else {
		defer pub.Close()
		publisher = pub
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	service := payment.NewService(paymentRepo, bookingClient, payment.ProcessorsByMethod(), publisher, logg)
	handler := payment.NewHandler(service, j)

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"service": "payment", "status": "up"})
	})

	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
