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
	"hotelreserve/internal/modules/booking"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"
)

func main() {
	cfg, err := config.Load("booking")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("booking")
	defer logg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connect failed", zap.Error(err))
	}

	reservationRepo := repository.NewReservationRepository(db)
	inventoryClient := clients.NewInventoryClient(cfg.InventoryURL, cfg.InternalToken)

	// reservations still work without the broker, events just stay local
	var publisher booking.EventPublisher
	if pub, err := events.NewPublisher(cfg.RabbitURL, logg); err != nil {
		logg.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
	} else {
		defer pub.Close()
		publisher = pub
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	service := booking.NewService(reservationRepo, inventoryClient, publisher, logg)
	handler := booking.NewHandler(service, j, cfg.InternalToken)

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"service": "booking", "status": "up"})
	})

	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)
	handler.RegisterInternalRoutes(r)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
