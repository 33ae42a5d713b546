package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/config"
	"hotelreserve/internal/database"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/inventory"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"
)

func main() {
	cfg, err := config.Load("inventory")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("inventory")
	defer logg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connect failed", zap.Error(err))
	}

	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	service := inventory.NewService(hotelRepo, roomRepo, availabilityRepo)
	handler := inventory.NewHandler(service, j, cfg.InternalToken)

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"service": "inventory", "status": "up"})
	})

	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)
	handler.RegisterInternalRoutes(r)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
