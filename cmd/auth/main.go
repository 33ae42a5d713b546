package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/config"
	"hotelreserve/internal/database"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/auth"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"
)

func main() {
	cfg, err := config.Load("auth")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("auth")
	defer logg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connect failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, j)

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"service": "auth", "status": "up"})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
