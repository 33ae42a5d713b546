package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/clients"
	"hotelreserve/internal/config"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/toolbox"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
)

func main() {
	cfg, err := config.Load("toolbox")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("toolbox")
	defer logg.Sync()

	// no JWT secret here, tokens are verified through the auth service
	authClient := clients.NewAuthClient(cfg.AuthURL)

	service := toolbox.NewService()
	handler := toolbox.NewHandler(service, middleware.RemoteAuth(authClient))

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"service": "toolbox", "status": "up"})
	})

	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
