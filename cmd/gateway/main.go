package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/config"
	"hotelreserve/internal/gateway"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load("gateway")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("gateway")
	defer logg.Sync()

	gw, err := gateway.New(cfg, logg)
	if err != nil {
		logg.Fatal("gateway init failed", zap.Error(err))
	}

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gw.Router(middleware.RequestLogger(logg), middleware.CORS())

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
