package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelreserve/internal/config"
	"hotelreserve/internal/database"
	"hotelreserve/internal/events"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/notification"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/logger"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"
)

func main() {
	cfg, err := config.Load("notification")
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New("notification")
	defer logg.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connect failed", zap.Error(err))
	}

	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	hub := notification.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	service := notification.NewService(
		notificationRepo,
		userRepo,
		notification.SendersByType(logg),
		hub,
		logg,
	)
	handler := notification.NewHandler(service, hub, j, logg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// event consumer runs beside the REST API; without the broker the
	// service still serves reads and direct sends
	if consumer, err := events.NewConsumer(cfg.RabbitURL, "notifications", notification.BindingKeys, logg); err != nil {
		logg.Warn("rabbitmq unavailable, event consumption disabled", zap.Error(err))
	} else {
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx, service.EventHandler()); err != nil && ctx.Err() == nil {
				logg.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	if cfg.AppEnv != "dev" && cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logg), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"service": "notification",
			"status":  "up",
			"ws_connections": hub.OnlineCount(),
		})
	})

	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)
	handler.RegisterWSRoute(r)

	logg.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
