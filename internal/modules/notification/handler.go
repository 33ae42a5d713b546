package notification

import (
	"net/http"
	"strconv"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the web client's domain is fixed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
	log     *zap.Logger
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, log *zap.Logger) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwtService, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.Auth(h.jwt))
	{
		notifications.GET("", h.List)
		notifications.GET("/:id", h.Get)
		notifications.PUT("/:id/read", h.MarkRead)
		notifications.PUT("/read-all", h.MarkAllRead)
		notifications.POST("", middleware.AdminOnly(), h.Create)
		notifications.POST("/bulk", middleware.AdminOnly(), h.CreateBulk)
	}
}

// RegisterWSRoute exposes the websocket endpoint. Auth rides in the token
// query parameter because browsers cannot set headers on ws dials.
func (h *Handler) RegisterWSRoute(r *gin.Engine) {
	r.GET("/ws/notifications", h.handleWebSocket)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not allowed")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification data")
	case ErrUnsupportedType:
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Unsupported notification type")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	unreadOnly := c.Query("unread") == "true"

	result, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), unreadOnly, limit, offset)
	if err != nil {
		h.writeError(c, err, "Failed to list notifications")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	n, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err, "Failed to get notification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err, "Failed to mark notification as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": 1})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to mark notifications as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": count})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	n, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create notification")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}

func (h *Handler) CreateBulk(c *gin.Context) {
	var req BulkNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.CreateBulk(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to send notifications")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) handleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token query parameter")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := claims.UserID
	h.hub.Register(userID, conn)
	h.log.Info("websocket client connected", zap.Int64("user_id", userID))

	defer func() {
		h.hub.Unregister(userID)
		h.log.Info("websocket client disconnected", zap.Int64("user_id", userID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go h.pingLoop(conn)
	h.readLoop(conn, userID)
}

func (h *Handler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

// readLoop drains client frames until the connection drops. Clients only
// receive on this socket, so anything they send is ignored.
func (h *Handler) readLoop(conn *websocket.Conn, userID int64) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
			}
			return
		}
	}
}
