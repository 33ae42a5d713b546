package booking

import (
	"net/http"
	"strconv"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service       *Service
	jwt           *jwt.Service
	internalToken string
}

func NewHandler(service *Service, jwtService *jwt.Service, internalToken string) *Handler {
	return &Handler{service: service, jwt: jwtService, internalToken: internalToken}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.Auth(h.jwt))
	{
		reservations.POST("", h.Create)
		reservations.GET("", h.List)
		reservations.GET("/:id", h.Get)
		reservations.GET("/confirmation/:code", h.GetByConfirmation)
		reservations.PUT("/:id", h.Update)
		reservations.POST("/:id/cancel", h.Cancel)
	}
}

// RegisterInternalRoutes wires the endpoints the payment service calls.
func (h *Handler) RegisterInternalRoutes(r *gin.Engine) {
	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth(h.internalToken))
	{
		internal.GET("/reservations/:id", h.InternalGet)
		internal.PUT("/reservations/:id/status", h.InternalSetStatus)
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not allowed")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data")
	case ErrPastCheckIn:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Check-in date must be in the future")
	case ErrCapacityExceeded:
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", "Guest count exceeds room capacity")
	case ErrNotAvailable:
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "Room is not available for the selected dates")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Reservation status does not allow this operation")
	case ErrAlreadyStarted:
		response.Error(c, http.StatusConflict, "ALREADY_STARTED", "Stay has already started")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.service.List(
		c.Request.Context(),
		c.GetInt64("user_id"),
		c.GetString("role"),
		c.Query("status"),
		limit,
		offset,
	)
	if err != nil {
		h.writeError(c, err, "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) GetByConfirmation(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing confirmation code")
		return
	}

	res, err := h.service.GetByConfirmationCode(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}

	// the confirmation code itself is the credential here
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) InternalGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id, 0, string(domain.RoleAdmin))
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

type internalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) InternalSetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req internalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.SetStatus(c.Request.Context(), id, domain.ReservationStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Failed to update reservation status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}
