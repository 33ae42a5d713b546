package payment

import (
	"errors"
	"net/http"
	"strconv"

	"hotelreserve/internal/clients"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	jwt     *jwt.Service
}

func NewHandler(service *Service, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, jwt: jwtService}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.Auth(h.jwt))
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.POST("/:id/refund", h.Refund)
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var upstream *clients.UpstreamError

	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, clients.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not allowed")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment data")
	case errors.Is(err, ErrUnsupportedMethod):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_METHOD", "Unsupported payment method")
	case errors.Is(err, ErrAmountMismatch):
		response.Error(c, http.StatusBadRequest, "AMOUNT_MISMATCH", "Payment amount does not match reservation total")
	case errors.Is(err, ErrAlreadyPaid):
		response.Error(c, http.StatusConflict, "ALREADY_PAID", "Reservation already has a completed payment")
	case errors.Is(err, ErrNotRefundable):
		response.Error(c, http.StatusConflict, "NOT_REFUNDABLE", "Payment is not in a refundable state")
	case errors.Is(err, ErrRefundTooLarge):
		response.Error(c, http.StatusBadRequest, "REFUND_TOO_LARGE", "Refund exceeds the remaining paid amount")
	case errors.As(err, &upstream):
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", upstream.Message)
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
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to process payment")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), limit, offset)
	if err != nil {
		h.writeError(c, err, "Failed to list payments")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.writeError(c, err, "Failed to load payment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) Refund(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Refund(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err, "Failed to refund payment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}
