package inventory

import (
	"net/http"
	"strconv"
	"time"

	"hotelreserve/internal/middleware"
	"hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/pkg/response"
	"hotelreserve/internal/repository"

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
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.ListHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/rooms", h.ListRooms)

		managed := hotels.Group("")
		managed.Use(middleware.Auth(h.jwt), middleware.ManagerOrAdmin())
		{
			managed.POST("", h.CreateHotel)
			managed.PUT("/:id", h.UpdateHotel)
			managed.DELETE("/:id", h.DeleteHotel)
			managed.POST("/:id/rooms", h.CreateRoom)
		}
	}

	rooms := rg.Group("/rooms")
	{
		rooms.GET("/search", h.SearchRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.GET("/:id/availability", h.GetAvailability)

		managed := rooms.Group("/")
		managed.Use(middleware.Auth(h.jwt), middleware.ManagerOrAdmin())
		{
			managed.PUT("/:id", h.UpdateRoom)
			managed.DELETE("/:id", h.DeleteRoom)
			managed.PUT("/:id/availability", h.SetAvailability)
		}
	}
}

// RegisterInternalRoutes wires the endpoints the booking service calls.
func (h *Handler) RegisterInternalRoutes(r *gin.Engine) {
	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth(h.internalToken))
	{
		internal.GET("/rooms/:id", h.InternalGetRoom)
		internal.GET("/rooms/:id/availability", h.InternalCheckAvailability)
		internal.POST("/rooms/:id/hold", h.InternalHold)
		internal.POST("/rooms/:id/release", h.InternalRelease)
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not allowed")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
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

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create hotel")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load hotel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

func (h *Handler) ListHotels(c *gin.Context) {
	minStars, _ := strconv.Atoi(c.Query("min_stars"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.service.ListHotels(c.Request.Context(), c.Query("city"), minStars, limit, offset)
	if err != nil {
		h.writeError(c, err, "Failed to list hotels")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update hotel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), c.GetString("role"), id); err != nil {
		h.writeError(c, err, "Failed to delete hotel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Hotel deactivated"})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	hotelID, ok := pathID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), hotelID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create room")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListRooms(c *gin.Context) {
	hotelID, ok := pathID(c)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		h.writeError(c, err, "Failed to list rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id); err != nil {
		h.writeError(c, err, "Failed to delete room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Room deactivated"})
}

func (h *Handler) SearchRooms(c *gin.Context) {
	f := repository.RoomSearchFilter{
		City: c.Query("city"),
		Type: c.Query("type"),
	}
	f.HotelID, _ = strconv.ParseInt(c.Query("hotel_id"), 10, 64)
	f.Guests, _ = strconv.Atoi(c.Query("guests"))
	f.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if ci := c.Query("check_in"); ci != "" {
		parsed, err := time.Parse(dateLayout, ci)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_in date")
			return
		}
		f.CheckIn = parsed
	}
	if co := c.Query("check_out"); co != "" {
		parsed, err := time.Parse(dateLayout, co)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_out date")
			return
		}
		f.CheckOut = parsed
	}

	rooms, err := h.service.SearchRooms(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err, "Failed to search rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, c.Query("check_in"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_in date")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, c.Query("check_out"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_out date")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	days, err := h.service.GetAvailability(c.Request.Context(), id, from, to)
	if err != nil {
		h.writeError(c, err, "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room_id": id, "days": days})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id, req); err != nil {
		h.writeError(c, err, "Failed to update availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Availability updated", "days": len(req.Days)})
}

func (h *Handler) InternalGetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) InternalCheckAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	available, rates, err := h.service.CheckStay(c.Request.Context(), id, from, to)
	if err != nil {
		h.writeError(c, err, "Failed to check availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"room_id":       id,
		"available":     available,
		"nightly_rates": rates,
	})
}

type internalStayRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

func (h *Handler) internalStay(c *gin.Context, hold bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req internalStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	from, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_in date")
		return
	}
	to, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_out date")
		return
	}

	if hold {
		err = h.service.HoldStay(c.Request.Context(), id, from, to)
	} else {
		err = h.service.ReleaseStay(c.Request.Context(), id, from, to)
	}
	if err != nil {
		h.writeError(c, err, "Failed to update stay")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room_id": id})
}

func (h *Handler) InternalHold(c *gin.Context) {
	h.internalStay(c, true)
}

func (h *Handler) InternalRelease(c *gin.Context) {
	h.internalStay(c, false)
}
