package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelreserve/internal/clients"
	"hotelreserve/internal/database"
	"hotelreserve/internal/domain"
	"hotelreserve/internal/events"
	"hotelreserve/internal/middleware"
	"hotelreserve/internal/modules/auth"
	"hotelreserve/internal/modules/booking"
	"hotelreserve/internal/modules/inventory"
	"hotelreserve/internal/modules/notification"
	"hotelreserve/internal/modules/payment"
	"hotelreserve/internal/modules/toolbox"
	jwtsvc "hotelreserve/internal/pkg/jwt"
	"hotelreserve/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const internalToken = "e2e-internal-token"

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// catalogAdapter lets the booking service call the inventory service
// in-process instead of over HTTP.
type catalogAdapter struct {
	inv *inventory.Service
}

func (a *catalogAdapter) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	return a.inv.GetRoom(ctx, roomID)
}

func (a *catalogAdapter) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*clients.Availability, error) {
	available, rates, err := a.inv.CheckStay(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &clients.Availability{RoomID: roomID, Available: available, NightlyRates: rates}, nil
}

func (a *catalogAdapter) HoldDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	return a.inv.HoldStay(ctx, roomID, checkIn, checkOut)
}

func (a *catalogAdapter) ReleaseDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	return a.inv.ReleaseStay(ctx, roomID, checkIn, checkOut)
}

// bookingAdapter gives payments in-process access to reservations.
type bookingAdapter struct {
	svc *booking.Service
}

func (a *bookingAdapter) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return a.svc.Get(ctx, id, 0, string(domain.RoleAdmin))
}

func (a *bookingAdapter) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	_, err := a.svc.SetStatus(ctx, id, status)
	return err
}

// localBus replaces RabbitMQ: published events go straight into the
// notification service's event handler.
type localBus struct {
	handler events.HandlerFunc
}

func (b *localBus) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.handler(ctx, routingKey, body)
}

// approvingProcessor always charges successfully, keeping the flow
// deterministic.
type approvingProcessor struct{}

func (approvingProcessor) Name() string { return "test" }
func (approvingProcessor) Charge(_ context.Context, _ float64, _ string) (string, error) {
	return "ch_e2e_ok", nil
}
func (approvingProcessor) Refund(_ context.Context, _ string, _ float64) error { return nil }

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Hotel{},
		&domain.Room{},
		&domain.RoomAvailability{},
		&domain.Reservation{},
		&domain.Payment{},
		&domain.Notification{},
	))

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	logg := zap.NewNop()

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService, jwtService)

	inventoryService := inventory.NewService(hotelRepo, roomRepo, availabilityRepo)
	inventoryHandler := inventory.NewHandler(inventoryService, jwtService, internalToken)

	hub := notification.NewHub()
	notificationService := notification.NewService(
		notificationRepo,
		userRepo,
		notification.SendersByType(logg),
		hub,
		logg,
	)
	notificationHandler := notification.NewHandler(notificationService, hub, jwtService, logg)

	bus := &localBus{handler: notificationService.EventHandler()}

	bookingService := booking.NewService(reservationRepo, &catalogAdapter{inv: inventoryService}, bus, logg)
	bookingHandler := booking.NewHandler(bookingService, jwtService, internalToken)

	processors := map[domain.PaymentMethod]payment.Processor{
		domain.MethodCreditCard: approvingProcessor{},
		domain.MethodPayPal:     approvingProcessor{},
	}
	paymentService := payment.NewService(paymentRepo, &bookingAdapter{svc: bookingService}, processors, bus, logg)
	paymentHandler := payment.NewHandler(paymentService, jwtService)

	toolboxHandler := toolbox.NewHandler(toolbox.NewService(), middleware.Auth(jwtService))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	inventoryHandler.RegisterRoutes(v1)
	bookingHandler.RegisterRoutes(v1)
	paymentHandler.RegisterRoutes(v1)
	notificationHandler.RegisterRoutes(v1)
	toolboxHandler.RegisterRoutes(v1)

	inventoryHandler.RegisterInternalRoutes(r)
	bookingHandler.RegisterInternalRoutes(r)

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) createUser(t *testing.T, email, password string, role domain.UserRole) (domain.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test " + string(role),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, s.db.Create(&u).Error)

	token, err := s.jwtService.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)
	return u, token
}

func (s *E2ETestSuite) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestFullReservationFlow(t *testing.T) {
	s := setupTestSuite(t)

	// guest signs up through the API
	w := s.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":     "guest@example.com",
		"password":  "password123",
		"full_name": "Grace Guest",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "guest@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	guestToken := parseResponse(t, w).Data["access_token"].(string)
	require.NotEmpty(t, guestToken)

	_, managerToken := s.createUser(t, "manager@example.com", "password123", domain.RoleHotelManager)

	// manager builds out the inventory
	w = s.request(t, http.MethodPost, "/api/v1/hotels", map[string]any{
		"name":      "Grand Palace Hotel",
		"address":   "1 Palace Square",
		"city":      "Vienna",
		"country":   "Austria",
		"stars":     5,
		"amenities": []string{"wifi", "spa"},
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hotel := parseResponse(t, w).Data["hotel"].(map[string]interface{})
	hotelID := int64(hotel["id"].(float64))

	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%d/rooms", hotelID), map[string]any{
		"room_number":     "101",
		"type":            "double",
		"price_per_night": 100.0,
		"capacity":        2,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	room := parseResponse(t, w).Data["room"].(map[string]interface{})
	roomID := int64(room["id"].(float64))

	// guest finds the room via search
	w = s.request(t, http.MethodGet,
		"/api/v1/rooms/search?city=Vienna&check_in="+futureDate(10)+"&check_out="+futureDate(13), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rooms := parseResponse(t, w).Data["rooms"].([]interface{})
	require.Len(t, rooms, 1)

	// 3 nights at 100 plus 16% tax
	w = s.request(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"room_id":   roomID,
		"check_in":  futureDate(10),
		"check_out": futureDate(13),
		"guests":    2,
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservation := parseResponse(t, w).Data["reservation"].(map[string]interface{})
	reservationID := int64(reservation["id"].(float64))
	confirmationCode := reservation["confirmation_code"].(string)

	assert.Equal(t, "pending", reservation["status"])
	assert.Equal(t, 300.0, reservation["subtotal"])
	assert.Equal(t, 48.0, reservation["taxes"])
	assert.Equal(t, 348.0, reservation["total_price"])
	assert.Len(t, confirmationCode, 8)

	// the held nights block a second overlapping reservation
	w = s.request(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"room_id":   roomID,
		"check_in":  futureDate(11),
		"check_out": futureDate(12),
		"guests":    1,
	}, guestToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// lookup by confirmation code
	w = s.request(t, http.MethodGet, "/api/v1/reservations/confirmation/"+confirmationCode, nil, guestToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// guest pays the exact total
	w = s.request(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"reservation_id": reservationID,
		"amount":         348.0,
		"method":         "credit_card",
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	paid := parseResponse(t, w).Data["payment"].(map[string]interface{})
	paymentID := int64(paid["id"].(float64))
	assert.Equal(t, "completed", paid["status"])
	assert.NotEmpty(t, paid["transaction_id"])

	// reservation flipped to paid
	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil, guestToken)
	require.Equal(t, http.StatusOK, w.Code)
	reservation = parseResponse(t, w).Data["reservation"].(map[string]interface{})
	assert.Equal(t, "paid", reservation["status"])

	// events produced notifications for the guest
	w = s.request(t, http.MethodGet, "/api/v1/notifications", nil, guestToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	notifications := parseResponse(t, w).Data["notifications"].([]interface{})
	assert.NotEmpty(t, notifications)

	// wrong amount is rejected
	w = s.request(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"reservation_id": reservationID,
		"amount":         100.0,
		"method":         "credit_card",
	}, guestToken)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// full refund moves both payment and reservation to refunded
	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/payments/%d/refund", paymentID), map[string]any{}, guestToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refunded := parseResponse(t, w).Data["payment"].(map[string]interface{})
	assert.Equal(t, "refunded", refunded["status"])

	w = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", reservationID), nil, guestToken)
	require.Equal(t, http.StatusOK, w.Code)
	reservation = parseResponse(t, w).Data["reservation"].(map[string]interface{})
	assert.Equal(t, "refunded", reservation["status"])
}

func TestCancellationReleasesDates(t *testing.T) {
	s := setupTestSuite(t)

	_, managerToken := s.createUser(t, "manager@example.com", "password123", domain.RoleHotelManager)
	_, guestToken := s.createUser(t, "guest@example.com", "password123", domain.RoleRegistered)

	w := s.request(t, http.MethodPost, "/api/v1/hotels", map[string]any{
		"name":    "Harbor View Inn",
		"address": "17 Quay Street",
		"city":    "Lisbon",
		"country": "Portugal",
		"stars":   3,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hotelID := int64(parseResponse(t, w).Data["hotel"].(map[string]interface{})["id"].(float64))

	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%d/rooms", hotelID), map[string]any{
		"room_number":     "2",
		"type":            "double",
		"price_per_night": 90.0,
		"capacity":        2,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := int64(parseResponse(t, w).Data["room"].(map[string]interface{})["id"].(float64))

	w = s.request(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"room_id":   roomID,
		"check_in":  futureDate(5),
		"check_out": futureDate(7),
		"guests":    2,
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservationID := int64(parseResponse(t, w).Data["reservation"].(map[string]interface{})["id"].(float64))

	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", reservationID), map[string]any{
		"reason": "change of plans",
	}, guestToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := parseResponse(t, w).Data["reservation"].(map[string]interface{})
	assert.Equal(t, "cancelled", cancelled["status"])

	// the released nights can be booked again
	w = s.request(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"room_id":   roomID,
		"check_in":  futureDate(5),
		"check_out": futureDate(7),
		"guests":    1,
	}, guestToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAvailabilityOverridesDrivePricing(t *testing.T) {
	s := setupTestSuite(t)

	_, managerToken := s.createUser(t, "manager@example.com", "password123", domain.RoleHotelManager)
	_, guestToken := s.createUser(t, "guest@example.com", "password123", domain.RoleRegistered)

	w := s.request(t, http.MethodPost, "/api/v1/hotels", map[string]any{
		"name":    "Alpine Lodge",
		"address": "3 Summit Way",
		"city":    "Innsbruck",
		"country": "Austria",
		"stars":   4,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	hotelID := int64(parseResponse(t, w).Data["hotel"].(map[string]interface{})["id"].(float64))

	w = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%d/rooms", hotelID), map[string]any{
		"room_number":     "7",
		"type":            "suite",
		"price_per_night": 200.0,
		"capacity":        4,
	}, managerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := int64(parseResponse(t, w).Data["room"].(map[string]interface{})["id"].(float64))

	// first night rises to 300, second stays at base
	w = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/rooms/%d/availability", roomID), map[string]any{
		"days": []map[string]any{
			{"date": futureDate(10), "is_available": true, "price_override": 300.0},
		},
	}, managerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"room_id":   roomID,
		"check_in":  futureDate(10),
		"check_out": futureDate(12),
		"guests":    2,
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reservation := parseResponse(t, w).Data["reservation"].(map[string]interface{})

	assert.Equal(t, 500.0, reservation["subtotal"])
	assert.Equal(t, 580.0, reservation["total_price"])
}

func TestToolboxEndpointsRequireAuth(t *testing.T) {
	s := setupTestSuite(t)

	w := s.request(t, http.MethodPost, "/api/v1/toolbox/bubble-sort", map[string]any{
		"numbers": []float64{3, 1, 2},
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, token := s.createUser(t, "guest@example.com", "password123", domain.RoleRegistered)

	w = s.request(t, http.MethodPost, "/api/v1/toolbox/bubble-sort", map[string]any{
		"numbers": []float64{3, 1, 2},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sorted := parseResponse(t, w).Data["numbers"].([]interface{})
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, sorted)

	w = s.request(t, http.MethodGet, "/api/v1/toolbox/primes/1000003", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, parseResponse(t, w).Data["is_prime"])

	w = s.request(t, http.MethodGet, "/api/v1/toolbox/primes/2.5", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalEndpointsRejectBadToken(t *testing.T) {
	s := setupTestSuite(t)

	req := httptest.NewRequest(http.MethodGet, "/internal/rooms/1", nil)
	req.Header.Set("X-Internal-Token", "wrong")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/internal/reservations/1", nil)
	req.Header.Set("X-Internal-Token", internalToken)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
