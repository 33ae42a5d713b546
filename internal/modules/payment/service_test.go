package payment

import (
	"context"
	"testing"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 901
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) HasCompleted(ctx context.Context, reservationID int64) (bool, error) {
	args := m.Called(ctx, reservationID)
	return args.Bool(0), args.Error(1)
}

type MockReservationSource struct {
	mock.Mock
}

func (m *MockReservationSource) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationSource) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

// alwaysCharge is a deterministic gateway for tests.
type alwaysCharge struct {
	succeed bool
}

func (p *alwaysCharge) Name() string { return "test" }

func (p *alwaysCharge) Charge(_ context.Context, amount float64, _ string) (string, error) {
	if !p.succeed {
		return "", ErrChargeDeclined
	}
	return "ch_test123", nil
}

func (p *alwaysCharge) Refund(_ context.Context, _ string, _ float64) error { return nil }

func newTestService(succeed bool) (*Service, *MockPaymentRepository, *MockReservationSource, *MockPublisher) {
	repo := new(MockPaymentRepository)
	bookings := new(MockReservationSource)
	publisher := new(MockPublisher)
	processors := map[domain.PaymentMethod]Processor{
		domain.MethodCreditCard: &alwaysCharge{succeed: succeed},
		domain.MethodPayPal:     &alwaysCharge{succeed: succeed},
	}
	svc := NewService(repo, bookings, processors, publisher, zap.NewNop())
	return svc, repo, bookings, publisher
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         501,
		UserID:     42,
		TotalPrice: 371.20,
		Status:     domain.ReservationPending,
	}
}

func TestCreate_CompletedPayment(t *testing.T) {
	svc, repo, bookings, publisher := newTestService(true)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)
	repo.On("HasCompleted", mock.Anything, int64(501)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	bookings.On("SetStatus", mock.Anything, int64(501), domain.ReservationPaid).Return(nil)
	publisher.On("Publish", mock.Anything, events.KeyPaymentCompleted, mock.Anything).Return(nil)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.20,
		Method:        "credit_card",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	assert.Equal(t, "ch_test123", p.TransactionID)
	assert.Equal(t, "USD", p.Currency)
	repo.AssertExpectations(t)
	bookings.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreate_DeclinedChargeRecordedAsFailed(t *testing.T) {
	svc, repo, bookings, publisher := newTestService(false)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)
	repo.On("HasCompleted", mock.Anything, int64(501)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.20,
		Method:        "credit_card",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, p.Status)
	assert.NotEmpty(t, p.FailureReason)
	bookings.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_AmountMismatch(t *testing.T) {
	svc, _, bookings, _ := newTestService(true)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        100.00,
		Method:        "credit_card",
	})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestCreate_AmountWithinTolerance(t *testing.T) {
	svc, repo, bookings, publisher := newTestService(true)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)
	repo.On("HasCompleted", mock.Anything, int64(501)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	bookings.On("SetStatus", mock.Anything, int64(501), domain.ReservationPaid).Return(nil)
	publisher.On("Publish", mock.Anything, events.KeyPaymentCompleted, mock.Anything).Return(nil)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.21,
		Method:        "credit_card",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
}

func TestCreate_OtherUsersReservation(t *testing.T) {
	svc, _, bookings, _ := newTestService(true)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)

	p, err := svc.Create(context.Background(), 99, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.20,
		Method:        "credit_card",
	})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreate_AlreadyPaid(t *testing.T) {
	svc, repo, bookings, _ := newTestService(true)

	bookings.On("GetReservation", mock.Anything, int64(501)).Return(pendingReservation(), nil)
	repo.On("HasCompleted", mock.Anything, int64(501)).Return(true, nil)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.20,
		Method:        "credit_card",
	})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCreate_UnsupportedMethod(t *testing.T) {
	svc, _, _, _ := newTestService(true)

	p, err := svc.Create(context.Background(), 42, CreatePaymentRequest{
		ReservationID: 501,
		Amount:        371.20,
		Method:        "bank_transfer",
	})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestRefund_FullRefund(t *testing.T) {
	svc, repo, bookings, publisher := newTestService(true)

	repo.On("GetByID", mock.Anything, int64(901)).Return(&domain.Payment{
		ID:            901,
		ReservationID: 501,
		UserID:        42,
		Amount:        371.20,
		Method:        domain.MethodCreditCard,
		Status:        domain.PaymentCompleted,
		TransactionID: "ch_test123",
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	bookings.On("SetStatus", mock.Anything, int64(501), domain.ReservationRefunded).Return(nil)
	publisher.On("Publish", mock.Anything, events.KeyPaymentRefunded, mock.Anything).Return(nil)

	p, err := svc.Refund(context.Background(), 901, 42, string(domain.RoleRegistered), RefundRequest{})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, p.Status)
	assert.Equal(t, 371.20, p.RefundedAmount)
	assert.NotNil(t, p.RefundedAt)
	bookings.AssertExpectations(t)
}

func TestRefund_PartialRefund(t *testing.T) {
	svc, repo, bookings, publisher := newTestService(true)

	repo.On("GetByID", mock.Anything, int64(901)).Return(&domain.Payment{
		ID:            901,
		ReservationID: 501,
		UserID:        42,
		Amount:        371.20,
		Method:        domain.MethodCreditCard,
		Status:        domain.PaymentCompleted,
		TransactionID: "ch_test123",
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	publisher.On("Publish", mock.Anything, events.KeyPaymentRefunded, mock.Anything).Return(nil)

	p, err := svc.Refund(context.Background(), 901, 42, string(domain.RoleRegistered), RefundRequest{Amount: 100})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPartiallyRefunded, p.Status)
	assert.Equal(t, 100.0, p.RefundedAmount)
	bookings.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefund_TooLarge(t *testing.T) {
	svc, repo, _, _ := newTestService(true)

	repo.On("GetByID", mock.Anything, int64(901)).Return(&domain.Payment{
		ID:            901,
		UserID:        42,
		Amount:        371.20,
		Method:        domain.MethodCreditCard,
		Status:        domain.PaymentCompleted,
		TransactionID: "ch_test123",
	}, nil)

	p, err := svc.Refund(context.Background(), 901, 42, string(domain.RoleRegistered), RefundRequest{Amount: 500})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrRefundTooLarge)
}

func TestRefund_FailedPaymentRejected(t *testing.T) {
	svc, repo, _, _ := newTestService(true)

	repo.On("GetByID", mock.Anything, int64(901)).Return(&domain.Payment{
		ID:     901,
		UserID: 42,
		Amount: 371.20,
		Method: domain.MethodCreditCard,
		Status: domain.PaymentFailed,
	}, nil)

	p, err := svc.Refund(context.Background(), 901, 42, string(domain.RoleRegistered), RefundRequest{})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotRefundable)
}

func TestList_AdminSeesAllUsers(t *testing.T) {
	svc, repo, _, _ := newTestService(true)

	repo.On("ListByUser", mock.Anything, int64(0), 20, 0).
		Return([]domain.Payment{{ID: 901}, {ID: 902}}, nil)

	result, err := svc.List(context.Background(), 1, string(domain.RoleAdmin), 20, 0)

	assert.NoError(t, err)
	assert.Len(t, result.Payments, 2)
	repo.AssertExpectations(t)
}

func TestSimulatedProcessor_ChargeAndDecline(t *testing.T) {
	charged := &simulatedProcessor{name: "stripe", prefix: "ch_", successRate: 1.0, roll: func() float64 { return 0.5 }}
	txn, err := charged.Charge(context.Background(), 100, "USD")
	assert.NoError(t, err)
	assert.Contains(t, txn, "ch_")

	declined := &simulatedProcessor{name: "stripe", prefix: "ch_", successRate: 0.75, roll: func() float64 { return 0.9 }}
	_, err = declined.Charge(context.Background(), 100, "USD")
	assert.ErrorIs(t, err, ErrChargeDeclined)
}
