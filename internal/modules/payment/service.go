package payment

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// amountTolerance absorbs float rounding between the quoted total and the
// amount the client sends back.
const amountTolerance = 0.01

const defaultCurrency = "USD"

// Reservation statuses that accept a payment.
var payableStatuses = map[domain.ReservationStatus]bool{
	domain.ReservationPending:   true,
	domain.ReservationConfirmed: true,
	domain.ReservationModified:  true,
}

type Service struct {
	payments   PaymentRepository
	bookings   ReservationSource
	processors map[domain.PaymentMethod]Processor
	publisher  EventPublisher
	log        *zap.Logger
}

func NewService(payments PaymentRepository, bookings ReservationSource, processors map[domain.PaymentMethod]Processor, publisher EventPublisher, log *zap.Logger) *Service {
	return &Service{
		payments:   payments,
		bookings:   bookings,
		processors: processors,
		publisher:  publisher,
		log:        log,
	}
}

// Create charges the reservation total through the selected gateway and
// records the outcome. A declined charge is stored as a failed payment,
// not returned as an error.
func (s *Service) Create(ctx context.Context, userID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	method := domain.PaymentMethod(strings.ToLower(req.Method))
	processor, ok := s.processors[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}

	res, err := s.bookings.GetReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrForbidden
	}
	if !payableStatuses[res.Status] {
		return nil, ErrValidation
	}
	if math.Abs(req.Amount-res.TotalPrice) > amountTolerance {
		return nil, ErrAmountMismatch
	}

	paid, err := s.payments.HasCompleted(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, ErrAlreadyPaid
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	p := &domain.Payment{
		ReservationID: req.ReservationID,
		UserID:        userID,
		Amount:        req.Amount,
		Currency:      currency,
		Method:        method,
		Status:        domain.PaymentProcessing,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	txnID, chargeErr := processor.Charge(ctx, p.Amount, p.Currency)
	if chargeErr != nil {
		p.Status = domain.PaymentFailed
		p.FailureReason = chargeErr.Error()
		if err := s.payments.Update(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p.Status = domain.PaymentCompleted
	p.TransactionID = txnID
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := s.bookings.SetStatus(ctx, res.ID, domain.ReservationPaid); err != nil {
		s.log.Warn("failed to mark reservation paid",
			zap.Int64("reservation_id", res.ID),
			zap.Int64("payment_id", p.ID),
			zap.Error(err),
		)
	}

	s.publish(ctx, events.KeyPaymentCompleted, p)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, actorID int64, actorRole string, limit, offset int) (*PaymentListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	userID := actorID
	if actorRole == string(domain.RoleAdmin) {
		userID = 0
	}

	payments, err := s.payments.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &PaymentListResponse{Payments: payments, Limit: limit, Offset: offset}, nil
}

// Refund returns part or all of a completed payment. A full refund also
// moves the reservation to refunded.
func (s *Service) Refund(ctx context.Context, id, actorID int64, actorRole string, req RefundRequest) (*domain.Payment, error) {
	p, err := s.Get(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentCompleted && p.Status != domain.PaymentPartiallyRefunded {
		return nil, ErrNotRefundable
	}

	remaining := p.Amount - p.RefundedAmount
	amount := req.Amount
	if amount == 0 {
		amount = remaining
	}
	if amount < 0 {
		return nil, ErrValidation
	}
	if amount-remaining > amountTolerance {
		return nil, ErrRefundTooLarge
	}

	processor, ok := s.processors[p.Method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	if err := processor.Refund(ctx, p.TransactionID, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.RefundedAmount = round2(p.RefundedAmount + amount)
	p.RefundedAt = &now
	if p.Amount-p.RefundedAmount <= amountTolerance {
		p.Status = domain.PaymentRefunded
	} else {
		p.Status = domain.PaymentPartiallyRefunded
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Status == domain.PaymentRefunded {
		if err := s.bookings.SetStatus(ctx, p.ReservationID, domain.ReservationRefunded); err != nil {
			s.log.Warn("failed to mark reservation refunded",
				zap.Int64("reservation_id", p.ReservationID),
				zap.Int64("payment_id", p.ID),
				zap.Error(err),
			)
		}
	}

	s.publish(ctx, events.KeyPaymentRefunded, p)
	return p, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func (s *Service) publish(ctx context.Context, key string, p *domain.Payment) {
	if s.publisher == nil {
		return
	}

	event := events.PaymentEvent{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.log.Warn("failed to publish payment event",
			zap.String("routing_key", key),
			zap.Int64("payment_id", p.ID),
			zap.Error(err),
		)
	}
}
