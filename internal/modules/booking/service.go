package booking

import (
	"context"
	"errors"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/events"
	"hotelreserve/internal/pkg/codes"
	"hotelreserve/internal/pkg/pricing"
	"hotelreserve/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Statuses a guest may still modify or cancel.
var mutableStatuses = map[domain.ReservationStatus]bool{
	domain.ReservationPending:   true,
	domain.ReservationConfirmed: true,
	domain.ReservationModified:  true,
}

type Service struct {
	reservations ReservationRepository
	catalog      RoomCatalog
	publisher    EventPublisher
	log          *zap.Logger
}

func NewService(reservations ReservationRepository, catalog RoomCatalog, publisher EventPublisher, log *zap.Logger) *Service {
	return &Service{
		reservations: reservations,
		catalog:      catalog,
		publisher:    publisher,
		log:          log,
	}
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return in, out, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkIn.After(today()) {
		return nil, ErrPastCheckIn
	}

	room, err := s.catalog.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if req.Guests > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	availability, err := s.catalog.CheckAvailability(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, ErrNotAvailable
	}

	overlapping, err := s.reservations.CountOverlapping(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrNotAvailable
	}

	quote, err := pricing.ForNightlyRates(availability.NightlyRates)
	if err != nil {
		return nil, ErrValidation
	}

	res := &domain.Reservation{
		UserID:           userID,
		RoomID:           room.ID,
		HotelID:          room.HotelID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           req.Guests,
		Nights:           quote.Nights,
		Subtotal:         quote.Subtotal,
		Taxes:            quote.Taxes,
		TotalPrice:       quote.Total,
		Status:           domain.ReservationPending,
		ConfirmationCode: codes.Confirmation(),
		SpecialRequests:  req.SpecialRequests,
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	if err := s.catalog.HoldDates(ctx, room.ID, checkIn, checkOut); err != nil {
		// the reservation exists but the nights could not be blocked;
		// cancel it rather than risk a double sell
		_ = s.reservations.Cancel(ctx, res.ID, "failed to hold dates", time.Now().UTC())
		return nil, err
	}

	s.publish(ctx, events.KeyReservationCreated, res, "")
	return res, nil
}

func (s *Service) Get(ctx context.Context, id, actorID int64, actorRole string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return res, nil
}

func (s *Service) GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, actorID int64, actorRole, status string, limit, offset int) (*ReservationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	f := repository.ReservationFilter{Status: status, Limit: limit, Offset: offset}
	if actorRole != string(domain.RoleAdmin) {
		f.UserID = actorID
	}

	reservations, total, err := s.reservations.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ReservationListResponse{
		Reservations: reservations,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *Service) Update(ctx context.Context, id, actorID int64, actorRole string, req UpdateReservationRequest) (*domain.Reservation, error) {
	res, err := s.Get(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !mutableStatuses[res.Status] {
		return nil, ErrInvalidStatusTransition
	}

	if req.SpecialRequests != nil {
		res.SpecialRequests = *req.SpecialRequests
	}

	newCheckIn, newCheckOut := res.CheckIn, res.CheckOut
	datesChanged := false
	if req.CheckIn != nil || req.CheckOut != nil {
		ci := res.CheckIn.Format(dateLayout)
		co := res.CheckOut.Format(dateLayout)
		if req.CheckIn != nil {
			ci = *req.CheckIn
		}
		if req.CheckOut != nil {
			co = *req.CheckOut
		}
		newCheckIn, newCheckOut, err = parseStay(ci, co)
		if err != nil {
			return nil, err
		}
		if !newCheckIn.After(today()) {
			return nil, ErrPastCheckIn
		}
		datesChanged = !newCheckIn.Equal(res.CheckIn) || !newCheckOut.Equal(res.CheckOut)
	}

	guests := res.Guests
	if req.Guests != nil {
		if *req.Guests < 1 {
			return nil, ErrValidation
		}
		guests = *req.Guests
	}

	room, err := s.catalog.GetRoom(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if guests > room.Capacity {
		return nil, ErrCapacityExceeded
	}
	res.Guests = guests

	if datesChanged {
		if err := s.catalog.ReleaseDates(ctx, res.RoomID, res.CheckIn, res.CheckOut); err != nil {
			return nil, err
		}

		availability, err := s.catalog.CheckAvailability(ctx, res.RoomID, newCheckIn, newCheckOut)
		if err != nil {
			return nil, err
		}
		if !availability.Available {
			// put the original nights back before reporting the conflict
			_ = s.catalog.HoldDates(ctx, res.RoomID, res.CheckIn, res.CheckOut)
			return nil, ErrNotAvailable
		}

		quote, err := pricing.ForNightlyRates(availability.NightlyRates)
		if err != nil {
			return nil, ErrValidation
		}

		res.CheckIn = newCheckIn
		res.CheckOut = newCheckOut
		res.Nights = quote.Nights
		res.Subtotal = quote.Subtotal
		res.Taxes = quote.Taxes
		res.TotalPrice = quote.Total

		if err := s.catalog.HoldDates(ctx, res.RoomID, newCheckIn, newCheckOut); err != nil {
			return nil, err
		}
	}

	res.Status = domain.ReservationModified
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	s.publish(ctx, events.KeyReservationUpdated, res, "")
	return res, nil
}

func (s *Service) Cancel(ctx context.Context, id, actorID int64, actorRole, reason string) (*domain.Reservation, error) {
	res, err := s.Get(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationCancelled {
		return nil, ErrInvalidStatusTransition
	}
	if !today().Before(res.CheckIn) {
		return nil, ErrAlreadyStarted
	}

	now := time.Now().UTC()
	if err := s.reservations.Cancel(ctx, id, reason, now); err != nil {
		return nil, err
	}

	if err := s.catalog.ReleaseDates(ctx, res.RoomID, res.CheckIn, res.CheckOut); err != nil {
		s.log.Warn("failed to release dates after cancellation",
			zap.Int64("reservation_id", id),
			zap.Error(err),
		)
	}

	res.Status = domain.ReservationCancelled
	res.CancellationReason = reason
	res.CancelledAt = &now

	s.publish(ctx, events.KeyReservationCancelled, res, reason)
	return res, nil
}

// Allowed transitions for internal status updates coming from payments.
var internalTransitions = map[domain.ReservationStatus]map[domain.ReservationStatus]bool{
	domain.ReservationPending:   {domain.ReservationConfirmed: true, domain.ReservationPaid: true},
	domain.ReservationConfirmed: {domain.ReservationPaid: true},
	domain.ReservationModified:  {domain.ReservationPaid: true},
	domain.ReservationPaid:      {domain.ReservationCheckedIn: true, domain.ReservationRefunded: true},
	domain.ReservationCheckedIn: {domain.ReservationCheckedOut: true},
}

// SetStatus applies an internal status change, e.g. paid after a completed
// payment.
func (s *Service) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !internalTransitions[res.Status][status] {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	res.Status = status
	return res, nil
}

func (s *Service) publish(ctx context.Context, key string, res *domain.Reservation, reason string) {
	if s.publisher == nil {
		return
	}

	event := events.ReservationEvent{
		ReservationID:    res.ID,
		UserID:           res.UserID,
		HotelID:          res.HotelID,
		RoomID:           res.RoomID,
		ConfirmationCode: res.ConfirmationCode,
		CheckIn:          res.CheckIn,
		CheckOut:         res.CheckOut,
		TotalPrice:       res.TotalPrice,
		Status:           string(res.Status),
		Reason:           reason,
		OccurredAt:       time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.log.Warn("failed to publish reservation event",
			zap.String("routing_key", key),
			zap.Int64("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}
