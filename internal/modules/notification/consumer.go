package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/events"
)

// BindingKeys covers every event this service turns into notifications.
var BindingKeys = []string{
	events.KeyReservationCreated,
	events.KeyReservationUpdated,
	events.KeyReservationCancelled,
	events.KeyPaymentCompleted,
	events.KeyPaymentRefunded,
}

// EventHandler converts broker events into guest notifications: an in-app
// notification always, plus an email when the user has one on file.
func (s *Service) EventHandler() events.HandlerFunc {
	return func(ctx context.Context, routingKey string, body []byte) error {
		switch routingKey {
		case events.KeyReservationCreated, events.KeyReservationUpdated, events.KeyReservationCancelled:
			var event events.ReservationEvent
			if err := json.Unmarshal(body, &event); err != nil {
				return fmt.Errorf("decode reservation event: %w", err)
			}
			return s.notifyReservation(ctx, routingKey, event)

		case events.KeyPaymentCompleted, events.KeyPaymentRefunded:
			var event events.PaymentEvent
			if err := json.Unmarshal(body, &event); err != nil {
				return fmt.Errorf("decode payment event: %w", err)
			}
			return s.notifyPayment(ctx, routingKey, event)

		default:
			// unknown keys are acked, a requeue would loop forever
			return nil
		}
	}
}

func (s *Service) notifyReservation(ctx context.Context, routingKey string, event events.ReservationEvent) error {
	var subject, message string
	switch routingKey {
	case events.KeyReservationCreated:
		subject = "Reservation received"
		message = fmt.Sprintf("Your reservation %s is confirmed for %s to %s. Total: %.2f.",
			event.ConfirmationCode,
			event.CheckIn.Format("2006-01-02"),
			event.CheckOut.Format("2006-01-02"),
			event.TotalPrice,
		)
	case events.KeyReservationUpdated:
		subject = "Reservation updated"
		message = fmt.Sprintf("Your reservation %s was updated: %s to %s. New total: %.2f.",
			event.ConfirmationCode,
			event.CheckIn.Format("2006-01-02"),
			event.CheckOut.Format("2006-01-02"),
			event.TotalPrice,
		)
	case events.KeyReservationCancelled:
		subject = "Reservation cancelled"
		message = fmt.Sprintf("Your reservation %s has been cancelled.", event.ConfirmationCode)
		if event.Reason != "" {
			message += " Reason: " + event.Reason + "."
		}
	}

	return s.notifyUser(ctx, event.UserID, subject, message, event)
}

func (s *Service) notifyPayment(ctx context.Context, routingKey string, event events.PaymentEvent) error {
	var subject, message string
	switch routingKey {
	case events.KeyPaymentCompleted:
		subject = "Payment received"
		message = fmt.Sprintf("We received your payment of %.2f for reservation %d.",
			event.Amount, event.ReservationID)
	case events.KeyPaymentRefunded:
		subject = "Payment refunded"
		message = fmt.Sprintf("A refund was issued for your payment on reservation %d.",
			event.ReservationID)
	}

	return s.notifyUser(ctx, event.UserID, subject, message, event)
}

func (s *Service) notifyUser(ctx context.Context, userID int64, subject, message string, data any) error {
	if _, err := s.Create(ctx, CreateNotificationRequest{
		UserID:  userID,
		Type:    string(domain.NotifInApp),
		Subject: subject,
		Message: message,
		Data:    data,
	}); err != nil {
		return err
	}

	if rec, ok := s.recipientFor(ctx, userID, domain.NotifEmail); ok {
		if _, err := s.Create(ctx, CreateNotificationRequest{
			UserID:    userID,
			Type:      string(domain.NotifEmail),
			Subject:   subject,
			Message:   message,
			Recipient: rec,
			Data:      data,
		}); err != nil {
			return err
		}
	}

	return nil
}
