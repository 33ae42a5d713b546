package notification

import (
	"context"
	"fmt"

	"hotelreserve/internal/domain"

	"go.uber.org/zap"
)

// The channel senders are simulated: they log the delivery instead of
// talking to a real provider. Email and SMS still insist on a recipient
// so a bad payload surfaces as a failed notification.

type emailSender struct {
	log *zap.Logger
}

func NewEmailSender(log *zap.Logger) Sender {
	return &emailSender{log: log}
}

func (s *emailSender) Send(_ context.Context, n *domain.Notification) error {
	if n.Recipient == "" {
		return fmt.Errorf("email notification %d has no recipient", n.ID)
	}
	s.log.Info("email sent",
		zap.Int64("notification_id", n.ID),
		zap.String("to", n.Recipient),
		zap.String("subject", n.Subject),
	)
	return nil
}

type smsSender struct {
	log *zap.Logger
}

func NewSMSSender(log *zap.Logger) Sender {
	return &smsSender{log: log}
}

func (s *smsSender) Send(_ context.Context, n *domain.Notification) error {
	if n.Recipient == "" {
		return fmt.Errorf("sms notification %d has no recipient", n.ID)
	}
	s.log.Info("sms sent",
		zap.Int64("notification_id", n.ID),
		zap.String("to", n.Recipient),
	)
	return nil
}

type pushSender struct {
	log *zap.Logger
}

func NewPushSender(log *zap.Logger) Sender {
	return &pushSender{log: log}
}

func (s *pushSender) Send(_ context.Context, n *domain.Notification) error {
	s.log.Info("push sent",
		zap.Int64("notification_id", n.ID),
		zap.Int64("user_id", n.UserID),
		zap.String("subject", n.Subject),
	)
	return nil
}

// SendersByType wires the default simulated senders. In-app notifications
// skip the sender path entirely and go out over the websocket hub.
func SendersByType(log *zap.Logger) map[domain.NotificationType]Sender {
	return map[domain.NotificationType]Sender{
		domain.NotifEmail: NewEmailSender(log),
		domain.NotifSMS:   NewSMSSender(log),
		domain.NotifPush:  NewPushSender(log),
	}
}
