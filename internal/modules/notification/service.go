package notification

import (
	"context"
	"errors"
	"time"

	"hotelreserve/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validTypes = map[domain.NotificationType]bool{
	domain.NotifEmail: true,
	domain.NotifSMS:   true,
	domain.NotifPush:  true,
	domain.NotifInApp: true,
}

// UserDirectory resolves recipients for notifications raised by events.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	notifications NotificationRepository
	users         UserDirectory
	senders       map[domain.NotificationType]Sender
	hub           Pusher
	log           *zap.Logger
}

func NewService(notifications NotificationRepository, users UserDirectory, senders map[domain.NotificationType]Sender, hub Pusher, log *zap.Logger) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		senders:       senders,
		hub:           hub,
		log:           log,
	}
}

// Create persists the notification and attempts delivery. Delivery failure
// is recorded on the row, not returned as an error.
func (s *Service) Create(ctx context.Context, req CreateNotificationRequest) (*domain.Notification, error) {
	typ := domain.NotificationType(req.Type)
	if !validTypes[typ] {
		return nil, ErrUnsupportedType
	}
	if req.Subject == "" {
		return nil, ErrValidation
	}

	n := &domain.Notification{
		UserID:    req.UserID,
		Type:      typ,
		Subject:   req.Subject,
		Message:   req.Message,
		Recipient: req.Recipient,
		Status:    domain.NotificationPending,
		Data:      req.Data,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	s.deliver(ctx, n)

	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) deliver(ctx context.Context, n *domain.Notification) {
	now := time.Now().UTC()

	if n.Type == domain.NotifInApp {
		// stored either way; the push only reaches connected clients
		if s.hub != nil {
			s.hub.SendToUser(n.UserID, n)
		}
		n.Status = domain.NotificationSent
		n.SentAt = &now
		return
	}

	sender, ok := s.senders[n.Type]
	if !ok {
		n.Status = domain.NotificationFailed
		return
	}

	if err := sender.Send(ctx, n); err != nil {
		s.log.Warn("notification delivery failed",
			zap.Int64("notification_id", n.ID),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
		n.Status = domain.NotificationFailed
		return
	}

	n.Status = domain.NotificationSent
	n.SentAt = &now
}

// CreateBulk fans one message out to many users as in-app notifications.
func (s *Service) CreateBulk(ctx context.Context, req BulkNotificationRequest) (*BulkNotificationResponse, error) {
	typ := domain.NotificationType(req.Type)
	if !validTypes[typ] {
		return nil, ErrUnsupportedType
	}

	out := &BulkNotificationResponse{}
	for _, userID := range req.UserIDs {
		create := CreateNotificationRequest{
			UserID:  userID,
			Type:    req.Type,
			Subject: req.Subject,
			Message: req.Message,
		}
		if typ == domain.NotifEmail || typ == domain.NotifSMS {
			if rec, ok := s.recipientFor(ctx, userID, typ); ok {
				create.Recipient = rec
			}
		}

		n, err := s.Create(ctx, create)
		if err != nil || n.Status == domain.NotificationFailed {
			out.Failed++
			continue
		}
		out.Sent++
	}
	return out, nil
}

func (s *Service) recipientFor(ctx context.Context, userID int64, typ domain.NotificationType) (string, bool) {
	if s.users == nil {
		return "", false
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", false
	}
	if typ == domain.NotifSMS {
		return u.Phone, u.Phone != ""
	}
	return u.Email, u.Email != ""
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) (*NotificationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := s.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	return &NotificationListResponse{Notifications: notifications, Limit: limit, Offset: offset}, nil
}

func (s *Service) Get(ctx context.Context, id, userID int64, actorRole domain.UserRole) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != userID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return n, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	err := s.notifications.MarkRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}
