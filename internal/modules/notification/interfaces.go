package notification

import (
	"context"

	"hotelreserve/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Sender delivers one notification over a single channel.
type Sender interface {
	Send(ctx context.Context, n *domain.Notification) error
}

// Pusher fans a notification out to a connected client, if any.
type Pusher interface {
	SendToUser(userID int64, message any) bool
}
