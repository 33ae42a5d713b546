package domain

import "time"

type NotificationType string

const (
	NotifEmail NotificationType = "email"
	NotifSMS   NotificationType = "sms"
	NotifPush  NotificationType = "push"
	NotifInApp NotificationType = "in_app"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationRead    NotificationStatus = "read"
)

type Notification struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Type      NotificationType   `json:"type"`
	Subject   string             `json:"subject"`
	Message   string             `json:"message,omitempty"`
	Recipient string             `json:"recipient,omitempty"`
	Status    NotificationStatus `json:"status"`
	IsRead    bool               `json:"is_read"`
	Data      any                `json:"data,omitempty" gorm:"serializer:json"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
