package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id;index"`
	Type      string     `gorm:"column:type"`
	Subject   string     `gorm:"column:subject"`
	Message   *string    `gorm:"column:message"`
	Recipient *string    `gorm:"column:recipient"`
	Status    string     `gorm:"column:status"`
	IsRead    bool       `gorm:"column:is_read"`
	Data      *string    `gorm:"column:data"`
	SentAt    *time.Time `gorm:"column:sent_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	n := &domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.NotificationType(m.Type),
		Subject:   m.Subject,
		Status:    domain.NotificationStatus(m.Status),
		IsRead:    m.IsRead,
		SentAt:    m.SentAt,
		CreatedAt: m.CreatedAt,
	}
	if m.Message != nil {
		n.Message = *m.Message
	}
	if m.Recipient != nil {
		n.Recipient = *m.Recipient
	}
	if m.Data != nil && *m.Data != "" {
		var data any
		if err := json.Unmarshal([]byte(*m.Data), &data); err == nil {
			n.Data = data
		}
	}
	return n
}

func toNotificationModel(n *domain.Notification) notificationModel {
	m := notificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Subject:   n.Subject,
		Status:    string(n.Status),
		IsRead:    n.IsRead,
		SentAt:    n.SentAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Message != "" {
		v := n.Message
		m.Message = &v
	}
	if n.Recipient != "" {
		v := n.Recipient
		m.Recipient = &v
	}
	if n.Data != nil {
		if raw, err := json.Marshal(n.Data); err == nil {
			v := string(raw)
			m.Data = &v
		}
	}
	return m
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := toNotificationModel(n)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var m notificationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainNotification(m), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	q := r.db.WithContext(ctx).Model(&notificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var rows []notificationModel
	tx := q.Order("id DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	m := toNotificationModel(n)
	tx := r.db.WithContext(ctx).Model(&notificationModel{}).Where("id = ?", n.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "status": string(domain.NotificationRead)})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "status": string(domain.NotificationRead)})
	return tx.RowsAffected, tx.Error
}
