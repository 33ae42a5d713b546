package notification

import "hotelreserve/internal/domain"

type CreateNotificationRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
	Data      any    `json:"data"`
}

type BulkNotificationRequest struct {
	UserIDs []int64 `json:"user_ids" binding:"required,min=1"`
	Type    string  `json:"type" binding:"required"`
	Subject string  `json:"subject" binding:"required"`
	Message string  `json:"message"`
}

type BulkNotificationResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}
