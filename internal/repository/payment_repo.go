package repository

import (
	"context"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	ReservationID  int64      `gorm:"column:reservation_id;index"`
	UserID         int64      `gorm:"column:user_id;index"`
	Amount         float64    `gorm:"column:amount"`
	Currency       string     `gorm:"column:currency"`
	Method         string     `gorm:"column:method"`
	Status         string     `gorm:"column:status"`
	TransactionID  *string    `gorm:"column:transaction_id"`
	FailureReason  *string    `gorm:"column:failure_reason"`
	RefundedAmount float64    `gorm:"column:refunded_amount"`
	RefundedAt     *time.Time `gorm:"column:refunded_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	p := &domain.Payment{
		ID:             m.ID,
		ReservationID:  m.ReservationID,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Currency:       m.Currency,
		Method:         domain.PaymentMethod(m.Method),
		Status:         domain.PaymentStatus(m.Status),
		RefundedAmount: m.RefundedAmount,
		RefundedAt:     m.RefundedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.TransactionID != nil {
		p.TransactionID = *m.TransactionID
	}
	if m.FailureReason != nil {
		p.FailureReason = *m.FailureReason
	}
	return p
}

func toPaymentModel(p *domain.Payment) paymentModel {
	m := paymentModel{
		ID:             p.ID,
		ReservationID:  p.ReservationID,
		UserID:         p.UserID,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Method:         string(p.Method),
		Status:         string(p.Status),
		RefundedAmount: p.RefundedAmount,
		RefundedAt:     p.RefundedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.TransactionID != "" {
		v := p.TransactionID
		m.TransactionID = &v
	}
	if p.FailureReason != "" {
		v := p.FailureReason
		m.FailureReason = &v
	}
	return m
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&paymentModel{})
	if userID > 0 {
		q = q.Where("user_id = ?", userID)
	}

	var rows []paymentModel
	tx := q.Order("id DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).Where("id = ?", p.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasCompleted reports whether the reservation already has a completed payment.
func (r *PaymentRepository) HasCompleted(ctx context.Context, reservationID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("reservation_id = ? AND status = ?", reservationID, string(domain.PaymentCompleted)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
