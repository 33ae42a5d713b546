package repository

import (
	"context"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	UserID             int64      `gorm:"column:user_id;index"`
	RoomID             int64      `gorm:"column:room_id;index"`
	HotelID            int64      `gorm:"column:hotel_id"`
	CheckIn            time.Time  `gorm:"column:check_in"`
	CheckOut           time.Time  `gorm:"column:check_out"`
	Guests             int        `gorm:"column:guests"`
	Nights             int        `gorm:"column:nights"`
	Subtotal           float64    `gorm:"column:subtotal"`
	Taxes              float64    `gorm:"column:taxes"`
	TotalPrice         float64    `gorm:"column:total_price"`
	Status             string     `gorm:"column:status"`
	ConfirmationCode   string     `gorm:"column:confirmation_code;uniqueIndex"`
	SpecialRequests    *string    `gorm:"column:special_requests"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

// ReservationFilter narrows List. UserID 0 means all users (admin view).
type ReservationFilter struct {
	UserID int64
	Status string
	Limit  int
	Offset int
}

func toDomainReservation(m reservationModel) *domain.Reservation {
	res := &domain.Reservation{
		ID:               m.ID,
		UserID:           m.UserID,
		RoomID:           m.RoomID,
		HotelID:          m.HotelID,
		CheckIn:          m.CheckIn,
		CheckOut:         m.CheckOut,
		Guests:           m.Guests,
		Nights:           m.Nights,
		Subtotal:         m.Subtotal,
		Taxes:            m.Taxes,
		TotalPrice:       m.TotalPrice,
		Status:           domain.ReservationStatus(m.Status),
		ConfirmationCode: m.ConfirmationCode,
		CancelledAt:      m.CancelledAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.SpecialRequests != nil {
		res.SpecialRequests = *m.SpecialRequests
	}
	if m.CancellationReason != nil {
		res.CancellationReason = *m.CancellationReason
	}
	return res
}

func toReservationModel(res *domain.Reservation) reservationModel {
	m := reservationModel{
		ID:               res.ID,
		UserID:           res.UserID,
		RoomID:           res.RoomID,
		HotelID:          res.HotelID,
		CheckIn:          res.CheckIn,
		CheckOut:         res.CheckOut,
		Guests:           res.Guests,
		Nights:           res.Nights,
		Subtotal:         res.Subtotal,
		Taxes:            res.Taxes,
		TotalPrice:       res.TotalPrice,
		Status:           string(res.Status),
		ConfirmationCode: res.ConfirmationCode,
		CancelledAt:      res.CancelledAt,
		CreatedAt:        res.CreatedAt,
		UpdatedAt:        res.UpdatedAt,
	}
	if res.SpecialRequests != "" {
		v := res.SpecialRequests
		m.SpecialRequests = &v
	}
	if res.CancellationReason != "" {
		v := res.CancellationReason
		m.CancellationReason = &v
	}
	return m
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]domain.Reservation, int64, error) {
	q := r.db.WithContext(ctx).Model(&reservationModel{})
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reservationModel
	tx := q.Order("id DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, total, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).Where("id = ?", res.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel records the cancellation with its reason and timestamp.
func (r *ReservationRepository) Cancel(ctx context.Context, id int64, reason string, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              string(domain.ReservationCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        at,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountOverlapping counts non-cancelled reservations for the room whose
// stay intersects [checkIn, checkOut).
func (r *ReservationRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM reservations
WHERE room_id = ?
  AND status NOT IN ('cancelled', 'refunded')
  AND check_in < ? AND check_out > ?
`
	tx := r.db.WithContext(ctx).Raw(q, roomID, checkOut, checkIn).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
