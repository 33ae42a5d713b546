package repository

import (
	"context"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomID        int64     `gorm:"column:room_id;uniqueIndex:idx_room_date"`
	Date          time.Time `gorm:"column:date;uniqueIndex:idx_room_date"`
	IsAvailable   bool      `gorm:"column:is_available"`
	PriceOverride *float64  `gorm:"column:price_override"`
}

func (availabilityModel) TableName() string { return "room_availabilities" }

func toDomainAvailability(m availabilityModel) domain.RoomAvailability {
	return domain.RoomAvailability{
		ID:            m.ID,
		RoomID:        m.RoomID,
		Date:          m.Date,
		IsAvailable:   m.IsAvailable,
		PriceOverride: m.PriceOverride,
	}
}

// GetRange returns availability rows for [from, to), ordered by date.
// Dates without a row are simply absent.
func (r *AvailabilityRepository) GetRange(ctx context.Context, roomID int64, from, to time.Time) ([]domain.RoomAvailability, error) {
	var rows []availabilityModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ? AND date < ?", roomID, from, to).
		Order("date").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.RoomAvailability, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAvailability(m))
	}
	return out, nil
}

// CountUnavailable counts nights in [from, to) explicitly marked unavailable.
func (r *AvailabilityRepository) CountUnavailable(ctx context.Context, roomID int64, from, to time.Time) (int64, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM room_availabilities
WHERE room_id = ?
  AND date >= ? AND date < ?
  AND is_available = ?
`
	tx := r.db.WithContext(ctx).Raw(q, roomID, from, to, false).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// Upsert writes one row per date, replacing existing rows on conflict.
func (r *AvailabilityRepository) Upsert(ctx context.Context, rows []domain.RoomAvailability) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]availabilityModel, 0, len(rows))
	for _, a := range rows {
		models = append(models, availabilityModel{
			RoomID:        a.RoomID,
			Date:          a.Date,
			IsAvailable:   a.IsAvailable,
			PriceOverride: a.PriceOverride,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_available", "price_override"}),
		}).
		Create(&models).Error
}

// SetAvailable flips the availability flag for every night in [from, to),
// creating rows where none exist. Used by the booking service to hold and
// release dates.
func (r *AvailabilityRepository) SetAvailable(ctx context.Context, roomID int64, from, to time.Time, available bool) error {
	rows := make([]availabilityModel, 0)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		rows = append(rows, availabilityModel{
			RoomID:      roomID,
			Date:        d,
			IsAvailable: available,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_available"}),
		}).
		Create(&rows).Error
}
