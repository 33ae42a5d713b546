package repository

import (
	"context"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	HotelID       int64     `gorm:"column:hotel_id;index"`
	RoomNumber    string    `gorm:"column:room_number"`
	Type          string    `gorm:"column:type"`
	Description   *string   `gorm:"column:description"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Capacity      int       `gorm:"column:capacity"`
	Amenities     string    `gorm:"column:amenities"`
	Images        string    `gorm:"column:images"`
	IsActive      bool      `gorm:"column:is_active"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

// RoomSearchFilter drives the public room search. CheckIn/CheckOut are
// both set or both zero.
type RoomSearchFilter struct {
	City     string
	HotelID  int64
	Type     string
	Guests   int
	MinPrice float64
	MaxPrice float64
	CheckIn  time.Time
	CheckOut time.Time
	Limit    int
	Offset   int
}

func toDomainRoom(m roomModel) *domain.Room {
	room := &domain.Room{
		ID:            m.ID,
		HotelID:       m.HotelID,
		RoomNumber:    m.RoomNumber,
		Type:          domain.RoomType(m.Type),
		PricePerNight: m.PricePerNight,
		Capacity:      m.Capacity,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Description != nil {
		room.Description = *m.Description
	}
	room.Amenities = fromJSONList(m.Amenities)
	room.Images = fromJSONList(m.Images)
	return room
}

func toRoomModel(room *domain.Room) roomModel {
	m := roomModel{
		ID:            room.ID,
		HotelID:       room.HotelID,
		RoomNumber:    room.RoomNumber,
		Type:          string(room.Type),
		PricePerNight: room.PricePerNight,
		Capacity:      room.Capacity,
		Amenities:     toJSONList(room.Amenities),
		Images:        toJSONList(room.Images),
		IsActive:      room.IsActive,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
	if room.Description != "" {
		v := room.Description
		m.Description = &v
	}
	return m
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rows []roomModel
	tx := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_active = ?", hotelID, true).
		Order("room_number").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", room.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Search returns active rooms matching the filter. When a date range is
// given, rooms with an availability row marking any night unavailable are
// excluded; rooms with no rows at all count as available.
func (r *RoomRepository) Search(ctx context.Context, f RoomSearchFilter) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).
		Table("rooms").
		Select("rooms.*").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.is_active = ? AND hotels.is_active = ?", true, true)

	if f.City != "" {
		q = q.Where("LOWER(hotels.city) = LOWER(?)", f.City)
	}
	if f.HotelID > 0 {
		q = q.Where("rooms.hotel_id = ?", f.HotelID)
	}
	if f.Type != "" {
		q = q.Where("rooms.type = ?", f.Type)
	}
	if f.Guests > 0 {
		q = q.Where("rooms.capacity >= ?", f.Guests)
	}
	if f.MinPrice > 0 {
		q = q.Where("rooms.price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("rooms.price_per_night <= ?", f.MaxPrice)
	}
	if !f.CheckIn.IsZero() && !f.CheckOut.IsZero() {
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM room_availabilities ra
			WHERE ra.room_id = rooms.id
			  AND ra.date >= ? AND ra.date < ?
			  AND ra.is_available = ?
		)`, f.CheckIn, f.CheckOut, false)
	}

	var rows []roomModel
	tx := q.Order("rooms.price_per_night").Limit(f.Limit).Offset(f.Offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}
