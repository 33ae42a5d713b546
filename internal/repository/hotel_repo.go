package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotelreserve/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Address     string    `gorm:"column:address"`
	City        string    `gorm:"column:city;index"`
	Country     string    `gorm:"column:country"`
	Stars       int       `gorm:"column:stars"`
	Email       *string   `gorm:"column:email"`
	Phone       *string   `gorm:"column:phone"`
	ManagerID   *int64    `gorm:"column:manager_id"`
	Amenities   string    `gorm:"column:amenities"`
	Images      string    `gorm:"column:images"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (hotelModel) TableName() string { return "hotels" }

// HotelFilter narrows List results. Zero values mean no filtering.
type HotelFilter struct {
	City     string
	MinStars int
	Limit    int
	Offset   int
}

func toDomainHotel(m hotelModel) *domain.Hotel {
	h := &domain.Hotel{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		City:      m.City,
		Country:   m.Country,
		Stars:     m.Stars,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Description != nil {
		h.Description = *m.Description
	}
	if m.Email != nil {
		h.Email = *m.Email
	}
	if m.Phone != nil {
		h.Phone = *m.Phone
	}
	if m.ManagerID != nil {
		h.ManagerID = *m.ManagerID
	}
	h.Amenities = fromJSONList(m.Amenities)
	h.Images = fromJSONList(m.Images)
	return h
}

func toHotelModel(h *domain.Hotel) hotelModel {
	m := hotelModel{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		City:      h.City,
		Country:   h.Country,
		Stars:     h.Stars,
		IsActive:  h.IsActive,
		Amenities: toJSONList(h.Amenities),
		Images:    toJSONList(h.Images),
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
	if h.Description != "" {
		v := h.Description
		m.Description = &v
	}
	if h.Email != "" {
		v := h.Email
		m.Email = &v
	}
	if h.Phone != "" {
		v := h.Phone
		m.Phone = &v
	}
	if h.ManagerID != 0 {
		v := h.ManagerID
		m.ManagerID = &v
	}
	return m
}

func toJSONList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func fromJSONList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainHotel(m)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var m hotelModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHotel(m), nil
}

func (r *HotelRepository) List(ctx context.Context, f HotelFilter) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&hotelModel{}).Where("is_active = ?", true)
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.MinStars > 0 {
		q = q.Where("stars >= ?", f.MinStars)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []hotelModel
	tx := q.Order("id").Limit(f.Limit).Offset(f.Offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Hotel, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainHotel(m))
	}
	return out, total, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).Model(&hotelModel{}).Where("id = ?", h.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes a hotel by flipping is_active.
func (r *HotelRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&hotelModel{}).
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
