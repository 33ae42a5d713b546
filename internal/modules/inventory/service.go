package inventory

import (
	"context"
	"errors"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var validRoomTypes = map[domain.RoomType]bool{
	domain.RoomSingle:       true,
	domain.RoomDouble:       true,
	domain.RoomTwin:         true,
	domain.RoomTriple:       true,
	domain.RoomSuite:        true,
	domain.RoomPresidential: true,
	domain.RoomFamily:       true,
}

type Service struct {
	hotels       HotelRepository
	rooms        RoomRepository
	availability AvailabilityRepository
}

func NewService(hotels HotelRepository, rooms RoomRepository, availability AvailabilityRepository) *Service {
	return &Service{hotels: hotels, rooms: rooms, availability: availability}
}

// canManage reports whether the actor may modify the hotel: admins always,
// hotel managers only for hotels they manage.
func canManage(actorID int64, actorRole string, h *domain.Hotel) bool {
	if actorRole == string(domain.RoleAdmin) {
		return true
	}
	return actorRole == string(domain.RoleHotelManager) && h.ManagerID == actorID
}

func (s *Service) CreateHotel(ctx context.Context, actorID int64, actorRole string, req CreateHotelRequest) (*domain.Hotel, error) {
	if actorRole != string(domain.RoleAdmin) && actorRole != string(domain.RoleHotelManager) {
		return nil, ErrForbidden
	}

	h := &domain.Hotel{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Stars:       req.Stars,
		Email:       req.Email,
		Phone:       req.Phone,
		Amenities:   req.Amenities,
		Images:      req.Images,
		IsActive:    true,
	}
	if actorRole == string(domain.RoleHotelManager) {
		h.ManagerID = actorID
	}

	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) ListHotels(ctx context.Context, city string, minStars, limit, offset int) (*HotelListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	hotels, total, err := s.hotels.List(ctx, repository.HotelFilter{
		City:     city,
		MinStars: minStars,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return &HotelListResponse{Hotels: hotels, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) UpdateHotel(ctx context.Context, actorID int64, actorRole string, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	h, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, h) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.Stars != nil {
		if *req.Stars < 1 || *req.Stars > 5 {
			return nil, ErrValidation
		}
		h.Stars = *req.Stars
	}
	if req.Email != nil {
		h.Email = *req.Email
	}
	if req.Phone != nil {
		h.Phone = *req.Phone
	}
	if req.Amenities != nil {
		h.Amenities = req.Amenities
	}
	if req.Images != nil {
		h.Images = req.Images
	}

	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) DeleteHotel(ctx context.Context, actorRole string, id int64) error {
	if actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.hotels.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateRoom(ctx context.Context, actorID int64, actorRole string, hotelID int64, req CreateRoomRequest) (*domain.Room, error) {
	h, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, h) {
		return nil, ErrForbidden
	}
	if !validRoomTypes[domain.RoomType(req.Type)] {
		return nil, ErrValidation
	}

	room := &domain.Room{
		HotelID:       hotelID,
		RoomNumber:    req.RoomNumber,
		Type:          domain.RoomType(req.Type),
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Amenities:     req.Amenities,
		Images:        req.Images,
		IsActive:      true,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.rooms.ListByHotel(ctx, hotelID)
}

func (s *Service) UpdateRoom(ctx context.Context, actorID int64, actorRole string, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	h, err := s.GetHotel(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, h) {
		return nil, ErrForbidden
	}

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.Type != nil {
		if !validRoomTypes[domain.RoomType(*req.Type)] {
			return nil, ErrValidation
		}
		room.Type = domain.RoomType(*req.Type)
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			return nil, ErrValidation
		}
		room.PricePerNight = *req.PricePerNight
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if req.Images != nil {
		room.Images = req.Images
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, actorID int64, actorRole string, roomID int64) error {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	h, err := s.GetHotel(ctx, room.HotelID)
	if err != nil {
		return err
	}
	if !canManage(actorID, actorRole, h) {
		return ErrForbidden
	}
	return s.rooms.Deactivate(ctx, roomID)
}

func (s *Service) SearchRooms(ctx context.Context, f repository.RoomSearchFilter) ([]domain.Room, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if !f.CheckIn.IsZero() || !f.CheckOut.IsZero() {
		if f.CheckIn.IsZero() || f.CheckOut.IsZero() || !f.CheckOut.After(f.CheckIn) {
			return nil, ErrValidation
		}
	}
	return s.rooms.Search(ctx, f)
}

// GetAvailability returns one entry per night in [from, to) with the
// effective price. Nights without a row fall back to the base rate.
func (s *Service) GetAvailability(ctx context.Context, roomID int64, from, to time.Time) ([]EffectiveDay, error) {
	if !to.After(from) {
		return nil, ErrValidation
	}

	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rows, err := s.availability.GetRange(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]domain.RoomAvailability, len(rows))
	for _, row := range rows {
		byDate[row.Date.Format(dateLayout)] = row
	}

	out := make([]EffectiveDay, 0)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day := EffectiveDay{Date: key, IsAvailable: true, Price: room.PricePerNight}
		if row, ok := byDate[key]; ok {
			day.IsAvailable = row.IsAvailable
			if row.PriceOverride != nil {
				day.Price = *row.PriceOverride
			}
		}
		out = append(out, day)
	}
	return out, nil
}

func (s *Service) SetAvailability(ctx context.Context, actorID int64, actorRole string, roomID int64, req SetAvailabilityRequest) error {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	h, err := s.GetHotel(ctx, room.HotelID)
	if err != nil {
		return err
	}
	if !canManage(actorID, actorRole, h) {
		return ErrForbidden
	}

	rows := make([]domain.RoomAvailability, 0, len(req.Days))
	for _, day := range req.Days {
		date, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			return ErrValidation
		}
		if day.PriceOverride != nil && *day.PriceOverride <= 0 {
			return ErrValidation
		}
		rows = append(rows, domain.RoomAvailability{
			RoomID:        roomID,
			Date:          date,
			IsAvailable:   day.IsAvailable,
			PriceOverride: day.PriceOverride,
		})
	}

	return s.availability.Upsert(ctx, rows)
}

// CheckStay reports whether the room can host a stay and the per-night
// rates the booking service should charge.
func (s *Service) CheckStay(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, []float64, error) {
	days, err := s.GetAvailability(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, nil, err
	}

	rates := make([]float64, 0, len(days))
	for _, day := range days {
		if !day.IsAvailable {
			return false, nil, nil
		}
		rates = append(rates, day.Price)
	}
	return true, rates, nil
}

// HoldStay marks the stay's nights unavailable so overlapping reservations
// cannot be sold.
func (s *Service) HoldStay(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return err
	}
	return s.availability.SetAvailable(ctx, roomID, checkIn, checkOut, false)
}

// ReleaseStay frees nights held by a cancelled or modified reservation.
func (s *Service) ReleaseStay(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return err
	}
	return s.availability.SetAvailable(ctx, roomID, checkIn, checkOut, true)
}
