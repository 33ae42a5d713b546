package inventory

import (
	"context"
	"testing"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	args := m.Called(ctx, h)
	if h != nil {
		h.ID = 11 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context, f repository.HotelFilter) ([]domain.Hotel, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Hotel), args.Get(1).(int64), args.Error(2)
}

func (m *MockHotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if room != nil {
		room.ID = 21
	}
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) Search(ctx context.Context, f repository.RoomSearchFilter) ([]domain.Room, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) GetRange(ctx context.Context, roomID int64, from, to time.Time) ([]domain.RoomAvailability, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) CountUnavailable(ctx context.Context, roomID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityRepository) Upsert(ctx context.Context, rows []domain.RoomAvailability) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) SetAvailable(ctx context.Context, roomID int64, from, to time.Time, available bool) error {
	args := m.Called(ctx, roomID, from, to, available)
	return args.Error(0)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_CreateHotel_ManagerBecomesOwner(t *testing.T) {
	hotels := new(MockHotelRepository)
	hotels.On("Create", mock.Anything, mock.AnythingOfType("*domain.Hotel")).Return(nil)

	svc := NewService(hotels, new(MockRoomRepository), new(MockAvailabilityRepository))
	hotel, err := svc.CreateHotel(context.Background(), 5, "hotel_manager", CreateHotelRequest{
		Name:    "Grand Plaza",
		Address: "1 Main St",
		City:    "Madrid",
		Country: "Spain",
		Stars:   5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), hotel.ID)
	assert.Equal(t, int64(5), hotel.ManagerID)
	assert.True(t, hotel.IsActive)
}

func TestService_CreateHotel_GuestForbidden(t *testing.T) {
	svc := NewService(new(MockHotelRepository), new(MockRoomRepository), new(MockAvailabilityRepository))

	_, err := svc.CreateHotel(context.Background(), 5, "registered", CreateHotelRequest{
		Name:    "Grand Plaza",
		Address: "1 Main St",
		City:    "Madrid",
		Country: "Spain",
		Stars:   5,
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateHotel_ForeignManagerForbidden(t *testing.T) {
	hotels := new(MockHotelRepository)
	hotels.On("GetByID", mock.Anything, int64(11)).Return(&domain.Hotel{ID: 11, ManagerID: 99}, nil)

	svc := NewService(hotels, new(MockRoomRepository), new(MockAvailabilityRepository))
	name := "Renamed"
	_, err := svc.UpdateHotel(context.Background(), 5, "hotel_manager", 11, UpdateHotelRequest{Name: &name})

	assert.ErrorIs(t, err, ErrForbidden)
	hotels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_DeleteHotel_AdminOnly(t *testing.T) {
	hotels := new(MockHotelRepository)
	hotels.On("Deactivate", mock.Anything, int64(11)).Return(nil)

	svc := NewService(hotels, new(MockRoomRepository), new(MockAvailabilityRepository))

	assert.ErrorIs(t, svc.DeleteHotel(context.Background(), "hotel_manager", 11), ErrForbidden)
	assert.NoError(t, svc.DeleteHotel(context.Background(), "admin", 11))
}

func TestService_CreateRoom_InvalidType(t *testing.T) {
	hotels := new(MockHotelRepository)
	hotels.On("GetByID", mock.Anything, int64(11)).Return(&domain.Hotel{ID: 11, ManagerID: 5}, nil)

	svc := NewService(hotels, new(MockRoomRepository), new(MockAvailabilityRepository))
	_, err := svc.CreateRoom(context.Background(), 5, "hotel_manager", 11, CreateRoomRequest{
		RoomNumber:    "101",
		Type:          "penthouse",
		PricePerNight: 100,
		Capacity:      2,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_GetAvailability_AppliesOverrides(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(21)).Return(&domain.Room{
		ID: 21, HotelID: 11, PricePerNight: 100, Capacity: 2, IsActive: true,
	}, nil)

	override := 150.0
	availability := new(MockAvailabilityRepository)
	availability.On("GetRange", mock.Anything, int64(21), date(2026, 9, 1), date(2026, 9, 4)).
		Return([]domain.RoomAvailability{
			{RoomID: 21, Date: date(2026, 9, 2), IsAvailable: true, PriceOverride: &override},
			{RoomID: 21, Date: date(2026, 9, 3), IsAvailable: false},
		}, nil)

	svc := NewService(new(MockHotelRepository), rooms, availability)
	days, err := svc.GetAvailability(context.Background(), 21, date(2026, 9, 1), date(2026, 9, 4))

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 100.0, days[0].Price)
	assert.True(t, days[0].IsAvailable)
	assert.Equal(t, 150.0, days[1].Price)
	assert.False(t, days[2].IsAvailable)
}

func TestService_CheckStay(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(21)).Return(&domain.Room{
		ID: 21, HotelID: 11, PricePerNight: 80, Capacity: 2, IsActive: true,
	}, nil)

	availability := new(MockAvailabilityRepository)
	availability.On("GetRange", mock.Anything, int64(21), date(2026, 9, 1), date(2026, 9, 3)).
		Return([]domain.RoomAvailability{}, nil)

	svc := NewService(new(MockHotelRepository), rooms, availability)
	available, rates, err := svc.CheckStay(context.Background(), 21, date(2026, 9, 1), date(2026, 9, 3))

	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, []float64{80, 80}, rates)
}

func TestService_CheckStay_BlockedNight(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetByID", mock.Anything, int64(21)).Return(&domain.Room{
		ID: 21, HotelID: 11, PricePerNight: 80, Capacity: 2, IsActive: true,
	}, nil)

	availability := new(MockAvailabilityRepository)
	availability.On("GetRange", mock.Anything, int64(21), date(2026, 9, 1), date(2026, 9, 3)).
		Return([]domain.RoomAvailability{
			{RoomID: 21, Date: date(2026, 9, 2), IsAvailable: false},
		}, nil)

	svc := NewService(new(MockHotelRepository), rooms, availability)
	available, rates, err := svc.CheckStay(context.Background(), 21, date(2026, 9, 1), date(2026, 9, 3))

	require.NoError(t, err)
	assert.False(t, available)
	assert.Nil(t, rates)
}

func TestService_SearchRooms_RequiresFullDateRange(t *testing.T) {
	svc := NewService(new(MockHotelRepository), new(MockRoomRepository), new(MockAvailabilityRepository))

	_, err := svc.SearchRooms(context.Background(), repository.RoomSearchFilter{
		CheckIn: date(2026, 9, 1),
	})

	assert.ErrorIs(t, err, ErrValidation)
}
