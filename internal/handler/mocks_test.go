package handler

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type stubResolver struct {
	caller authz.Caller
	err    error
	calls  int
}

func (s *stubResolver) Resolve(ctx context.Context, _ string) (context.Context, authz.Caller, error) {
	s.calls++
	if s.err != nil {
		return ctx, authz.Caller{}, s.err
	}
	return authz.WithCaller(ctx, s.caller), s.caller, nil
}

type mockBookingAPI struct {
	mock.Mock
}

func bookingResult(args mock.Arguments) (*application.BookingDTO, error) {
	dto, _ := args.Get(0).(*application.BookingDTO)
	return dto, args.Error(1)
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, req application.CreateBookingRequest) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, req))
}

func (m *mockBookingAPI) UpdateBooking(ctx context.Context, req application.UpdateBookingRequest) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, req))
}

func (m *mockBookingAPI) CancelBooking(ctx context.Context, id uuid.UUID) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, id))
}

func (m *mockBookingAPI) RefundBooking(ctx context.Context, id uuid.UUID) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, id))
}

func (m *mockBookingAPI) GetBooking(ctx context.Context, id uuid.UUID) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, id))
}

func (m *mockBookingAPI) GetBookingByNumber(ctx context.Context, number string) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, number))
}

func (m *mockBookingAPI) PayBooking(ctx context.Context, id uuid.UUID) (*application.BookingDTO, error) {
	return bookingResult(m.Called(ctx, id))
}

func (m *mockBookingAPI) ListBookings(ctx context.Context, q application.ListBookingsQuery) (*domain.PaginatedResult[application.BookingDTO], error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*domain.PaginatedResult[application.BookingDTO])
	return res, args.Error(1)
}

func (m *mockBookingAPI) GetBookingStatistics(ctx context.Context, q application.StatisticsQuery) (*application.BookingStatisticsDTO, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*application.BookingStatisticsDTO)
	return res, args.Error(1)
}

func (m *mockBookingAPI) CheckRoomAvailability(ctx context.Context, q application.AvailabilityQuery) (*application.AvailabilityResult, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*application.AvailabilityResult)
	return res, args.Error(1)
}

func (m *mockBookingAPI) CheckPropertyAvailability(ctx context.Context, q application.AvailabilityQuery) (*application.PropertyAvailabilityDTO, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*application.PropertyAvailabilityDTO)
	return res, args.Error(1)
}

type mockInventoryAPI struct {
	mock.Mock
}

func propertyResult(args mock.Arguments) (*application.PropertyDTO, error) {
	dto, _ := args.Get(0).(*application.PropertyDTO)
	return dto, args.Error(1)
}

func roomTypeResult(args mock.Arguments) (*application.RoomTypeDTO, error) {
	dto, _ := args.Get(0).(*application.RoomTypeDTO)
	return dto, args.Error(1)
}

func roomResult(args mock.Arguments) (*application.RoomDTO, error) {
	dto, _ := args.Get(0).(*application.RoomDTO)
	return dto, args.Error(1)
}

func (m *mockInventoryAPI) CreateProperty(ctx context.Context, req application.CreatePropertyRequest) (*application.PropertyDTO, error) {
	return propertyResult(m.Called(ctx, req))
}

func (m *mockInventoryAPI) UpdateProperty(ctx context.Context, id uuid.UUID, req application.UpdatePropertyRequest) (*application.PropertyDTO, error) {
	return propertyResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInventoryAPI) GetProperty(ctx context.Context, id uuid.UUID) (*application.PropertyDTO, error) {
	return propertyResult(m.Called(ctx, id))
}

func (m *mockInventoryAPI) ListProperties(ctx context.Context, q application.ListPropertiesQuery) (*domain.PaginatedResult[application.PropertyDTO], error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*domain.PaginatedResult[application.PropertyDTO])
	return res, args.Error(1)
}

func (m *mockInventoryAPI) CreateRoomType(ctx context.Context, id uuid.UUID, req application.CreateRoomTypeRequest) (*application.RoomTypeDTO, error) {
	return roomTypeResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) UpdateRoomType(ctx context.Context, id uuid.UUID, req application.UpdateRoomTypeRequest) (*application.RoomTypeDTO, error) {
	return roomTypeResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInventoryAPI) ListRoomTypes(ctx context.Context, id uuid.UUID) ([]application.RoomTypeDTO, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).([]application.RoomTypeDTO)
	return res, args.Error(1)
}

func (m *mockInventoryAPI) CreateRoom(ctx context.Context, id uuid.UUID, req application.CreateRoomRequest) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) UpdateRoom(ctx context.Context, id uuid.UUID, req application.UpdateRoomRequest) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) RetireRoom(ctx context.Context, id uuid.UUID) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id))
}

func (m *mockInventoryAPI) ScheduleMaintenance(ctx context.Context, id uuid.UUID, req application.MaintenanceRequest) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id, req))
}

func (m *mockInventoryAPI) ClearMaintenance(ctx context.Context, id uuid.UUID) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id))
}

func (m *mockInventoryAPI) GetRoom(ctx context.Context, id uuid.UUID) (*application.RoomDTO, error) {
	return roomResult(m.Called(ctx, id))
}

func (m *mockInventoryAPI) ListRooms(ctx context.Context, id uuid.UUID) ([]application.RoomDTO, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).([]application.RoomDTO)
	return res, args.Error(1)
}
