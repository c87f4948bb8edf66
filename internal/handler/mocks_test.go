package handler

import (
	"context"

	"rental_booking/internal/model"
	"rental_booking/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*model.AuthResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*model.AuthResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) GoogleAuthenticate(ctx context.Context, idToken string) (*model.AuthResponse, error) {
	args := m.Called(ctx, idToken)
	r, _ := args.Get(0).(*model.AuthResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) ToggleRole(ctx context.Context, id int64) (*model.UserRole, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.UserRole)
	return r, args.Error(1)
}

func (m *mockUserService) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

func (m *mockUserService) RolesOf(ctx context.Context, userID int64) ([]model.Role, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.Role)
	return r, args.Error(1)
}

type mockPropertyService struct {
	mock.Mock
}

func (m *mockPropertyService) CreateProperty(ctx context.Context, ownerID int64, req model.CreatePropertyRequest, files service.PropertyUploads) (*model.Property, error) {
	args := m.Called(ctx, ownerID, req, files)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) GetMyProperties(ctx context.Context, ownerID int64) ([]model.Property, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).([]model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) UpdateProperty(ctx context.Context, callerID, id int64, req model.UpdatePropertyRequest, files service.PropertyUploads) (*model.Property, error) {
	args := m.Called(ctx, callerID, id, req, files)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) DeleteProperty(ctx context.Context, callerID, id int64) error {
	return m.Called(ctx, callerID, id).Error(0)
}

func (m *mockPropertyService) HostCountByMonth(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, ownerID, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

func (m *mockPropertyService) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID int64, req model.CreateBookingRequest) (*model.Booking, bool, error) {
	args := m.Called(ctx, userID, req)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) GetAllBookings(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) GetMyBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	args := m.Called(ctx, id, status)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingService) ConfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, hostID, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

func (m *mockBookingService) UnconfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, hostID, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}
