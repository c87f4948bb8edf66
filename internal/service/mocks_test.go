package service

import (
	"context"
	"mime/multipart"
	"time"

	"rental_booking/internal/model"
	"rental_booking/internal/utils"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateWithRole(ctx context.Context, user *model.User, role model.Role) error {
	args := m.Called(ctx, user, role)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) RolesByUserID(ctx context.Context, userID int64) ([]model.UserRole, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]model.UserRole)
	return r, args.Error(1)
}

func (m *mockUserRepo) SetOTP(ctx context.Context, userID int64, otp string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, otp, expiresAt)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) ToggleHostRenter(ctx context.Context, userID int64) (model.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *mockUserRepo) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *model.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id int64) (*model.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyRepo) FindAll(ctx context.Context) ([]model.Property, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyRepo) FindByOwner(ctx context.Context, ownerID int64) ([]model.Property, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).([]model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyRepo) Update(ctx context.Context, id int64, upd *model.UpdatePropertyRequest) (*model.Property, error) {
	args := m.Called(ctx, id, upd)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPropertyRepo) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

func (m *mockPropertyRepo) CountByMonthForOwner(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error) {
	args := m.Called(ctx, ownerID, year)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Upsert(ctx context.Context, b *model.Booking) (bool, error) {
	args := m.Called(ctx, b)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (*model.Booking, error) {
	args := m.Called(ctx, id, from, to)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookingRepo) CountByMonthForHost(ctx context.Context, hostID int64, year int, status model.BookingStatus) (model.MonthlyCounts, error) {
	args := m.Called(ctx, hostID, year, status)
	return args.Get(0).(model.MonthlyCounts), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, firstName, otp string) error {
	args := m.Called(ctx, to, firstName, otp)
	return args.Error(0)
}

type mockGoogle struct {
	mock.Mock
}

func (m *mockGoogle) Verify(ctx context.Context, idToken string) (*utils.GoogleProfile, error) {
	args := m.Called(ctx, idToken)
	p, _ := args.Get(0).(*utils.GoogleProfile)
	return p, args.Error(1)
}

type mockFileStore struct {
	mock.Mock
}

func (m *mockFileStore) Save(fh *multipart.FileHeader) (string, error) {
	args := m.Called(fh)
	return args.String(0), args.Error(1)
}

func (m *mockFileStore) Remove(publicPath string) error {
	args := m.Called(publicPath)
	return args.Error(0)
}
