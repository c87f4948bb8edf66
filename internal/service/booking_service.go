package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rental_booking/internal/model"
	"rental_booking/internal/repository"
)

// BookingService defines operations for bookings
type BookingService interface {
	CreateBooking(ctx context.Context, userID int64, req model.CreateBookingRequest) (*model.Booking, bool, error)
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	GetAllBookings(ctx context.Context) ([]model.Booking, error)
	GetMyBookings(ctx context.Context, userID int64) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ConfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error)
	UnconfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error)
}

type bookingService struct {
	bookings   repository.BookingRepository
	properties repository.PropertyRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookings repository.BookingRepository, properties repository.PropertyRepository) BookingService {
	return &bookingService{bookings: bookings, properties: properties}
}

// calculateNights rounds the stay up to whole 24h nights, ignoring date order
func calculateNights(checkIn, checkOut time.Time) int64 {
	d := checkOut.Sub(checkIn)
	if d < 0 {
		d = -d
	}
	return int64(math.Ceil(d.Hours() / 24))
}

// CreateBooking creates the caller's booking for a property, or moves the dates of
// the existing one. The flag reports whether a new booking was created.
func (s *bookingService) CreateBooking(ctx context.Context, userID int64, req model.CreateBookingRequest) (*model.Booking, bool, error) {
	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find property for booking: %w", err)
	}
	if property == nil {
		return nil, false, ErrPropertyNotFound
	}
	if math.IsNaN(property.PricePerNight) || math.IsInf(property.PricePerNight, 0) {
		return nil, false, ErrInvalidPrice
	}

	nights := calculateNights(req.CheckInDate, req.CheckOutDate)
	total := math.Round(float64(nights)*property.PricePerNight*100) / 100

	b := &model.Booking{
		UserID:        userID,
		PropertyID:    req.PropertyID,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
		BookingStatus: model.BookingPending,
		TotalPrice:    total,
	}
	inserted, err := s.bookings.Upsert(ctx, b)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save booking: %w", err)
	}
	return b, inserted, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	bookings, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus applies a status change allowed by the booking lifecycle
func (s *bookingService) UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	next, ok := model.ParseBookingStatus(status)
	if !ok {
		return nil, ErrInvalidBookingStatus
	}

	current, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking for status update: %w", err)
	}
	if current == nil {
		return nil, ErrBookingNotFound
	}
	if !current.BookingStatus.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalStatusTransition, current.BookingStatus, next)
	}
	if current.BookingStatus == next {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, current.BookingStatus, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// deleted or changed by someone else since it was read
			return nil, fmt.Errorf("%w: booking changed concurrently", ErrIllegalStatusTransition)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	updated.Property = current.Property
	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (s *bookingService) ConfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error) {
	return s.countForHost(ctx, hostID, year, model.BookingConfirmed)
}

func (s *bookingService) UnconfirmedByMonth(ctx context.Context, hostID int64, year int) (model.MonthlyCounts, error) {
	return s.countForHost(ctx, hostID, year, model.BookingPending)
}

func (s *bookingService) countForHost(ctx context.Context, hostID int64, year int, status model.BookingStatus) (model.MonthlyCounts, error) {
	counts, err := s.bookings.CountByMonthForHost(ctx, hostID, year, status)
	if err != nil {
		return counts, fmt.Errorf("failed to count %s bookings by month: %w", status, err)
	}
	return counts, nil
}
