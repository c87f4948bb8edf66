package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: nil,
}

// ParseBookingStatus accepts any casing ("Pending", "CONFIRMED", ...)
func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bookingTransitions[st]; !ok {
		return "", false
	}
	return st, true
}

// CanTransitionTo reports whether the booking may move from s to next.
// Re-applying the current status is allowed and changes nothing.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a renter's stay at a property
type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	PropertyID    int64         `json:"propertyId"`
	CheckInDate   time.Time     `json:"checkInDate"`
	CheckOutDate  time.Time     `json:"checkOutDate"`
	BookingStatus BookingStatus `json:"bookingStatus"`
	TotalPrice    float64       `json:"totalPrice"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	User          *UserSummary  `json:"user,omitempty"`
	Property      *Property     `json:"property,omitempty"`
}

type CreateBookingRequest struct {
	PropertyID   int64     `json:"propertyId" binding:"required,gt=0"`
	CheckInDate  time.Time `json:"checkInDate" binding:"required"`
	CheckOutDate time.Time `json:"checkOutDate" binding:"required"`
}

// UnmarshalJSON accepts RFC 3339 timestamps or plain YYYY-MM-DD dates
func (r *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		PropertyID   int64  `json:"propertyId"`
		CheckInDate  string `json:"checkInDate"`
		CheckOutDate string `json:"checkOutDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in, err := parseBookingDate(raw.CheckInDate)
	if err != nil {
		return fmt.Errorf("checkInDate: %w", err)
	}
	out, err := parseBookingDate(raw.CheckOutDate)
	if err != nil {
		return fmt.Errorf("checkOutDate: %w", err)
	}
	r.PropertyID, r.CheckInDate, r.CheckOutDate = raw.PropertyID, in, out
	return nil
}

func parseBookingDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

type UpdateBookingStatusRequest struct {
	BookingStatus string `json:"bookingStatus" binding:"required,booking_status"`
}
