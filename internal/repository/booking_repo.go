package repository

import (
	"context"
	"errors"
	"fmt"

	"rental_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// BookingRepository defines operations for bookings
type BookingRepository interface {
	Upsert(ctx context.Context, b *model.Booking) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindAll(ctx context.Context) ([]model.Booking, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
	CountByMonthForHost(ctx context.Context, hostID int64, year int, status model.BookingStatus) (model.MonthlyCounts, error)
}

type bookingRepository struct {
	db DBTX
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DBTX) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `b.id, b.user_id, b.property_id, b.check_in_date, b.check_out_date,
    b.booking_status, b.total_price, b.created_at, b.updated_at`

func bookingDest(b *model.Booking) []any {
	return []any{&b.ID, &b.UserID, &b.PropertyID, &b.CheckInDate, &b.CheckOutDate,
		&b.BookingStatus, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt}
}

const bookingWithPropertySelect = `SELECT ` + bookingColumns + `, ` + propertyColumns + `, ` + ownerColumns + `
    FROM bookings b
    JOIN properties p ON p.id = b.property_id
    JOIN users o ON o.id = p.user_id`

func scanBookingWithProperty(row scanner) (model.Booking, error) {
	b := model.Booking{Property: &model.Property{User: &model.UserSummary{}}}
	dest := bookingDest(&b)
	dest = append(dest, propertyDest(b.Property)...)
	dest = append(dest, summaryDest(b.Property.User)...)
	err := row.Scan(dest...)
	return b, err
}

// Upsert inserts a pending booking for (user, property) or, when one exists,
// moves its dates. Price and status of an existing booking are left unchanged.
// The returned flag is true when a new row was inserted.
func (r *bookingRepository) Upsert(ctx context.Context, b *model.Booking) (bool, error) {
	sql := `INSERT INTO bookings AS b (user_id, property_id, check_in_date, check_out_date, booking_status, total_price)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (user_id, property_id) DO UPDATE
            SET check_in_date = EXCLUDED.check_in_date, check_out_date = EXCLUDED.check_out_date
            RETURNING ` + bookingColumns + `, (xmax = 0) AS inserted`
	var inserted bool
	dest := append(bookingDest(b), &inserted)
	err := r.db.QueryRow(ctx, sql, b.UserID, b.PropertyID, b.CheckInDate, b.CheckOutDate, b.BookingStatus, b.TotalPrice).
		Scan(dest...)
	if err != nil {
		return false, fmt.Errorf("failed to upsert booking: %w", err)
	}
	return inserted, nil
}

// FindByID retrieves a booking with its property and the property owner
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := scanBookingWithProperty(r.db.QueryRow(ctx, bookingWithPropertySelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return &b, nil
}

// FindAll lists every booking
func (r *bookingRepository) FindAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, bookingWithPropertySelect+` ORDER BY b.created_at DESC, b.id DESC`)
}

// FindByUser lists the bookings made by a renter
func (r *bookingRepository) FindByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return r.list(ctx, bookingWithPropertySelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC`, userID)
}

func (r *bookingRepository) list(ctx context.Context, sql string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBookingWithProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking from one status to another. It matches only
// while the stored status still equals from, so a concurrent change makes it
// return ErrNotFound.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (*model.Booking, error) {
	sql := `UPDATE bookings b SET booking_status = $1 WHERE b.id = $2 AND b.booking_status = $3
            RETURNING ` + bookingColumns
	var b model.Booking
	if err := r.db.QueryRow(ctx, sql, to, id, from).Scan(bookingDest(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &b, nil
}

// Delete removes a booking
func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByMonthForHost buckets bookings with the given status on the host's
// properties, created in the UTC year, by month
func (r *bookingRepository) CountByMonthForHost(ctx context.Context, hostID int64, year int, status model.BookingStatus) (model.MonthlyCounts, error) {
	start, end := yearRange(year)
	sql := `SELECT EXTRACT(MONTH FROM b.created_at AT TIME ZONE 'UTC')::int AS month, COUNT(*)
            FROM bookings b JOIN properties p ON p.id = b.property_id
            WHERE p.user_id = $1 AND b.booking_status = $2 AND b.created_at >= $3 AND b.created_at < $4
            GROUP BY month`
	return countByMonth(ctx, r.db, sql, hostID, status, start, end)
}
