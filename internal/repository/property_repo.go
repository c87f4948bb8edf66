package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// PropertyRepository defines operations for property listings
type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id int64) (*model.Property, error)
	FindAll(ctx context.Context) ([]model.Property, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Property, error)
	Update(ctx context.Context, id int64, upd *model.UpdatePropertyRequest) (*model.Property, error)
	Delete(ctx context.Context, id int64) error
	CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error)
	CountByMonthForOwner(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error)
}

type propertyRepository struct {
	db DBTX
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db DBTX) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `p.id, p.user_id, p.title, p.location, p.description, p.price_per_night,
    p.bedrooms, p.bathrooms, p.size, p.thumbnail, p.gallery, p.pet_friendly, p.created_at, p.updated_at`

const ownerColumns = `o.id, o.email, o.first_name, o.last_name`

func propertyDest(p *model.Property) []any {
	return []any{&p.ID, &p.UserID, &p.Title, &p.Location, &p.Description, &p.PricePerNight,
		&p.Bedrooms, &p.Bathrooms, &p.Size, &p.Thumbnail, &p.Gallery, &p.PetFriendly, &p.CreatedAt, &p.UpdatedAt}
}

func summaryDest(u *model.UserSummary) []any {
	return []any{&u.ID, &u.Email, &u.FirstName, &u.LastName}
}

// Create inserts a new property owned by p.UserID
func (r *propertyRepository) Create(ctx context.Context, p *model.Property) error {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	sql := `INSERT INTO properties (user_id, title, location, description, price_per_night,
            bedrooms, bathrooms, size, thumbnail, gallery, pet_friendly)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, p.UserID, p.Title, p.Location, p.Description, p.PricePerNight,
		p.Bedrooms, p.Bathrooms, p.Size, p.Thumbnail, p.Gallery, p.PetFriendly).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// FindByID retrieves a property with its owner and bookings
func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*model.Property, error) {
	p := model.Property{User: &model.UserSummary{}}
	sql := `SELECT ` + propertyColumns + `, ` + ownerColumns + `
            FROM properties p JOIN users o ON o.id = p.user_id WHERE p.id = $1`
	dest := append(propertyDest(&p), summaryDest(p.User)...)
	if err := r.db.QueryRow(ctx, sql, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find property by ID: %w", err)
	}

	props := []model.Property{p}
	if err := r.attachBookings(ctx, props); err != nil {
		return nil, err
	}
	return &props[0], nil
}

// FindAll lists every property with owner and bookings
func (r *propertyRepository) FindAll(ctx context.Context) ([]model.Property, error) {
	sql := `SELECT ` + propertyColumns + `, ` + ownerColumns + `
            FROM properties p JOIN users o ON o.id = p.user_id ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	props := []model.Property{}
	for rows.Next() {
		p := model.Property{User: &model.UserSummary{}}
		if err := rows.Scan(append(propertyDest(&p), summaryDest(p.User)...)...); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	rows.Close()

	if err := r.attachBookings(ctx, props); err != nil {
		return nil, err
	}
	return props, nil
}

// FindByOwner lists the properties owned by a host, with bookings
func (r *propertyRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Property, error) {
	sql := `SELECT ` + propertyColumns + ` FROM properties p WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties by owner: %w", err)
	}
	defer rows.Close()

	props := []model.Property{}
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(propertyDest(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	rows.Close()

	if err := r.attachBookings(ctx, props); err != nil {
		return nil, err
	}
	return props, nil
}

// attachBookings loads the bookings (with renter) of every property in one query
func (r *propertyRepository) attachBookings(ctx context.Context, props []model.Property) error {
	if len(props) == 0 {
		return nil
	}
	ids := make([]int64, len(props))
	index := make(map[int64]int, len(props))
	for i := range props {
		ids[i] = props[i].ID
		index[props[i].ID] = i
		props[i].Bookings = []model.Booking{}
	}

	sql := `SELECT ` + bookingColumns + `, u.id, u.email, u.first_name, u.last_name
            FROM bookings b JOIN users u ON u.id = b.user_id
            WHERE b.property_id = ANY($1) ORDER BY b.created_at, b.id`
	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("failed to query property bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b := model.Booking{User: &model.UserSummary{}}
		if err := rows.Scan(append(bookingDest(&b), summaryDest(b.User)...)...); err != nil {
			return fmt.Errorf("failed to scan property booking: %w", err)
		}
		if i, ok := index[b.PropertyID]; ok {
			props[i].Bookings = append(props[i].Bookings, b)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating property bookings: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd and returns the stored row
func (r *propertyRepository) Update(ctx context.Context, id int64, upd *model.UpdatePropertyRequest) (*model.Property, error) {
	var sets []string
	var args []any
	argCount := 1
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argCount))
		args = append(args, v)
		argCount++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.PricePerNight != nil {
		add("price_per_night", *upd.PricePerNight)
	}
	if upd.Bedrooms != nil {
		add("bedrooms", *upd.Bedrooms)
	}
	if upd.Bathrooms != nil {
		add("bathrooms", *upd.Bathrooms)
	}
	if upd.Size != nil {
		add("size", *upd.Size)
	}
	if upd.Thumbnail != nil {
		add("thumbnail", *upd.Thumbnail)
	}
	if upd.Gallery != nil {
		add("gallery", upd.Gallery)
	}
	if upd.PetFriendly != nil {
		add("pet_friendly", *upd.PetFriendly)
	}

	if len(sets) == 0 {
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrNotFound
		}
		return p, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("UPDATE properties p SET ")
	queryBuilder.WriteString(strings.Join(sets, ", "))
	queryBuilder.WriteString(fmt.Sprintf(" WHERE p.id = $%d RETURNING ", argCount))
	queryBuilder.WriteString(propertyColumns)
	args = append(args, id)

	var p model.Property
	if err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(propertyDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &p, nil
}

// Delete removes a property; its bookings cascade
func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByMonth buckets all listings created in the UTC year by month
func (r *propertyRepository) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	start, end := yearRange(year)
	sql := `SELECT EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month, COUNT(*)
            FROM properties WHERE created_at >= $1 AND created_at < $2 GROUP BY month`
	return countByMonth(ctx, r.db, sql, start, end)
}

// CountByMonthForOwner buckets one host's listings created in the UTC year by month
func (r *propertyRepository) CountByMonthForOwner(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error) {
	start, end := yearRange(year)
	sql := `SELECT EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month, COUNT(*)
            FROM properties WHERE user_id = $1 AND created_at >= $2 AND created_at < $3 GROUP BY month`
	return countByMonth(ctx, r.db, sql, ownerID, start, end)
}
