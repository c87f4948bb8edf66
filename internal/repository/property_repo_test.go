package repository

import (
	"context"
	"testing"
	"time"

	"rental_booking/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyCols = []string{"id", "user_id", "title", "location", "description", "price_per_night",
	"bedrooms", "bathrooms", "size", "thumbnail", "gallery", "pet_friendly", "created_at", "updated_at"}

var summaryCols = []string{"o_id", "o_email", "o_first_name", "o_last_name"}

var bookingCols = []string{"id", "user_id", "property_id", "check_in_date", "check_out_date",
	"booking_status", "total_price", "created_at", "updated_at"}

func withCols(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func propertyRow(id, owner int64, now time.Time) []any {
	beds := int32(2)
	return []any{id, owner, "Loft", "Kigali", "Sunny loft", 80.0,
		&beds, (*int32)(nil), (*string)(nil), (*string)(nil), []string{"a.jpg"}, true, now, now}
}

func TestPropertyRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	now := time.Now()

	p := &model.Property{UserID: 3, Title: "Loft", Location: "Kigali", Description: "Sunny loft", PricePerNight: 80}
	mock.ExpectQuery("INSERT INTO properties").
		WithArgs(int64(3), "Loft", "Kigali", "Sunny loft", 80.0,
			(*int32)(nil), (*int32)(nil), (*string)(nil), (*string)(nil), []string{}, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, []string{}, p.Gallery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindByID_EmbedsOwnerAndBookings(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM properties p JOIN users o").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(withCols(propertyCols, summaryCols)).
			AddRow(append(propertyRow(10, 3, now), int64(3), "host@example.com", "Host", "Person")...))
	mock.ExpectQuery("FROM bookings b JOIN users u").
		WithArgs([]int64{10}).
		WillReturnRows(pgxmock.NewRows(withCols(bookingCols, summaryCols)).
			AddRow(int64(1), int64(5), int64(10), now, now.Add(48*time.Hour), model.BookingPending, 160.0, now, now,
				int64(5), "renter@example.com", "Ren", "Ter"))

	p, err := repo.FindByID(context.Background(), 10)

	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.User)
	assert.Equal(t, "host@example.com", p.User.Email)
	require.Len(t, p.Bookings, 1)
	assert.Equal(t, "renter@example.com", p.Bookings[0].User.Email)
	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, int32(2), *p.Bedrooms)
	assert.Nil(t, p.Bathrooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM properties p JOIN users o").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(withCols(propertyCols, summaryCols)))

	p, err := repo.FindByID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindByOwner_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM properties p WHERE p.user_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(propertyCols))

	props, err := repo.FindByOwner(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.NotNil(t, props)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Update_OnlyProvidedFields(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	now := time.Now()
	title := "Penthouse"
	price := 120.0

	mock.ExpectQuery("UPDATE properties p SET title = (.+), price_per_night = (.+) WHERE p.id").
		WithArgs("Penthouse", 120.0, int64(10)).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(propertyRow(10, 3, now)...))

	p, err := repo.Update(context.Background(), 10, &model.UpdatePropertyRequest{Title: &title, PricePerNight: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	title := "Penthouse"

	mock.ExpectQuery("UPDATE properties p SET title").
		WithArgs("Penthouse", int64(10)).
		WillReturnRows(pgxmock.NewRows(propertyCols))

	_, err := repo.Update(context.Background(), 10, &model.UpdatePropertyRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectExec("DELETE FROM properties").WithArgs(int64(10)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 10), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_CountByMonthForOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	start, end := yearRange(2023)

	mock.ExpectQuery("FROM properties WHERE user_id").
		WithArgs(int64(3), start, end).
		WillReturnRows(pgxmock.NewRows([]string{"month", "count"}).AddRow(int32(6), int64(4)))

	counts, err := repo.CountByMonthForOwner(context.Background(), 3, 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[5])
	assert.Equal(t, int64(4), counts.Total())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_FindAll_GroupsBookingsByProperty(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM properties p JOIN users o").
		WillReturnRows(pgxmock.NewRows(withCols(propertyCols, summaryCols)).
			AddRow(append(propertyRow(11, 3, now), int64(3), "host@example.com", "Host", "Person")...).
			AddRow(append(propertyRow(10, 4, now), int64(4), "other@example.com", "Other", "Host")...))
	mock.ExpectQuery("FROM bookings b JOIN users u").
		WithArgs([]int64{11, 10}).
		WillReturnRows(pgxmock.NewRows(withCols(bookingCols, summaryCols)).
			AddRow(int64(1), int64(5), int64(10), now, now.Add(24*time.Hour), model.BookingConfirmed, 80.0, now, now,
				int64(5), "renter@example.com", "Ren", "Ter"))

	props, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "host@example.com", props[0].User.Email)
	assert.Empty(t, props[0].Bookings)
	require.Len(t, props[1].Bookings, 1)
	assert.Equal(t, model.BookingConfirmed, props[1].Bookings[0].BookingStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
