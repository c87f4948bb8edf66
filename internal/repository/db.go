package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rental_booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by writes that matched no row
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write
var ErrDuplicate = errors.New("record already exists")

const uniqueViolation = "23505"

// DBTX is the subset of pgxpool.Pool used by the repositories.
// pgx.Tx and pgxmock pools satisfy it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn inside a transaction, committing on success and rolling back otherwise
func withTx(ctx context.Context, db DBTX, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "transaction rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// yearRange returns [year-01-01, year+1-01-01) in UTC
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// countByMonth runs a query returning (month int, count bigint) pairs and fills the buckets
func countByMonth(ctx context.Context, db DBTX, sql string, args ...any) (model.MonthlyCounts, error) {
	var counts model.MonthlyCounts
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return counts, fmt.Errorf("failed to query monthly counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month int32
		var n int64
		if err := rows.Scan(&month, &n); err != nil {
			return counts, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		if month >= 1 && month <= 12 {
			counts[month-1] = n
		}
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating monthly counts: %w", err)
	}
	return counts, nil
}
