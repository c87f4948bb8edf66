package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	CreateWithRole(ctx context.Context, user *model.User, role model.Role) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	RolesByUserID(ctx context.Context, userID int64) ([]model.UserRole, error)
	SetOTP(ctx context.Context, userID int64, otp string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	ToggleHostRenter(ctx context.Context, userID int64) (model.Role, error)
	CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, password, otp, otp_expires_at, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Password,
		&u.OTP, &u.OTPExpiresAt, &u.CreatedAt, &u.UpdatedAt)
}

// CreateWithRole inserts the user and its first role row in one transaction
func (r *userRepository) CreateWithRole(ctx context.Context, user *model.User, role model.Role) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		sql := `INSERT INTO users (email, first_name, last_name, password)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, sql, user.Email, user.FirstName, user.LastName, user.Password).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		ur := model.UserRole{UserID: user.ID, Role: role}
		err = tx.QueryRow(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2) RETURNING id`,
			user.ID, role).Scan(&ur.ID)
		if err != nil {
			return fmt.Errorf("failed to create user role: %w", err)
		}
		user.Roles = []model.UserRole{ur}
		return nil
	})
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, email), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindAll lists every user with their roles
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	index := map[int64]int{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	rows.Close()

	roleRows, err := r.db.Query(ctx, `SELECT id, user_id, role FROM user_roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var ur model.UserRole
		if err := roleRows.Scan(&ur.ID, &ur.UserID, &ur.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user role row: %w", err)
		}
		if i, ok := index[ur.UserID]; ok {
			users[i].Roles = append(users[i].Roles, ur)
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user role rows: %w", err)
	}
	return users, nil
}

// RolesByUserID lists the role rows of a user
func (r *userRepository) RolesByUserID(ctx context.Context, userID int64) ([]model.UserRole, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, role FROM user_roles WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []model.UserRole
	for rows.Next() {
		var ur model.UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.Role); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}
	return roles, nil
}

// SetOTP stores a password-reset code with its expiry
func (r *userRepository) SetOTP(ctx context.Context, userID int64, otp string, expiresAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET otp = $1, otp_expires_at = $2 WHERE id = $3`, otp, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword sets a new password hash and clears any pending OTP
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	sql := `UPDATE users SET password = $1, otp = NULL, otp_expires_at = NULL WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user's roles and then the user in one transaction
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete user roles: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ToggleHostRenter flips the user's HOST/RENTER row and returns the new role.
// ADMIN rows are never touched.
func (r *userRepository) ToggleHostRenter(ctx context.Context, userID int64) (model.Role, error) {
	var next model.Role
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var roleID int64
		var current model.Role
		sql := `SELECT id, role FROM user_roles WHERE user_id = $1 AND role IN ('HOST', 'RENTER')
            ORDER BY id LIMIT 1 FOR UPDATE`
		if err := tx.QueryRow(ctx, sql, userID).Scan(&roleID, &current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load user role: %w", err)
		}

		next = model.RoleHost
		if current == model.RoleHost {
			next = model.RoleRenter
		}
		if _, err := tx.Exec(ctx, `UPDATE user_roles SET role = $1 WHERE id = $2`, next, roleID); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to update user role: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

// CountByMonth buckets signups in the given UTC year by month
func (r *userRepository) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	start, end := yearRange(year)
	sql := `SELECT EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month, COUNT(*)
            FROM users WHERE created_at >= $1 AND created_at < $2 GROUP BY month`
	return countByMonth(ctx, r.db, sql, start, end)
}
