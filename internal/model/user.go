package model

import "time"

// Role is a permission held by a user
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleHost   Role = "HOST"
	RoleRenter Role = "RENTER"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHost, RoleRenter:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Password     string     `json:"-"` // bcrypt hash, empty for Google accounts
	OTP          *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Roles        []UserRole `json:"roles,omitempty"`
}

// RoleNames flattens the user's role rows
func (u *User) RoleNames() []Role {
	names := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}

// UserRole is one role row owned by a user
type UserRole struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	Role   Role  `json:"role"`
}

// UserSummary is the owner/renter shape embedded in properties and bookings
type UserSummary struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleAuthRequest struct {
	Token string `json:"token" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// AuthResponse is returned by every sign-in path
type AuthResponse struct {
	Token     string `json:"token"`
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Roles     []Role `json:"roles"`
}
