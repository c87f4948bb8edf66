package service

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("user account with email or password not found")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrRoleNotFound       = errors.New("user has no host or renter role")

	ErrPropertyNotFound = errors.New("property not found")
	ErrForbidden        = errors.New("forbidden: user does not have permission for this action")

	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidPrice            = errors.New("invalid property price per night")
	ErrInvalidBookingStatus    = errors.New("invalid booking status")
	ErrIllegalStatusTransition = errors.New("booking status transition not allowed")
)
