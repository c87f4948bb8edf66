package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rental_booking/internal/mailer"
	"rental_booking/internal/model"
	"rental_booking/internal/repository"
	"rental_booking/internal/utils"
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GoogleAuthenticate(ctx context.Context, idToken string) (*model.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	google   utils.GoogleVerifier
	mailer   mailer.Mailer
	now      func() time.Time
}

// NewAuthService creates a new AuthService. google may be nil when federated login is not configured.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, google utils.GoogleVerifier, m mailer.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		google:   google,
		mailer:   m,
		now:      time.Now,
	}
}

// Signup creates a renter account
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashedPassword,
	}
	if err := s.userRepo.CreateWithRole(ctx, user, model.RoleRenter); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return s.issue(user, user.RoleNames())
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	// Google accounts have an empty password and never match
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	roles, err := s.userRepo.RolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	user.Roles = roles
	return s.issue(user, user.RoleNames())
}

// GoogleAuthenticate signs in with a Google ID token, creating a renter account on first use
func (s *authService) GoogleAuthenticate(ctx context.Context, idToken string) (*model.AuthResponse, error) {
	if s.google == nil {
		return nil, ErrInvalidGoogleToken
	}
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		slog.WarnContext(ctx, "google token rejected", "error", err)
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	if user == nil {
		user = &model.User{
			Email:     profile.Email,
			FirstName: profile.GivenName,
			LastName:  profile.FamilyName,
		}
		err = s.userRepo.CreateWithRole(ctx, user, model.RoleRenter)
		if err == nil {
			return s.issue(user, user.RoleNames())
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create google user: %w", err)
		}
		// created concurrently by another request
		user, err = s.userRepo.FindByEmail(ctx, profile.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to reload google user: %w", err)
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	roles, err := s.userRepo.RolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	user.Roles = roles
	return s.issue(user, user.RoleNames())
}

// RequestPasswordReset stores a fresh OTP and mails it to the user
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(ctx, user.ID, otp, s.now().Add(utils.OTPTTL)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, otp); err != nil {
		return fmt.Errorf("failed to send otp: %w", err)
	}
	return nil
}

// ResetPassword consumes a valid OTP and sets the new password
func (s *authService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.OTP == nil || user.OTPExpiresAt == nil ||
		!strings.EqualFold(*user.OTP, req.OTP) ||
		!s.now().Before(*user.OTPExpiresAt) {
		return ErrInvalidOTP
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) issue(user *model.User, roles []model.Role) (*model.AuthResponse, error) {
	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		slog.Error("user authenticated but token generation failed", "user_id", user.ID, "error", err)
		return nil, err
	}
	return &model.AuthResponse{
		Token:     token,
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
	}, nil
}
