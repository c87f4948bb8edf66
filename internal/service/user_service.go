package service

import (
	"context"
	"errors"
	"fmt"

	"rental_booking/internal/model"
	"rental_booking/internal/repository"
)

// UserService manages accounts and their roles
type UserService interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ToggleRole(ctx context.Context, id int64) (*model.UserRole, error)
	CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error)
	RolesOf(ctx context.Context, userID int64) ([]model.Role, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user and its role rows
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ToggleRole switches the user between HOST and RENTER
func (s *userService) ToggleRole(ctx context.Context, id int64) (*model.UserRole, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role, err := s.userRepo.ToggleHostRenter(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("user already holds role: %w", err)
		}
		return nil, fmt.Errorf("failed to toggle role: %w", err)
	}

	roles, err := s.userRepo.RolesByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	for i := range roles {
		if roles[i].Role == role {
			return &roles[i], nil
		}
	}
	return &model.UserRole{UserID: id, Role: role}, nil
}

func (s *userService) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	counts, err := s.userRepo.CountByMonth(ctx, year)
	if err != nil {
		return counts, fmt.Errorf("failed to count users by month: %w", err)
	}
	return counts, nil
}

// RolesOf returns the current role names of a user, read from the database
func (s *userService) RolesOf(ctx context.Context, userID int64) ([]model.Role, error) {
	rows, err := s.userRepo.RolesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	roles := make([]model.Role, 0, len(rows))
	for _, r := range rows {
		roles = append(roles, r.Role)
	}
	return roles, nil
}
