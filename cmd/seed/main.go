package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"rental_booking/internal/config"
	"rental_booking/internal/model"
	"rental_booking/internal/repository"
	"rental_booking/internal/utils"

	"github.com/joho/godotenv"
)

// seed creates the initial ADMIN account unless the email is already taken
func seed(ctx context.Context, users repository.UserRepository, email, password string) (bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &model.User{Email: email, FirstName: "Admin", LastName: "Admin", Password: hash}
	if err := users.CreateWithRole(ctx, admin, model.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.SeedAdminPassword == "" {
		logger.Error("SEED_ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := config.ConnectDB(ctx, cfg.DBConfig())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	created, err := seed(ctx, repository.NewUserRepository(dbPool), cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		logger.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}
	if !created {
		logger.Info("admin already exists", "email", cfg.SeedAdminEmail)
		return
	}
	logger.Info("admin created", "email", cfg.SeedAdminEmail)
}
