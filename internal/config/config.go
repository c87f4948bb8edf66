package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App holds the runtime configuration read from the environment
type App struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	// DB
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// JWT
	JWTSecret   string `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTExpHours int64  `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`

	// HTTP
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	UploadsDir  string `envconfig:"UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int64  `envconfig:"MAX_UPLOAD_MB" default:"5"`

	// Google sign-in
	GoogleClientID string `envconfig:"GOOGLE_CLIENT_ID"`

	// Mail. When RABBIT_URL is empty OTP mails are only logged.
	RabbitURL    string `envconfig:"RABBIT_URL"`
	MailExchange string `envconfig:"MAIL_EXCHANGE" default:"mail.exchange"`
	MailFrom     string `envconfig:"MAIL_FROM" default:"support@lala-rentals.local"`

	// Seed
	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@gmail.com"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD"`
}

// Load processes environment variables into App
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("failed to load config: %w", err)
	}
	if c.JWTSecret == "" {
		return c, fmt.Errorf("failed to load config: JWT_SECRET_KEY is empty")
	}
	if c.JWTExpHours <= 0 {
		c.JWTExpHours = 24
	}
	return c, nil
}

// DBConfig returns the database connection settings
func (c App) DBConfig() *DBConfig {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	return &DBConfig{DSN: dsn}
}

// IsProduction reports whether APP_ENV is production
func (c App) IsProduction() bool {
	return c.Env == "production"
}

// MaxUploadBytes is the per-file upload limit
func (c App) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return c.MaxUploadMB << 20
}

// JWTExpiration is the token lifetime
func (c App) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpHours) * time.Hour
}
