package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental_booking/internal/config"
	"rental_booking/internal/handler"
	"rental_booking/internal/mailer"
	"rental_booking/internal/middleware"
	"rental_booking/internal/model"
	"rental_booking/internal/mq"
	"rental_booking/internal/repository"
	"rental_booking/internal/service"
	"rental_booking/internal/storage"
	"rental_booking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func newLogger(cfg config.App) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---
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

	// --- Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration())

	var google utils.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google, err = utils.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			logger.Error("failed to set up google verifier", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	var mail mailer.Mailer = mailer.NewLogMailer(cfg.MailFrom, logger)
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.MailExchange)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		mail = mailer.NewQueueMailer(cfg.MailFrom, pub)
	}

	files, err := storage.NewLocalStore(cfg.UploadsDir, "/api/uploads", cfg.MaxUploadBytes())
	if err != nil {
		logger.Error("failed to prepare uploads directory", "dir", cfg.UploadsDir, "error", err)
		os.Exit(1)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	propertyRepo := repository.NewPropertyRepository(dbPool)
	bookingRepo := repository.NewBookingRepository(dbPool)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, google, mail)
	userService := service.NewUserService(userRepo)
	propertyService := service.NewPropertyService(propertyRepo, files)
	bookingService := service.NewBookingService(bookingRepo, propertyRepo)

	// --- Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	hostMW := middleware.HostMiddleware(userService)
	adminMW := middleware.AdminMiddleware(userService)

	api := router.Group("/api")
	handler.NewAuthHandler(authService, userService).RegisterAuthRoutes(api, jwtAuthMW, adminMW)
	handler.NewPropertyHandler(propertyService).RegisterPropertyRoutes(api, jwtAuthMW, hostMW, adminMW)
	handler.NewBookingHandler(bookingService).RegisterBookingRoutes(api, jwtAuthMW, hostMW)
	api.Static("/uploads", files.Dir())

	api.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, model.Envelope{StatusCode: http.StatusServiceUnavailable, Message: "database unhealthy", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, model.Envelope{StatusCode: http.StatusOK, Message: "ok"})
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}
