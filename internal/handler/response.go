package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"rental_booking/internal/middleware"
	"rental_booking/internal/model"
	"rental_booking/internal/service"
	"rental_booking/internal/storage"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidID   = errors.New("invalid id")
	errInvalidYear = errors.New("invalid year")
)

func respond(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, model.Envelope{StatusCode: status, Message: msg, Data: data})
}

func fail(c *gin.Context, status int, msg string, detail any) {
	c.JSON(status, model.Envelope{StatusCode: status, Message: msg, Error: detail})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "Invalid request: "+err.Error(), http.StatusText(http.StatusBadRequest))
}

// respondError maps service errors to status codes. Anything unknown is logged
// and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrInvalidBookingStatus),
		errors.Is(err, storage.ErrInvalidFileFormat),
		errors.Is(err, storage.ErrFileSizeExceeded),
		errors.Is(err, errInvalidID),
		errors.Is(err, errInvalidYear):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidGoogleToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPropertyNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrRoleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrIllegalStatusTransition):
		status = http.StatusConflict
	default:
		slog.ErrorContext(c.Request.Context(), fallback, "method", c.Request.Method, "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, fallback, http.StatusText(http.StatusInternalServerError))
		return
	}
	fail(c, status, err.Error(), http.StatusText(status))
}

func paramID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func paramYear(c *gin.Context) (int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9998 {
		return 0, errInvalidYear
	}
	return year, nil
}

// authUserID reads the caller id; the route must run JWTAuthMiddleware first
func authUserID(c *gin.Context) (int64, bool) {
	id, ok := middleware.AuthUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "User not authenticated", http.StatusText(http.StatusUnauthorized))
	}
	return id, ok
}
