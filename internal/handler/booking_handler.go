package handler

import (
	"net/http"
	"sync"

	"rental_booking/internal/model"
	"rental_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the booking_status rule to gin's validator
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
			_, ok := model.ParseBookingStatus(fl.Field().String())
			return ok
		})
	})
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(s service.BookingService) *BookingHandler {
	registerValidators()
	return &BookingHandler{service: s}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, inserted, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}
	if inserted {
		respond(c, http.StatusCreated, "Booking created successfully", booking)
		return
	}
	respond(c, http.StatusOK, "Booking updated successfully", booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch booking")
		return
	}
	respond(c, http.StatusOK, "Booking found", booking)
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.service.GetAllBookings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch bookings")
		return
	}
	respond(c, http.StatusOK, "Bookings fetched successfully", bookings)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch bookings")
		return
	}
	respond(c, http.StatusOK, "Bookings fetched successfully", bookings)
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), id, req.BookingStatus)
	if err != nil {
		respondError(c, err, "Failed to update booking status")
		return
	}
	respond(c, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete booking")
		return
	}
	respond(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *BookingHandler) ConfirmedByMonth(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	year, err := paramYear(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	counts, err := h.service.ConfirmedByMonth(c.Request.Context(), userID, year)
	if err != nil {
		respondError(c, err, "Failed to count bookings")
		return
	}
	respond(c, http.StatusOK, "Confirmed booking count by month fetched successfully", counts)
}

func (h *BookingHandler) UnconfirmedByMonth(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	year, err := paramYear(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	counts, err := h.service.UnconfirmedByMonth(c.Request.Context(), userID, year)
	if err != nil {
		respondError(c, err, "Failed to count bookings")
		return
	}
	respond(c, http.StatusOK, "Unconfirmed booking count by month fetched successfully", counts)
}

// RegisterBookingRoutes registers booking routes
func (h *BookingHandler) RegisterBookingRoutes(rg *gin.RouterGroup, authMW, hostMW gin.HandlerFunc) {
	g := rg.Group("/booking")
	{
		g.POST("", authMW, h.CreateBooking)
		g.GET("", h.GetAllBookings)
		g.GET("/my", authMW, h.GetMyBookings)
		g.GET("/:id", h.GetBooking)
		g.PUT("/:id", authMW, hostMW, h.UpdateBookingStatus)
		g.DELETE("/:id", h.DeleteBooking)
		g.GET("/booking/host/:year", authMW, hostMW, h.ConfirmedByMonth)
		g.GET("/booking/host/unconfirmed/:year", authMW, hostMW, h.UnconfirmedByMonth)
	}
}
