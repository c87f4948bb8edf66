package handler

import (
	"net/http"
	"strings"

	"rental_booking/internal/model"
	"rental_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing requests
type PropertyHandler struct {
	service service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(s service.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: s}
}

// uploadsFrom collects the thumbnail and gallery files of a multipart request
func uploadsFrom(c *gin.Context) (service.PropertyUploads, error) {
	var files service.PropertyUploads
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return files, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return files, err
	}
	if thumbs := form.File["thumbnail"]; len(thumbs) > 0 {
		files.Thumbnail = thumbs[0]
	}
	files.Gallery = form.File["gallery"]
	return files, nil
}

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req model.CreatePropertyRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	files, err := uploadsFrom(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	property, err := h.service.CreateProperty(c.Request.Context(), userID, req, files)
	if err != nil {
		respondError(c, err, "Failed to create property")
		return
	}
	respond(c, http.StatusCreated, "Property created successfully", property)
}

func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	property, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch property")
		return
	}
	respond(c, http.StatusOK, "property post fetched successfully", property)
}

func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	properties, err := h.service.GetAllProperties(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch properties")
		return
	}
	respond(c, http.StatusOK, "properties fetched successfully", properties)
}

func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	properties, err := h.service.GetMyProperties(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch properties")
		return
	}
	respond(c, http.StatusOK, "properties fetched successfully", properties)
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var req model.UpdatePropertyRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	files, err := uploadsFrom(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	property, err := h.service.UpdateProperty(c.Request.Context(), userID, id, req, files)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	respond(c, http.StatusOK, "Property post updated successfully", property)
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "Failed to delete property")
		return
	}
	respond(c, http.StatusOK, "Property post deleted successfully", nil)
}

func (h *PropertyHandler) HostPropertyByMonth(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	year, err := paramYear(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	counts, err := h.service.HostCountByMonth(c.Request.Context(), userID, year)
	if err != nil {
		respondError(c, err, "Failed to count properties")
		return
	}
	respond(c, http.StatusOK, "Host properties count by month fetched successfully", counts)
}

func (h *PropertyHandler) PropertyByMonth(c *gin.Context) {
	year, err := paramYear(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	counts, err := h.service.CountByMonth(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to count properties")
		return
	}
	respond(c, http.StatusOK, "Properties count by month fetched successfully", counts)
}

// RegisterPropertyRoutes registers listing routes
func (h *PropertyHandler) RegisterPropertyRoutes(rg *gin.RouterGroup, authMW, hostMW, adminMW gin.HandlerFunc) {
	g := rg.Group("/property")
	{
		g.POST("", authMW, hostMW, h.CreateProperty)
		g.GET("", h.GetAllProperties)
		g.GET("/my", authMW, hostMW, h.GetMyProperties)
		g.GET("/:id", h.GetProperty)
		g.PUT("/:id", authMW, hostMW, h.UpdateProperty)
		g.DELETE("/:id", authMW, hostMW, h.DeleteProperty)
		g.GET("/properties/host/:year", authMW, hostMW, h.HostPropertyByMonth)
		g.GET("/all/all/:year", authMW, adminMW, h.PropertyByMonth)
	}
}
