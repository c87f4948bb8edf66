package handler

import (
	"net/http"

	"rental_booking/internal/model"
	"rental_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication and user administration requests
type AuthHandler struct {
	auth  service.AuthService
	users service.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, users service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	respond(c, http.StatusCreated, "User created successfully", resp)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}
	respond(c, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) GoogleAuthenticate(c *gin.Context) {
	var req model.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.auth.GoogleAuthenticate(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err, "Failed to authenticate with google")
		return
	}
	respond(c, http.StatusOK, "Google authentication successful", resp)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req model.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to send password reset OTP")
		return
	}
	respond(c, http.StatusOK, "OTP sent to your email", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	respond(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.users.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	respond(c, http.StatusOK, "Users fetched successfully", users)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *AuthHandler) UpdateUserRole(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	role, err := h.users.ToggleRole(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to update user role")
		return
	}
	respond(c, http.StatusOK, "User role updated successfully", role)
}

func (h *AuthHandler) UsersCountByMonth(c *gin.Context) {
	year, err := paramYear(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	counts, err := h.users.CountByMonth(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to count users")
		return
	}
	respond(c, http.StatusOK, "Users count by month fetched successfully", counts)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
		authGroup.POST("/google-authenticate", h.GoogleAuthenticate)
		authGroup.POST("/request-password-reset", h.RequestPasswordReset)
		authGroup.POST("/reset-password", h.ResetPassword)
		authGroup.GET("/users", h.GetUsers)
		authGroup.DELETE("/delete/:id", authMW, h.DeleteUser)
		authGroup.PUT("/update/:id", authMW, adminMW, h.UpdateUserRole)
		authGroup.GET("/user/count-by-month/:year", h.UsersCountByMonth)
	}
}
