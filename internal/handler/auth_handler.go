package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartclaim/internal/service"
)

// AuthHandler handles account endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /auth/signup
// @Summary Register an account
// @Description Create a user account. Password and confirmation must match; emails are unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account details"
// @Success 201 {object} SignupResponse "User registered"
// @Failure 400 {object} MessageBody "Passwords do not match or user already exists"
// @Failure 500 {object} MessageBody "Server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, MessageBody{Message: "All fields are required"})
		return
	}

	userID, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		HandleMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{Message: "User registered successfully", UserID: userID.String()})
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verify credentials and return the user id with a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} MessageBody "Invalid credentials"
// @Failure 500 {object} MessageBody "Server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, MessageBody{Message: "Invalid credentials"})
		return
	}

	out, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:   "Login successful",
		UserID:    out.UserID.String(),
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Profile handles GET /:userId/profile
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ProfileResponse "User profile"
// @Failure 404 {object} ErrorBody "User not found"
// @Router /{userId}/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
