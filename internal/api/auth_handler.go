package api

import (
	"errors"
	"net/http"

	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, m *metrics.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// --- Request/Response Structs ---

// Email syntax is checked by the service after trimming and lowercasing.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} RegisterResponse "User created"
// @Failure 400 {object} gin.H "Invalid input or email already registered"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err, "Signup failed")
		return
	}
	h.metrics.CounterUsersRegistered.Inc()

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User created!",
		UserID:  user.ID.Hex(),
	})
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input, unknown user or wrong password"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		UserID: user.ID.Hex(),
	})
}

// Me returns the user id carried by the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID})
}

// respondAuthError keeps the auth endpoints' contract: every client-side
// failure is a 400 with a short message.
func (h *AuthHandler) respondAuthError(c *gin.Context, err error, fallback string) {
	var message string
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		message = "User already exists"
	case errors.Is(err, service.ErrUserNotFound):
		message = "User not found"
	case errors.Is(err, service.ErrInvalidPassword):
		message = "Invalid password"
	case errors.Is(err, service.ErrValidation):
		message = clientMessage(err)
	default:
		log.WithError(err).Error(fallback)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, fallback)
		return
	}
	abortWithError(c, http.StatusBadRequest, message)
}
