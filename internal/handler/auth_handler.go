package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "jobtracker/internal/errors"
	"jobtracker/internal/model"
	"jobtracker/internal/service"
	"jobtracker/internal/session"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	codec       *session.CookieCodec
	secure      bool
}

// NewAuthHandler creates a new auth handler. secure controls the session
// cookie's Secure flag (on in production).
func NewAuthHandler(authService service.AuthService, codec *session.CookieCodec, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec, secure: secure}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful auth response.
type AuthResponse struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

// MeResponse wraps the current user for GET /auth/me.
type MeResponse struct {
	User model.PublicUser `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "Invalid input",
			Errors:  apperrors.FieldErrors(err),
		})
	}

	user, sess, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}

	c.SetCookie(session.NewCookie(h.codec.Encode(sess.ID), h.secure))
	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		User:    user.Public(),
	})
}

// Login godoc
// @Summary Login with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "Invalid input"})
	}

	user, sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}

	c.SetCookie(session.NewCookie(h.codec.Encode(sess.ID), h.secure))
	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user.Public(),
	})
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Unauthorized"})
	}

	if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{Message: "Could not log out"})
	}

	c.SetCookie(session.ExpiredCookie(h.secure))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Unauthorized"})
	}

	// Answered from the session payload; the credential store is not consulted.
	return c.JSON(http.StatusOK, MeResponse{
		User: model.PublicUser{ID: sess.UserID, Username: sess.Username},
	})
}
