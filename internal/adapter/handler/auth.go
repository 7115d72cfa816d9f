package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/auth"
	"github.com/meetscribe-team/meetscribe/internal/adapter/presenter"
	authUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/auth"
	"github.com/meetscribe-team/meetscribe/pkg/jwt"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService *authUsecase.Service
	jwtManager  *jwt.Manager
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *authUsecase.Service, jwtManager *jwt.Manager, logger *zap.Logger) *Auth {
	return &Auth{
		authService: authService,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

func (h *Auth) expiresIn() int {
	return int(h.jwtManager.GetExpiry().Seconds())
}

// Register handles POST /register
// @Summary      Register a new account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.RegisterRequest  true  "Registration request"
// @Success      201      {object}  auth.AuthResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      409      {object}  map[string]interface{}  "Email or username already taken"
// @Router       /register [post]
func (h *Auth) Register(c echo.Context) error {
	var req authDTO.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	user, token, err := h.authService.Register(c.Request().Context(), authUsecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToAuthResponse(user, token, h.expiresIn()))
}

// Login handles POST /login
// @Summary      Authenticate with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.LoginRequest  true  "Login request"
// @Success      200      {object}  auth.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid credentials"
// @Router       /login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(user, token, h.expiresIn()))
}

// Me handles GET /me
// @Summary      Get the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.UserResponse
// @Failure      401  {object}  map[string]interface{}  "User not authenticated"
// @Router       /me [get]
func (h *Auth) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "unauthorized",
			"message": "user not authenticated",
		})
	}

	profile, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, profile)
}

// GoogleLogin handles GET /auth/google/login
// @Summary      Redirect to Google's consent screen
// @Tags         Auth
// @Success      302
// @Router       /auth/google/login [get]
func (h *Auth) GoogleLogin(c echo.Context) error {
	url, err := h.authService.GoogleLoginURL()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback handles GET /auth/google/callback
// @Summary      Complete the Google OAuth flow
// @Tags         Auth
// @Produce      json
// @Param        state  query  string  true  "CSRF state"
// @Param        code   query  string  true  "Authorization code"
// @Success      200  {object}  auth.AuthResponse
// @Failure      401  {object}  map[string]interface{}  "OAuth exchange failed"
// @Router       /auth/google/callback [get]
func (h *Auth) GoogleCallback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if state == "" || code == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": "missing state or code",
		})
	}

	user, token, err := h.authService.GoogleCallback(c.Request().Context(), state, code)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(user, token, h.expiresIn()))
}
