package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/internal/middleware"
	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
	tokenTTL       time.Duration
	dummyHash      []byte // checked against when the username is unknown
	log            *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int, log *slog.Logger) *AuthHandler {
	h := &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		log:            logger.Module(log, "http/login"),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		h.log.Warn("failed to prepare dummy password hash", slog.Any("error", err))
	}
	h.dummyHash = hash
	return h
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
}

// Login checks the username and password and issues a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(req.Password))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return repositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.log.Info("login failed", slog.String("user_id", user.ID.Hex()))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	token, err := middleware.GenerateToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate token").SetInternal(err)
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}
