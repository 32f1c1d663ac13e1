package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
)

type AuthMiddleware struct {
	authClient *auth.Client
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(authClient *auth.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

// Authenticate requires a valid bearer token and loads the caller into the
// context under "uid" and "user".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		result, err := m.authClient.VerifyIDToken(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", result.UID)

		if user, err := m.userRepo.GetByID(c.Request().Context(), result.UID); err == nil {
			c.Set("user", user)
		}

		return next(c)
	}
}

// OptionalAuthenticate loads the caller when a valid token is present and
// lets anonymous requests through untouched. Used on the quote form so
// logged-in customers get their quotes linked to their account.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return next(c)
		}

		result, err := m.authClient.VerifyIDToken(c.Request().Context(), parts[1])
		if err != nil {
			return next(c)
		}

		c.Set("uid", result.UID)
		if user, err := m.userRepo.GetByID(c.Request().Context(), result.UID); err == nil {
			c.Set("user", user)
		}

		return next(c)
	}
}

// VerifyQueryToken resolves a token passed as a query parameter. Browsers
// cannot set headers on WebSocket upgrades, so the subscribe endpoint uses
// ?token= instead.
func (m *AuthMiddleware) VerifyQueryToken(c echo.Context, token string) (*entity.User, error) {
	result, err := m.authClient.VerifyIDToken(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}

	return m.userRepo.GetByID(c.Request().Context(), result.UID)
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
	}

	return parts[1], nil
}
