package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
)

type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

// AdminOnly checks the caller's stored role on every request. The role is
// never taken from the client; demoting an admin takes effect immediately.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, ok := c.Get("user").(*entity.User)
		if !ok {
			var err error
			user, err = m.userRepo.GetByID(c.Request().Context(), uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify admin privileges")
			}
		}

		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
