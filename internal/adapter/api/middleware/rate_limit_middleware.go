package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"creacakes/internal/infrastructure/ratelimit"
	"creacakes/pkg/logger"
)

// RateLimit guards an action with the shared limiter. The bucket key is the
// authenticated uid when present, the client IP otherwise.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := c.RealIP()
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				caller = uid
			}

			allowed, retryAfter := limiter.Allow(caller, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s", caller, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(retryAfter.Seconds()) + 1,
				})
			}

			return next(c)
		}
	}
}
