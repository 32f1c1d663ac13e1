package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/middleware"
	"creacakes/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupQuoteRouter(e, authMiddleware, adminMiddleware, limiter)
	SetupOrderRouter(e, authMiddleware, adminMiddleware)
	SetupProductRouter(e, authMiddleware, adminMiddleware)
	SetupCategoryRouter(e, authMiddleware, adminMiddleware)
	SetupContactRouter(e, authMiddleware, adminMiddleware, limiter)
	SetupNewsletterRouter(e, authMiddleware, adminMiddleware)
	SetupSettingsRouter(e, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
