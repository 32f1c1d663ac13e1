package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
	"creacakes/internal/infrastructure/ratelimit"
)

func SetupContactRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	contactHandler := handler.GetContactHandler()

	e.POST("/v1/contact", contactHandler.Submit, middleware.RateLimit(limiter, "contact"))
	e.POST("/v1/newsletter/subscribe", contactHandler.Subscribe)
	e.POST("/v1/newsletter/unsubscribe", contactHandler.Unsubscribe)

	admin := e.Group("/v1/admin/contacts", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", contactHandler.List)
	admin.DELETE("/:id", contactHandler.Delete)
}
