package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
	"creacakes/internal/infrastructure/ratelimit"
)

func SetupQuoteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	quoteHandler := handler.GetQuoteHandler()

	// Public quote form; auth is optional so logged-in customers get the
	// quote attached to their account.
	e.POST("/v1/quotes", quoteHandler.Submit,
		authMiddleware.OptionalAuthenticate,
		middleware.RateLimit(limiter, "submit_quote"))

	// Customer endpoints
	me := e.Group("/v1/me/quotes", authMiddleware.Authenticate)
	me.GET("", quoteHandler.ListMine)

	// Thread endpoints; access control is enforced in the usecase so
	// customers only reach their own threads.
	quotes := e.Group("/v1/quotes", authMiddleware.Authenticate)
	quotes.GET("/:id", quoteHandler.Get)
	quotes.GET("/:id/messages", quoteHandler.Messages)
	quotes.POST("/:id/messages", quoteHandler.PostMessage,
		middleware.RateLimit(limiter, "post_message"))
	quotes.POST("/:id/files", quoteHandler.PostFile,
		middleware.RateLimit(limiter, "post_message"))

	// Admin endpoints
	admin := e.Group("/v1/admin/quotes", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", quoteHandler.List)
	admin.PATCH("/:id/status", quoteHandler.UpdateStatus)
	admin.POST("/:id/convert", quoteHandler.Convert)
	admin.DELETE("/:id", quoteHandler.Delete)
}
