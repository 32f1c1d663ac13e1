package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupNewsletterRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	newsletterHandler := handler.GetNewsletterHandler()

	admin := e.Group("/v1/admin/newsletter", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.POST("/send", newsletterHandler.SendCampaign)
	admin.GET("/subscribers", newsletterHandler.ListSubscribers)
}
