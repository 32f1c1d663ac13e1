package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	orderHandler := handler.GetOrderHandler()

	admin := e.Group("/v1/admin/orders", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", orderHandler.List)
	admin.GET("/:id", orderHandler.Get)
	admin.PATCH("/:id/status", orderHandler.UpdateStatus)
	admin.DELETE("/:id", orderHandler.Delete)
}
