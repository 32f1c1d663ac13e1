package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupCategoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	categoryHandler := handler.GetCategoryHandler()

	e.GET("/v1/categories", categoryHandler.List)
	e.GET("/v1/categories/:slug", categoryHandler.GetBySlug)

	admin := e.Group("/v1/admin/categories", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.POST("", categoryHandler.Create)
	admin.PUT("/:id", categoryHandler.Update)
	admin.DELETE("/:id", categoryHandler.Delete)
}
