package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	productHandler := handler.GetProductHandler()

	// Public catalog
	e.GET("/v1/products", productHandler.List, authMiddleware.OptionalAuthenticate)
	e.GET("/v1/products/:id", productHandler.Get)

	// Admin catalog management
	admin := e.Group("/v1/admin/products", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.POST("", productHandler.Create)
	admin.PUT("/:id", productHandler.Update)
	admin.POST("/:id/image", productHandler.UploadImage)
	admin.DELETE("/:id", productHandler.Delete)
}
