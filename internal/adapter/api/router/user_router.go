package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/me", authMiddleware.Authenticate)
	me.GET("", userHandler.GetProfile)
	me.PUT("", userHandler.UpdateProfile)

	admin := e.Group("/v1/admin/users", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", userHandler.List)
	admin.PATCH("/:id/role", userHandler.SetRole)
}
