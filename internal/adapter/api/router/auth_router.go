package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password", authHandler.ChangePassword, authMiddleware.Authenticate)
}
