package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
	"creacakes/internal/adapter/api/middleware"
)

func SetupSettingsRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	settingsHandler := handler.GetSettingsHandler()

	e.GET("/v1/settings", settingsHandler.GetSite)
	e.GET("/v1/promo", settingsHandler.GetPromo)

	admin := e.Group("/v1/admin/settings", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.PUT("", settingsHandler.UpdateSite)
	admin.GET("/promo", settingsHandler.GetPromoAdmin)
	admin.PUT("/promo", settingsHandler.UpdatePromo)
}
