package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
)

// SetupDevRouter registers development-only endpoints. main only calls this
// outside production.
func SetupDevRouter(e *echo.Echo) {
	devTokenHandler := handler.GetDevTokenHandler()
	if devTokenHandler == nil {
		return
	}

	e.POST("/dev/token", devTokenHandler.GenerateToken)
}
