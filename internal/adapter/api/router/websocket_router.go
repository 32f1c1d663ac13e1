package router

import (
	"github.com/labstack/echo/v4"

	"creacakes/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	websocketHandler := handler.GetWebSocketHandler()

	// Token is verified from the query string inside the handler.
	e.GET("/ws/quotes/:id", websocketHandler.SubscribeThread)
}
