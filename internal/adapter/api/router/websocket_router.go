package router

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.Connect)
}
