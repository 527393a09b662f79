package router

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/adapter/api/handler"
)

func SetupSessionRouter(e *echo.Echo, sessionHandler *handler.SessionHandler) {
	session := e.Group("/v1/session")

	session.GET("", sessionHandler.Status)
	session.POST("/login", sessionHandler.Login)
	session.POST("/logout", sessionHandler.Logout)
}
