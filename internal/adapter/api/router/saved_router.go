package router

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/adapter/api/handler"
	"mazhets/internal/adapter/api/middleware"
)

func SetupSavedRouter(e *echo.Echo, savedHandler *handler.SavedHandler, sessionMiddleware *middleware.SessionMiddleware) {
	saved := e.Group("/v1/saved")

	saved.GET("", savedHandler.List)
	saved.GET("/:listingId/status", savedHandler.Status)
	saved.POST("/:listingId/toggle", savedHandler.Toggle, sessionMiddleware.RequireSignedIn)
}
