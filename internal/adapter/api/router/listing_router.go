package router

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/adapter/api/handler"
	"mazhets/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, sessionMiddleware *middleware.SessionMiddleware) {
	listings := e.Group("/v1/listings")

	listings.GET("", listingHandler.Browse)
	listings.POST("", listingHandler.Publish, sessionMiddleware.RequireSignedIn)

	e.GET("/v1/stores/:sellerId/listings", listingHandler.Storefront)
}
