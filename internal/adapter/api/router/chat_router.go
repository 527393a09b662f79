package router

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/adapter/api/handler"
	"mazhets/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, sessionMiddleware *middleware.SessionMiddleware) {
	chats := e.Group("/v1/chats")

	chats.GET("", chatHandler.ListChats)
	chats.GET("/quick-replies", chatHandler.QuickReplies)
	chats.GET("/:sellerId/messages", chatHandler.GetMessages)
	chats.POST("/:sellerId/messages", chatHandler.SendMessage, sessionMiddleware.RequireSignedIn)
}
