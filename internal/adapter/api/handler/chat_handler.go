package handler

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/usecase"
	"mazhets/pkg/errors"
	"mazhets/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	return response.Success(c, h.chatUseCase.ListChats(c.Request().Context()))
}

// GetMessages loads a conversation's transcript and makes sure its
// directory entry exists, matching the screen-focus behavior of the chat
// thread.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	sellerID := c.Param("sellerId")
	sellerName := c.QueryParam("sellerName")

	if _, err := h.chatUseCase.EnsureChat(c.Request().Context(), sellerID, sellerName); err != nil {
		return response.Error(c, err)
	}

	messages, err := h.chatUseCase.Messages(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

type sendMessageRequest struct {
	Text       string `json:"text" validate:"required"`
	SellerName string `json:"seller_name"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	messages, err := h.chatUseCase.SendMessage(c.Request().Context(), c.Param("sellerId"), req.SellerName, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, messages)
}

func (h *ChatHandler) QuickReplies(c echo.Context) error {
	return response.Success(c, h.chatUseCase.QuickReplies())
}
