package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "mazhets/internal/infrastructure/websocket"
	"mazhets/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades connections for the push channel that
// replaces the saved-screen poll.
type WebSocketHandler struct {
	wsManager *ws.Manager
}

func NewWebSocketHandler(wsManager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager}
}

func (h *WebSocketHandler) Connect(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return err
	}

	client := &ws.Client{
		ID:   fmt.Sprintf("%s-%d", c.RealIP(), time.Now().UnixNano()),
		Conn: conn,
		Send: make(chan []byte, 16),
	}

	h.wsManager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.wsManager)

	return nil
}
