package handler

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/domain/repository"
	"mazhets/pkg/logger"
	"mazhets/pkg/response"
)

// SessionHandler flips the persisted logged-in flag. There is no real
// authentication here, just the single-device session toggle the guarded
// actions consult.
type SessionHandler struct {
	sessionRepo repository.SessionRepository
}

func NewSessionHandler(sessionRepo repository.SessionRepository) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo}
}

func (h *SessionHandler) Login(c echo.Context) error {
	if err := h.sessionRepo.SetLoggedIn(c.Request().Context(), true); err != nil {
		logger.Warn("failed to persist session flag: %v", err)
	}
	return response.Success(c, map[string]bool{"logged_in": true})
}

func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionRepo.SetLoggedIn(c.Request().Context(), false); err != nil {
		logger.Warn("failed to persist session flag: %v", err)
	}
	return response.Success(c, map[string]bool{"logged_in": false})
}

func (h *SessionHandler) Status(c echo.Context) error {
	return response.Success(c, map[string]bool{
		"logged_in": h.sessionRepo.LoggedIn(c.Request().Context()),
	})
}
