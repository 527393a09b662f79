package middleware

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/domain/repository"
	"mazhets/pkg/errors"
	"mazhets/pkg/response"
)

// SessionMiddleware guards the actions that need a signed-in user:
// publishing, saving and sending messages. Only an explicitly signed-out
// session is blocked; browsing stays open.
type SessionMiddleware struct {
	sessionRepo repository.SessionRepository
}

func NewSessionMiddleware(sessionRepo repository.SessionRepository) *SessionMiddleware {
	return &SessionMiddleware{sessionRepo: sessionRepo}
}

func (m *SessionMiddleware) RequireSignedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.sessionRepo.LoggedIn(c.Request().Context()) {
			return response.Error(c, errors.Unauthorized("Please sign in to continue", nil))
		}
		return next(c)
	}
}
