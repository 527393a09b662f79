package repository

import "context"

// SessionRepository owns the logged-in flag consulted before publish,
// save and send actions. LoggedIn reports true unless the flag is an
// explicit "false": a device that never signed out stays signed in.
type SessionRepository interface {
	LoggedIn(ctx context.Context) bool
	SetLoggedIn(ctx context.Context, loggedIn bool) error
}
