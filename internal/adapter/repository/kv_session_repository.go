package repository

import (
	"context"

	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
)

const loggedInKey = "@logged_in"

type kvSessionRepository struct {
	kv *kvstore.Store
}

func NewKVSessionRepository(kv *kvstore.Store) repository.SessionRepository {
	return &kvSessionRepository{kv: kv}
}

// LoggedIn reports false only for an explicit "false": a missing or
// unreadable flag never locks the user out.
func (r *kvSessionRepository) LoggedIn(ctx context.Context) bool {
	return r.kv.GetString(ctx, loggedInKey, "true") != "false"
}

func (r *kvSessionRepository) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	value := "true"
	if !loggedIn {
		value = "false"
	}
	return r.kv.SetString(ctx, loggedInKey, value)
}
