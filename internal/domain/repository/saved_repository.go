package repository

import "context"

// SavedRepository persists the set of saved listing ids.
type SavedRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}
