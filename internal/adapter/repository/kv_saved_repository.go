package repository

import (
	"context"

	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
)

const savedIDsKey = "@saved_ids"

type kvSavedRepository struct {
	kv *kvstore.Store
}

func NewKVSavedRepository(kv *kvstore.Store) repository.SavedRepository {
	return &kvSavedRepository{kv: kv}
}

func (r *kvSavedRepository) Load(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.kv.GetJSON(ctx, savedIDsKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *kvSavedRepository) Save(ctx context.Context, ids []string) error {
	return r.kv.SetJSON(ctx, savedIDsKey, ids)
}
