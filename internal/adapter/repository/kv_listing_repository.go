package repository

import (
	"context"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
)

const localListingsKey = "@local_listings"

type kvListingRepository struct {
	kv *kvstore.Store
}

func NewKVListingRepository(kv *kvstore.Store) repository.LocalListingRepository {
	return &kvListingRepository{kv: kv}
}

func (r *kvListingRepository) LoadAll(ctx context.Context) ([]entity.Listing, error) {
	listings := []entity.Listing{}
	if err := r.kv.GetJSON(ctx, localListingsKey, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *kvListingRepository) SaveAll(ctx context.Context, listings []entity.Listing) error {
	return r.kv.SetJSON(ctx, localListingsKey, listings)
}
