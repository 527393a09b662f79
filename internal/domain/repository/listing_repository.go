package repository

import (
	"context"

	"mazhets/internal/domain/entity"
)

// RemoteListingRepository is the boundary to the hosted data service.
// Implementations return listings newest-first with images and the joined
// seller summary resolved.
type RemoteListingRepository interface {
	List(ctx context.Context) ([]entity.Listing, error)
}

// LocalListingRepository persists device-local listings, newest-first.
// A missing key surfaces as kvstore.ErrNotFound; callers substitute an
// empty sequence.
type LocalListingRepository interface {
	LoadAll(ctx context.Context) ([]entity.Listing, error)
	SaveAll(ctx context.Context, listings []entity.Listing) error
}
