package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazhets/internal/adapter/repository"
	"mazhets/internal/domain/entity"
	domainrepo "mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
	"mazhets/pkg/errors"
)

type fakeRemoteRepo struct {
	listings []entity.Listing
	err      error
}

func (f *fakeRemoteRepo) List(ctx context.Context) ([]entity.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

func newLocalTestRepo(t *testing.T) domainrepo.LocalListingRepository {
	t.Helper()
	redis := miniredis.RunT(t)
	kv := kvstore.NewStoreFromAddr(redis.Addr(), "")
	t.Cleanup(func() { kv.Close() })
	return repository.NewKVListingRepository(kv)
}

func remoteListing(id, title, category string, priceCents int64, sellerID string) entity.Listing {
	return entity.Listing{
		ID:         id,
		Title:      title,
		PriceCents: priceCents,
		Category:   category,
		Seller:     entity.Seller{ID: sellerID, Name: "Remote Seller"},
		CreatedAt:  time.Now().Add(-time.Hour),
	}
}

func TestPublishValidation(t *testing.T) {
	uc := NewListingUseCase(newLocalTestRepo(t), &fakeRemoteRepo{})
	ctx := context.Background()

	_, err := uc.Publish(ctx, PublishInput{Title: "  ", Images: []string{"a.jpg"}})
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "missing title must be rejected")

	_, err = uc.Publish(ctx, PublishInput{Title: "Bike"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "missing photo must be rejected")

	// Web clients have no picker, so photos are optional there.
	listing, err := uc.Publish(ctx, PublishInput{Title: "Bike", Platform: "web"})
	require.NoError(t, err)
	assert.Equal(t, "Bike", listing.Title)
	assert.Equal(t, "Misc", listing.Category)
	assert.Equal(t, "Good", listing.Condition)
	assert.Equal(t, entity.LocalSeller, listing.Seller)
}

func TestPublishRoundTrip(t *testing.T) {
	localRepo := newLocalTestRepo(t)
	uc := NewListingUseCase(localRepo, &fakeRemoteRepo{})
	ctx := context.Background()

	published, err := uc.Publish(ctx, PublishInput{
		Title:       "Gaming laptop",
		Price:       "$850",
		Location:    "Harare",
		Category:    "Laptops",
		Condition:   "Like New",
		Description: "Barely used",
		Images:      []string{"file:///a.jpg", "file:///b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(85000), published.PriceCents)

	// A fresh use case reading the same persistence sees the identical
	// listing, id included.
	reloaded := NewListingUseCase(localRepo, &fakeRemoteRepo{}).Merged(ctx)
	require.Len(t, reloaded, 1)
	got := reloaded[0]
	assert.Equal(t, published.ID, got.ID)
	assert.Equal(t, published.Title, got.Title)
	assert.Equal(t, published.PriceCents, got.PriceCents)
	assert.Equal(t, published.Category, got.Category)
	assert.Equal(t, published.Condition, got.Condition)
	assert.Equal(t, published.Description, got.Description)
	assert.Equal(t, published.Location, got.Location)
	assert.Equal(t, published.Images, got.Images)
	assert.Equal(t, published.Seller, got.Seller)
	assert.True(t, published.CreatedAt.Equal(got.CreatedAt))
}

func TestPublishPrependsNewestFirst(t *testing.T) {
	uc := NewListingUseCase(newLocalTestRepo(t), &fakeRemoteRepo{})
	ctx := context.Background()

	first, err := uc.Publish(ctx, PublishInput{Title: "Old couch", Images: []string{"a.jpg"}})
	require.NoError(t, err)
	second, err := uc.Publish(ctx, PublishInput{Title: "New couch", Images: []string{"b.jpg"}})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "rapid publishes need distinct ids")

	merged := uc.Merged(ctx)
	require.Len(t, merged, 2)
	assert.Equal(t, "New couch", merged[0].Title)
	assert.Equal(t, "Old couch", merged[1].Title)
}

func TestMergePutsLocalBeforeRemote(t *testing.T) {
	remote := &fakeRemoteRepo{listings: []entity.Listing{
		remoteListing("r1", "Remote phone", "Phones", 10000, "900"),
	}}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)
	ctx := context.Background()

	local, err := uc.Publish(ctx, PublishInput{Title: "Local phone", Category: "Phones", Images: []string{"a.jpg"}})
	require.NoError(t, err)

	// Remote row is older only by its own timestamp; the local listing
	// still leads the merged view.
	result := uc.Browse(ctx, BrowseParams{})
	require.Len(t, result.Listings, 2)
	assert.Equal(t, local.ID, result.Listings[0].ID)
	assert.Equal(t, "r1", result.Listings[1].ID)
}

func TestBrowseFilters(t *testing.T) {
	remote := &fakeRemoteRepo{listings: []entity.Listing{
		remoteListing("r1", "Galaxy S20", "Phones", 38000, "900"),
		remoteListing("r2", "ThinkPad X1", "Laptops", 85000, "900"),
		remoteListing("r3", "iPhone 12", "Phones", 55000, "901"),
	}}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)
	ctx := context.Background()

	phones := uc.Browse(ctx, BrowseParams{Category: "Phones"})
	require.Len(t, phones.Listings, 2)
	for _, listing := range phones.Listings {
		assert.Equal(t, "Phones", listing.Category)
	}

	all := uc.Browse(ctx, BrowseParams{Category: "All"})
	assert.Len(t, all.Listings, 3)

	// Case-insensitive substring query on the title.
	galaxy := uc.Browse(ctx, BrowseParams{Query: "galaxy"})
	require.Len(t, galaxy.Listings, 1)
	assert.Equal(t, "r1", galaxy.Listings[0].ID)

	// Subcategory hints also match against the title.
	sub := uc.Browse(ctx, BrowseParams{Category: "Phones", Subcategory: "iphone"})
	require.Len(t, sub.Listings, 1)
	assert.Equal(t, "r3", sub.Listings[0].ID)

	none := uc.Browse(ctx, BrowseParams{Query: "tractor"})
	assert.Empty(t, none.Listings)
}

func TestCategoryOptionsOrderedByCount(t *testing.T) {
	remote := &fakeRemoteRepo{listings: []entity.Listing{
		remoteListing("r1", "Galaxy S20", "Phones", 38000, "900"),
		remoteListing("r2", "iPhone 12", "Phones", 55000, "901"),
		remoteListing("r3", "ThinkPad X1", "Laptops", 85000, "900"),
	}}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)

	result := uc.Browse(context.Background(), BrowseParams{})
	assert.Equal(t, []string{"All", "Phones", "Laptops"}, result.Categories)
}

func TestRemoteFailureDegradesToLocal(t *testing.T) {
	remote := &fakeRemoteRepo{err: errors.Internal("Failed to fetch remote listings", nil)}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)
	ctx := context.Background()

	local, err := uc.Publish(ctx, PublishInput{Title: "Still here", Images: []string{"a.jpg"}})
	require.NoError(t, err)

	result := uc.Browse(ctx, BrowseParams{})
	require.Len(t, result.Listings, 1)
	assert.Equal(t, local.ID, result.Listings[0].ID)
}

func TestStorefrontFiltersAndSorts(t *testing.T) {
	remote := &fakeRemoteRepo{listings: []entity.Listing{
		remoteListing("r1", "Galaxy S20", "Phones", 38000, "900"),
		remoteListing("r2", "Charger", "Accessories", 2000, "900"),
		remoteListing("r3", "iPhone 12", "Phones", 55000, "901"),
	}}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)
	ctx := context.Background()

	store := uc.Storefront(ctx, "900", SortNewest)
	require.Len(t, store.Listings, 2)
	assert.Equal(t, "Remote Seller", store.Seller.Name)
	assert.Equal(t, "r1", store.Listings[0].ID, "newest keeps insertion order")

	asc := uc.Storefront(ctx, "900", SortPriceAsc)
	assert.Equal(t, []int64{2000, 38000}, []int64{asc.Listings[0].PriceCents, asc.Listings[1].PriceCents})

	desc := uc.Storefront(ctx, "900", SortPriceDesc)
	assert.Equal(t, []int64{38000, 2000}, []int64{desc.Listings[0].PriceCents, desc.Listings[1].PriceCents})

	empty := uc.Storefront(ctx, "777", SortNewest)
	assert.Empty(t, empty.Listings)
	assert.Equal(t, "Store", empty.Seller.Name)
}

func TestStorefrontPutsLocalFirst(t *testing.T) {
	remote := &fakeRemoteRepo{listings: []entity.Listing{
		remoteListing("r1", "Old stock", "Phones", 38000, entity.LocalSeller.ID),
	}}
	uc := NewListingUseCase(newLocalTestRepo(t), remote)
	ctx := context.Background()

	local, err := uc.Publish(ctx, PublishInput{Title: "Fresh stock", Category: "Phones", Images: []string{"a.jpg"}})
	require.NoError(t, err)

	store := uc.Storefront(ctx, entity.LocalSeller.ID, SortNewest)
	require.Len(t, store.Listings, 2)
	assert.Equal(t, local.ID, store.Listings[0].ID)
}
