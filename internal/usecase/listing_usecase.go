package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
	"mazhets/pkg/errors"
	"mazhets/pkg/logger"
)

const (
	SortNewest    = "new"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ListingUseCase merges the device-local listing cache with the remotely
// fetched rows. Local listings always come first, so a just-published
// item is visible before any remote refresh.
type ListingUseCase struct {
	localRepo  repository.LocalListingRepository
	remoteRepo repository.RemoteListingRepository

	mu     sync.Mutex
	lastID int64
}

func NewListingUseCase(
	localRepo repository.LocalListingRepository,
	remoteRepo repository.RemoteListingRepository,
) *ListingUseCase {
	return &ListingUseCase{
		localRepo:  localRepo,
		remoteRepo: remoteRepo,
	}
}

type PublishInput struct {
	Title       string   `json:"title" validate:"required"`
	Price       string   `json:"price"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Platform    string   `json:"platform"` // web clients have no image picker
}

// Publish validates the form, normalizes the price into minor units,
// assigns a timestamp-derived id and prepends the listing to the local
// cache. Listings are append-only; there is no edit flow.
func (uc *ListingUseCase) Publish(ctx context.Context, input PublishInput) (*entity.Listing, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.BadRequest("Please enter a title for your listing", nil)
	}
	if input.Platform != "web" && len(input.Images) == 0 {
		return nil, errors.BadRequest("Add at least 1 photo. Photos help buyers trust your listing", nil)
	}

	category := input.Category
	if category == "" {
		category = "Misc"
	}
	condition := input.Condition
	if condition == "" {
		condition = "Good"
	}

	images := make([]entity.ListingImage, 0, len(input.Images))
	for i, url := range input.Images {
		images = append(images, entity.ListingImage{URL: url, SortIndex: i})
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	listing := entity.Listing{
		ID:          uc.nextListingID(now),
		Title:       title,
		PriceCents:  entity.ParsePriceCents(input.Price),
		Category:    category,
		Condition:   condition,
		Description: input.Description,
		Location:    input.Location,
		Images:      images,
		Seller:      entity.LocalSeller,
		CreatedAt:   now,
	}

	cached := uc.loadLocal(ctx)
	cached = append([]entity.Listing{listing}, cached...)
	if err := uc.localRepo.SaveAll(ctx, cached); err != nil {
		// Best-effort persistence: the listing is still live for this
		// session.
		logger.Warn("failed to persist local listings: %v", err)
	}

	return &listing, nil
}

type BrowseParams struct {
	Query       string
	Category    string
	Subcategory string
}

type BrowseResult struct {
	Listings   []entity.Listing `json:"listings"`
	Categories []string         `json:"categories"`
}

// Browse recomputes the merged, filtered view. Category options are the
// distinct categories across the merged collection ordered by descending
// listing count, prefixed with "All".
func (uc *ListingUseCase) Browse(ctx context.Context, params BrowseParams) BrowseResult {
	merged := uc.Merged(ctx)

	query := strings.ToLower(strings.TrimSpace(params.Query))
	sub := strings.ToLower(strings.TrimSpace(params.Subcategory))

	filtered := make([]entity.Listing, 0, len(merged))
	for _, listing := range merged {
		if !matchesFilters(listing, query, params.Category, sub) {
			continue
		}
		filtered = append(filtered, listing)
	}

	return BrowseResult{
		Listings:   filtered,
		Categories: categoryOptions(merged),
	}
}

// Merged returns local listings strictly before remote ones. A failing
// remote fetch degrades to the local cache alone and is only reported to
// the diagnostic log.
func (uc *ListingUseCase) Merged(ctx context.Context) []entity.Listing {
	local := uc.loadLocal(ctx)

	remote, err := uc.remoteRepo.List(ctx)
	if err != nil {
		logger.Error("Error fetching listings: %v", err)
		remote = nil
	}

	return append(local, remote...)
}

type StorefrontResult struct {
	Seller   entity.Seller    `json:"seller"`
	Listings []entity.Listing `json:"listings"`
}

// Storefront narrows the merged view to one seller and applies the
// requested price ordering. "new" keeps insertion order, so local
// listings stay in front.
func (uc *ListingUseCase) Storefront(ctx context.Context, sellerID, sortOrder string) StorefrontResult {
	listings := make([]entity.Listing, 0)
	for _, listing := range uc.Merged(ctx) {
		if listing.Seller.ID == sellerID {
			listings = append(listings, listing)
		}
	}

	switch sortOrder {
	case SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].PriceCents < listings[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].PriceCents > listings[j].PriceCents
		})
	}

	seller := entity.Seller{ID: sellerID, Name: "Store"}
	if len(listings) > 0 {
		seller = listings[0].Seller
	}

	return StorefrontResult{Seller: seller, Listings: listings}
}

func (uc *ListingUseCase) loadLocal(ctx context.Context) []entity.Listing {
	listings, err := uc.localRepo.LoadAll(ctx)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			logger.Warn("local listings unreadable, treating as empty: %v", err)
		}
		return nil
	}
	return listings
}

// nextListingID derives the id from the clock like the rest of the local
// records, bumped when two publishes land in the same millisecond.
func (uc *ListingUseCase) nextListingID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= uc.lastID {
		ms = uc.lastID + 1
	}
	uc.lastID = ms
	return strconv.FormatInt(ms, 10)
}

func matchesFilters(listing entity.Listing, query, category, sub string) bool {
	title := strings.ToLower(listing.Title)
	if query != "" && !strings.Contains(title, query) {
		return false
	}
	if category != "" && category != "All" && !strings.EqualFold(listing.Category, category) {
		return false
	}
	if sub != "" && !strings.Contains(title, sub) {
		return false
	}
	return true
}

func categoryOptions(listings []entity.Listing) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, listing := range listings {
		if listing.Category == "" {
			continue
		}
		if counts[listing.Category] == 0 {
			order = append(order, listing.Category)
		}
		counts[listing.Category]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return append([]string{"All"}, order...)
}
