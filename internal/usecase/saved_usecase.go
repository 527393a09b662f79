package usecase

import (
	"context"
	"sync"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
	ws "mazhets/internal/infrastructure/websocket"
	"mazhets/pkg/errors"
	"mazhets/pkg/logger"
)

// SavedUseCase owns the persisted set of saved listing ids. Views
// subscribe for change notifications instead of polling the store on an
// interval.
type SavedUseCase struct {
	savedRepo repository.SavedRepository
	listings  *ListingUseCase
	wsManager *ws.Manager

	mu sync.Mutex

	subMu  sync.Mutex
	subs   map[int64]chan []string
	subSeq int64
}

func NewSavedUseCase(
	savedRepo repository.SavedRepository,
	listings *ListingUseCase,
	wsManager *ws.Manager,
) *SavedUseCase {
	return &SavedUseCase{
		savedRepo: savedRepo,
		listings:  listings,
		wsManager: wsManager,
		subs:      make(map[int64]chan []string),
	}
}

// Toggle flips membership for one listing id and reports the new state.
// Toggling twice restores the original set.
func (uc *SavedUseCase) Toggle(ctx context.Context, listingID string) (bool, error) {
	if listingID == "" {
		return false, errors.BadRequest("Listing ID is required", nil)
	}

	uc.mu.Lock()
	ids := uc.load(ctx)

	saved := true
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == listingID {
			saved = false
			continue
		}
		next = append(next, id)
	}
	if saved {
		next = append(next, listingID)
	}

	if err := uc.savedRepo.Save(ctx, next); err != nil {
		logger.Warn("failed to persist saved ids: %v", err)
	}
	uc.mu.Unlock()

	uc.notify(next)
	return saved, nil
}

func (uc *SavedUseCase) Contains(ctx context.Context, listingID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, id := range uc.load(ctx) {
		if id == listingID {
			return true
		}
	}
	return false
}

func (uc *SavedUseCase) ListAll(ctx context.Context) []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx)
}

// SavedListings joins the saved ids against the merged local+remote
// collection. Ids with no matching listing are skipped, not an error.
func (uc *SavedUseCase) SavedListings(ctx context.Context) []entity.Listing {
	ids := uc.ListAll(ctx)
	if len(ids) == 0 {
		return []entity.Listing{}
	}

	saved := make(map[string]bool, len(ids))
	for _, id := range ids {
		saved[id] = true
	}

	listings := make([]entity.Listing, 0, len(ids))
	for _, listing := range uc.listings.Merged(ctx) {
		if saved[listing.ID] {
			listings = append(listings, listing)
		}
	}
	return listings
}

// Subscribe registers an observer for saved-set changes. Each change
// delivers a snapshot of the ids; slow observers miss intermediate
// states, never the latest. The returned func unsubscribes.
func (uc *SavedUseCase) Subscribe() (<-chan []string, func()) {
	uc.subMu.Lock()
	defer uc.subMu.Unlock()

	id := uc.subSeq
	uc.subSeq++
	ch := make(chan []string, 1)
	uc.subs[id] = ch

	return ch, func() {
		uc.subMu.Lock()
		defer uc.subMu.Unlock()
		if _, ok := uc.subs[id]; ok {
			delete(uc.subs, id)
			close(ch)
		}
	}
}

func (uc *SavedUseCase) notify(ids []string) {
	uc.subMu.Lock()
	for _, ch := range uc.subs {
		snapshot := make([]string, len(ids))
		copy(snapshot, ids)
		select {
		case ch <- snapshot:
		default:
			// Replace the stale snapshot with the current one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
	uc.subMu.Unlock()

	if uc.wsManager != nil {
		uc.wsManager.BroadcastEvent(ws.EventSavedChanged, ids)
	}
}

func (uc *SavedUseCase) load(ctx context.Context) []string {
	ids, err := uc.savedRepo.Load(ctx)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			logger.Warn("saved ids unreadable, treating as empty: %v", err)
		}
		return []string{}
	}
	return ids
}
