// Package catalog caches the immutable reference data: the world list
// and each world's hero/villain roster. Everything is fetched wholesale
// (no pagination in the contract) and held for the life of the session;
// Invalidate drops the lot on logout.
package catalog

import (
	"context"
	"sync"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/pkg/types"
)

type Browser struct {
	api *apiclient.Client

	mu      sync.Mutex
	mundos  []types.Mundo
	rosters map[int]types.Roster
}

func NewBrowser(api *apiclient.Client) *Browser {
	return &Browser{api: api, rosters: make(map[int]types.Roster)}
}

// Mundos returns the cached world list, fetching it on first use.
func (b *Browser) Mundos(ctx context.Context) ([]types.Mundo, error) {
	b.mu.Lock()
	cached := b.mundos
	b.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	mundos, err := b.api.Mundos(ctx)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.mundos = mundos
	b.mu.Unlock()
	return mundos, nil
}

// Personajes returns the roster of a world, fetching it on first request
// for that world.
func (b *Browser) Personajes(ctx context.Context, mundoID int) (types.Roster, error) {
	b.mu.Lock()
	roster, ok := b.rosters[mundoID]
	b.mu.Unlock()
	if ok {
		return roster, nil
	}

	roster, err := b.api.Personajes(ctx, mundoID)
	if err != nil {
		return types.Roster{}, err
	}
	b.mu.Lock()
	b.rosters[mundoID] = roster
	b.mu.Unlock()
	return roster, nil
}

// Invalidate empties both caches. Called on logout and on session
// teardown so a new user never sees the previous session's data.
func (b *Browser) Invalidate() {
	b.mu.Lock()
	b.mundos = nil
	b.rosters = make(map[int]types.Roster)
	b.mu.Unlock()
}
