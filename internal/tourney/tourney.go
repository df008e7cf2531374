// Package tourney owns the tournament flow: discovering open brackets,
// joining one with the staged character, inspecting details and asking
// the engine to resolve matches. Pairings, winners and seeding are
// entirely the engine's; the controller only fetches and re-fetches.
package tourney

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/session"
	"github.com/guerrasclon/termclient/pkg/types"
)

// ErrNoStagedCharacter: join was attempted with no character staged.
// Caught before any request is issued; the UI redirects to selection.
var ErrNoStagedCharacter = errors.New("no character staged for tournament join")
var ErrNothingInspected = errors.New("no tournament currently inspected")
var ErrBusy = errors.New("tournament request already in flight")
var ErrStale = errors.New("session changed while request was in flight")

type Controller struct {
	api  *apiclient.Client
	sess *session.Store
	log  *zap.Logger

	mu        sync.Mutex
	staged    *types.Personaje
	open      []types.Tournament
	inspected *types.Tournament
	inFlight  bool
}

func NewController(api *apiclient.Client, sess *session.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{api: api, sess: sess, log: log}
}

// Stage holds the character the player picked in the browser as the
// join candidate. Consumed exactly once by a successful Join.
func (c *Controller) Stage(p types.Personaje) {
	c.mu.Lock()
	cp := p
	c.staged = &cp
	c.mu.Unlock()
}

func (c *Controller) Staged() *types.Personaje {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staged == nil {
		return nil
	}
	cp := *c.staged
	return &cp
}

func (c *Controller) ClearStaged() {
	c.mu.Lock()
	c.staged = nil
	c.mu.Unlock()
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Inspected returns the tournament whose bracket is on screen, or nil.
func (c *Controller) Inspected() *types.Tournament {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inspected == nil {
		return nil
	}
	cp := *c.inspected
	return &cp
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// ListOpen refreshes the open-tournament list on demand (no polling).
func (c *Controller) ListOpen(ctx context.Context) ([]types.Tournament, error) {
	if !c.begin() {
		return nil, ErrBusy
	}
	defer c.end()

	epoch := c.sess.Epoch()
	open, err := c.api.OpenTournaments(ctx)
	if err != nil {
		return nil, err
	}
	if !c.sess.Live(epoch) {
		return nil, ErrStale
	}

	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
	return open, nil
}

// Details fetches the full bracket and makes it the inspected tournament.
func (c *Controller) Details(ctx context.Context, id int) (types.Tournament, error) {
	if !c.begin() {
		return types.Tournament{}, ErrBusy
	}
	defer c.end()
	return c.fetchDetails(ctx, id)
}

func (c *Controller) fetchDetails(ctx context.Context, id int) (types.Tournament, error) {
	epoch := c.sess.Epoch()
	t, err := c.api.Tournament(ctx, id)
	if err != nil {
		return types.Tournament{}, err
	}
	if !c.sess.Live(epoch) {
		return types.Tournament{}, ErrStale
	}

	c.mu.Lock()
	c.inspected = &t
	c.mu.Unlock()
	return t, nil
}

// Join enters the tournament with the staged character. Without one it
// fails fast, client-side, with zero requests issued. On success the
// staged character is consumed and the returned bracket is inspected.
func (c *Controller) Join(ctx context.Context, tournamentID int) (types.Tournament, error) {
	c.mu.Lock()
	staged := c.staged
	c.mu.Unlock()
	if staged == nil {
		return types.Tournament{}, ErrNoStagedCharacter
	}

	if !c.begin() {
		return types.Tournament{}, ErrBusy
	}
	defer c.end()

	epoch := c.sess.Epoch()
	t, err := c.api.JoinTournament(ctx, tournamentID, staged.ID)
	if err != nil {
		return types.Tournament{}, err
	}
	if !c.sess.Live(epoch) {
		return types.Tournament{}, ErrStale
	}

	c.mu.Lock()
	c.staged = nil
	c.inspected = &t
	c.mu.Unlock()
	c.log.Info("joined tournament",
		zap.Int("tournament_id", t.ID),
		zap.String("personaje", staged.Nombre))
	return t, nil
}

// Simulate asks the engine to resolve one pending match, then re-fetches
// the inspected tournament so newly seeded next-round pairings show up.
func (c *Controller) Simulate(ctx context.Context, matchID int) (types.Tournament, error) {
	c.mu.Lock()
	inspected := c.inspected
	c.mu.Unlock()
	if inspected == nil {
		return types.Tournament{}, ErrNothingInspected
	}

	if !c.begin() {
		return types.Tournament{}, ErrBusy
	}
	defer c.end()

	epoch := c.sess.Epoch()
	if _, err := c.api.SimulateMatch(ctx, matchID); err != nil {
		return types.Tournament{}, err
	}
	if !c.sess.Live(epoch) {
		return types.Tournament{}, ErrStale
	}
	return c.fetchDetails(ctx, inspected.ID)
}

// Create opens a new pending tournament (admin only; the engine enforces
// the role, the client merely exposes the form to admins).
func (c *Controller) Create(ctx context.Context, name string) (types.Tournament, error) {
	if !c.begin() {
		return types.Tournament{}, ErrBusy
	}
	defer c.end()
	return c.api.CreateTournament(ctx, name)
}

// Leaderboard is the read-only list of past winners, in engine order.
func (c *Controller) Leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error) {
	if !c.begin() {
		return nil, ErrBusy
	}
	defer c.end()
	return c.api.Leaderboard(ctx)
}

// CloseInspected returns from a bracket back to the list view.
func (c *Controller) CloseInspected() {
	c.mu.Lock()
	c.inspected = nil
	c.mu.Unlock()
}

// Reset drops everything the controller holds; used on session teardown.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.staged = nil
	c.open = nil
	c.inspected = nil
	c.inFlight = false
	c.mu.Unlock()
}
