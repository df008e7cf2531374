// Package duel owns the lifecycle of the single active 1v1 battle. The
// controller is a command dispatcher: it submits actions and installs
// whatever authoritative state the engine returns. It never derives hit
// points, never appends to the log, never decides the winner.
package duel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/session"
	"github.com/guerrasclon/termclient/pkg/types"
)

var ErrNoBattle = errors.New("no active battle")
var ErrBattleOver = errors.New("battle already finished")
var ErrSpecialSpent = errors.New("special attack already used")
var ErrBusy = errors.New("action already in flight")
var ErrStale = errors.New("session changed while request was in flight")

type Controller struct {
	api  *apiclient.Client
	sess *session.Store
	log  *zap.Logger

	mu       sync.Mutex
	active   *types.EstadoBatalla
	inFlight bool
}

func NewController(api *apiclient.Client, sess *session.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{api: api, sess: sess, log: log}
}

// Active returns a snapshot of the current battle, or nil.
func (c *Controller) Active() *types.EstadoBatalla {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	cp := *c.active
	return &cp
}

// Busy reports whether a request is in flight; the UI disables the
// action controls while it is.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
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

// Start opens a fresh battle for the chosen world and character and
// installs the engine's initial state, replacing any previous battle.
func (c *Controller) Start(ctx context.Context, mundoID int, personajeID string) (types.EstadoBatalla, error) {
	if !c.begin() {
		return types.EstadoBatalla{}, ErrBusy
	}
	defer c.end()

	epoch := c.sess.Epoch()
	estado, err := c.api.IniciarBatalla(ctx, mundoID, personajeID)
	if err != nil {
		return types.EstadoBatalla{}, err
	}
	if !c.sess.Live(epoch) {
		return types.EstadoBatalla{}, ErrStale
	}

	c.mu.Lock()
	c.active = &estado
	c.mu.Unlock()
	c.log.Info("battle started",
		zap.String("id_batalla", estado.IDBatalla),
		zap.String("jugador", estado.Jugador.Personaje.Nombre),
		zap.String("oponente", estado.Oponente.Personaje.Nombre))
	return estado, nil
}

// Act submits one turn. A spent special attack is rejected here, before
// any request goes out; the server stays authoritative and may still
// reject on its own. The response replaces the whole battle state.
func (c *Controller) Act(ctx context.Context, accion types.TipoAccion) (types.EstadoBatalla, error) {
	c.mu.Lock()
	switch {
	case c.active == nil:
		c.mu.Unlock()
		return types.EstadoBatalla{}, ErrNoBattle
	case c.active.Terminada:
		c.mu.Unlock()
		return types.EstadoBatalla{}, ErrBattleOver
	case accion == types.AtaqueEspecial && c.active.Jugador.EspecialUsado:
		c.mu.Unlock()
		return types.EstadoBatalla{}, ErrSpecialSpent
	}
	id := c.active.IDBatalla
	c.mu.Unlock()

	if !c.begin() {
		return types.EstadoBatalla{}, ErrBusy
	}
	defer c.end()

	epoch := c.sess.Epoch()
	estado, err := c.api.AccionBatalla(ctx, id, accion)
	if err != nil {
		return types.EstadoBatalla{}, err
	}
	if !c.sess.Live(epoch) {
		return types.EstadoBatalla{}, ErrStale
	}

	c.mu.Lock()
	// especial_usado is monotonic within a duel: once spent it never
	// reverts, whatever a response claims.
	if c.active != nil && c.active.IDBatalla == estado.IDBatalla && c.active.Jugador.EspecialUsado {
		estado.Jugador.EspecialUsado = true
	}
	c.active = &estado
	c.mu.Unlock()
	return estado, nil
}

// Exit discards the battle and hands control back to world selection.
func (c *Controller) Exit() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}

// Reset is Exit plus clearing the in-flight marker; used on session
// teardown where the pending response will be dropped anyway.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.active = nil
	c.inFlight = false
	c.mu.Unlock()
}
