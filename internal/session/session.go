// Package session owns the bearer token and the identity derived from
// it. Exactly one Store exists per client run; every controller reads it
// and only the screen flow mutates it. Teardown is the single global
// interrupt: it wipes token and user and bumps the epoch so responses
// that were in flight when the session died can be recognized and
// dropped instead of applied.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/guerrasclon/termclient/pkg/types"
)

type Store struct {
	mu    sync.RWMutex
	token string
	user  *types.User
	epoch int

	tokenPath string // empty disables persistence
}

func New(tokenPath string) *Store {
	return &Store{tokenPath: tokenPath}
}

// Token returns the current bearer token, loading the persisted one on
// first use. Empty means unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken installs a fresh token and drops the previous identity: a new
// token always has to be re-verified against /auth/me before user is
// trusted again.
func (s *Store) SetToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(tok)
	s.user = nil
	if s.tokenPath != "" && s.token != "" {
		_ = os.MkdirAll(filepath.Dir(s.tokenPath), 0o755)
		_ = os.WriteFile(s.tokenPath, []byte(s.token), 0o600)
	}
}

// LoadPersisted reads a previously saved token from disk. Used once at
// startup; returns false when none is stored.
func (s *Store) LoadPersisted() bool {
	if s.tokenPath == "" {
		return false
	}
	b, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return false
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return false
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return true
}

func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser records the verified identity. Invariant: never stored without
// a token (a 401 teardown clears both atomically).
func (s *Store) SetUser(u *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.user = u
}

// Epoch is the session generation. Commands capture it before a network
// call; a handler whose captured epoch no longer matches must discard
// its result.
func (s *Store) Epoch() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Live reports whether a response started under epoch may still be applied.
func (s *Store) Live(epoch int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch == epoch
}

// Teardown destroys the session: token cleared, user cleared, epoch
// bumped, persisted token removed. Called on logout and on any HTTP 401.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.epoch++
	if s.tokenPath != "" {
		_ = os.Remove(s.tokenPath)
	}
}
