// Package stubengine is an in-memory stand-in for the real Guerras Clon
// engine, serving the full REST contract: auth with JWT bearers, the
// world/character catalog, duel resolution, 16-slot tournaments and the
// admin read endpoints. It exists so the terminal client can run and be
// integration-tested without the production backend. The client treats
// it exactly like the real thing; nothing in here is reachable from
// client code paths.
package stubengine

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/guerrasclon/termclient/pkg/types"
)

const (
	maxParticipants = 16
	aiParticipants  = 15
	finalRound      = 4
)

type user struct {
	types.User
	Email        string
	PasswordHash []byte
}

type pendingRegistration struct {
	Username     string
	Email        string
	PasswordHash []byte
	Code         string
}

type store struct {
	mu sync.Mutex

	users      map[string]*user // by username
	nextUserID int
	pending    map[string]pendingRegistration // by email

	batallas map[string]*types.EstadoBatalla

	tournaments map[int]*types.Tournament
	matchOwner  map[int]int // match id -> tournament id
	nextTID     int
	nextPID     int
	nextMID     int

	audit       []types.AuditLog
	nextAuditID int

	rng *rand.Rand
	log *zap.Logger
}

func newStore(seed int64, log *zap.Logger) *store {
	s := &store{
		users:       make(map[string]*user),
		pending:     make(map[string]pendingRegistration),
		batallas:    make(map[string]*types.EstadoBatalla),
		tournaments: make(map[int]*types.Tournament),
		matchOwner:  make(map[int]int),
		nextUserID:  1,
		nextTID:     1,
		nextPID:     1,
		nextMID:     1,
		nextAuditID: 1,
		rng:         rand.New(rand.NewSource(seed)),
		log:         log,
	}
	s.seedAdmin()
	return s
}

// seedAdmin creates the bootstrap administrator. First login forces a
// credential change, like the real engine's created admin account.
func (s *store) seedAdmin() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	s.users["admin"] = &user{
		User: types.User{
			ID:                 s.nextUserID,
			Username:           "admin",
			Role:               types.RolAdmin,
			MustChangePassword: true,
		},
		PasswordHash: hash,
	}
	s.nextUserID++
}

func (s *store) addUser(username, email string, hash []byte) *user {
	u := &user{
		User: types.User{
			ID:       s.nextUserID,
			Username: username,
			Role:     types.RolJugador,
		},
		Email:        email,
		PasswordHash: hash,
	}
	s.users[username] = u
	s.nextUserID++
	return u
}

func (s *store) auditLog(username, action, details string) {
	s.audit = append(s.audit, types.AuditLog{
		ID:        s.nextAuditID,
		Timestamp: time.Now().UTC(),
		Username:  username,
		Action:    action,
		Details:   details,
	})
	s.nextAuditID++
	s.log.Info("audit", zap.String("user", username), zap.String("action", action), zap.String("details", details))
}
