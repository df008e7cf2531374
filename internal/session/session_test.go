package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guerrasclon/termclient/pkg/types"
)

func TestTeardownClearsEverythingAndBumpsEpoch(t *testing.T) {
	s := New("")
	s.SetToken("tok-1")
	s.SetUser(&types.User{ID: 1, Username: "ahsoka", Role: types.RolJugador})

	before := s.Epoch()
	s.Teardown()

	if s.Token() != "" {
		t.Fatalf("token not cleared: %q", s.Token())
	}
	if s.User() != nil {
		t.Fatalf("user not cleared: %+v", s.User())
	}
	if s.Epoch() != before+1 {
		t.Fatalf("epoch: want %d, got %d", before+1, s.Epoch())
	}
	if s.Live(before) {
		t.Fatalf("pre-teardown epoch still considered live")
	}
}

func TestUserNeverPopulatedWithoutToken(t *testing.T) {
	s := New("")
	s.SetUser(&types.User{ID: 1, Username: "rex"})
	if s.User() != nil {
		t.Fatalf("user stored without token")
	}

	s.SetToken("tok")
	s.SetUser(&types.User{ID: 1, Username: "rex"})
	if s.User() == nil {
		t.Fatalf("user not stored with token present")
	}
}

func TestSetTokenDropsStaleIdentity(t *testing.T) {
	s := New("")
	s.SetToken("old")
	s.SetUser(&types.User{ID: 7, Username: "cody"})

	s.SetToken("new")
	if s.User() != nil {
		t.Fatalf("identity survived a token swap; must be re-verified")
	}
}

func TestTokenPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s := New(path)
	s.SetToken("persist-me")

	fresh := New(path)
	if !fresh.LoadPersisted() {
		t.Fatalf("expected persisted token to load")
	}
	if fresh.Token() != "persist-me" {
		t.Fatalf("loaded token %q", fresh.Token())
	}

	fresh.Teardown()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("token file survived teardown")
	}
}
