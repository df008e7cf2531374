package router

import (
	"errors"
	"testing"

	"github.com/guerrasclon/termclient/pkg/types"
)

func at(screen Screen) State { return State{Screen: screen} }

func mustApply(t *testing.T, s State, e Event) State {
	t.Helper()
	next, err := Apply(s, e)
	if err != nil {
		t.Fatalf("Apply(%v, %v): %v", s.Screen, e.Type, err)
	}
	return next
}

func TestBootFlow_NoToken(t *testing.T) {
	s := NewState()
	s = mustApply(t, s, Event{Type: EvtBooted})
	if s.Screen != ScreenIntro {
		t.Fatalf("after boot: want intro, got %v", s.Screen)
	}
	s = mustApply(t, s, Event{Type: EvtIntroDone, HasToken: false})
	if s.Screen != ScreenLogin {
		t.Fatalf("after intro without token: want login, got %v", s.Screen)
	}
}

func TestBootFlow_PersistedTokenSkipsLogin(t *testing.T) {
	s := mustApply(t, at(ScreenIntro), Event{Type: EvtIntroDone, HasToken: true})
	if s.Screen != ScreenVerifying {
		t.Fatalf("want verifying, got %v", s.Screen)
	}
}

func TestVerifiedBranchesOnRole(t *testing.T) {
	cases := []struct {
		name       string
		role       types.Rol
		mustChange bool
		want       Screen
	}{
		{"jugador", types.RolJugador, false, ScreenWorlds},
		{"admin", types.RolAdmin, false, ScreenAdminHome},
		{"admin first login", types.RolAdmin, true, ScreenPasswordReset},
		// must_change_password on a jugador is not a thing the engine
		// produces; the machine routes them like any player.
		{"jugador with flag", types.RolJugador, true, ScreenWorlds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustApply(t, at(ScreenVerifying),
				Event{Type: EvtVerified, Role: tc.role, MustChange: tc.mustChange})
			if s.Screen != tc.want {
				t.Fatalf("want %v, got %v", tc.want, s.Screen)
			}
			if s.Role != tc.role {
				t.Fatalf("role not carried: %v", s.Role)
			}
		})
	}
}

func TestPasswordResetExitsOnlyThroughNewToken(t *testing.T) {
	s := State{Screen: ScreenPasswordReset, Role: types.RolAdmin}

	for _, e := range []EventType{EvtWorldChosen, EvtBattleStarted, EvtTournamentOpened} {
		if _, err := Apply(s, Event{Type: e}); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("%v from password reset: want ErrBadTransition, got %v", e, err)
		}
	}

	next := mustApply(t, s, Event{Type: EvtTokenIssued})
	if next.Screen != ScreenVerifying {
		t.Fatalf("credential update must re-verify; got %v", next.Screen)
	}
}

func TestPlayerFlow(t *testing.T) {
	s := State{Screen: ScreenWorlds, Role: types.RolJugador}

	s = mustApply(t, s, Event{Type: EvtWorldChosen})
	if s.Screen != ScreenCharacter {
		t.Fatalf("want character, got %v", s.Screen)
	}

	s = mustApply(t, s, Event{Type: EvtBattleStarted})
	if s.Screen != ScreenBattle {
		t.Fatalf("want battle, got %v", s.Screen)
	}

	s = mustApply(t, s, Event{Type: EvtBattleExited})
	if s.Screen != ScreenWorlds {
		t.Fatalf("exit battle must land on worlds, got %v", s.Screen)
	}
}

func TestTournamentReachableFromWorldsAndCharacter(t *testing.T) {
	for _, from := range []Screen{ScreenWorlds, ScreenCharacter} {
		s := mustApply(t, State{Screen: from, Role: types.RolJugador},
			Event{Type: EvtTournamentOpened})
		if s.Screen != ScreenTournament {
			t.Fatalf("from %v: want tournament, got %v", from, s.Screen)
		}
	}
	if _, err := Apply(at(ScreenBattle), Event{Type: EvtTournamentOpened}); err == nil {
		t.Fatalf("tournament must not be reachable mid-battle")
	}
}

func TestUnauthorizedIsGlobalFromEveryAuthenticatedScreen(t *testing.T) {
	authed := []Screen{
		ScreenVerifying, ScreenPasswordReset, ScreenAdminHome,
		ScreenWorlds, ScreenCharacter, ScreenBattle, ScreenTournament,
	}
	for _, from := range authed {
		s := mustApply(t, State{Screen: from, Role: types.RolAdmin},
			Event{Type: EvtUnauthorized})
		if s.Screen != ScreenLogin {
			t.Fatalf("401 from %v: want login, got %v", from, s.Screen)
		}
		if s.Role != "" {
			t.Fatalf("401 from %v: role must be wiped, got %v", from, s.Role)
		}
	}
}

func TestUnauthorizedRejectedBeforeSession(t *testing.T) {
	for _, from := range []Screen{ScreenLoading, ScreenIntro, ScreenLogin} {
		if _, err := Apply(at(from), Event{Type: EvtUnauthorized}); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("401 from %v: want ErrBadTransition, got %v", from, err)
		}
	}
}

func TestIllegalAndUnknownEvents(t *testing.T) {
	if _, err := Apply(at(ScreenLogin), Event{Type: EvtBooted}); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("re-boot from login: want ErrBadTransition, got %v", err)
	}
	if _, err := Apply(at(ScreenLogin), Event{Type: "Nonsense"}); !errors.Is(err, ErrUnsupportedEvent) {
		t.Fatalf("unknown event: want ErrUnsupportedEvent, got %v", err)
	}

	// Failed transitions must return the state untouched.
	s := State{Screen: ScreenBattle, Role: types.RolJugador}
	got, _ := Apply(s, Event{Type: EvtWorldChosen})
	if got != s {
		t.Fatalf("state mutated on rejected transition: %+v", got)
	}
}
