// Package router is the screen/session state machine. The source of
// record is one tagged State value and a single transition function,
// Apply: no view flags, no unreachable flag combinations. Everything the
// client shows hangs off the Screen the router says is active.
package router

import (
	"errors"

	"github.com/guerrasclon/termclient/pkg/types"
)

var ErrBadTransition = errors.New("illegal screen transition")
var ErrUnsupportedEvent = errors.New("unsupported router event")

type Screen string

const (
	// Pre-session screens, in boot order.
	ScreenLoading       Screen = "loading"
	ScreenIntro         Screen = "intro"
	ScreenLogin         Screen = "login"
	ScreenVerifying     Screen = "verifying"
	ScreenPasswordReset Screen = "password_reset"

	// Authenticated screens. AdminHome is terminal until logout; the
	// player screens mirror the mundos → personaje → batalla/torneo flow.
	ScreenAdminHome  Screen = "admin_home"
	ScreenWorlds     Screen = "worlds"
	ScreenCharacter  Screen = "character"
	ScreenBattle     Screen = "battle"
	ScreenTournament Screen = "tournament"
)

type State struct {
	Screen Screen
	// Role is meaningful only once Screen is past ScreenVerifying.
	Role types.Rol
}

func NewState() State {
	return State{Screen: ScreenLoading}
}

// Authenticated reports whether the screen sits behind a verified (or
// being-verified) session, i.e. where a 401 means the session died.
func (s State) Authenticated() bool {
	switch s.Screen {
	case ScreenVerifying, ScreenPasswordReset, ScreenAdminHome,
		ScreenWorlds, ScreenCharacter, ScreenBattle, ScreenTournament:
		return true
	}
	return false
}

type EventType string

const (
	// EvtBooted leaves Loading once any persisted token has been read.
	EvtBooted EventType = "Booted"
	// EvtIntroDone acknowledges the narrative screen; lands on Login, or
	// jumps straight to Verifying when a token survived from a past run.
	EvtIntroDone EventType = "IntroDone"
	// EvtTokenIssued follows a successful login, registration
	// verification or forced credential update. Always re-verifies.
	EvtTokenIssued EventType = "TokenIssued"
	// EvtVerified carries the /auth/me result and branches on role.
	EvtVerified EventType = "Verified"

	EvtWorldChosen       EventType = "WorldChosen"
	EvtCharacterCleared  EventType = "CharacterCleared"
	EvtBattleStarted     EventType = "BattleStarted"
	EvtBattleExited      EventType = "BattleExited"
	EvtTournamentOpened  EventType = "TournamentOpened"
	EvtTournamentClosed  EventType = "TournamentClosed"

	EvtLoggedOut EventType = "LoggedOut"
	// EvtUnauthorized is the only global interrupt: a 401 from any
	// authenticated endpoint. Valid from every authenticated screen,
	// never from the login flow (there it is just a wrong password).
	EvtUnauthorized EventType = "Unauthorized"
)

type Event struct {
	Type EventType

	// IntroDone
	HasToken bool
	// Verified
	Role       types.Rol
	MustChange bool
}

// Apply computes the next state. The input state is returned unchanged
// alongside a non-nil error for transitions the machine does not allow;
// callers treat that as a bug, not user error.
func Apply(s State, e Event) (State, error) {
	switch e.Type {
	case EvtBooted:
		if s.Screen != ScreenLoading {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenIntro}, nil

	case EvtIntroDone:
		if s.Screen != ScreenIntro {
			return s, ErrBadTransition
		}
		if e.HasToken {
			return State{Screen: ScreenVerifying}, nil
		}
		return State{Screen: ScreenLogin}, nil

	case EvtTokenIssued:
		// Login and registration both issue from ScreenLogin; the forced
		// credential change issues from ScreenPasswordReset.
		if s.Screen != ScreenLogin && s.Screen != ScreenPasswordReset {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenVerifying}, nil

	case EvtVerified:
		if s.Screen != ScreenVerifying {
			return s, ErrBadTransition
		}
		if e.Role == types.RolAdmin && e.MustChange {
			return State{Screen: ScreenPasswordReset, Role: e.Role}, nil
		}
		if e.Role == types.RolAdmin {
			return State{Screen: ScreenAdminHome, Role: e.Role}, nil
		}
		return State{Screen: ScreenWorlds, Role: e.Role}, nil

	case EvtWorldChosen:
		if s.Screen != ScreenWorlds {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenCharacter, Role: s.Role}, nil

	case EvtCharacterCleared:
		if s.Screen != ScreenCharacter {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenWorlds, Role: s.Role}, nil

	case EvtBattleStarted:
		if s.Screen != ScreenCharacter {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenBattle, Role: s.Role}, nil

	case EvtBattleExited:
		if s.Screen != ScreenBattle {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenWorlds, Role: s.Role}, nil

	case EvtTournamentOpened:
		// Entered from character selection (carrying the join candidate)
		// or straight from the world list to browse brackets.
		if s.Screen != ScreenCharacter && s.Screen != ScreenWorlds {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenTournament, Role: s.Role}, nil

	case EvtTournamentClosed:
		if s.Screen != ScreenTournament {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenWorlds, Role: s.Role}, nil

	case EvtLoggedOut, EvtUnauthorized:
		if !s.Authenticated() {
			return s, ErrBadTransition
		}
		return State{Screen: ScreenLogin}, nil

	default:
		return s, ErrUnsupportedEvent
	}
}
