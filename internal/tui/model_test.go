package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/config"
	"github.com/guerrasclon/termclient/internal/router"
	"github.com/guerrasclon/termclient/pkg/types"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New(config.Config{APIBaseURL: "http://stub.invalid/api"}, nil)
}

// asPlayer puts the model on an authenticated player screen without
// going through the network.
func asPlayer(m *Model, screen router.Screen) {
	m.sess.SetToken("tok")
	m.sess.SetUser(&types.User{ID: 2, Username: "rex", Role: types.RolJugador})
	m.route = router.State{Screen: screen, Role: types.RolJugador}
}

func TestStaleMessagesAreDropped(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenWorlds)

	stale := mundosMsg{
		epochTag: epochTag{epoch: m.sess.Epoch() - 1},
		mundos:   []types.Mundo{{ID: 1, Nombre: "Kamino"}},
	}
	_, cmd := m.Update(stale)
	require.Nil(t, cmd)
	require.Empty(t, m.worlds.mundos, "a response from a dead session must not repaint")
}

func TestLiveMessagesApply(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenWorlds)

	live := mundosMsg{
		epochTag: m.tag(),
		mundos:   []types.Mundo{{ID: 1, Nombre: "Kamino"}},
	}
	m.Update(live)
	require.Len(t, m.worlds.mundos, 1)
}

func TestUnauthorizedTearsDownFromEveryScreen(t *testing.T) {
	screens := []router.Screen{
		router.ScreenWorlds,
		router.ScreenCharacter,
		router.ScreenBattle,
		router.ScreenTournament,
	}
	for _, screen := range screens {
		t.Run(string(screen), func(t *testing.T) {
			m := newTestModel(t)
			asPlayer(m, screen)

			msg := mundosMsg{
				epochTag: m.tag(),
				err:      fmt.Errorf("/auth/me: %w", apiclient.ErrUnauthorized),
			}
			m.Update(msg)

			require.Equal(t, router.ScreenLogin, m.route.Screen)
			require.Empty(t, m.sess.Token())
			require.Nil(t, m.sess.User())
			require.NotEmpty(t, m.banner)
		})
	}
}

func TestUnauthorizedBumpsEpoch(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenWorlds)
	before := m.sess.Epoch()

	m.Update(mundosMsg{epochTag: m.tag(), err: fmt.Errorf("x: %w", apiclient.ErrUnauthorized)})
	require.Greater(t, m.sess.Epoch(), before)
}

func TestAPIErrorBecomesDismissibleBanner(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenWorlds)
	m.worlds.mundos = []types.Mundo{{ID: 1, Nombre: "Kamino"}}

	m.Update(rosterMsg{
		epochTag: m.tag(),
		err:      &apiclient.APIError{Status: 404, Detail: "Mundo no encontrado"},
	})
	require.Equal(t, "Mundo no encontrado", m.banner)
	require.Equal(t, router.ScreenWorlds, m.route.Screen)

	// Esc dismisses the banner and nothing else changes.
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, m.banner)
	require.Equal(t, router.ScreenWorlds, m.route.Screen)
	require.Len(t, m.worlds.mundos, 1)
}

func TestLoginRejectionStaysInline(t *testing.T) {
	m := newTestModel(t)
	m.route = router.State{Screen: router.ScreenLogin}

	m.Update(loginResultMsg{
		epochTag: m.tag(),
		err:      &apiclient.APIError{Status: 401, Detail: "Usuario o contraseña incorrectos"},
	})
	require.Equal(t, router.ScreenLogin, m.route.Screen)
	require.Equal(t, "Usuario o contraseña incorrectos", m.banner)
	require.Empty(t, m.sess.Token())
}

func TestVerifiedBranchesOnRole(t *testing.T) {
	cases := []struct {
		name string
		user types.User
		want router.Screen
	}{
		{"player", types.User{Role: types.RolJugador}, router.ScreenWorlds},
		{"admin", types.User{Role: types.RolAdmin}, router.ScreenAdminHome},
		{"admin forced reset", types.User{Role: types.RolAdmin, MustChangePassword: true}, router.ScreenPasswordReset},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m.sess.SetToken("tok")
			m.route = router.State{Screen: router.ScreenVerifying}

			m.Update(verifiedMsg{epochTag: m.tag(), user: tc.user})
			require.Equal(t, tc.want, m.route.Screen)
			require.Equal(t, tc.user.Role, m.route.Role)
		})
	}
}

func TestBattleButtonsDisabled(t *testing.T) {
	m := newTestModel(t)

	require.False(t, m.canAct(nil), "no battle, no buttons")

	estado := &types.EstadoBatalla{Terminada: true}
	require.False(t, m.canAct(estado), "finished battle, no buttons")

	estado.Terminada = false
	m.duelUI.busy = true
	require.False(t, m.canAct(estado), "in-flight action, no buttons")

	m.duelUI.busy = false
	require.True(t, m.canAct(estado))
}

func TestJoinWithoutStagedCharacterIsLocalError(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenTournament)
	m.tourUI.list = []types.Tournament{{ID: 1, Name: "Copa", Status: types.TorneoPendiente}}

	_, cmd := m.updateTournamentKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	require.Nil(t, cmd, "no command may be issued without a staged character")
	require.NotEmpty(t, m.banner)
}

func TestStagedCharacterEnablesJoin(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenTournament)
	m.tour.Stage(types.Personaje{ID: "rex", Nombre: "Rex"})
	m.tourUI.list = []types.Tournament{{ID: 1, Name: "Copa", Status: types.TorneoPendiente}}

	_, cmd := m.updateTournamentKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	require.NotNil(t, cmd)
}

func TestDefeatScreenShowsExitAndNoButtons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id_batalla": "b1",
			"jugador": {"personaje": {"id":"rex","nombre":"Rex","info":{"daño":60,"defensa":100,"ataque_especial":90}}, "hp_actual": 0, "especial_usado": true},
			"oponente": {"personaje": {"id":"grievous","nombre":"Grievous","info":{"daño":70,"defensa":110,"ataque_especial":95}}, "hp_actual": 40, "especial_usado": false},
			"log_batalla": ["¡Comienza la batalla entre Rex y Grievous!", "¡Grievous ha ganado la batalla!"],
			"terminada": true
		}`))
	}))
	defer srv.Close()

	m := New(config.Config{APIBaseURL: srv.URL}, nil)
	asPlayer(m, router.ScreenBattle)
	_, err := m.duel.Start(context.Background(), 1, "rex")
	require.NoError(t, err)

	estado := m.duel.Active()
	require.NotNil(t, estado)
	require.False(t, m.canAct(estado), "a finished duel leaves no live buttons")

	view := m.viewBattle()
	require.Contains(t, view, "DERROTA")
	require.Contains(t, view, "esc: volver")
	require.NotContains(t, view, "[a] Ataque")
}

func TestLogoutClearsEverything(t *testing.T) {
	m := newTestModel(t)
	asPlayer(m, router.ScreenWorlds)
	m.worlds.mundos = []types.Mundo{{ID: 1}}

	m.logout()
	require.Equal(t, router.ScreenLogin, m.route.Screen)
	require.Empty(t, m.sess.Token())
	require.Empty(t, m.worlds.mundos)
}
