package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guerrasclon/termclient/pkg/types"
)

const requestTimeout = 15 * time.Second

// Every async result carries the session epoch its command was issued
// under. The update loop drops messages whose epoch is no longer live,
// so a response that raced a teardown can never repaint the screen.
type epoched interface {
	sessionEpoch() int
}

type epochTag struct{ epoch int }

func (e epochTag) sessionEpoch() int { return e.epoch }

type bootMsg struct {
	epochTag
	hasToken bool
}

type loginResultMsg struct {
	epochTag
	tok types.Token
	err error
}

type registerRequestedMsg struct {
	epochTag
	msg types.Message
	err error
}

type verifiedMsg struct {
	epochTag
	user types.User
	err  error
}

type passwordChangedMsg struct {
	epochTag
	tok types.Token
	err error
}

type mundosMsg struct {
	epochTag
	mundos []types.Mundo
	err    error
}

type rosterMsg struct {
	epochTag
	mundoID int
	roster  types.Roster
	err     error
}

type battleMsg struct {
	epochTag
	estado types.EstadoBatalla
	err    error
}

type tournamentsMsg struct {
	epochTag
	list []types.Tournament
	err  error
}

type tournamentMsg struct {
	epochTag
	t   types.Tournament
	err error
}

type tournamentCreatedMsg struct {
	epochTag
	t   types.Tournament
	err error
}

type leaderboardMsg struct {
	epochTag
	entries []types.LeaderboardEntry
	err     error
}

type adminLogsMsg struct {
	epochTag
	logs []types.AuditLog
	err  error
}

type adminStatsMsg struct {
	epochTag
	stats types.Stats
	err   error
}

func (m *Model) tag() epochTag { return epochTag{epoch: m.sess.Epoch()} }

func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m *Model) bootCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		return bootMsg{epochTag: tag, hasToken: m.sess.LoadPersisted()}
	}
}

func (m *Model) loginCmd(username, password string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		tok, err := m.api.Login(ctx, username, password)
		return loginResultMsg{epochTag: tag, tok: tok, err: err}
	}
}

func (m *Model) registerRequestCmd(username, email, password string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		msg, err := m.api.RegisterRequest(ctx, username, email, password)
		return registerRequestedMsg{epochTag: tag, msg: msg, err: err}
	}
}

func (m *Model) registerVerifyCmd(email, code string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		tok, err := m.api.RegisterVerify(ctx, email, code)
		return loginResultMsg{epochTag: tag, tok: tok, err: err}
	}
}

func (m *Model) verifyCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		u, err := m.api.Me(ctx)
		return verifiedMsg{epochTag: tag, user: u, err: err}
	}
}

func (m *Model) updateMeCmd(username, password string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		tok, err := m.api.UpdateMe(ctx, username, password)
		return passwordChangedMsg{epochTag: tag, tok: tok, err: err}
	}
}

func (m *Model) mundosCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		mundos, err := m.cat.Mundos(ctx)
		return mundosMsg{epochTag: tag, mundos: mundos, err: err}
	}
}

func (m *Model) rosterCmd(mundoID int) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		roster, err := m.cat.Personajes(ctx, mundoID)
		return rosterMsg{epochTag: tag, mundoID: mundoID, roster: roster, err: err}
	}
}

func (m *Model) startBattleCmd(mundoID int, personajeID string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		estado, err := m.duel.Start(ctx, mundoID, personajeID)
		return battleMsg{epochTag: tag, estado: estado, err: err}
	}
}

func (m *Model) actCmd(accion types.TipoAccion) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		estado, err := m.duel.Act(ctx, accion)
		return battleMsg{epochTag: tag, estado: estado, err: err}
	}
}

func (m *Model) openTournamentsCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		list, err := m.tour.ListOpen(ctx)
		return tournamentsMsg{epochTag: tag, list: list, err: err}
	}
}

func (m *Model) tournamentDetailsCmd(id int) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		t, err := m.tour.Details(ctx, id)
		return tournamentMsg{epochTag: tag, t: t, err: err}
	}
}

func (m *Model) joinTournamentCmd(id int) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		t, err := m.tour.Join(ctx, id)
		return tournamentMsg{epochTag: tag, t: t, err: err}
	}
}

func (m *Model) simulateMatchCmd(matchID int) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		t, err := m.tour.Simulate(ctx, matchID)
		return tournamentMsg{epochTag: tag, t: t, err: err}
	}
}

func (m *Model) createTournamentCmd(name string) tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		t, err := m.tour.Create(ctx, name)
		return tournamentCreatedMsg{epochTag: tag, t: t, err: err}
	}
}

func (m *Model) leaderboardCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		entries, err := m.tour.Leaderboard(ctx)
		return leaderboardMsg{epochTag: tag, entries: entries, err: err}
	}
}

func (m *Model) adminLogsCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		logs, err := m.api.AdminLogs(ctx)
		return adminLogsMsg{epochTag: tag, logs: logs, err: err}
	}
}

func (m *Model) adminStatsCmd() tea.Cmd {
	tag := m.tag()
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		stats, err := m.api.AdminStats(ctx)
		return adminStatsMsg{epochTag: tag, stats: stats, err: err}
	}
}
