package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guerrasclon/termclient/internal/router"
	"github.com/guerrasclon/termclient/internal/tourney"
	"github.com/guerrasclon/termclient/pkg/types"
)

type tournamentTab int

const (
	tabList tournamentTab = iota
	tabBracket
	tabBoard
)

type tournamentUIState struct {
	tab    tournamentTab
	list   []types.Tournament
	cursor int
	board  []types.LeaderboardEntry
	busy   bool
	// matchCursor indexes the playable matches of the inspected
	// tournament, in bracket order.
	matchCursor int
}

func newTournamentUIState() tournamentUIState { return tournamentUIState{} }

func playableMatches(t *types.Tournament) []types.Match {
	if t == nil {
		return nil
	}
	var out []types.Match
	for _, round := range tourney.Bracket(t.Matches) {
		for _, m := range round.Matches {
			if m.Playable() {
				out = append(out, m)
			}
		}
	}
	return out
}

// --- Message handlers ---

func (m *Model) handleTournaments(msg tournamentsMsg) (tea.Model, tea.Cmd) {
	m.tourUI.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.tourUI.list = msg.list
	if m.tourUI.cursor >= len(msg.list) {
		m.tourUI.cursor = 0
	}
	return m, nil
}

func (m *Model) handleTournament(msg tournamentMsg) (tea.Model, tea.Cmd) {
	m.tourUI.busy = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, tourney.ErrNoStagedCharacter):
			m.banner = "Elige primero un personaje en la pantalla de mundo."
			return m, nil
		case errors.Is(msg.err, tourney.ErrNothingInspected), errors.Is(msg.err, tourney.ErrBusy):
			return m, nil
		}
		return m, m.fail(msg.err)
	}
	m.tourUI.tab = tabBracket
	m.tourUI.matchCursor = 0
	return m, nil
}

func (m *Model) handleLeaderboard(msg leaderboardMsg) (tea.Model, tea.Cmd) {
	m.tourUI.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.tourUI.board = msg.entries
	m.tourUI.tab = tabBoard
	return m, nil
}

// --- Keys ---

func (m *Model) updateTournamentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.tourUI.tab {
	case tabList:
		return m.updateTournamentListKey(msg)
	case tabBracket:
		return m.updateBracketKey(msg)
	case tabBoard:
		return m.updateBoardKey(msg)
	}
	return m, nil
}

func (m *Model) updateTournamentListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.tourUI
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.list)-1 {
			s.cursor++
		}
	case "enter":
		if s.busy || len(s.list) == 0 {
			return m, nil
		}
		s.busy = true
		return m, m.tournamentDetailsCmd(s.list[s.cursor].ID)
	case "i":
		if s.busy || len(s.list) == 0 {
			return m, nil
		}
		// Join needs a staged character; refuse locally before any
		// request goes out.
		if m.tour.Staged() == nil {
			m.banner = "Elige primero un personaje en la pantalla de mundo."
			return m, nil
		}
		if !s.list[s.cursor].Joinable() {
			m.banner = "Este torneo ya ha comenzado o ha finalizado."
			return m, nil
		}
		s.busy = true
		return m, m.joinTournamentCmd(s.list[s.cursor].ID)
	case "c":
		if s.busy {
			return m, nil
		}
		s.busy = true
		return m, m.leaderboardCmd()
	case "r":
		if s.busy {
			return m, nil
		}
		s.busy = true
		return m, m.openTournamentsCmd()
	case "esc":
		m.tour.CloseInspected()
		m.tour.ClearStaged()
		m.apply(router.Event{Type: router.EvtTournamentClosed})
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateBracketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.tourUI
	playable := playableMatches(m.tour.Inspected())

	switch msg.String() {
	case "up", "k":
		if s.matchCursor > 0 {
			s.matchCursor--
		}
	case "down", "j":
		if s.matchCursor < len(playable)-1 {
			s.matchCursor++
		}
	case "enter", "s":
		if s.busy || s.matchCursor >= len(playable) {
			return m, nil
		}
		s.busy = true
		return m, m.simulateMatchCmd(playable[s.matchCursor].ID)
	case "esc":
		m.tour.CloseInspected()
		s.tab = tabList
		s.busy = true
		return m, m.openTournamentsCmd()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tourUI.tab = tabList
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// --- Views ---

func (m *Model) viewTournament() string {
	switch m.tourUI.tab {
	case tabBracket:
		return m.viewBracket()
	case tabBoard:
		return m.viewBoard()
	}
	return m.viewTournamentList()
}

func (m *Model) viewTournamentList() string {
	s := m.tourUI
	var b strings.Builder
	b.WriteString(titleStyle.Render("SALA DE TORNEOS"))
	b.WriteString("\n")

	if p := m.tour.Staged(); p != nil {
		b.WriteString(subtitleStyle.Render("Tu campeón: "+p.Nombre) + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("Sin campeón elegido.") + "\n\n")
	}

	if s.busy && len(s.list) == 0 {
		b.WriteString(m.spin.View() + " Cargando torneos...\n")
	} else if len(s.list) == 0 {
		b.WriteString(dimStyle.Render("No hay torneos abiertos.") + "\n")
	}
	for i, t := range s.list {
		line := "  " + t.Name
		if i == s.cursor {
			line = selectedStyle.Render("> " + t.Name)
		}
		if !t.Joinable() {
			line += dimStyle.Render("  (lleno)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("enter: ver · i: inscribirse · c: clasificación · r: recargar · esc: volver"))
	return b.String()
}

func (m *Model) viewBracket() string {
	t := m.tour.Inspected()
	if t == nil {
		return m.spin.View() + " Cargando torneo..."
	}
	playable := playableMatches(t)

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(t.Name)))
	b.WriteString("\n")

	cols := make([]string, 0, tourney.NumRounds)
	for _, round := range tourney.Bracket(t.Matches) {
		var col strings.Builder
		col.WriteString(subtitleStyle.Render(round.Label) + "\n")
		if len(round.Matches) == 0 {
			col.WriteString(dimStyle.Render("· por decidir ·") + "\n")
		}
		for _, match := range round.Matches {
			col.WriteString(m.renderMatch(match, playable) + "\n")
		}
		cols = append(cols, panelStyle.Render(col.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	switch {
	case t.Status == types.TorneoCompletado && t.Winner != nil:
		b.WriteString(logPlayerStyle.Render("¡CAMPEÓN: "+t.Winner.Username+"!") + "\n")
	case t.Status == types.TorneoCompletado:
		b.WriteString(dimStyle.Render("Torneo finalizado.") + "\n")
	case m.tourUI.busy:
		b.WriteString(m.spin.View() + " Simulando...\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: partido · enter: simular · esc: volver"))
	return b.String()
}

func (m *Model) renderMatch(match types.Match, playable []types.Match) string {
	name := func(p *types.Participant) string {
		if p == nil {
			return dimStyle.Render("—")
		}
		n := p.DisplayName()
		if p.IsHuman() {
			n = heroStyle.Render(n)
		}
		return n
	}
	line := name(match.Player1) + " vs " + name(match.Player2)
	switch {
	case match.Winner != nil:
		line += dimStyle.Render("  → " + match.Winner.DisplayName())
	case match.Playable():
		for i, p := range playable {
			if p.ID == match.ID && i == m.tourUI.matchCursor {
				return selectedStyle.Render("> " + line)
			}
		}
		line = "  " + line
	default:
		line = "  " + line
	}
	return "  " + line
}

func (m *Model) viewBoard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CLASIFICACIÓN"))
	b.WriteString("\n")

	if len(m.tourUI.board) == 0 {
		b.WriteString(dimStyle.Render("Todavía no hay campeones.") + "\n")
	}
	for i, e := range m.tourUI.board {
		b.WriteString(fmt.Sprintf("%2d. %-20s %-24s %s\n",
			i+1, e.WinnerName, e.TournamentName, tourney.FormatDuration(e.DurationSeconds)))
	}

	b.WriteString(helpStyle.Render("esc: volver"))
	return b.String()
}
