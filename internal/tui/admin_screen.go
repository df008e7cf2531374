package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/guerrasclon/termclient/pkg/types"
)

// adminState drives the single admin screen: tournament creation on
// top, live audit trail and counters underneath.
type adminState struct {
	nameInput textinput.Model
	logs      []types.AuditLog
	stats     types.Stats
	busy      bool
}

func newAdminState() adminState {
	in := newInput("nombre del nuevo torneo", false)
	in.Focus()
	return adminState{nameInput: in}
}

func (m *Model) updateAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.admin

	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(s.nameInput.Value())
		if name == "" || s.busy {
			return m, nil
		}
		s.busy = true
		return m, m.createTournamentCmd(name)
	case "ctrl+r":
		if s.busy {
			return m, nil
		}
		s.busy = true
		return m, tea.Batch(m.adminLogsCmd(), m.adminStatsCmd())
	case "ctrl+l":
		return m, m.logout()
	}

	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleTournamentCreated(msg tournamentCreatedMsg) (tea.Model, tea.Cmd) {
	m.admin.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.admin.nameInput.Reset()
	m.notice = fmt.Sprintf("Torneo '%s' creado.", msg.t.Name)
	return m, m.adminLogsCmd()
}

func (m *Model) handleAdminLogs(msg adminLogsMsg) (tea.Model, tea.Cmd) {
	m.admin.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.admin.logs = msg.logs
	return m, nil
}

func (m *Model) handleAdminStats(msg adminStatsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.admin.stats = msg.stats
	return m, nil
}

func (m *Model) viewAdmin() string {
	s := m.admin
	var b strings.Builder
	b.WriteString(titleStyle.Render("PANEL DE ADMINISTRACIÓN"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Usuarios: %d · Registros de auditoría: %d\n\n",
		s.stats.TotalUsers, s.stats.TotalAuditLogs))

	b.WriteString(subtitleStyle.Render("Crear torneo") + "\n")
	b.WriteString(s.nameInput.View() + "\n")
	if s.busy {
		b.WriteString(m.spin.View() + " Trabajando...\n")
	}
	b.WriteString("\n" + subtitleStyle.Render("Auditoría reciente") + "\n")

	max := 12
	if len(s.logs) < max {
		max = len(s.logs)
	}
	if max == 0 {
		b.WriteString(dimStyle.Render("Sin registros.") + "\n")
	}
	for _, e := range s.logs[:max] {
		b.WriteString(fmt.Sprintf("%s  %-12s %-22s %s\n",
			dimStyle.Render(e.Timestamp.Format("15:04:05")),
			e.Username, e.Action, dimStyle.Render(e.Details)))
	}

	b.WriteString(helpStyle.Render("enter: crear · ctrl+r: recargar · ctrl+l: cerrar sesión · ctrl+c: salir"))
	return b.String()
}
