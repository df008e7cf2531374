package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guerrasclon/termclient/internal/router"
	"github.com/guerrasclon/termclient/pkg/types"
)

type worldsState struct {
	mundos []types.Mundo
	cursor int
	busy   bool
}

type characterState struct {
	mundo     types.Mundo
	roster    types.Roster
	cursor    int
	showStats bool
	busy      bool
}

// flat returns heroes then villains as one selectable column.
func (s characterState) flat() []types.Personaje {
	out := make([]types.Personaje, 0, len(s.roster.Heroes)+len(s.roster.Villanos))
	out = append(out, s.roster.Heroes...)
	out = append(out, s.roster.Villanos...)
	return out
}

func (s characterState) selected() (types.Personaje, bool) {
	flat := s.flat()
	if s.cursor < 0 || s.cursor >= len(flat) {
		return types.Personaje{}, false
	}
	return flat[s.cursor], true
}

// --- Worlds ---

func (m *Model) handleMundos(msg mundosMsg) (tea.Model, tea.Cmd) {
	m.worlds.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.worlds.mundos = msg.mundos
	if m.worlds.cursor >= len(msg.mundos) {
		m.worlds.cursor = 0
	}
	return m, nil
}

func (m *Model) updateWorldsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.worlds
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.mundos)-1 {
			s.cursor++
		}
	case "enter":
		if s.busy || len(s.mundos) == 0 {
			return m, nil
		}
		mundo := s.mundos[s.cursor]
		m.char = characterState{mundo: mundo, busy: true}
		m.apply(router.Event{Type: router.EvtWorldChosen})
		return m, m.rosterCmd(mundo.ID)
	case "t":
		m.apply(router.Event{Type: router.EvtTournamentOpened})
		m.tourUI = newTournamentUIState()
		m.tourUI.busy = true
		return m, m.openTournamentsCmd()
	case "l":
		return m, m.logout()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) viewWorlds() string {
	s := m.worlds
	var b strings.Builder
	b.WriteString(titleStyle.Render("ELIGE TU MUNDO"))
	b.WriteString("\n")

	if s.busy && len(s.mundos) == 0 {
		b.WriteString(m.spin.View() + " Cargando mundos...\n")
	}
	for i, mundo := range s.mundos {
		line := "  " + mundo.Nombre
		if i == s.cursor {
			line = selectedStyle.Render("> " + mundo.Nombre)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("enter: explorar · t: torneos · l: cerrar sesión · q: salir"))
	return b.String()
}

// --- Character browser ---

func (m *Model) handleRoster(msg rosterMsg) (tea.Model, tea.Cmd) {
	if msg.mundoID != m.char.mundo.ID {
		return m, nil
	}
	m.char.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.char.roster = msg.roster
	m.char.cursor = 0
	return m, nil
}

func (m *Model) updateCharacterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.char
	flat := s.flat()

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(flat)-1 {
			s.cursor++
		}
	case "s":
		s.showStats = !s.showStats
	case "esc":
		m.apply(router.Event{Type: router.EvtCharacterCleared})
		return m, nil
	case "enter", "d":
		p, ok := s.selected()
		if !ok || s.busy || m.duel.Busy() {
			return m, nil
		}
		s.busy = true
		return m, m.startBattleCmd(s.mundo.ID, p.ID)
	case "t":
		// Stage the highlighted character and move to the tournament
		// hall; joining still takes an explicit confirm there.
		p, ok := s.selected()
		if !ok {
			return m, nil
		}
		m.tour.Stage(p)
		m.apply(router.Event{Type: router.EvtTournamentOpened})
		m.tourUI = newTournamentUIState()
		m.tourUI.busy = true
		return m, m.openTournamentsCmd()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) viewCharacter() string {
	s := m.char
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(s.mundo.Nombre)))
	b.WriteString("\n")

	if s.busy && len(s.flat()) == 0 {
		b.WriteString(m.spin.View() + " Cargando personajes...\n")
	}

	idx := 0
	writeGroup := func(label string, group []types.Personaje, style func(string) string) {
		if len(group) == 0 {
			return
		}
		b.WriteString(subtitleStyle.Render(label) + "\n")
		for _, p := range group {
			line := "  " + style(p.Nombre)
			if idx == s.cursor {
				line = selectedStyle.Render("> ") + style(p.Nombre)
			}
			b.WriteString(line)
			if s.showStats {
				b.WriteString(dimStyle.Render(fmt.Sprintf(
					"  daño %d · defensa %d · especial %d",
					p.Info.Dano, p.Info.Defensa, p.Info.AtaqueEspecial)))
			}
			b.WriteString("\n")
			idx++
		}
	}
	writeGroup("Héroes", s.roster.Heroes, func(n string) string { return heroStyle.Render(n) })
	writeGroup("Villanos", s.roster.Villanos, func(n string) string { return villainStyle.Render(n) })

	if s.busy && len(s.flat()) > 0 {
		b.WriteString("\n" + m.spin.View() + " Iniciando batalla...")
	}
	b.WriteString(helpStyle.Render("enter: duelo · t: torneo · s: estadísticas · esc: mundos · q: salir"))
	return b.String()
}
