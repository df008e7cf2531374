package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guerrasclon/termclient/internal/duel"
	"github.com/guerrasclon/termclient/internal/router"
	"github.com/guerrasclon/termclient/pkg/types"
)

type duelUIState struct {
	busy bool
}

func (m *Model) handleBattle(msg battleMsg) (tea.Model, tea.Cmd) {
	m.char.busy = false
	m.duelUI.busy = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, duel.ErrBusy):
			return m, nil
		case errors.Is(msg.err, duel.ErrSpecialSpent):
			m.banner = "Ya has usado tu ataque especial."
			return m, nil
		case errors.Is(msg.err, duel.ErrBattleOver):
			m.banner = "Esta batalla ya ha terminado."
			return m, nil
		case errors.Is(msg.err, duel.ErrNoBattle):
			return m, nil
		}
		return m, m.fail(msg.err)
	}
	if m.route.Screen == router.ScreenCharacter {
		m.apply(router.Event{Type: router.EvtBattleStarted})
	}
	return m, nil
}

func (m *Model) updateBattleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	estado := m.duel.Active()

	switch msg.String() {
	case "esc", "x":
		m.duel.Exit()
		m.apply(router.Event{Type: router.EvtBattleExited})
		return m, nil
	case "a", "enter":
		if !m.canAct(estado) {
			return m, nil
		}
		m.duelUI.busy = true
		return m, m.actCmd(types.AtaqueNormal)
	case "e":
		if !m.canAct(estado) || estado.Jugador.EspecialUsado {
			return m, nil
		}
		m.duelUI.busy = true
		return m, m.actCmd(types.AtaqueEspecial)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// canAct mirrors the controller guards so a dead button never even
// issues a command.
func (m *Model) canAct(estado *types.EstadoBatalla) bool {
	return estado != nil && !estado.Terminada && !m.duelUI.busy && !m.duel.Busy()
}

func fighterPanel(l types.Luchador, label string) string {
	var b strings.Builder
	b.WriteString(label + " " + l.Personaje.Nombre + "\n")
	b.WriteString(hpBar(l.HP(), l.MaxHP(), 20) + "\n")
	b.WriteString(fmt.Sprintf("%d / %d", l.HP(), l.MaxHP()))
	if l.EspecialUsado {
		b.WriteString(dimStyle.Render("  especial gastado"))
	}
	return panelStyle.Render(b.String())
}

func (m *Model) viewBattle() string {
	estado := m.duel.Active()
	if estado == nil {
		return m.spin.View() + " Preparando la batalla..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		fighterPanel(estado.Jugador, "TÚ:"),
		"  vs  ",
		fighterPanel(estado.Oponente, "RIVAL:"),
	))
	b.WriteString("\n\n")

	if estado.Terminada {
		if estado.Jugador.HP() > 0 {
			b.WriteString(logPlayerStyle.Render("¡VICTORIA!") + "\n\n")
		} else {
			b.WriteString(logOpponentStyle.Render("DERROTA...") + "\n\n")
		}
	} else {
		b.WriteString(m.renderButtons(estado) + "\n\n")
	}

	b.WriteString(m.renderBattleLog(estado))

	help := "a: atacar · e: especial · esc: abandonar · q: salir"
	if estado.Terminada {
		help = "esc: volver"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m *Model) renderButtons(estado *types.EstadoBatalla) string {
	normal := buttonActiveStyle.Render("[a] Ataque")
	special := buttonActiveStyle.Render("[e] Especial")
	if !m.canAct(estado) {
		normal = buttonDisabledStyle.Render("[a] Ataque")
	}
	if !m.canAct(estado) || estado.Jugador.EspecialUsado {
		special = buttonDisabledStyle.Render("[e] Especial")
	}
	row := normal + " " + special
	if m.duelUI.busy {
		row += "  " + m.spin.View()
	}
	return row
}

// renderBattleLog paints the engine log newest first, coloured by who
// acted. The strings themselves are rendered untouched.
func (m *Model) renderBattleLog(estado *types.EstadoBatalla) string {
	lines := duel.DisplayLog(estado.LogBatalla)
	max := 10
	if len(lines) < max {
		max = len(lines)
	}

	var b strings.Builder
	for _, line := range lines[:max] {
		switch duel.ClassifyLine(line, estado.Jugador.Personaje.Nombre, estado.Oponente.Personaje.Nombre) {
		case duel.LineSystem:
			b.WriteString(logSystemStyle.Render(line))
		case duel.LineDodge:
			b.WriteString(logDodgeStyle.Render(line))
		case duel.LinePlayer:
			b.WriteString(logPlayerStyle.Render(line))
		case duel.LineOpponent:
			b.WriteString(logOpponentStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
