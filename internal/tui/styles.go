package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	heroStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	villainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("88")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("22")).
			Padding(0, 1)

	// Battle log colours, one per line kind.
	logSystemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	logDodgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	logPlayerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	logOpponentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	hpBarFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	hpBarLow   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hpBarEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	buttonActiveStyle = buttonStyle.
				Background(lipgloss.Color("62")).
				Foreground(lipgloss.Color("231")).
				Bold(true)

	buttonDisabledStyle = buttonStyle.
				Background(lipgloss.Color("235")).
				Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// hpBar renders cur/max as a fixed-width bar, red under a third.
func hpBar(cur, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := cur * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	style := hpBarFull
	if cur*3 <= max {
		style = hpBarLow
	}
	bar := ""
	for i := 0; i < filled; i++ {
		bar += "█"
	}
	empty := ""
	for i := filled; i < width; i++ {
		empty += "░"
	}
	return style.Render(bar) + hpBarEmpty.Render(empty)
}
