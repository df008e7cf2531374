package duel

import "strings"

// LineKind classifies one battle-log line for display. The rules are
// purely presentational, matched on the engine's message shapes: system
// lines open with the inverted exclamation mark, dodges mention
// "esquivado", hits are attributed to whichever fighter's name the line
// starts with.
type LineKind int

const (
	LineSystem LineKind = iota
	LineDodge
	LinePlayer
	LineOpponent
	LinePlain
)

func ClassifyLine(line, playerName, opponentName string) LineKind {
	switch {
	case strings.HasPrefix(line, "¡"):
		return LineSystem
	case strings.Contains(line, "esquivado"):
		return LineDodge
	case playerName != "" && strings.HasPrefix(line, playerName):
		return LinePlayer
	case opponentName != "" && strings.HasPrefix(line, opponentName):
		return LineOpponent
	default:
		return LinePlain
	}
}

// DisplayLog returns the battle log most-recent-first. The engine sends
// chronological order; the view shows the latest line on top.
func DisplayLog(log []string) []string {
	out := make([]string, len(log))
	for i, line := range log {
		out[len(log)-1-i] = line
	}
	return out
}
