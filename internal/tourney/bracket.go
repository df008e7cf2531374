package tourney

import (
	"fmt"
	"sort"

	"github.com/guerrasclon/termclient/pkg/types"
)

// Rounds of a 16-entrant single-elimination bracket: 8, 4, 2, 1 matches.
const NumRounds = 4

var roundLabels = [NumRounds]string{"Octavos", "Cuartos", "Semifinal", "FINAL"}

type Round struct {
	Number  int
	Label   string
	Matches []types.Match
}

// Bracket groups matches into the four fixed rounds, ordered by
// match_index ascending within each. Matches with an out-of-range round
// are dropped rather than invented a column for.
func Bracket(matches []types.Match) [NumRounds]Round {
	var rounds [NumRounds]Round
	for i := range rounds {
		rounds[i].Number = i + 1
		rounds[i].Label = roundLabels[i]
	}
	for _, m := range matches {
		if m.Round < 1 || m.Round > NumRounds {
			continue
		}
		r := &rounds[m.Round-1]
		r.Matches = append(r.Matches, m)
	}
	for i := range rounds {
		sort.Slice(rounds[i].Matches, func(a, b int) bool {
			return rounds[i].Matches[a].MatchIndex < rounds[i].Matches[b].MatchIndex
		})
	}
	return rounds
}

// FormatDuration renders tournament duration as MM:SS, seconds floored,
// both fields zero-padded. Minutes are not wrapped at an hour: 3600s is
// "60:00".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
