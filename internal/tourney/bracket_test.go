package tourney

import (
	"testing"

	"github.com/guerrasclon/termclient/pkg/types"
)

func TestBracketGroupsIntoFourFixedRounds(t *testing.T) {
	// Engine order is round-major; shuffle the indexes within rounds to
	// prove the client re-sorts by match_index.
	var matches []types.Match
	id := 1
	for round, count := range map[int]int{1: 8, 2: 4, 3: 2, 4: 1} {
		for i := count - 1; i >= 0; i-- {
			matches = append(matches, types.Match{ID: id, Round: round, MatchIndex: i})
			id++
		}
	}

	rounds := Bracket(matches)

	wantCounts := [NumRounds]int{8, 4, 2, 1}
	wantLabels := [NumRounds]string{"Octavos", "Cuartos", "Semifinal", "FINAL"}
	for i, r := range rounds {
		if len(r.Matches) != wantCounts[i] {
			t.Fatalf("round %d: want %d matches, got %d", i+1, wantCounts[i], len(r.Matches))
		}
		if r.Label != wantLabels[i] {
			t.Fatalf("round %d: want label %q, got %q", i+1, wantLabels[i], r.Label)
		}
		for j, m := range r.Matches {
			if m.MatchIndex != j {
				t.Fatalf("round %d: matches not ordered by match_index: %+v", i+1, r.Matches)
			}
		}
	}
}

func TestBracketDropsOutOfRangeRounds(t *testing.T) {
	rounds := Bracket([]types.Match{
		{ID: 1, Round: 0},
		{ID: 2, Round: 5},
		{ID: 3, Round: 4},
	})
	for i := 0; i < 3; i++ {
		if len(rounds[i].Matches) != 0 {
			t.Fatalf("round %d not empty: %+v", i+1, rounds[i].Matches)
		}
	}
	if len(rounds[3].Matches) != 1 || rounds[3].Matches[0].ID != 3 {
		t.Fatalf("final: %+v", rounds[3].Matches)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{125, "02:05"},
		{59, "00:59"},
		{3600, "60:00"},
		{0, "00:00"},
		{61.9, "01:01"}, // floor, never round up
		{-5, "00:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%v): want %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestParticipantDisplayName(t *testing.T) {
	human := types.Participant{User: &types.User{Username: "ahsoka"}, AIName: ""}
	if human.DisplayName() != "ahsoka" {
		t.Fatalf("human name: %q", human.DisplayName())
	}
	bot := types.Participant{AIName: "IA: Jango Fett"}
	if bot.DisplayName() != "IA: Jango Fett" {
		t.Fatalf("bot name: %q", bot.DisplayName())
	}
}

func TestJoinability(t *testing.T) {
	open := types.Tournament{
		Status:       types.TorneoPendiente,
		Participants: []types.Participant{{AIName: "IA: Yoda"}},
	}
	if !open.Joinable() {
		t.Fatalf("pending tournament with only AI slots must be joinable")
	}

	// One human seat per tournament: a single human participant fills it.
	taken := types.Tournament{
		Status: types.TorneoPendiente,
		Participants: []types.Participant{
			{User: &types.User{Username: "rex"}},
		},
	}
	if taken.Joinable() {
		t.Fatalf("tournament with a human participant must be full")
	}

	active := types.Tournament{Status: types.TorneoActivo}
	if active.Joinable() {
		t.Fatalf("active tournament must not be joinable")
	}
}
