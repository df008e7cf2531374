package tourney

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/session"
	"github.com/guerrasclon/termclient/pkg/types"
)

type fakeTournamentServer struct {
	tournament types.Tournament
	requests   atomic.Int32
	simulated  atomic.Int32
	details    atomic.Int32
}

func (f *fakeTournamentServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tournament/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		switch {
		case r.URL.Path == "/tournament/open":
			_ = json.NewEncoder(w).Encode([]types.Tournament{f.tournament})
		case strings.HasSuffix(r.URL.Path, "/join"):
			human := types.Participant{ID: 1, User: &types.User{ID: 9, Username: "ahsoka"}}
			f.tournament.Status = types.TorneoActivo
			f.tournament.Participants = append(f.tournament.Participants, human)
			_ = json.NewEncoder(w).Encode(f.tournament)
		case strings.Contains(r.URL.Path, "/match/"):
			f.simulated.Add(1)
			_ = json.NewEncoder(w).Encode(types.Match{ID: 71, Status: types.MatchCompletado})
		default:
			f.details.Add(1)
			_ = json.NewEncoder(w).Encode(f.tournament)
		}
	})
	return mux
}

func newController(t *testing.T, f *fakeTournamentServer) *Controller {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	sess := session.New("")
	sess.SetToken("tok")
	api := apiclient.New(srv.URL, sess, nil)
	return NewController(api, sess, nil)
}

func TestJoinWithoutStagedCharacterIssuesNoRequest(t *testing.T) {
	f := &fakeTournamentServer{tournament: types.Tournament{ID: 4, Status: types.TorneoPendiente}}
	c := newController(t, f)

	_, err := c.Join(context.Background(), 4)
	require.ErrorIs(t, err, ErrNoStagedCharacter)
	require.EqualValues(t, 0, f.requests.Load(), "join must fail fast client-side")
}

func TestJoinConsumesStagedCharacterExactlyOnce(t *testing.T) {
	f := &fakeTournamentServer{tournament: types.Tournament{ID: 4, Name: "Copa Kamino", Status: types.TorneoPendiente}}
	c := newController(t, f)

	c.Stage(types.Personaje{ID: "obi", Nombre: "Obi-Wan Kenobi"})
	got, err := c.Join(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, types.TorneoActivo, got.Status)
	require.Nil(t, c.Staged(), "staged character must be consumed by a successful join")
	require.NotNil(t, c.Inspected())

	// A second join attempt is back to fail-fast.
	_, err = c.Join(context.Background(), 4)
	require.ErrorIs(t, err, ErrNoStagedCharacter)
}

func TestSimulateRefetchesInspectedDetails(t *testing.T) {
	f := &fakeTournamentServer{tournament: types.Tournament{ID: 4, Status: types.TorneoActivo}}
	c := newController(t, f)

	_, err := c.Details(context.Background(), 4)
	require.NoError(t, err)
	detailsBefore := f.details.Load()

	_, err = c.Simulate(context.Background(), 71)
	require.NoError(t, err)
	require.EqualValues(t, 1, f.simulated.Load())
	require.Equal(t, detailsBefore+1, f.details.Load(),
		"simulate must re-fetch the inspected tournament for next-round pairings")
}

func TestSimulateWithoutInspectedTournament(t *testing.T) {
	f := &fakeTournamentServer{}
	c := newController(t, f)

	_, err := c.Simulate(context.Background(), 71)
	require.ErrorIs(t, err, ErrNothingInspected)
	require.EqualValues(t, 0, f.requests.Load())
}

func TestResetDropsEverything(t *testing.T) {
	f := &fakeTournamentServer{tournament: types.Tournament{ID: 4}}
	c := newController(t, f)

	c.Stage(types.Personaje{ID: "yoda", Nombre: "Yoda"})
	_, err := c.Details(context.Background(), 4)
	require.NoError(t, err)

	c.Reset()
	require.Nil(t, c.Staged())
	require.Nil(t, c.Inspected())
	require.False(t, c.Busy())
}
