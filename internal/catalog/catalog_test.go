package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guerrasclon/termclient/internal/apiclient"
)

type noToken struct{}

func (noToken) Token() string { return "tok" }

func newCatalogServer(t *testing.T) (*Browser, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	var mundoCalls, rosterCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/guerras-clon/mundos", func(w http.ResponseWriter, _ *http.Request) {
		mundoCalls.Add(1)
		w.Write([]byte(`[{"id":1,"nombre":"Kamino"},{"id":2,"nombre":"Coruscant"}]`))
	})
	mux.HandleFunc("/guerras-clon/mundos/1/personajes", func(w http.ResponseWriter, _ *http.Request) {
		rosterCalls.Add(1)
		w.Write([]byte(`{"heroes":[{"id":"rex","nombre":"Rex","tipo":"heroe"}],"villanos":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewBrowser(apiclient.New(srv.URL, noToken{}, nil)), &mundoCalls, &rosterCalls
}

func TestMundosFetchedOnce(t *testing.T) {
	b, mundoCalls, _ := newCatalogServer(t)

	for i := 0; i < 3; i++ {
		mundos, err := b.Mundos(context.Background())
		require.NoError(t, err)
		require.Len(t, mundos, 2)
	}
	require.Equal(t, int32(1), mundoCalls.Load())
}

func TestRosterCachedPerWorld(t *testing.T) {
	b, _, rosterCalls := newCatalogServer(t)

	for i := 0; i < 3; i++ {
		roster, err := b.Personajes(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, roster.Heroes, 1)
	}
	require.Equal(t, int32(1), rosterCalls.Load())
}

func TestInvalidateRefetches(t *testing.T) {
	b, mundoCalls, rosterCalls := newCatalogServer(t)

	_, err := b.Mundos(context.Background())
	require.NoError(t, err)
	_, err = b.Personajes(context.Background(), 1)
	require.NoError(t, err)

	b.Invalidate()

	_, err = b.Mundos(context.Background())
	require.NoError(t, err)
	_, err = b.Personajes(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, int32(2), mundoCalls.Load())
	require.Equal(t, int32(2), rosterCalls.Load())
}

func TestFetchErrorNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id":1,"nombre":"Kamino"}]`))
	}))
	defer srv.Close()
	b := NewBrowser(apiclient.New(srv.URL, noToken{}, nil))

	_, err := b.Mundos(context.Background())
	require.Error(t, err)

	mundos, err := b.Mundos(context.Background())
	require.NoError(t, err)
	require.Len(t, mundos, 1)
	require.Equal(t, int32(2), calls.Load())
}
