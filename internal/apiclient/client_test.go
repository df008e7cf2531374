package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guerrasclon/termclient/pkg/types"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerHeaderAttached(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("abc123"), nil)
	_, err := c.Mundos(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc123", got)
}

func TestNoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	_, err := c.Mundos(context.Background())
	require.NoError(t, err)
	require.False(t, hasAuth)
}

func TestUnauthorizedIsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"No se pudieron validar las credenciales"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("expired"), nil)
	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Batalla no encontrada o ya ha terminado."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"), nil)
	_, err := c.AccionBatalla(context.Background(), "nope", types.AtaqueNormal)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Batalla no encontrada o ya ha terminado.", apiErr.Detail)
	require.False(t, errors.Is(err, ErrUnauthorized))
}

func TestAPIErrorToleratesNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gateway timeout", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"), nil)
	_, err := c.Mundos(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Empty(t, apiErr.Detail)
}

func TestLoginSendsPasswordForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "rex", r.PostFormValue("username"))
		require.Equal(t, "hunter2", r.PostFormValue("password"))
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	tok, err := c.Login(context.Background(), "rex", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok.AccessToken)
	require.Equal(t, "bearer", tok.TokenType)
}

func TestLoginRejectionIsInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Usuario o contraseña incorrectos"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	_, err := c.Login(context.Background(), "rex", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.False(t, errors.Is(err, ErrUnauthorized), "a bad login must not tear the session down")
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", staticToken("tok"), nil)
	_, err := c.Mundos(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/guerras-clon/mundos", path)
}
