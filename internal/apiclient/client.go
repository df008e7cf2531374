// Package apiclient is the typed HTTP client over the Guerras Clon
// engine. It knows paths, verbs and encodings; it holds no game state
// and makes no game decisions. Every authenticated call carries the
// session bearer token, and any 401 surfaces as ErrUnauthorized so the
// caller can run the one global teardown.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/pkg/types"
)

// ErrUnauthorized marks a 401 from any authenticated endpoint. It is the
// sole server-driven trigger for session teardown.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the engine's error body for non-2xx responses.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("engine returned HTTP %d", e.Status)
}

// TokenSource yields the current bearer token; empty means anonymous.
// *session.Store satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger
}

// New builds a client for an engine rooted at base (including any path
// prefix, e.g. http://localhost:8000/api).
func New(base string, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{},
		tokens: tokens,
		log:    log,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("engine rejected token", zap.String("path", req.URL.Path))
		return fmt.Errorf("%s: %w", req.URL.Path, ErrUnauthorized)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}

// --- Auth ---

// Login exchanges credentials for a bearer token. The engine speaks
// OAuth2 password form here, not JSON. Bad credentials come back as 401;
// that one is an inline error, not a session teardown, so it surfaces as
// an APIError rather than ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (types.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return types.Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return types.Token{}, decodeAPIError(resp)
	}
	var tok types.Token
	err = json.NewDecoder(resp.Body).Decode(&tok)
	return tok, err
}

// RegisterRequest starts registration; the engine mails a verification
// code out-of-band and answers with a human-readable message.
func (c *Client) RegisterRequest(ctx context.Context, username, email, password string) (types.Message, error) {
	var msg types.Message
	err := c.post(ctx, "/auth/register/request",
		types.RegisterRequest{Username: username, Email: email, Password: password}, &msg)
	return msg, err
}

// RegisterVerify trades the mailed code for a first bearer token.
func (c *Client) RegisterVerify(ctx context.Context, email, code string) (types.Token, error) {
	var tok types.Token
	err := c.post(ctx, "/auth/register/verify",
		types.RegisterVerifyRequest{Email: email, Code: code}, &tok)
	return tok, err
}

// Me resolves the token to the current user profile.
func (c *Client) Me(ctx context.Context) (types.User, error) {
	var u types.User
	err := c.get(ctx, "/auth/me", &u)
	return u, err
}

// UpdateMe is the forced credential change; success yields a new token.
func (c *Client) UpdateMe(ctx context.Context, username, password string) (types.Token, error) {
	var tok types.Token
	err := c.post(ctx, "/auth/update-me",
		types.UpdateMeRequest{Username: username, Password: password}, &tok)
	return tok, err
}

// --- Game ---

func (c *Client) Mundos(ctx context.Context) ([]types.Mundo, error) {
	var out []types.Mundo
	err := c.get(ctx, "/guerras-clon/mundos", &out)
	return out, err
}

func (c *Client) Personajes(ctx context.Context, mundoID int) (types.Roster, error) {
	var out types.Roster
	err := c.get(ctx, fmt.Sprintf("/guerras-clon/mundos/%d/personajes", mundoID), &out)
	return out, err
}

func (c *Client) IniciarBatalla(ctx context.Context, mundoID int, jugadorID string) (types.EstadoBatalla, error) {
	var out types.EstadoBatalla
	err := c.post(ctx, "/guerras-clon/batalla/iniciar",
		types.InicioBatallaRequest{MundoID: mundoID, JugadorID: jugadorID}, &out)
	return out, err
}

func (c *Client) AccionBatalla(ctx context.Context, idBatalla string, accion types.TipoAccion) (types.EstadoBatalla, error) {
	var out types.EstadoBatalla
	err := c.post(ctx, "/guerras-clon/batalla/accion",
		types.AccionBatallaRequest{IDBatalla: idBatalla, TipoAccion: accion}, &out)
	return out, err
}

// --- Tournament ---

func (c *Client) OpenTournaments(ctx context.Context) ([]types.Tournament, error) {
	var out []types.Tournament
	err := c.get(ctx, "/tournament/open", &out)
	return out, err
}

func (c *Client) Tournament(ctx context.Context, id int) (types.Tournament, error) {
	var out types.Tournament
	err := c.get(ctx, fmt.Sprintf("/tournament/%d", id), &out)
	return out, err
}

func (c *Client) JoinTournament(ctx context.Context, id int, characterID string) (types.Tournament, error) {
	var out types.Tournament
	err := c.post(ctx, fmt.Sprintf("/tournament/%d/join", id),
		types.TournamentJoinRequest{CharacterID: characterID}, &out)
	return out, err
}

func (c *Client) SimulateMatch(ctx context.Context, matchID int) (types.Match, error) {
	var out types.Match
	err := c.post(ctx, fmt.Sprintf("/tournament/match/%d/simulate", matchID), nil, &out)
	return out, err
}

func (c *Client) CreateTournament(ctx context.Context, name string) (types.Tournament, error) {
	var out types.Tournament
	err := c.post(ctx, "/tournament/create", types.TournamentCreateRequest{Name: name}, &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error) {
	var out []types.LeaderboardEntry
	err := c.get(ctx, "/tournament/leaderboard", &out)
	return out, err
}

// --- Admin ---

func (c *Client) AdminLogs(ctx context.Context) ([]types.AuditLog, error) {
	var out []types.AuditLog
	err := c.get(ctx, "/admin/logs", &out)
	return out, err
}

func (c *Client) AdminStats(ctx context.Context) (types.Stats, error) {
	var out types.Stats
	err := c.get(ctx, "/admin/stats", &out)
	return out, err
}
