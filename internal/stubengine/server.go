package stubengine

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	store  *store
	secret []byte
	log    *zap.Logger
}

func New(jwtSecret string, seed int64, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:  newStore(seed, log),
		secret: []byte(jwtSecret),
		log:    log,
	}
}

// Handler builds the full route tree under the engine's /api prefix.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", s.handleLogin)
		r.Post("/auth/register/request", s.handleRegisterRequest)
		r.Post("/auth/register/verify", s.handleRegisterVerify)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)
			r.Get("/auth/me", s.handleMe)
			r.Post("/auth/update-me", s.handleUpdateMe)

			r.Get("/guerras-clon/mundos", s.handleMundos)
			r.Get("/guerras-clon/mundos/{mundoID}/personajes", s.handlePersonajes)
			r.Post("/guerras-clon/batalla/iniciar", s.handleIniciarBatalla)
			r.Post("/guerras-clon/batalla/accion", s.handleAccionBatalla)

			r.Get("/tournament/open", s.handleOpenTournaments)
			r.Get("/tournament/leaderboard", s.handleLeaderboard)
			r.Get("/tournament/{tournamentID}", s.handleTournamentDetails)
			r.Post("/tournament/{tournamentID}/join", s.handleJoinTournament)
			r.Post("/tournament/match/{matchID}/simulate", s.handleSimulateMatch)
			r.Post("/tournament/create", s.handleCreateTournament)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser, s.requireAdmin)
			r.Get("/admin/logs", s.handleAdminLogs)
			r.Get("/admin/stats", s.handleAdminStats)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// detail mirrors the engine's FastAPI-style error body.
func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		detail(w, http.StatusUnprocessableEntity, "cuerpo de la petición inválido")
		return false
	}
	return true
}

type ctxKey int

const userKey ctxKey = 0

func (s *Server) currentUser(r *http.Request) *user {
	u, _ := r.Context().Value(userKey).(*user)
	return u
}

func withUser(r *http.Request, u *user) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, u))
}
