package stubengine

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guerrasclon/termclient/pkg/types"
)

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r).Role != types.RolAdmin {
		detail(w, http.StatusForbidden, "Solo un administrador puede crear torneos")
		return
	}
	var req types.TournamentCreateRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		detail(w, http.StatusBadRequest, "El torneo necesita un nombre")
		return
	}

	s.store.mu.Lock()
	t := &types.Tournament{
		ID:           s.store.nextTID,
		Name:         req.Name,
		Status:       types.TorneoPendiente,
		Participants: []types.Participant{},
		Matches:      []types.Match{},
	}
	s.store.nextTID++
	s.store.tournaments[t.ID] = t
	s.store.auditLog(s.currentUser(r).Username, "CREATE_TOURNAMENT",
		fmt.Sprintf("Torneo '%s' creado.", req.Name))
	s.store.mu.Unlock()

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleOpenTournaments(w http.ResponseWriter, _ *http.Request) {
	s.store.mu.Lock()
	open := []types.Tournament{}
	for _, t := range s.store.tournaments {
		if t.Status == types.TorneoPendiente {
			open = append(open, *t)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })
	writeJSON(w, http.StatusOK, open)
}

func (s *Server) handleTournamentDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "id de torneo inválido")
		return
	}

	s.store.mu.Lock()
	t, ok := s.store.tournaments[id]
	if !ok {
		s.store.mu.Unlock()
		detail(w, http.StatusNotFound, "Torneo no encontrado")
		return
	}
	cp := *t
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, cp)
}

// handleJoinTournament seats the one human, fills the remaining 15
// slots with AI, shuffles, and seeds round 1.
func (s *Server) handleJoinTournament(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "id de torneo inválido")
		return
	}
	var req types.TournamentJoinRequest
	if !readJSON(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t, ok := s.store.tournaments[id]
	if !ok {
		detail(w, http.StatusNotFound, "Torneo no encontrado")
		return
	}
	if t.Status != types.TorneoPendiente {
		detail(w, http.StatusBadRequest, "Este torneo ya ha comenzado o ha finalizado.")
		return
	}
	u := s.currentUser(r)
	for _, p := range t.Participants {
		if p.User != nil {
			if p.User.ID == u.ID {
				detail(w, http.StatusBadRequest, "Ya estás inscrito en este torneo.")
			} else {
				detail(w, http.StatusBadRequest, "El torneo ya tiene un jugador humano. Está lleno.")
			}
			return
		}
	}
	elegido, ok := personajeByID(req.CharacterID)
	if !ok {
		detail(w, http.StatusNotFound, "Personaje no encontrado.")
		return
	}

	human := s.newParticipant(&u.User, "", elegido)
	participantes := []types.Participant{human}

	var bots []types.Personaje
	for _, p := range personajes {
		if p.ID != elegido.ID {
			bots = append(bots, p)
		}
	}
	if len(bots) < aiParticipants {
		detail(w, http.StatusInternalServerError, "No hay suficientes personajes únicos para los bots.")
		return
	}
	s.store.rng.Shuffle(len(bots), func(i, j int) { bots[i], bots[j] = bots[j], bots[i] })
	for _, bc := range bots[:aiParticipants] {
		participantes = append(participantes, s.newParticipant(nil, "IA: "+bc.Nombre, bc))
	}
	s.store.rng.Shuffle(len(participantes), func(i, j int) {
		participantes[i], participantes[j] = participantes[j], participantes[i]
	})

	t.Participants = participantes
	for i := 0; i < maxParticipants/2; i++ {
		p1, p2 := participantes[i*2], participantes[i*2+1]
		m := types.Match{
			ID:         s.store.nextMID,
			Round:      1,
			MatchIndex: i,
			Player1:    &p1,
			Player2:    &p2,
			Status:     types.MatchPendiente,
		}
		s.store.nextMID++
		s.store.matchOwner[m.ID] = t.ID
		t.Matches = append(t.Matches, m)
	}

	now := time.Now().UTC()
	t.Status = types.TorneoActivo
	t.StartTime = &now
	s.store.auditLog(u.Username, "JOIN_TOURNAMENT",
		fmt.Sprintf("Unido a '%s' con %s", t.Name, elegido.Nombre))

	writeJSON(w, http.StatusOK, *t)
}

func (s *Server) newParticipant(u *types.User, aiName string, p types.Personaje) types.Participant {
	char := p
	part := types.Participant{
		ID:          s.store.nextPID,
		AIName:      aiName,
		CharacterID: p.ID,
		Character:   &char,
	}
	if u != nil {
		cu := *u
		part.User = &cu
	}
	s.store.nextPID++
	return part
}

// simularBatalla runs a full automatic duel between two characters and
// returns true when the first one wins.
func (s *store) simularBatalla(p1, p2 types.Personaje) bool {
	hp1, hp2 := p1.Info.Defensa, p2.Info.Defensa
	spec1, spec2 := false, false

	for hp1 > 0 && hp2 > 0 {
		accion := types.AtaqueNormal
		if !spec1 && s.rng.Float64() < 0.3 {
			accion = types.AtaqueEspecial
			spec1 = true
		}
		dano, _ := s.golpe(p1, p2, accion)
		hp2 -= dano
		if hp2 <= 0 {
			return true
		}

		accion = types.AtaqueNormal
		if !spec2 && s.rng.Float64() < 0.3 {
			accion = types.AtaqueEspecial
			spec2 = true
		}
		dano, _ = s.golpe(p2, p1, accion)
		hp1 -= dano
	}
	return hp1 > 0
}

func (s *Server) handleSimulateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "id de partido inválido")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tid, ok := s.store.matchOwner[id]
	if !ok {
		detail(w, http.StatusNotFound, "Partido no encontrado")
		return
	}
	t := s.store.tournaments[tid]

	var match *types.Match
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			match = &t.Matches[i]
			break
		}
	}
	if match == nil {
		detail(w, http.StatusNotFound, "Partido no encontrado")
		return
	}
	if match.Status != types.MatchPendiente {
		detail(w, http.StatusBadRequest, "Este partido ya se ha jugado.")
		return
	}
	if match.Player1 == nil || match.Player2 == nil {
		detail(w, http.StatusBadRequest, "El partido aún no tiene a los dos jugadores asignados.")
		return
	}

	winner := *match.Player2
	if s.store.simularBatalla(*match.Player1.Character, *match.Player2.Character) {
		winner = *match.Player1
	}
	match.Winner = &winner
	match.Status = types.MatchCompletado

	s.advanceBracket(t, match.Round)
	writeJSON(w, http.StatusOK, *match)
}

// advanceBracket seeds the next round once every match of the current
// round is completed; after the final it closes the tournament.
func (s *Server) advanceBracket(t *types.Tournament, round int) {
	var roundMatches []types.Match
	for _, m := range t.Matches {
		if m.Round == round {
			if m.Status != types.MatchCompletado {
				return
			}
			roundMatches = append(roundMatches, m)
		}
	}
	sort.Slice(roundMatches, func(i, j int) bool {
		return roundMatches[i].MatchIndex < roundMatches[j].MatchIndex
	})

	if round == finalRound {
		ganador := roundMatches[0].Winner
		now := time.Now().UTC()
		t.Status = types.TorneoCompletado
		t.EndTime = &now
		winnerName := ganador.DisplayName()
		if ganador.User != nil {
			cu := *ganador.User
			t.Winner = &cu
		}
		s.store.auditLog(winnerName, "TOURNAMENT_WIN",
			fmt.Sprintf("Ganador de '%s': %s", t.Name, winnerName))
		return
	}

	for i := 0; i+1 < len(roundMatches); i += 2 {
		w1, w2 := *roundMatches[i].Winner, *roundMatches[i+1].Winner
		m := types.Match{
			ID:         s.store.nextMID,
			Round:      round + 1,
			MatchIndex: i / 2,
			Player1:    &w1,
			Player2:    &w2,
			Status:     types.MatchPendiente,
		}
		s.store.nextMID++
		s.store.matchOwner[m.ID] = t.ID
		t.Matches = append(t.Matches, m)
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	s.store.mu.Lock()
	entries := []types.LeaderboardEntry{}
	for _, t := range s.store.tournaments {
		if t.Status != types.TorneoCompletado || t.Winner == nil || t.StartTime == nil || t.EndTime == nil {
			continue
		}
		entries = append(entries, types.LeaderboardEntry{
			TournamentName:  t.Name,
			WinnerName:      t.Winner.Username,
			DurationSeconds: t.EndTime.Sub(*t.StartTime).Seconds(),
			CompletedAt:     *t.EndTime,
		})
	}
	s.store.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DurationSeconds < entries[j].DurationSeconds
	})
	if len(entries) > 20 {
		entries = entries[:20]
	}
	writeJSON(w, http.StatusOK, entries)
}
