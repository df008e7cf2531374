package stubengine

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/guerrasclon/termclient/pkg/types"
)

const dodgeChance = 0.25

// golpe resolves a single attack: dodge roll, base damage minus a
// defense discount, ±15% jitter, floor of 1.
func (s *store) golpe(atacante, defensor types.Personaje, accion types.TipoAccion) (int, string) {
	if s.rng.Float64() < dodgeChance {
		if accion == types.AtaqueEspecial {
			return 0, fmt.Sprintf("%s ha esquivado el ataque especial!", defensor.Nombre)
		}
		return 0, fmt.Sprintf("%s ha esquivado el ataque!", defensor.Nombre)
	}

	base := atacante.Info.Dano
	if accion == types.AtaqueEspecial {
		base = atacante.Info.AtaqueEspecial
	}
	base -= defensor.Info.Defensa / 25

	dano := int(float64(base) * (0.85 + s.rng.Float64()*0.30))
	if dano < 1 {
		dano = 1
	}

	if accion == types.AtaqueEspecial {
		return dano, fmt.Sprintf("%s usa su habilidad especial contra %s y causa %d de daño.", atacante.Nombre, defensor.Nombre, dano)
	}
	return dano, fmt.Sprintf("%s ataca a %s y causa %d de daño.", atacante.Nombre, defensor.Nombre, dano)
}

func (s *Server) handleMundos(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mundos)
}

func (s *Server) handlePersonajes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "mundoID"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "id de mundo inválido")
		return
	}
	if _, ok := mundoByID(id); !ok {
		detail(w, http.StatusNotFound, "Mundo no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, rosterForMundo(id))
}

func (s *Server) handleIniciarBatalla(w http.ResponseWriter, r *http.Request) {
	var req types.InicioBatallaRequest
	if !readJSON(w, r, &req) {
		return
	}
	if _, ok := mundoByID(req.MundoID); !ok {
		detail(w, http.StatusNotFound, "Mundo no encontrado")
		return
	}
	jugador, ok := personajeByID(req.JugadorID)
	if !ok || jugador.MundoID != req.MundoID {
		detail(w, http.StatusNotFound, "Personaje no encontrado en ese mundo")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	// Opponent: a random character of the opposite camp from the same
	// world, falling back to anyone else there.
	var rivales []types.Personaje
	for _, p := range personajes {
		if p.MundoID == req.MundoID && p.ID != jugador.ID && p.Tipo != jugador.Tipo {
			rivales = append(rivales, p)
		}
	}
	if len(rivales) == 0 {
		for _, p := range personajes {
			if p.MundoID == req.MundoID && p.ID != jugador.ID {
				rivales = append(rivales, p)
			}
		}
	}
	if len(rivales) == 0 {
		detail(w, http.StatusConflict, "No hay oponentes disponibles en este mundo")
		return
	}
	oponente := rivales[s.store.rng.Intn(len(rivales))]

	estado := &types.EstadoBatalla{
		IDBatalla: uuid.NewString(),
		Jugador:   types.Luchador{Personaje: jugador, HPActual: jugador.Info.Defensa},
		Oponente:  types.Luchador{Personaje: oponente, HPActual: oponente.Info.Defensa},
		LogBatalla: []string{
			fmt.Sprintf("¡Comienza la batalla entre %s y %s!", jugador.Nombre, oponente.Nombre),
		},
	}
	s.store.batallas[estado.IDBatalla] = estado
	s.store.auditLog(s.currentUser(r).Username, "BATTLE_START",
		fmt.Sprintf("%s vs %s", jugador.Nombre, oponente.Nombre))
	writeJSON(w, http.StatusOK, estado)
}

func (s *Server) handleAccionBatalla(w http.ResponseWriter, r *http.Request) {
	var req types.AccionBatallaRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.TipoAccion != types.AtaqueNormal && req.TipoAccion != types.AtaqueEspecial {
		detail(w, http.StatusBadRequest, fmt.Sprintf("Habilidad '%s' desconocida.", req.TipoAccion))
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	estado, ok := s.store.batallas[req.IDBatalla]
	if !ok {
		detail(w, http.StatusNotFound, "Batalla no encontrada o ya ha terminado.")
		return
	}
	if estado.Terminada {
		detail(w, http.StatusBadRequest, "Esta batalla ya ha terminado.")
		return
	}
	// The server enforces the one-shot special independently of the
	// client-side guard.
	if req.TipoAccion == types.AtaqueEspecial && estado.Jugador.EspecialUsado {
		detail(w, http.StatusBadRequest, "Ya has usado tu ataque especial.")
		return
	}

	if req.TipoAccion == types.AtaqueEspecial {
		estado.Jugador.EspecialUsado = true
	}
	dano, msg := s.store.golpe(estado.Jugador.Personaje, estado.Oponente.Personaje, req.TipoAccion)
	estado.Oponente.HPActual -= dano
	if estado.Oponente.HPActual < 0 {
		estado.Oponente.HPActual = 0
	}
	estado.LogBatalla = append(estado.LogBatalla, msg)

	if estado.Oponente.HPActual == 0 {
		estado.Terminada = true
		estado.LogBatalla = append(estado.LogBatalla,
			fmt.Sprintf("¡%s ha ganado la batalla!", estado.Jugador.Personaje.Nombre))
	} else {
		// Opponent turn: special once, 30% of the time.
		accion := types.AtaqueNormal
		if !estado.Oponente.EspecialUsado && s.store.rng.Float64() < 0.3 {
			accion = types.AtaqueEspecial
			estado.Oponente.EspecialUsado = true
		}
		dano, msg := s.store.golpe(estado.Oponente.Personaje, estado.Jugador.Personaje, accion)
		estado.Jugador.HPActual -= dano
		if estado.Jugador.HPActual < 0 {
			estado.Jugador.HPActual = 0
		}
		estado.LogBatalla = append(estado.LogBatalla, msg)

		if estado.Jugador.HPActual == 0 {
			estado.Terminada = true
			estado.LogBatalla = append(estado.LogBatalla,
				fmt.Sprintf("¡%s ha ganado la batalla!", estado.Oponente.Personaje.Nombre))
		}
	}

	if estado.Terminada {
		delete(s.store.batallas, estado.IDBatalla)
	}
	writeJSON(w, http.StatusOK, estado)
}
