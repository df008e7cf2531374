// Package types holds the wire models of the Guerras Clon engine API.
// Field names follow the engine contract exactly: the game endpoints
// speak Spanish (mundo, personaje, batalla), the tournament and auth
// endpoints speak English. Both the terminal client and the stub engine
// marshal through these.
package types

import "time"

type Rol string

const (
	RolAdmin   Rol = "admin"
	RolJugador Rol = "jugador"
)

type User struct {
	ID                 int    `json:"id"`
	Username           string `json:"username"`
	Role               Rol    `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Mundo struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Imagen string `json:"imagen"`
}

type InfoPersonaje struct {
	Dano           int `json:"daño"`
	Defensa        int `json:"defensa"`
	AtaqueEspecial int `json:"ataque_especial"`
}

type TipoPersonaje string

const (
	TipoHeroe   TipoPersonaje = "heroe"
	TipoVillano TipoPersonaje = "villano"
)

type Personaje struct {
	ID      string        `json:"id"`
	Nombre  string        `json:"nombre"`
	Tipo    TipoPersonaje `json:"tipo"`
	MundoID int           `json:"mundo_id"`
	Info    InfoPersonaje `json:"info"`
	Imagen  string        `json:"imagen"`
}

// Roster is the hero/villain split returned by /mundos/{id}/personajes.
type Roster struct {
	Heroes   []Personaje `json:"heroes"`
	Villanos []Personaje `json:"villanos"`
}

type TipoAccion string

const (
	AtaqueNormal   TipoAccion = "ataque_normal"
	AtaqueEspecial TipoAccion = "ataque_especial"
)

// Luchador is a character bound to a battle.
type Luchador struct {
	Personaje     Personaje `json:"personaje"`
	HPActual      int       `json:"hp_actual"`
	EspecialUsado bool      `json:"especial_usado"`
}

// HP clamps hp_actual into [0, defensa] for display. The engine owns the
// real value; a transient negative or overheal must never reach a render.
func (l Luchador) HP() int {
	if l.HPActual < 0 {
		return 0
	}
	if max := l.Personaje.Info.Defensa; l.HPActual > max {
		return max
	}
	return l.HPActual
}

// MaxHP is the character's defensa, which doubles as max hit points.
func (l Luchador) MaxHP() int { return l.Personaje.Info.Defensa }

type EstadoBatalla struct {
	IDBatalla  string   `json:"id_batalla"`
	Jugador    Luchador `json:"jugador"`
	Oponente   Luchador `json:"oponente"`
	LogBatalla []string `json:"log_batalla"`
	Terminada  bool     `json:"terminada"`
}

type EstadoTorneo string

const (
	TorneoPendiente  EstadoTorneo = "pending"
	TorneoActivo     EstadoTorneo = "active"
	TorneoCompletado EstadoTorneo = "completed"
)

type Participant struct {
	ID          int        `json:"id"`
	User        *User      `json:"user"`
	AIName      string     `json:"ai_name,omitempty"`
	CharacterID string     `json:"character_id"`
	Character   *Personaje `json:"character"`
}

// DisplayName resolves to the human username when the slot is a user,
// else the AI label.
func (p Participant) DisplayName() string {
	if p.User != nil {
		return p.User.Username
	}
	return p.AIName
}

// IsHuman reports whether the slot is occupied by a user rather than an AI.
func (p Participant) IsHuman() bool { return p.User != nil }

type EstadoMatch string

const (
	MatchPendiente  EstadoMatch = "pending"
	MatchCompletado EstadoMatch = "completed"
)

type Match struct {
	ID         int          `json:"id"`
	Round      int          `json:"round"`
	MatchIndex int          `json:"match_index"`
	Player1    *Participant `json:"player1"`
	Player2    *Participant `json:"player2"`
	Winner     *Participant `json:"winner"`
	Status     EstadoMatch  `json:"status"`
}

// Playable reports whether the match can be simulated: still pending and
// both slots seeded by the engine.
func (m Match) Playable() bool {
	return m.Status == MatchPendiente && m.Player1 != nil && m.Player2 != nil
}

type Tournament struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Status       EstadoTorneo  `json:"status"`
	Winner       *User         `json:"winner"`
	Participants []Participant `json:"participants"`
	Matches      []Match       `json:"matches"`
	StartTime    *time.Time    `json:"start_time"`
	EndTime      *time.Time    `json:"end_time"`
}

// HumanSeatTaken reports whether any participant slot is held by a user.
// A tournament has exactly one human seat, so a taken seat means full.
func (t Tournament) HumanSeatTaken() bool {
	for _, p := range t.Participants {
		if p.IsHuman() {
			return true
		}
	}
	return false
}

// Joinable: still pending and the single human seat is free.
func (t Tournament) Joinable() bool {
	return t.Status == TorneoPendiente && !t.HumanSeatTaken()
}

type LeaderboardEntry struct {
	TournamentName  string    `json:"tournament_name"`
	WinnerName      string    `json:"winner_name"`
	DurationSeconds float64   `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}

type AuditLog struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}

type Stats struct {
	TotalUsers     int `json:"total_users"`
	TotalAuditLogs int `json:"total_audit_logs"`
}

// Request bodies.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type UpdateMeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type InicioBatallaRequest struct {
	MundoID   int    `json:"mundo_id"`
	JugadorID string `json:"jugador_id"`
}

type AccionBatallaRequest struct {
	IDBatalla  string     `json:"id_batalla"`
	TipoAccion TipoAccion `json:"tipo_accion"`
}

type TournamentCreateRequest struct {
	Name string `json:"name"`
}

type TournamentJoinRequest struct {
	CharacterID string `json:"character_id"`
}

// Message is the {"message": ...} acknowledgement some endpoints return.
type Message struct {
	Message string `json:"message"`
}
