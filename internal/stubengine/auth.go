package stubengine

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/guerrasclon/termclient/pkg/types"
)

const tokenTTL = 60 * time.Minute

func (s *Server) issueToken(username string, role types.Rol) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (string, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", false
	}
	return sub, true
}

// requireUser resolves the bearer token; everything behind it answers
// 401 with the engine's detail body when the token is missing or bad.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			detail(w, http.StatusUnauthorized, "No se pudieron validar las credenciales")
			return
		}
		username, ok := s.parseToken(raw)
		if !ok {
			detail(w, http.StatusUnauthorized, "No se pudieron validar las credenciales")
			return
		}

		s.store.mu.Lock()
		u := s.store.users[username]
		s.store.mu.Unlock()
		if u == nil {
			detail(w, http.StatusUnauthorized, "No se pudieron validar las credenciales")
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := s.currentUser(r); u == nil || u.Role != types.RolAdmin {
			detail(w, http.StatusForbidden, "Se requieren permisos de administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleLogin implements the OAuth2 password form exchange.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		detail(w, http.StatusUnprocessableEntity, "formulario inválido")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.store.mu.Lock()
	u := s.store.users[username]
	if u == nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		s.store.auditLog(username, "USER_LOGIN", "Failed: Incorrect username or password")
		s.store.mu.Unlock()
		detail(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}
	s.store.auditLog(username, "USER_LOGIN", "Success")
	role := u.Role
	s.store.mu.Unlock()

	tok, err := s.issueToken(username, role)
	if err != nil {
		detail(w, http.StatusInternalServerError, "no se pudo emitir el token")
		return
	}
	writeJSON(w, http.StatusOK, types.Token{AccessToken: tok, TokenType: "bearer"})
}

func (s *Server) handleRegisterRequest(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		detail(w, http.StatusBadRequest, "usuario, email y contraseña son obligatorios")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.users[req.Username] != nil {
		detail(w, http.StatusBadRequest, "El nombre de usuario ya está registrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		detail(w, http.StatusInternalServerError, "error interno")
		return
	}
	code := fmt.Sprintf("%06d", s.store.rng.Intn(1000000))
	s.store.pending[req.Email] = pendingRegistration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Code:         code,
	}
	// The real engine mails the code. The stub logs it instead.
	s.log.Info("verification code issued", zap.String("email", req.Email), zap.String("code", code))
	s.store.auditLog(req.Username, "USER_REGISTER_REQUEST", req.Email)

	writeJSON(w, http.StatusOK, types.Message{
		Message: fmt.Sprintf("Código de verificación enviado a %s", req.Email),
	})
}

func (s *Server) handleRegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterVerifyRequest
	if !readJSON(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	pend, ok := s.store.pending[req.Email]
	if !ok || pend.Code != req.Code {
		s.store.mu.Unlock()
		detail(w, http.StatusBadRequest, "Código de verificación incorrecto")
		return
	}
	delete(s.store.pending, req.Email)
	u := s.store.addUser(pend.Username, pend.Email, pend.PasswordHash)
	s.store.auditLog(u.Username, "USER_REGISTER", "Success")
	username, role := u.Username, u.Role
	s.store.mu.Unlock()

	tok, err := s.issueToken(username, role)
	if err != nil {
		detail(w, http.StatusInternalServerError, "no se pudo emitir el token")
		return
	}
	writeJSON(w, http.StatusOK, types.Token{AccessToken: tok, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentUser(r).User)
}

// handleUpdateMe is the forced credential change: new username and
// password, must_change_password cleared, fresh token issued.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateMeRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Username == "" || len(req.Password) < 4 {
		detail(w, http.StatusBadRequest, "La contraseña debe tener al menos 4 caracteres")
		return
	}
	u := s.currentUser(r)

	s.store.mu.Lock()
	if other := s.store.users[req.Username]; other != nil && other.ID != u.ID {
		s.store.mu.Unlock()
		detail(w, http.StatusBadRequest, "El nombre de usuario ya está registrado")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.store.mu.Unlock()
		detail(w, http.StatusInternalServerError, "error interno")
		return
	}
	delete(s.store.users, u.Username)
	s.store.auditLog(u.Username, "USER_UPDATE", fmt.Sprintf("renamed to %s", req.Username))
	u.Username = req.Username
	u.PasswordHash = hash
	u.MustChangePassword = false
	s.store.users[u.Username] = u
	username, role := u.Username, u.Role
	s.store.mu.Unlock()

	tok, err := s.issueToken(username, role)
	if err != nil {
		detail(w, http.StatusInternalServerError, "no se pudo emitir el token")
		return
	}
	writeJSON(w, http.StatusOK, types.Token{AccessToken: tok, TokenType: "bearer"})
}
