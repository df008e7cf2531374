package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/router"
)

const introText = `Hace mucho tiempo, en una galaxia muy, muy lejana...

La República se desmorona. Los ejércitos clon marchan sobre mil
mundos y cada batalla puede decidir el destino de la galaxia.

Elige tu mundo. Elige tu campeón. Lucha.`

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegisterForm
	modeRegisterCode
)

type loginState struct {
	mode   loginMode
	inputs []textinput.Model
	focus  int
	busy   bool
	// pendingEmail carries the address between the register form and
	// the verification-code step.
	pendingEmail string
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newLoginState() loginState {
	s := loginState{
		inputs: []textinput.Model{
			newInput("usuario", false),
			newInput("contraseña", true),
		},
	}
	s.inputs[0].Focus()
	return s
}

func (s *loginState) switchMode(mode loginMode) {
	s.mode = mode
	s.focus = 0
	switch mode {
	case modeLogin:
		s.inputs = []textinput.Model{
			newInput("usuario", false),
			newInput("contraseña", true),
		}
	case modeRegisterForm:
		s.inputs = []textinput.Model{
			newInput("usuario", false),
			newInput("email", false),
			newInput("contraseña", true),
		}
	case modeRegisterCode:
		s.inputs = []textinput.Model{
			newInput("código de verificación", false),
		}
	}
	s.inputs[0].Focus()
}

func (s *loginState) focusCmd() tea.Cmd { return textinput.Blink }

func (s *loginState) cycleFocus(delta int) {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *loginState) values() []string {
	vals := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		vals[i] = strings.TrimSpace(in.Value())
	}
	return vals
}

// --- Intro ---

func (m *Model) updateIntroKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return m, m.finishIntro()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// finishIntro leaves the narrative screen; a surviving token skips the
// login form and goes straight to verification.
func (m *Model) finishIntro() tea.Cmd {
	hasToken := m.sess.Token() != ""
	m.apply(router.Event{Type: router.EvtIntroDone, HasToken: hasToken})
	if hasToken {
		return m.verifyCmd()
	}
	return m.login.focusCmd()
}

func (m *Model) viewIntro() string {
	return titleStyle.Render("GUERRAS CLON") + "\n" +
		introText + "\n\n" +
		helpStyle.Render("enter: continuar · q: salir")
}

// --- Login / register ---

func (m *Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.login
	if s.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		s.cycleFocus(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		s.cycleFocus(-1)
		return m, textinput.Blink
	case "esc":
		if s.mode != modeLogin {
			s.switchMode(modeLogin)
			return m, textinput.Blink
		}
		return m, nil
	case "ctrl+r":
		if s.mode == modeLogin {
			s.switchMode(modeRegisterForm)
		} else {
			s.switchMode(modeLogin)
		}
		return m, textinput.Blink
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitLogin() (tea.Model, tea.Cmd) {
	s := &m.login
	vals := s.values()

	switch s.mode {
	case modeLogin:
		if vals[0] == "" || vals[1] == "" {
			m.banner = "Introduce usuario y contraseña."
			return m, nil
		}
		s.busy = true
		return m, m.loginCmd(vals[0], vals[1])
	case modeRegisterForm:
		if vals[0] == "" || vals[1] == "" || vals[2] == "" {
			m.banner = "Todos los campos son obligatorios."
			return m, nil
		}
		s.busy = true
		s.pendingEmail = vals[1]
		return m, m.registerRequestCmd(vals[0], vals[1], vals[2])
	case modeRegisterCode:
		if vals[0] == "" {
			m.banner = "Introduce el código recibido."
			return m, nil
		}
		s.busy = true
		return m, m.registerVerifyCmd(s.pendingEmail, vals[0])
	}
	return m, nil
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		// A rejected login is an inline mistake, never a teardown.
		var apiErr *apiclient.APIError
		if errors.As(msg.err, &apiErr) {
			m.banner = apiErr.Detail
			return m, nil
		}
		return m, m.fail(msg.err)
	}
	m.sess.SetToken(msg.tok.AccessToken)
	m.apply(router.Event{Type: router.EvtTokenIssued})
	return m, m.verifyCmd()
}

func (m *Model) handleRegisterRequested(msg registerRequestedMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		var apiErr *apiclient.APIError
		if errors.As(msg.err, &apiErr) {
			m.banner = apiErr.Detail
			return m, nil
		}
		return m, m.fail(msg.err)
	}
	m.login.switchMode(modeRegisterCode)
	m.notice = msg.msg.Message
	return m, textinput.Blink
}

func (m *Model) viewLogin() string {
	s := m.login
	var b strings.Builder

	b.WriteString(titleStyle.Render("GUERRAS CLON"))
	b.WriteString("\n")
	switch s.mode {
	case modeLogin:
		b.WriteString(subtitleStyle.Render("Inicia sesión"))
	case modeRegisterForm:
		b.WriteString(subtitleStyle.Render("Crea tu cuenta"))
	case modeRegisterCode:
		b.WriteString(subtitleStyle.Render("Introduce el código enviado a " + s.pendingEmail))
	}
	b.WriteString("\n\n")

	for _, in := range s.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if s.busy {
		b.WriteString("\n" + m.spin.View() + " Conectando...")
	}

	help := "enter: entrar · ctrl+r: registrarse · ctrl+c: salir"
	if s.mode != modeLogin {
		help = "enter: enviar · esc: volver · ctrl+c: salir"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

// --- Verification ---

func (m *Model) handleVerified(msg verifiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, apiclient.ErrUnauthorized) {
			return m, m.teardown("La sesión ha expirado. Inicia sesión de nuevo.")
		}
		return m, m.teardown("No se pudo verificar la sesión.")
	}
	u := msg.user
	m.sess.SetUser(&u)
	m.apply(router.Event{
		Type:       router.EvtVerified,
		Role:       u.Role,
		MustChange: u.MustChangePassword,
	})

	switch m.route.Screen {
	case router.ScreenWorlds:
		m.worlds.busy = true
		return m, m.mundosCmd()
	case router.ScreenPasswordReset:
		m.notice = "Debes cambiar tu contraseña antes de continuar."
		return m, m.reset.focusCmd()
	case router.ScreenAdminHome:
		m.admin.busy = true
		return m, tea.Batch(m.adminLogsCmd(), m.adminStatsCmd())
	}
	return m, nil
}

// --- Forced password reset ---

type resetState struct {
	inputs []textinput.Model
	focus  int
	busy   bool
}

func newResetState() resetState {
	s := resetState{
		inputs: []textinput.Model{
			newInput("nuevo usuario", false),
			newInput("nueva contraseña", true),
		},
	}
	s.inputs[0].Focus()
	return s
}

func (s *resetState) focusCmd() tea.Cmd { return textinput.Blink }

func (m *Model) updateResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.reset
	if s.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		s.inputs[s.focus].Blur()
		s.focus = (s.focus + 1) % len(s.inputs)
		s.inputs[s.focus].Focus()
		return m, textinput.Blink
	case "enter":
		username := strings.TrimSpace(s.inputs[0].Value())
		password := s.inputs[1].Value()
		if username == "" || len(password) < 4 {
			m.banner = "La contraseña debe tener al menos 4 caracteres."
			return m, nil
		}
		s.busy = true
		return m, m.updateMeCmd(username, password)
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m *Model) handlePasswordChanged(msg passwordChangedMsg) (tea.Model, tea.Cmd) {
	m.reset.busy = false
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	m.sess.SetToken(msg.tok.AccessToken)
	m.apply(router.Event{Type: router.EvtTokenIssued})
	m.notice = "Credenciales actualizadas."
	return m, m.verifyCmd()
}

func (m *Model) viewReset() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CAMBIO DE CREDENCIALES OBLIGATORIO"))
	b.WriteString("\n")
	for _, in := range m.reset.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.reset.busy {
		b.WriteString("\n" + m.spin.View() + " Guardando...")
	}
	b.WriteString("\n" + helpStyle.Render("enter: guardar · ctrl+c: salir"))
	return b.String()
}
