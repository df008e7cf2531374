// Package tui is the terminal front of the Guerras Clon client: a
// single Bubble Tea model that owns the screen router, dispatches
// commands to the duel and tournament controllers and renders whatever
// authoritative state they hold. No combat outcome is ever computed
// here; every number on screen came from the engine.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/guerrasclon/termclient/internal/apiclient"
	"github.com/guerrasclon/termclient/internal/catalog"
	"github.com/guerrasclon/termclient/internal/config"
	"github.com/guerrasclon/termclient/internal/duel"
	"github.com/guerrasclon/termclient/internal/router"
	"github.com/guerrasclon/termclient/internal/session"
	"github.com/guerrasclon/termclient/internal/tourney"
)

type Model struct {
	cfg  config.Config
	log  *zap.Logger
	api  *apiclient.Client
	sess *session.Store
	cat  *catalog.Browser
	duel *duel.Controller
	tour *tourney.Controller

	route  router.State
	width  int
	height int

	// banner is a dismissible error line; notice its green sibling.
	// Neither touches the screen state underneath.
	banner string
	notice string

	spin spinner.Model

	login  loginState
	reset  resetState
	admin  adminState
	worlds worldsState
	char   characterState
	duelUI duelUIState
	tourUI tournamentUIState
}

func New(cfg config.Config, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	sess := session.New(cfg.TokenFile)
	api := apiclient.New(cfg.APIBaseURL, sess, log)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	m := &Model{
		cfg:   cfg,
		log:   log,
		api:   api,
		sess:  sess,
		cat:   catalog.NewBrowser(api),
		duel:  duel.NewController(api, sess, log),
		tour:  tourney.NewController(api, sess, log),
		route: router.NewState(),
		spin:  sp,
	}
	m.login = newLoginState()
	m.reset = newResetState()
	m.admin = newAdminState()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.bootCmd())
}

// apply runs a router event. A refused transition is a programming
// error; it is logged and the screen stays put.
func (m *Model) apply(e router.Event) {
	next, err := router.Apply(m.route, e)
	if err != nil {
		m.log.Error("refused transition",
			zap.String("screen", string(m.route.Screen)),
			zap.String("event", string(e.Type)),
			zap.Error(err))
		return
	}
	m.route = next
}

// fail routes an operation error: a 401 tears the whole session down,
// anything else becomes a dismissible banner over the current screen.
func (m *Model) fail(err error) tea.Cmd {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return m.teardown("La sesión ha expirado. Inicia sesión de nuevo.")
	}
	if errors.Is(err, duel.ErrStale) || errors.Is(err, tourney.ErrStale) {
		return nil
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		m.banner = apiErr.Detail
		if m.banner == "" {
			m.banner = apiErr.Error()
		}
	} else {
		m.banner = "No se pudo contactar con el servidor."
	}
	m.log.Warn("operation failed", zap.Error(err))
	return nil
}

// teardown is the single exit for a dead session: wipe credentials,
// reset every controller and cache, land on the login screen.
func (m *Model) teardown(msg string) tea.Cmd {
	m.sess.Teardown()
	m.duel.Reset()
	m.tour.Reset()
	m.cat.Invalidate()

	m.login = newLoginState()
	m.reset = newResetState()
	m.admin = newAdminState()
	m.worlds = worldsState{}
	m.char = characterState{}
	m.duelUI = duelUIState{}
	m.tourUI = tournamentUIState{}

	m.apply(router.Event{Type: router.EvtUnauthorized})
	m.banner = msg
	return m.login.focusCmd()
}

// logout is the voluntary flavour of teardown.
func (m *Model) logout() tea.Cmd {
	m.sess.Teardown()
	m.duel.Reset()
	m.tour.Reset()
	m.cat.Invalidate()

	m.login = newLoginState()
	m.reset = newResetState()
	m.admin = newAdminState()
	m.worlds = worldsState{}
	m.char = characterState{}
	m.duelUI = duelUIState{}
	m.tourUI = tournamentUIState{}

	m.apply(router.Event{Type: router.EvtLoggedOut})
	m.notice = "Sesión cerrada."
	return m.login.focusCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// Any key dismisses the banners before reaching the screen.
		if m.banner != "" || m.notice != "" {
			m.banner, m.notice = "", ""
			if msg.Type == tea.KeyEsc {
				return m, nil
			}
		}
		return m.updateKey(msg)
	}
	return m.updateMsg(msg)
}

// updateKey routes a key press to the active screen.
func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.route.Screen {
	case router.ScreenIntro:
		return m.updateIntroKey(msg)
	case router.ScreenLogin:
		return m.updateLoginKey(msg)
	case router.ScreenPasswordReset:
		return m.updateResetKey(msg)
	case router.ScreenAdminHome:
		return m.updateAdminKey(msg)
	case router.ScreenWorlds:
		return m.updateWorldsKey(msg)
	case router.ScreenCharacter:
		return m.updateCharacterKey(msg)
	case router.ScreenBattle:
		return m.updateBattleKey(msg)
	case router.ScreenTournament:
		return m.updateTournamentKey(msg)
	}
	return m, nil
}

// updateMsg routes async results. Stale-epoch messages were issued
// against a session that no longer exists and are dropped wholesale.
func (m *Model) updateMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if em, ok := msg.(epoched); ok && !m.sess.Live(em.sessionEpoch()) {
		m.log.Debug("dropped stale message")
		return m, nil
	}

	switch msg := msg.(type) {
	case bootMsg:
		m.apply(router.Event{Type: router.EvtBooted})
		if m.cfg.SkipIntro {
			return m, m.finishIntro()
		}
		return m, nil
	case verifiedMsg:
		return m.handleVerified(msg)
	case loginResultMsg:
		return m.handleLoginResult(msg)
	case registerRequestedMsg:
		return m.handleRegisterRequested(msg)
	case passwordChangedMsg:
		return m.handlePasswordChanged(msg)
	case mundosMsg:
		return m.handleMundos(msg)
	case rosterMsg:
		return m.handleRoster(msg)
	case battleMsg:
		return m.handleBattle(msg)
	case tournamentsMsg:
		return m.handleTournaments(msg)
	case tournamentMsg:
		return m.handleTournament(msg)
	case leaderboardMsg:
		return m.handleLeaderboard(msg)
	case tournamentCreatedMsg:
		return m.handleTournamentCreated(msg)
	case adminLogsMsg:
		return m.handleAdminLogs(msg)
	case adminStatsMsg:
		return m.handleAdminStats(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	var body string
	switch m.route.Screen {
	case router.ScreenLoading:
		body = m.spin.View() + " Cargando..."
	case router.ScreenIntro:
		body = m.viewIntro()
	case router.ScreenLogin:
		body = m.viewLogin()
	case router.ScreenVerifying:
		body = m.spin.View() + " Verificando sesión..."
	case router.ScreenPasswordReset:
		body = m.viewReset()
	case router.ScreenAdminHome:
		body = m.viewAdmin()
	case router.ScreenWorlds:
		body = m.viewWorlds()
	case router.ScreenCharacter:
		body = m.viewCharacter()
	case router.ScreenBattle:
		body = m.viewBattle()
	case router.ScreenTournament:
		body = m.viewTournament()
	}

	var top string
	if m.banner != "" {
		top = bannerStyle.Render(m.banner) + "\n"
	} else if m.notice != "" {
		top = noticeStyle.Render(m.notice) + "\n"
	}
	return top + body
}
