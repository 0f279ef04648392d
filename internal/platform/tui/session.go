package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/registry"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

// screen identifies what the session is currently showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenRounds
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the rounds view reachable from both. Used by the menu command and for
// every SSH connection.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	keys     KeyMap
	logger   *log.Logger
	current  screen
	menu     MenuModel
	game     *Model
	rounds   *RoundsModel
	gen      int // incremented per game so stale ticks are dropped
	quitting bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		keys:   keys,
		logger: logger,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenRounds:
		return m.updateRounds(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRounds():
		r := NewRoundsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.rounds = &r
		m.current = screenRounds
		m.menu = NewMenuModel(m.config)
		return m, nil

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().ModeID)
		if err != nil {
			// Shouldn't happen since menu only shows registered modes
			if m.logger != nil {
				m.logger.Error("could not create game", "error", err)
			}
			m.menu = NewMenuModel(m.config)
			return m, nil
		}

		m.gen++
		m.config = m.menu.Config()
		gameModel := NewModel(game, m.store, m.config, m.keys, m.logger).withGen(m.gen)
		m.game = &gameModel
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.game = nil
		m.current = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRounds handles updates when the rounds view is open.
func (m SessionModel) updateRounds(msg tea.Msg) (tea.Model, tea.Cmd) {
	r, cmd := m.rounds.Update(msg)
	m.rounds = &r

	switch {
	case r.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case r.IsGoingBack():
		m.rounds = nil
		m.current = screenMenu
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenRounds:
		return m.rounds.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, keys, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
