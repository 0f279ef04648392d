package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/registry"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

// helpHeight is the number of rows reserved below the game screen.
const helpHeight = 1

// loggerSetter is implemented by games that accept a logger.
type loggerSetter interface {
	SetLogger(l *log.Logger)
}

// Model is the Bubble Tea model for playing one mode.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	gen        int // tick chain owned by this model
	state      core.GameState
	rounds     *RoundsModel // non-nil while the rounds view is open
	roundSaved bool         // Whether the current round is in the ledger
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = core.DefaultConfig().StepInterval
	}
	if logger != nil {
		if ls, ok := game.(loggerSetter); ok {
			ls.SetLogger(logger)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		store:  store,
		config: cfg,
		keys:   keys,
		help:   h,
		logger: logger,
	}
}

// withGen assigns the tick chain the model responds to.
func (m Model) withGen(gen int) Model {
	m.gen = gen
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.StepInterval, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.rounds != nil {
			return m.updateRounds(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game keys apply immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Rounds):
		r := NewRoundsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.rounds = &r
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.state.GameOver() || m.state.Paused {
			m.abandonRound()
			m.backToMenu = true
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.abandonRound()
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		if m.state.GameOver() {
			// Reset seed for new game
			m.config.Seed = time.Now().UnixNano()
			m.game.Reset(m.config)
			m.state = m.game.State()
			m.roundSaved = false
		}
		return m, nil

	default:
		m.state = m.game.Apply(action)
		m.recordRound()
		return m, nil
	}
}

// updateRounds forwards input to the open rounds view.
func (m Model) updateRounds(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r, cmd := m.rounds.Update(msg)
	switch {
	case r.IsQuitting():
		m.abandonRound()
		m.quitting = true
		return m, tea.Quit
	case r.IsGoingBack():
		m.rounds = nil
		return m, nil
	}
	m.rounds = &r
	return m, cmd
}

// handleResize processes window resize events.
// The board does not depend on the screen size, so the round continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.help.Width = msg.Width

	if m.rounds != nil {
		r, _ := m.rounds.Update(msg)
		m.rounds = &r
	}
	return m, nil
}

// handleTick advances the simulation by one step.
// The board is hidden while the rounds view is open, so the round holds
// but the tick chain keeps running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.rounds != nil {
		return m, tickCmd(m.config.StepInterval, m.gen)
	}

	result := m.game.Step()
	m.state = result.State
	m.recordRound()

	return m, tickCmd(m.config.StepInterval, m.gen)
}

// recordRound saves a finished round once.
func (m *Model) recordRound() {
	if !m.state.GameOver() || m.roundSaved {
		return
	}
	outcome := storage.OutcomeWon
	if m.state.Lost {
		outcome = storage.OutcomeLost
	}
	m.saveRound(outcome)
}

// abandonRound saves a round the player left before it ended.
// Rounds with no shot and no step are not worth recording.
func (m *Model) abandonRound() {
	if m.roundSaved || m.state.GameOver() || m.state.Ticks+m.state.Shots == 0 {
		return
	}
	m.saveRound(storage.OutcomeAbandoned)
}

func (m *Model) saveRound(outcome storage.Outcome) {
	m.roundSaved = true
	if m.store == nil {
		return
	}

	round, err := m.store.SaveRound(storage.Round{
		Mode:      m.game.ID(),
		Seed:      m.config.Seed,
		Size:      m.config.Size,
		Target:    m.config.Target,
		Collected: m.state.Collected,
		Destroyed: m.state.Destroyed,
		Shots:     m.state.Shots,
		Ticks:     m.state.Ticks,
		Outcome:   outcome,
	})
	if m.logger == nil {
		return
	}
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
		return
	}
	m.logger.Debug("round saved", "id", round.ID, "outcome", outcome)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.rounds != nil {
		return m.rounds.View()
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) error {
	model := NewModel(game, store, cfg, keys, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
