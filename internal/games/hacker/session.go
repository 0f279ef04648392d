package hacker

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/registry"
)

// Mode selects the presentation variant of a session.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeAdvanced Mode = "advanced"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == ModeClassic || m == ModeAdvanced
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewSession(ModeClassic)
	})
	registry.Register(string(ModeAdvanced), func() registry.Game {
		return NewSession(ModeAdvanced)
	})
}

// Session drives one engine for the platform. It maps actions to engine
// calls and freezes the engine once the round is won or lost.
type Session struct {
	mode   Mode
	cfg    core.RuntimeConfig
	game   *Game
	logger *log.Logger

	paused   bool
	ended    bool
	lastShot *FireResult
}

// NewSession creates a session in the given mode. Reset must be called
// before the session is driven.
func NewSession(mode Mode) *Session {
	return &Session{mode: mode}
}

// SetLogger attaches a logger for round and shot events.
func (s *Session) SetLogger(l *log.Logger) {
	s.logger = l
}

// ID returns the mode identifier.
func (s *Session) ID() string {
	return string(s.mode)
}

// Title returns the display name.
func (s *Session) Title() string {
	if s.mode == ModeAdvanced {
		return "Hacker (Advanced)"
	}
	return "Hacker"
}

// Summary describes the mode in one line.
func (s *Session) Summary() string {
	if s.mode == ModeAdvanced {
		return "Pause, shot counter and round timer"
	}
	return "Rotate the field, destroy threats, collect loot"
}

// Mode returns the session's mode.
func (s *Session) Mode() Mode { return s.mode }

// Game returns the engine, or nil before the first Reset.
func (s *Session) Game() *Game { return s.game }

// Config returns the runtime config of the current round.
func (s *Session) Config() core.RuntimeConfig { return s.cfg }

// LastShot returns the most recent shot result, if any.
func (s *Session) LastShot() (FireResult, bool) {
	if s.lastShot == nil {
		return FireResult{}, false
	}
	return *s.lastShot, true
}

// Paused reports whether stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// Elapsed returns the simulated play time of the round.
func (s *Session) Elapsed() time.Duration {
	if s.game == nil {
		return 0
	}
	return time.Duration(s.game.Ticks()) * s.cfg.StepInterval
}

// Reset starts a new round. Zero grid settings fall back to the defaults.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	def := core.DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.Target <= 0 {
		cfg.Target = def.Target
	}
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = def.StepInterval
	}

	s.cfg = cfg
	s.game = NewGame(cfg.Size, cfg.Target, NewRand(cfg.Seed))
	s.paused = false
	s.ended = false
	s.lastShot = nil

	for _, p := range cfg.Board {
		e, err := ParseEntity(p.Tag)
		if err != nil {
			s.logf(log.WarnLevel, "skipping board cell", "x", p.X, "y", p.Y, "err", err)
			continue
		}
		if e == Player {
			s.logf(log.WarnLevel, "skipping player tag on board", "x", p.X, "y", p.Y)
			continue
		}
		pos := NewPosition(p.X, p.Y)
		if !s.game.Grid().InBounds(pos) {
			s.logf(log.WarnLevel, "dropping board cell outside the grid", "x", p.X, "y", p.Y, "size", cfg.Size)
			continue
		}
		s.game.Grid().AddEntity(pos, e)
	}

	s.logf(log.DebugLevel, "round started",
		"mode", s.mode, "seed", cfg.Seed, "size", cfg.Size, "target", cfg.Target, "board", len(cfg.Board))
}

// Apply handles a single input action immediately.
func (s *Session) Apply(a core.Action) core.GameState {
	if s.game == nil {
		return core.GameState{}
	}

	switch a {
	case core.ActionRestart:
		if s.ended {
			next := s.cfg
			next.Seed++
			s.Reset(next)
		}
		return s.State()
	case core.ActionPause:
		if s.mode == ModeAdvanced && !s.ended {
			s.paused = !s.paused
		}
		return s.State()
	}

	if s.ended || s.paused {
		return s.State()
	}

	switch a {
	case core.ActionRotateLeft:
		s.game.RotateGrid(Left)
	case core.ActionRotateRight:
		s.game.RotateGrid(Right)
	case core.ActionDestroy:
		s.fire(Destroy)
	case core.ActionCollect:
		s.fire(Collect)
	}

	s.checkEnd()
	return s.State()
}

func (s *Session) fire(shot ShotType) {
	r := s.game.Fire(shot)
	s.lastShot = &r
	s.logf(log.DebugLevel, "shot", "type", r.Shot, "outcome", r.Outcome, "target", r.Target)
}

// Step advances the engine by one tick unless paused or ended.
func (s *Session) Step() core.StepResult {
	if s.game == nil {
		return core.StepResult{}
	}
	if !s.ended && !s.paused {
		s.game.Step()
		s.checkEnd()
	}
	return core.StepResult{State: s.State()}
}

func (s *Session) checkEnd() {
	if s.ended {
		return
	}
	switch {
	case s.game.HasLost():
		s.ended = true
		s.logf(log.InfoLevel, "round lost", "ticks", s.game.Ticks(), "collected", s.game.NumCollected())
	case s.game.HasWon():
		s.ended = true
		s.logf(log.InfoLevel, "round won", "ticks", s.game.Ticks(), "shots", s.game.TotalShots())
	}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	if s.game == nil {
		return core.GameState{}
	}
	return core.GameState{
		Collected: s.game.NumCollected(),
		Destroyed: s.game.NumDestroyed(),
		Shots:     s.game.TotalShots(),
		Ticks:     s.game.Ticks(),
		Won:       s.game.HasWon(),
		Lost:      s.game.HasLost(),
		Paused:    s.paused,
	}
}

func (s *Session) logf(level log.Level, msg string, kv ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Log(level, msg, kv...)
}
