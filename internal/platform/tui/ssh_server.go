package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

// shutdownTimeout bounds how long Serve waits for open sessions on exit.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file. Empty means ~/.hacker/host_key,
	// generated on first start.
	HostKeyPath string

	// IdleTimeout closes connections without input for this long.
	IdleTimeout time.Duration

	// Runtime is the template for every session's game config.
	Runtime core.RuntimeConfig

	// Keys are the in-game bindings offered to every session.
	Keys KeyMap
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		Keys:        DefaultKeyMap(),
	}
}

// SSHServer serves the session menu over SSH. Every connection plays
// alone with its own engine and its own in-memory round ledger.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a server. A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hacker-ssh",
		})
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.ledgerMiddleware,
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults the key location and makes sure its
// directory exists.
func resolveHostKeyPath(p string) (string, error) {
	if p == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		p = filepath.Join(home, ".hacker", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return p, nil
}

// teaHandler builds the session model for one connection.
// activeterm guarantees a PTY before this runs.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	logger := s.logger.With("user", sess.User())
	store := ledgerFrom(sess.Context())
	if store != nil {
		logger = logger.With("session", store.SessionID())
	}

	return NewSessionModel(store, cfg, s.config.Keys, logger), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// ledgerKey stores the connection's round ledger in its ssh.Context.
type ledgerKey struct{}

// ledgerContext is the part of ssh.Context the ledger needs.
type ledgerContext interface {
	SetValue(key, value any)
	Value(key any) any
}

// ledgerMiddleware gives each connection its own round ledger. It wraps the
// Bubble Tea handler, so the ledger outlives the program and its last save.
func (s *SSHServer) ledgerMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		withLedger(sess.Context(), s.logger.With("user", sess.User()), func() {
			next(sess)
		})
	}
}

// withLedger opens a ledger into ctx, calls run and closes the ledger
// once run returns. run still happens if the ledger cannot be opened.
func withLedger(ctx ledgerContext, logger *log.Logger, run func()) {
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open round ledger", "error", err)
		run()
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("could not close round ledger", "error", err)
		}
	}()

	ctx.SetValue(ledgerKey{}, store)
	run()
}

// ledgerFrom returns the ledger stored by withLedger, or nil.
func ledgerFrom(ctx ledgerContext) *storage.Store {
	store, _ := ctx.Value(ledgerKey{}).(*storage.Store)
	return store
}

// loggingMiddleware logs connection start and end.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started")
		next(sess)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
