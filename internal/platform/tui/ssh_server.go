package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures remote play.
type SSHServerConfig struct {
	Address string // host:port

	// HostKeyPath defaults to ~/.lightpath/host_key; wish generates the key
	// on first start.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// Passed through to every session.
	ConfigPath string
	LevelsPath string
	TickRate   int
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.lightpath/progress.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer serves one menu session per SSH connection. All sessions
// share the progress store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer prepares the server without listening. A nil logger logs
// to stderr. An unusable progress database only disables progress.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	srv := &SSHServer{config: cfg, logger: logger.WithPrefix("lightpath-ssh")}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("progress disabled", "db", cfg.DBPath, "err", err)
		srv.store = nil
	}

	// Middlewares run last to first.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("creating ssh server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		path = filepath.Join(home, ".lightpath", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("creating host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) sessionConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    w,
		ScreenH:    h,
		TickRate:   s.config.TickRate,
		ConfigPath: s.config.ConfigPath,
		LevelsPath: s.config.LevelsPath,
	}
}

// teaHandler starts a session for a connection. activeterm has already
// rejected connections without a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := s.sessionConfig(pty.Window.Width, pty.Window.Height)
	return NewSessionModel(s.store, cfg, sess.User(), s.logger), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		start := time.Now()
		l.Info("session started", "active", s.active.Add(1))
		defer func() {
			l.Info("session ended",
				"active", s.active.Add(-1),
				"duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// ListenAndServe blocks until ctx is done or the listener fails, then
// shuts the server down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down", "active", s.active.Load())
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown waits up to shutdownGrace for sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing progress database", "err", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
