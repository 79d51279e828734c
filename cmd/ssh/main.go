package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"

	"github.com/tomz197/hyperspace/internal/config"
	"github.com/tomz197/hyperspace/internal/draw"
	"github.com/tomz197/hyperspace/internal/logging"
	"github.com/tomz197/hyperspace/internal/loop"
	"github.com/tomz197/hyperspace/internal/telemetry"
)

// server is shared by every SSH session.
type server struct {
	cfg      config.Config
	log      *log.Logger
	recorder *telemetry.Recorder
	sink     telemetry.SummarySink

	// shutdown is closed when the process starts draining.
	shutdown chan struct{}
	sessions sync.WaitGroup
}

func main() {
	fs := pflag.NewFlagSet("hyperspace-ssh", pflag.ExitOnError)
	configDir := fs.String("config", ".", "directory containing hyperspace.yaml")
	if err := config.BindFlags(fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logOpts := logging.Options{Level: cfg.LogLevel, Prefix: "ssh"}
	if cfg.Graylog.Enabled {
		logOpts.GraylogAddress = cfg.Graylog.Address
	}
	logger, closeLog, err := logging.New(os.Stderr, logOpts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		_ = closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	metrics, closeMetrics, err := newMetricsProvider(cfg.Metrics)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeMetrics(ctx); err != nil {
			logger.Error("failed to flush metrics", "err", err)
		}
	}()
	if metrics.Enabled() {
		logger.Info("exporting metrics", "path", cfg.Metrics.Path, "interval", cfg.Metrics.Interval)
	}

	recorder, err := telemetry.NewRecorder(metrics.Meter())
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}

	srv := &server{
		cfg:      cfg,
		log:      logger,
		recorder: recorder,
		shutdown: make(chan struct{}),
	}
	if cfg.Influx.Enabled {
		sink := telemetry.NewInfluxSink(telemetry.InfluxConfig{
			URL:    cfg.Influx.URL,
			Token:  cfg.Influx.Token,
			Org:    cfg.Influx.Org,
			Bucket: cfg.Influx.Bucket,
		}, logger)
		defer sink.Close()
		srv.sink = sink
		logger.Info("writing session summaries to InfluxDB", "url", cfg.Influx.URL, "bucket", cfg.Influx.Bucket)
	}

	workingDir, _ := os.Getwd()
	logger.Info("SSH config", "host", cfg.SSH.Host, "port", cfg.SSH.Port,
		"hostKeyPath", cfg.SSH.HostKeyPath, "workingDir", workingDir)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			wishlogging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("Starting SSH server", "host", cfg.SSH.Host, "port", cfg.SSH.Port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("Shutting down server...")

	// Players see the shutdown notice and are disconnected by their loops.
	close(srv.shutdown)
	if !srv.waitSessions(cfg.SSH.ShutdownTimeout) {
		logger.Warn("sessions still open after shutdown timeout", "timeout", cfg.SSH.ShutdownTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// newMetricsProvider exports metrics to cfg.Path, or stdout when it is empty.
// The returned close function shuts the provider down, then closes the file.
func newMetricsProvider(cfg config.MetricsConfig) (*telemetry.Provider, func(context.Context) error, error) {
	mcfg := telemetry.MetricsConfig{
		Enabled:     cfg.Enabled,
		ServiceName: "hyperspace-ssh",
		Interval:    cfg.Interval,
	}
	var file *os.File
	if cfg.Enabled {
		mcfg.Writer = os.Stdout
		if cfg.Path != "" {
			f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open metrics file: %w", err)
			}
			mcfg.Writer, file = f, f
		}
	}

	p, err := telemetry.NewProvider(mcfg)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, fmt.Errorf("create metrics provider: %w", err)
	}
	return p, func(ctx context.Context) error {
		err := p.Shutdown(ctx)
		if file != nil {
			_ = file.Close()
		}
		return err
	}, nil
}

// waitSessions reports whether every session ended within timeout.
func (srv *server) waitSessions(timeout time.Duration) bool {
	ended := make(chan struct{})
	go func() {
		srv.sessions.Wait()
		close(ended)
	}()
	select {
	case <-ended:
		return true
	case <-time.After(timeout):
		return false
	}
}

// gameMiddleware runs one independent game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		select {
		case <-srv.shutdown:
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		default:
		}

		srv.sessions.Add(1)
		defer srv.sessions.Done()

		ctx := sess.Context()
		id := ctx.SessionID()
		logger := srv.log.With("user", sess.User(), "session", shortID(id))
		logger.Info("New game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		tsess := telemetry.NewSession(ctx, id, sess.User(), srv.recorder, srv.sink, logger)
		err := loop.NewSession(sess, sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			FrameTime:    srv.cfg.FrameTime(),
			Seed:         srv.cfg.Seed,
			Logger:       logger,
			Observer:     tsess,
			Shutdown:     srv.shutdown,
		}).Run(ctx)
		if err != nil {
			logger.Error("Game error", "err", err)
		}

		// The SSH context is done once the client hangs up.
		sum := tsess.End(context.WithoutCancel(ctx))
		logger.Info("Session ended", "games", sum.Games, "best", sum.BestScore, "duration", sum.Duration)
		next(sess)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
