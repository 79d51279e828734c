package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/hyperspace/internal/config"
	"github.com/tomz197/hyperspace/internal/logging"
	"github.com/tomz197/hyperspace/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("hyperspace", pflag.ExitOnError)
	configDir := fs.String("config", ".", "directory containing hyperspace.yaml")
	logPath := fs.String("log", "", "write logs to this file; stderr would corrupt the game screen")
	if err := config.BindFlags(fs); err != nil {
		return err
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configDir)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(*logPath, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		FrameTime: cfg.FrameTime(),
		Seed:      cfg.Seed,
		Logger:    logger,
	})
}

// newLogger logs to path, or nowhere when path is empty.
func newLogger(path string, cfg config.Config) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	var file *os.File
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, file = f, f
	}

	opts := logging.Options{Level: cfg.LogLevel, Prefix: "game"}
	if cfg.Graylog.Enabled {
		opts.GraylogAddress = cfg.Graylog.Address
	}
	logger, closeGelf, err := logging.New(w, opts)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, err
	}

	return logger, func() {
		_ = closeGelf()
		if file != nil {
			_ = file.Close()
		}
	}, nil
}
