// Package logging builds the leveled key/value logger shared by the
// commands and session loops.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Prefix string
	// GraylogAddress, when set, tees every entry to a GELF UDP endpoint.
	GraylogAddress string
}

// New returns a logger writing to w. The returned close function releases
// the GELF writer, if any, and is always safe to call.
func New(w io.Writer, opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = l
	}

	closeFn := func() error { return nil }
	out := w
	if opts.GraylogAddress != "" {
		gw, err := gelf.NewWriter(opts.GraylogAddress)
		if err != nil {
			return nil, nil, fmt.Errorf("connect graylog %s: %w", opts.GraylogAddress, err)
		}
		out = io.MultiWriter(w, gw)
		closeFn = gw.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return logger, closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
