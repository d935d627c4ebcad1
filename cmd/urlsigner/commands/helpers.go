// Package commands contains the urlsigner CLI command implementations.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/urlsigner/pkg/config"
	"github.com/dmitrymomot/urlsigner/pkg/httpserver"
	"github.com/dmitrymomot/urlsigner/pkg/logger"
	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// Settings groups every environment-driven config the commands need.
type Settings struct {
	Signer urlsigner.Config
	Logger logger.Config
	HTTP   httpserver.Config
}

// LoadSettings reads the optional env files and parses the environment.
func LoadSettings(envFiles ...string) (Settings, error) {
	var s Settings
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return s, err
		}
	}
	if err := config.Load(&s.Signer); err != nil {
		return s, err
	}
	if err := config.Load(&s.Logger); err != nil {
		return s, err
	}
	if err := config.Load(&s.HTTP); err != nil {
		return s, err
	}
	return s, nil
}

// NewLogger builds the process logger. Records go to w, which is stderr for
// the real binary so command output on stdout stays machine readable.
func NewLogger(cfg logger.Config, w io.Writer) (*slog.Logger, error) {
	return logger.NewFromConfig(cfg,
		logger.WithOutput(w),
		logger.WithContextExtractors(requestIDExtractor),
	)
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
