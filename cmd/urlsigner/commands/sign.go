package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/urlsigner/pkg/logger"
	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

// SignOverrides replaces the environment settings for a single sign call.
// Zero values keep what the environment says.
type SignOverrides struct {
	TTL       time.Duration
	Scheme    string
	Algorithm string
}

func (o SignOverrides) apply(cfg urlsigner.Config) urlsigner.Config {
	if o.TTL != 0 {
		cfg.TTL = o.TTL
	}
	if o.Scheme != "" {
		cfg.Scheme = urlsigner.Scheme(o.Scheme)
	}
	if o.Algorithm != "" {
		cfg.Algorithm = o.Algorithm
	}
	return cfg
}

// RunSign signs rawURL and prints the result.
func RunSign(
	ctx context.Context,
	cfg urlsigner.Config,
	log *slog.Logger,
	io IOTuple,
	rawURL string,
	overrides SignOverrides,
) error {
	cfg = overrides.apply(cfg)

	signer, err := urlsigner.NewFromConfig(cfg, urlsigner.WithLogger(log))
	if err != nil {
		return fmt.Errorf("invalid signer configuration: %w", err)
	}

	signed, err := signer.Encrypt(rawURL)
	if err != nil {
		return fmt.Errorf("failed to sign url: %w", err)
	}

	log.DebugContext(ctx, "url signed", logger.Scheme(string(cfg.Scheme)), logger.URL(signed))
	_, err = fmt.Fprintln(io.Writer, signed)
	return err
}
