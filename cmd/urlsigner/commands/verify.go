package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/urlsigner/pkg/logger"
	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

// RunVerify checks signedURL and prints it with the signing parameters removed.
// A URL that fails verification is reported as an error so the process exits
// non-zero.
func RunVerify(ctx context.Context, cfg urlsigner.Config, log *slog.Logger, io IOTuple, signedURL string) error {
	signer, err := urlsigner.NewFromConfig(cfg, urlsigner.WithLogger(log))
	if err != nil {
		return fmt.Errorf("invalid signer configuration: %w", err)
	}

	unsigned, err := signer.Decrypt(signedURL)
	if err != nil {
		log.InfoContext(ctx, "url rejected",
			logger.Scheme(string(cfg.Scheme)),
			logger.Reason(urlsigner.Reason(err)),
		)
		return fmt.Errorf("verification failed: %w", err)
	}

	_, err = fmt.Fprintln(io.Writer, unsigned)
	return err
}
