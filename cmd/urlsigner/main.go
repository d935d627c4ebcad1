// Package main provides the urlsigner command line.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/urlsigner/cmd/urlsigner/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "urlsigner",
		Usage:   "Sign and verify tamper-evident URLs",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "Load environment variables from these .env files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sign",
				Usage:     "Print a signed version of a URL",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "ttl",
						Aliases: []string{"t"},
						Usage:   "Lifetime of the signed URL (overrides URLSIGNER_TTL)",
					},
					&cli.StringFlag{
						Name:    "scheme",
						Aliases: []string{"s"},
						Usage:   "Signing scheme: hmac, timed-hmac or composite (overrides URLSIGNER_SCHEME)",
					},
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"alg"},
						Usage:   "HMAC digest, e.g. sha256 (overrides URLSIGNER_ALGORITHM)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					rawURL, err := urlArg(cmd)
					if err != nil {
						return err
					}
					settings, log, err := setup(cmd)
					if err != nil {
						return err
					}
					return commands.RunSign(ctx, settings.Signer, log, commands.DefaultIO(), rawURL, commands.SignOverrides{
						TTL:       cmd.Duration("ttl"),
						Scheme:    cmd.String("scheme"),
						Algorithm: cmd.String("algorithm"),
					})
				},
			},
			{
				Name:      "verify",
				Usage:     "Verify a signed URL and print it without the signing parameters",
				ArgsUsage: "<url>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					rawURL, err := urlArg(cmd)
					if err != nil {
						return err
					}
					settings, log, err := setup(cmd)
					if err != nil {
						return err
					}
					return commands.RunVerify(ctx, settings.Signer, log, commands.DefaultIO(), rawURL)
				},
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP signing API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address (overrides HTTP_ADDR)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					settings, log, err := setup(cmd)
					if err != nil {
						return err
					}
					return commands.RunServer(ctx, settings, log, cmd.String("addr"))
				},
			},
		},
	}
}

func setup(cmd *cli.Command) (commands.Settings, *slog.Logger, error) {
	settings, err := commands.LoadSettings(cmd.StringSlice("env-file")...)
	if err != nil {
		return settings, nil, err
	}
	log, err := commands.NewLogger(settings.Logger, os.Stderr)
	if err != nil {
		return settings, nil, err
	}
	return settings, log, nil
}

func urlArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", cli.Exit("exactly one URL argument is required", 2)
	}
	return cmd.Args().First(), nil
}
