// Package logger builds *slog.Logger values for the urlsigner binaries.
//
// New applies a list of Option functions on top of a JSON, INFO-level,
// stdout default. WithEnvironment switches to debug-level text output for
// development and keeps JSON for staging and production, tagging every
// record with "service" and "env". NewFromConfig does the same from an
// env-tagged Config so the CLI can be configured with APP_ENV, LOG_LEVEL and
// LOG_FORMAT.
//
// The handler returned by New is wrapped in a LogHandlerDecorator, which
// runs registered ContextExtractor callbacks on every record. The HTTP
// server uses this to attach the chi request id to log lines emitted while
// serving a request.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "urlsigner"),
//		logger.WithContextExtractors(requestIDExtractor),
//	)
//	log.InfoContext(ctx, "signed url rejected",
//		logger.URL(raw),
//		logger.Reason("wrong_value"),
//		logger.Error(err),
//	)
//
// Nop returns a logger that drops everything; libraries use it as their
// default so they stay silent unless a logger is supplied.
package logger
