// Package httpserver runs the url signer HTTP API.
//
// Server wraps net/http with configurable timeouts, lifecycle logging and
// graceful shutdown. Run blocks until the supplied context is cancelled,
// then drains in-flight requests for up to the shutdown timeout. Signal
// handling is left to the caller, typically via signal.NotifyContext.
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Run wraps listen and serve errors with ErrStart; Shutdown wraps failures
// with ErrShutdown.
package httpserver
