package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/urlsigner/pkg/httpserver"
	"github.com/dmitrymomot/urlsigner/pkg/logger"
	"github.com/dmitrymomot/urlsigner/pkg/urlsigner"
)

// maxBodySize bounds JSON request bodies on /sign and /verify.
const maxBodySize = 64 << 10

type urlRequest struct {
	URL string `json:"url"`
}

type signResponse struct {
	URL string `json:"url"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	URL   string `json:"url,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// RunServer serves the signing API until ctx is cancelled.
func RunServer(ctx context.Context, s Settings, log *slog.Logger, addr string) error {
	if addr != "" {
		s.HTTP.Addr = addr
	}

	router, err := NewRouter(s.Signer, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "starting url signer api", logger.Scheme(string(s.Signer.Scheme)))
	return httpserver.NewFromConfig(s.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}

// NewRouter builds the HTTP API for cfg.
//
//	GET  /healthz  readiness, fails when cfg is invalid
//	POST /sign     {"url": "..."} -> {"url": "<signed>"}
//	POST /verify   {"url": "..."} -> {"valid": true, "url": "<unsigned>"}
//	GET  /files/*  echoes the unsigned request URL, signature required
func NewRouter(cfg urlsigner.Config, log *slog.Logger) (http.Handler, error) {
	// Verification ignores the construction time, so one encryptor serves
	// every request. Signing needs a fresh one to start the TTL at request time.
	verifier, err := urlsigner.NewEncryptorFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid signer configuration: %w", err)
	}

	h := &handlers{cfg: cfg, log: log, verifier: urlsigner.New(verifier, urlsigner.WithLogger(log))}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log, func(context.Context) error { return cfg.Validate() }))
	r.Post("/sign", h.sign)
	r.Post("/verify", h.verify)
	r.With(urlsigner.Middleware(verifier, urlsigner.WithMiddlewareLogger(log))).Get("/files/*", h.file)

	return r, nil
}

type handlers struct {
	cfg      urlsigner.Config
	log      *slog.Logger
	verifier *urlsigner.Signer
}

func (h *handlers) sign(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	signer, err := urlsigner.NewFromConfig(h.cfg, urlsigner.WithLogger(h.log))
	if err != nil {
		h.log.ErrorContext(r.Context(), "signer construction failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "signer unavailable"})
		return
	}

	signed, err := signer.Encrypt(req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Reason: urlsigner.Reason(err)})
		return
	}
	writeJSON(w, http.StatusOK, signResponse{URL: signed})
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	unsigned, err := h.verifier.Decrypt(req.URL)
	if err != nil {
		h.log.DebugContext(r.Context(), "verification failed", logger.Reason(urlsigner.Reason(err)))
		writeJSON(w, http.StatusOK, verifyResponse{Valid: false})
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: true, URL: unsigned})
}

func (h *handlers) file(w http.ResponseWriter, r *http.Request) {
	u, _ := urlsigner.UnsignedURLFromContext(r.Context())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, u.String())
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request) (urlRequest, bool) {
	var req urlRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Error: "invalid request body"})
		return req, false
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return req, false
	}
	return req, true
}

// echoRequestID returns the request id to the client.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
