package urlsigner

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/urlsigner/pkg/logger"
)

type unsignedURLKey struct{}

// WithUnsignedURL stores the verified, unsigned request URL in ctx.
func WithUnsignedURL(ctx context.Context, u *url.URL) context.Context {
	return context.WithValue(ctx, unsignedURLKey{}, u)
}

// UnsignedURLFromContext returns the URL stored by Middleware.
func UnsignedURLFromContext(ctx context.Context) (*url.URL, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(unsignedURLKey{}).(*url.URL)
	return u, ok && u != nil
}

// ErrorHandler writes the response for a request whose URL failed verification.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// URLResolver returns the URL a request was signed for.
type URLResolver func(r *http.Request) *url.URL

type middlewareConfig struct {
	onError ErrorHandler
	resolve URLResolver
	logger  *slog.Logger
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler replaces the default 403 Forbidden response.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onError = h
		}
	}
}

// WithURLResolver replaces AbsoluteURL, e.g. to verify path-only signatures
// or to trust a different proxy header.
func WithURLResolver(fn URLResolver) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.resolve = fn
		}
	}
}

// WithMiddlewareLogger logs rejected requests at debug level.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware rejects requests whose URL does not pass enc.Decrypt. Accepted
// requests reach next with the signing parameters removed from r.URL and
// r.RequestURI, and the unsigned URL available through UnsignedURLFromContext.
func Middleware(enc Encryptor, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{
		onError: forbidden,
		resolve: AbsoluteURL,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signed := cfg.resolve(r)
			if signed == nil {
				cfg.onError(w, r, newError(ErrInvalidURL, nil, "the request URL could not be resolved"))
				return
			}
			unsigned, err := enc.Decrypt(signed)
			if err != nil {
				cfg.logger.DebugContext(r.Context(), "signed request rejected",
					logger.URL(signed.String()),
					logger.Reason(Reason(err)),
					logger.Error(err),
				)
				cfg.onError(w, r, err)
				return
			}

			r2 := r.Clone(WithUnsignedURL(r.Context(), unsigned))
			r2.URL.RawQuery = unsigned.RawQuery
			r2.RequestURI = r2.URL.RequestURI()
			next.ServeHTTP(w, r2)
		})
	}
}

// AbsoluteURL rebuilds the full URL of r. The scheme is https when the
// connection uses TLS or X-Forwarded-Proto says so, http otherwise.
func AbsoluteURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	host := r.Host
	if host == "" {
		host = r.URL.Host
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
}

// RelativeURL returns the path and query of r, for URLs signed without a host.
func RelativeURL(r *http.Request) *url.URL {
	return &url.URL{
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
}

func forbidden(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
