package urlsigner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dmitrymomot/urlsigner/pkg/logger"
)

// ParseFunc builds a URL from its string form.
type ParseFunc func(raw string) (*url.URL, error)

type signerConfig struct {
	parse  ParseFunc
	logger *slog.Logger
}

// SignerOption configures a Signer.
type SignerOption func(*signerConfig)

// WithParser replaces url.Parse. Nil parsers are ignored.
func WithParser(parse ParseFunc) SignerOption {
	return func(c *signerConfig) {
		if parse != nil {
			c.parse = parse
		}
	}
}

// WithLogger sets the logger used to report rejected URLs from Validate.
func WithLogger(l *slog.Logger) SignerOption {
	return func(c *signerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Signer works on URL strings around an Encryptor. It is safe for
// concurrent use when the Encryptor is.
type Signer struct {
	encryptor Encryptor
	cfg       signerConfig
}

// New returns a Signer backed by enc.
func New(enc Encryptor, opts ...SignerOption) *Signer {
	cfg := signerConfig{
		parse:  url.Parse,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Signer{encryptor: enc, cfg: cfg}
}

// Encrypt signs rawURL.
func (s *Signer) Encrypt(rawURL string) (string, error) {
	u, err := s.parse(rawURL)
	if err != nil {
		return "", err
	}
	signed, err := s.encryptor.Encrypt(u)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

// Decrypt verifies signedURL and returns it with the signing parameters removed.
func (s *Signer) Decrypt(signedURL string) (string, error) {
	u, err := s.parse(signedURL)
	if err != nil {
		return "", err
	}
	unsigned, err := s.encryptor.Decrypt(u)
	if err != nil {
		return "", err
	}
	return unsigned.String(), nil
}

// Validate reports whether signedURL passes Decrypt. It never returns an
// error and never panics; every failure, whatever its cause, yields false.
func (s *Signer) Validate(signedURL string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.reject(signedURL, fmt.Errorf("panic during validation: %v", r))
			ok = false
		}
	}()

	if _, err := s.Decrypt(signedURL); err != nil {
		s.reject(signedURL, err)
		return false
	}
	return true
}

func (s *Signer) parse(raw string) (*url.URL, error) {
	u, err := s.cfg.parse(raw)
	if err != nil {
		return nil, newError(ErrInvalidURL, nil, "the URI %q can not be parsed: %v", raw, err)
	}
	if u == nil {
		return nil, newError(ErrInvalidURL, nil, "the URI %q can not be parsed", raw)
	}
	return u, nil
}

func (s *Signer) reject(raw string, err error) {
	s.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "signed url rejected",
		logger.URL(raw),
		logger.Reason(Reason(err)),
		logger.Error(err),
	)
}

// Reason maps an error to a short stable label suitable for logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, ErrMissingValue):
		return "missing_value"
	case errors.Is(err, ErrWrongValue):
		return "wrong_value"
	case errors.Is(err, ErrAlreadyPresent):
		return "already_present"
	case errors.Is(err, ErrCorruptedURL):
		return "corrupted_url"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrExpirationInPast):
		return "expiration_in_past"
	default:
		return "unknown"
	}
}
