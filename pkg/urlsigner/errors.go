package urlsigner

import (
	"errors"
	"fmt"
	"net/url"
)

// Classification sentinels. Every error returned by a strategy or the Signer
// is an *EncryptionError that unwraps to exactly one of these, so callers
// can branch with errors.Is without parsing messages.
var (
	// Per-call failures.
	ErrMissingParameter = errors.New("missing parameter")
	ErrMissingValue     = errors.New("missing value")
	ErrWrongValue       = errors.New("wrong value")
	ErrAlreadyPresent   = errors.New("parameter already present")
	ErrCorruptedURL     = errors.New("corrupted URL")
	ErrInvalidURL       = errors.New("invalid URL")

	// Construction failures.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrExpirationInPast     = errors.New("expiration must be in the future")
	ErrInvalidConfiguration = errors.New("invalid url signer configuration")
)

// EncryptionError describes why a URL could not be signed or verified.
type EncryptionError struct {
	// Err is the classification sentinel.
	Err error
	// Message is the human readable description returned by Error.
	Message string
	// URI is the URL being processed, when one was available.
	URI *url.URL
}

func (e *EncryptionError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

func newError(kind error, u *url.URL, format string, args ...any) *EncryptionError {
	return &EncryptionError{Err: kind, Message: fmt.Sprintf(format, args...), URI: u}
}

// NewMissingParameterError reports a required parameter absent from u.
func NewMissingParameterError(name string, u *url.URL) *EncryptionError {
	return newError(ErrMissingParameter, u, "the parameter %q is missing or contains no value", name)
}

// NewMissingValueError reports a parameter or setting that is present but empty.
func NewMissingValueError(name string, u *url.URL) *EncryptionError {
	return newError(ErrMissingValue, u, "the parameter %q contains no value", name)
}

// NewWrongValueError reports a value that fails format or equality checks.
func NewWrongValueError(name string, u *url.URL) *EncryptionError {
	return newError(ErrWrongValue, u, "the parameter %q contains invalid value", name)
}

// NewAlreadyPresentError reports a reserved parameter colliding with caller data.
func NewAlreadyPresentError(name string, u *url.URL) *EncryptionError {
	return newError(ErrAlreadyPresent, u,
		"the parameter %q reserved for generating signed URI is already present, please rename your parameter", name)
}

// NewCorruptedURLError reports a URL whose signature layers do not agree.
func NewCorruptedURLError(u *url.URL) *EncryptionError {
	var raw string
	if u != nil {
		raw = u.String()
	}
	return newError(ErrCorruptedURL, u, "the URI %q is an invalid signed URI", raw)
}
