package urlsigner

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/urlsigner/pkg/query"
)

// Expiration stamps a URL with an absolute Unix timestamp and rejects it
// once that instant has passed.
type Expiration struct {
	parameterName string
	expiresAt     time.Time
	clock         func() time.Time
}

// NewExpirationAfter returns an Expiration that lapses d from now.
func NewExpirationAfter(d time.Duration, opts ...Option) (*Expiration, error) {
	o := applyOptions(DefaultExpiresParameter, opts)
	return newExpiration(o, o.clock().Add(d))
}

// NewExpirationAt returns an Expiration that lapses at t.
func NewExpirationAt(t time.Time, opts ...Option) (*Expiration, error) {
	return newExpiration(applyOptions(DefaultExpiresParameter, opts), t)
}

func newExpiration(o options, expiresAt time.Time) (*Expiration, error) {
	e := &Expiration{
		parameterName: o.parameterName,
		expiresAt:     expiresAt,
		clock:         o.clock,
	}
	if !e.isFuture(expiresAt.Unix()) {
		return nil, e.pastError(expiresAt.Unix())
	}
	return e, nil
}

// ParameterName returns the query parameter holding the timestamp.
func (e *Expiration) ParameterName() string {
	return e.parameterName
}

// ExpiresAt returns the configured expiration instant.
func (e *Expiration) ExpiresAt() time.Time {
	return e.expiresAt
}

// Encrypt appends the expiration timestamp to u.
func (e *Expiration) Encrypt(u *url.URL) (*url.URL, error) {
	if query.Has(u, e.parameterName) {
		return nil, NewAlreadyPresentError(e.parameterName, u)
	}

	ts := e.expiresAt.Unix()
	if !e.isFuture(ts) {
		return nil, e.pastError(ts)
	}

	return query.With(u, e.parameterName, strconv.FormatInt(ts, 10)), nil
}

// Decrypt checks that the timestamp in u has not elapsed and removes it.
func (e *Expiration) Decrypt(u *url.URL) (*url.URL, error) {
	raw, ok := query.Get(u, e.parameterName)
	switch {
	case !ok:
		return nil, NewMissingParameterError(e.parameterName, u)
	case raw == "":
		return nil, NewMissingValueError(e.parameterName, u)
	case query.Count(u, e.parameterName) > 1:
		return nil, NewWrongValueError(e.parameterName, u)
	}

	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, NewWrongValueError(e.parameterName, u)
	}
	if !e.isFuture(ts) {
		return nil, newError(ErrCorruptedURL, u,
			"corrupted URL, the expiration date %q must be in the future", strconv.FormatInt(ts, 10))
	}

	return query.Without(u, e.parameterName), nil
}

// isFuture compares at second granularity, the resolution of the stamped value.
func (e *Expiration) isFuture(ts int64) bool {
	return ts > e.clock().Unix()
}

func (e *Expiration) pastError(ts int64) *EncryptionError {
	return newError(ErrExpirationInPast, nil, "expiration date %q must be in the future", strconv.FormatInt(ts, 10))
}
