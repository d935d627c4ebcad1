package urlsigner

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/urlsigner/pkg/query"
)

const compositeSeparator = "::"

// Composite adds a second signature on top of an inner QueryEncryptor,
// usually an Expiration. The outer digest covers the URL after the inner
// layer was applied, the inner parameter's value and the secret, so neither
// layer can be stripped or replayed with a different value on its own.
//
// The outer digest is md5(url + "::" + innerValue + "::" + secret) rather
// than an HMAC, which keeps signed URLs compatible with signers that use the
// same scheme.
type Composite struct {
	inner         QueryEncryptor
	parameterName string
	secret        string
}

// NewComposite wraps inner with an outer signature keyed by secret.
func NewComposite(inner QueryEncryptor, secret string, opts ...Option) (*Composite, error) {
	o := applyOptions(DefaultSignatureParameter, opts)
	return newComposite(inner, secret, o)
}

// NewCompositeAt is a shortcut for a Composite over NewExpirationAt(t).
// WithParameterName names the outer signature; the inner parameter keeps
// its default name.
func NewCompositeAt(t time.Time, secret string, opts ...Option) (*Composite, error) {
	o := applyOptions(DefaultSignatureParameter, opts)
	exp, err := newExpiration(options{parameterName: DefaultExpiresParameter, clock: o.clock}, t)
	if err != nil {
		return nil, err
	}
	return newComposite(exp, secret, o)
}

// NewCompositeAfter is a shortcut for a Composite over NewExpirationAfter(d).
func NewCompositeAfter(d time.Duration, secret string, opts ...Option) (*Composite, error) {
	o := applyOptions(DefaultSignatureParameter, opts)
	return NewCompositeAt(o.clock().Add(d), secret, opts...)
}

func newComposite(inner QueryEncryptor, secret string, o options) (*Composite, error) {
	if inner == nil {
		return nil, newError(ErrInvalidConfiguration, nil, "composite signer requires an inner encryptor")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, NewMissingValueError("secret", nil)
	}
	if inner.ParameterName() == o.parameterName {
		return nil, newError(ErrInvalidConfiguration, nil,
			"the parameter %q is used by both signature layers", o.parameterName)
	}
	return &Composite{
		inner:         inner,
		parameterName: o.parameterName,
		secret:        secret,
	}, nil
}

// ParameterName returns the outer signature parameter.
func (c *Composite) ParameterName() string {
	return c.parameterName
}

// Encrypt applies the inner strategy and then appends the outer signature.
func (c *Composite) Encrypt(u *url.URL) (*url.URL, error) {
	encrypted, err := c.inner.Encrypt(u)
	if err != nil {
		return nil, err
	}
	if query.Has(encrypted, c.parameterName) {
		return nil, NewAlreadyPresentError(c.parameterName, encrypted)
	}

	// Inner strategies that add no parameter sign with an empty value.
	innerValue, _ := query.Get(encrypted, c.inner.ParameterName())
	return query.With(encrypted, c.parameterName, c.sign(encrypted, innerValue)), nil
}

// Decrypt checks the outer signature and hands the remainder to the inner strategy.
func (c *Composite) Decrypt(u *url.URL) (*url.URL, error) {
	signature, ok := query.Get(u, c.parameterName)
	switch {
	case !ok:
		return nil, NewMissingParameterError(c.parameterName, u)
	case signature == "":
		return nil, NewMissingValueError(c.parameterName, u)
	case !hexSignature.MatchString(signature), query.Count(u, c.parameterName) > 1:
		return nil, NewWrongValueError(c.parameterName, u)
	}

	unsigned := query.Without(u, c.parameterName)
	// An absent inner value still has to match the digest; if it does,
	// inner.Decrypt reports the missing parameter.
	innerValue, _ := query.Get(unsigned, c.inner.ParameterName())
	if subtle.ConstantTimeCompare([]byte(signature), []byte(c.sign(unsigned, innerValue))) != 1 {
		return nil, NewCorruptedURLError(u)
	}

	return c.inner.Decrypt(unsigned)
}

func (c *Composite) sign(u *url.URL, innerValue string) string {
	sum := md5.Sum([]byte(canonicalString(u) + compositeSeparator + innerValue + compositeSeparator + c.secret))
	return hex.EncodeToString(sum[:])
}
