package urlsigner

import (
	"crypto/hmac"
	"encoding/hex"
	"net/url"
	"regexp"

	"github.com/dmitrymomot/urlsigner/pkg/query"
)

var hexSignature = regexp.MustCompile(`^[0-9a-f]+$`)

// HMAC signs the full URL string, including every other query parameter,
// with a keyed hash and stores the lowercase hex digest in the URL.
type HMAC struct {
	algorithm     Algorithm
	secret        []byte
	parameterName string
}

// NewHMAC returns an HMAC strategy for the given algorithm and secret.
func NewHMAC(alg Algorithm, secret string, opts ...Option) (*HMAC, error) {
	resolved, err := ParseAlgorithm(string(alg))
	if err != nil {
		return nil, err
	}
	o := applyOptions(DefaultSignatureParameter, opts)
	return &HMAC{
		algorithm:     resolved,
		secret:        []byte(secret),
		parameterName: o.parameterName,
	}, nil
}

// ParameterName returns the query parameter holding the signature.
func (h *HMAC) ParameterName() string {
	return h.parameterName
}

// Algorithm returns the digest used for signing.
func (h *HMAC) Algorithm() Algorithm {
	return h.algorithm
}

// Encrypt appends the signature of u to u.
func (h *HMAC) Encrypt(u *url.URL) (*url.URL, error) {
	if query.Has(u, h.parameterName) {
		return nil, NewAlreadyPresentError(h.parameterName, u)
	}
	return query.With(u, h.parameterName, h.sign(u)), nil
}

// Decrypt verifies the signature carried by u and returns u without it.
func (h *HMAC) Decrypt(u *url.URL) (*url.URL, error) {
	signature, ok := query.Get(u, h.parameterName)
	switch {
	case !ok:
		return nil, NewMissingParameterError(h.parameterName, u)
	case signature == "":
		return nil, NewMissingValueError(h.parameterName, u)
	case !hexSignature.MatchString(signature), query.Count(u, h.parameterName) > 1:
		return nil, NewWrongValueError(h.parameterName, u)
	}

	unsigned := query.Without(u, h.parameterName)
	if !hmac.Equal([]byte(signature), []byte(h.sign(unsigned))) {
		return nil, NewWrongValueError(h.parameterName, u)
	}
	return unsigned, nil
}

func (h *HMAC) sign(u *url.URL) string {
	mac := hmac.New(h.algorithm.hasher(), h.secret)
	mac.Write([]byte(canonicalString(u)))
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalString drops a bare trailing "?" before hashing. Once a parameter
// is appended and the URL reparsed, "x?" and "x" can no longer be told apart.
func canonicalString(u *url.URL) string {
	if u.ForceQuery && u.RawQuery == "" {
		c := *u
		c.ForceQuery = false
		return c.String()
	}
	return u.String()
}
