package urlsigner

import (
	"strings"
	"time"
)

// Scheme names a ready-made strategy built by NewEncryptorFromConfig.
type Scheme string

const (
	// SchemeHMAC signs URLs with no expiration.
	SchemeHMAC Scheme = "hmac"
	// SchemeTimedHMAC stamps an expiration and signs the result with HMAC.
	SchemeTimedHMAC Scheme = "timed-hmac"
	// SchemeComposite stamps an expiration and adds a Composite signature.
	SchemeComposite Scheme = "composite"
)

// Config holds url signer configuration.
type Config struct {
	Secret             string        `env:"URLSIGNER_SECRET"`
	Scheme             Scheme        `env:"URLSIGNER_SCHEME" envDefault:"timed-hmac"`
	Algorithm          string        `env:"URLSIGNER_ALGORITHM" envDefault:"sha256"`  // Ignored by the composite scheme.
	TTL                time.Duration `env:"URLSIGNER_TTL" envDefault:"1h"`            // Ignored by the hmac scheme.
	ExpiresParameter   string        `env:"URLSIGNER_EXPIRES_PARAM" envDefault:"expires"`
	SignatureParameter string        `env:"URLSIGNER_SIGNATURE_PARAM" envDefault:"signature"`
}

// DefaultConfig returns the defaults declared in the env tags, without a secret.
func DefaultConfig() Config {
	return Config{
		Scheme:             SchemeTimedHMAC,
		Algorithm:          string(SHA256),
		TTL:                time.Hour,
		ExpiresParameter:   DefaultExpiresParameter,
		SignatureParameter: DefaultSignatureParameter,
	}
}

// Validate reports the first problem that would stop NewEncryptorFromConfig.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return NewMissingValueError("secret", nil)
	}
	switch c.Scheme {
	case SchemeHMAC:
	case SchemeTimedHMAC, SchemeComposite:
		if c.TTL <= 0 {
			return newError(ErrExpirationInPast, nil, "ttl %s must be positive", c.TTL)
		}
		if c.expiresParameter() == c.signatureParameter() {
			return newError(ErrInvalidConfiguration, nil,
				"the parameter %q is used for both expiration and signature", c.signatureParameter())
		}
	default:
		return newError(ErrInvalidConfiguration, nil, "unknown scheme %q", c.Scheme)
	}
	if c.Scheme != SchemeComposite {
		if _, err := ParseAlgorithm(c.Algorithm); err != nil {
			return err
		}
	}
	return nil
}

// NewEncryptorFromConfig builds the strategy described by cfg. Expirations
// are computed relative to the moment of the call, so long-running
// processes should build a fresh encryptor for each URL they sign. Any
// encryptor built from the same Config can verify URLs signed by another.
func NewEncryptorFromConfig(cfg Config, opts ...Option) (Encryptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(cfg.signatureParameter(), opts)

	switch cfg.Scheme {
	case SchemeHMAC:
		return NewHMAC(Algorithm(cfg.Algorithm), cfg.Secret, WithParameterName(o.parameterName))
	case SchemeComposite:
		exp, err := NewExpirationAfter(cfg.TTL, WithParameterName(cfg.expiresParameter()), WithClock(o.clock))
		if err != nil {
			return nil, err
		}
		return NewComposite(exp, cfg.Secret, WithParameterName(o.parameterName))
	default:
		exp, err := NewExpirationAfter(cfg.TTL, WithParameterName(cfg.expiresParameter()), WithClock(o.clock))
		if err != nil {
			return nil, err
		}
		mac, err := NewHMAC(Algorithm(cfg.Algorithm), cfg.Secret, WithParameterName(o.parameterName))
		if err != nil {
			return nil, err
		}
		return NewPipeline(exp, mac), nil
	}
}

// NewFromConfig returns a Signer over NewEncryptorFromConfig(cfg).
func NewFromConfig(cfg Config, opts ...SignerOption) (*Signer, error) {
	enc, err := NewEncryptorFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(enc, opts...), nil
}

func (c Config) expiresParameter() string {
	if c.ExpiresParameter == "" {
		return DefaultExpiresParameter
	}
	return c.ExpiresParameter
}

func (c Config) signatureParameter() string {
	if c.SignatureParameter == "" {
		return DefaultSignatureParameter
	}
	return c.SignatureParameter
}
