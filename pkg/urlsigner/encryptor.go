package urlsigner

import "net/url"

// Default reserved query parameter names.
const (
	DefaultExpiresParameter   = "expires"
	DefaultSignatureParameter = "signature"
)

// Encryptor adds tamper-evident data to a URL and removes it again.
//
// Implementations must not modify the URL they receive. Decrypt returns the
// URL as it was before Encrypt, or an *EncryptionError if the URL was not
// produced by Encrypt or has been altered since.
type Encryptor interface {
	Encrypt(u *url.URL) (*url.URL, error)
	Decrypt(u *url.URL) (*url.URL, error)
}

// QueryEncryptor is an Encryptor that manages a single reserved query parameter.
type QueryEncryptor interface {
	Encryptor
	ParameterName() string
}

var (
	_ QueryEncryptor = (*Expiration)(nil)
	_ QueryEncryptor = (*HMAC)(nil)
	_ QueryEncryptor = (*Composite)(nil)
	_ Encryptor      = (*Pipeline)(nil)
)
