// Package urlsigner signs URLs with tamper-evident query parameters and
// verifies them again.
//
// A signing scheme is an Encryptor: Encrypt adds its parameter to a URL,
// Decrypt checks it and returns the URL without it. Four strategies are
// provided and can be combined freely:
//
//   - Expiration appends an absolute Unix timestamp ("expires") and rejects
//     URLs once it has passed.
//   - HMAC appends a keyed-hash signature ("signature") over the whole URL,
//     other query parameters included. The digest is chosen from a fixed
//     set of Algorithm identifiers (md5, sha1, sha256, sha3-512, ...).
//   - Composite wraps another strategy, usually an Expiration, and adds an
//     outer md5 digest over the URL, the inner parameter value and a secret.
//   - Pipeline chains strategies. Encrypt runs them in order; Decrypt runs
//     them in reverse, feeding each step the output of the previous one.
//
// Signer works with URL strings instead of *url.URL and adds Validate,
// which reports success as a bool and never returns an error.
//
// All strategies are immutable once built and safe for concurrent use.
// Constructors check their input up front: an unknown algorithm, a blank
// composite secret or an expiration that is not in the future makes the
// constructor fail and no strategy is returned.
//
// # Usage
//
//	exp, err := urlsigner.NewExpirationAfter(24 * time.Hour)
//	if err != nil {
//		return err
//	}
//	mac, err := urlsigner.NewHMAC(urlsigner.SHA256, secret)
//	if err != nil {
//		return err
//	}
//	signer := urlsigner.New(urlsigner.NewPipeline(exp, mac))
//
//	signed, err := signer.Encrypt("https://files.example.com/report.pdf?user=42")
//	// https://files.example.com/report.pdf?user=42&expires=1767225600&signature=9f2c...
//
//	if !signer.Validate(signed) {
//		// reject
//	}
//
// # HTTP
//
// Middleware verifies the incoming request URL and passes the request on
// with the signing parameters stripped; failures get 403 Forbidden unless
// WithErrorHandler says otherwise. AbsoluteURL (the default) rebuilds the
// full URL from the request, RelativeURL verifies path and query only.
//
//	r := chi.NewRouter()
//	r.With(urlsigner.Middleware(enc)).Get("/files/*", serveFile)
//
// # Errors
//
// Every failure is an *EncryptionError. Use errors.Is with the package
// sentinels to classify it:
//
//	ErrMissingParameter  required parameter absent
//	ErrMissingValue      parameter or secret present but empty
//	ErrWrongValue        bad format or signature mismatch
//	ErrAlreadyPresent    reserved parameter already in the URL being signed
//	ErrCorruptedURL      composite signature mismatch or elapsed expiration
//	ErrInvalidURL        the string could not be parsed
//
// Construction failures unwrap to ErrUnsupportedAlgorithm,
// ErrExpirationInPast, ErrMissingValue or ErrInvalidConfiguration.
//
// # Configuration
//
// Config is tagged for github.com/caarlos0/env and describes one of three
// schemes: "hmac", "timed-hmac" (Pipeline of Expiration and HMAC) and
// "composite". NewEncryptorFromConfig and NewFromConfig build them.
package urlsigner
