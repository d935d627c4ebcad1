// Package query edits the query component of a *url.URL without disturbing
// the parts it does not touch.
//
// net/url.Values is a map, so round-tripping a query through it sorts the
// keys and re-encodes every value. That is fine for building requests but
// breaks anything that hashes the URL string: a signature computed before
// the round trip no longer matches the one computed after. The helpers in
// this package treat RawQuery as an ordered list of raw "key=value"
// segments instead. Segments that are not targeted keep their exact bytes,
// so removing a parameter that With appended restores the original string.
//
// All functions are pure: they never modify the URL passed in and return a
// fresh *url.URL when a change is made.
//
// # Usage
//
//	u, _ := url.Parse("https://example.com/report?b=2&a=1")
//
//	signed := query.With(u, "signature", "abc123")
//	// https://example.com/report?b=2&a=1&signature=abc123
//
//	v, ok := query.Get(signed, "signature") // "abc123", true
//
//	plain := query.Without(signed, "signature")
//	// https://example.com/report?b=2&a=1
//
// Keys are compared after percent-decoding, so "sig%6Eature" and
// "signature" name the same parameter. Appended pairs are encoded per
// RFC 3986 (a space becomes %20, never "+").
package query
