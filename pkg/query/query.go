package query

import (
	"net/url"
	"strings"
)

const separator = "&"

// Has reports whether the query of u contains name, with or without a value.
func Has(u *url.URL, name string) bool {
	_, ok := Get(u, name)
	return ok
}

// Get returns the decoded value of the first segment named name.
// A key without "=" yields an empty value and ok == true.
func Get(u *url.URL, name string) (string, bool) {
	if u == nil {
		return "", false
	}
	for _, seg := range segments(u.RawQuery) {
		key, value, _ := strings.Cut(seg, "=")
		if decode(key) == name {
			return decode(value), true
		}
	}
	return "", false
}

// Count returns how many segments of the query of u are named name.
func Count(u *url.URL, name string) int {
	if u == nil {
		return 0
	}
	n := 0
	for _, seg := range segments(u.RawQuery) {
		key, _, _ := strings.Cut(seg, "=")
		if seg != "" && decode(key) == name {
			n++
		}
	}
	return n
}

// Len returns the number of non-empty segments in the query of u.
func Len(u *url.URL) int {
	if u == nil {
		return 0
	}
	n := 0
	for _, seg := range segments(u.RawQuery) {
		if seg != "" {
			n++
		}
	}
	return n
}

// Keys returns the decoded keys in query order, duplicates included.
func Keys(u *url.URL) []string {
	if u == nil {
		return nil
	}
	keys := make([]string, 0, Len(u))
	for _, seg := range segments(u.RawQuery) {
		if seg == "" {
			continue
		}
		key, _, _ := strings.Cut(seg, "=")
		keys = append(keys, decode(key))
	}
	return keys
}

// With returns a copy of u with name=value appended to the end of the query.
// Existing segments, including any named name, are left as they are.
func With(u *url.URL, name, value string) *url.URL {
	c := clone(u)
	pair := escape(name) + "=" + escape(value)
	if c.RawQuery == "" {
		c.RawQuery = pair
	} else {
		c.RawQuery += separator + pair
	}
	return c
}

// Without returns a copy of u with every segment named name removed.
// The remaining segments keep their original encoding and order.
func Without(u *url.URL, name string) *url.URL {
	c := clone(u)
	segs := segments(c.RawQuery)
	kept := make([]string, 0, len(segs))
	for _, seg := range segs {
		key, _, _ := strings.Cut(seg, "=")
		if seg != "" && decode(key) == name {
			continue
		}
		kept = append(kept, seg)
	}
	c.RawQuery = strings.Join(kept, separator)
	return c
}

func segments(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, separator)
}

// decode falls back to the raw text when s is not valid percent-encoding,
// so a malformed pair can still be matched and rejected by the caller.
func decode(s string) string {
	v, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return v
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func clone(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{}
	}
	c := *u
	return &c
}
