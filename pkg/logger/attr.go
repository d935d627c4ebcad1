package logger

import "log/slog"

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// URL records a URL string under the key "url".
func URL(raw string) slog.Attr {
	return slog.String("url", raw)
}

// Reason records a short failure classification under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// Scheme records the signing scheme under the key "scheme".
func Scheme(name string) slog.Attr {
	return slog.String("scheme", name)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
