package urlsigner

import "time"

type options struct {
	parameterName string
	clock         func() time.Time
}

// Option configures a strategy at construction time.
type Option func(*options)

// WithParameterName overrides the reserved query parameter a strategy owns.
// Empty names are ignored.
func WithParameterName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.parameterName = name
		}
	}
}

// WithClock replaces time.Now for expiration checks. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func applyOptions(defaultName string, opts []Option) options {
	o := options{
		parameterName: defaultName,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
