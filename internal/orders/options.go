package orders

import (
	"time"

	"go.uber.org/zap"
)

const defaultConcurrency = 8

type options struct {
	logger      *zap.Logger
	concurrency int
	location    *time.Location
	strict      bool
}

// Option customizes the order components.
type Option func(*options)

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency bounds the number of store lookups issued in parallel by one call.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLocation sets the zone month windows are built in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithStrictTransitions makes seller status updates follow CanTransition
// instead of accepting any valid status.
func WithStrictTransitions() Option {
	return func(o *options) {
		o.strict = true
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
		location:    time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
