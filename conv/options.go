package conv

import (
	"time"

	"github.com/viant/xreflect"
)

type (
	options struct {
		location    *time.Location
		datePattern string
		timeLayout  string
		types       *xreflect.Types
	}

	// Option represents registry and converter option
	Option func(o *options)
)

func newOptions(opts []Option) *options {
	ret := &options{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.location == nil {
		ret.location = time.Local
	}
	if ret.types == nil {
		ret.types = xreflect.NewTypes()
	}
	return ret
}

// WithLocation returns option setting location used for date conversion
func WithLocation(location *time.Location) Option {
	return func(o *options) {
		o.location = location
	}
}

// WithDatePattern returns option setting date pattern (i.e. yyyy-MM-dd), when unset pattern is detected
func WithDatePattern(pattern string) Option {
	return func(o *options) {
		o.datePattern = pattern
	}
}

// WithTypes returns option setting type registry used to resolve type names
func WithTypes(types *xreflect.Types) Option {
	return func(o *options) {
		o.types = types
	}
}

// WithTimeLayout returns option setting go time layout, it takes precedence over date pattern
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		o.timeLayout = layout
	}
}
