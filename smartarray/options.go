package smartarray

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a new SmartArray. Clones and moved-to arrays inherit
// the options of their source.
type Option func(*options)

type options struct {
	tracker *Tracker
	logger  logrus.FieldLogger
}

// WithTracker records allocations and releases in t.
func WithTracker(t *Tracker) Option {
	return func(o *options) { o.tracker = t }
}

// WithLogger sends lifecycle traces to l. Without it traces are dropped.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func buildOptions(opts []Option) options {
	o := options{logger: discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discard
	}
	return o
}
