package chanq

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var channelSeq atomic.Uint64

type options struct {
	name   string
	logger logrus.FieldLogger
	ctx    context.Context
}

// Option configures a channel built by New.
type Option func(*options)

// WithName labels the channel in logs and metrics. Unnamed channels are
// called "chan-N" with N a process-wide sequence number.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for close and late-send events, which
// are logged at debug level. Defaults to logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithContext closes the channel when ctx is done.
//
// The hook registered on ctx keeps the channel reachable until ctx ends or
// Close is called, so call Close when done with a channel bound to a
// long-lived context.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = fmt.Sprintf("chan-%d", channelSeq.Add(1))
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	return o
}
