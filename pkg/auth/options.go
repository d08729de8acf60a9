package auth

import (
	"context"
	"time"

	"github.com/artem13815/fintrack/pkg/logging"
)

const (
	DefaultCodeTTL      = 15 * time.Minute
	DefaultStoreTimeout = 5 * time.Second
	DefaultMailTimeout  = 10 * time.Second
)

type options struct {
	now          func() time.Time
	codeTTL      time.Duration
	storeTimeout time.Duration
	mailTimeout  time.Duration
	log          logging.Logger
}

// Option tunes a service.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCodeTTL sets how long a verification code stays valid.
func WithCodeTTL(d time.Duration) Option {
	return func(o *options) { o.codeTTL = d }
}

// WithStoreTimeout bounds every repository call.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) { o.storeTimeout = d }
}

// WithMailTimeout bounds every notifier call.
func WithMailTimeout(d time.Duration) Option {
	return func(o *options) { o.mailTimeout = d }
}

// WithLogger sets the logger for flow events and mail failures.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		codeTTL:      DefaultCodeTTL,
		storeTimeout: DefaultStoreTimeout,
		mailTimeout:  DefaultMailTimeout,
		log:          logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) clock() time.Time { return o.now().UTC() }

func (o options) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.storeTimeout)
}
