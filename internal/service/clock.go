package service

import (
	"time"

	"github.com/pageza/grocerly/backend/internal/models"
	"go.uber.org/zap"
)

// Clock supplies "today" for date stamping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

func today(c Clock) string {
	return c.Now().Format(models.DateLayout)
}

type options struct {
	clock  Clock
	logger *zap.Logger
}

// Option configures a service.
type Option func(*options)

// WithClock overrides the clock used to stamp dateAdded and datePurchased.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
