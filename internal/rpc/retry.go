package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Connection budget to the analyzer: a fixed number of attempts at a fixed
// interval, after which start-up fails.
const (
	DefaultConnectAttempts = 16
	DefaultConnectInterval = 125 * time.Millisecond
)

// ErrUnavailable is returned when the analyzer could not be reached within
// the connection budget. It is the only fatal error of the pipeline.
var ErrUnavailable = errors.New("morphological analyzer unavailable")

// Budget bounds connection attempts.
type Budget struct {
	Attempts int
	Interval time.Duration
}

func (b Budget) withDefaults() Budget {
	if b.Attempts <= 0 {
		b.Attempts = DefaultConnectAttempts
	}
	if b.Interval <= 0 {
		b.Interval = DefaultConnectInterval
	}
	return b
}

// retry calls fn until it succeeds or the budget is spent.
func retry(ctx context.Context, b Budget, fn func(ctx context.Context) error) error {
	b = b.withDefaults()

	var err error
	for attempt := 1; attempt <= b.Attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == b.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Interval):
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, b.Attempts, err)
}
