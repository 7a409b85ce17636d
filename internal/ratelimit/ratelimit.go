// Package ratelimit paces batch work, such as checking many files, to a
// fixed number of items per second.
package ratelimit

import (
	"context"
	"iter"

	"golang.org/x/time/rate"
)

// Limiter admits items at a steady rate with a burst of one.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative perSecond for no rate limiting.
func New(perSecond float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(limit(perSecond), 1)}
}

func limit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}

// Wait blocks until the next item is admitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured rate, or 0 when unlimited.
func (l *Limiter) Limit() float64 {
	lim := l.limiter.Limit()
	if lim == rate.Inf {
		return 0
	}
	return float64(lim)
}

// Paced yields the items of seq, waiting for the limiter before each one.
// When ctx is done the context error is yielded once and iteration stops.
func Paced[T any](ctx context.Context, l *Limiter, seq iter.Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item := range seq {
			if err := l.Wait(ctx); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
