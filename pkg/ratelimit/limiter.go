// Package ratelimit implements client-side request throttling for the
// ARTIC API. The API is a free public service; the limiter keeps the
// sustained request rate polite without retrying or queueing failures.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for rate limit gating.
var (
	articThrottleWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "artic_throttle_wait_seconds",
		Help:    "Time spent waiting for the client-side rate limiter",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	articThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artic_throttles_total",
		Help: "Total number of requests delayed by the client-side rate limiter",
	})
)

// Limiter gates outbound requests to a fixed sustained rate.
type Limiter struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// New creates a limiter allowing requestsPerSecond sustained requests.
// A non-positive rate disables throttling entirely.
func New(requestsPerSecond float64, logger zerolog.Logger) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{logger: logger}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// Wait blocks until the next request is allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}

	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	waited := time.Since(start)
	articThrottleWaitSeconds.Observe(waited.Seconds())
	if waited > time.Millisecond {
		articThrottlesTotal.Inc()
		l.logger.Debug().
			Dur("waited", waited).
			Msg("Request delayed by rate limiter")
	}

	return nil
}
