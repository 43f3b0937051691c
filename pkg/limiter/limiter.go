package limiter

import (
	"cinecircle/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter is a token bucket request limiter for the gRPC ratelimit interceptor.
type Limiter struct {
	logger *zap.Logger
	l      *rate.Limiter
}

// New creates a limiter admitting limit requests per second with the given burst.
func New(logger *zap.Logger, limit, burst int) *Limiter {
	logger = logger.With(zap.String(logging.FieldComponent, "limiter"))
	return &Limiter{logger: logger, l: rate.NewLimiter(rate.Limit(limit), burst)}
}

// Limit reports whether the current request must be rejected.
func (l *Limiter) Limit() bool {
	allowed := l.l.Allow()
	if !allowed {
		l.logger.Debug("Request rejected by rate limiter",
			zap.Float64("limit", float64(l.l.Limit())),
			zap.Int("burst", l.l.Burst()),
		)
	}
	return !allowed
}
