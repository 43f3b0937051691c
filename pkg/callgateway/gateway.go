// Package callgateway serialises every call to the external text-generation
// model through one process-wide scheduler that caps concurrency and spaces
// call starts.
package callgateway

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Default limits.
const (
	DefaultMaxConcurrent = 30
	DefaultMinInterval   = 200 * time.Millisecond
	DefaultCallTimeout   = 90 * time.Second
)

// ConfigurationError is returned when the gateway cannot call the model at all.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "call gateway is not configured: " + e.Reason
}

// ErrNotConfigured is returned by Invoke when no model credential is configured.
var ErrNotConfigured error = &ConfigurationError{Reason: "missing model credential"}

// Completer is the model endpoint.
type Completer interface {
	CreateCompletion(ctx context.Context, system string, user string, maxTokens int) (string, error)
}

// Prompt defines a single model call.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Config defines gateway limits.
type Config struct {
	Credential    string        `yaml:"-"`
	MaxConcurrent int           `yaml:"maxConcurrent" validate:"gte=0"`
	MinInterval   time.Duration `yaml:"minInterval" validate:"gte=0"`
	CallTimeout   time.Duration `yaml:"callTimeout" validate:"gte=0"`
}

// Gateway is a concurrency and rate limited proxy in front of a Completer.
// Waiting callers are admitted first-in-first-out.
type Gateway struct {
	client      Completer
	configured  bool
	slots       *semaphore.Weighted
	spacing     *rate.Limiter
	callTimeout time.Duration
	waiting     atomic.Int64
	inFlight    atomic.Int64
	metrics     *metrics.CallGatewayMetrics
	logger      *zap.Logger
}

// New creates a new call gateway. Zero config values take the defaults.
func New(client Completer, cfg Config, scope tally.Scope, logger *zap.Logger) *Gateway {
	logger = logger.With(zap.String(logging.FieldComponent, "callgateway"))
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	configured := client != nil && strings.TrimSpace(cfg.Credential) != ""
	if !configured {
		logger.Warn("No model credential configured, model calls will fail")
	}
	return &Gateway{
		client:      client,
		configured:  configured,
		slots:       semaphore.NewWeighted(int64(maxConcurrent)),
		spacing:     rate.NewLimiter(rate.Every(minInterval), 1),
		callTimeout: callTimeout,
		metrics:     metrics.NewCallGatewayMetrics(scope),
		logger:      logger,
	}
}

// Invoke performs a model call once a concurrency slot is free and the
// minimum spacing since the previous call start has elapsed. Errors from
// the model endpoint are returned unchanged.
func (g *Gateway) Invoke(ctx context.Context, p Prompt) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}

	g.metrics.Waiting.Update(float64(g.waiting.Add(1)))
	err := g.slots.Acquire(ctx, 1)
	g.metrics.Waiting.Update(float64(g.waiting.Add(-1)))
	if err != nil {
		return "", err
	}
	defer g.slots.Release(1)

	if err := g.spacing.Wait(ctx); err != nil {
		return "", err
	}

	g.metrics.InFlight.Update(float64(g.inFlight.Add(1)))
	defer func() {
		g.metrics.InFlight.Update(float64(g.inFlight.Add(-1)))
	}()
	g.metrics.Calls.Inc(1)

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()
	sw := g.metrics.Latency.Start()
	resp, err := g.client.CreateCompletion(callCtx, p.System, p.User, p.MaxTokens)
	sw.Stop()
	if err != nil {
		g.metrics.Failures.Inc(1)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			g.logger.Warn("Model call timed out", zap.Duration("timeout", g.callTimeout))
		}
		return "", err
	}
	return resp, nil
}
