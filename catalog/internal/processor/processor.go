package processor

import (
	"context"
	"errors"
	"time"

	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/logging"

	"go.uber.org/zap"
)

const lockKey = "locks/service/catalog/enrichment"

// LockProvider defines a distributed Lock provider.
type LockProvider interface {
	Acquire(ctx context.Context, key string) (bool, func() error, error)
}

type enricher interface {
	Kinds() []model.EnrichmentKind
	RunEnrichment(ctx context.Context, kind model.EnrichmentKind, limit int, batchSize int) (model.EnrichmentSummary, error)
}

// Config defines how often and how much the processor enriches.
type Config struct {
	Interval   time.Duration
	Limit      int
	BatchSizes map[model.EnrichmentKind]int
	// RunTimeout bounds a single processing round.
	RunTimeout time.Duration
}

// Processor periodically runs every enrichment pipeline while holding a
// distributed lock, so only one replica enriches at a time.
type Processor struct {
	logger       *zap.Logger
	lockProvider LockProvider
	enricher     enricher
	cfg          Config
	retryDelay   time.Duration
}

// New creates a new enrichment processor.
func New(logger *zap.Logger, lockProvider LockProvider, enricher enricher, cfg Config) *Processor {
	logger = logger.With(zap.String(logging.FieldComponent, "processor"))
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Minute
	}
	return &Processor{
		logger:       logger,
		lockProvider: lockProvider,
		enricher:     enricher,
		cfg:          cfg,
		retryDelay:   10 * time.Second,
	}
}

// Start runs processing rounds until ctx is done.
func (p *Processor) Start(ctx context.Context) error {
	p.logger.Info("Starting the enrichment processor", zap.Duration("interval", p.cfg.Interval))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		acquired, release, err := p.lockProvider.Acquire(ctx, lockKey)
		if err != nil || !acquired {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("Unable to acquire lock, retrying", zap.Duration("retryIn", p.retryDelay), zap.Error(err))
			if err := wait(ctx, p.retryDelay); err != nil {
				return err
			}
			continue
		}
		p.logger.Info("Lock has been acquired, starting processing")
		if err := p.process(ctx); err != nil {
			p.logger.Error("Process error", zap.Error(err))
		} else {
			p.logger.Info("Process completed successfully")
		}
		p.logger.Info("Releasing the lock")
		if err := release(); err != nil {
			p.logger.Error("Failed to release the lock", zap.Error(err))
		}
		if err := wait(ctx, p.cfg.Interval); err != nil {
			return err
		}
	}
}

// process runs each pipeline once.
func (p *Processor) process(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.RunTimeout)
	defer cancel()

	for _, kind := range p.enricher.Kinds() {
		summary, err := p.enricher.RunEnrichment(ctx, kind, p.cfg.Limit, p.cfg.BatchSizes[kind])
		var cfgErr *callgateway.ConfigurationError
		if errors.As(err, &cfgErr) {
			return err
		} else if err != nil {
			p.logger.Warn("Enrichment run failed", zap.String(logging.FieldKind, string(kind)), zap.Error(err))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		p.logger.Info("Enrichment run completed",
			zap.String(logging.FieldKind, string(kind)),
			zap.Int("enriched", summary.Enriched),
			zap.Int("attempted", summary.Attempted),
		)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
