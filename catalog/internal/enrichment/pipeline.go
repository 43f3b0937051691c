// Package enrichment runs the batch classification pipelines that score
// catalog items through the external model.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// Batch sizing.
const (
	DefaultBatchSize       = 10
	MaxBatchSize           = 15
	DefaultLimit           = 50
	DefaultInterBatchDelay = time.Second
)

// ErrMalformedResponse is returned when a model response or one of its
// entries does not match the rubric.
var ErrMalformedResponse = errors.New("malformed model response")

type itemRepository interface {
	ListUnenriched(ctx context.Context, kind model.EnrichmentKind, limit int) ([]*model.CatalogItem, error)
	SaveMoodScores(ctx context.Context, id model.ItemID, scores model.MoodScores, scoredAt time.Time) error
	SaveAdvisory(ctx context.Context, id model.ItemID, e *model.AdvisoryEnrichment, enrichedAt time.Time) error
}

type modelGateway interface {
	Invoke(ctx context.Context, p callgateway.Prompt) (string, error)
}

// rubric defines what a pipeline asks the model and how it stores the answer.
type rubric interface {
	kind() model.EnrichmentKind
	systemPrompt() string
	maxTokens() int
	instructions() string
	// apply validates one response entry and persists it.
	apply(ctx context.Context, repo itemRepository, id model.ItemID, raw json.RawMessage, at time.Time) error
}

// Summary defines the outcome of a pipeline run.
type Summary = model.EnrichmentSummary

// Config defines pipeline pacing. A zero InterBatchDelay disables the pause.
type Config struct {
	InterBatchDelay time.Duration
}

// Pipeline defines a batch classification pipeline.
type Pipeline struct {
	repo    itemRepository
	gateway modelGateway
	rubric  rubric
	delay   time.Duration
	now     func() time.Time
	metrics *metrics.PipelineMetrics
	logger  *zap.Logger
}

// NewMoodPipeline creates a pipeline scoring items on the seven moods.
func NewMoodPipeline(repo itemRepository, gateway modelGateway, cfg Config, scope tally.Scope, logger *zap.Logger) *Pipeline {
	return newPipeline(repo, gateway, moodRubric{}, cfg, scope, logger)
}

// NewAdvisoryPipeline creates a pipeline producing pairings and parental advisories.
func NewAdvisoryPipeline(repo itemRepository, gateway modelGateway, cfg Config, scope tally.Scope, logger *zap.Logger) *Pipeline {
	return newPipeline(repo, gateway, advisoryRubric{}, cfg, scope, logger)
}

func newPipeline(repo itemRepository, gateway modelGateway, r rubric, cfg Config, scope tally.Scope, logger *zap.Logger) *Pipeline {
	logger = logger.With(
		zap.String(logging.FieldComponent, "pipeline"),
		zap.String(logging.FieldKind, string(r.kind())),
	)
	delay := cfg.InterBatchDelay
	if delay < 0 {
		delay = 0
	}
	return &Pipeline{
		repo:    repo,
		gateway: gateway,
		rubric:  r,
		delay:   delay,
		now:     time.Now,
		metrics: metrics.NewPipelineMetrics(scope, string(r.kind())),
		logger:  logger,
	}
}

// Kind returns the enrichment kind the pipeline produces.
func (p *Pipeline) Kind() model.EnrichmentKind {
	return p.rubric.kind()
}

// Run enriches up to limit unenriched items in batches of batchSize.
// Call and parse failures are counted and the run continues with the next
// batch. A configuration error or context cancellation stops the run and
// is returned together with the partial summary.
func (p *Pipeline) Run(ctx context.Context, limit int, batchSize int) (Summary, error) {
	p.metrics.Runs.Inc(1)
	sw := p.metrics.Duration.Start()
	defer sw.Stop()

	if limit <= 0 {
		limit = DefaultLimit
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}

	var summary Summary
	items, err := p.repo.ListUnenriched(ctx, p.rubric.kind(), limit)
	if err != nil {
		return summary, fmt.Errorf("list unenriched items: %w", err)
	}
	if len(items) == 0 {
		p.logger.Info("Nothing to enrich")
		return summary, nil
	}

	batches := partition(items, batchSize)
	for i, batch := range batches {
		if i > 0 && p.delay > 0 {
			if err := sleep(ctx, p.delay); err != nil {
				p.finish(summary)
				return summary, err
			}
		}
		res, err := p.runBatch(ctx, i+1, batch)
		summary.Add(res)
		var cfgErr *callgateway.ConfigurationError
		if errors.As(err, &cfgErr) {
			p.logger.Error("Model gateway is not configured, aborting run", zap.Error(err))
			p.finish(summary)
			return summary, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.finish(summary)
			return summary, ctxErr
		}
	}
	p.finish(summary)
	return summary, nil
}

func (p *Pipeline) finish(s Summary) {
	p.metrics.Enriched.Inc(int64(s.Enriched))
	p.metrics.Errored.Inc(int64(s.Errored))
	p.metrics.Skipped.Inc(int64(s.Skipped))
	p.logger.Info("Enrichment run finished",
		zap.Int("enriched", s.Enriched),
		zap.Int("errored", s.Errored),
		zap.Int("skipped", s.Skipped),
		zap.Int("attempted", s.Attempted),
	)
}

func (p *Pipeline) runBatch(ctx context.Context, n int, batch []*model.CatalogItem) (Summary, error) {
	res := Summary{Attempted: len(batch)}
	logger := p.logger.With(zap.Int(logging.FieldBatch, n), zap.Int("size", len(batch)))

	text, err := p.gateway.Invoke(ctx, callgateway.Prompt{
		System:    p.rubric.systemPrompt(),
		User:      renderPrompt(batch, p.rubric.instructions()),
		MaxTokens: p.rubric.maxTokens(),
	})
	if err != nil {
		logger.Warn("Model call failed", zap.Error(err))
		res.Errored = len(batch)
		return res, err
	}
	entries, err := parseResponse(text)
	if err != nil {
		logger.Warn("Failed to parse model response", zap.Error(err))
		res.Errored = len(batch)
		return res, nil
	}

	done := make([]bool, len(batch))
	at := p.now().UTC()
	for key, raw := range entries {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 1 || idx > len(batch) {
			logger.Warn("Ignoring response entry with invalid index", zap.String("index", key))
			continue
		}
		item := batch[idx-1]
		if done[idx-1] {
			continue
		}
		if err := p.rubric.apply(ctx, p.repo, item.ID, raw, at); err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				logger.Warn("Skipping malformed entry", zap.Int64(logging.FieldItemID, int64(item.ID)), zap.Error(err))
			} else {
				logger.Warn("Failed to persist enrichment", zap.Int64(logging.FieldItemID, int64(item.ID)), zap.Error(err))
				res.Errored++
				done[idx-1] = true
			}
			continue
		}
		done[idx-1] = true
		res.Enriched++
	}
	res.Skipped = len(batch) - res.Enriched - res.Errored
	logger.Info("Batch processed",
		zap.Int("enriched", res.Enriched),
		zap.Int("errored", res.Errored),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func partition(items []*model.CatalogItem, size int) [][]*model.CatalogItem {
	var res [][]*model.CatalogItem
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		res = append(res, items[start:end])
	}
	return res
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
