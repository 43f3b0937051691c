package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinecircle/catalog/internal/repository"
	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a requested item is not found.
	ErrNotFound = errors.New("catalog item not found")
	// ErrInvalidItem is returned when an item fails validation.
	ErrInvalidItem = errors.New("invalid catalog item")
	// ErrUnknownKind is returned when no pipeline exists for an enrichment kind.
	ErrUnknownKind = errors.New("unknown enrichment kind")
)

type catalogRepository interface {
	Get(ctx context.Context, id model.ItemID) (*model.CatalogItem, error)
	Put(ctx context.Context, item *model.CatalogItem) error
	GetItems(ctx context.Context, ids []model.ItemID) ([]*model.CatalogItem, error)
	ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error)
}

type enrichmentPipeline interface {
	Kind() model.EnrichmentKind
	Run(ctx context.Context, limit int, batchSize int) (model.EnrichmentSummary, error)
}

// Controller defines a catalog service controller.
type Controller struct {
	repo      catalogRepository
	pipelines map[model.EnrichmentKind]enrichmentPipeline
	logger    *zap.Logger
}

// New creates a catalog service controller.
func New(repo catalogRepository, logger *zap.Logger, pipelines ...enrichmentPipeline) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "controller"))
	c := &Controller{repo: repo, pipelines: map[model.EnrichmentKind]enrichmentPipeline{}, logger: logger}
	for _, p := range pipelines {
		c.pipelines[p.Kind()] = p
	}
	return c
}

// Get returns a catalog item by id.
func (c *Controller) Get(ctx context.Context, id model.ItemID) (*model.CatalogItem, error) {
	item, err := c.repo.Get(ctx, id)
	if err != nil && errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

// Put validates and stores a catalog item.
func (c *Controller) Put(ctx context.Context, item *model.CatalogItem) error {
	if item == nil || item.ID <= 0 || strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: id and title are required", ErrInvalidItem)
	}
	if item.VoteAverage < 0 || item.VoteAverage > 10 || item.VoteCount < 0 || item.RuntimeMinutes < 0 {
		return fmt.Errorf("%w: negative or out of range metadata", ErrInvalidItem)
	}
	if err := repository.CheckMoodScores(item.MoodScores, item.MoodScoredAt); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return c.repo.Put(ctx, item)
}

// GetItems returns the items with the given ids, skipping unknown ones.
func (c *Controller) GetItems(ctx context.Context, ids []model.ItemID) ([]*model.CatalogItem, error) {
	return c.repo.GetItems(ctx, ids)
}

// ListCandidates returns recommendation candidates not in exclude.
func (c *Controller) ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error) {
	return c.repo.ListCandidates(ctx, exclude, limit)
}

// Kinds returns the enrichment kinds with a registered pipeline, mood first.
func (c *Controller) Kinds() []model.EnrichmentKind {
	var res []model.EnrichmentKind
	for _, k := range []model.EnrichmentKind{model.KindMood, model.KindAdvisory} {
		if _, ok := c.pipelines[k]; ok {
			res = append(res, k)
		}
	}
	return res
}

// RunEnrichment runs the pipeline of the given kind once.
func (c *Controller) RunEnrichment(ctx context.Context, kind model.EnrichmentKind, limit int, batchSize int) (model.EnrichmentSummary, error) {
	p, ok := c.pipelines[kind]
	if !ok {
		return model.EnrichmentSummary{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	c.logger.Info("Running enrichment", zap.String(logging.FieldKind, string(kind)), zap.Int("limit", limit), zap.Int("batchSize", batchSize))
	return p.Run(ctx, limit, batchSize)
}
