package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cinecircle/catalog/internal/repository"
	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "catalog-repository-memory"

// Repository defines a memory catalog repository.
type Repository struct {
	sync.RWMutex
	data   map[model.ItemID]*model.CatalogItem
	logger *zap.Logger
}

// New creates new memory repository.
func New(logger *zap.Logger) *Repository {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "memory"),
	)
	return &Repository{data: map[model.ItemID]*model.CatalogItem{}, logger: logger}
}

// Get retrieves a catalog item by id.
func (r *Repository) Get(ctx context.Context, id model.ItemID) (*model.CatalogItem, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	item, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneItem(item), nil
}

// Put adds or replaces a catalog item.
func (r *Repository) Put(ctx context.Context, item *model.CatalogItem) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Put")
	defer span.End()
	if err := repository.CheckMoodScores(item.MoodScores, item.MoodScoredAt); err != nil {
		return err
	}
	r.Lock()
	defer r.Unlock()
	r.data[item.ID] = cloneItem(item)
	return nil
}

// GetItems returns the items with the given ids. Unknown ids are skipped.
func (r *Repository) GetItems(ctx context.Context, ids []model.ItemID) ([]*model.CatalogItem, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/GetItems")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	var res []*model.CatalogItem
	for _, id := range ids {
		if item, ok := r.data[id]; ok {
			res = append(res, cloneItem(item))
		}
	}
	return res, nil
}

// ListUnenriched returns up to limit items not yet enriched by the given
// pass, most popular first.
func (r *Repository) ListUnenriched(ctx context.Context, kind model.EnrichmentKind, limit int) ([]*model.CatalogItem, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListUnenriched")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	var res []*model.CatalogItem
	for _, item := range r.data {
		switch kind {
		case model.KindMood:
			if item.MoodScoredAt != nil {
				continue
			}
		case model.KindAdvisory:
			if item.LLMEnrichedAt != nil {
				continue
			}
		}
		res = append(res, cloneItem(item))
	}
	sortByPopularity(res)
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// ListCandidates returns up to limit items not in exclude, most popular
// first. A non-positive limit returns every item.
func (r *Repository) ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListCandidates")
	defer span.End()
	skip := make(map[model.ItemID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	r.RLock()
	defer r.RUnlock()
	var res []*model.CatalogItem
	for id, item := range r.data {
		if _, ok := skip[id]; ok {
			continue
		}
		res = append(res, cloneItem(item))
	}
	sortByPopularity(res)
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// SaveMoodScores stores a complete mood score set and its timestamp.
func (r *Repository) SaveMoodScores(ctx context.Context, id model.ItemID, scores model.MoodScores, scoredAt time.Time) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/SaveMoodScores")
	defer span.End()
	if err := repository.CheckMoodScores(scores, &scoredAt); err != nil {
		return err
	}
	r.Lock()
	defer r.Unlock()
	item, ok := r.data[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.MoodScores = make(model.MoodScores, len(scores))
	for m, v := range scores {
		item.MoodScores[m] = v
	}
	item.MoodScoredAt = &scoredAt
	return nil
}

// SaveAdvisory stores pairings, parental summary and severities with their timestamp.
func (r *Repository) SaveAdvisory(ctx context.Context, id model.ItemID, e *model.AdvisoryEnrichment, enrichedAt time.Time) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/SaveAdvisory")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	item, ok := r.data[id]
	if !ok {
		return repository.ErrNotFound
	}
	pairings := e.Pairings
	item.Pairings = &pairings
	item.ParentalSummary = e.ParentalSummary
	item.Advisory = make(model.Advisory, len(e.Advisory))
	for c, s := range e.Advisory {
		item.Advisory[c] = s
	}
	item.LLMEnrichedAt = &enrichedAt
	return nil
}

func sortByPopularity(items []*model.CatalogItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].VoteCount != items[j].VoteCount {
			return items[i].VoteCount > items[j].VoteCount
		}
		return items[i].ID < items[j].ID
	})
}

func cloneItem(item *model.CatalogItem) *model.CatalogItem {
	c := *item
	c.Genres = append([]string(nil), item.Genres...)
	c.Providers = append([]string(nil), item.Providers...)
	if item.MoodScores != nil {
		c.MoodScores = make(model.MoodScores, len(item.MoodScores))
		for m, v := range item.MoodScores {
			c.MoodScores[m] = v
		}
	}
	if item.Advisory != nil {
		c.Advisory = make(model.Advisory, len(item.Advisory))
		for k, v := range item.Advisory {
			c.Advisory[k] = v
		}
	}
	if item.Pairings != nil {
		p := *item.Pairings
		c.Pairings = &p
	}
	return &c
}
