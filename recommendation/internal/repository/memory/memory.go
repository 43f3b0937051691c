package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/internal/repository"
	"cinecircle/recommendation/pkg/model"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "recommendation-repository-memory"

// Repository defines a memory collective and dismissal repository.
type Repository struct {
	sync.RWMutex
	collectives map[model.CollectiveID]model.Collective
	dismissals  map[ratingmodel.UserID]map[catalogmodel.ItemID]time.Time
	logger      *zap.Logger
}

// New creates a new memory repository.
func New(logger *zap.Logger) *Repository {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "memory"),
	)
	return &Repository{
		collectives: map[model.CollectiveID]model.Collective{},
		dismissals:  map[ratingmodel.UserID]map[catalogmodel.ItemID]time.Time{},
		logger:      logger,
	}
}

// GetCollective retrieves a collective by id.
func (r *Repository) GetCollective(ctx context.Context, id model.CollectiveID) (*model.Collective, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/GetCollective")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	c, ok := r.collectives[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Members = append([]model.Member(nil), c.Members...)
	return &c, nil
}

// PutCollective adds or replaces a collective.
func (r *Repository) PutCollective(ctx context.Context, c *model.Collective) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/PutCollective")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	stored := *c
	stored.Members = append([]model.Member(nil), c.Members...)
	r.collectives[c.ID] = stored
	return nil
}

// CreateDismissal records that the user dismissed the item. Dismissing
// twice keeps the first timestamp.
func (r *Repository) CreateDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID, at time.Time) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/CreateDismissal")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	items, ok := r.dismissals[userID]
	if !ok {
		items = map[catalogmodel.ItemID]time.Time{}
		r.dismissals[userID] = items
	}
	if _, ok := items[itemID]; !ok {
		items[itemID] = at
	}
	return nil
}

// DeleteDismissal removes a dismissal.
func (r *Repository) DeleteDismissal(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/DeleteDismissal")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	if _, ok := r.dismissals[userID][itemID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.dismissals[userID], itemID)
	return nil
}

// ListDismissed returns the items a user dismissed in ascending id order.
func (r *Repository) ListDismissed(ctx context.Context, userID ratingmodel.UserID) ([]catalogmodel.ItemID, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListDismissed")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	res := make([]catalogmodel.ItemID, 0, len(r.dismissals[userID]))
	for id := range r.dismissals[userID] {
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res, nil
}
