package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"cinecircle/pkg/logging"
	"cinecircle/rating/internal/repository"
	"cinecircle/rating/pkg/model"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerID = "rating-repository-memory"

type key struct {
	user model.UserID
	item model.ItemID
}

// Repository defines a rating repository.
type Repository struct {
	sync.RWMutex
	data   map[key]model.Rating
	logger *zap.Logger
}

// New creates a new memory repository.
func New(logger *zap.Logger) *Repository {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "memory"),
	)
	return &Repository{data: map[key]model.Rating{}, logger: logger}
}

// Get retrieves a user's rating of an item.
func (r *Repository) Get(ctx context.Context, userID model.UserID, itemID model.ItemID) (*model.Rating, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Get")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	rating, ok := r.data[key{userID, itemID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(rating), nil
}

// Upsert creates or replaces a rating. An existing RatedAt is kept.
func (r *Repository) Upsert(ctx context.Context, rating *model.Rating) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Upsert")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	k := key{rating.UserID, rating.ItemID}
	stored := *clone(*rating)
	if prev, ok := r.data[k]; ok {
		stored.RatedAt = prev.RatedAt
	}
	r.data[k] = stored
	return nil
}

// Delete removes a user's rating of an item.
func (r *Repository) Delete(ctx context.Context, userID model.UserID, itemID model.ItemID) error {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/Delete")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	k := key{userID, itemID}
	if _, ok := r.data[k]; !ok {
		return repository.ErrNotFound
	}
	delete(r.data, k)
	return nil
}

// ListByUsers returns every rating made by the given users, ordered by
// user id and item id.
func (r *Repository) ListByUsers(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error) {
	_, span := otel.Tracer(tracerID).Start(ctx, "Repository/ListByUsers")
	defer span.End()
	want := make(map[model.UserID]struct{}, len(userIDs))
	for _, u := range userIDs {
		want[u] = struct{}{}
	}
	r.RLock()
	var res []*model.Rating
	for k, v := range r.data {
		if _, ok := want[k.user]; ok {
			res = append(res, clone(v))
		}
	}
	r.RUnlock()
	sort.Slice(res, func(i, j int) bool {
		if res[i].UserID != res[j].UserID {
			return res[i].UserID < res[j].UserID
		}
		return res[i].ItemID < res[j].ItemID
	})
	return res, nil
}

func clone(r model.Rating) *model.Rating {
	r.Dimensions = maps.Clone(r.Dimensions)
	return &r
}
