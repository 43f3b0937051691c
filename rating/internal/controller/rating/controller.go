package rating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinecircle/pkg/auth"
	"cinecircle/pkg/logging"
	"cinecircle/rating/internal/compatibility"
	"cinecircle/rating/internal/repository"
	"cinecircle/rating/pkg/model"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no rating exists for a user and item.
	ErrNotFound = errors.New("rating not found")
	// ErrInvalidRating is returned when a rating fails validation.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrUnauthorized is returned when a token does not grant access to a user's ratings.
	ErrUnauthorized = errors.New("unauthorized")
)

type ratingRepository interface {
	Get(ctx context.Context, userID model.UserID, itemID model.ItemID) (*model.Rating, error)
	Upsert(ctx context.Context, rating *model.Rating) error
	Delete(ctx context.Context, userID model.UserID, itemID model.ItemID) error
	ListByUsers(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error)
}

type ratingIngester interface {
	Ingest(ctx context.Context) (chan model.RatingEvent, error)
}

type tokenVerifier interface {
	Authorize(token string, userID string) error
}

// Controller defines a rating service controller.
type Controller struct {
	repo       ratingRepository
	ingester   ratingIngester
	verifier   tokenVerifier
	dimensions model.Dimensions
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a rating service controller. The ingester may be nil when
// rating events are not consumed.
func New(repo ratingRepository, ingester ratingIngester, verifier tokenVerifier, dimensions model.Dimensions, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "controller"))
	return &Controller{
		repo:       repo,
		ingester:   ingester,
		verifier:   verifier,
		dimensions: dimensions,
		logger:     logger,
		now:        time.Now,
	}
}

// PutRating creates or updates a user's rating of an item. When overall is
// nil the overall score is derived from the dimension scores. The original
// RatedAt of an existing rating is kept.
func (c *Controller) PutRating(ctx context.Context, userID model.UserID, itemID model.ItemID, overall *int, dimensions map[string]float64) (*model.Rating, error) {
	if userID == "" || itemID <= 0 {
		return nil, fmt.Errorf("%w: user id and item id are required", ErrInvalidRating)
	}
	if err := c.dimensions.Validate(dimensions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRating, err)
	}
	var score int
	if overall != nil {
		score = *overall
	} else {
		derived, ok := c.dimensions.Overall(dimensions)
		if !ok {
			return nil, fmt.Errorf("%w: an overall score or weighted dimension scores are required", ErrInvalidRating)
		}
		score = derived
	}
	if score < model.MinScore || score > model.MaxScore {
		return nil, fmt.Errorf("%w: overall score %d outside [%d, %d]", ErrInvalidRating, score, model.MinScore, model.MaxScore)
	}

	now := c.now().UTC()
	rating := &model.Rating{
		UserID:       userID,
		ItemID:       itemID,
		OverallScore: score,
		Dimensions:   dimensions,
		RatedAt:      now,
		UpdatedAt:    now,
	}
	existing, err := c.repo.Get(ctx, userID, itemID)
	switch {
	case err == nil:
		rating.RatedAt = existing.RatedAt
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	if err := c.repo.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// DeleteRating removes a user's rating of an item.
func (c *Controller) DeleteRating(ctx context.Context, userID model.UserID, itemID model.ItemID) error {
	err := c.repo.Delete(ctx, userID, itemID)
	if err != nil && errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// GetRatings returns every rating made by the given users.
func (c *Controller) GetRatings(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error) {
	return c.repo.ListByUsers(ctx, dedupe(userIDs))
}

// Compatibility computes the taste compatibility report of the given users.
// Users without ratings take part with no overlap against everyone.
func (c *Controller) Compatibility(ctx context.Context, userIDs []model.UserID) (compatibility.Report, error) {
	users := dedupe(userIDs)
	if len(users) < 2 {
		return compatibility.Report{}, nil
	}
	ratings, err := c.repo.ListByUsers(ctx, users)
	if err != nil {
		return compatibility.Report{}, err
	}
	scores := make(map[model.UserID]compatibility.Scores, len(users))
	for _, u := range users {
		scores[u] = compatibility.Scores{}
	}
	for _, r := range ratings {
		if s, ok := scores[r.UserID]; ok {
			s[r.ItemID] = r.OverallScore
		}
	}
	return compatibility.Compute(scores), nil
}

// Authorize checks that token was issued to userID.
func (c *Controller) Authorize(token string, userID model.UserID) error {
	if err := c.verifier.Authorize(token, string(userID)); err != nil {
		if errors.Is(err, auth.ErrTokenIsEmpty) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}

// StartIngestion applies rating events until the ingester stops. Events
// that fail to apply are logged and skipped.
func (c *Controller) StartIngestion(ctx context.Context) error {
	if c.ingester == nil {
		return errors.New("no rating ingester configured")
	}
	ch, err := c.ingester.Ingest(ctx)
	if err != nil {
		return err
	}
	for e := range ch {
		logger := c.logger.With(
			zap.String(logging.FieldUserID, string(e.UserID)),
			zap.Int64(logging.FieldItemID, int64(e.ItemID)),
			zap.String("provider", e.ProviderID),
		)
		if err := c.apply(ctx, e); err != nil {
			logger.Warn("Failed to apply rating event", zap.String("event", string(e.EventType)), zap.Error(err))
			continue
		}
		logger.Debug("Applied rating event", zap.String("event", string(e.EventType)))
	}
	return nil
}

func (c *Controller) apply(ctx context.Context, e model.RatingEvent) error {
	switch e.EventType {
	case model.RatingEventTypePut, "":
		_, err := c.PutRating(ctx, e.UserID, e.ItemID, e.OverallScore, e.Dimensions)
		return err
	case model.RatingEventTypeDelete:
		if err := c.DeleteRating(ctx, e.UserID, e.ItemID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown event type %q", e.EventType)
	}
}

func dedupe(userIDs []model.UserID) []model.UserID {
	seen := make(map[model.UserID]struct{}, len(userIDs))
	res := make([]model.UserID, 0, len(userIDs))
	for _, u := range userIDs {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		res = append(res, u)
	}
	return res
}
