package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/auth"
	"cinecircle/pkg/logging"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/internal/repository"
	"cinecircle/recommendation/internal/scorer"
	"cinecircle/recommendation/pkg/model"

	"go.uber.org/zap"
)

// DefaultCandidateLimit bounds the candidate pool fetched per request.
const DefaultCandidateLimit = 500

var (
	// ErrNotFound is returned when a collective does not exist.
	ErrNotFound = errors.New("collective not found")
	// ErrNotMember is returned when the requesting user is not in the collective.
	ErrNotMember = errors.New("user is not a member of the collective")
	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized is returned when a token does not belong to the user.
	ErrUnauthorized = errors.New("unauthorized")
)

type catalogGateway interface {
	ListCandidates(ctx context.Context, exclude []catalogmodel.ItemID, limit int) ([]*catalogmodel.CatalogItem, error)
	GetItems(ctx context.Context, ids []catalogmodel.ItemID) (map[catalogmodel.ItemID]*catalogmodel.CatalogItem, error)
}

type ratingGateway interface {
	GetRatings(ctx context.Context, userIDs []ratingmodel.UserID) ([]*ratingmodel.Rating, error)
}

type collectiveRepository interface {
	GetCollective(ctx context.Context, id model.CollectiveID) (*model.Collective, error)
	PutCollective(ctx context.Context, c *model.Collective) error
}

type dismisser interface {
	Dismiss(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) (time.Time, error)
	Undo(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error
	Dismissed(ctx context.Context, userID ratingmodel.UserID) ([]catalogmodel.ItemID, error)
}

type tokenVerifier interface {
	Authorize(token string, userID string) error
}

// Controller defines a recommendation service controller.
type Controller struct {
	catalog        catalogGateway
	rating         ratingGateway
	collectives    collectiveRepository
	dismissals     dismisser
	verifier       tokenVerifier
	scorer         *scorer.Scorer
	candidateLimit int
	logger         *zap.Logger
}

// New creates a recommendation service controller. A non-positive
// candidate limit takes the default.
func New(catalog catalogGateway, rating ratingGateway, collectives collectiveRepository, dismissals dismisser,
	verifier tokenVerifier, s *scorer.Scorer, candidateLimit int, logger *zap.Logger) *Controller {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	logger = logger.With(zap.String(logging.FieldComponent, "controller"))
	return &Controller{
		catalog:        catalog,
		rating:         rating,
		collectives:    collectives,
		dismissals:     dismissals,
		verifier:       verifier,
		scorer:         s,
		candidateLimit: candidateLimit,
		logger:         logger,
	}
}

// Recommend returns one page of recommendations for the requesting user.
// Without a collective id the user's own ratings form the taste profile.
func (c *Controller) Recommend(ctx context.Context, req *model.Request) (*model.Result, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	col, err := c.collective(ctx, req)
	if err != nil {
		return nil, err
	}
	ratings, err := c.rating.GetRatings(ctx, col.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	rated := ratedItems(ratings)
	items, err := c.catalog.GetItems(ctx, rated)
	if err != nil {
		return nil, fmt.Errorf("get rated items: %w", err)
	}
	profile := scorer.BuildProfile(col.Members, ratings, items)

	dismissed, err := c.dismissals.Dismissed(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("list dismissals: %w", err)
	}
	exclude := make([]catalogmodel.ItemID, 0, len(req.ExcludeIDs)+len(dismissed))
	exclude = append(append(exclude, req.ExcludeIDs...), dismissed...)
	candidates, err := c.catalog.ListCandidates(ctx, exclude, c.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	res := c.scorer.Recommend(ctx, req, profile, candidates, dismissed)
	c.logger.Debug("Recommendations ranked",
		zap.String(logging.FieldUserID, string(req.UserID)),
		zap.String("collective", string(req.CollectiveID)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(res.Recommendations)),
		zap.Bool("empty", res.Empty),
	)
	return res, nil
}

// collective resolves the request's collective. A solo request is a
// collective of one.
func (c *Controller) collective(ctx context.Context, req *model.Request) (*model.Collective, error) {
	if req.CollectiveID == "" {
		return &model.Collective{Members: []model.Member{{UserID: req.UserID}}}, nil
	}
	col, err := c.collectives.GetCollective(ctx, req.CollectiveID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !col.HasMember(req.UserID) {
		return nil, ErrNotMember
	}
	return col, nil
}

func ratedItems(ratings []*ratingmodel.Rating) []catalogmodel.ItemID {
	seen := map[catalogmodel.ItemID]bool{}
	var res []catalogmodel.ItemID
	for _, r := range ratings {
		id := catalogmodel.ItemID(r.ItemID)
		if !seen[id] {
			seen[id] = true
			res = append(res, id)
		}
	}
	return res
}

// Dismiss marks an item as not interesting to the user and returns the
// deadline for undoing it.
func (c *Controller) Dismiss(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) (time.Time, error) {
	if userID == "" || itemID <= 0 {
		return time.Time{}, fmt.Errorf("%w: user id and item id are required", ErrInvalidRequest)
	}
	return c.dismissals.Dismiss(ctx, userID, itemID)
}

// UndoDismiss removes a dismissal whose undo window is still open.
func (c *Controller) UndoDismiss(ctx context.Context, userID ratingmodel.UserID, itemID catalogmodel.ItemID) error {
	if userID == "" || itemID <= 0 {
		return fmt.Errorf("%w: user id and item id are required", ErrInvalidRequest)
	}
	return c.dismissals.Undo(ctx, userID, itemID)
}

// PutCollective creates or replaces a collective. Members must be unique.
func (c *Controller) PutCollective(ctx context.Context, col *model.Collective) error {
	if col.ID == "" || len(col.Members) == 0 {
		return fmt.Errorf("%w: collective id and members are required", ErrInvalidRequest)
	}
	seen := map[ratingmodel.UserID]bool{}
	for _, m := range col.Members {
		if m.UserID == "" || seen[m.UserID] {
			return fmt.Errorf("%w: member ids must be non-empty and unique", ErrInvalidRequest)
		}
		seen[m.UserID] = true
	}
	return c.collectives.PutCollective(ctx, col)
}

// Authorize checks that token was issued to userID.
func (c *Controller) Authorize(token string, userID ratingmodel.UserID) error {
	if err := c.verifier.Authorize(token, string(userID)); err != nil {
		if errors.Is(err, auth.ErrTokenIsEmpty) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}
