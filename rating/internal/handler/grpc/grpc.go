package grpc

import (
	"context"
	"errors"

	"cinecircle/gen"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"
	"cinecircle/rating/internal/compatibility"
	"cinecircle/rating/internal/controller/rating"
	"cinecircle/rating/pkg/model"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler define a gRPC rating API handler.
type Handler struct {
	gen.UnimplementedRatingServiceServer
	ctrl                    *rating.Controller
	logger                  *zap.Logger
	putRatingMetrics        *metrics.EndpointMetrics
	deleteRatingMetrics     *metrics.EndpointMetrics
	getRatingsMetrics       *metrics.EndpointMetrics
	getCompatibilityMetrics *metrics.EndpointMetrics
}

// New creates a new rating gRPC handler.
func New(ctrl *rating.Controller, logger *zap.Logger, scope tally.Scope) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "grpc"),
	)
	return &Handler{
		ctrl:                    ctrl,
		logger:                  logger,
		putRatingMetrics:        metrics.NewEndpointMetrics(scope, "PutRating"),
		deleteRatingMetrics:     metrics.NewEndpointMetrics(scope, "DeleteRating"),
		getRatingsMetrics:       metrics.NewEndpointMetrics(scope, "GetRatings"),
		getCompatibilityMetrics: metrics.NewEndpointMetrics(scope, "GetCompatibility"),
	}
}

// PutRating creates or updates a user's rating of an item.
func (h *Handler) PutRating(ctx context.Context, req *gen.PutRatingRequest) (*gen.PutRatingResponse, error) {
	h.putRatingMetrics.Calls.Inc(1)
	if req == nil || req.UserId == "" || req.ItemId <= 0 {
		h.putRatingMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or empty user id or item id")
	}
	if err := h.ctrl.Authorize(req.Token, model.UserID(req.UserId)); err != nil {
		h.putRatingMetrics.UnauthenticatedErrors.Inc(1)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	var overall *int
	if req.OverallScore != nil {
		v := int(*req.OverallScore)
		overall = &v
	}
	r, err := h.ctrl.PutRating(ctx, model.UserID(req.UserId), model.ItemID(req.ItemId), overall, req.Dimensions)
	if err != nil && errors.Is(err, rating.ErrInvalidRating) {
		h.putRatingMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if err != nil {
		h.putRatingMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Failed to put rating", zap.String(logging.FieldUserID, req.UserId), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.putRatingMetrics.Successes.Inc(1)
	return &gen.PutRatingResponse{Rating: model.RatingToProto(r)}, nil
}

// DeleteRating removes a user's rating of an item.
func (h *Handler) DeleteRating(ctx context.Context, req *gen.DeleteRatingRequest) (*gen.DeleteRatingResponse, error) {
	h.deleteRatingMetrics.Calls.Inc(1)
	if req == nil || req.UserId == "" || req.ItemId <= 0 {
		h.deleteRatingMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or empty user id or item id")
	}
	if err := h.ctrl.Authorize(req.Token, model.UserID(req.UserId)); err != nil {
		h.deleteRatingMetrics.UnauthenticatedErrors.Inc(1)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	err := h.ctrl.DeleteRating(ctx, model.UserID(req.UserId), model.ItemID(req.ItemId))
	if err != nil && errors.Is(err, rating.ErrNotFound) {
		h.deleteRatingMetrics.NotFoundErrors.Inc(1)
		return nil, status.Error(codes.NotFound, err.Error())
	} else if err != nil {
		h.deleteRatingMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.deleteRatingMetrics.Successes.Inc(1)
	return &gen.DeleteRatingResponse{}, nil
}

// GetRatings returns every rating made by the requested users.
func (h *Handler) GetRatings(ctx context.Context, req *gen.GetRatingsRequest) (*gen.GetRatingsResponse, error) {
	h.getRatingsMetrics.Calls.Inc(1)
	if req == nil || len(req.UserIds) == 0 {
		h.getRatingsMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or no user ids")
	}
	ratings, err := h.ctrl.GetRatings(ctx, toUserIDs(req.UserIds))
	if err != nil {
		h.getRatingsMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	res := make([]*gen.Rating, 0, len(ratings))
	for _, r := range ratings {
		res = append(res, model.RatingToProto(r))
	}
	h.getRatingsMetrics.Successes.Inc(1)
	return &gen.GetRatingsResponse{Ratings: res}, nil
}

// GetCompatibility returns the taste compatibility report of the requested users.
func (h *Handler) GetCompatibility(ctx context.Context, req *gen.GetCompatibilityRequest) (*gen.GetCompatibilityResponse, error) {
	h.getCompatibilityMetrics.Calls.Inc(1)
	if req == nil {
		h.getCompatibilityMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req")
	}
	report, err := h.ctrl.Compatibility(ctx, toUserIDs(req.UserIds))
	if err != nil {
		h.getCompatibilityMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.getCompatibilityMetrics.Successes.Inc(1)
	return &gen.GetCompatibilityResponse{Members: reportToProto(report)}, nil
}

func toUserIDs(ids []string) []model.UserID {
	res := make([]model.UserID, 0, len(ids))
	for _, id := range ids {
		res = append(res, model.UserID(id))
	}
	return res
}

func reportToProto(r compatibility.Report) []*gen.MemberCompatibility {
	res := make([]*gen.MemberCompatibility, 0, len(r.Members))
	for _, m := range r.Members {
		pairings := make([]*gen.Pairing, 0, len(m.Pairings))
		for _, p := range m.Pairings {
			pairings = append(pairings, &gen.Pairing{
				UserId:      string(p.UserID),
				Similarity:  p.Similarity.Ptr(),
				SharedCount: int32(p.SharedCount),
			})
		}
		res = append(res, &gen.MemberCompatibility{
			UserId:    string(m.UserID),
			Aggregate: m.Aggregate.Ptr(),
			Pairings:  pairings,
		})
	}
	return res
}
