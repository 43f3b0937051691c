package grpc

import (
	"context"
	"errors"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/internal/controller/recommendation"
	"cinecircle/recommendation/internal/dismissal"
	"cinecircle/recommendation/pkg/model"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler defines a recommendation gRPC handler.
type Handler struct {
	gen.UnimplementedRecommendationServiceServer
	ctrl                 *recommendation.Controller
	logger               *zap.Logger
	recommendMetrics     *metrics.EndpointMetrics
	dismissMetrics       *metrics.EndpointMetrics
	undoDismissMetrics   *metrics.EndpointMetrics
	putCollectiveMetrics *metrics.EndpointMetrics
}

// New creates a new recommendation gRPC handler.
func New(ctrl *recommendation.Controller, logger *zap.Logger, scope tally.Scope) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "grpc"),
	)
	return &Handler{
		ctrl:                 ctrl,
		logger:               logger,
		recommendMetrics:     metrics.NewEndpointMetrics(scope, "Recommend"),
		dismissMetrics:       metrics.NewEndpointMetrics(scope, "Dismiss"),
		undoDismissMetrics:   metrics.NewEndpointMetrics(scope, "UndoDismiss"),
		putCollectiveMetrics: metrics.NewEndpointMetrics(scope, "PutCollective"),
	}
}

// Recommend returns a page of recommendations for a collective.
func (h *Handler) Recommend(ctx context.Context, req *gen.RecommendRequest) (*gen.RecommendResponse, error) {
	h.recommendMetrics.Calls.Inc(1)
	if req == nil || req.UserId == "" {
		h.recommendMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or empty user id")
	}
	r, err := model.RequestFromProto(req)
	if err != nil {
		h.recommendMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.ctrl.Recommend(ctx, r)
	switch {
	case err == nil:
	case errors.Is(err, recommendation.ErrInvalidRequest):
		h.recommendMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, recommendation.ErrNotFound):
		h.recommendMetrics.NotFoundErrors.Inc(1)
		return nil, status.Error(codes.NotFound, err.Error())
	case errors.Is(err, recommendation.ErrNotMember):
		h.recommendMetrics.PermissionDeniedErrors.Inc(1)
		return nil, status.Error(codes.PermissionDenied, err.Error())
	default:
		h.recommendMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Failed to recommend", zap.String(logging.FieldUserID, req.UserId), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.recommendMetrics.Successes.Inc(1)
	return model.ResultToProto(res), nil
}

// Dismiss marks an item as not interesting to the user.
func (h *Handler) Dismiss(ctx context.Context, req *gen.DismissRequest) (*gen.DismissResponse, error) {
	h.dismissMetrics.Calls.Inc(1)
	if req == nil || req.UserId == "" || req.ItemId <= 0 {
		h.dismissMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or empty user id or item id")
	}
	if err := h.ctrl.Authorize(req.Token, ratingmodel.UserID(req.UserId)); err != nil {
		h.dismissMetrics.UnauthenticatedErrors.Inc(1)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	deadline, err := h.ctrl.Dismiss(ctx, ratingmodel.UserID(req.UserId), catalogmodel.ItemID(req.ItemId))
	if err != nil {
		h.dismissMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Failed to dismiss", zap.String(logging.FieldUserID, req.UserId), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.dismissMetrics.Successes.Inc(1)
	return &gen.DismissResponse{UndoDeadline: deadline}, nil
}

// UndoDismiss reverts a dismissal inside its undo window.
func (h *Handler) UndoDismiss(ctx context.Context, req *gen.UndoDismissRequest) (*gen.UndoDismissResponse, error) {
	h.undoDismissMetrics.Calls.Inc(1)
	if req == nil || req.UserId == "" || req.ItemId <= 0 {
		h.undoDismissMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or empty user id or item id")
	}
	if err := h.ctrl.Authorize(req.Token, ratingmodel.UserID(req.UserId)); err != nil {
		h.undoDismissMetrics.UnauthenticatedErrors.Inc(1)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	err := h.ctrl.UndoDismiss(ctx, ratingmodel.UserID(req.UserId), catalogmodel.ItemID(req.ItemId))
	if err != nil && errors.Is(err, dismissal.ErrUndoExpired) {
		h.undoDismissMetrics.FailedPreconditionErrors.Inc(1)
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	} else if err != nil {
		h.undoDismissMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.undoDismissMetrics.Successes.Inc(1)
	return &gen.UndoDismissResponse{}, nil
}

// PutCollective creates or replaces a collective.
func (h *Handler) PutCollective(ctx context.Context, req *gen.PutCollectiveRequest) (*gen.PutCollectiveResponse, error) {
	h.putCollectiveMetrics.Calls.Inc(1)
	if req == nil || req.Collective == nil {
		h.putCollectiveMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or collective")
	}
	err := h.ctrl.PutCollective(ctx, model.CollectiveFromProto(req.Collective))
	if err != nil && errors.Is(err, recommendation.ErrInvalidRequest) {
		h.putCollectiveMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if err != nil {
		h.putCollectiveMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.putCollectiveMetrics.Successes.Inc(1)
	return &gen.PutCollectiveResponse{}, nil
}
