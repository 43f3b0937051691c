package grpc

import (
	"context"
	"errors"

	"cinecircle/catalog/internal/controller/catalog"
	"cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/logging"
	"cinecircle/pkg/metrics"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxCandidates = 1000

// Handler defines a catalog gRPC handler.
type Handler struct {
	gen.UnimplementedCatalogServiceServer
	ctrl                  *catalog.Controller
	logger                *zap.Logger
	listCandidatesMetrics *metrics.EndpointMetrics
	getItemsMetrics       *metrics.EndpointMetrics
	putItemMetrics        *metrics.EndpointMetrics
	runEnrichmentMetrics  *metrics.EndpointMetrics
}

// New creates a new catalog gRPC handler.
func New(ctrl *catalog.Controller, logger *zap.Logger, scope tally.Scope) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "grpc"),
	)
	return &Handler{
		ctrl:                  ctrl,
		logger:                logger,
		listCandidatesMetrics: metrics.NewEndpointMetrics(scope, "ListCandidates"),
		getItemsMetrics:       metrics.NewEndpointMetrics(scope, "GetItems"),
		putItemMetrics:        metrics.NewEndpointMetrics(scope, "PutItem"),
		runEnrichmentMetrics:  metrics.NewEndpointMetrics(scope, "RunEnrichment"),
	}
}

// ListCandidates returns recommendation candidates, most popular first.
func (h *Handler) ListCandidates(ctx context.Context, req *gen.ListCandidatesRequest) (*gen.ListCandidatesResponse, error) {
	h.listCandidatesMetrics.Calls.Inc(1)
	if req == nil || req.Limit < 0 || req.Limit > maxCandidates {
		h.listCandidatesMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or limit out of range")
	}
	limit := int(req.Limit)
	if limit == 0 {
		limit = maxCandidates
	}
	items, err := h.ctrl.ListCandidates(ctx, toItemIDs(req.ExcludeIds), limit)
	if err != nil {
		h.listCandidatesMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.listCandidatesMetrics.Successes.Inc(1)
	return &gen.ListCandidatesResponse{Items: toProto(items)}, nil
}

// GetItems returns the requested items. Unknown ids are omitted.
func (h *Handler) GetItems(ctx context.Context, req *gen.GetItemsRequest) (*gen.GetItemsResponse, error) {
	h.getItemsMetrics.Calls.Inc(1)
	if req == nil {
		h.getItemsMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req")
	}
	items, err := h.ctrl.GetItems(ctx, toItemIDs(req.Ids))
	if err != nil {
		h.getItemsMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.getItemsMetrics.Successes.Inc(1)
	return &gen.GetItemsResponse{Items: toProto(items)}, nil
}

// PutItem stores catalog item metadata.
func (h *Handler) PutItem(ctx context.Context, req *gen.PutItemRequest) (*gen.PutItemResponse, error) {
	h.putItemMetrics.Calls.Inc(1)
	if req == nil || req.Item == nil {
		h.putItemMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or item")
	}
	err := h.ctrl.Put(ctx, model.ItemFromProto(req.Item))
	if err != nil && errors.Is(err, catalog.ErrInvalidItem) {
		h.putItemMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if err != nil {
		h.putItemMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.putItemMetrics.Successes.Inc(1)
	return &gen.PutItemResponse{}, nil
}

// RunEnrichment runs one enrichment pass and returns its summary.
func (h *Handler) RunEnrichment(ctx context.Context, req *gen.RunEnrichmentRequest) (*gen.RunEnrichmentResponse, error) {
	h.runEnrichmentMetrics.Calls.Inc(1)
	if req == nil || req.Limit < 0 || req.BatchSize < 0 {
		h.runEnrichmentMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, "nil req or negative limit/batch size")
	}
	kind, err := model.ParseEnrichmentKind(req.Kind)
	if err != nil {
		h.runEnrichmentMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s, err := h.ctrl.RunEnrichment(ctx, kind, int(req.Limit), int(req.BatchSize))
	var cfgErr *callgateway.ConfigurationError
	switch {
	case errors.Is(err, catalog.ErrUnknownKind):
		h.runEnrichmentMetrics.InvalidArgumentErrors.Inc(1)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &cfgErr):
		h.runEnrichmentMetrics.InternalErrors.Inc(1)
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	case err != nil:
		h.runEnrichmentMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Enrichment run failed", zap.String(logging.FieldKind, string(kind)), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	h.runEnrichmentMetrics.Successes.Inc(1)
	return &gen.RunEnrichmentResponse{
		Enriched:  int32(s.Enriched),
		Errored:   int32(s.Errored),
		Skipped:   int32(s.Skipped),
		Attempted: int32(s.Attempted),
	}, nil
}

func toItemIDs(ids []int64) []model.ItemID {
	res := make([]model.ItemID, len(ids))
	for i, id := range ids {
		res[i] = model.ItemID(id)
	}
	return res
}

func toProto(items []*model.CatalogItem) []*gen.Item {
	res := make([]*gen.Item, 0, len(items))
	for _, i := range items {
		res = append(res, model.ItemToProto(i))
	}
	return res
}
