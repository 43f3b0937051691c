package grpc

import (
	"context"

	"cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	"cinecircle/internal/grpcutil"
	"cinecircle/pkg/discovery"
	"cinecircle/pkg/logging"

	"go.uber.org/zap"
	"google.golang.org/grpc/credentials"
)

// Gateway defines a gRPC gateway for a catalog service.
type Gateway struct {
	registry discovery.Registry
	creds    credentials.TransportCredentials
	logger   *zap.Logger
}

// New creates a new gRPC gateway for a catalog service.
func New(registry discovery.Registry, creds credentials.TransportCredentials, logger *zap.Logger) *Gateway {
	logger = logger.With(
		zap.String(logging.FieldComponent, "catalog-gateway"),
		zap.String(logging.FieldType, "grpc"),
	)
	return &Gateway{registry: registry, creds: creds, logger: logger}
}

// ListCandidates returns up to limit catalog items not in exclude.
func (g *Gateway) ListCandidates(ctx context.Context, exclude []model.ItemID, limit int) ([]*model.CatalogItem, error) {
	conn, err := grpcutil.ServiceConnection(ctx, "catalog", g.registry, g.creds)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	req := &gen.ListCandidatesRequest{ExcludeIds: make([]int64, 0, len(exclude)), Limit: int32(limit)}
	for _, id := range exclude {
		req.ExcludeIds = append(req.ExcludeIds, int64(id))
	}
	resp, err := gen.NewCatalogServiceClient(conn).ListCandidates(ctx, req)
	if err != nil {
		g.logger.Warn("Failed to list candidates", zap.Error(err))
		return nil, err
	}
	return itemsFromProto(resp.Items), nil
}

// GetItems returns the catalog items with the given ids keyed by id.
// Unknown ids are absent from the result.
func (g *Gateway) GetItems(ctx context.Context, ids []model.ItemID) (map[model.ItemID]*model.CatalogItem, error) {
	res := map[model.ItemID]*model.CatalogItem{}
	if len(ids) == 0 {
		return res, nil
	}
	conn, err := grpcutil.ServiceConnection(ctx, "catalog", g.registry, g.creds)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	req := &gen.GetItemsRequest{Ids: make([]int64, 0, len(ids))}
	for _, id := range ids {
		req.Ids = append(req.Ids, int64(id))
	}
	resp, err := gen.NewCatalogServiceClient(conn).GetItems(ctx, req)
	if err != nil {
		g.logger.Warn("Failed to get items", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}
	for _, item := range itemsFromProto(resp.Items) {
		res[item.ID] = item
	}
	return res, nil
}

func itemsFromProto(items []*gen.Item) []*model.CatalogItem {
	res := make([]*model.CatalogItem, 0, len(items))
	for _, i := range items {
		if i != nil {
			res = append(res, model.ItemFromProto(i))
		}
	}
	return res
}
