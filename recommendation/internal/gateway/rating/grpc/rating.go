package grpc

import (
	"context"

	"cinecircle/gen"
	"cinecircle/internal/grpcutil"
	"cinecircle/pkg/discovery"
	"cinecircle/pkg/logging"
	"cinecircle/rating/pkg/model"

	"go.uber.org/zap"
	"google.golang.org/grpc/credentials"
)

// Gateway defines a gRPC gateway for a rating service.
type Gateway struct {
	registry discovery.Registry
	creds    credentials.TransportCredentials
	logger   *zap.Logger
}

// New creates a new gRPC gateway for a rating service.
func New(registry discovery.Registry, creds credentials.TransportCredentials, logger *zap.Logger) *Gateway {
	logger = logger.With(
		zap.String(logging.FieldComponent, "rating-gateway"),
		zap.String(logging.FieldType, "grpc"),
	)
	return &Gateway{registry: registry, creds: creds, logger: logger}
}

// GetRatings returns every rating of the given users.
func (g *Gateway) GetRatings(ctx context.Context, userIDs []model.UserID) ([]*model.Rating, error) {
	conn, err := grpcutil.ServiceConnection(ctx, "rating", g.registry, g.creds)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	req := &gen.GetRatingsRequest{UserIds: make([]string, 0, len(userIDs))}
	for _, id := range userIDs {
		req.UserIds = append(req.UserIds, string(id))
	}
	resp, err := gen.NewRatingServiceClient(conn).GetRatings(ctx, req)
	if err != nil {
		g.logger.Warn("Failed to get ratings", zap.Int("users", len(userIDs)), zap.Error(err))
		return nil, err
	}
	res := make([]*model.Rating, 0, len(resp.Ratings))
	for _, r := range resp.Ratings {
		if r != nil {
			res = append(res, model.RatingFromProto(r))
		}
	}
	return res, nil
}
