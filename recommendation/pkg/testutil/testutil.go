package testutil

import (
	"cinecircle/gen"
	"cinecircle/pkg/auth"
	"cinecircle/pkg/discovery"
	"cinecircle/recommendation/internal/controller/recommendation"
	"cinecircle/recommendation/internal/dismissal"
	cataloggateway "cinecircle/recommendation/internal/gateway/catalog/grpc"
	ratinggateway "cinecircle/recommendation/internal/gateway/rating/grpc"
	"cinecircle/recommendation/internal/handler/grpc"
	"cinecircle/recommendation/internal/repository/memory"
	"cinecircle/recommendation/internal/scorer"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/credentials/insecure"
)

// NewTestRecommendationGRPCServer creates an in-memory recommendation gRPC
// server that reaches catalog and rating through registry. Reasoning is
// always built locally.
func NewTestRecommendationGRPCServer(registry discovery.Registry, verifier *auth.Verifier) gen.RecommendationServiceServer {
	logger := zap.NewNop()
	c := cataloggateway.New(registry, insecure.NewCredentials(), logger)
	r := ratinggateway.New(registry, insecure.NewCredentials(), logger)
	repo := memory.New(logger)
	ctrl := recommendation.New(c, r, repo, dismissal.New(repo, 0, logger), verifier,
		scorer.New(scorer.Config{}, nil, logger), 0, logger)
	return grpc.New(ctrl, logger, tally.NoopScope)
}
