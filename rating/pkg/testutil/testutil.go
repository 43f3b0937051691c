package testutil

import (
	"cinecircle/gen"
	"cinecircle/pkg/auth"
	"cinecircle/rating/internal/controller/rating"
	"cinecircle/rating/internal/handler/grpc"
	"cinecircle/rating/internal/repository/memory"
	"cinecircle/rating/pkg/model"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// NewTestRatingGRPCServer creates an in-memory rating gRPC server that
// verifies tokens with verifier.
func NewTestRatingGRPCServer(verifier *auth.Verifier, dimensions model.Dimensions) gen.RatingServiceServer {
	ctrl := rating.New(memory.New(zap.NewNop()), nil, verifier, dimensions, zap.NewNop())
	return grpc.New(ctrl, zap.NewNop(), tally.NoopScope)
}
