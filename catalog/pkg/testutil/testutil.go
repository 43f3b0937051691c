package testutil

import (
	"cinecircle/catalog/internal/controller/catalog"
	"cinecircle/catalog/internal/handler/grpc"
	"cinecircle/catalog/internal/repository/memory"
	"cinecircle/gen"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// NewTestCatalogGRPCServer creates an in-memory catalog gRPC server
// without enrichment pipelines.
func NewTestCatalogGRPCServer() gen.CatalogServiceServer {
	ctrl := catalog.New(memory.New(zap.NewNop()), zap.NewNop())
	return grpc.New(ctrl, zap.NewNop(), tally.NoopScope)
}
