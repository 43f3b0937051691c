package grpc

import (
	"context"
	"testing"

	"cinecircle/catalog/internal/controller/catalog"
	"cinecircle/catalog/internal/enrichment"
	"cinecircle/catalog/internal/repository/memory"
	"cinecircle/gen"
	"cinecircle/pkg/callgateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newHandler(t *testing.T, scope tally.Scope) *Handler {
	t.Helper()
	repo := memory.New(zap.NewNop())
	gw := callgateway.New(nil, callgateway.Config{}, scope, zap.NewNop())
	ctrl := catalog.New(repo, zap.NewNop(),
		enrichment.NewMoodPipeline(repo, gw, enrichment.Config{}, scope, zap.NewNop()),
	)
	return New(ctrl, zap.NewNop(), scope)
}

func TestPutAndListCandidates(t *testing.T) {
	ctx := context.Background()
	h := newHandler(t, tally.NoopScope)
	for _, item := range []*gen.Item{
		{Id: 1, Title: "Arrival", VoteCount: 10},
		{Id: 2, Title: "Sicario", VoteCount: 30},
		{Id: 3, Title: "Dune", VoteCount: 20},
	} {
		_, err := h.PutItem(ctx, &gen.PutItemRequest{Item: item})
		require.NoError(t, err)
	}

	resp, err := h.ListCandidates(ctx, &gen.ListCandidatesRequest{ExcludeIds: []int64{3}})
	require.NoError(t, err)
	var ids []int64
	for _, i := range resp.Items {
		ids = append(ids, i.Id)
	}
	assert.Equal(t, []int64{2, 1}, ids)

	got, err := h.GetItems(ctx, &gen.GetItemsRequest{Ids: []int64{3, 99}})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Dune", got.Items[0].Title)
}

func TestPutItemInvalid(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	h := newHandler(t, scope)
	_, err := h.PutItem(context.Background(), &gen.PutItemRequest{Item: &gen.Item{Id: 1}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	var invalid int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == "error" && c.Tags()["endpoint"] == "PutItem" && c.Tags()["error"] == "invalid_argument" {
			invalid += c.Value()
		}
	}
	assert.Equal(t, int64(1), invalid)
}

func TestRunEnrichmentErrors(t *testing.T) {
	ctx := context.Background()
	h := newHandler(t, tally.NoopScope)
	_, err := h.PutItem(ctx, &gen.PutItemRequest{Item: &gen.Item{Id: 1, Title: "Heat"}})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *gen.RunEnrichmentRequest
		want codes.Code
	}{
		{name: "nil", want: codes.InvalidArgument},
		{name: "bad kind", req: &gen.RunEnrichmentRequest{Kind: "colour"}, want: codes.InvalidArgument},
		{name: "no pipeline", req: &gen.RunEnrichmentRequest{Kind: "advisory"}, want: codes.InvalidArgument},
		{name: "not configured", req: &gen.RunEnrichmentRequest{Kind: "mood", Limit: 5}, want: codes.FailedPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.RunEnrichment(ctx, tt.req)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}
