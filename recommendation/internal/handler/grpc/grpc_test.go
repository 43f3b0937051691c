package grpc

import (
	"context"
	"testing"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	mock "cinecircle/gen/mock/recommendation/repository"
	"cinecircle/pkg/auth"
	"cinecircle/recommendation/internal/controller/recommendation"
	"cinecircle/recommendation/internal/dismissal"
	"cinecircle/recommendation/internal/repository/memory"
	"cinecircle/recommendation/internal/scorer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v6"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fixture struct {
	h        *Handler
	verifier *auth.Verifier
	catalog  *mock.MockcatalogGateway
	rating   *mock.MockratingGateway
}

func newFixture(t *testing.T, scope tally.Scope) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		verifier: auth.NewVerifier(func() []byte { return []byte("test-secret") }),
		catalog:  mock.NewMockcatalogGateway(ctrl),
		rating:   mock.NewMockratingGateway(ctrl),
	}
	repo := memory.New(zap.NewNop())
	c := recommendation.New(f.catalog, f.rating, repo, dismissal.New(repo, time.Minute, zap.NewNop()), f.verifier,
		scorer.New(scorer.Config{}, nil, zap.NewNop()), 0, zap.NewNop())
	f.h = New(c, zap.NewNop(), scope)
	return f
}

func (f fixture) token(t *testing.T, user string) string {
	t.Helper()
	tok, err := f.verifier.Issue(user, time.Hour)
	require.NoError(t, err)
	return tok
}

func counter(scope tally.TestScope, endpoint, errTag string) int64 {
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == "error" && c.Tags()["error"] == errTag && c.Tags()["endpoint"] == endpoint {
			return c.Value()
		}
	}
	return 0
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, tally.NoopScope)
	_, err := f.h.PutCollective(ctx, &gen.PutCollectiveRequest{Collective: &gen.Collective{
		Id: "friday", Name: "Friday club", Members: []*gen.Member{{UserId: "ann"}, {UserId: "ben"}},
	}})
	require.NoError(t, err)

	f.rating.EXPECT().GetRatings(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.catalog.EXPECT().GetItems(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.catalog.EXPECT().ListCandidates(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*catalogmodel.CatalogItem{
		{ID: 1, Title: "Paddington 2", ContentRating: "PG"},
		{ID: 2, Title: "Heat", ContentRating: "R"},
	}, nil)

	resp, err := f.h.Recommend(ctx, &gen.RecommendRequest{CollectiveId: "friday", UserId: "ann", Audience: "family"})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, int64(1), resp.Recommendations[0].Item.Id)
	assert.Equal(t, []int64{1}, resp.ExcludeIds)
	assert.Equal(t, int32(2), resp.NextPage)
}

func TestRecommendErrors(t *testing.T) {
	ctx := context.Background()
	scope := tally.NewTestScope("", nil)
	f := newFixture(t, scope)
	_, err := f.h.PutCollective(ctx, &gen.PutCollectiveRequest{Collective: &gen.Collective{
		Id: "friday", Members: []*gen.Member{{UserId: "ann"}},
	}})
	require.NoError(t, err)

	_, err = f.h.Recommend(ctx, &gen.RecommendRequest{CollectiveId: "friday"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = f.h.Recommend(ctx, &gen.RecommendRequest{UserId: "ann", Moods: []string{"sleepy"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = f.h.Recommend(ctx, &gen.RecommendRequest{CollectiveId: "nope", UserId: "ann"})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = f.h.Recommend(ctx, &gen.RecommendRequest{CollectiveId: "friday", UserId: "eve"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	assert.Equal(t, int64(2), counter(scope, "Recommend", "invalid_argument"))
	assert.Equal(t, int64(1), counter(scope, "Recommend", "not_found"))
	assert.Equal(t, int64(1), counter(scope, "Recommend", "permission_denied"))
}

func TestDismissUndo(t *testing.T) {
	ctx := context.Background()
	scope := tally.NewTestScope("", nil)
	f := newFixture(t, scope)
	tok := f.token(t, "ann")

	_, err := f.h.Dismiss(ctx, &gen.DismissRequest{UserId: "ann", ItemId: 3, Token: f.token(t, "ben")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	resp, err := f.h.Dismiss(ctx, &gen.DismissRequest{UserId: "ann", ItemId: 3, Token: tok})
	require.NoError(t, err)
	assert.True(t, resp.UndoDeadline.After(time.Now()))

	_, err = f.h.UndoDismiss(ctx, &gen.UndoDismissRequest{UserId: "ann", ItemId: 3, Token: tok})
	require.NoError(t, err)
	_, err = f.h.UndoDismiss(ctx, &gen.UndoDismissRequest{UserId: "ann", ItemId: 3, Token: tok})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	assert.Equal(t, int64(1), counter(scope, "Dismiss", "unauthenticated"))
	assert.Equal(t, int64(1), counter(scope, "UndoDismiss", "failed_precondition"))
}

func TestPutCollectiveInvalid(t *testing.T) {
	f := newFixture(t, tally.NoopScope)
	_, err := f.h.PutCollective(context.Background(), &gen.PutCollectiveRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = f.h.PutCollective(context.Background(), &gen.PutCollectiveRequest{Collective: &gen.Collective{Id: "x"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
