package grpc

import (
	"context"
	"testing"
	"time"

	"cinecircle/gen"
	"cinecircle/pkg/auth"
	"cinecircle/rating/internal/controller/rating"
	"cinecircle/rating/internal/repository/memory"
	"cinecircle/rating/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newHandler(t *testing.T, scope tally.Scope) (*Handler, *auth.Verifier) {
	t.Helper()
	verifier := auth.NewVerifier(func() []byte { return []byte("test-secret") })
	dims := model.Dimensions{{Name: "story", Min: 0, Max: 10, Step: 1, Weight: 1}}
	ctrl := rating.New(memory.New(zap.NewNop()), nil, verifier, dims, zap.NewNop())
	return New(ctrl, zap.NewNop(), scope), verifier
}

func token(t *testing.T, v *auth.Verifier, user string) string {
	t.Helper()
	tok, err := v.Issue(user, time.Hour)
	require.NoError(t, err)
	return tok
}

func score(v int32) *int32 { return &v }

func TestPutRatingAuth(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	h, v := newHandler(t, scope)
	ctx := context.Background()

	_, err := h.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 1, OverallScore: score(50), Token: token(t, v, "ben")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 1, OverallScore: score(50)})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	resp, err := h.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 1, Dimensions: map[string]float64{"story": 7}, Token: token(t, v, "ann")})
	require.NoError(t, err)
	assert.Equal(t, int32(70), resp.Rating.OverallScore)

	var unauth int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == "error" && c.Tags()["error"] == "unauthenticated" && c.Tags()["endpoint"] == "PutRating" {
			unauth = c.Value()
		}
	}
	assert.Equal(t, int64(2), unauth)
}

func TestPutRatingInvalid(t *testing.T) {
	h, v := newHandler(t, tally.NoopScope)
	ctx := context.Background()
	_, err := h.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 1, OverallScore: score(150), Token: token(t, v, "ann")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.PutRating(ctx, &gen.PutRatingRequest{ItemId: 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDeleteRating(t *testing.T) {
	h, v := newHandler(t, tally.NoopScope)
	ctx := context.Background()
	tok := token(t, v, "ann")
	_, err := h.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 1, OverallScore: score(50), Token: tok})
	require.NoError(t, err)

	_, err = h.DeleteRating(ctx, &gen.DeleteRatingRequest{UserId: "ann", ItemId: 1, Token: tok})
	require.NoError(t, err)
	_, err = h.DeleteRating(ctx, &gen.DeleteRatingRequest{UserId: "ann", ItemId: 1, Token: tok})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetCompatibility(t *testing.T) {
	h, v := newHandler(t, tally.NoopScope)
	ctx := context.Background()
	for _, r := range []struct {
		user  string
		item  int64
		score int32
	}{
		{"ann", 1, 90}, {"ann", 2, 10}, {"ann", 3, 50},
		{"ben", 1, 50}, {"ben", 2, 90}, {"ben", 3, 10},
	} {
		_, err := h.PutRating(ctx, &gen.PutRatingRequest{UserId: r.user, ItemId: r.item, OverallScore: score(r.score), Token: token(t, v, r.user)})
		require.NoError(t, err)
	}

	ratings, err := h.GetRatings(ctx, &gen.GetRatingsRequest{UserIds: []string{"ann"}})
	require.NoError(t, err)
	assert.Len(t, ratings.Ratings, 3)

	resp, err := h.GetCompatibility(ctx, &gen.GetCompatibilityRequest{UserIds: []string{"ann", "ben", "cat"}})
	require.NoError(t, err)
	require.Len(t, resp.Members, 3)
	require.NotNil(t, resp.Members[0].Aggregate)
	assert.InDelta(t, 46.67, *resp.Members[0].Aggregate, 0.01)
	assert.Equal(t, "cat", resp.Members[2].UserId)
	assert.Nil(t, resp.Members[2].Aggregate)
	for _, p := range resp.Members[2].Pairings {
		assert.Nil(t, p.Similarity)
		assert.Zero(t, p.SharedCount)
	}
}
