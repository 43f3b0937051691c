package rating

import (
	"context"
	"errors"
	"testing"
	"time"

	gen "cinecircle/gen/mock/rating/repository"
	"cinecircle/pkg/auth"
	"cinecircle/rating/internal/compatibility"
	"cinecircle/rating/internal/repository"
	"cinecircle/rating/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var testDimensions = model.Dimensions{
	{Name: "story", Min: 1, Max: 5, Step: 1, Weight: 2},
	{Name: "acting", Min: 1, Max: 5, Step: 0.5, Weight: 1},
	{Name: "rewatch", Min: 0, Max: 1, Step: 1, Weight: 0},
}

func intPtr(v int) *int { return &v }

func newController(t *testing.T) (*Controller, *gen.MockratingRepository, time.Time) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repoMock := gen.NewMockratingRepository(ctrl)
	c := New(repoMock, nil, gen.NewMocktokenVerifier(ctrl), testDimensions, zap.NewNop())
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, repoMock, now
}

func TestPutRatingValidation(t *testing.T) {
	tests := []struct {
		name       string
		userID     model.UserID
		itemID     model.ItemID
		overall    *int
		dimensions map[string]float64
	}{
		{name: "missing user", itemID: 1, overall: intPtr(50)},
		{name: "missing item", userID: "u1", overall: intPtr(50)},
		{name: "overall too high", userID: "u1", itemID: 1, overall: intPtr(101)},
		{name: "overall negative", userID: "u1", itemID: 1, overall: intPtr(-1)},
		{name: "neither overall nor dimensions", userID: "u1", itemID: 1},
		{name: "only unweighted dimensions", userID: "u1", itemID: 1, dimensions: map[string]float64{"rewatch": 1}},
		{name: "unknown dimension", userID: "u1", itemID: 1, overall: intPtr(50), dimensions: map[string]float64{"music": 3}},
		{name: "off step", userID: "u1", itemID: 1, dimensions: map[string]float64{"story": 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newController(t)
			_, err := c.PutRating(context.Background(), tt.userID, tt.itemID, tt.overall, tt.dimensions)
			assert.ErrorIs(t, err, ErrInvalidRating)
		})
	}
}

func TestPutRatingCreates(t *testing.T) {
	c, repoMock, now := newController(t)
	ctx := context.Background()
	dims := map[string]float64{"story": 5, "acting": 3}
	want := &model.Rating{UserID: "u1", ItemID: 9, OverallScore: 83, Dimensions: dims, RatedAt: now, UpdatedAt: now}

	repoMock.EXPECT().Get(ctx, model.UserID("u1"), model.ItemID(9)).Return(nil, repository.ErrNotFound)
	repoMock.EXPECT().Upsert(ctx, want).Return(nil)

	got, err := c.PutRating(ctx, "u1", 9, nil, dims)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPutRatingPreservesRatedAt(t *testing.T) {
	c, repoMock, now := newController(t)
	ctx := context.Background()
	ratedAt := now.Add(-48 * time.Hour)
	want := &model.Rating{UserID: "u1", ItemID: 9, OverallScore: 70, RatedAt: ratedAt, UpdatedAt: now}

	repoMock.EXPECT().Get(ctx, model.UserID("u1"), model.ItemID(9)).
		Return(&model.Rating{UserID: "u1", ItemID: 9, OverallScore: 20, RatedAt: ratedAt, UpdatedAt: ratedAt}, nil)
	repoMock.EXPECT().Upsert(ctx, want).Return(nil)

	got, err := c.PutRating(ctx, "u1", 9, intPtr(70), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPutRatingRepositoryError(t *testing.T) {
	c, repoMock, _ := newController(t)
	ctx := context.Background()
	repoErr := errors.New("connection refused")
	repoMock.EXPECT().Get(ctx, model.UserID("u1"), model.ItemID(9)).Return(nil, repoErr)

	_, err := c.PutRating(ctx, "u1", 9, intPtr(70), nil)
	assert.ErrorIs(t, err, repoErr)
}

func TestDeleteRating(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "success"},
		{name: "not found", repoErr: repository.ErrNotFound, wantErr: ErrNotFound},
		{name: "unexpected error", repoErr: errors.New("boom"), wantErr: errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, repoMock, _ := newController(t)
			ctx := context.Background()
			repoMock.EXPECT().Delete(ctx, model.UserID("u1"), model.ItemID(3)).Return(tt.repoErr)
			assert.Equal(t, tt.wantErr, c.DeleteRating(ctx, "u1", 3))
		})
	}
}

func TestCompatibility(t *testing.T) {
	c, repoMock, _ := newController(t)
	ctx := context.Background()
	repoMock.EXPECT().ListByUsers(ctx, []model.UserID{"a", "b", "c"}).Return([]*model.Rating{
		{UserID: "a", ItemID: 1, OverallScore: 80},
		{UserID: "a", ItemID: 2, OverallScore: 80},
		{UserID: "b", ItemID: 1, OverallScore: 80},
		{UserID: "b", ItemID: 2, OverallScore: 80},
	}, nil)

	report, err := c.Compatibility(ctx, []model.UserID{"a", "b", "a", "c"})
	require.NoError(t, err)
	require.Len(t, report.Members, 3)
	assert.Equal(t, model.UserID("a"), report.Members[0].UserID)
	v, ok := report.Members[0].Pairings[0].Similarity.Value()
	require.True(t, ok)
	assert.Equal(t, 100.0, v)
	assert.Equal(t, model.UserID("c"), report.Members[2].UserID)
	assert.Equal(t, compatibility.NoOverlap, report.Members[2].Aggregate)
}

func TestCompatibilitySingleUser(t *testing.T) {
	c, _, _ := newController(t)
	report, err := c.Compatibility(context.Background(), []model.UserID{"a", "a"})
	require.NoError(t, err)
	assert.Empty(t, report.Members)
}

func TestAuthorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := gen.NewMocktokenVerifier(ctrl)
	c := New(gen.NewMockratingRepository(ctrl), nil, verifier, nil, zap.NewNop())

	verifier.EXPECT().Authorize("good", "u1").Return(nil)
	verifier.EXPECT().Authorize("", "u1").Return(auth.ErrTokenIsEmpty)
	verifier.EXPECT().Authorize("other", "u1").Return(auth.ErrUserMismatch)

	assert.NoError(t, c.Authorize("good", "u1"))
	assert.ErrorIs(t, c.Authorize("", "u1"), auth.ErrTokenIsEmpty)
	err := c.Authorize("other", "u1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStartIngestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := gen.NewMockratingRepository(ctrl)
	ingester := gen.NewMockratingIngester(ctrl)
	c := New(repoMock, ingester, gen.NewMocktokenVerifier(ctrl), testDimensions, zap.NewNop())
	ctx := context.Background()

	ch := make(chan model.RatingEvent, 4)
	ch <- model.RatingEvent{UserID: "u1", ItemID: 1, OverallScore: intPtr(60), EventType: model.RatingEventTypePut}
	ch <- model.RatingEvent{UserID: "u1", ItemID: 2, OverallScore: intPtr(500), EventType: model.RatingEventTypePut}
	ch <- model.RatingEvent{UserID: "u1", ItemID: 3, EventType: model.RatingEventTypeDelete}
	ch <- model.RatingEvent{UserID: "u1", ItemID: 4, EventType: model.RatingEventTypeDelete}
	close(ch)

	ingester.EXPECT().Ingest(ctx).Return(ch, nil)
	repoMock.EXPECT().Get(ctx, model.UserID("u1"), model.ItemID(1)).Return(nil, repository.ErrNotFound)
	repoMock.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	repoMock.EXPECT().Delete(ctx, model.UserID("u1"), model.ItemID(3)).Return(nil)
	repoMock.EXPECT().Delete(ctx, model.UserID("u1"), model.ItemID(4)).Return(repository.ErrNotFound)

	assert.NoError(t, c.StartIngestion(ctx))
}

func TestStartIngestionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ingester := gen.NewMockratingIngester(ctrl)
	c := New(gen.NewMockratingRepository(ctrl), ingester, gen.NewMocktokenVerifier(ctrl), nil, zap.NewNop())
	ctx := context.Background()
	ingester.EXPECT().Ingest(ctx).Return(nil, errors.New("broker down"))
	assert.EqualError(t, c.StartIngestion(ctx), "broker down")
}
