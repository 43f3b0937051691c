package memory

import (
	"context"
	"testing"
	"time"

	"cinecircle/catalog/internal/repository"
	"cinecircle/catalog/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(t *testing.T, r *Repository, items ...*model.CatalogItem) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, r.Put(context.Background(), item))
	}
}

func ids(items []*model.CatalogItem) []model.ItemID {
	var res []model.ItemID
	for _, i := range items {
		res = append(res, i.ID)
	}
	return res
}

func fullScores(v float64) model.MoodScores {
	s := model.MoodScores{}
	for _, m := range model.Moods {
		s[m] = v
	}
	return s
}

func TestListUnenrichedOrder(t *testing.T) {
	ctx := context.Background()
	r := New(zap.NewNop())
	seed(t, r,
		&model.CatalogItem{ID: 3, VoteCount: 100},
		&model.CatalogItem{ID: 1, VoteCount: 500},
		&model.CatalogItem{ID: 2, VoteCount: 100},
		&model.CatalogItem{ID: 4, VoteCount: 50},
	)

	got, err := r.ListUnenriched(ctx, model.KindMood, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.ItemID{1, 2, 3}, ids(got))

	require.NoError(t, r.SaveMoodScores(ctx, 1, fullScores(0.5), time.Now()))
	got, err = r.ListUnenriched(ctx, model.KindMood, 10)
	require.NoError(t, err)
	assert.Equal(t, []model.ItemID{2, 3, 4}, ids(got))

	got, err = r.ListUnenriched(ctx, model.KindAdvisory, 10)
	require.NoError(t, err)
	assert.Equal(t, []model.ItemID{1, 2, 3, 4}, ids(got))
}

func TestSaveMoodScoresRejectsPartialSet(t *testing.T) {
	ctx := context.Background()
	r := New(zap.NewNop())
	seed(t, r, &model.CatalogItem{ID: 1})

	err := r.SaveMoodScores(ctx, 1, model.MoodScores{model.MoodFun: 0.4}, time.Now())
	assert.ErrorIs(t, err, repository.ErrIncompleteMoodScores)

	item, err := r.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, item.MoodScoredAt)
	assert.Empty(t, item.MoodScores)

	err = r.SaveMoodScores(ctx, 42, fullScores(0.1), time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPutRejectsInconsistentMoodScores(t *testing.T) {
	now := time.Now()
	outOfRange := fullScores(0.5)
	outOfRange[model.MoodFun] = 7.5
	tests := []struct {
		name    string
		item    *model.CatalogItem
		wantErr error
	}{
		{name: "unscored", item: &model.CatalogItem{ID: 1}},
		{name: "scored", item: &model.CatalogItem{ID: 1, MoodScores: fullScores(0), MoodScoredAt: &now}},
		{
			name:    "partial without timestamp",
			item:    &model.CatalogItem{ID: 1, MoodScores: model.MoodScores{model.MoodFun: 7.5, model.MoodScary: 0.2}},
			wantErr: repository.ErrIncompleteMoodScores,
		},
		{
			name:    "partial with timestamp",
			item:    &model.CatalogItem{ID: 1, MoodScores: model.MoodScores{model.MoodFun: 0.5}, MoodScoredAt: &now},
			wantErr: repository.ErrIncompleteMoodScores,
		},
		{
			name:    "complete without timestamp",
			item:    &model.CatalogItem{ID: 1, MoodScores: fullScores(0.5)},
			wantErr: repository.ErrIncompleteMoodScores,
		},
		{
			name:    "out of range",
			item:    &model.CatalogItem{ID: 1, MoodScores: outOfRange, MoodScoredAt: &now},
			wantErr: repository.ErrIncompleteMoodScores,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := New(zap.NewNop())
			err := r.Put(ctx, tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = r.Get(ctx, tt.item.ID)
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestSaveAdvisory(t *testing.T) {
	ctx := context.Background()
	r := New(zap.NewNop())
	seed(t, r, &model.CatalogItem{ID: 7})
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, r.SaveAdvisory(ctx, 7, &model.AdvisoryEnrichment{
		Pairings:        model.Pairings{Cocktail: model.Suggestion{Name: "Negroni"}},
		ParentalSummary: "Mild peril.",
		Advisory:        model.Advisory{model.CategoryFrightening: model.SeverityMild},
	}, at))

	item, err := r.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, item.LLMEnrichedAt)
	assert.Equal(t, at, *item.LLMEnrichedAt)
	assert.Equal(t, "Negroni", item.Pairings.Cocktail.Name)
	assert.Equal(t, model.SeverityMild, item.Advisory[model.CategoryFrightening])
}

func TestListCandidatesExcludes(t *testing.T) {
	r := New(zap.NewNop())
	seed(t, r,
		&model.CatalogItem{ID: 1, VoteCount: 3},
		&model.CatalogItem{ID: 2, VoteCount: 2},
		&model.CatalogItem{ID: 3, VoteCount: 1},
	)
	got, err := r.ListCandidates(context.Background(), []model.ItemID{2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []model.ItemID{1, 3}, ids(got))
}
