package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/callgateway"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func moods(fun, funny, intense, emotional, mindless, acclaimed, scary float64) catalogmodel.MoodScores {
	return catalogmodel.MoodScores{
		catalogmodel.MoodFun:       fun,
		catalogmodel.MoodFunny:     funny,
		catalogmodel.MoodIntense:   intense,
		catalogmodel.MoodEmotional: emotional,
		catalogmodel.MoodMindless:  mindless,
		catalogmodel.MoodAcclaimed: acclaimed,
		catalogmodel.MoodScary:     scary,
	}
}

func item(id int64, title string) *catalogmodel.CatalogItem {
	return &catalogmodel.CatalogItem{ID: catalogmodel.ItemID(id), Title: title, VoteCount: 100 - id, VoteAverage: 7}
}

func emptyProfile() *Profile {
	return BuildProfile([]model.Member{{UserID: "ann", DisplayName: "Ann"}}, nil, nil)
}

func ids(res *model.Result) []catalogmodel.ItemID {
	var out []catalogmodel.ItemID
	for _, r := range res.Recommendations {
		out = append(out, r.Item.ID)
	}
	return out
}

func TestMoodMonotonicity(t *testing.T) {
	w := DefaultWeights
	p := emptyProfile()
	selected := []catalogmodel.Mood{catalogmodel.MoodFunny, catalogmodel.MoodFun}
	base := moods(0.2, 0.1, 0.9, 0.4, 0.7, 0.8, 0.3)

	for _, m := range selected {
		prev := -1
		for v := 0.0; v <= 1.0001; v += 0.05 {
			it := item(1, "x")
			it.MoodScores = catalogmodel.MoodScores{}
			for k, s := range base {
				it.MoodScores[k] = s
			}
			it.MoodScores[m] = v
			got := w.groupFit(it, selected, p)
			assert.GreaterOrEqual(t, got, prev, "raising %s to %.2f lowered the score", m, v)
			prev = got
		}
	}
}

func TestMoodSpecificity(t *testing.T) {
	w := DefaultWeights
	p := emptyProfile()
	selected := []catalogmodel.Mood{catalogmodel.MoodFunny}

	specific := item(1, "Specific")
	specific.MoodScores = moods(0.1, 0.8, 0.1, 0.1, 0.1, 0.1, 0.1)
	generic := item(2, "Everything")
	generic.MoodScores = moods(0.9, 0.8, 0.9, 0.9, 0.9, 0.9, 0.9)
	unscored := item(3, "Unscored")

	assert.Greater(t, w.moodFit(specific, selected, p), w.moodFit(generic, selected, p))
	assert.Equal(t, 0.0, w.moodFit(unscored, selected, p))
	assert.Equal(t, neutral, w.moodFit(unscored, nil, p))
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name string
		req  model.Request
		item catalogmodel.CatalogItem
		want bool
	}{
		{name: "runtime over ceiling", req: model.Request{MaxRuntimeMinutes: 100}, item: catalogmodel.CatalogItem{RuntimeMinutes: 130}},
		{name: "unknown runtime passes", req: model.Request{MaxRuntimeMinutes: 100}, item: catalogmodel.CatalogItem{}, want: true},
		{name: "certification over limit", req: model.Request{ContentRatingLimit: "PG-13"}, item: catalogmodel.CatalogItem{ContentRating: "R"}},
		{name: "tv certification mapped", req: model.Request{ContentRatingLimit: "PG-13"}, item: catalogmodel.CatalogItem{ContentRating: "TV-14"}, want: true},
		{name: "unrated passes", req: model.Request{ContentRatingLimit: "G"}, item: catalogmodel.CatalogItem{ContentRating: "NR"}, want: true},
		{name: "before year floor", req: model.Request{MinYear: 2000}, item: catalogmodel.CatalogItem{Year: 1999}},
		{name: "provider case-insensitive", req: model.Request{Providers: []string{"Netflix"}}, item: catalogmodel.CatalogItem{Providers: []string{"hulu", " netflix"}}, want: true},
		{name: "provider missing", req: model.Request{Providers: []string{"Netflix"}}, item: catalogmodel.CatalogItem{Providers: []string{"hulu"}}},
		{name: "excluded", req: model.Request{ExcludeIDs: []catalogmodel.ItemID{7}}, item: catalogmodel.CatalogItem{ID: 7}},
		{
			name: "severity above ceiling",
			req:  model.Request{Ceilings: model.Ceilings{catalogmodel.CategoryViolence: catalogmodel.SeverityModerate}},
			item: catalogmodel.CatalogItem{Advisory: catalogmodel.Advisory{catalogmodel.CategoryViolence: catalogmodel.SeveritySevere}},
		},
		{
			name: "severity at ceiling",
			req:  model.Request{Ceilings: model.Ceilings{catalogmodel.CategoryViolence: catalogmodel.SeverityModerate}},
			item: catalogmodel.CatalogItem{Advisory: catalogmodel.Advisory{catalogmodel.CategoryViolence: catalogmodel.SeverityModerate}},
			want: true,
		},
		{
			name: "missing advisory passes",
			req:  model.Request{Ceilings: model.Ceilings{catalogmodel.CategoryViolence: catalogmodel.SeverityNone}},
			item: catalogmodel.CatalogItem{Advisory: catalogmodel.Advisory{catalogmodel.CategoryProfanity: catalogmodel.SeveritySevere}},
			want: true,
		},
		{name: "family certification default", req: model.Request{Audience: model.AudienceFamily}, item: catalogmodel.CatalogItem{ContentRating: "PG-13"}},
		{
			name: "family sex nudity default",
			req:  model.Request{Audience: model.AudienceFamily},
			item: catalogmodel.CatalogItem{Advisory: catalogmodel.Advisory{catalogmodel.CategorySexNudity: catalogmodel.SeverityModerate}},
		},
		{
			name: "family frightening default",
			req:  model.Request{Audience: model.AudienceFamily},
			item: catalogmodel.CatalogItem{ContentRating: "PG", Advisory: catalogmodel.Advisory{catalogmodel.CategoryFrightening: catalogmodel.SeverityModerate}},
			want: true,
		},
		{
			name: "family default overridden",
			req:  model.Request{Audience: model.AudienceFamily, ContentRatingLimit: "R", Ceilings: model.Ceilings{catalogmodel.CategorySexNudity: catalogmodel.SeveritySevere}},
			item: catalogmodel.CatalogItem{ContentRating: "R", Advisory: catalogmodel.Advisory{catalogmodel.CategorySexNudity: catalogmodel.SeverityModerate}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newFilters(&tt.req, nil).pass(&tt.item))
		})
	}
}

func TestRecommendSeverityExclusion(t *testing.T) {
	s := New(Config{}, nil, zap.NewNop())
	gory := item(1, "Gory")
	gory.Advisory = catalogmodel.Advisory{catalogmodel.CategoryViolence: catalogmodel.SeveritySevere}
	mild := item(2, "Mild")
	mild.Advisory = catalogmodel.Advisory{catalogmodel.CategoryViolence: catalogmodel.SeverityMild}
	unknown := item(3, "Unknown")

	req := &model.Request{UserID: "ann", Ceilings: model.Ceilings{catalogmodel.CategoryViolence: catalogmodel.SeverityModerate}}
	res := s.Recommend(context.Background(), req, emptyProfile(), []*catalogmodel.CatalogItem{gory, mild, unknown}, nil)
	assert.ElementsMatch(t, []catalogmodel.ItemID{2, 3}, ids(res))
}

func TestRecommendShuffleNeverRepeats(t *testing.T) {
	s := New(Config{PageSize: 3}, nil, zap.NewNop())
	var pool []*catalogmodel.CatalogItem
	for i := int64(1); i <= 8; i++ {
		pool = append(pool, item(i, "t"))
	}
	ctx := context.Background()
	req := &model.Request{UserID: "ann", Page: 1}
	seen := map[catalogmodel.ItemID]bool{}
	var pages int
	for {
		res := s.Recommend(ctx, req, emptyProfile(), pool, nil)
		if res.Empty {
			break
		}
		pages++
		for _, id := range ids(res) {
			assert.False(t, seen[id], "item %d repeated", id)
			seen[id] = true
		}
		assert.Equal(t, req.Page+1, res.NextPage)
		assert.Len(t, res.ExcludeIDs, len(seen))
		req = &model.Request{UserID: "ann", Page: res.NextPage, ExcludeIDs: res.ExcludeIDs}
	}
	assert.Equal(t, 3, pages)
	assert.Len(t, seen, 8)
}

func TestRecommendEmpty(t *testing.T) {
	s := New(Config{}, nil, zap.NewNop())
	long := item(1, "Epic")
	long.RuntimeMinutes = 200
	req := &model.Request{UserID: "ann", MaxRuntimeMinutes: 90, ExcludeIDs: []catalogmodel.ItemID{9}}

	res := s.Recommend(context.Background(), req, emptyProfile(), []*catalogmodel.CatalogItem{long, item(2, "Dismissed")}, []catalogmodel.ItemID{2})
	assert.True(t, res.Empty)
	assert.Equal(t, model.EmptyMessage, res.Message)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, []catalogmodel.ItemID{9}, res.ExcludeIDs)
}

func TestRecommendRanksByTaste(t *testing.T) {
	members := []model.Member{{UserID: "ann", DisplayName: "Ann"}, {UserID: "ben", DisplayName: "Ben"}}
	horror := &catalogmodel.CatalogItem{ID: 100, Genres: []string{"Horror"}, Year: 1982}
	comedy := &catalogmodel.CatalogItem{ID: 101, Genres: []string{"Comedy"}, Year: 2004}
	ratings := []*ratingmodel.Rating{
		{UserID: "ann", ItemID: 100, OverallScore: 95},
		{UserID: "ben", ItemID: 100, OverallScore: 85},
		{UserID: "ben", ItemID: 101, OverallScore: 20},
		{UserID: "zed", ItemID: 101, OverallScore: 100},
	}
	p := BuildProfile(members, ratings, map[catalogmodel.ItemID]*catalogmodel.CatalogItem{100: horror, 101: comedy})
	assert.Equal(t, 3, p.Ratings)
	assert.Equal(t, []string{"Ann", "Ben"}, p.SeenBy[100])
	assert.Equal(t, []string{"Horror"}, p.TopGenres(3))

	a := &catalogmodel.CatalogItem{ID: 1, Title: "The Thing", Genres: []string{"Horror"}, Year: 1985}
	b := &catalogmodel.CatalogItem{ID: 2, Title: "Step Brothers", Genres: []string{"Comedy"}, Year: 2008}
	s := New(Config{}, nil, zap.NewNop())
	res := s.Recommend(context.Background(), &model.Request{UserID: "ann"}, p, []*catalogmodel.CatalogItem{b, a}, nil)
	require.Equal(t, []catalogmodel.ItemID{1, 2}, ids(res))
	assert.Contains(t, res.Recommendations[0].Reasoning, "Horror")
	for _, r := range res.Recommendations {
		assert.GreaterOrEqual(t, r.GroupFitScore, 0)
		assert.LessOrEqual(t, r.GroupFitScore, 100)
	}
}

type stubGateway struct {
	text   string
	err    error
	prompt callgateway.Prompt
}

func (g *stubGateway) Invoke(_ context.Context, p callgateway.Prompt) (string, error) {
	g.prompt = p
	return g.text, g.err
}

func TestRecommendExplanations(t *testing.T) {
	pool := []*catalogmodel.CatalogItem{item(1, "Heat"), item(2, "Ronin"), item(3, "Collateral")}
	req := &model.Request{UserID: "ann", Moods: []catalogmodel.Mood{catalogmodel.MoodIntense}}

	tests := []struct {
		name string
		gw   *stubGateway
		want []string
	}{
		{
			name: "model reasoning with blank fallback",
			gw:   &stubGateway{text: "```json\n{\"1\": \"A tense heist classic.\", \"2\": \"  \", \"9\": \"ignored\"}\n```"},
			want: []string{"A tense heist classic.", "", ""},
		},
		{
			name: "gateway failure",
			gw:   &stubGateway{err: callgateway.ErrNotConfigured},
			want: []string{"", "", ""},
		},
		{
			name: "malformed response",
			gw:   &stubGateway{text: "I cannot help with that"},
			want: []string{"", "", ""},
		},
		{
			name: "wrong value type",
			gw:   &stubGateway{text: `{"1": 5, "3": "Night in LA."}`},
			want: []string{"", "", "Night in LA."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{}, NewExplainer(tt.gw, zap.NewNop()), zap.NewNop())
			res := s.Recommend(context.Background(), req, emptyProfile(), pool, nil)
			require.Len(t, res.Recommendations, 3)
			assert.True(t, strings.HasPrefix(tt.gw.prompt.User, "Group: Ann\n"))
			assert.Contains(t, tt.gw.prompt.User, "1. Heat | fit ")
			for i, r := range res.Recommendations {
				assert.NotEmpty(t, strings.TrimSpace(r.Reasoning))
				if tt.want[i] != "" {
					assert.Equal(t, tt.want[i], r.Reasoning)
				} else {
					assert.NotEqual(t, "ignored", r.Reasoning)
				}
			}
		})
	}
}

func TestLocalReasoning(t *testing.T) {
	p := BuildProfile(
		[]model.Member{{UserID: "ann", DisplayName: "Ann"}},
		[]*ratingmodel.Rating{{UserID: "ann", ItemID: 5, OverallScore: 90}, {UserID: "ann", ItemID: 6, OverallScore: 30}},
		map[catalogmodel.ItemID]*catalogmodel.CatalogItem{
			5: {ID: 5, Genres: []string{"Drama"}, Year: 1994},
			6: {ID: 6, Genres: []string{"Action"}, Year: 2015},
		},
	)
	it := &catalogmodel.CatalogItem{ID: 1, Genres: []string{"Drama"}, Year: 1997, MoodScores: moods(0.1, 0.1, 0.2, 0.9, 0.1, 0.8, 0.1)}
	req := &model.Request{Moods: []catalogmodel.Mood{catalogmodel.MoodAcclaimed, catalogmodel.MoodEmotional}}
	got := localReasoning(req, p, model.Recommendation{Item: it, SeenBy: []string{"Ann"}})
	assert.Equal(t, "Picked because it scores high on emotional and acclaimed, the group enjoys Drama, the group rates 1990s films well and Ann already rated it.", got)

	fallbacks := []struct {
		name string
		item *catalogmodel.CatalogItem
		want string
	}{
		{name: "unrated", item: &catalogmodel.CatalogItem{ID: 2}, want: "A fresh pick that fits the group's filters."},
		{name: "well reviewed", item: &catalogmodel.CatalogItem{ID: 3, VoteAverage: 8.2, VoteCount: 900}, want: "A well-reviewed pick at 8.2/10 that fits the group's filters."},
		{name: "at threshold", item: &catalogmodel.CatalogItem{ID: 4, VoteAverage: 7, VoteCount: 10}, want: "A well-reviewed pick at 7.0/10 that fits the group's filters."},
		{name: "poorly reviewed", item: &catalogmodel.CatalogItem{ID: 5, VoteAverage: 2.1, VoteCount: 40}, want: "Rated 2.1/10 and fits the group's filters."},
	}
	for _, tt := range fallbacks {
		t.Run(tt.name, func(t *testing.T) {
			got := localReasoning(&model.Request{}, emptyProfile(), model.Recommendation{Item: tt.item})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainerError(t *testing.T) {
	e := NewExplainer(&stubGateway{err: errors.New("timeout")}, zap.NewNop())
	_, err := e.Explain(context.Background(), &model.Request{}, emptyProfile(), []model.Recommendation{{Item: item(1, "x")}})
	assert.EqualError(t, err, "timeout")
}
