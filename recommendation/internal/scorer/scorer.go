// Package scorer ranks catalog candidates for a collective under hard
// filters and a soft mood and taste blend.
package scorer

import (
	"context"
	"sort"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/logging"
	"cinecircle/recommendation/pkg/model"

	"go.uber.org/zap"
)

// Scorer defines a recommendation scorer.
type Scorer struct {
	cfg       Config
	explainer *Explainer
	logger    *zap.Logger
}

// New creates a new scorer. A nil explainer always uses local reasoning.
func New(cfg Config, explainer *Explainer, logger *zap.Logger) *Scorer {
	logger = logger.With(zap.String(logging.FieldComponent, "scorer"))
	return &Scorer{cfg: cfg.withDefaults(), explainer: explainer, logger: logger}
}

type scored struct {
	item  *catalogmodel.CatalogItem
	score int
}

// Recommend filters and ranks candidates and returns one page of explained
// recommendations. Candidates in the request's exclusion list or in
// dismissed never appear. When nothing survives filtering the result is
// marked empty.
func (s *Scorer) Recommend(ctx context.Context, req *model.Request, p *Profile, candidates []*catalogmodel.CatalogItem, dismissed []catalogmodel.ItemID) *model.Result {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	res := &model.Result{
		ExcludeIDs: append([]catalogmodel.ItemID(nil), req.ExcludeIDs...),
		NextPage:   page + 1,
	}

	f := newFilters(req, dismissed)
	var ranked []scored
	for _, item := range candidates {
		if item == nil || !f.pass(item) {
			continue
		}
		f.exclude[item.ID] = struct{}{}
		ranked = append(ranked, scored{item: item, score: s.cfg.Weights.groupFit(item, req.Moods, p)})
	}
	if len(ranked) == 0 {
		res.Empty = true
		res.Message = model.EmptyMessage
		return res
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.item.VoteCount != b.item.VoteCount {
			return a.item.VoteCount > b.item.VoteCount
		}
		return a.item.ID < b.item.ID
	})
	if len(ranked) > s.cfg.PageSize {
		ranked = ranked[:s.cfg.PageSize]
	}

	res.Recommendations = make([]model.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		res.Recommendations = append(res.Recommendations, model.Recommendation{
			Item:          r.item,
			GroupFitScore: r.score,
			SeenBy:        p.SeenBy[r.item.ID],
		})
		res.ExcludeIDs = append(res.ExcludeIDs, r.item.ID)
	}
	s.explain(ctx, req, p, res.Recommendations)
	return res
}

func (s *Scorer) explain(ctx context.Context, req *model.Request, p *Profile, recs []model.Recommendation) {
	var explained map[int]string
	if s.explainer != nil {
		var err error
		explained, err = s.explainer.Explain(ctx, req, p, recs)
		if err != nil {
			s.logger.Warn("Falling back to local reasoning", zap.Error(err))
		}
	}
	for i := range recs {
		if r, ok := explained[i]; ok {
			recs[i].Reasoning = r
			continue
		}
		recs[i].Reasoning = localReasoning(req, p, recs[i])
	}
}
