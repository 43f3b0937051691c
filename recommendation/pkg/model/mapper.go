package model

import (
	"fmt"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	ratingmodel "cinecircle/rating/pkg/model"
)

// RequestFromProto converts a generated wire request into a Request,
// validating moods, audience, certification and ceilings.
func RequestFromProto(r *gen.RecommendRequest) (*Request, error) {
	audience, err := ParseAudience(r.Audience)
	if err != nil {
		return nil, err
	}
	req := &Request{
		CollectiveID:       CollectiveID(r.CollectiveId),
		UserID:             ratingmodel.UserID(r.UserId),
		Audience:           audience,
		MaxRuntimeMinutes:  int(r.MaxRuntimeMinutes),
		ContentRatingLimit: r.ContentRatingLimit,
		MinYear:            int(r.MinYear),
		Providers:          r.Providers,
		Page:               int(r.Page),
	}
	if req.MaxRuntimeMinutes < 0 || req.MinYear < 0 || req.Page < 0 {
		return nil, fmt.Errorf("negative runtime, year or page")
	}
	if req.ContentRatingLimit != "" {
		if _, ok := catalogmodel.ContentRatingRank(req.ContentRatingLimit); !ok {
			return nil, fmt.Errorf("unknown content rating %q", req.ContentRatingLimit)
		}
	}
	seen := map[catalogmodel.Mood]bool{}
	for _, s := range r.Moods {
		m, err := catalogmodel.ParseMood(s)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			req.Moods = append(req.Moods, m)
		}
	}
	if len(r.ParentalCeilings) > 0 {
		req.Ceilings = Ceilings{}
		for k, v := range r.ParentalCeilings {
			c, err := catalogmodel.ParseCategory(k)
			if err != nil {
				return nil, err
			}
			s, err := catalogmodel.ParseSeverity(v)
			if err != nil {
				return nil, err
			}
			req.Ceilings[c] = s
		}
	}
	for _, id := range r.ExcludeIds {
		req.ExcludeIDs = append(req.ExcludeIDs, catalogmodel.ItemID(id))
	}
	return req, nil
}

// ResultToProto converts a Result into a generated wire counterpart.
func ResultToProto(r *Result) *gen.RecommendResponse {
	resp := &gen.RecommendResponse{
		Recommendations: make([]*gen.Recommendation, 0, len(r.Recommendations)),
		ExcludeIds:      make([]int64, 0, len(r.ExcludeIDs)),
		NextPage:        int32(r.NextPage),
		Empty:           r.Empty,
		Message:         r.Message,
	}
	for _, rec := range r.Recommendations {
		resp.Recommendations = append(resp.Recommendations, &gen.Recommendation{
			Item:          catalogmodel.ItemToProto(rec.Item),
			GroupFitScore: int32(rec.GroupFitScore),
			Reasoning:     rec.Reasoning,
			SeenBy:        rec.SeenBy,
		})
	}
	for _, id := range r.ExcludeIDs {
		resp.ExcludeIds = append(resp.ExcludeIds, int64(id))
	}
	return resp
}

// CollectiveFromProto converts a generated wire collective into a Collective.
func CollectiveFromProto(c *gen.Collective) *Collective {
	res := &Collective{ID: CollectiveID(c.Id), Name: c.Name}
	for _, m := range c.Members {
		if m == nil {
			continue
		}
		res.Members = append(res.Members, Member{UserID: ratingmodel.UserID(m.UserId), DisplayName: m.DisplayName})
	}
	return res
}
