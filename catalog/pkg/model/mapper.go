package model

import (
	"cinecircle/gen"
)

// ItemToProto converts a CatalogItem struct into a generated wire counterpart.
func ItemToProto(i *CatalogItem) *gen.Item {
	res := &gen.Item{
		Id:              int64(i.ID),
		Title:           i.Title,
		Year:            int32(i.Year),
		Genres:          i.Genres,
		Synopsis:        i.Synopsis,
		RuntimeMinutes:  int32(i.RuntimeMinutes),
		ContentRating:   i.ContentRating,
		Providers:       i.Providers,
		VoteAverage:     i.VoteAverage,
		VoteCount:       i.VoteCount,
		MoodScoredAt:    i.MoodScoredAt,
		ParentalSummary: i.ParentalSummary,
		LlmEnrichedAt:   i.LLMEnrichedAt,
	}
	if len(i.MoodScores) > 0 {
		res.MoodScores = make(map[string]float64, len(i.MoodScores))
		for m, v := range i.MoodScores {
			res.MoodScores[string(m)] = v
		}
	}
	if len(i.Advisory) > 0 {
		res.Advisory = make(map[string]string, len(i.Advisory))
		for c, s := range i.Advisory {
			res.Advisory[string(c)] = s.String()
		}
	}
	if i.Pairings != nil {
		res.Pairings = &gen.Pairings{
			Cocktail:  &gen.Suggestion{Name: i.Pairings.Cocktail.Name, Description: i.Pairings.Cocktail.Description},
			ZeroProof: &gen.Suggestion{Name: i.Pairings.ZeroProof.Name, Description: i.Pairings.ZeroProof.Description},
			Snack:     &gen.Suggestion{Name: i.Pairings.Snack.Name, Description: i.Pairings.Snack.Description},
		}
	}
	return res
}

// ItemFromProto converts a generated wire item into a CatalogItem.
// Unknown moods, categories and severities are dropped.
func ItemFromProto(i *gen.Item) *CatalogItem {
	res := &CatalogItem{
		ID:              ItemID(i.Id),
		Title:           i.Title,
		Year:            int(i.Year),
		Genres:          i.Genres,
		Synopsis:        i.Synopsis,
		RuntimeMinutes:  int(i.RuntimeMinutes),
		ContentRating:   i.ContentRating,
		Providers:       i.Providers,
		VoteAverage:     i.VoteAverage,
		VoteCount:       i.VoteCount,
		MoodScoredAt:    i.MoodScoredAt,
		ParentalSummary: i.ParentalSummary,
		LLMEnrichedAt:   i.LlmEnrichedAt,
	}
	if len(i.MoodScores) > 0 {
		res.MoodScores = make(MoodScores, len(i.MoodScores))
		for k, v := range i.MoodScores {
			if m, err := ParseMood(k); err == nil {
				res.MoodScores[m] = v
			}
		}
	}
	if len(i.Advisory) > 0 {
		res.Advisory = make(Advisory, len(i.Advisory))
		for k, v := range i.Advisory {
			c, err := ParseCategory(k)
			if err != nil {
				continue
			}
			if s, err := ParseSeverity(v); err == nil {
				res.Advisory[c] = s
			}
		}
	}
	if p := i.Pairings; p != nil {
		res.Pairings = &Pairings{
			Cocktail:  suggestionFromProto(p.Cocktail),
			ZeroProof: suggestionFromProto(p.ZeroProof),
			Snack:     suggestionFromProto(p.Snack),
		}
	}
	return res
}

func suggestionFromProto(s *gen.Suggestion) Suggestion {
	if s == nil {
		return Suggestion{}
	}
	return Suggestion{Name: s.Name, Description: s.Description}
}
