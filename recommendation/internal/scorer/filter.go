package scorer

import (
	"strings"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/recommendation/pkg/model"
)

// Ceilings applied to family audiences when the request leaves them unset.
const familyContentRating = "PG"

var familyCeilings = model.Ceilings{
	catalogmodel.CategorySexNudity:   catalogmodel.SeverityMild,
	catalogmodel.CategoryFrightening: catalogmodel.SeverityModerate,
}

type filters struct {
	maxRuntime  int
	ratingLimit int
	hasLimit    bool
	minYear     int
	providers   map[string]struct{}
	ceilings    model.Ceilings
	exclude     map[catalogmodel.ItemID]struct{}
}

func newFilters(req *model.Request, dismissed []catalogmodel.ItemID) filters {
	f := filters{
		maxRuntime: req.MaxRuntimeMinutes,
		minYear:    req.MinYear,
		ceilings:   effectiveCeilings(req),
		exclude:    make(map[catalogmodel.ItemID]struct{}, len(req.ExcludeIDs)+len(dismissed)),
	}
	limit := req.ContentRatingLimit
	if limit == "" && req.Audience == model.AudienceFamily {
		limit = familyContentRating
	}
	f.ratingLimit, f.hasLimit = catalogmodel.ContentRatingRank(limit)
	if len(req.Providers) > 0 {
		f.providers = make(map[string]struct{}, len(req.Providers))
		for _, p := range req.Providers {
			f.providers[normalizeProvider(p)] = struct{}{}
		}
	}
	for _, id := range req.ExcludeIDs {
		f.exclude[id] = struct{}{}
	}
	for _, id := range dismissed {
		f.exclude[id] = struct{}{}
	}
	return f
}

// effectiveCeilings returns the request's parental ceilings with the
// family defaults filled in for unset categories.
func effectiveCeilings(req *model.Request) model.Ceilings {
	res := make(model.Ceilings, len(req.Ceilings)+len(familyCeilings))
	if req.Audience == model.AudienceFamily {
		for c, s := range familyCeilings {
			res[c] = s
		}
	}
	for c, s := range req.Ceilings {
		res[c] = s
	}
	return res
}

// pass reports whether the item survives every hard filter. Unknown
// runtime, certification or advisory data never eliminates an item.
func (f filters) pass(item *catalogmodel.CatalogItem) bool {
	if _, ok := f.exclude[item.ID]; ok {
		return false
	}
	if f.maxRuntime > 0 && item.RuntimeMinutes > f.maxRuntime {
		return false
	}
	if f.hasLimit {
		if rank, ok := catalogmodel.ContentRatingRank(item.ContentRating); ok && rank > f.ratingLimit {
			return false
		}
	}
	if f.minYear > 0 && item.Year > 0 && item.Year < f.minYear {
		return false
	}
	if f.providers != nil && !f.onProvider(item.Providers) {
		return false
	}
	for c, ceiling := range f.ceilings {
		if s, ok := item.Advisory[c]; ok && s > ceiling {
			return false
		}
	}
	return true
}

func (f filters) onProvider(providers []string) bool {
	for _, p := range providers {
		if _, ok := f.providers[normalizeProvider(p)]; ok {
			return true
		}
	}
	return false
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
