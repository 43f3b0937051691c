package model

import (
	"fmt"
	"strings"

	catalogmodel "cinecircle/catalog/pkg/model"
	ratingmodel "cinecircle/rating/pkg/model"
)

// EmptyMessage is returned with a result in which no candidate survived filtering.
const EmptyMessage = "No recommendations matched — try relaxing your filters"

// Audience defines who is going to watch.
type Audience string

// Audiences.
const (
	AudienceSolo    = Audience("solo")
	AudiencePartner = Audience("partner")
	AudienceFamily  = Audience("family")
)

// ParseAudience parses an audience name. An empty name means solo.
func ParseAudience(s string) (Audience, error) {
	switch a := Audience(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AudienceSolo, nil
	case AudienceSolo, AudiencePartner, AudienceFamily:
		return a, nil
	default:
		return "", fmt.Errorf("unknown audience %q", s)
	}
}

// Ceilings maps parental categories to the highest accepted severity.
type Ceilings map[catalogmodel.Category]catalogmodel.Severity

// Request defines a recommendation request.
type Request struct {
	CollectiveID CollectiveID
	UserID       ratingmodel.UserID
	Moods        []catalogmodel.Mood
	Audience     Audience
	// MaxRuntimeMinutes of zero means no limit.
	MaxRuntimeMinutes int
	// ContentRatingLimit is the highest accepted certification, empty for none.
	ContentRatingLimit string
	MinYear            int
	Providers          []string
	Ceilings           Ceilings
	// Page is 1-based.
	Page       int
	ExcludeIDs []catalogmodel.ItemID
}

// Recommendation defines a ranked recommendation.
type Recommendation struct {
	Item          *catalogmodel.CatalogItem
	GroupFitScore int
	Reasoning     string
	SeenBy        []string
}

// Result defines a page of recommendations.
type Result struct {
	Recommendations []Recommendation
	// ExcludeIDs is the request's exclusion list with this page's ids appended.
	ExcludeIDs []catalogmodel.ItemID
	NextPage   int
	Empty      bool
	Message    string
}
