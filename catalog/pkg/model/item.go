package model

import (
	"fmt"
	"strings"
	"time"
)

// ItemID defines a catalog item id (external catalog identifier).
type ItemID int64

// Mood defines a named mood a catalog item is scored on.
type Mood string

// Scored moods.
const (
	MoodFun       = Mood("fun")
	MoodFunny     = Mood("funny")
	MoodIntense   = Mood("intense")
	MoodEmotional = Mood("emotional")
	MoodMindless  = Mood("mindless")
	MoodAcclaimed = Mood("acclaimed")
	MoodScary     = Mood("scary")
)

// Moods lists every scored mood in canonical order.
var Moods = []Mood{MoodFun, MoodFunny, MoodIntense, MoodEmotional, MoodMindless, MoodAcclaimed, MoodScary}

// ParseMood returns the mood named by s.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Moods {
		if v == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// MoodScores maps each mood to a score in [0,1].
type MoodScores map[Mood]float64

// Complete reports whether every mood has a score.
func (s MoodScores) Complete() bool {
	if len(s) != len(Moods) {
		return false
	}
	for _, m := range Moods {
		if _, ok := s[m]; !ok {
			return false
		}
	}
	return true
}

// InRange reports whether every score lies in [0,1].
func (s MoodScores) InRange() bool {
	for _, v := range s {
		if v < 0 || v > 1 || v != v {
			return false
		}
	}
	return true
}

// Severity defines how strongly a parental category is present.
type Severity int

// Severities in ascending order.
const (
	SeverityNone Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

var severityNames = []string{"None", "Mild", "Moderate", "Severe"}

func (s Severity) String() string {
	if s < SeverityNone || s > SeveritySevere {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Category defines a parental advisory category.
type Category string

// Parental advisory categories.
const (
	CategoryViolence    = Category("violence")
	CategorySexNudity   = Category("sexNudity")
	CategoryProfanity   = Category("profanity")
	CategorySubstances  = Category("substances")
	CategoryFrightening = Category("frightening")
)

// Categories lists every parental category.
var Categories = []Category{CategoryViolence, CategorySexNudity, CategoryProfanity, CategorySubstances, CategoryFrightening}

// ParseCategory returns the category named by s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown parental category %q", s)
}

// Advisory maps parental categories to severities. A missing category means no data.
type Advisory map[Category]Severity

// Suggestion defines a named pairing suggestion.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Pairings defines what to drink and eat with an item.
type Pairings struct {
	Cocktail  Suggestion `json:"cocktail"`
	ZeroProof Suggestion `json:"zeroProof"`
	Snack     Suggestion `json:"snack"`
}

// CatalogItem defines a movie or show with its enrichment.
type CatalogItem struct {
	ID              ItemID
	Title           string
	Year            int
	Genres          []string
	Synopsis        string
	RuntimeMinutes  int
	ContentRating   string
	Providers       []string
	VoteAverage     float64
	VoteCount       int64
	MoodScores      MoodScores
	MoodScoredAt    *time.Time
	Pairings        *Pairings
	ParentalSummary string
	Advisory        Advisory
	LLMEnrichedAt   *time.Time
}

var contentRatingRanks = map[string]int{
	"G":     0,
	"TV-Y":  0,
	"TV-Y7": 0,
	"TV-G":  0,
	"PG":    1,
	"TV-PG": 1,
	"PG-13": 2,
	"TV-14": 2,
	"R":     3,
	"TV-MA": 3,
	"NC-17": 4,
}

// ContentRatingRank returns the position of a content rating on the
// G < PG < PG-13 < R < NC-17 scale. Unrated and unknown ratings report false.
func ContentRatingRank(rating string) (int, bool) {
	r, ok := contentRatingRanks[strings.ToUpper(strings.TrimSpace(rating))]
	return r, ok
}

// EnrichmentKind defines which enrichment pass an item goes through.
type EnrichmentKind string

// Enrichment kinds.
const (
	KindMood     = EnrichmentKind("mood")
	KindAdvisory = EnrichmentKind("advisory")
)

// ParseEnrichmentKind returns the enrichment kind named by s.
func ParseEnrichmentKind(s string) (EnrichmentKind, error) {
	switch k := EnrichmentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMood, KindAdvisory:
		return k, nil
	}
	return "", fmt.Errorf("unknown enrichment kind %q", s)
}

// AdvisoryEnrichment is the result of the advisory enrichment pass.
type AdvisoryEnrichment struct {
	Pairings        Pairings
	ParentalSummary string
	Advisory        Advisory
}

// EnrichmentSummary defines the outcome of an enrichment run.
// Enriched + Errored + Skipped always equals Attempted.
type EnrichmentSummary struct {
	Enriched  int
	Errored   int
	Skipped   int
	Attempted int
}

// Add accumulates o into s.
func (s *EnrichmentSummary) Add(o EnrichmentSummary) {
	s.Enriched += o.Enriched
	s.Errored += o.Errored
	s.Skipped += o.Skipped
	s.Attempted += o.Attempted
}
