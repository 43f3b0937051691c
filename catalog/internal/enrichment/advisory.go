package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinecircle/catalog/pkg/model"

	"github.com/goccy/go-json"
)

const advisorySystemPrompt = `You are a movie night host and a parental content reviewer. For each numbered title:

1. Suggest three pairings that fit its tone and setting: a cocktail, a zero-proof drink and a snack. Give each a short name and a one sentence description.
2. Write a parental summary of one or two sentences describing content a parent should know about.
3. Rate five parental categories, violence, sexNudity, profanity, substances and frightening, using exactly one of None, Mild, Moderate or Severe.

Base ratings on the released cut. When unsure between two levels pick the higher one.`

const advisoryInstructions = `Respond only with a JSON object keyed by the title number. Each value is an object of the form:
{"pairings":{"cocktail":{"name":"","description":""},"zeroProof":{"name":"","description":""},"snack":{"name":"","description":""}},"parentalSummary":"","advisory":{"violence":"None","sexNudity":"None","profanity":"None","substances":"None","frightening":"None"}}`

type advisoryRubric struct{}

func (advisoryRubric) kind() model.EnrichmentKind { return model.KindAdvisory }

func (advisoryRubric) systemPrompt() string { return advisorySystemPrompt }

func (advisoryRubric) maxTokens() int { return 4096 }

func (advisoryRubric) instructions() string { return advisoryInstructions }

func (advisoryRubric) apply(ctx context.Context, repo itemRepository, id model.ItemID, raw json.RawMessage, at time.Time) error {
	e, err := parseAdvisory(raw)
	if err != nil {
		return err
	}
	return repo.SaveAdvisory(ctx, id, e, at)
}

type advisoryEntry struct {
	Pairings struct {
		Cocktail  model.Suggestion `json:"cocktail"`
		ZeroProof model.Suggestion `json:"zeroProof"`
		Snack     model.Suggestion `json:"snack"`
	} `json:"pairings"`
	ParentalSummary string            `json:"parentalSummary"`
	Advisory        map[string]string `json:"advisory"`
}

// parseAdvisory requires all three pairings and a parental summary.
// Severities are optional but must be valid when given.
func parseAdvisory(raw json.RawMessage) (*model.AdvisoryEnrichment, error) {
	var entry advisoryEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	p := entry.Pairings
	for name, s := range map[string]model.Suggestion{"cocktail": p.Cocktail, "zeroProof": p.ZeroProof, "snack": p.Snack} {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: missing %s pairing", ErrMalformedResponse, name)
		}
		if strings.TrimSpace(s.Description) == "" {
			return nil, fmt.Errorf("%w: missing %s description", ErrMalformedResponse, name)
		}
	}
	summary := strings.TrimSpace(entry.ParentalSummary)
	if summary == "" {
		return nil, fmt.Errorf("%w: missing parental summary", ErrMalformedResponse)
	}
	advisory := make(model.Advisory, len(entry.Advisory))
	for k, v := range entry.Advisory {
		c, err := model.ParseCategory(k)
		if err != nil {
			continue
		}
		s, err := model.ParseSeverity(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		advisory[c] = s
	}
	return &model.AdvisoryEnrichment{
		Pairings: model.Pairings{
			Cocktail:  trimSuggestion(p.Cocktail),
			ZeroProof: trimSuggestion(p.ZeroProof),
			Snack:     trimSuggestion(p.Snack),
		},
		ParentalSummary: summary,
		Advisory:        advisory,
	}, nil
}

func trimSuggestion(s model.Suggestion) model.Suggestion {
	return model.Suggestion{Name: strings.TrimSpace(s.Name), Description: strings.TrimSpace(s.Description)}
}
