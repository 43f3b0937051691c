package enrichment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"cinecircle/catalog/pkg/model"

	"github.com/goccy/go-json"
)

const moodSystemPrompt = `You are a film classifier. For each numbered title, score how well it fits each of seven viewing moods on a scale from 0.0 to 1.0:

- fun: light, entertaining, crowd-pleasing
- funny: primarily a comedy, built to make people laugh
- intense: gripping, high tension, action or suspense heavy
- emotional: moving, tearjerking, character driven
- mindless: easy background viewing that needs no attention
- acclaimed: critically celebrated, award calibre, rewards attention
- scary: horror or dread, designed to frighten

Scores are independent but must stay consistent:
- a high mindless score implies a low acclaimed score and the reverse
- a high scary score implies a low funny score unless the title is a horror comedy
- a high emotional score implies a low mindless score
Use the full range. Reserve scores above 0.8 for titles that define the mood.`

const moodInstructions = `Respond only with a JSON object keyed by the title number. Each value is an object with exactly the keys fun, funny, intense, emotional, mindless, acclaimed and scary, each a number between 0 and 1.`

type moodRubric struct{}

func (moodRubric) kind() model.EnrichmentKind { return model.KindMood }

func (moodRubric) systemPrompt() string { return moodSystemPrompt }

func (moodRubric) maxTokens() int { return 2048 }

func (moodRubric) instructions() string { return moodInstructions }

func (moodRubric) apply(ctx context.Context, repo itemRepository, id model.ItemID, raw json.RawMessage, at time.Time) error {
	scores, err := parseMoodScores(raw)
	if err != nil {
		return err
	}
	return repo.SaveMoodScores(ctx, id, scores, at)
}

// parseMoodScores requires a numeric score for every mood, clamped to
// [0,1] and rounded to two decimals.
func parseMoodScores(raw json.RawMessage) (model.MoodScores, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	normalized := make(map[model.Mood]json.RawMessage, len(fields))
	for k, v := range fields {
		normalized[model.Mood(strings.ToLower(strings.TrimSpace(k)))] = v
	}
	scores := make(model.MoodScores, len(model.Moods))
	for _, m := range model.Moods {
		v, ok := normalized[m]
		if !ok {
			return nil, fmt.Errorf("%w: missing mood %q", ErrMalformedResponse, m)
		}
		var f *float64
		if err := json.Unmarshal(v, &f); err != nil || f == nil {
			return nil, fmt.Errorf("%w: mood %q is not a number", ErrMalformedResponse, m)
		}
		scores[m] = clampRound(*f)
	}
	return scores, nil
}

func clampRound(v float64) float64 {
	v = math.Max(0, math.Min(1, v))
	return math.Round(v*100) / 100
}
