package scorer

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/completion"
	"cinecircle/pkg/logging"
	"cinecircle/recommendation/pkg/model"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const explainSystem = `You are a film concierge for a group choosing something to watch together.
For each numbered title write one warm, specific sentence of at most 30 words explaining why it suits the group.
Refer to the requested moods, the group's favourite genres or who has already seen it when relevant.
Reply with a single JSON object mapping each number to its sentence, with no other text.`

const explainMaxTokens = 1024

// wellReviewedRating is the minimum vote average described as well reviewed.
const wellReviewedRating = 7.0

// Invoker is the call gateway used for explanations.
type Invoker interface {
	Invoke(ctx context.Context, p callgateway.Prompt) (string, error)
}

// Explainer asks the model for one reasoning sentence per recommendation.
type Explainer struct {
	gateway Invoker
	logger  *zap.Logger
}

// NewExplainer creates a new explainer.
func NewExplainer(gateway Invoker, logger *zap.Logger) *Explainer {
	logger = logger.With(zap.String(logging.FieldComponent, "explainer"))
	return &Explainer{gateway: gateway, logger: logger}
}

// Explain returns the model's reasoning keyed by recommendation index.
// Entries may be missing; callers fall back to local reasoning for them.
func (e *Explainer) Explain(ctx context.Context, req *model.Request, p *Profile, recs []model.Recommendation) (map[int]string, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	text, err := e.gateway.Invoke(ctx, callgateway.Prompt{
		System:    explainSystem,
		User:      renderExplainPrompt(req, p, recs),
		MaxTokens: explainMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	body, err := completion.ExtractObject(text)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	res := make(map[int]string, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || n < 1 || n > len(recs) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			res[n-1] = s
		}
	}
	return res, nil
}

func renderExplainPrompt(req *model.Request, p *Profile, recs []model.Recommendation) string {
	var sb strings.Builder
	names := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		names = append(names, m.Name())
	}
	fmt.Fprintf(&sb, "Group: %s\n", strings.Join(names, ", "))
	if req.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", req.Audience)
	}
	if len(req.Moods) > 0 {
		fmt.Fprintf(&sb, "Requested moods: %s\n", joinMoods(req.Moods))
	}
	if top := p.TopGenres(3); len(top) > 0 {
		fmt.Fprintf(&sb, "Favourite genres: %s\n", strings.Join(top, ", "))
	}
	sb.WriteString("\n")
	for i, rec := range recs {
		fmt.Fprintf(&sb, "%d. %s", i+1, rec.Item.Title)
		if rec.Item.Year > 0 {
			fmt.Fprintf(&sb, " (%d)", rec.Item.Year)
		}
		if len(rec.Item.Genres) > 0 {
			fmt.Fprintf(&sb, " | %s", strings.Join(rec.Item.Genres, ", "))
		}
		fmt.Fprintf(&sb, " | fit %d", rec.GroupFitScore)
		if len(rec.SeenBy) > 0 {
			fmt.Fprintf(&sb, " | seen by %s", strings.Join(rec.SeenBy, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// localReasoning names the signals behind a recommendation without a model call.
func localReasoning(req *model.Request, p *Profile, rec model.Recommendation) string {
	item := rec.Item
	var parts []string
	if len(req.Moods) > 0 && item.MoodScores.Complete() {
		moods := append([]catalogmodel.Mood(nil), req.Moods...)
		sort.SliceStable(moods, func(i, j int) bool { return item.MoodScores[moods[i]] > item.MoodScores[moods[j]] })
		var strong []catalogmodel.Mood
		for _, m := range moods {
			if item.MoodScores[m] >= 0.5 {
				strong = append(strong, m)
			}
		}
		if len(strong) > 0 {
			parts = append(parts, "it scores high on "+joinMoods(strong))
		} else {
			parts = append(parts, "it is the closest match for "+joinMoods(moods[:1]))
		}
	}
	var liked []string
	for _, g := range p.TopGenres(3) {
		for _, ig := range item.Genres {
			if g == ig {
				liked = append(liked, g)
			}
		}
	}
	if len(liked) > 0 {
		parts = append(parts, "the group enjoys "+joinWords(liked))
	}
	if item.Year > 0 {
		if a, ok := p.Decades[decade(item.Year)]; ok && a > p.Level {
			parts = append(parts, fmt.Sprintf("the group rates %ds films well", decade(item.Year)))
		}
	}
	if len(rec.SeenBy) > 0 {
		parts = append(parts, joinWords(rec.SeenBy)+" already rated it")
	}
	if len(parts) == 0 {
		switch {
		case item.VoteCount > 0 && item.VoteAverage >= wellReviewedRating:
			return fmt.Sprintf("A well-reviewed pick at %.1f/10 that fits the group's filters.", item.VoteAverage)
		case item.VoteCount > 0:
			return fmt.Sprintf("Rated %.1f/10 and fits the group's filters.", item.VoteAverage)
		}
		return "A fresh pick that fits the group's filters."
	}
	return "Picked because " + joinWords(parts) + "."
}

func joinMoods(moods []catalogmodel.Mood) string {
	words := make([]string, 0, len(moods))
	for _, m := range moods {
		words = append(words, string(m))
	}
	return joinWords(words)
}

func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}
