package enrichment

import (
	"fmt"
	"strings"

	"cinecircle/catalog/pkg/model"
	"cinecircle/pkg/completion"

	"github.com/goccy/go-json"
)

const maxSynopsisRunes = 300

func renderPrompt(batch []*model.CatalogItem, instructions string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Classify the following %d titles.\n\n", len(batch))
	for i, item := range batch {
		fmt.Fprintf(&sb, "%d. %s", i+1, item.Title)
		if item.Year > 0 {
			fmt.Fprintf(&sb, " (%d)", item.Year)
		}
		sb.WriteString("\n")
		if len(item.Genres) > 0 {
			fmt.Fprintf(&sb, "   Genres: %s\n", strings.Join(item.Genres, ", "))
		}
		if s := snippet(item.Synopsis, maxSynopsisRunes); s != "" {
			fmt.Fprintf(&sb, "   Synopsis: %s\n", s)
		}
		if item.VoteCount > 0 {
			fmt.Fprintf(&sb, "   Rating: %.1f/10 (%d votes)\n", item.VoteAverage, item.VoteCount)
		}
		if item.ContentRating != "" {
			fmt.Fprintf(&sb, "   Certification: %s\n", item.ContentRating)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(instructions)
	return sb.String()
}

// snippet cuts s to at most n runes on a word boundary where possible.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := string(r[:n])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

// parseResponse decodes a model response into entries keyed by item number.
func parseResponse(text string) (map[string]json.RawMessage, error) {
	body, err := completion.ExtractObject(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	entries := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		entries[strings.TrimSpace(k)] = v
	}
	return entries, nil
}
