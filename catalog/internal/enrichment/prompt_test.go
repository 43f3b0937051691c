package enrichment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"cinecircle/catalog/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	long := strings.Repeat("Ünïcode words ", 60)
	got := renderPrompt([]*model.CatalogItem{
		{Title: "Heat", Year: 1995, Genres: []string{"Crime", "Thriller"}, VoteAverage: 7.9, VoteCount: 7000, ContentRating: "R"},
		{Title: "Untitled", Synopsis: long},
	}, "Answer in JSON.")

	assert.True(t, strings.HasPrefix(got, "Classify the following 2 titles.\n\n1. Heat (1995)\n"))
	assert.Contains(t, got, "   Genres: Crime, Thriller\n")
	assert.Contains(t, got, "   Rating: 7.9/10 (7000 votes)\n")
	assert.Contains(t, got, "2. Untitled\n")
	assert.True(t, strings.HasSuffix(got, "Answer in JSON."))

	line := got[strings.Index(got, "   Synopsis: ")+len("   Synopsis: "):]
	line = line[:strings.IndexByte(line, '\n')]
	assert.LessOrEqual(t, utf8.RuneCountInString(strings.TrimSuffix(line, "…")), maxSynopsisRunes)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		keys    []string
		wantErr bool
	}{
		{name: "plain", in: `{"1": {}, "2": {}}`, keys: []string{"1", "2"}},
		{name: "fenced", in: "```json\n{\"1\": {}}\n```", keys: []string{"1"}},
		{name: "fenced without language", in: "```\n{\"1\": {}}\n```", keys: []string{"1"}},
		{name: "surrounding prose", in: "Here you go:\n{\" 3 \": {}}\nEnjoy!", keys: []string{"3"}},
		{name: "not json", in: "sorry", wantErr: true},
		{name: "truncated", in: `{"1": {"fun": 0.`, wantErr: true},
		{name: "array", in: `["1", "2"]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			var keys []string
			for k := range got {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.keys, keys)
		})
	}
}

func TestClampRound(t *testing.T) {
	assert.Equal(t, 0.0, clampRound(-3))
	assert.Equal(t, 1.0, clampRound(7.5))
	assert.Equal(t, 0.67, clampRound(0.666))
	assert.Equal(t, 0.12, clampRound(0.1249))
}
