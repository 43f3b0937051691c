package completion

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a completion contains no JSON object.
var ErrNoJSONObject = errors.New("no JSON object found")

// ExtractObject returns the outermost JSON object in a completion, ignoring
// markdown code fences and any prose around it.
func ExtractObject(text string) ([]byte, error) {
	body := StripFences(text)
	start, end := strings.IndexByte(body, '{'), strings.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return nil, ErrNoJSONObject
	}
	return []byte(body[start : end+1]), nil
}

// StripFences removes a surrounding markdown code fence, with or without
// a language tag.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
