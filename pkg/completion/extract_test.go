package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: `{"1": "a"}`, want: `{"1": "a"}`},
		{name: "fenced", in: "```json\n{\"1\": \"a\"}\n```", want: `{"1": "a"}`},
		{name: "bare fence", in: "```{\"1\": 2}```", want: `{"1": 2}`},
		{name: "prose", in: "Sure!\n{\"1\": {\"x\": 1}}\nThanks", want: `{"1": {"x": 1}}`},
		{name: "none", in: "no idea", wantErr: true},
		{name: "reversed", in: "} {", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoJSONObject)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
