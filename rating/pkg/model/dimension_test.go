package model

import (
	"testing"
	"time"

	"cinecircle/gen"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var testDimensions = Dimensions{
	{Name: "story", Min: 1, Max: 10, Step: 1, Weight: 2},
	{Name: "acting", Min: 1, Max: 10, Step: 1, Weight: 1},
	{Name: "rewatch", Min: 0, Max: 5, Step: 0.5, Weight: 1},
	{Name: "trivia", Min: 0, Max: 1, Step: 1, Weight: 0},
}

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		scores  map[string]float64
		wantErr bool
	}{
		{name: "valid", scores: map[string]float64{"story": 7, "rewatch": 2.5}},
		{name: "empty", scores: nil},
		{name: "unknown dimension", scores: map[string]float64{"music": 5}, wantErr: true},
		{name: "below min", scores: map[string]float64{"story": 0}, wantErr: true},
		{name: "above max", scores: map[string]float64{"rewatch": 5.5}, wantErr: true},
		{name: "off step", scores: map[string]float64{"rewatch": 2.25}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testDimensions.Validate(tt.scores)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimension)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDimensionsOverall(t *testing.T) {
	// story 10 -> 100 (weight 2), acting 1 -> 0 (weight 1): (200+0)/3 = 66.67
	got, ok := testDimensions.Overall(map[string]float64{"story": 10, "acting": 1})
	assert.True(t, ok)
	assert.Equal(t, 67, got)

	got, ok = testDimensions.Overall(map[string]float64{"rewatch": 2.5})
	assert.True(t, ok)
	assert.Equal(t, 50, got)

	_, ok = testDimensions.Overall(map[string]float64{"trivia": 1})
	assert.False(t, ok)
}

func TestRatingProtoConversion(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	r := &Rating{UserID: "u1", ItemID: 9, OverallScore: 80, Dimensions: map[string]float64{"story": 8}, RatedAt: at, UpdatedAt: at}
	wire := &gen.Rating{UserId: "u1", ItemId: 9, OverallScore: 80, Dimensions: map[string]float64{"story": 8}, RatedAt: at, UpdatedAt: at}
	assert.Equal(t, "", cmp.Diff(wire, RatingToProto(r)))
	assert.Equal(t, "", cmp.Diff(r, RatingFromProto(wire)))
}
