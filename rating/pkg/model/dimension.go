package model

import (
	"errors"
	"fmt"
	"math"
)

// Overall score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// ErrInvalidDimension is returned when a dimension score fails validation.
var ErrInvalidDimension = errors.New("invalid dimension score")

// Dimension defines a rating dimension, such as acting or story, with its
// scale and its weight in the derived overall score.
type Dimension struct {
	Name   string  `yaml:"name" validate:"required"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max" validate:"gtfield=Min"`
	Step   float64 `yaml:"step" validate:"gt=0"`
	Weight float64 `yaml:"weight" validate:"gte=0"`
}

// Dimensions is a configured set of rating dimensions.
type Dimensions []Dimension

func (d Dimensions) lookup(name string) (Dimension, bool) {
	for _, dim := range d {
		if dim.Name == name {
			return dim, true
		}
	}
	return Dimension{}, false
}

// Validate checks that every score names a known dimension, lies within
// its range and falls on its step.
func (d Dimensions) Validate(scores map[string]float64) error {
	for name, v := range scores {
		dim, ok := d.lookup(name)
		if !ok {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidDimension, name)
		}
		if math.IsNaN(v) || v < dim.Min || v > dim.Max {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidDimension, name, v, dim.Min, dim.Max)
		}
		steps := (v - dim.Min) / dim.Step
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return fmt.Errorf("%w: %s=%v is not a multiple of %v", ErrInvalidDimension, name, v, dim.Step)
		}
	}
	return nil
}

// Overall derives a 0-100 overall score as the weight-normalised mean of
// the scores, each scaled to 0-100 by its dimension range. It reports
// false when no supplied dimension carries weight.
func (d Dimensions) Overall(scores map[string]float64) (int, bool) {
	var sum, weights float64
	for name, v := range scores {
		dim, ok := d.lookup(name)
		if !ok || dim.Weight <= 0 {
			continue
		}
		sum += dim.Weight * 100 * (v - dim.Min) / (dim.Max - dim.Min)
		weights += dim.Weight
	}
	if weights == 0 {
		return 0, false
	}
	return int(math.Round(sum / weights)), true
}
