package generator

import (
	"fmt"
	"strings"

	"svw.info/seatplan/internal/ports"
)

// Distribution is the declarative form of a generator, as found in config
// files and API requests.
type Distribution struct {
	Kind    string          `json:"kind" yaml:"kind" validate:"oneof=uniform decaying normal custom weighted"`
	Max     int             `json:"max,omitempty" yaml:"max,omitempty" validate:"gte=0"`
	Lambda  float64         `json:"lambda,omitempty" yaml:"lambda,omitempty" validate:"gte=0"`
	Mean    float64         `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std     float64         `json:"std,omitempty" yaml:"std,omitempty" validate:"gte=0"`
	Counts  map[int]int     `json:"counts,omitempty" yaml:"counts,omitempty"`
	Weights map[int]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// Generator builds the generator the distribution describes.
func (d Distribution) Generator() (ports.Generator, error) {
	switch strings.ToLower(strings.TrimSpace(d.Kind)) {
	case "uniform":
		return Uniform{Max: d.Max}, nil
	case "decaying":
		return Decaying{Lambda: d.Lambda, Max: d.Max}, nil
	case "normal":
		return Normal{Mean: d.Mean, Std: d.Std, Max: d.Max}, nil
	case "custom":
		return Custom{Counts: d.Counts}, nil
	case "weighted", "":
		return Weighted{Weights: d.Weights}, nil
	default:
		return nil, fmt.Errorf("%w: unknown distribution %q", ErrBadParameters, d.Kind)
	}
}
