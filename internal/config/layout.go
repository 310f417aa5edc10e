package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"svw.info/seatplan/internal/domain"
)

// Blocks describes a venue of identical seat blocks split by one-seat aisles.
type Blocks struct {
	Dims   [2]int `json:"dims" yaml:"dims" validate:"dive,gt=0"`
	Tiling [2]int `json:"tiling" yaml:"tiling" validate:"dive,gt=0"`
}

// venueFile is either a plain layout or a block description plus extra holes.
type venueFile struct {
	domain.Layout `yaml:",inline"`
	Blocks        *Blocks `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// LoadLayout reads a venue file. Unnamed venues take the file's base name.
func LoadLayout(path string) (domain.Layout, error) {
	var vf venueFile
	if err := decodeFile(path, &vf); err != nil {
		return domain.Layout{}, err
	}
	l, err := vf.resolve()
	if err != nil {
		return domain.Layout{}, fmt.Errorf("venue %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

func (vf venueFile) resolve() (domain.Layout, error) {
	l := vf.Layout
	if vf.Blocks != nil {
		if err := validate.Struct(vf.Blocks); err != nil {
			return domain.Layout{}, fmt.Errorf("%w: %v", domain.ErrInvalidLayout, err)
		}
		base, err := domain.RegularBlocks(vf.Blocks.Dims, vf.Blocks.Tiling)
		if err != nil {
			return domain.Layout{}, err
		}
		base.Name = l.Name
		base.SeatPitch = l.SeatPitch
		base.EmptyRows = append(base.EmptyRows, l.EmptyRows...)
		base.EmptyCols = append(base.EmptyCols, l.EmptyCols...)
		base.EmptyBoxes = l.EmptyBoxes
		base.Gaps = l.Gaps
		l = base
	}
	if err := ValidateLayout(l); err != nil {
		return domain.Layout{}, err
	}
	return l, nil
}

// ValidateLayout checks tags and that the layout builds a grid.
func ValidateLayout(l domain.Layout) error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLayout, err)
	}
	if _, err := domain.NewGrid(l); err != nil {
		return err
	}
	return nil
}
