package domain

import (
	"fmt"
	"math"
)

// Coord identifies a cell: X is the column within a row, Y is the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Cell is the state of one grid position: NotASeat, Empty, or a positive group id.
type Cell int

const (
	NotASeat Cell = -1
	Empty    Cell = 0
)

// Occupied reports whether the cell holds someone.
func (c Cell) Occupied() bool { return c > 0 }

// Placement is the concrete set of seats chosen for one group.
type Placement []Coord

// Contains reports whether c is one of the placement's seats.
func (p Placement) Contains(c Coord) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// CoordSum is the sum of all member x and y values.
func (p Placement) CoordSum() int {
	s := 0
	for _, c := range p {
		s += c.X + c.Y
	}
	return s
}

// SeatPitch scales grid steps into physical distance. Width is the x step
// (one column), Length the y step (one row). The zero value means unit pitch.
type SeatPitch struct {
	Width  float64 `json:"seatwidth,omitempty" yaml:"seatwidth,omitempty" validate:"gte=0"`
	Length float64 `json:"seatlen,omitempty" yaml:"seatlen,omitempty" validate:"gte=0"`
}

// UnitPitch treats every row and column step as distance 1.
var UnitPitch = SeatPitch{Width: 1, Length: 1}

func (p SeatPitch) normalized() SeatPitch {
	if p.Width <= 0 {
		p.Width = 1
	}
	if p.Length <= 0 {
		p.Length = 1
	}
	return p
}

// Distance is the Euclidean distance between two seats after scaling.
func (p SeatPitch) Distance(a, b Coord) float64 {
	p = p.normalized()
	return math.Hypot(float64(a.X-b.X)*p.Width, float64(a.Y-b.Y)*p.Length)
}

// Layout describes a venue: the bounding grid and the cells that are not seats.
// Boxes are half-open ranges [x0,x1) x [y0,y1).
type Layout struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Dimensions [2]int   `json:"dimensions" yaml:"dimensions" validate:"dive,gt=0"`
	EmptyRows  []int    `json:"emptyrows,omitempty" yaml:"emptyrows,omitempty" validate:"dive,gte=0"`
	EmptyCols  []int    `json:"emptycols,omitempty" yaml:"emptycols,omitempty" validate:"dive,gte=0"`
	EmptyBoxes [][4]int `json:"emptyboxes,omitempty" yaml:"emptyboxes,omitempty"`
	Gaps       [][2]int `json:"gaps,omitempty" yaml:"gaps,omitempty"`
	SeatPitch  `yaml:",inline"`
}

// Run is a persisted solve: the inputs and the resulting seat map.
type Run struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Strategy  Strategy  `json:"strategy"`
	Order     PopOrder  `json:"order"`
	Seed      int64     `json:"seed,omitempty"`
	Groups    []int     `json:"groups"`
	Cells     [][]int   `json:"cells"`
	Pitch     SeatPitch `json:"pitch"`
	Seated    int       `json:"seated"`
	Score     float64   `json:"score,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt int64     `json:"createdAt,omitempty"`
}

// RunMeta is a lightweight listing entry.
type RunMeta struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Strategy  Strategy `json:"strategy"`
	Seated    int      `json:"seated"`
	CreatedAt int64    `json:"createdAt"`
}

// Meta derives the listing entry for r.
func (r *Run) Meta() RunMeta {
	return RunMeta{ID: r.ID, Name: r.Name, Strategy: r.Strategy, Seated: r.Seated, CreatedAt: r.CreatedAt}
}
