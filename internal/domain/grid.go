package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Grid is the seat map of one venue. Cells only ever move from Empty to an
// occupied group id; the empty set and unfilled count mirror the cells.
//
// A Grid is owned by a single solve run. Use Clone to hand independent
// copies to concurrent trials.
type Grid struct {
	width, height int
	cells         []Cell // row-major, index y*width+x
	empty         mapset.Set[Coord]
	seats         int
	unfilled      int
	pitch         SeatPitch
}

// NewGrid builds an empty seat map from a venue layout.
func NewGrid(l Layout) (*Grid, error) {
	w, h := l.Dimensions[0], l.Dimensions[1]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, w, h)
	}
	cells := make([]Cell, w*h)
	for _, y := range l.EmptyRows {
		if y < 0 || y >= h {
			return nil, fmt.Errorf("%w: empty row %d outside 0..%d", ErrInvalidLayout, y, h-1)
		}
		for x := 0; x < w; x++ {
			cells[y*w+x] = NotASeat
		}
	}
	for _, x := range l.EmptyCols {
		if x < 0 || x >= w {
			return nil, fmt.Errorf("%w: empty column %d outside 0..%d", ErrInvalidLayout, x, w-1)
		}
		for y := 0; y < h; y++ {
			cells[y*w+x] = NotASeat
		}
	}
	for _, b := range l.EmptyBoxes {
		x0, x1, y0, y1 := b[0], b[1], b[2], b[3]
		if x0 < 0 || y0 < 0 || x1 > w || y1 > h || x0 > x1 || y0 > y1 {
			return nil, fmt.Errorf("%w: empty box %v outside %dx%d", ErrInvalidLayout, b, w, h)
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cells[y*w+x] = NotASeat
			}
		}
	}
	for _, gp := range l.Gaps {
		x, y := gp[0], gp[1]
		if x < 0 || x >= w || y < 0 || y >= h {
			return nil, fmt.Errorf("%w: gap %v outside %dx%d", ErrInvalidLayout, gp, w, h)
		}
		cells[y*w+x] = NotASeat
	}
	return newGrid(w, h, cells, l.SeatPitch), nil
}

// GridFromCells rebuilds a grid from a row-major snapshot (cells[y][x]) such
// as the one returned by Cells.
func GridFromCells(rows [][]int, pitch SeatPitch) (*Grid, error) {
	h := len(rows)
	if h == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty cell snapshot", ErrInvalidLayout)
	}
	w := len(rows[0])
	cells := make([]Cell, 0, w*h)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, y, len(row), w)
		}
		for _, v := range row {
			if v < int(NotASeat) {
				return nil, fmt.Errorf("%w: cell value %d in row %d", ErrInvalidLayout, v, y)
			}
			cells = append(cells, Cell(v))
		}
	}
	return newGrid(w, h, cells, pitch), nil
}

// RegularBlocks lays out tiling[0] x tiling[1] blocks of blockDims seats each,
// separated by single-seat aisles on both axes.
func RegularBlocks(blockDims, tiling [2]int) (Layout, error) {
	if blockDims[0] <= 0 || blockDims[1] <= 0 || tiling[0] <= 0 || tiling[1] <= 0 {
		return Layout{}, fmt.Errorf("%w: blocks %v tiling %v", ErrInvalidLayout, blockDims, tiling)
	}
	l := Layout{
		Dimensions: [2]int{
			blockDims[0]*tiling[0] + tiling[0] - 1,
			blockDims[1]*tiling[1] + tiling[1] - 1,
		},
	}
	for i := 1; i < tiling[0]; i++ {
		l.EmptyCols = append(l.EmptyCols, i*(blockDims[0]+1)-1)
	}
	for i := 1; i < tiling[1]; i++ {
		l.EmptyRows = append(l.EmptyRows, i*(blockDims[1]+1)-1)
	}
	return l, nil
}

func newGrid(w, h int, cells []Cell, pitch SeatPitch) *Grid {
	g := &Grid{
		width:  w,
		height: h,
		cells:  cells,
		empty:  mapset.New[Coord](),
		pitch:  pitch.normalized(),
	}
	for i, c := range cells {
		if c == NotASeat {
			continue
		}
		g.seats++
		if c == Empty {
			g.empty.Put(Coord{X: i % w, Y: i / w})
		}
	}
	g.unfilled = g.empty.Size()
	return g
}

func (g *Grid) Width() int       { return g.width }
func (g *Grid) Height() int      { return g.height }
func (g *Grid) Pitch() SeatPitch { return g.pitch }
func (g *Grid) TotalSeats() int  { return g.seats }
func (g *Grid) Unfilled() int    { return g.unfilled }
func (g *Grid) Occupants() int   { return g.seats - g.unfilled }

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// At returns the cell state; out-of-range coordinates read as NotASeat.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return NotASeat
	}
	return g.cells[c.Y*g.width+c.X]
}

// IsEmptySeat reports whether c is a seat nobody occupies yet.
func (g *Grid) IsEmptySeat(c Coord) bool { return g.empty.Has(c) }

// AreAllEmpty reports whether every coordinate is an empty seat.
func (g *Grid) AreAllEmpty(coords []Coord) bool {
	for _, c := range coords {
		if !g.empty.Has(c) {
			return false
		}
	}
	return true
}

// Occupy seats one member of groupID at c.
func (g *Grid) Occupy(c Coord, groupID int) error {
	if groupID <= 0 {
		return fmt.Errorf("%w: group id %d at %v", ErrInvalidSeatAccess, groupID, c)
	}
	if !g.empty.Has(c) {
		return fmt.Errorf("%w: %v holds %d", ErrInvalidSeatAccess, c, g.At(c))
	}
	g.cells[c.Y*g.width+c.X] = Cell(groupID)
	g.empty.Remove(c)
	g.unfilled--
	return nil
}

// OccupyMany seats each coordinate in turn and stops at the first failure.
// Seats written before the failure stay written; validate with AreAllEmpty first.
func (g *Grid) OccupyMany(coords []Coord, groupID int) error {
	for _, c := range coords {
		if err := g.Occupy(c, groupID); err != nil {
			return err
		}
	}
	return nil
}

// EmptyCoords lists the empty seats in row-major order.
func (g *Grid) EmptyCoords() []Coord {
	out := make([]Coord, 0, g.empty.Size())
	g.empty.Each(func(c Coord) { out = append(out, c) })
	slices.SortFunc(out, compareCoords)
	return out
}

// EmptyCount is the size of the empty set.
func (g *Grid) EmptyCount() int { return g.empty.Size() }

// OccupiedCoords lists occupied seats in row-major order.
func (g *Grid) OccupiedCoords() []Coord {
	var out []Coord
	for i, c := range g.cells {
		if c.Occupied() {
			out = append(out, Coord{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// SeatCoords lists every seat, occupied or not, in row-major order.
func (g *Grid) SeatCoords() []Coord {
	out := make([]Coord, 0, g.seats)
	for i, c := range g.cells {
		if c != NotASeat {
			out = append(out, Coord{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Groups maps each group id to its seats.
func (g *Grid) Groups() map[int][]Coord {
	out := make(map[int][]Coord)
	for i, c := range g.cells {
		if c.Occupied() {
			out[int(c)] = append(out[int(c)], Coord{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// NextGroupID is one past the largest id on the grid, so 1 for a fresh venue.
func (g *Grid) NextGroupID() int {
	top := 0
	for _, c := range g.cells {
		if int(c) > top {
			top = int(c)
		}
	}
	return top + 1
}

// Distance between two seats under the grid's pitch.
func (g *Grid) Distance(a, b Coord) float64 { return g.pitch.Distance(a, b) }

// Clone returns a deep copy that shares no state with g.
func (g *Grid) Clone() *Grid {
	cp := &Grid{
		width:    g.width,
		height:   g.height,
		cells:    slices.Clone(g.cells),
		empty:    mapset.New[Coord](),
		seats:    g.seats,
		unfilled: g.unfilled,
		pitch:    g.pitch,
	}
	g.empty.Each(func(c Coord) { cp.empty.Put(c) })
	return cp
}

// Cells snapshots the grid as rows of raw cell values, cells[y][x].
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.height)
	for y := range out {
		row := make([]int, g.width)
		for x := range row {
			row[x] = int(g.cells[y*g.width+x])
		}
		out[y] = row
	}
	return out
}

// String renders one line per row: '.' empty, '#' no seat, otherwise the group id.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			switch c := g.cells[y*g.width+x]; c {
			case NotASeat:
				sb.WriteString("  #")
			case Empty:
				sb.WriteString("  .")
			default:
				fmt.Fprintf(&sb, "%3d", c)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func compareCoords(a, b Coord) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
