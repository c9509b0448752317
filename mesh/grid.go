// Package mesh models the 3x3 mesh gradient: its control point lattice,
// the two keyframe colourings and the interpolation of a colour field
// between them.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/palette"
)

// Lattice dimensions. The mesh is always 3x3.
const (
	Columns = 3
	Rows    = 3
	Size    = Columns * Rows
)

var (
	// ErrGridSize is returned when points or keyframes do not hold Size entries.
	ErrGridSize = errors.New("mesh: grid needs exactly 9 points and 9 colours per keyframe")
	// ErrOffLattice is returned when a point is not one of the fixed lattice coordinates.
	ErrOffLattice = errors.New("mesh: point is not on the 3x3 lattice")
	// ErrDuplicatePoint is returned when two points share a lattice cell.
	ErrDuplicatePoint = errors.New("mesh: lattice cell used twice")
)

// Point is a control point location in the unit square.
type Point struct {
	X float64
	Y float64
}

// DefaultPoints is the control point lattice, indexed the way the
// keyframes are.
var DefaultPoints = []Point{
	{0, 0}, {0, 0.5}, {0, 1},
	{0.5, 0}, {0.5, 0.5}, {0.5, 1},
	{1, 0}, {1, 0.5}, {1, 1},
}

// DefaultKeyframeA and DefaultKeyframeB name the palette colours of the two
// animation endpoints.
var (
	DefaultKeyframeA = []string{
		palette.DeepPurple, palette.Black, palette.LightGreen,
		palette.Black, palette.Black, palette.Black,
		palette.Amber, palette.Black, palette.LightBlue,
	}
	DefaultKeyframeB = []string{
		palette.Black, palette.LightGreen, palette.Black,
		palette.DeepPurple, palette.Black, palette.LightBlue,
		palette.Black, palette.Amber, palette.Black,
	}
)

// Grid is an immutable set of control points with two keyframes.
type Grid struct {
	points [Size]Point
	a      [Size]colorful.Color
	b      [Size]colorful.Color

	// cell[col][row] is the index of the control point at that lattice cell.
	cell [Columns][Rows]int
}

// NewGrid validates and copies the given points and keyframes.
func NewGrid(points []Point, a, b []colorful.Color) (*Grid, error) {
	if len(points) != Size || len(a) != Size || len(b) != Size {
		return nil, fmt.Errorf("%w: got %d points, %d/%d colours", ErrGridSize, len(points), len(a), len(b))
	}

	g := new(Grid)
	var seen [Columns][Rows]bool
	for i, p := range points {
		col, ok := latticeIndex(p.X, Columns)
		if !ok {
			return nil, fmt.Errorf("%w: index %d x=%v", ErrOffLattice, i, p.X)
		}
		row, ok := latticeIndex(p.Y, Rows)
		if !ok {
			return nil, fmt.Errorf("%w: index %d y=%v", ErrOffLattice, i, p.Y)
		}
		if seen[col][row] {
			return nil, fmt.Errorf("%w: index %d at (%v, %v)", ErrDuplicatePoint, i, p.X, p.Y)
		}
		seen[col][row] = true
		g.cell[col][row] = i
		g.points[i] = p
	}
	copy(g.a[:], a)
	copy(g.b[:], b)

	return g, nil
}

// NewGridFromNames resolves keyframe colour names against the palette.
func NewGridFromNames(points []Point, a, b []string) (*Grid, error) {
	ca, err := resolve(a)
	if err != nil {
		return nil, err
	}
	cb, err := resolve(b)
	if err != nil {
		return nil, err
	}
	return NewGrid(points, ca, cb)
}

// DefaultGrid builds the built-in grid. A malformed built-in table is a
// programming error, so it panics.
func DefaultGrid() *Grid {
	g, err := NewGridFromNames(DefaultPoints, DefaultKeyframeA, DefaultKeyframeB)
	if err != nil {
		panic(err)
	}
	return g
}

// Points returns the control points in index order.
func (g *Grid) Points() []Point {
	return append([]Point(nil), g.points[:]...)
}

// KeyframeA returns the colours at t = 0.
func (g *Grid) KeyframeA() []colorful.Color {
	return append([]colorful.Color(nil), g.a[:]...)
}

// KeyframeB returns the colours at t = 1.
func (g *Grid) KeyframeB() []colorful.Color {
	return append([]colorful.Color(nil), g.b[:]...)
}

// Index returns the control point index at a lattice cell.
func (g *Grid) Index(col, row int) int {
	return g.cell[col][row]
}

func resolve(names []string) ([]colorful.Color, error) {
	colours := make([]colorful.Color, len(names))
	for i, n := range names {
		c, ok := palette.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("mesh: keyframe index %d: unknown colour %q", i, n)
		}
		colours[i] = c
	}
	return colours, nil
}

// latticeIndex maps a unit coordinate onto one of n evenly spaced stops.
func latticeIndex(v float64, n int) (int, bool) {
	scaled := v * float64(n-1)
	i := math.Round(scaled)
	if math.Abs(scaled-i) > 1e-9 || i < 0 || int(i) >= n {
		return 0, false
	}
	return int(i), true
}
