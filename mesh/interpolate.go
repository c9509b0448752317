package mesh

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/util"
)

// Kernel selects how colours are interpolated between control points.
type Kernel int

const (
	// Bicubic uses Hermite patches with Catmull-Rom tangents. The surface is
	// C1 continuous across patch boundaries.
	Bicubic Kernel = iota
	// Bilinear blends the four surrounding control points.
	Bilinear
)

func (k Kernel) String() string {
	switch k {
	case Bicubic:
		return "bicubic"
	case Bilinear:
		return "bilinear"
	}
	return "unknown"
}

// ParseKernel converts a kernel name into a Kernel.
func ParseKernel(name string) (Kernel, bool) {
	switch name {
	case "", "bicubic":
		return Bicubic, true
	case "bilinear":
		return Bilinear, true
	}
	return Bicubic, false
}

// Interpolator produces the colour field of a Grid for a blend parameter t.
type Interpolator struct {
	grid   *Grid
	kernel Kernel
}

// NewInterpolator creates an Interpolator over grid.
func NewInterpolator(grid *Grid, kernel Kernel) *Interpolator {
	m := new(Interpolator)
	m.grid = grid
	m.kernel = kernel
	return m
}

// Grid returns the grid being interpolated.
func (m *Interpolator) Grid() *Grid {
	return m.grid
}

// Blend returns the per control point colours at t, indexed like the
// grid points. t = 0 yields keyframe A and t = 1 keyframe B exactly.
func (m *Interpolator) Blend(t float64) [Size]colorful.Color {
	t = util.Clamp01(t)
	var out [Size]colorful.Color
	for i := range out {
		out[i] = lerpColor(m.grid.a[i], m.grid.b[i], t)
	}
	return out
}

// Sample returns the surface colour at (x, y) in the unit square.
func (m *Interpolator) Sample(t, x, y float64) colorful.Color {
	l := m.lattice(m.Blend(t))
	return l.sample(m.kernel, util.Clamp01(x), util.Clamp01(y))
}

// Render allocates a width by height image holding the field at t.
func (m *Interpolator) Render(t float64, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	m.RenderInto(img, t)
	return img
}

// RenderInto fills dst with the field at t. The unit square is stretched
// over dst's bounds whatever their aspect ratio.
func (m *Interpolator) RenderInto(dst *image.RGBA, t float64) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	l := m.lattice(m.Blend(t))
	for px := 0; px < w; px++ {
		x := (float64(px) + 0.5) / float64(w)
		col := l.column(m.kernel, x)
		for py := 0; py < h; py++ {
			y := (float64(py) + 0.5) / float64(h)
			c := interpolate(m.kernel, col[:], y).Clamped()
			r, g, bl := c.RGB255()
			dst.SetRGBA(b.Min.X+px, b.Min.Y+py, color.RGBA{R: r, G: g, B: bl, A: 0xff})
		}
	}
}

// lattice holds blended colours arranged by [col][row].
type lattice [Columns][Rows]colorful.Color

func (m *Interpolator) lattice(blended [Size]colorful.Color) lattice {
	var l lattice
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			l[c][r] = blended[m.grid.cell[c][r]]
		}
	}
	return l
}

// column interpolates every lattice row along x, leaving one colour per row.
func (l *lattice) column(k Kernel, x float64) [Rows]colorful.Color {
	var col [Rows]colorful.Color
	for r := 0; r < Rows; r++ {
		row := [Columns]colorful.Color{l[0][r], l[1][r], l[2][r]}
		col[r] = interpolate(k, row[:], x)
	}
	return col
}

func (l *lattice) sample(k Kernel, x, y float64) colorful.Color {
	col := l.column(k, x)
	return interpolate(k, col[:], y).Clamped()
}

// interpolate evaluates the 1D curve through evenly spaced stops at u in [0, 1].
func interpolate(k Kernel, stops []colorful.Color, u float64) colorful.Color {
	n := len(stops) - 1
	s := u * float64(n)
	i := int(math.Floor(s))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	f := s - float64(i)

	if k == Bilinear {
		return lerpColor(stops[i], stops[i+1], f)
	}

	m0 := tangent(stops, i)
	m1 := tangent(stops, i+1)
	return colorful.Color{
		R: hermite(stops[i].R, stops[i+1].R, m0.R, m1.R, f),
		G: hermite(stops[i].G, stops[i+1].G, m0.G, m1.G, f),
		B: hermite(stops[i].B, stops[i+1].B, m0.B, m1.B, f),
	}
}

// tangent is the Catmull-Rom slope at stop i, one sided at the ends.
func tangent(stops []colorful.Color, i int) colorful.Color {
	lo, hi := i-1, i+1
	span := 2.0
	if lo < 0 {
		lo, span = i, 1
	}
	if hi >= len(stops) {
		hi, span = i, 1
	}
	return colorful.Color{
		R: (stops[hi].R - stops[lo].R) / span,
		G: (stops[hi].G - stops[lo].G) / span,
		B: (stops[hi].B - stops[lo].B) / span,
	}
}

// hermite evaluates the cubic Hermite segment from p0 to p1 at f.
func hermite(p0, p1, m0, m1, f float64) float64 {
	f2 := f * f
	f3 := f2 * f
	h00 := 2*f3 - 3*f2 + 1
	h10 := f3 - 2*f2 + f
	h01 := -2*f3 + 3*f2
	h11 := f3 - f2
	return h00*p0 + h10*m0 + h01*p1 + h11*m1
}

// lerpColor is written as a*(1-t) + b*t so both endpoints are reproduced
// exactly.
func lerpColor(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R*(1-t) + b.R*t,
		G: a.G*(1-t) + b.G*t,
		B: a.B*(1-t) + b.B*t,
	}
}
