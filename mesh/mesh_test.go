package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/palette"
)

func colours(names ...string) []colorful.Color {
	out := make([]colorful.Color, len(names))
	for i, n := range names {
		out[i] = palette.MustLookup(n)
	}
	return out
}

func distance(a, b colorful.Color) float64 {
	return math.Sqrt((a.R-b.R)*(a.R-b.R) + (a.G-b.G)*(a.G-b.G) + (a.B-b.B)*(a.B-b.B))
}

func TestNewGridErrors(t *testing.T) {
	a := colours(DefaultKeyframeA...)
	b := colours(DefaultKeyframeB...)

	shifted := append([]Point(nil), DefaultPoints...)
	shifted[4] = Point{0.4, 0.5}

	dup := append([]Point(nil), DefaultPoints...)
	dup[8] = Point{0, 0}

	tests := []struct {
		name   string
		points []Point
		a, b   []colorful.Color
		want   error
	}{
		{"short keyframe", DefaultPoints, a[:8], b, ErrGridSize},
		{"long keyframe", DefaultPoints, a, append(b, b[0]), ErrGridSize},
		{"short points", DefaultPoints[:3], a, b, ErrGridSize},
		{"off lattice", shifted, a, b, ErrOffLattice},
		{"duplicate", dup, a, b, ErrDuplicatePoint},
	}

	for _, tt := range tests {
		_, err := NewGrid(tt.points, tt.a, tt.b)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestNewGridFromNamesUnknown(t *testing.T) {
	names := append([]string(nil), DefaultKeyframeA...)
	names[3] = "mauve"
	if _, err := NewGridFromNames(DefaultPoints, names, DefaultKeyframeB); err == nil {
		t.Error("expected error for unknown colour")
	}
}

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()

	if diff := cmp.Diff(DefaultPoints, g.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(colours(DefaultKeyframeA...), g.KeyframeA()); diff != "" {
		t.Errorf("keyframe A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(colours(DefaultKeyframeB...), g.KeyframeB()); diff != "" {
		t.Errorf("keyframe B mismatch (-want +got):\n%s", diff)
	}

	// Points are listed with x varying slowest.
	tests := []struct {
		col, row, index int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 1, 4},
		{2, 0, 6},
		{2, 2, 8},
	}
	for _, tt := range tests {
		if got := g.Index(tt.col, tt.row); got != tt.index {
			t.Errorf("Index(%d, %d) = %d, want %d", tt.col, tt.row, got, tt.index)
		}
	}
}

func TestGridIsImmutable(t *testing.T) {
	g := DefaultGrid()
	a := g.KeyframeA()
	a[0] = colorful.Color{R: 1}
	if g.KeyframeA()[0] == a[0] {
		t.Error("keyframe copy aliases grid storage")
	}
}

func TestBlendEndpoints(t *testing.T) {
	g := DefaultGrid()
	m := NewInterpolator(g, Bicubic)

	a := m.Blend(0)
	if diff := cmp.Diff(g.KeyframeA(), a[:]); diff != "" {
		t.Errorf("t=0 mismatch (-want +got):\n%s", diff)
	}
	b := m.Blend(1)
	if diff := cmp.Diff(g.KeyframeB(), b[:]); diff != "" {
		t.Errorf("t=1 mismatch (-want +got):\n%s", diff)
	}
}

func TestBlendIsLinear(t *testing.T) {
	g := DefaultGrid()
	m := NewInterpolator(g, Bicubic)
	ka, kb := g.KeyframeA(), g.KeyframeB()

	for _, tt := range []float64{0.1, 0.25, 0.5, 0.9} {
		got := m.Blend(tt)
		for i := range got {
			want := colorful.Color{
				R: ka[i].R + (kb[i].R-ka[i].R)*tt,
				G: ka[i].G + (kb[i].G-ka[i].G)*tt,
				B: ka[i].B + (kb[i].B-ka[i].B)*tt,
			}
			if d := distance(want, got[i]); d > 1e-12 {
				t.Errorf("t=%v index %d: got %v, want %v", tt, i, got[i], want)
			}
		}
	}
}

func TestSampleScenarios(t *testing.T) {
	m := NewInterpolator(DefaultGrid(), Bicubic)
	purple := palette.MustLookup(palette.DeepPurple)
	black := palette.MustLookup(palette.Black)

	tests := []struct {
		name string
		t    float64
		p    Point
		want colorful.Color
	}{
		{"centre at t=0", 0, DefaultPoints[4], black},
		{"centre at t=1", 1, DefaultPoints[4], black},
		{"corner at t=0.5", 0.5, DefaultPoints[0], colorful.Color{R: purple.R / 2, G: purple.G / 2, B: purple.B / 2}},
	}

	for _, tt := range tests {
		got := m.Sample(tt.t, tt.p.X, tt.p.Y)
		if d := distance(tt.want, got); d > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSamplePassesThroughControlPoints(t *testing.T) {
	for _, k := range []Kernel{Bicubic, Bilinear} {
		m := NewInterpolator(DefaultGrid(), k)
		for _, tt := range []float64{0, 0.3, 0.5, 1} {
			blended := m.Blend(tt)
			for i, p := range DefaultPoints {
				got := m.Sample(tt, p.X, p.Y)
				if diff := cmp.Diff(blended[i], got); diff != "" {
					t.Errorf("%v t=%v index %d (-want +got):\n%s", k, tt, i, diff)
				}
			}
		}
	}
}

func TestSampleConvergesToControlPoint(t *testing.T) {
	m := NewInterpolator(DefaultGrid(), Bicubic)
	target := m.Blend(0.4)[4]

	prev := math.Inf(1)
	for _, eps := range []float64{0.1, 0.01, 0.001, 0.0001} {
		got := m.Sample(0.4, 0.5+eps, 0.5-eps)
		d := distance(target, got)
		if d > prev+1e-12 {
			t.Errorf("eps=%v: distance %v grew from %v", eps, d, prev)
		}
		prev = d
	}
	if prev > 1e-3 {
		t.Errorf("did not converge, final distance %v", prev)
	}
}

func TestSampleContinuousAcrossPatches(t *testing.T) {
	for _, k := range []Kernel{Bicubic, Bilinear} {
		m := NewInterpolator(DefaultGrid(), k)
		const eps = 1e-7
		for _, y := range []float64{0.1, 0.33, 0.5, 0.8} {
			left := m.Sample(0.2, 0.5-eps, y)
			right := m.Sample(0.2, 0.5+eps, y)
			if d := distance(left, right); d > 1e-5 {
				t.Errorf("%v: jump of %v across x=0.5 at y=%v", k, d, y)
			}
			above := m.Sample(0.2, y, 0.5-eps)
			below := m.Sample(0.2, y, 0.5+eps)
			if d := distance(above, below); d > 1e-5 {
				t.Errorf("%v: jump of %v across y=0.5 at x=%v", k, d, y)
			}
		}
	}
}

func TestSampleStaysInGamut(t *testing.T) {
	m := NewInterpolator(DefaultGrid(), Bicubic)
	for x := 0.0; x <= 1; x += 0.05 {
		for y := 0.0; y <= 1; y += 0.05 {
			if c := m.Sample(0.7, x, y); !c.IsValid() {
				t.Fatalf("(%v, %v) out of gamut: %v", x, y, c)
			}
		}
	}
}

func TestRenderStretchesToViewport(t *testing.T) {
	m := NewInterpolator(DefaultGrid(), Bilinear)
	img := m.Render(0, 40, 10)

	if got := img.Bounds().Size(); got.X != 40 || got.Y != 10 {
		t.Fatalf("got size %v", got)
	}

	// Top left is near deep purple, bottom right near light blue.
	tl := img.RGBAAt(0, 0)
	br := img.RGBAAt(39, 9)
	if tl.B <= tl.G || tl.A != 0xff {
		t.Errorf("unexpected top left pixel %v", tl)
	}
	if br.B <= br.R || br.A != 0xff {
		t.Errorf("unexpected bottom right pixel %v", br)
	}

	want := m.Sample(0, 20.5/40, 5.5/10).Clamped()
	r, g, b := want.RGB255()
	got := img.RGBAAt(20, 5)
	if diff := cmp.Diff([]uint8{r, g, b}, []uint8{got.R, got.G, got.B}); diff != "" {
		t.Errorf("pixel mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in   string
		want Kernel
		ok   bool
	}{
		{"", Bicubic, true},
		{"bicubic", Bicubic, true},
		{"bilinear", Bilinear, true},
		{"nearest", Bicubic, false},
	}
	for _, tt := range tests {
		got, ok := ParseKernel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKernel(%q) = %v, %v", tt.in, got, ok)
		}
	}
}
