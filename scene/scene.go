// Package scene composes the mesh gradient screen: a backdrop, the
// translucent watermark text and the animated mesh, drawn in that order.
package scene

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/mesh"
	"github.com/matt-g-everett/meshtx/palette"
)

// Options configures a Scene.
type Options struct {
	Grid   *mesh.Grid
	Kernel mesh.Kernel
	// MeshOpacity below 1 lets the watermark show through the mesh.
	MeshOpacity float64
	// Backdrop is painted first, when set.
	Backdrop  *colorful.Color
	Watermark WatermarkOptions
	// ShowLabels overlays each control point's coordinates.
	ShowLabels bool
}

// DefaultOptions is the stock screen: red backdrop, opaque mesh and the
// MESH/GRAD watermark.
func DefaultOptions() Options {
	red := palette.MustLookup(palette.Red)
	return Options{
		Grid:        mesh.DefaultGrid(),
		Kernel:      mesh.Bicubic,
		MeshOpacity: 1,
		Backdrop:    &red,
		Watermark: WatermarkOptions{
			Lines:   []string{"MESH", "GRAD"},
			Size:    200,
			Gaps:    []int{540},
			Colour:  palette.MustLookup(palette.BlueGray),
			Opacity: 0.1,
		},
	}
}

// Scene renders frames from an ordered list of layers.
type Scene struct {
	mu           sync.Mutex
	layers       []Layer
	watermark    *Watermark
	interpolator *mesh.Interpolator
}

// New builds the layers described by opts.
func New(opts Options) (*Scene, error) {
	grid := opts.Grid
	if grid == nil {
		grid = mesh.DefaultGrid()
	}

	s := new(Scene)
	if opts.Backdrop != nil {
		s.layers = append(s.layers, Fill{Colour: *opts.Backdrop})
	}

	wm, err := NewWatermark(opts.Watermark)
	if err != nil {
		return nil, err
	}
	s.watermark = wm
	s.layers = append(s.layers, wm)

	s.interpolator = mesh.NewInterpolator(grid, opts.Kernel)
	s.layers = append(s.layers, NewMeshLayer(s.interpolator, opts.MeshOpacity))

	if opts.ShowLabels {
		labels, err := NewLabels(grid, 14, palette.MustLookup(palette.White), 0.5)
		if err != nil {
			return nil, err
		}
		s.layers = append(s.layers, labels)
	}

	return s, nil
}

// Render composes a frame of the given size with the mesh at t.
func (s *Scene) Render(vp Viewport, t float64) *Frame {
	f := NewFrame(vp)
	f.T = t
	if vp.Empty() {
		return f
	}

	// Font faces and the mesh buffer are not safe for concurrent use.
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.layers {
		l.Draw(f.Image, t)
	}
	return f
}

// Layers returns the layers in drawing order.
func (s *Scene) Layers() []Layer {
	return append([]Layer(nil), s.layers...)
}

// Watermark returns the text layer.
func (s *Scene) Watermark() *Watermark {
	return s.watermark
}

// Interpolator returns the mesh interpolator.
func (s *Scene) Interpolator() *mesh.Interpolator {
	return s.interpolator
}
