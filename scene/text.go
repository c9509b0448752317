package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/mesh"
	"github.com/matt-g-everett/meshtx/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// WatermarkOptions configures the background text.
type WatermarkOptions struct {
	Lines []string
	Size  float64
	// Gaps[i] is the space below line i. Missing entries are zero.
	Gaps    []int
	Colour  colorful.Color
	Opacity float64
}

// Line is the laid out position of one watermark line.
type Line struct {
	Text string
	// Bounds is the line box, from ascent to descent and from the pen start
	// to the advance.
	Bounds   image.Rectangle
	Baseline int
}

// Watermark draws large translucent lines of text, stacked vertically and
// centred in the frame. It does not depend on t.
type Watermark struct {
	opts WatermarkOptions
	face font.Face
	src  *image.Uniform
}

// NewWatermark loads the bold Go font at the requested size.
func NewWatermark(opts WatermarkOptions) (*Watermark, error) {
	face, err := newFace(gobold.TTF, opts.Size)
	if err != nil {
		return nil, err
	}

	w := new(Watermark)
	w.opts = opts
	w.face = face
	w.src = image.NewUniform(translucent(opts.Colour, opts.Opacity))
	return w, nil
}

// Layout positions each line for a viewport.
func (w *Watermark) Layout(vp Viewport) []Line {
	m := w.face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := ascent + m.Descent.Ceil()

	total := 0
	for i := range w.opts.Lines {
		total += lineHeight
		if i < len(w.opts.Lines)-1 {
			total += w.gap(i)
		}
	}

	lines := make([]Line, len(w.opts.Lines))
	y := (vp.Height - total) / 2
	for i, text := range w.opts.Lines {
		advance := font.MeasureString(w.face, text).Ceil()
		x := (vp.Width - advance) / 2
		lines[i] = Line{
			Text:     text,
			Bounds:   image.Rect(x, y, x+advance, y+lineHeight),
			Baseline: y + ascent,
		}
		y += lineHeight + w.gap(i)
	}
	return lines
}

// Draw implements Layer. Text outside the frame is clipped.
func (w *Watermark) Draw(dst *image.RGBA, t float64) {
	vp := Viewport{Width: dst.Bounds().Dx(), Height: dst.Bounds().Dy()}
	origin := dst.Bounds().Min
	d := font.Drawer{Dst: dst, Src: w.src, Face: w.face}
	for _, l := range w.Layout(vp) {
		d.Dot = fixed.P(origin.X+l.Bounds.Min.X, origin.Y+l.Baseline)
		d.DrawString(l.Text)
	}
}

func (w *Watermark) gap(i int) int {
	if i < len(w.opts.Gaps) {
		return w.opts.Gaps[i]
	}
	return 0
}

// Labels annotates every control point with its coordinates.
type Labels struct {
	grid *mesh.Grid
	face font.Face
	src  *image.Uniform
}

// NewLabels creates a label overlay for grid.
func NewLabels(grid *mesh.Grid, size float64, c colorful.Color, opacity float64) (*Labels, error) {
	face, err := newFace(goregular.TTF, size)
	if err != nil {
		return nil, err
	}

	l := new(Labels)
	l.grid = grid
	l.face = face
	l.src = image.NewUniform(translucent(c, opacity))
	return l, nil
}

// Draw implements Layer. Labels are pulled inside the frame at the edges.
func (l *Labels) Draw(dst *image.RGBA, t float64) {
	b := dst.Bounds()
	m := l.face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()

	d := font.Drawer{Dst: dst, Src: l.src, Face: l.face}
	for _, p := range l.grid.Points() {
		text := fmt.Sprintf("%.1f, %.1f", p.X, p.Y)
		width := font.MeasureString(l.face, text).Ceil()

		x := int(p.X*float64(b.Dx())) - width/2
		y := int(p.Y*float64(b.Dy())) - height/2
		x = clampInt(x, 0, b.Dx()-width)
		y = clampInt(y, 0, b.Dy()-height)

		d.Dot = fixed.P(b.Min.X+x, b.Min.Y+y+ascent)
		d.DrawString(text)
	}
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("scene: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: failed to create %vpt face: %w", size, err)
	}
	return face, nil
}

func translucent(c colorful.Color, opacity float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(util.Clamp01(opacity)*255 + 0.5)}
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
