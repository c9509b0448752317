package scene

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/mesh"
	"github.com/matt-g-everett/meshtx/util"
)

// A Layer draws one part of the scene onto a frame.
type Layer interface {
	Draw(dst *image.RGBA, t float64)
}

// Fill paints the whole frame in one colour.
type Fill struct {
	Colour colorful.Color
}

// Draw implements Layer.
func (f Fill) Draw(dst *image.RGBA, t float64) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.Colour.Clamped()), image.Point{}, draw.Src)
}

// MeshLayer draws the interpolated colour field stretched over the frame.
type MeshLayer struct {
	Interpolator *mesh.Interpolator
	Opacity      float64

	buf *image.RGBA
}

// NewMeshLayer creates a MeshLayer drawn at the given opacity.
func NewMeshLayer(m *mesh.Interpolator, opacity float64) *MeshLayer {
	l := new(MeshLayer)
	l.Interpolator = m
	l.Opacity = util.Clamp01(opacity)
	return l
}

// Draw implements Layer.
func (l *MeshLayer) Draw(dst *image.RGBA, t float64) {
	if l.Opacity <= 0 {
		return
	}
	if l.Opacity >= 1 {
		l.Interpolator.RenderInto(dst, t)
		return
	}

	b := dst.Bounds()
	if l.buf == nil || l.buf.Bounds() != b {
		l.buf = image.NewRGBA(b)
	}
	l.Interpolator.RenderInto(l.buf, t)
	mask := image.NewUniform(color.Alpha{A: uint8(l.Opacity*255 + 0.5)})
	draw.DrawMask(dst, b, l.buf, b.Min, mask, image.Point{}, draw.Over)
}
