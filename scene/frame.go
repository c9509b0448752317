package scene

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
)

// Viewport is the pixel size a scene is rendered at.
type Viewport struct {
	Width  int
	Height int
}

// Empty reports whether the viewport has no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Frame is one composed image of the scene.
type Frame struct {
	Image *image.RGBA
	T     float64
}

// NewFrame allocates a transparent frame the size of vp.
func NewFrame(vp Viewport) *Frame {
	w, h := vp.Width, vp.Height
	if vp.Empty() {
		w, h = 0, 0
	}
	f := new(Frame)
	f.Image = image.NewRGBA(image.Rect(0, 0, w, h))
	return f
}

// MarshalBinary encodes the frame for an LED receiver: little endian
// uint16 width and height followed by one RGB triple per pixel, row by row.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	b := f.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > math.MaxUint16 || h > math.MaxUint16 {
		return nil, fmt.Errorf("scene: frame %dx%d too large to encode", w, h)
	}

	data = make([]byte, 4, 4+w*h*3)
	binary.LittleEndian.PutUint16(data[0:], uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := f.Image.RGBAAt(x, y)
			data = append(data, c.R, c.G, c.B)
		}
	}

	return data, nil
}
