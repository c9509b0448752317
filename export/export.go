// Package export writes the scene to image files: single PNG frames and
// one seamless animation cycle as a looping GIF.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"time"

	"github.com/matt-g-everett/meshtx/animation"
	"github.com/matt-g-everett/meshtx/scene"
	"github.com/matt-g-everett/meshtx/util"
)

// ErrNoFrames is returned when an animation would have no frames.
var ErrNoFrames = errors.New("export: frame count must be positive")

// Cycle returns the blend parameter of each frame in one loop of timing.
// With auto reverse the loop covers the forward and reverse legs, so the
// last frame leads back into the first.
func Cycle(timing animation.Timing, frames int) []float64 {
	if frames <= 0 {
		return nil
	}
	if timing.Degenerate() {
		return []float64{1}
	}
	if timing.AutoReverse {
		return util.GenerateLut(frames, timing.Curve)
	}

	ts := make([]float64, frames)
	for i := range ts {
		ts[i] = util.Clamp01(timing.Curve(float64(i) / float64(frames)))
	}
	return ts
}

// LoopDuration is the length of one loop of timing.
func LoopDuration(timing animation.Timing) time.Duration {
	if timing.Degenerate() {
		return 0
	}
	if timing.AutoReverse {
		return 2 * timing.Duration
	}
	return timing.Duration
}

// PNG encodes a single frame.
func PNG(w io.Writer, f *scene.Frame) error {
	if err := png.Encode(w, f.Image); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}

// GIF renders one loop of the scene and encodes it as an endlessly
// repeating GIF.
func GIF(w io.Writer, s *scene.Scene, timing animation.Timing, vp scene.Viewport, frames int) error {
	ts := Cycle(timing, frames)
	if len(ts) == 0 {
		return ErrNoFrames
	}

	// GIF delays are in hundredths of a second.
	delay := int(LoopDuration(timing) / time.Duration(len(ts)) / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, t := range ts {
		f := s.Render(vp, t)
		b := f.Image.Bounds()
		p := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(p, b, f.Image, b.Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("export: gif: %w", err)
	}
	return nil
}
