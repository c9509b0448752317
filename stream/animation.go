package stream

import (
	"time"

	"github.com/matt-g-everett/meshtx/animation"
	"github.com/matt-g-everett/meshtx/scene"
)

// An Animation renders the frame for a moment in time.
type Animation interface {
	Frame(now time.Time) *scene.Frame
}

// Player plays a scene at a fixed viewport, sampling the driver for t on
// every frame.
type Player struct {
	scene    *scene.Scene
	driver   *animation.Driver
	viewport scene.Viewport
}

// NewPlayer creates a Player.
func NewPlayer(s *scene.Scene, d *animation.Driver, vp scene.Viewport) *Player {
	p := new(Player)
	p.scene = s
	p.driver = d
	p.viewport = vp
	return p
}

// State samples the driver without rendering.
func (p *Player) State(now time.Time) animation.State {
	return p.driver.Sample(now)
}

// Frame implements Animation.
func (p *Player) Frame(now time.Time) *scene.Frame {
	return p.RenderAt(p.viewport, now)
}

// RenderAt renders the frame for now at another viewport.
func (p *Player) RenderAt(vp scene.Viewport, now time.Time) *scene.Frame {
	st := p.driver.Sample(now)
	return p.scene.Render(vp, st.T)
}
