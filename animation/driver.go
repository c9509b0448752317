package animation

import (
	"time"

	"github.com/matt-g-everett/meshtx/util"
)

// Phase is the direction the blend parameter is travelling in.
type Phase int

const (
	Forward Phase = iota
	Reverse
)

func (p Phase) String() string {
	if p == Reverse {
		return "reverse"
	}
	return "forward"
}

// Timing describes one leg of the animation and how it repeats.
type Timing struct {
	Duration    time.Duration
	Curve       Curve
	AutoReverse bool
}

// DefaultTiming runs the default bezier over eight seconds each way.
func DefaultTiming() Timing {
	return Timing{
		Duration:    8 * time.Second,
		Curve:       DefaultBezier.Ease,
		AutoReverse: true,
	}
}

// Degenerate reports whether the timing cannot animate. A degenerate
// timing resolves straight to the end of the forward leg.
func (t Timing) Degenerate() bool {
	return t.Duration <= 0 || t.Curve == nil
}

// State is a sample of the driver.
type State struct {
	T     float64
	Phase Phase
	// Cycle counts completed forward+reverse cycles, or forward legs when
	// the timing does not reverse.
	Cycle int64
}

// Driver advances the blend parameter t forever. It holds no timers: the
// host samples it whenever it redraws. Once started, Sample only reads the
// driver, so a started driver may be sampled from several goroutines.
type Driver struct {
	timing  Timing
	start   time.Time
	started bool
}

// NewDriver creates a Driver for the given timing.
func NewDriver(timing Timing) *Driver {
	d := new(Driver)
	d.timing = timing
	return d
}

// Timing returns the driver's timing.
func (d *Driver) Timing() Timing {
	return d.timing
}

// Start sets the moment t = 0.
func (d *Driver) Start(now time.Time) {
	d.start = now
	d.started = true
}

// Sample returns the state at now. A driver that was never started starts
// on its first sample.
func (d *Driver) Sample(now time.Time) State {
	if !d.started {
		d.Start(now)
	}
	return d.At(now.Sub(d.start))
}

// At returns the state after elapsed time since start.
func (d *Driver) At(elapsed time.Duration) State {
	if d.timing.Degenerate() {
		return State{T: 1, Phase: Forward}
	}
	if elapsed < 0 {
		elapsed = 0
	}

	legs := int64(elapsed / d.timing.Duration)
	progress := float64(elapsed%d.timing.Duration) / float64(d.timing.Duration)

	if !d.timing.AutoReverse {
		return State{T: util.Clamp01(d.timing.Curve(progress)), Phase: Forward, Cycle: legs}
	}

	s := State{Cycle: legs / 2}
	if legs%2 == 0 {
		s.Phase = Forward
		s.T = d.timing.Curve(progress)
	} else {
		s.Phase = Reverse
		s.T = d.timing.Curve(1 - progress)
	}
	s.T = util.Clamp01(s.T)
	return s
}
