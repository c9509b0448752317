// Package config loads the YAML settings for the renderer, streamer and
// preview server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/meshtx/animation"
	"github.com/matt-g-everett/meshtx/mesh"
	"github.com/matt-g-everett/meshtx/palette"
	"github.com/matt-g-everett/meshtx/scene"
	"gopkg.in/yaml.v2"
)

// Config is the top level configuration document.
type Config struct {
	Viewport struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"viewport"`
	Animation struct {
		DurationSecs float64   `yaml:"durationSecs"`
		Curve        string    `yaml:"curve"`
		Bezier       []float64 `yaml:"bezier"`
		AutoReverse  bool      `yaml:"autoReverse"`
	} `yaml:"animation"`
	Scene struct {
		Kernel      string  `yaml:"kernel"`
		MeshOpacity float64 `yaml:"meshOpacity"`
		Backdrop    string  `yaml:"backdrop"`
		ShowLabels  bool    `yaml:"showLabels"`
		Watermark   struct {
			Lines   []string `yaml:"lines"`
			Size    float64  `yaml:"size"`
			Gaps    []int    `yaml:"gaps"`
			Opacity float64  `yaml:"opacity"`
		} `yaml:"watermark"`
	} `yaml:"scene"`
	Stream struct {
		FrameRate float64 `yaml:"frameRate"`
		Width     int     `yaml:"width"`
		Height    int     `yaml:"height"`
	} `yaml:"stream"`
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr   string `yaml:"addr"`
		Static string `yaml:"static"`
	} `yaml:"http"`
}

// Default returns the stock full screen configuration.
func Default() *Config {
	c := new(Config)
	c.Viewport.Width = 1170
	c.Viewport.Height = 2532

	c.Animation.DurationSecs = 8
	c.Animation.Curve = "ease"
	c.Animation.AutoReverse = true

	c.Scene.Kernel = mesh.Bicubic.String()
	c.Scene.MeshOpacity = 1
	c.Scene.Backdrop = palette.Red
	c.Scene.Watermark.Lines = []string{"MESH", "GRAD"}
	c.Scene.Watermark.Size = 200
	c.Scene.Watermark.Gaps = []int{540}
	c.Scene.Watermark.Opacity = 0.1

	c.Stream.FrameRate = 30
	c.Stream.Width = 32
	c.Stream.Height = 32

	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "meshtx"
	c.Mqtt.Topics.Stream = "home/meshtx/stream"

	c.HTTP.Addr = ":3000"
	c.HTTP.Static = "client/dist"
	return c
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Animation.DurationSecs < 0 {
		errs = append(errs, fmt.Errorf("animation duration %v is negative", c.Animation.DurationSecs))
	}
	if _, err := c.curve(); err != nil {
		errs = append(errs, err)
	}
	if _, ok := mesh.ParseKernel(c.Scene.Kernel); !ok {
		errs = append(errs, fmt.Errorf("unknown kernel %q", c.Scene.Kernel))
	}
	if _, err := c.backdrop(); err != nil {
		errs = append(errs, err)
	}
	if c.Scene.Watermark.Size <= 0 {
		errs = append(errs, fmt.Errorf("watermark size %v must be positive", c.Scene.Watermark.Size))
	}
	if c.Stream.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("stream frame rate %v must be positive", c.Stream.FrameRate))
	}
	if c.Stream.Width <= 0 || c.Stream.Height <= 0 {
		errs = append(errs, fmt.Errorf("stream size %dx%d must be positive", c.Stream.Width, c.Stream.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Timing converts the animation section.
func (c *Config) Timing() (animation.Timing, error) {
	curve, err := c.curve()
	if err != nil {
		return animation.Timing{}, err
	}
	return animation.Timing{
		Duration:    time.Duration(c.Animation.DurationSecs * float64(time.Second)),
		Curve:       curve,
		AutoReverse: c.Animation.AutoReverse,
	}, nil
}

// SceneOptions converts the scene section.
func (c *Config) SceneOptions() (scene.Options, error) {
	opts := scene.DefaultOptions()

	kernel, ok := mesh.ParseKernel(c.Scene.Kernel)
	if !ok {
		return opts, fmt.Errorf("config: unknown kernel %q", c.Scene.Kernel)
	}
	backdrop, err := c.backdrop()
	if err != nil {
		return opts, err
	}

	opts.Kernel = kernel
	opts.MeshOpacity = c.Scene.MeshOpacity
	opts.Backdrop = backdrop
	opts.ShowLabels = c.Scene.ShowLabels
	opts.Watermark.Lines = c.Scene.Watermark.Lines
	opts.Watermark.Size = c.Scene.Watermark.Size
	opts.Watermark.Gaps = c.Scene.Watermark.Gaps
	opts.Watermark.Opacity = c.Scene.Watermark.Opacity
	return opts, nil
}

// RenderViewport returns the size single frames and exports render at.
func (c *Config) RenderViewport() scene.Viewport {
	return scene.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// StreamViewport returns the size frames are streamed at.
func (c *Config) StreamViewport() scene.Viewport {
	return scene.Viewport{Width: c.Stream.Width, Height: c.Stream.Height}
}

func (c *Config) curve() (animation.Curve, error) {
	if c.Animation.Curve == "bezier" {
		if len(c.Animation.Bezier) != 4 {
			return nil, fmt.Errorf("config: bezier needs 4 values, got %d", len(c.Animation.Bezier))
		}
		b := animation.CubicBezier{
			X1: c.Animation.Bezier[0], Y1: c.Animation.Bezier[1],
			X2: c.Animation.Bezier[2], Y2: c.Animation.Bezier[3],
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		return b.Ease, nil
	}

	curve, ok := animation.CurveByName(c.Animation.Curve)
	if !ok {
		return nil, fmt.Errorf("config: unknown curve %q", c.Animation.Curve)
	}
	return curve, nil
}

// backdrop accepts a palette name or a hex colour. Empty or "none"
// disables the backdrop.
func (c *Config) backdrop() (*colorful.Color, error) {
	name := c.Scene.Backdrop
	if name == "" || name == "none" {
		return nil, nil
	}
	if col, ok := palette.Lookup(name); ok {
		return &col, nil
	}
	col, err := colorful.Hex(name)
	if err != nil {
		return nil, fmt.Errorf("config: backdrop %q is neither a palette colour nor hex", name)
	}
	return &col, nil
}
