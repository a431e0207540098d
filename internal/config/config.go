// Package config loads the YAML settings shared by the twisty hosts.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds the animation, camera and color settings.
type Config struct {
	Animation    Animation `yaml:"animation"`
	Camera       Camera    `yaml:"camera"`
	CubeletSize  float64   `yaml:"cubelet_size"`
	FPS          float64   `yaml:"fps"`
	OutlineWidth float64   `yaml:"outline_width"`
	Colors       Colors    `yaml:"colors"`
}

// Animation controls move playback.
type Animation struct {
	Steps      int           `yaml:"steps"`
	FrameDelay time.Duration `yaml:"frame_delay"`
}

// Camera holds the initial view. Angles are in degrees; a zero scale fits the
// puzzle to the drawing target.
type Camera struct {
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Distance float64 `yaml:"distance"`
	Scale    float64 `yaml:"scale"`
}

// Colors are #RRGGBB strings per face plus the outline and background.
type Colors struct {
	U          string `yaml:"U"`
	D          string `yaml:"D"`
	F          string `yaml:"F"`
	B          string `yaml:"B"`
	L          string `yaml:"L"`
	R          string `yaml:"R"`
	Outline    string `yaml:"outline"`
	Background string `yaml:"background"`
}

// Default returns the built-in settings.
func Default() Config {
	p := render.DefaultPalette()
	return Config{
		Animation: Animation{
			Steps:      cube.DefaultSteps,
			FrameDelay: cube.DefaultFrameDelay,
		},
		Camera: Camera{
			Yaw:      -30,
			Pitch:    25,
			Distance: render.DefaultDistance,
		},
		CubeletSize:  cube.DefaultCubeletSize,
		FPS:          60,
		OutlineWidth: render.DefaultOutlineWidth,
		Colors: Colors{
			U:          p.Color(cube.StickerU).Hex(),
			D:          p.Color(cube.StickerD).Hex(),
			F:          p.Color(cube.StickerF).Hex(),
			B:          p.Color(cube.StickerB).Hex(),
			L:          p.Color(cube.StickerL).Hex(),
			R:          p.Color(cube.StickerR).Hex(),
			Outline:    p.Outline.Hex(),
			Background: p.Background.Hex(),
		},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their defaults;
// unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate checks ranges and colors.
func (c Config) Validate() error {
	switch {
	case c.Animation.Steps < 1:
		return fmt.Errorf("%w: animation.steps must be at least 1, got %d", ErrInvalid, c.Animation.Steps)
	case c.Animation.FrameDelay <= 0:
		return fmt.Errorf("%w: animation.frame_delay must be positive, got %v", ErrInvalid, c.Animation.FrameDelay)
	case c.Camera.Distance <= 0:
		return fmt.Errorf("%w: camera.distance must be positive, got %v", ErrInvalid, c.Camera.Distance)
	case c.Camera.Scale < 0:
		return fmt.Errorf("%w: camera.scale must not be negative, got %v", ErrInvalid, c.Camera.Scale)
	case c.CubeletSize <= 0 || c.CubeletSize > 1:
		return fmt.Errorf("%w: cubelet_size must be in (0, 1], got %v", ErrInvalid, c.CubeletSize)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalid, c.FPS)
	case c.OutlineWidth < 0:
		return fmt.Errorf("%w: outline_width must not be negative, got %v", ErrInvalid, c.OutlineWidth)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings. Zero values leave
// the file setting alone.
type Flags struct {
	Steps      int
	FrameDelay time.Duration
	FPS        float64
	Distance   float64
}

// Resolve applies non-zero flags on top of the file settings.
func (c *Config) Resolve(flags Flags) {
	if flags.Steps > 0 {
		c.Animation.Steps = flags.Steps
	}
	if flags.FrameDelay > 0 {
		c.Animation.FrameDelay = flags.FrameDelay
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Distance > 0 {
		c.Camera.Distance = flags.Distance
	}
}

// Palette parses the configured colors.
func (c Config) Palette() (render.Palette, error) {
	var p render.Palette
	p.Stickers[cube.Blank] = render.DefaultPalette().Stickers[cube.Blank]
	fields := []struct {
		name string
		hex  string
		dst  *render.Color
	}{
		{"colors.U", c.Colors.U, &p.Stickers[cube.StickerU]},
		{"colors.D", c.Colors.D, &p.Stickers[cube.StickerD]},
		{"colors.F", c.Colors.F, &p.Stickers[cube.StickerF]},
		{"colors.B", c.Colors.B, &p.Stickers[cube.StickerB]},
		{"colors.L", c.Colors.L, &p.Stickers[cube.StickerL]},
		{"colors.R", c.Colors.R, &p.Stickers[cube.StickerR]},
		{"colors.outline", c.Colors.Outline, &p.Outline},
		{"colors.background", c.Colors.Background, &p.Background},
	}
	for _, f := range fields {
		col, err := render.ParseHex(f.hex)
		if err != nil {
			return render.Palette{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return p, nil
}

// EngineOptions converts the settings into cube engine options. The scheduler and
// random source are left for the host to fill in.
func (c Config) EngineOptions() cube.Options {
	return cube.Options{
		Steps:       c.Animation.Steps,
		FrameDelay:  c.Animation.FrameDelay,
		CubeletSize: c.CubeletSize,
		Yaw:         c.Camera.Yaw * math.Pi / 180,
		Pitch:       c.Camera.Pitch * math.Pi / 180,
	}
}

// NewRenderer builds a renderer for a width x height target. The camera is fitted to
// the target unless a fixed scale is configured.
func (c Config) NewRenderer(width, height int) (*render.Renderer, error) {
	p, err := c.Palette()
	if err != nil {
		return nil, err
	}
	r := render.NewRenderer()
	r.Palette = p
	r.Camera.Fit(width, height)
	if c.Camera.Scale > 0 {
		r.Camera.Scale = c.Camera.Scale
	}
	r.Camera.Distance = c.Camera.Distance
	r.OutlineWidth = c.OutlineWidth * r.Camera.Scale / render.DefaultScale
	return r, nil
}
