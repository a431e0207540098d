package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/render"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p != render.DefaultPalette() {
		t.Errorf("default palette = %+v, want %+v", p, render.DefaultPalette())
	}

	opts := cfg.EngineOptions()
	if opts.Steps != cube.DefaultSteps || opts.FrameDelay != cube.DefaultFrameDelay {
		t.Errorf("animation options = %d, %v", opts.Steps, opts.FrameDelay)
	}
	if math.Abs(opts.Yaw-cube.DefaultYaw) > 1e-12 || math.Abs(opts.Pitch-cube.DefaultPitch) > 1e-12 {
		t.Errorf("angles = %v, %v; want %v, %v", opts.Yaw, opts.Pitch, cube.DefaultYaw, cube.DefaultPitch)
	}
}

func TestParse(t *testing.T) {
	in := `
animation:
  steps: 6
  frame_delay: 15ms
camera:
  yaw: 45
fps: 30
colors:
  U: "#EEEEEE"
`
	cfg, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Animation.Steps != 6 || cfg.Animation.FrameDelay != 15*time.Millisecond {
		t.Errorf("animation = %+v", cfg.Animation)
	}
	if cfg.Camera.Yaw != 45 || cfg.Camera.Pitch != 25 {
		t.Errorf("camera = %+v, want yaw 45 and default pitch", cfg.Camera)
	}
	if cfg.FPS != 30 {
		t.Errorf("fps = %v", cfg.FPS)
	}
	if cfg.Colors.U != "#EEEEEE" || cfg.Colors.F != Default().Colors.F {
		t.Errorf("colors = %+v", cfg.Colors)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		invalid bool // wraps ErrInvalid
	}{
		{"unknown key", "bogus: 1\n", false},
		{"bad yaml", "animation: [\n", false},
		{"zero steps", "animation:\n  steps: 0\n", true},
		{"negative delay", "animation:\n  frame_delay: -5ms\n", true},
		{"bad color", "colors:\n  F: red\n", true},
		{"huge cubelet", "cubelet_size: 1.5\n", true},
		{"zero fps", "fps: 0\n", true},
		{"negative distance", "camera:\n  distance: -1\n", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tc.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err: %v)", got, tc.invalid, err)
			}
		})
	}
}

func TestLoadAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twisty.yaml")
	cfg := Default()
	cfg.Animation.Steps = 9
	cfg.Colors.B = "#123456"

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{Steps: 3, FPS: 24})
	if cfg.Animation.Steps != 3 || cfg.FPS != 24 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Animation.FrameDelay != cube.DefaultFrameDelay || cfg.Camera.Distance != render.DefaultDistance {
		t.Errorf("zero flags changed settings: %+v", cfg)
	}
}

func TestNewRenderer(t *testing.T) {
	cfg := Default()
	r, err := cfg.NewRenderer(900, 700)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if math.Abs(r.Camera.Scale-render.DefaultScale) > 1e-9 {
		t.Errorf("fitted scale = %v, want %v", r.Camera.Scale, render.DefaultScale)
	}
	if math.Abs(r.OutlineWidth-render.DefaultOutlineWidth) > 1e-9 {
		t.Errorf("outline width = %v", r.OutlineWidth)
	}

	cfg.Camera.Scale = 100
	r, err = cfg.NewRenderer(900, 700)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if r.Camera.Scale != 100 {
		t.Errorf("fixed scale = %v, want 100", r.Camera.Scale)
	}
}
