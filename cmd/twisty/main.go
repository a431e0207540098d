// twisty - Terminal 3x3x3 Twisty Puzzle
// Turn the faces of a cube puzzle in your terminal and orbit it with the mouse.
//
// Controls:
//
//	u d f b l r  - Clockwise face turn
//	U D F B L R  - Counter-clockwise (prime) face turn
//	2            - Next face key turns twice
//	Space        - Scramble (20 random moves)
//	0            - Reset puzzle and camera
//	Mouse drag   - Orbit the camera (release to fling)
//	?            - Toggle HUD overlay
//	Esc, q       - Quit
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/twisty/internal/app"
	"github.com/taigrr/twisty/internal/config"
)

// Approximate terminal cell size in pixels, so a mouse drag across the terminal turns
// the camera about as far as the same drag across a window.
const (
	cellWidth  = 8
	cellHeight = 16
)

var (
	configPath string
	flags      config.Flags
	seed       uint64
	startMoves string
)

func main() {
	cmd := &cobra.Command{
		Use:   "twisty",
		Short: "Terminal 3x3x3 twisty puzzle",
		Long: `twisty - Terminal 3x3x3 Twisty Puzzle

Turn the faces of a cube puzzle in your terminal with animated quarter turns.

Controls:
  u d f b l r  - Clockwise face turn
  U D F B L R  - Counter-clockwise face turn
  2            - Next face key turns twice
  Space        - Scramble
  0            - Reset
  Mouse drag   - Orbit the camera
  ?            - Toggle HUD overlay
  Esc, q       - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a YAML config file")
	pf.IntVar(&flags.Steps, "steps", 0, "Animation ticks per quarter turn (default from config: 12)")
	pf.DurationVar(&flags.FrameDelay, "frame-delay", 0, "Delay between animation ticks (default from config: 20ms)")
	pf.Float64Var(&flags.Distance, "distance", 0, "Camera distance from the puzzle center (default from config: 4)")
	pf.Uint64Var(&seed, "seed", 0, "Scramble seed (0 picks one from the clock)")
	pf.StringVar(&startMoves, "moves", "", "Moves to play on start, e.g. \"R U R' U'\"")
	cmd.Flags().Float64Var(&flags.FPS, "fps", 0, "Target FPS (default from config: 60)")

	cmd.AddCommand(newRenderCmd(), newExportCmd(), newInfoCmd(), newConfigCmd())

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config (or the defaults) and applies the flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newRand returns the scramble source for --seed, or nil to let the engine seed one.
func newRand() *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// HUD renders the status overlay.
type HUD struct {
	show      bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{show: true, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the overlay on top of the puzzle image.
func (h *HUD) Draw(ap *ansipixels.AnsiPixels, s *app.Session) {
	if !h.show {
		return
	}
	ap.WriteAt(0, 0, tcolor.Green.Foreground()+"%.0f FPS "+tcolor.Reset, h.fps)
	ap.WriteRight(0, tcolor.Cyan.Foreground()+"%s"+tcolor.Reset, s.Status())
	ap.WriteAt(0, ap.H-1, "udfblr: turn  UDFBLR: prime  2: double  space: scramble  0: reset")
	ap.WriteRight(ap.H-1, "%s?: hud  q: quit%s", tcolor.Yellow.Foreground(), tcolor.Reset)
}

//nolint:gocognit // it's mostly the key switch.
func run(cfg config.Config) error {
	ap := ansipixels.NewAnsiPixels(cfg.FPS)
	if err := ap.Open(); err != nil {
		return fmt.Errorf("open ansipixels: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	if ap.W <= 0 || ap.H <= 0 {
		return fmt.Errorf("invalid terminal size: %dx%d", ap.W, ap.H)
	}

	// 2x height for half-block characters.
	s, err := app.New(cfg, ap.W, ap.H*2, newRand(), time.Now)
	if err != nil {
		return err
	}
	if startMoves != "" {
		if err := s.ApplyAlgorithm(startMoves); err != nil {
			return fmt.Errorf("--moves: %w", err)
		}
	}
	hud := NewHUD()

	ap.OnMouse = func() {
		switch {
		case ap.LeftDrag():
			s.DragTo(ap.Mx*cellWidth, ap.My*cellHeight)
		case ap.LeftClick():
			s.DragStart(ap.Mx*cellWidth, ap.My*cellHeight)
		case ap.MouseRelease():
			s.DragEnd(true)
		}
	}
	ap.OnResize = func() error {
		return s.Resize(ap.W, ap.H*2)
	}

	err = ap.FPSTicks(func() bool {
		for _, b := range ap.Data {
			switch b {
			case 27, 'q', 3, 4: // Escape, q, Ctrl-C, Ctrl-D
				return false
			case '?':
				hud.show = !hud.show
			default:
				s.HandleKey(rune(b))
			}
		}

		s.Update(time.Now())
		s.Render()

		ap.ClearScreen()
		if err := ap.ShowScaledImage(s.Canvas.ToImage()); err != nil {
			log.Errf("show image: %v", err)
			return false
		}
		hud.UpdateFPS()
		hud.Draw(ap, s)
		return true
	})
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}
