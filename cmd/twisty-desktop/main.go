// twisty-desktop - 3x3x3 Twisty Puzzle in a desktop window
//
// Same key bindings as the terminal version:
//
//	u d f b l r  - Clockwise face turn
//	U D F B L R  - Counter-clockwise (prime) face turn
//	2            - Next face key turns twice
//	Space        - Scramble
//	0            - Reset
//	Mouse drag   - Orbit the camera
//	Esc          - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/twisty/internal/app"
	"github.com/taigrr/twisty/internal/config"
)

var (
	configPath    string
	width, height int
	seed          uint64
)

func main() {
	cmd := &cobra.Command{
		Use:   "twisty-desktop",
		Short: "3x3x3 twisty puzzle in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().IntVar(&width, "width", 900, "Window width")
	cmd.Flags().IntVar(&height, "height", 700, "Window height")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Scramble seed (0 picks one from the clock)")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	s, err := app.New(cfg, width, height, rng, time.Now)
	if err != nil {
		return err
	}

	g := &game{s: s, width: width, height: height}
	ebiten.SetWindowTitle("twisty")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, int(math.Round(cfg.FPS))))
	log.Infof("Opening %dx%d window", width, height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type game struct {
	s             *app.Session
	width, height int
	fbImg         *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		g.s.HandleKey(r)
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.s.DragStart(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.s.DragEnd(true)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.s.DragTo(x, y)
	}

	g.s.Update(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.s.Render()
	fb := g.s.Canvas
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.fbImg.WritePixels(fb.ToImage().Pix)
	screen.DrawImage(g.fbImg, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f FPS  %s", ebiten.ActualFPS(), g.s.Status()))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		if err := g.s.Resize(outsideWidth, outsideHeight); err != nil {
			log.Errf("resize: %v", err)
		} else {
			g.width, g.height = outsideWidth, outsideHeight
		}
	}
	return g.width, g.height
}
