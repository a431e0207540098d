package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/twisty/internal/app"
	"github.com/taigrr/twisty/pkg/models"
)

// snapshotOpts are shared by render and export.
type snapshotOpts struct {
	scramble   bool
	yaw, pitch float64 // degrees, applied on top of the configured camera when set
	cmd        *cobra.Command
}

func (o *snapshotOpts) register(cmd *cobra.Command) {
	o.cmd = cmd
	cmd.Flags().BoolVar(&o.scramble, "scramble", false, "Scramble before playing --moves")
	cmd.Flags().Float64Var(&o.yaw, "yaw", 0, "Camera yaw in degrees (default from config: -30)")
	cmd.Flags().Float64Var(&o.pitch, "pitch", 0, "Camera pitch in degrees (default from config: 25)")
}

// session builds a headless session with every requested move already played.
func (o *snapshotOpts) session(width, height int) (*app.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if o.cmd.Flags().Changed("yaw") {
		cfg.Camera.Yaw = o.yaw
	}
	if o.cmd.Flags().Changed("pitch") {
		cfg.Camera.Pitch = o.pitch
	}
	s, err := app.New(cfg, width, height, newRand(), nil)
	if err != nil {
		return nil, err
	}
	if o.scramble {
		s.Scramble()
		s.Finish()
	}
	if startMoves != "" {
		if err := s.ApplyAlgorithm(startMoves); err != nil {
			return nil, fmt.Errorf("--moves: %w", err)
		}
		s.Finish()
	}
	return s, nil
}

func newRenderCmd() *cobra.Command {
	var (
		opts          snapshotOpts
		width, height int
		supersample   int
	)
	cmd := &cobra.Command{
		Use:   "render <out.png|out.webp|out.tga>",
		Short: "Render the puzzle to an image file",
		Long:  "Render one frame of the puzzle, after the optional scramble and --moves, to a PNG, WebP or TGA image.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid image size: %dx%d", width, height)
			}
			supersample = max(1, supersample)
			s, err := opts.session(width*supersample, height*supersample)
			if err != nil {
				return err
			}
			s.Render()
			out := s.Canvas.Downsample(supersample)
			if err := out.Save(args[0]); err != nil {
				return err
			}
			log.Infof("Wrote %s (%dx%d, %d stickers drawn, %s)",
				args[0], out.Width, out.Height, s.Renderer.Stats.Drawn, strings.TrimSpace(s.Status()))
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVar(&width, "width", 900, "Image width")
	cmd.Flags().IntVar(&height, "height", 700, "Image height")
	cmd.Flags().IntVar(&supersample, "supersample", 2, "Render at this multiple of the size and downsample")
	return cmd
}

func newExportCmd() *cobra.Command {
	var opts snapshotOpts
	cmd := &cobra.Command{
		Use:   "export <out.glb|out.stl>",
		Short: "Export the puzzle as a colored 3D model",
		Long:  "Export the cubelets, after the optional scramble and --moves, as a binary glTF or a colored binary STL file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := opts.session(1, 1)
			if err != nil {
				return err
			}
			mesh := models.FromEngine(s.Engine, s.Renderer.Palette)
			if err := models.Save(args[0], mesh); err != nil {
				return err
			}
			log.Infof("Wrote %s (%d triangles, %d materials)", args[0], mesh.TriangleCount(), len(mesh.Materials))
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.glb|model.stl>",
		Short: "Display model information",
		Long:  "Display information about an exported model file including triangle count, materials and bounding box.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(modelPath string) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	mesh.CalculateBounds()
	size := mesh.Size()
	center := mesh.Center()
	ext := filepath.Ext(modelPath)

	fmt.Printf("File:       %s\n", filepath.Base(modelPath))
	fmt.Printf("Format:     %s\n", strings.ToUpper(strings.TrimPrefix(ext, ".")))
	fmt.Printf("Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", mesh.BoundsMin.X, mesh.BoundsMin.Y, mesh.BoundsMin.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", mesh.BoundsMax.X, mesh.BoundsMax.Y, mesh.BoundsMax.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)

	byMat := mesh.FacesByMaterial()
	if len(mesh.Materials) > 0 {
		fmt.Println()
	}
	for i, m := range mesh.Materials {
		fmt.Printf("Material:   %-12s %s  %d triangles\n", m.Name, m.Color.Hex(), len(byMat[i]))
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long:  "Print the configuration after --config and flag overrides. Redirect it to a file to start a custom config.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
