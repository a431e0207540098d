package render

import (
	"math"

	"github.com/taigrr/twisty/pkg/math3d"
)

// Default projection parameters, sized for a 900x700 canvas.
const (
	DefaultScale    = 240.0
	DefaultDistance = 4.0
	// fitRatio is DefaultScale relative to the 700 pixel canvas height.
	fitRatio = DefaultScale / 700
)

// Camera holds the perspective parameters. The view rotation belongs to the engine;
// the camera only says how far away and how large the puzzle appears.
type Camera struct {
	Scale    float64     // pixels per world unit at depth 1
	Distance float64     // camera distance along the view +z axis
	Center   math3d.Vec2 // screen position of the origin
}

// NewCamera creates a camera with the default 900x700 layout.
func NewCamera() *Camera {
	return &Camera{
		Scale:    DefaultScale,
		Distance: DefaultDistance,
		Center:   math3d.V2(450, 300),
	}
}

// Fit centers the camera on a width x height target and scales the puzzle to it.
func (c *Camera) Fit(width, height int) {
	c.Center = math3d.V2(float64(width)/2, float64(height)/2)
	c.Scale = fitRatio * math.Min(float64(width), float64(height))
}

// Project maps a world point through view to screen space and returns its depth.
func (c *Camera) Project(p math3d.Vec3, view math3d.Mat3) (math3d.Vec2, float64) {
	return math3d.Project(p, view, c.Scale, c.Distance, c.Center)
}
