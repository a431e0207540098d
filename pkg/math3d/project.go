package math3d

import "math"

// Epsilon is the smallest depth magnitude Project divides by.
const Epsilon = 1e-4

// Project maps a world point to screen space.
//
// The point is rotated into view space by view. The camera sits distance units out
// on the view +z axis looking down -z, so the depth of the point is distance - z.
// The screen point is center + (x, -y) * scale / depth: y is flipped because screen
// rows grow downward. The returned depth is the sort key for painter's ordering:
// larger means farther from the camera.
func Project(p Vec3, view Mat3, scale, distance float64, center Vec2) (Vec2, float64) {
	v := view.MulVec3(p)
	depth := distance - v.Z
	div := depth
	if math.Abs(div) < Epsilon {
		div = Epsilon
	}
	f := scale / div
	return Vec2{
		X: center.X + v.X*f,
		Y: center.Y - v.Y*f,
	}, depth
}
