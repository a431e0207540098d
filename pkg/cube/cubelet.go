package cube

import "github.com/taigrr/twisty/pkg/math3d"

// DefaultCubeletSize is the edge length of a cubelet; the gap to 1.0 shows as the
// dark seams between cubelets.
const DefaultCubeletSize = 0.88

// Quad is one face of a cubelet: four corners in world space, wound so that
// (P[1]-P[0]) × (P[2]-P[0]) points out of the cubelet.
type Quad struct {
	Label Face // face this quad pointed at before any rotation
	P     [4]math3d.Vec3
}

// Normal returns the outward (unnormalized) normal of the quad.
func (q Quad) Normal() math3d.Vec3 {
	return q.P[1].Sub(q.P[0]).Cross(q.P[2].Sub(q.P[0]))
}

// Unit corner offsets in Vertices order: the z = -1 square counter-clockwise from
// (-1, -1), then the same square at z = +1.
var cornerOffsets = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// quadCorners indexes Vertices for each canonical face.
var quadCorners = [6]struct {
	label Face
	idx   [4]int
}{
	{FaceF, [4]int{4, 5, 6, 7}},
	{FaceB, [4]int{1, 0, 3, 2}},
	{FaceU, [4]int{7, 6, 2, 3}},
	{FaceD, [4]int{0, 1, 5, 4}},
	{FaceL, [4]int{0, 4, 7, 3}},
	{FaceR, [4]int{5, 1, 2, 6}},
}

// Cubelet is one of the 27 sub-cubes.
type Cubelet struct {
	Home        [3]int      // grid position at construction
	Center      math3d.Vec3 // world-space center
	Orientation math3d.Mat3 // rotation accumulated since construction
	Size        float64     // edge length
	stickers    [6]Sticker  // by LocalFace, fixed at construction
}

// NewCubelet builds the cubelet that sits at grid position (x, y, z) of a solved
// puzzle. Every coordinate must be -1, 0 or 1.
func NewCubelet(x, y, z int, size float64) *Cubelet {
	c := &Cubelet{
		Home:        [3]int{x, y, z},
		Center:      math3d.V3(float64(x), float64(y), float64(z)),
		Orientation: math3d.Identity3(),
		Size:        size,
	}
	if y == 1 {
		c.stickers[PosY] = StickerU
	}
	if y == -1 {
		c.stickers[NegY] = StickerD
	}
	if z == 1 {
		c.stickers[PosZ] = StickerF
	}
	if z == -1 {
		c.stickers[NegZ] = StickerB
	}
	if x == -1 {
		c.stickers[NegX] = StickerL
	}
	if x == 1 {
		c.stickers[PosX] = StickerR
	}
	return c
}

// Sticker returns the sticker fixed to a local face.
func (c *Cubelet) Sticker(f LocalFace) Sticker {
	return c.stickers[f]
}

// Stickers returns the full local-face sticker table.
func (c *Cubelet) Stickers() [6]Sticker {
	return c.stickers
}

// IsSurface reports whether the cubelet carries at least one sticker. The core
// cubelet does not and is never drawn.
func (c *Cubelet) IsSurface() bool {
	for _, s := range c.stickers {
		if s != Blank {
			return true
		}
	}
	return false
}

// Vertices returns the 8 world-space corners.
func (c *Cubelet) Vertices() [8]math3d.Vec3 {
	half := c.Size / 2
	var v [8]math3d.Vec3
	for i, off := range cornerOffsets {
		v[i] = c.Center.Add(c.Orientation.MulVec3(off.Scale(half)))
	}
	return v
}

// Faces returns the six quads in fixed label order F, B, U, D, L, R. The corner
// pattern never changes; as the cubelet turns, a quad labeled F may face any
// direction and show any of the cubelet's stickers.
func (c *Cubelet) Faces() [6]Quad {
	v := c.Vertices()
	var quads [6]Quad
	for i, qc := range quadCorners {
		quads[i] = Quad{
			Label: qc.label,
			P:     [4]math3d.Vec3{v[qc.idx[0]], v[qc.idx[1]], v[qc.idx[2]], v[qc.idx[3]]},
		}
	}
	return quads
}

// StickerFacing resolves which sticker lies on the side of the cubelet whose outward
// world normal is n. The normal is carried back into the cubelet's original frame by
// the transposed orientation.
func (c *Cubelet) StickerFacing(n math3d.Vec3) Sticker {
	local := c.Orientation.Transpose().MulVec3(n)
	return c.stickers[LocalFaceOf(local)]
}

// WorldNormal returns the direction a local face currently points in world space.
func (c *Cubelet) WorldNormal(f LocalFace) math3d.Vec3 {
	return c.Orientation.MulVec3(f.Normal())
}

// snap re-establishes the rest invariants after a quarter turn.
func (c *Cubelet) snap() {
	c.Center = c.Center.Round()
	c.Orientation = c.Orientation.Snap()
}
