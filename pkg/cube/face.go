// Package cube models a 3x3x3 twisty puzzle as 27 rigid cubelets.
//
// Each cubelet keeps a world-space center and an accumulated orientation. Sticker
// colors are fixed to the cubelet's local faces at construction and never move in
// the data model: which color shows on which side of the puzzle is always derived
// from the orientation. Moves animate a layer through small rotation steps driven by
// an external Scheduler and snap the result back onto the integer grid.
package cube

import "github.com/taigrr/twisty/pkg/math3d"

// Axis indexes a principal axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// Face names one of the six puzzle faces. It labels moves and the canonical quads of
// a cubelet.
type Face int

const (
	FaceU Face = iota // Up, +y
	FaceD             // Down, -y
	FaceF             // Front, +z
	FaceB             // Back, -z
	FaceL             // Left, -x
	FaceR             // Right, +x
)

// Faces lists every face in notation order.
var Faces = [6]Face{FaceU, FaceD, FaceF, FaceB, FaceL, FaceR}

func (f Face) String() string {
	return "UDFBLR"[f : f+1]
}

// Sticker returns the color that starts on this face of the solved puzzle.
func (f Face) Sticker() Sticker {
	return Sticker(f + 1)
}

// LocalFace is an outward axis direction in a cubelet's original frame.
type LocalFace int

const (
	PosX LocalFace = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

func (l LocalFace) String() string {
	return [...]string{"+x", "-x", "+y", "-y", "+z", "-z"}[l]
}

// Normal returns the unit vector the local face points along.
func (l LocalFace) Normal() math3d.Vec3 {
	switch l {
	case PosX:
		return math3d.V3(1, 0, 0)
	case NegX:
		return math3d.V3(-1, 0, 0)
	case PosY:
		return math3d.V3(0, 1, 0)
	case NegY:
		return math3d.V3(0, -1, 0)
	case PosZ:
		return math3d.V3(0, 0, 1)
	default:
		return math3d.V3(0, 0, -1)
	}
}

// LocalFaceOf picks the local face whose axis dominates v. Ties go to the first axis
// in x, y, z order; a zero component counts as negative.
func LocalFaceOf(v math3d.Vec3) LocalFace {
	a := v.Abs()
	m := max(a.X, a.Y, a.Z)
	switch m {
	case a.X:
		if v.X > 0 {
			return PosX
		}
		return NegX
	case a.Y:
		if v.Y > 0 {
			return PosY
		}
		return NegY
	default:
		if v.Z > 0 {
			return PosZ
		}
		return NegZ
	}
}

// Sticker is the color identity printed on a cubelet face.
type Sticker int

const (
	Blank Sticker = iota // no sticker, interior plastic
	StickerU
	StickerD
	StickerF
	StickerB
	StickerL
	StickerR
)

// Stickers lists the six colored stickers.
var Stickers = [6]Sticker{StickerU, StickerD, StickerF, StickerB, StickerL, StickerR}

func (s Sticker) String() string {
	if s == Blank {
		return "X"
	}
	return Face(s - 1).String()
}

// layerTurn describes the clockwise quarter turn of a face: which layer moves and
// by how much it rotates about the axis.
type layerTurn struct {
	axis  Axis
	layer float64
	angle float64
}

const quarter = 1.5707963267948966 // π/2

// Clockwise as seen looking at the face from outside the puzzle.
var faceTurns = [6]layerTurn{
	FaceU: {AxisY, 1, -quarter},
	FaceD: {AxisY, -1, quarter},
	FaceF: {AxisZ, 1, -quarter},
	FaceB: {AxisZ, -1, quarter},
	FaceL: {AxisX, -1, quarter},
	FaceR: {AxisX, 1, -quarter},
}
