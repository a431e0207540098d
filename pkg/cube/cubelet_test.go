package cube

import (
	"math"
	"testing"

	"github.com/taigrr/twisty/pkg/math3d"
)

func TestNewCubeletStickers(t *testing.T) {
	tests := []struct {
		name string
		pos  [3]int
		want [6]Sticker // indexed by LocalFace
	}{
		{"URF corner", [3]int{1, 1, 1}, [6]Sticker{PosX: StickerR, PosY: StickerU, PosZ: StickerF}},
		{"DLB corner", [3]int{-1, -1, -1}, [6]Sticker{NegX: StickerL, NegY: StickerD, NegZ: StickerB}},
		{"UR edge", [3]int{1, 1, 0}, [6]Sticker{PosX: StickerR, PosY: StickerU}},
		{"F center", [3]int{0, 0, 1}, [6]Sticker{PosZ: StickerF}},
		{"core", [3]int{0, 0, 0}, [6]Sticker{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCubelet(tc.pos[0], tc.pos[1], tc.pos[2], DefaultCubeletSize)
			if got := c.Stickers(); got != tc.want {
				t.Errorf("Stickers() = %v, want %v", got, tc.want)
			}
			wantSurface := tc.want != [6]Sticker{}
			if got := c.IsSurface(); got != wantSurface {
				t.Errorf("IsSurface() = %v, want %v", got, wantSurface)
			}
			if c.Orientation != math3d.Identity3() {
				t.Errorf("new cubelet orientation = %v, want identity", c.Orientation)
			}
		})
	}
}

func TestCubeletVertices(t *testing.T) {
	c := NewCubelet(1, 0, -1, 0.5)
	v := c.Vertices()
	if want := math3d.V3(0.75, -0.25, -1.25); !v[0].ApproxEqual(want, 1e-12) {
		t.Errorf("v[0] = %v, want %v", v[0], want)
	}
	if want := math3d.V3(1.25, 0.25, -0.75); !v[6].ApproxEqual(want, 1e-12) {
		t.Errorf("v[6] = %v, want %v", v[6], want)
	}

	// A quarter turn about z swaps the corner offsets but keeps the box.
	c.Orientation = math3d.RotateZ(math.Pi / 2).Snap()
	r := c.Vertices()
	if want := math3d.V3(1.25, -0.25, -1.25); !r[0].ApproxEqual(want, 1e-12) {
		t.Errorf("rotated v[0] = %v, want %v", r[0], want)
	}
}

func TestFacesWindOutward(t *testing.T) {
	labelNormal := map[Face]math3d.Vec3{
		FaceU: math3d.V3(0, 1, 0),
		FaceD: math3d.V3(0, -1, 0),
		FaceF: math3d.V3(0, 0, 1),
		FaceB: math3d.V3(0, 0, -1),
		FaceL: math3d.V3(-1, 0, 0),
		FaceR: math3d.V3(1, 0, 0),
	}
	orientations := map[string]math3d.Mat3{
		"identity":  math3d.Identity3(),
		"x quarter": math3d.RotateX(math.Pi / 2),
		"mixed":     math3d.RotateY(0.4).Mul(math3d.RotateZ(-1.2)),
	}
	for name, o := range orientations {
		t.Run(name, func(t *testing.T) {
			c := NewCubelet(-1, 1, 0, DefaultCubeletSize)
			c.Orientation = o
			seen := map[Face]bool{}
			for _, q := range c.Faces() {
				seen[q.Label] = true
				got := q.Normal().Normalize()
				want := o.MulVec3(labelNormal[q.Label])
				if !got.ApproxEqual(want, 1e-9) {
					t.Errorf("%v normal = %v, want %v", q.Label, got, want)
				}
			}
			if len(seen) != 6 {
				t.Errorf("faces cover %d labels, want 6", len(seen))
			}
		})
	}
}

func TestLocalFaceOf(t *testing.T) {
	tests := []struct {
		v    math3d.Vec3
		want LocalFace
	}{
		{math3d.V3(0.9, 0.1, -0.2), PosX},
		{math3d.V3(-3, 0, 0), NegX},
		{math3d.V3(0.1, 2, 0), PosY},
		{math3d.V3(0, -1, 0.5), NegY},
		{math3d.V3(0, 0, 1), PosZ},
		{math3d.V3(0.2, -0.3, -0.31), NegZ},
		// ties resolve x, then y, then z
		{math3d.V3(1, 1, 1), PosX},
		{math3d.V3(0, -1, 1), NegY},
		{math3d.V3(-1, 0, -1), NegX},
		// zero counts as negative
		{math3d.V3(0, 0, 0), NegX},
	}
	for _, tc := range tests {
		if got := LocalFaceOf(tc.v); got != tc.want {
			t.Errorf("LocalFaceOf(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestStickerFacingFollowsOrientation(t *testing.T) {
	c := NewCubelet(1, 1, 1, DefaultCubeletSize)
	if got := c.StickerFacing(math3d.V3(0, 1, 0)); got != StickerU {
		t.Errorf("unrotated +y shows %v, want U", got)
	}
	if got := c.StickerFacing(math3d.V3(0, -1, 0)); got != Blank {
		t.Errorf("unrotated -y shows %v, want blank", got)
	}

	// After a quarter turn about x by -90°, the old +y face points to -z.
	c.Orientation = math3d.RotateX(-math.Pi / 2).Snap()
	if got := c.StickerFacing(math3d.V3(0, 0, -1)); got != StickerU {
		t.Errorf("rotated -z shows %v, want U", got)
	}
	if got := c.StickerFacing(math3d.V3(0, 1, 0)); got != StickerF {
		t.Errorf("rotated +y shows %v, want F", got)
	}
	if got := c.StickerFacing(math3d.V3(1, 0, 0)); got != StickerR {
		t.Errorf("rotated +x shows %v, want R", got)
	}
}
