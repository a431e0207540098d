package models

import (
	"bytes"
	"math"
	"testing"

	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/render"
)

func TestGLBRoundTrip(t *testing.T) {
	palette := render.DefaultPalette()
	e := cube.New(cube.DefaultOptions())
	e.Move("R")
	m := FromEngine(e, palette)

	var buf bytes.Buffer
	if err := WriteGLB(&buf, m); err != nil {
		t.Fatalf("WriteGLB: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatalf("output does not start with the GLB magic")
	}

	got, err := ReadGLB(&buf, "cube.glb")
	if err != nil {
		t.Fatalf("ReadGLB: %v", err)
	}
	if got.TriangleCount() != m.TriangleCount() {
		t.Errorf("TriangleCount = %d, want %d", got.TriangleCount(), m.TriangleCount())
	}
	if len(got.Materials) != len(palette.Stickers) {
		t.Fatalf("materials = %d, want %d", len(got.Materials), len(palette.Stickers))
	}
	for i, mat := range got.Materials {
		if mat.Color != palette.Stickers[i] {
			t.Errorf("material %d color = %v, want %v", i, mat.Color, palette.Stickers[i])
		}
		if mat.Name != m.Materials[i].Name {
			t.Errorf("material %d name = %q, want %q", i, mat.Name, m.Materials[i].Name)
		}
	}

	want := m.FacesByMaterial()
	for mat, faces := range got.FacesByMaterial() {
		if len(faces) != len(want[mat]) {
			t.Errorf("material %d: %d faces, want %d", mat, len(faces), len(want[mat]))
		}
	}

	// Winding survives: every face normal agrees with its stored vertex normal.
	for i, f := range got.Faces {
		n := got.FaceNormal(i)
		if vn := got.Vertices[f.V[0]].Normal; n.Dot(vn) < 0.99 {
			t.Fatalf("face %d normal %v disagrees with vertex normal %v", i, n, vn)
		}
	}

	got.CalculateBounds()
	if math.Abs(got.BoundsMax.Z-1.44) > 1e-6 {
		t.Errorf("BoundsMax = %v", got.BoundsMax)
	}
}

func TestColorSpaceRoundTrip(t *testing.T) {
	for _, c := range render.DefaultPalette().Stickers {
		if got := srgbColor(linearRGBA(c)); got != c {
			t.Errorf("srgb(linear(%v)) = %v", c, got)
		}
	}
	if lin := linearRGBA(render.ColorWhite); lin != [4]float64{1, 1, 1, 1} {
		t.Errorf("white = %v", lin)
	}
}
