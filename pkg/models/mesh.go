// Package models builds triangle meshes of the puzzle and reads and writes them as
// STL and binary glTF.
package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/twisty/pkg/math3d"
	"github.com/taigrr/twisty/pkg/render"
)

// ErrUnsupportedFormat is returned for mesh files other than .stl and .glb.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a flat base color.
type Material struct {
	Name  string
	Color render.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddQuad appends the quad p0..p3 as two triangles sharing a flat normal. The quad
// must be wound counter-clockwise seen from the side the normal points to.
func (m *Mesh) AddQuad(p [4]math3d.Vec3, material int) {
	n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Normalize()
	base := len(m.Vertices)
	for _, v := range p {
		m.Vertices = append(m.Vertices, MeshVertex{Position: v, Normal: n})
	}
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}, Material: material},
		Face{V: [3]int{base, base + 2, base + 3}, Material: material},
	)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceNormal returns the unit normal of face i from its winding.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	p0 := m.Vertices[f.V[0]].Position
	p1 := m.Vertices[f.V[1]].Position
	p2 := m.Vertices[f.V[2]].Position
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// FacesByMaterial groups face indices by material. Faces without a material are
// returned under key -1.
func (m *Mesh) FacesByMaterial() map[int][]int {
	out := make(map[int][]int, len(m.Materials))
	for i, f := range m.Faces {
		mat := f.Material
		if mat < 0 || mat >= len(m.Materials) {
			mat = -1
		}
		out[mat] = append(out[mat], i)
	}
	return out
}

// Load reads a mesh file, choosing the format by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return LoadSTL(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %q (use .stl or .glb)", ErrUnsupportedFormat, ext)
	}
}

// Save writes m to path, choosing the format by extension.
func Save(path string, m *Mesh) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return SaveSTL(path, m)
	case ".glb":
		return SaveGLB(path, m)
	default:
		return fmt.Errorf("%w: %q (use .stl or .glb)", ErrUnsupportedFormat, ext)
	}
}
