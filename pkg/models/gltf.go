package models

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/twisty/pkg/math3d"
	"github.com/taigrr/twisty/pkg/render"
)

// WriteGLB writes m as a binary glTF with a single node and mesh. Faces are split
// into one primitive per material; faces without a material share an extra primitive
// that uses the default glTF material.
func WriteGLB(w io.Writer, m *Mesh) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "twisty"

	for _, mat := range m.Materials {
		rgba := linearRGBA(mat.Color)
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: mat.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &rgba,
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(0.6),
			},
		})
	}

	gm := &gltf.Mesh{Name: m.Name}
	groups := m.FacesByMaterial()
	for mat := -1; mat < len(m.Materials); mat++ {
		faces := groups[mat]
		if len(faces) == 0 {
			continue
		}
		positions, normals, indices := m.primitiveData(faces)
		prim := &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
		}
		if mat >= 0 {
			prim.Material = gltf.Index(mat)
		}
		gm.Primitives = append(gm.Primitives, prim)
	}
	doc.Meshes = append(doc.Meshes, gm)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// primitiveData packs the given faces into glTF vertex and index arrays, reindexing
// the vertices they use.
func (m *Mesh) primitiveData(faces []int) (positions, normals [][3]float32, indices []uint32) {
	remap := make(map[int]uint32)
	for _, fi := range faces {
		for _, vi := range m.Faces[fi].V {
			idx, ok := remap[vi]
			if !ok {
				idx = uint32(len(positions))
				remap[vi] = idx
				v := m.Vertices[vi]
				positions = append(positions, toF32(v.Position))
				normals = append(normals, toF32(v.Normal))
			}
			indices = append(indices, idx)
		}
	}
	return positions, normals, indices
}

// SaveGLB writes m as binary glTF to path.
func SaveGLB(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create glb: %w", err)
	}
	if err := WriteGLB(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadGLB decodes a glTF or GLB stream. Every triangle primitive of every mesh is
// appended; node transforms are not applied.
func ReadGLB(r io.Reader, name string) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return meshFromDocument(doc, name)
}

// LoadGLB loads a binary glTF (.glb) or a .gltf file.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return meshFromDocument(doc, filepath.Base(path))
}

func meshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, mat := range doc.Materials {
		c := render.ColorWhite
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			c = srgbColor(*pbr.BaseColorFactor)
		}
		mesh.Materials = append(mesh.Materials, Material{Name: mat.Name, Color: c})
	}

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
			}
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}
	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	material := -1
	if prim.Material != nil {
		material = int(*prim.Material)
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := MeshVertex{Position: fromF32(p)}
		if i < len(normals) {
			v.Normal = fromF32(normals[i])
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, Face{
			V:        [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])},
			Material: material,
		})
	}
	return nil
}

func toF32(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromF32(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// glTF color factors are linear; palette colors are sRGB.
func linearRGBA(c render.Color) [4]float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.04045 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return [4]float64{lin(c.R), lin(c.G), lin(c.B), 1}
}

func srgbColor(f [4]float64) render.Color {
	enc := func(l float64) uint8 {
		l = math.Max(0, math.Min(1, l))
		var s float64
		if l <= 0.0031308 {
			s = l * 12.92
		} else {
			s = 1.055*math.Pow(l, 1/2.4) - 0.055
		}
		return uint8(math.Round(s * 255))
	}
	return render.RGB(enc(f[0]), enc(f[1]), enc(f[2]))
}
