package models

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/taigrr/twisty/pkg/math3d"
	"github.com/taigrr/twisty/pkg/render"
)

// Binary STL layout: an 80-byte header, a little-endian uint32 triangle count, then
// 50 bytes per triangle (normal, three vertices, uint16 attribute).
const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// stlColorValid marks an attribute word that carries a 15-bit RGB color.
const stlColorValid = 1 << 15

var (
	// ErrASCIISTL is returned when reading an ASCII STL; only binary files are read.
	ErrASCIISTL = errors.New("ascii STL not supported")
	// ErrTruncatedSTL is returned when the file is shorter than its triangle count.
	ErrTruncatedSTL = errors.New("binary STL truncated")
)

// WriteSTL writes m as binary STL. Facet normals are recomputed from the winding.
// The attribute word of each facet carries its material color as 5 bits per channel
// (red high, blue low) with bit 15 set; faces without a material write 0.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "binary STL "+m.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("write STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return fmt.Errorf("write STL count: %w", err)
	}

	var facet [stlFacetSize]byte
	for i, f := range m.Faces {
		n := m.FaceNormal(i)
		putVec3(facet[0:], n)
		for v := range 3 {
			putVec3(facet[12+12*v:], m.Vertices[f.V[v]].Position)
		}
		var attr uint16
		if f.Material >= 0 && f.Material < len(m.Materials) {
			attr = packSTLColor(m.Materials[f.Material].Color)
		}
		binary.LittleEndian.PutUint16(facet[48:], attr)
		if _, err := bw.Write(facet[:]); err != nil {
			return fmt.Errorf("write STL facet %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// SaveSTL writes m as binary STL to path.
func SaveSTL(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create STL file: %w", err)
	}
	if err := WriteSTL(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSTL parses a binary STL. Vertices shared between facets are deduplicated and
// facet colors become materials, one per distinct color.
func ReadSTL(r io.Reader, name string) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}
	if !isBinarySTL(data) {
		return nil, ErrASCIISTL
	}

	triCount := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	expectedSize := uint64(stlHeaderSize+4) + uint64(triCount)*stlFacetSize
	if uint64(len(data)) < expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrTruncatedSTL, expectedSize, len(data))
	}

	mesh := NewMesh(name)
	vertexMap := make(map[math3d.Vec3]int)
	materialMap := make(map[uint16]int)

	offset := stlHeaderSize + 4
	for range triCount {
		normal := readVec3(data[offset:])
		offset += 12

		var faceVerts [3]int
		for v := range 3 {
			pos := readVec3(data[offset:])
			offset += 12

			idx, ok := vertexMap[pos]
			if !ok {
				idx = len(mesh.Vertices)
				mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: pos, Normal: normal})
				vertexMap[pos] = idx
			}
			faceVerts[v] = idx
		}

		attr := binary.LittleEndian.Uint16(data[offset:])
		offset += 2

		material := -1
		if attr&stlColorValid != 0 {
			var ok bool
			if material, ok = materialMap[attr]; !ok {
				material = len(mesh.Materials)
				c := unpackSTLColor(attr)
				mesh.Materials = append(mesh.Materials, Material{Name: c.Hex(), Color: c})
				materialMap[attr] = material
			}
		}
		mesh.Faces = append(mesh.Faces, Face{V: faceVerts, Material: material})
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// LoadSTL reads a binary STL file from disk.
func LoadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL file: %w", err)
	}
	defer f.Close()
	return ReadSTL(f, path)
}

// isBinarySTL detects if the data is binary STL format.
// ASCII STL starts with "solid", but so do some binary headers, so a file starting
// with "solid" is binary only when its triangle count matches its size.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("solid")) {
		return true
	}
	triCount := uint64(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	return uint64(len(data)) == stlHeaderSize+4+triCount*stlFacetSize
}

func putVec3(b []byte, v math3d.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

func readVec3(b []byte) math3d.Vec3 {
	return math3d.V3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	)
}

func packSTLColor(c render.Color) uint16 {
	return stlColorValid | uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
}

// unpackSTLColor expands 5-bit channels back to 8 bits by repeating the high bits.
func unpackSTLColor(attr uint16) render.Color {
	expand := func(v uint16) uint8 {
		v &= 0x1f
		return uint8(v<<3 | v>>2)
	}
	return render.RGB(expand(attr>>10), expand(attr>>5), expand(attr))
}
