package models

import (
	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/render"
)

// FromEngine builds a mesh of the puzzle's current geometry. Every quad of every
// surface cubelet is included; quads are assigned the material of the sticker they
// show, and material i belongs to cube.Sticker(i), with the blank body at 0.
func FromEngine(e *cube.Engine, palette render.Palette) *Mesh {
	m := NewMesh("twisty")
	m.Materials = make([]Material, len(palette.Stickers))
	for s := range palette.Stickers {
		name := "sticker_" + cube.Sticker(s).String()
		if cube.Sticker(s) == cube.Blank {
			name = "body"
		}
		m.Materials[s] = Material{Name: name, Color: palette.Stickers[s]}
	}

	for _, c := range e.Cubelets() {
		if !c.IsSurface() {
			continue
		}
		for _, q := range c.Faces() {
			s := c.StickerFacing(q.Normal())
			m.AddQuad(q.P, int(s))
		}
	}
	m.CalculateBounds()
	return m
}
