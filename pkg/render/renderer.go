// Package render turns the cube engine state into depth-ordered screen polygons and
// rasterizes them.
package render

import (
	"slices"

	"github.com/taigrr/twisty/pkg/cube"
	"github.com/taigrr/twisty/pkg/math3d"
)

// DefaultOutlineWidth is the sticker outline width in pixels at the default scale.
const DefaultOutlineWidth = 3.0

// Polygon is one visible sticker quad in screen space.
type Polygon struct {
	Points  [4]math3d.Vec2
	Depth   float64 // mean depth of the corners; larger is farther
	Sticker cube.Sticker
	Home    [3]int // home position of the cubelet it belongs to
}

// Canvas is a 2D drawing target.
type Canvas interface {
	Clear()
	FillPolygon(points []math3d.Vec2, fill, outline Color, width float64)
}

// Stats counts what happened to the candidate quads of the last frame.
type Stats struct {
	FacesTested int // quads of surface cubelets considered
	BackCulled  int // quads facing away from the camera
	BlankSkip   int // front-facing quads with no sticker
	Drawn       int // polygons emitted
}

// Renderer projects the engine state through a Camera and paints it with a Palette.
type Renderer struct {
	Camera       *Camera
	Palette      Palette
	OutlineWidth float64
	Stats        Stats // statistics for the last Polygons call
}

// NewRenderer creates a renderer with the default camera and palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Camera:       NewCamera(),
		Palette:      DefaultPalette(),
		OutlineWidth: DefaultOutlineWidth,
	}
}

// Polygons returns the visible sticker polygons of e, farthest first. Quads whose view
// space normal does not point toward the camera (z <= 0) are culled; quads showing no
// sticker are skipped. Polygons of equal depth keep cubelet order.
func (r *Renderer) Polygons(e *cube.Engine) []Polygon {
	view := e.View()
	r.Stats = Stats{}
	polys := make([]Polygon, 0, 27)
	for _, c := range e.Cubelets() {
		if !c.IsSurface() {
			continue
		}
		for _, q := range c.Faces() {
			r.Stats.FacesTested++
			n := q.Normal()
			if view.MulVec3(n).Z <= 0 {
				r.Stats.BackCulled++
				continue
			}
			s := c.StickerFacing(n)
			if s == cube.Blank {
				r.Stats.BlankSkip++
				continue
			}
			p := Polygon{Sticker: s, Home: c.Home}
			for i, v := range q.P {
				var d float64
				p.Points[i], d = r.Camera.Project(v, view)
				p.Depth += d
			}
			p.Depth /= 4
			polys = append(polys, p)
		}
	}
	slices.SortStableFunc(polys, func(a, b Polygon) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
	r.Stats.Drawn = len(polys)
	return polys
}

// Draw clears canvas and paints the visible stickers of e back to front.
func (r *Renderer) Draw(canvas Canvas, e *cube.Engine) {
	canvas.Clear()
	for _, p := range r.Polygons(e) {
		canvas.FillPolygon(p.Points[:], r.Palette.Color(p.Sticker), r.Palette.Outline, r.OutlineWidth)
	}
}
