package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/taigrr/twisty/pkg/math3d"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ErrUnsupportedFormat is returned by Save and Encode for unknown image formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Framebuffer is an RGBA pixel buffer that implements Canvas. Polygons are filled
// with anti-aliased coverage from an x/image/vector rasterizer.
type Framebuffer struct {
	Width, Height int
	BG            Color

	img *image.RGBA
	ras *vector.Rasterizer
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the buffer; the content is cleared to BG.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = max(width, 1)
	fb.Height = max(height, 1)
	fb.img = image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.ras = vector.NewRasterizer(fb.Width, fb.Height)
	fb.Clear()
}

// Clear fills the buffer with the background color.
func (fb *Framebuffer) Clear() {
	pix := fb.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = fb.BG.R
		pix[i+1] = fb.BG.G
		pix[i+2] = fb.BG.B
		pix[i+3] = 255
	}
}

// SetPixel sets one pixel; out of range coordinates are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := fb.img.PixOffset(x, y)
	fb.img.Pix[i] = c.R
	fb.img.Pix[i+1] = c.G
	fb.img.Pix[i+2] = c.B
	fb.img.Pix[i+3] = 255
}

// GetPixel returns the color at (x, y), or black out of range.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return ColorBlack
	}
	i := fb.img.PixOffset(x, y)
	return RGB(fb.img.Pix[i], fb.img.Pix[i+1], fb.img.Pix[i+2])
}

// ToImage returns the backing image. It is shared with the framebuffer and changes
// with the next draw.
func (fb *Framebuffer) ToImage() *image.RGBA {
	return fb.img
}

// FillPolygon fills the closed polygon with fill, then strokes its edges with outline
// at the given width. A width <= 0 draws no outline.
func (fb *Framebuffer) FillPolygon(points []math3d.Vec2, fill, outline Color, width float64) {
	if len(points) < 3 {
		return
	}
	fb.ras.Reset(fb.Width, fb.Height)
	fb.ras.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		fb.ras.LineTo(float32(p.X), float32(p.Y))
	}
	fb.ras.ClosePath()
	fb.ras.Draw(fb.img, fb.img.Bounds(), image.NewUniform(fill), image.Point{})

	if width <= 0 {
		return
	}
	fb.ras.Reset(fb.Width, fb.Height)
	for i, a := range points {
		fb.strokeSegment(a, points[(i+1)%len(points)], width)
	}
	fb.ras.Draw(fb.img, fb.img.Bounds(), image.NewUniform(outline), image.Point{})
}

// strokeSegment adds a rectangle covering the segment a-b, extended by half the width
// at both ends so consecutive segments overlap at the corners.
func (fb *Framebuffer) strokeSegment(a, b math3d.Vec2, width float64) {
	d := b.Sub(a)
	if d.Len() < 1e-9 {
		return
	}
	half := width / 2
	dir := d.Normalize().Scale(half)
	n := dir.Perpendicular()
	a = a.Sub(dir)
	b = b.Add(dir)
	corners := [4]math3d.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
	fb.ras.MoveTo(float32(corners[0].X), float32(corners[0].Y))
	for _, c := range corners[1:] {
		fb.ras.LineTo(float32(c.X), float32(c.Y))
	}
	fb.ras.ClosePath()
}

// Downsample returns a copy scaled down by factor with Catmull-Rom filtering. It is
// used to anti-alias snapshots rendered at a multiple of the output size.
func (fb *Framebuffer) Downsample(factor int) *Framebuffer {
	if factor <= 1 {
		out := NewFramebuffer(fb.Width, fb.Height)
		out.BG = fb.BG
		copy(out.img.Pix, fb.img.Pix)
		return out
	}
	w := int(math.Ceil(float64(fb.Width) / float64(factor)))
	h := int(math.Ceil(float64(fb.Height) / float64(factor)))
	out := NewFramebuffer(w, h)
	out.BG = fb.BG
	draw.CatmullRom.Scale(out.img, out.img.Bounds(), fb.img, fb.img.Bounds(), draw.Src, nil)
	return out
}

// Encode writes the buffer in the named format: png, webp or tga.
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return png.Encode(w, fb.img)
	case "webp":
		return nativewebp.Encode(w, fb.img, nil)
	case "tga":
		return tga.Encode(w, fb.img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the buffer to path in the format named by its extension.
func (fb *Framebuffer) Save(path string) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".webp", ".tga":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return fb.saveAs(path, ext)
}

// SavePNG saves the framebuffer as a PNG image.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.saveAs(path, "png")
}

// SaveWebP saves the framebuffer as a lossless WebP image.
func (fb *Framebuffer) SaveWebP(path string) error {
	return fb.saveAs(path, "webp")
}

// SaveTGA saves the framebuffer as a TGA image.
func (fb *Framebuffer) SaveTGA(path string) error {
	return fb.saveAs(path, "tga")
}

func (fb *Framebuffer) saveAs(path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fb.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
