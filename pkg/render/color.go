package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/taigrr/twisty/pkg/cube"
)

// ErrBadColor is returned for color strings that are not #RRGGBB.
var ErrBadColor = errors.New("bad color")

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 255, 0)
	ColorBlue  = RGB(0, 0, 255)
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// NRGBA returns c as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats c as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses #RRGGBB (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustHex is ParseHex for constants; it panics on bad input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette maps stickers to fill colors and holds the fixed outline and background.
type Palette struct {
	Stickers   [7]Color // indexed by cube.Sticker; Blank is never drawn
	Outline    Color
	Background Color
}

// DefaultPalette returns the classic scheme: white up, yellow down, red front, orange
// back, blue left and green right on a grey background.
func DefaultPalette() Palette {
	var p Palette
	p.Stickers[cube.Blank] = MustHex("#222222")
	p.Stickers[cube.StickerU] = MustHex("#FFFFFF")
	p.Stickers[cube.StickerD] = MustHex("#FFD700")
	p.Stickers[cube.StickerF] = MustHex("#EF3B36")
	p.Stickers[cube.StickerB] = MustHex("#FF8C00")
	p.Stickers[cube.StickerL] = MustHex("#0033FF")
	p.Stickers[cube.StickerR] = MustHex("#00AA00")
	p.Outline = MustHex("#1A1A1A")
	p.Background = MustHex("#404040")
	return p
}

// Color returns the fill for s.
func (p *Palette) Color(s cube.Sticker) Color {
	return p.Stickers[s]
}
