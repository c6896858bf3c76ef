package doodle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorBlack is the default fill for every shape factory.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorWhite leaves vertex and image colors unchanged.
	ColorWhite = Color{1, 1, 1, 1}
)

// Hex converts a 0xRRGGBB value to an opaque Color. Bits above the low 24
// are ignored.
func Hex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" and "0xrrggbb" strings.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || len(s) != 8 {
			return Color{}, fmt.Errorf("doodle: invalid color %q", s)
		}
		return Hex(uint32(v)), nil
	case len(s) == 9 && s[0] == '#':
		// colorful does not understand an alpha suffix.
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("doodle: invalid color %q", s)
		}
		c, err := ParseColor(s[:7])
		if err != nil {
			return Color{}, err
		}
		c.A = float64(a) / 255
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("doodle: invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex returns the color as 0xRRGGBB, dropping alpha.
func (c Color) Hex() uint32 {
	r := uint32(clamp01(c.R)*255 + 0.5)
	g := uint32(clamp01(c.G)*255 + 0.5)
	b := uint32(clamp01(c.B)*255 + 0.5)
	return r<<16 | g<<8 | b
}

// String formats the color as "#rrggbb" or "#rrggbbaa" when not opaque.
func (c Color) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%06x", c.Hex())
	}
	return fmt.Sprintf("#%06x%02x", c.Hex(), uint8(clamp01(c.A)*255+0.5))
}

// toRGBA converts a Color to a color.Color (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fillOrBlack returns the first optional fill color, or black.
func fillOrBlack(fill []Color) Color {
	if len(fill) > 0 {
		return fill[0]
	}
	return ColorBlack
}
