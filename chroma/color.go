package chroma

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color. Alpha is carried through every
// palette entry untouched.
type Color color.NRGBA

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

func (c Color) ToNRGBA() color.NRGBA { return color.NRGBA(c) }

func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Transparent is the zero color. Strokes and overlays with zero alpha are
// not drawn.
var Transparent = Color{}

// Hex formats the color as #RRGGBB, or #RRGGBBAA when it is not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex accepts "#RRGGBB", "#RRGGBBAA" and the same forms without '#'.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		val = val<<8 | 0xff
	}
	return NewColor(uint8(val>>24), uint8(val>>16), uint8(val>>8), uint8(val)), nil
}

// MarshalJSON writes the color as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON accepts a hex string, an {R,G,B,A} object or a
// comma-separated HSL triple "h,s,l" with s and l in 0-100. An object
// without A is opaque.
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	rgba := struct{ R, G, B, A uint8 }{A: 0xff}
	if err := json.Unmarshal(data, &rgba); err == nil {
		*c = NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid color format: %s", string(data))
	}
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ","); len(parts) == 3 {
		var v [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("invalid hsl color %q: %w", s, err)
			}
			v[i] = f
		}
		*c = HSLToRGB(v[0], v[1], v[2], 0xff)
		return nil
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
