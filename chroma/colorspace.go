package chroma

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	minPercent = 0
	maxPercent = 100
)

// RGBToHSL returns hue in degrees [0,360), saturation and lightness in [0,100].
// Alpha is ignored.
func RGBToHSL(c Color) (h, s, l float64) {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l = cf.Hsl()
	return h, s * 100, l * 100
}

// HSLToRGB is the inverse of RGBToHSL. Saturation and lightness are clamped
// to [0,100] before conversion.
func HSLToRGB(h, s, l float64, a uint8) Color {
	cf := colorful.Hsl(h, clampPercent(s)/100, clampPercent(l)/100).Clamped()
	r, g, b := cf.RGB255()
	return NewColor(r, g, b, a)
}

// clampPercent keeps an HSL channel inside [0,100].
func clampPercent(v float64) float64 {
	if v < minPercent {
		return minPercent
	}
	if v > maxPercent {
		return maxPercent
	}
	return v
}

// WithLightness returns c with its HSL lightness replaced by l (clamped).
func WithLightness(c Color, l float64) Color {
	h, s, _ := RGBToHSL(c)
	return HSLToRGB(h, s, l, c.A)
}
