package chroma

import "math"

// HitTest resolves the palette index of the block under p, or false when p
// is off the ring or inside a gap. It takes no rotation offset: taps are
// ignored while the ring spins, so whenever a hit is resolved the offset is
// Layout.StartAngle.
func HitTest(p Point, layout Layout, paletteSize int) (int, bool) {
	if paletteSize < 1 || layout.PackAngle <= 0 {
		return 0, false
	}
	r := Distance(p, layout.Center)
	if r < layout.InnerRadius || r > layout.OuterRadius {
		return 0, false
	}

	// Angles here run counter-clockwise from 3 o'clock, so block 0 sits
	// around 90 degrees.
	half := layout.BlockAngle / 2
	a := 90 + half
	b := 90 - half
	c := AngleFromCenter(layout.Center, p)

	var angle float64
	if c < b {
		angle = 360 - b + c
	} else {
		angle = c - b
	}

	rangeValue := math.Mod(angle, layout.PackAngle)
	if rangeValue < 0 || rangeValue > a-b {
		return 0, false
	}

	idx := int(angle/layout.PackAngle) % paletteSize
	if idx > 0 {
		return paletteSize - idx, true
	}
	return 0, true
}
