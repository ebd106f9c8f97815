package chroma

// Palette holds the fill and stroke colors of every block. Index 0 is the
// block at the front of the wheel.
type Palette struct {
	Fills   []Color
	Strokes []Color
}

// Len returns the number of blocks in the palette.
func (p Palette) Len() int { return len(p.Fills) }

// Front returns the fill color of the front block.
func (p Palette) Front() Color {
	if len(p.Fills) == 0 {
		return Transparent
	}
	return p.Fills[0]
}

// GeneratePalette builds n tonal variants of base by sweeping its HSL
// lightness: base first, then the darker shades, then the lighter ones.
// Every stroke is its fill shifted by strokeDiff lightness.
func GeneratePalette(base Color, n, strokeDiff int) Palette {
	if n < 1 {
		return Palette{}
	}
	p := Palette{
		Fills:   make([]Color, 0, n),
		Strokes: make([]Color, 0, n),
	}
	h, s, l0 := RGBToHSL(base)
	diff := float64(strokeDiff)

	add := func(l float64) {
		p.Fills = append(p.Fills, HSLToRGB(h, s, l, base.A))
		p.Strokes = append(p.Strokes, HSLToRGB(h, s, clampPercent(l+diff), base.A))
	}

	darker, lighter := shadeCounts(n)

	p.Fills = append(p.Fills, base)
	p.Strokes = append(p.Strokes, HSLToRGB(h, s, clampPercent(l0+diff), base.A))

	// Darker shades stop at 10 unless the base is already below it.
	floor := 10.0
	if l0 < 10 {
		floor = 0
	}
	// Near-white bases get a ceiling of 0, which turns the "lighter" sweep
	// back toward black. Existing palettes depend on this ordering.
	ceiling := 100.0
	if l0 > 90 {
		ceiling = 0
	}

	step := 0.0
	if darker > 0 {
		step = (l0 - floor) / float64(darker)
	}
	l := l0
	for i := 0; i < darker; i++ {
		l = clampPercent(l - step)
		add(l)
	}

	step = (ceiling - l0) / float64(lighter+1)
	l = l0
	for i := 0; i < lighter; i++ {
		l = clampPercent(l + step)
		add(l)
	}
	return p
}

// shadeCounts splits the n-1 non-base entries into darker and lighter
// shades; odd remainders go to the lighter side.
func shadeCounts(n int) (darker, lighter int) {
	if n < 1 {
		return 0, 0
	}
	darker = (n - 1) / 2
	lighter = (n - 1) - darker
	return darker, lighter
}

// Rotate cyclically shifts fills and strokes by k positions: the element at
// index i moves to (i+k) mod n. Negative k rotates left.
func (p *Palette) Rotate(k int) {
	rotate(p.Fills, k)
	rotate(p.Strokes, k)
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	return Palette{
		Fills:   append([]Color(nil), p.Fills...),
		Strokes: append([]Color(nil), p.Strokes...),
	}
}

func rotate(s []Color, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	reverse(s)
	reverse(s[:k])
	reverse(s[k:])
}

func reverse(s []Color) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
