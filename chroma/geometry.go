package chroma

import (
	"fmt"
	"math"
)

// Point is a position in view pixels, y pointing down.
type Point struct {
	X, Y float64
}

// Layout is the angular partition of the wheel and its pixel radii. All
// angles are in degrees, measured clockwise from 12 o'clock.
type Layout struct {
	Count int

	// PackAngle spans one block plus its trailing gap.
	PackAngle  float64
	BlockAngle float64
	GapAngle   float64
	// StartAngle centers block 0 on the 12 o'clock axis.
	StartAngle float64

	Center      Point
	InnerRadius float64
	OuterRadius float64
}

// NewLayout partitions the wheel into n blocks separated by gaps of
// gap×BlockAngle. The radii are fractions of halfSize, half of the smaller
// view side.
func NewLayout(n int, gap, innerFrac, outerFrac float64, center Point, halfSize float64) (Layout, error) {
	if err := validateGeometry(n, gap, innerFrac, outerFrac); err != nil {
		return Layout{}, err
	}
	if halfSize < 0 {
		return Layout{}, fmt.Errorf("%w: negative view size %v", ErrInvalidRadius, halfSize)
	}
	pack := 360 / float64(n)
	block := pack / (1 + gap)
	return Layout{
		Count:       n,
		PackAngle:   pack,
		BlockAngle:  block,
		GapAngle:    pack - block,
		StartAngle:  -block / 2,
		Center:      center,
		InnerRadius: halfSize * innerFrac,
		OuterRadius: halfSize * outerFrac,
	}, nil
}

// Placement returns the clockwise rotation, in degrees, at which block k is
// drawn when the whole ring is rotated to offset.
func (l Layout) Placement(k int, offset float64) float64 {
	return offset + float64(k)*l.PackAngle
}

// BlockShape is the reference block: the annulus sector between the two radii
// spanning Sweep degrees clockwise from 12 o'clock. Every block is this shape
// rotated around Center.
type BlockShape struct {
	Center      Point
	InnerRadius float64
	OuterRadius float64
	Sweep       float64
}

// AnnulusShape is the full ring between the two radii; the overlay shadow.
type AnnulusShape struct {
	Center      Point
	InnerRadius float64
	OuterRadius float64
}

func (l Layout) BlockShape() BlockShape {
	return BlockShape{
		Center:      l.Center,
		InnerRadius: l.InnerRadius,
		OuterRadius: l.OuterRadius,
		Sweep:       l.BlockAngle,
	}
}

func (l Layout) OverlayShape() AnnulusShape {
	return AnnulusShape{
		Center:      l.Center,
		InnerRadius: l.InnerRadius,
		OuterRadius: l.OuterRadius,
	}
}

// Wedge returns the end points of the two rays that cut the block out of the
// annulus. Both start at Center and reach twice the outer radius, at 0 and
// Sweep degrees.
func (b BlockShape) Wedge() (start, end Point) {
	start = Point{X: b.Center.X, Y: b.Center.Y - 2*b.OuterRadius}
	end = RotatePoint(b.Center, start, b.Sweep)
	return start, end
}

// Outline approximates the block boundary rotated by rotation degrees: the
// outer arc clockwise followed by the inner arc counter-clockwise. segments
// is the number of straight pieces per arc.
func (b BlockShape) Outline(rotation float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	pts := make([]Point, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		a := rotation + b.Sweep*float64(i)/float64(segments)
		pts = append(pts, PolarPoint(b.Center, b.OuterRadius, a))
	}
	for i := segments; i >= 0; i-- {
		a := rotation + b.Sweep*float64(i)/float64(segments)
		pts = append(pts, PolarPoint(b.Center, b.InnerRadius, a))
	}
	return pts
}

// PolarPoint returns the point at radius r and angle deg clockwise from
// 12 o'clock around c.
func PolarPoint(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: c.X + r*math.Sin(rad), Y: c.Y - r*math.Cos(rad)}
}

// RotatePoint rotates p around c by deg degrees, clockwise on screen.
func RotatePoint(c, p Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// Distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// AngleFromCenter returns the angle of p around c in [0,360), counter-clockwise
// from 3 o'clock as seen on screen.
func AngleFromCenter(c, p Point) float64 {
	a := math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
	if a < 0 {
		a = -a
	} else {
		a = 360 - a
	}
	if a >= 360 {
		a -= 360
	}
	return a
}
