package wheelview

import (
	"image"
	"image/color"
	"math"

	"chromawheel/chroma"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func init() {
	whiteImage = ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// defaultStrokeWidth is the outline width in pixels.
const defaultStrokeWidth = 10

type mesh struct {
	vs []ebiten.Vertex
	is []uint16
}

// Renderer draws wheel shapes onto an ebiten image with vector paths. Only
// the reference block is tessellated; each block is that mesh rotated around
// the wheel center.
type Renderer struct {
	target *ebiten.Image
	origin chroma.Point

	StrokeWidth float32

	blockKey   chroma.BlockShape
	blockFill  mesh
	blockLine  mesh
	ringKey    chroma.AnnulusShape
	ringFill   mesh
	haveBlock  bool
	haveRing   bool
	scratchVs  []ebiten.Vertex
	strokeUsed float32
}

func NewRenderer() *Renderer {
	return &Renderer{StrokeWidth: defaultStrokeWidth}
}

// Begin sets the image to draw on and the position of the wheel view's top
// left corner on it.
func (r *Renderer) Begin(dst *ebiten.Image, origin chroma.Point) {
	r.target = dst
	r.origin = origin
}

// clockAngle converts degrees clockwise from 12 o'clock into the radians
// ebiten's Arc expects, clockwise from 3 o'clock.
func clockAngle(deg float64) float32 {
	return float32((deg - 90) * math.Pi / 180)
}

func blockPath(s chroma.BlockShape) *vector.Path {
	var p vector.Path
	cx, cy := float32(s.Center.X), float32(s.Center.Y)
	a0, a1 := clockAngle(0), clockAngle(s.Sweep)
	start := chroma.PolarPoint(s.Center, s.OuterRadius, 0)
	end := chroma.PolarPoint(s.Center, s.InnerRadius, s.Sweep)
	p.MoveTo(float32(start.X), float32(start.Y))
	p.Arc(cx, cy, float32(s.OuterRadius), a0, a1, vector.Clockwise)
	p.LineTo(float32(end.X), float32(end.Y))
	p.Arc(cx, cy, float32(s.InnerRadius), a1, a0, vector.CounterClockwise)
	p.Close()
	return &p
}

func ringPath(s chroma.AnnulusShape) *vector.Path {
	var p vector.Path
	cx, cy := float32(s.Center.X), float32(s.Center.Y)
	p.MoveTo(cx+float32(s.OuterRadius), cy)
	p.Arc(cx, cy, float32(s.OuterRadius), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	// the hole winds the other way so the non-zero rule leaves it empty
	p.MoveTo(cx+float32(s.InnerRadius), cy)
	p.Arc(cx, cy, float32(s.InnerRadius), 2*math.Pi, 0, vector.CounterClockwise)
	p.Close()
	return &p
}

func (r *Renderer) block(s chroma.BlockShape) {
	if r.haveBlock && r.blockKey == s && r.strokeUsed == r.StrokeWidth {
		return
	}
	p := blockPath(s)
	r.blockFill.vs, r.blockFill.is = p.AppendVerticesAndIndicesForFilling(r.blockFill.vs[:0], r.blockFill.is[:0])
	r.blockLine.vs, r.blockLine.is = p.AppendVerticesAndIndicesForStroke(r.blockLine.vs[:0], r.blockLine.is[:0], &vector.StrokeOptions{
		Width:    r.StrokeWidth,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	r.blockKey = s
	r.strokeUsed = r.StrokeWidth
	r.haveBlock = true
}

func (r *Renderer) ring(s chroma.AnnulusShape) {
	if r.haveRing && r.ringKey == s {
		return
	}
	p := ringPath(s)
	r.ringFill.vs, r.ringFill.is = p.AppendVerticesAndIndicesForFilling(r.ringFill.vs[:0], r.ringFill.is[:0])
	r.ringKey = s
	r.haveRing = true
}

// DrawBlock fills, and optionally strokes, the reference block rotated by
// rotation degrees clockwise around the wheel center.
func (r *Renderer) DrawBlock(s chroma.BlockShape, rotation float64, fill chroma.Color, stroke *chroma.Color) {
	if r.target == nil {
		return
	}
	r.block(s)
	geo := r.transform(s.Center, rotation)
	r.draw(r.blockFill, geo, fill, ebiten.FillRuleNonZero)
	if stroke != nil && stroke.A > 0 {
		r.draw(r.blockLine, geo, *stroke, ebiten.FillRuleFillAll)
	}
}

// DrawOverlay fills the whole ring.
func (r *Renderer) DrawOverlay(s chroma.AnnulusShape, fill chroma.Color) {
	if r.target == nil {
		return
	}
	r.ring(s)
	r.draw(r.ringFill, r.transform(s.Center, 0), fill, ebiten.FillRuleNonZero)
}

func (r *Renderer) transform(center chroma.Point, rotation float64) ebiten.GeoM {
	var geo ebiten.GeoM
	geo.Translate(-center.X, -center.Y)
	geo.Rotate(rotation * math.Pi / 180)
	geo.Translate(center.X+r.origin.X, center.Y+r.origin.Y)
	return geo
}

func (r *Renderer) draw(m mesh, geo ebiten.GeoM, c chroma.Color, rule ebiten.FillRule) {
	if len(m.is) == 0 {
		return
	}
	cr, cg, cb, ca := c.RGBA()
	r.scratchVs = append(r.scratchVs[:0], m.vs...)
	for i := range r.scratchVs {
		v := &r.scratchVs[i]
		x, y := geo.Apply(float64(v.DstX), float64(v.DstY))
		v.DstX = float32(x)
		v.DstY = float32(y)
		v.SrcX = 1
		v.SrcY = 1
		v.ColorR = float32(cr) / 0xffff
		v.ColorG = float32(cg) / 0xffff
		v.ColorB = float32(cb) / 0xffff
		v.ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
		FillRule:       rule,
	}
	r.target.DrawTriangles(r.scratchVs, m.is, whiteSubImage, op)
}
