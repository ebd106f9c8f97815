package wheelview

import (
	"image"
	"time"

	"chromawheel/chroma"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSample is the primary pointer as seen during one tick.
type pointerSample struct {
	pressed     bool
	justPressed bool
	x, y        int
}

// samplePointer reads the primary pointer. A touch wins over the mouse and
// multi-touch is treated as no pointer at all.
func samplePointer() pointerSample {
	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) > 1 {
		return pointerSample{}
	}
	if len(ids) == 1 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointerSample{
			pressed:     true,
			justPressed: len(inpututil.AppendJustPressedTouchIDs(nil)) > 0,
			x:           x,
			y:           y,
		}
	}
	x, y := ebiten.CursorPosition()
	return pointerSample{
		pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButton0),
		justPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButton0),
		x:           x,
		y:           y,
	}
}

// pointerTracker turns per-tick samples into down/move/up events in view
// coordinates. Presses that start outside the bounds are ignored until
// released. Move is only reported when the position changes.
type pointerTracker struct {
	down  bool
	lastX int
	lastY int
}

func (p *pointerTracker) track(s pointerSample, bounds image.Rectangle, now time.Time, out []chroma.PointerEvent) []chroma.PointerEvent {
	event := func(t chroma.PointerType, x, y int) chroma.PointerEvent {
		return chroma.PointerEvent{
			Type: t,
			X:    float64(x - bounds.Min.X),
			Y:    float64(y - bounds.Min.Y),
			At:   now,
		}
	}

	if !p.down {
		if s.pressed && s.justPressed && image.Pt(s.x, s.y).In(bounds) {
			p.down = true
			p.lastX, p.lastY = s.x, s.y
			out = append(out, event(chroma.PointerDown, s.x, s.y))
		}
		return out
	}

	if !s.pressed {
		p.down = false
		return append(out, event(chroma.PointerUp, p.lastX, p.lastY))
	}
	if s.x != p.lastX || s.y != p.lastY {
		p.lastX, p.lastY = s.x, s.y
		out = append(out, event(chroma.PointerMove, s.x, s.y))
	}
	return out
}
