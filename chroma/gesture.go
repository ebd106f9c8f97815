package chroma

import "time"

type PointerType int

const (
	PointerDown PointerType = iota
	PointerMove
	PointerUp
)

func (t PointerType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a single raw pointer sample from the platform.
type PointerEvent struct {
	Type PointerType
	X, Y float64
	At   time.Time
}

// gesture tracks one pointer from down to up.
type gesture struct {
	active bool
	down   time.Time
	moved  bool
}

func (g *gesture) press(at time.Time) {
	*g = gesture{active: true, down: at}
}

func (g *gesture) move() {
	g.moved = true
}

// release ends the gesture and reports whether it was a tap: no movement
// and released within TapTimeout.
func (g *gesture) release(at time.Time) bool {
	tap := g.active && !g.moved && at.Sub(g.down) < TapTimeout
	*g = gesture{}
	return tap
}
