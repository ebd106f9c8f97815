package wheelview

import (
	"image"

	"chromawheel/chroma"

	"github.com/hajimehoshi/ebiten/v2"
)

// View hosts a chroma wheel inside an ebiten game. Call Update from the
// game's Update and Draw from its Draw.
type View struct {
	Wheel     *chroma.Wheel
	Scheduler *chroma.TickScheduler

	clock    chroma.Clock
	renderer *Renderer
	pointer  pointerTracker
	events   []chroma.PointerEvent
	bounds   image.Rectangle

	canvas *ebiten.Image
	dirty  bool
}

// New builds a view with a wheel animated by a tick scheduler on clock. A nil
// clock uses the system clock.
func New(cfg chroma.Config, clock chroma.Clock) (*View, error) {
	if clock == nil {
		clock = chroma.SystemClock{}
	}
	sched := chroma.NewTickScheduler(clock, chroma.AccelerateDecelerate)
	w, err := chroma.NewWheel(cfg, sched)
	if err != nil {
		return nil, err
	}
	v := &View{
		Wheel:     w,
		Scheduler: sched,
		clock:     clock,
		renderer:  NewRenderer(),
		dirty:     true,
	}
	w.OnRedraw(func() { v.dirty = true })
	return v, nil
}

// OnColorSelected forwards to the wheel and hands the listener the color that
// is now at the front.
func (v *View) OnColorSelected(fn func(index int, c chroma.Color)) {
	if fn == nil {
		v.Wheel.OnColorSelected(nil)
		return
	}
	v.Wheel.OnColorSelected(func(index int) {
		fn(index, v.Wheel.SelectedColor())
	})
}

func (v *View) Bounds() image.Rectangle { return v.bounds }

// SetBounds places the view on screen. The wheel is centered in r.
func (v *View) SetBounds(r image.Rectangle) error {
	if r == v.bounds {
		return nil
	}
	if err := v.Wheel.Resize(float64(r.Dx()), float64(r.Dy())); err != nil {
		return err
	}
	v.bounds = r
	if v.canvas != nil {
		b := v.canvas.Bounds()
		if b.Dx() != r.Dx() || b.Dy() != r.Dy() {
			v.canvas.Deallocate()
			v.canvas = nil
		}
	}
	v.dirty = true
	return nil
}

// SetStrokeWidth changes the block outline width in pixels.
func (v *View) SetStrokeWidth(w float32) {
	if w <= 0 || w == v.renderer.StrokeWidth {
		return
	}
	v.renderer.StrokeWidth = w
	v.dirty = true
}

// Update feeds pointer input to the wheel and advances any running rotation.
func (v *View) Update() {
	v.events = v.pointer.track(samplePointer(), v.bounds, v.clock.Now(), v.events[:0])
	for _, ev := range v.events {
		v.Wheel.HandlePointer(ev)
	}
	v.Scheduler.Advance()
}

// Draw renders the wheel onto screen at the view bounds. The wheel is only
// re-rendered after it reports a change.
func (v *View) Draw(screen *ebiten.Image) {
	if v.bounds.Empty() {
		return
	}
	if v.canvas == nil {
		v.canvas = ebiten.NewImage(v.bounds.Dx(), v.bounds.Dy())
		v.dirty = true
	}
	if v.dirty {
		v.canvas.Clear()
		v.renderer.Begin(v.canvas, chroma.Point{})
		v.Wheel.Draw(v.renderer)
		v.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(v.bounds.Min.X), float64(v.bounds.Min.Y))
	screen.DrawImage(v.canvas, op)
}
