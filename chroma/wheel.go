package chroma

import (
	"fmt"
	"math"
	"time"
)

// State of the rotation controller.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Renderer draws the shapes handed out by a wheel. A nil stroke means the
// block is filled only.
type Renderer interface {
	DrawBlock(shape BlockShape, rotation float64, fill Color, stroke *Color)
	DrawOverlay(shape AnnulusShape, fill Color)
}

// Wheel owns the base color, palette, layout and rotation state of one chroma
// wheel. It is not safe for concurrent use; drive it from a single loop.
type Wheel struct {
	cfg     Config
	layout  Layout
	palette Palette

	center   Point
	halfSize float64

	offset float64
	front  int
	state  State
	// strokes are hidden while the ring spins.
	strokesHidden bool

	gesture   gesture
	scheduler Scheduler
	// pending holds a configuration accepted mid-rotation.
	pending      *Config
	pendingRegen bool

	onSelected func(index int)
	onRedraw   func()
}

// NewWheel validates cfg and builds the palette and a zero-sized layout. Call
// Resize once the view size is known. scheduler may be nil when
// AnimationDuration is zero.
func NewWheel(cfg Config, scheduler Scheduler) (*Wheel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil && cfg.AnimationDuration > 0 {
		return nil, fmt.Errorf("animation duration %v needs a scheduler", cfg.AnimationDuration)
	}
	w := &Wheel{cfg: cfg, scheduler: scheduler}
	if err := w.rebuildLayout(); err != nil {
		return nil, err
	}
	w.rebuildPalette()
	return w, nil
}

// OnColorSelected sets the listener fired once per accepted tap with the
// palette index that was struck, after the palette has been rotated.
func (w *Wheel) OnColorSelected(fn func(index int)) { w.onSelected = fn }

// OnRedraw sets a callback fired whenever the visible state changes.
func (w *Wheel) OnRedraw(fn func()) { w.onRedraw = fn }

func (w *Wheel) Layout() Layout { return w.layout }
func (w *Wheel) State() State { return w.state }
func (w *Wheel) Animating() bool { return w.state == Animating }
func (w *Wheel) Offset() float64 { return w.offset }
func (w *Wheel) FrontIndex() int { return w.front }
func (w *Wheel) Palette() Palette { return w.palette.Clone() }
func (w *Wheel) SelectedColor() Color { return w.palette.Front() }

// Resize recomputes the layout for a view of the given size, centered in it.
func (w *Wheel) Resize(width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: view %vx%v", ErrInvalidRadius, width, height)
	}
	w.center = Point{X: width / 2, Y: height / 2}
	w.halfSize = math.Min(width, height) / 2
	if err := w.rebuildLayout(); err != nil {
		return err
	}
	w.redraw()
	return nil
}

// Apply replaces the whole configuration. Invalid configurations are
// rejected and leave the wheel unchanged. A change made while the ring spins
// is held back and applied once the rotation has completed and its selection
// has been reported, so the palette being rotated is never swapped out.
func (w *Wheel) Apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if w.scheduler == nil && cfg.AnimationDuration > 0 {
		return fmt.Errorf("animation duration %v needs a scheduler", cfg.AnimationDuration)
	}
	return w.accept(cfg, false)
}

// accept applies a validated cfg now, or queues it while the ring spins.
// regen forces a fresh palette even when its inputs are unchanged.
func (w *Wheel) accept(cfg Config, regen bool) error {
	if w.state == Animating {
		w.pending = &cfg
		w.pendingRegen = w.pendingRegen || regen
		return nil
	}
	w.pending = nil
	w.pendingRegen = false
	return w.apply(cfg, regen)
}

// apply installs cfg. The palette is only regenerated when one of its inputs
// changed, so a rotated palette survives style-only edits.
func (w *Wheel) apply(cfg Config, regen bool) error {
	prev := w.cfg
	w.cfg = cfg
	if err := w.rebuildLayout(); err != nil {
		w.cfg = prev
		return err
	}
	if regen || cfg.BaseColor != prev.BaseColor || cfg.NumberOfColors != prev.NumberOfColors ||
		cfg.StrokeColorDifference != prev.StrokeColorDifference || w.palette.Len() != cfg.NumberOfColors {
		w.rebuildPalette()
	}
	w.redraw()
	return nil
}

// Config returns the latest accepted configuration, including one still
// waiting for a rotation to finish.
func (w *Wheel) Config() Config {
	if w.pending != nil {
		return *w.pending
	}
	return w.cfg
}

// update edits a copy of the current configuration and applies it.
func (w *Wheel) update(edit func(cfg *Config)) error {
	cfg := w.Config()
	edit(&cfg)
	return w.Apply(cfg)
}

// SetBaseColor regenerates the palette around c, putting c back at the
// front even when it is the current base.
func (w *Wheel) SetBaseColor(c Color) {
	cfg := w.Config()
	cfg.BaseColor = c
	w.accept(cfg, true)
}

func (w *Wheel) SetNumberOfColors(n int) error {
	return w.update(func(cfg *Config) { cfg.NumberOfColors = n })
}

func (w *Wheel) SetSpaceBetweenBlocks(gap float64) error {
	return w.update(func(cfg *Config) { cfg.SpaceBetweenBlocks = gap })
}

func (w *Wheel) SetRadii(inner, outer float64) error {
	return w.update(func(cfg *Config) { cfg.InnerRadius, cfg.OuterRadius = inner, outer })
}

func (w *Wheel) SetStrokeColorDifference(d int) {
	w.update(func(cfg *Config) { cfg.StrokeColorDifference = d })
}

func (w *Wheel) SetBlockStrokeColor(c Color) {
	w.update(func(cfg *Config) { cfg.BlockStrokeColor = c })
}

func (w *Wheel) SetStrokeFrontBlockOnly(v bool) {
	w.update(func(cfg *Config) { cfg.StrokeFrontBlockOnly = v })
}

func (w *Wheel) SetOverlayShadowColor(c Color) {
	w.update(func(cfg *Config) { cfg.OverlayShadowColor = c })
}

func (w *Wheel) SetAnimationDuration(d time.Duration) error {
	return w.update(func(cfg *Config) { cfg.AnimationDuration = d })
}

func (w *Wheel) rebuildLayout() error {
	l, err := NewLayout(w.cfg.NumberOfColors, w.cfg.SpaceBetweenBlocks,
		w.cfg.InnerRadius, w.cfg.OuterRadius, w.center, w.halfSize)
	if err != nil {
		return err
	}
	w.layout = l
	if w.state == Idle {
		w.offset = l.StartAngle
	}
	return nil
}

func (w *Wheel) rebuildPalette() {
	w.palette = GeneratePalette(w.cfg.BaseColor, w.cfg.NumberOfColors, w.cfg.StrokeColorDifference)
}

func (w *Wheel) redraw() {
	if w.onRedraw != nil {
		w.onRedraw()
	}
}

// HandlePointer feeds one raw pointer event into the tap detector. A quick
// tap on a block rotates that block to the front.
func (w *Wheel) HandlePointer(ev PointerEvent) {
	switch ev.Type {
	case PointerDown:
		w.gesture.press(ev.At)
	case PointerMove:
		w.gesture.move()
	case PointerUp:
		if !w.gesture.release(ev.At) {
			return
		}
		idx, ok := HitTest(Point{X: ev.X, Y: ev.Y}, w.layout, w.palette.Len())
		if !ok {
			return
		}
		w.Select(idx)
	}
}

// Select rotates the block at palette index idx to the front, exactly as if
// it had been tapped. It reports false when idx is out of range or a
// rotation is already running.
func (w *Wheel) Select(idx int) bool {
	n := w.palette.Len()
	if idx < 0 || idx >= n || w.state == Animating {
		return false
	}
	if idx == 0 {
		w.emit(0)
		return true
	}

	dist := RotateDistance(idx, n)
	if w.cfg.AnimationDuration <= 0 || w.scheduler == nil {
		w.front = idx
		w.finishRotation(dist, idx)
		return true
	}

	w.state = Animating
	w.front = idx
	w.strokesHidden = true
	from := w.offset
	to := from + float64(dist)*w.layout.PackAngle
	w.scheduler.Tween(from, to, w.cfg.AnimationDuration,
		func(v float64) {
			w.offset = v
			w.redraw()
		},
		func() {
			w.strokesHidden = false
			w.finishRotation(dist, idx)
		})
	return true
}

// RotateDistance returns how many packs, and in which direction, the ring
// turns to bring block idx of n to the front along the shorter way. Negative
// values turn counter-clockwise.
func RotateDistance(idx, n int) int {
	if idx <= 0 || n <= 0 {
		return 0
	}
	if idx <= (n-1)/2 {
		return -idx
	}
	return n - idx
}

func (w *Wheel) finishRotation(dist, idx int) {
	w.front = 0
	w.offset = w.layout.StartAngle
	w.state = Idle
	w.palette.Rotate(dist)
	w.redraw()
	w.emit(idx)
	if w.pending != nil && w.state == Idle {
		cfg, regen := *w.pending, w.pendingRegen
		w.pending, w.pendingRegen = nil, false
		// already validated when it was queued
		_ = w.apply(cfg, regen)
	}
}

func (w *Wheel) emit(idx int) {
	if w.onSelected != nil {
		w.onSelected(idx)
	}
}

// Draw renders every block but the front one, then the overlay shadow, then
// the front block on top of it.
func (w *Wheel) Draw(r Renderer) {
	n := w.palette.Len()
	if n == 0 {
		return
	}
	shape := w.layout.BlockShape()
	front := w.front
	if front >= n {
		front = 0
	}
	for i := 0; i < n; i++ {
		if i == front {
			continue
		}
		r.DrawBlock(shape, w.layout.Placement(i, w.offset), w.palette.Fills[i], w.strokeFor(i))
	}
	if w.cfg.OverlayShadowColor.A > 0 {
		r.DrawOverlay(w.layout.OverlayShape(), w.cfg.OverlayShadowColor)
	}
	r.DrawBlock(shape, w.layout.Placement(front, w.offset), w.palette.Fills[front], w.strokeFor(front))
}

func (w *Wheel) strokeFor(i int) *Color {
	if w.strokesHidden || (w.cfg.StrokeFrontBlockOnly && i != 0) {
		return nil
	}
	var c Color
	switch {
	case w.cfg.StrokeColorDifference != 0:
		c = w.palette.Strokes[i]
	case w.cfg.BlockStrokeColor.A > 0:
		c = w.cfg.BlockStrokeColor
	default:
		return nil
	}
	return &c
}
