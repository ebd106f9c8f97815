package chroma

import (
	"errors"
	"testing"
	"time"
)

type tweenCall struct {
	from, to   float64
	d          time.Duration
	onProgress func(float64)
	onComplete func()
}

type fakeScheduler struct {
	calls []tweenCall
}

func (s *fakeScheduler) Tween(from, to float64, d time.Duration, onProgress func(float64), onComplete func()) {
	s.calls = append(s.calls, tweenCall{from, to, d, onProgress, onComplete})
}

type drawCall struct {
	overlay  bool
	rotation float64
	fill     Color
	stroke   *Color
}

type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawBlock(shape BlockShape, rotation float64, fill Color, stroke *Color) {
	r.calls = append(r.calls, drawCall{rotation: rotation, fill: fill, stroke: stroke})
}

func (r *recordingRenderer) DrawOverlay(shape AnnulusShape, fill Color) {
	r.calls = append(r.calls, drawCall{overlay: true, fill: fill})
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestWheel(t *testing.T, n int, d time.Duration) (*Wheel, *fakeScheduler, *[]int) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.NumberOfColors = n
	cfg.AnimationDuration = d
	s := &fakeScheduler{}
	w, err := NewWheel(cfg, s)
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}
	if err := w.Resize(400, 400); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	var selected []int
	w.OnColorSelected(func(i int) { selected = append(selected, i) })
	return w, s, &selected
}

func tap(w *Wheel, p Point, hold time.Duration) {
	w.HandlePointer(PointerEvent{Type: PointerDown, X: p.X, Y: p.Y, At: t0})
	w.HandlePointer(PointerEvent{Type: PointerUp, X: p.X, Y: p.Y, At: t0.Add(hold)})
}

func TestWheelRotatesStruckBlockToFront(t *testing.T) {
	tests := []struct {
		n, k, dist int
	}{
		{9, 2, -2},
		{9, 4, -4},
		{9, 5, 4},
		{9, 7, 2},
		{2, 1, 1},
		{10, 5, 5},
	}
	for _, tt := range tests {
		w, s, selected := newTestWheel(t, tt.n, time.Second)
		before := w.Palette()
		l := w.Layout()

		tap(w, blockCenter(l, tt.k), 100*time.Millisecond)

		if len(s.calls) != 1 {
			t.Fatalf("n=%d k=%d: %d tweens requested", tt.n, tt.k, len(s.calls))
		}
		call := s.calls[0]
		if call.from != l.StartAngle || !near(call.to, l.StartAngle+float64(tt.dist)*l.PackAngle, 1e-9) {
			t.Fatalf("n=%d k=%d: tween %v -> %v", tt.n, tt.k, call.from, call.to)
		}
		if call.d != time.Second {
			t.Fatalf("tween duration %v", call.d)
		}
		if !w.Animating() || w.FrontIndex() != tt.k {
			t.Fatalf("n=%d k=%d: state %v front %d", tt.n, tt.k, w.State(), w.FrontIndex())
		}
		if len(*selected) != 0 {
			t.Fatalf("selection emitted before the animation finished")
		}

		call.onProgress((call.from + call.to) / 2)
		if !near(w.Offset(), (call.from+call.to)/2, 1e-9) {
			t.Fatalf("offset %v after progress", w.Offset())
		}
		call.onComplete()

		if w.Animating() || w.FrontIndex() != 0 || w.Offset() != l.StartAngle {
			t.Fatalf("n=%d k=%d: after completion state %v front %d offset %v", tt.n, tt.k, w.State(), w.FrontIndex(), w.Offset())
		}
		after := w.Palette()
		if after.Fills[0] != before.Fills[tt.k] || after.Strokes[0] != before.Strokes[tt.k] {
			t.Fatalf("n=%d k=%d: front is %v, want %v", tt.n, tt.k, after.Fills[0], before.Fills[tt.k])
		}
		if w.SelectedColor() != before.Fills[tt.k] {
			t.Fatalf("selected color %v", w.SelectedColor())
		}
		if len(*selected) != 1 || (*selected)[0] != tt.k {
			t.Fatalf("n=%d k=%d: selections %v", tt.n, tt.k, *selected)
		}
	}
}

func TestWheelFrontTapIsIdempotent(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	before := w.Palette()
	for i := 0; i < 3; i++ {
		tap(w, blockCenter(w.Layout(), 0), 50*time.Millisecond)
	}
	if len(s.calls) != 0 || w.Animating() {
		t.Fatalf("front tap started an animation")
	}
	after := w.Palette()
	for i := range before.Fills {
		if before.Fills[i] != after.Fills[i] {
			t.Fatalf("palette changed at %d", i)
		}
	}
	if len(*selected) != 3 || (*selected)[0] != 0 {
		t.Fatalf("selections %v", *selected)
	}
}

func TestWheelDiscardsLongPress(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	tap(w, blockCenter(w.Layout(), 3), 600*time.Millisecond)
	if len(s.calls) != 0 || len(*selected) != 0 {
		t.Fatalf("600ms hold was accepted")
	}
	tap(w, blockCenter(w.Layout(), 3), TapTimeout)
	if len(s.calls) != 0 || len(*selected) != 0 {
		t.Fatalf("hold of exactly the timeout was accepted")
	}
}

func TestWheelDiscardsDrag(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	p := blockCenter(w.Layout(), 3)
	w.HandlePointer(PointerEvent{Type: PointerDown, X: p.X, Y: p.Y, At: t0})
	w.HandlePointer(PointerEvent{Type: PointerMove, X: p.X + 5, Y: p.Y, At: t0.Add(10 * time.Millisecond)})
	w.HandlePointer(PointerEvent{Type: PointerUp, X: p.X, Y: p.Y, At: t0.Add(50 * time.Millisecond)})
	if len(s.calls) != 0 || len(*selected) != 0 {
		t.Fatalf("drag was accepted as a tap")
	}

	// the moved flag does not leak into the next gesture
	tap(w, p, 50*time.Millisecond)
	if len(s.calls) != 1 {
		t.Fatalf("tap after drag ignored")
	}
}

func TestWheelUpWithoutDown(t *testing.T) {
	w, s, _ := newTestWheel(t, 9, time.Second)
	p := blockCenter(w.Layout(), 3)
	w.HandlePointer(PointerEvent{Type: PointerUp, X: p.X, Y: p.Y, At: t0})
	if len(s.calls) != 0 {
		t.Fatalf("release without press was accepted")
	}
}

func TestWheelMissesAreIgnored(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	l := w.Layout()
	tap(w, l.Center, 50*time.Millisecond)
	tap(w, Point{X: 0, Y: 0}, 50*time.Millisecond)
	gapMid := l.Placement(1, l.StartAngle) + l.BlockAngle + l.GapAngle/2
	tap(w, PolarPoint(l.Center, 150, gapMid), 50*time.Millisecond)
	if len(s.calls) != 0 || len(*selected) != 0 {
		t.Fatalf("miss produced a selection")
	}
}

func TestWheelIgnoresTapWhileAnimating(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	l := w.Layout()
	tap(w, blockCenter(l, 2), 50*time.Millisecond)
	tap(w, blockCenter(l, 6), 50*time.Millisecond)
	if w.Select(3) {
		t.Fatalf("Select accepted during animation")
	}
	if len(s.calls) != 1 {
		t.Fatalf("%d tweens requested", len(s.calls))
	}
	s.calls[0].onComplete()
	if len(*selected) != 1 || (*selected)[0] != 2 {
		t.Fatalf("selections %v", *selected)
	}
}

func TestWheelSynchronousRotation(t *testing.T) {
	w, s, selected := newTestWheel(t, 5, 0)
	before := w.Palette()
	tap(w, blockCenter(w.Layout(), 2), 50*time.Millisecond)
	if len(s.calls) != 0 {
		t.Fatalf("zero duration requested a tween")
	}
	if w.Animating() || w.FrontIndex() != 0 {
		t.Fatalf("state %v front %d", w.State(), w.FrontIndex())
	}
	if got := w.Palette().Fills[0]; got != before.Fills[2] {
		t.Fatalf("front %v, want %v", got, before.Fills[2])
	}
	if len(*selected) != 1 || (*selected)[0] != 2 {
		t.Fatalf("selections %v", *selected)
	}
}

func TestWheelWithoutSchedulerNeedsZeroDuration(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewWheel(cfg, nil); err == nil {
		t.Fatalf("expected error for animated wheel without scheduler")
	}
	cfg.AnimationDuration = 0
	w, err := NewWheel(cfg, nil)
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}
	if err := w.SetAnimationDuration(time.Second); err == nil {
		t.Fatalf("expected error enabling animation without scheduler")
	}
	if !w.Select(4) || w.FrontIndex() != 0 {
		t.Fatalf("synchronous select failed")
	}
}

func TestWheelSelectBounds(t *testing.T) {
	w, _, _ := newTestWheel(t, 4, 0)
	if w.Select(-1) || w.Select(4) {
		t.Fatalf("out of range index accepted")
	}
}

func TestRotateDistance(t *testing.T) {
	tests := []struct{ idx, n, want int }{
		{0, 9, 0},
		{1, 9, -1},
		{4, 9, -4},
		{5, 9, 4},
		{8, 9, 1},
		{1, 2, 1},
		{2, 4, 2},
		{1, 3, -1},
		{2, 3, 1},
	}
	for _, tt := range tests {
		if got := RotateDistance(tt.idx, tt.n); got != tt.want {
			t.Errorf("RotateDistance(%d, %d) = %d, want %d", tt.idx, tt.n, got, tt.want)
		}
	}
}

func TestWheelDrawOrder(t *testing.T) {
	w, s, _ := newTestWheel(t, 5, time.Second)
	r := &recordingRenderer{}
	w.Draw(r)
	if len(r.calls) != 6 {
		t.Fatalf("%d draw calls", len(r.calls))
	}
	if !r.calls[4].overlay {
		t.Fatalf("overlay not drawn before the front block")
	}
	last := r.calls[5]
	l := w.Layout()
	if last.overlay || last.fill != w.Palette().Fills[0] || last.rotation != l.StartAngle {
		t.Fatalf("front block not drawn last: %+v", last)
	}
	if last.stroke == nil {
		t.Fatalf("front block lost its stroke")
	}
	for _, c := range r.calls[:4] {
		if c.stroke != nil {
			t.Fatalf("non-front block stroked with front-only strokes")
		}
	}

	// during a rotation the struck block is drawn on top without strokes
	tap(w, blockCenter(l, 3), 50*time.Millisecond)
	r = &recordingRenderer{}
	w.Draw(r)
	last = r.calls[len(r.calls)-1]
	if last.fill != w.Palette().Fills[3] || !near(last.rotation, l.Placement(3, l.StartAngle), 1e-9) {
		t.Fatalf("struck block not on top: %+v", last)
	}
	for _, c := range r.calls {
		if c.stroke != nil {
			t.Fatalf("stroke drawn while spinning")
		}
	}
	s.calls[0].onComplete()
	r = &recordingRenderer{}
	w.Draw(r)
	if r.calls[len(r.calls)-1].stroke == nil {
		t.Fatalf("stroke not restored after the rotation")
	}
}

func TestWheelDrawStrokeFallbacks(t *testing.T) {
	w, _, _ := newTestWheel(t, 3, 0)
	w.SetStrokeFrontBlockOnly(false)
	w.SetOverlayShadowColor(Transparent)

	r := &recordingRenderer{}
	w.Draw(r)
	if len(r.calls) != 3 {
		t.Fatalf("transparent overlay was drawn")
	}
	for _, c := range r.calls {
		if c.stroke == nil {
			t.Fatalf("missing chroma stroke")
		}
	}

	w.SetStrokeColorDifference(0)
	r = &recordingRenderer{}
	w.Draw(r)
	for _, c := range r.calls {
		if c.stroke != nil {
			t.Fatalf("stroke drawn with no difference and no block stroke")
		}
	}

	red := NewColor(0xff, 0, 0, 0xff)
	w.SetBlockStrokeColor(red)
	r = &recordingRenderer{}
	w.Draw(r)
	for _, c := range r.calls {
		if c.stroke == nil || *c.stroke != red {
			t.Fatalf("block stroke not used: %+v", c.stroke)
		}
	}
}

func TestWheelRejectsInvalidConfig(t *testing.T) {
	w, _, _ := newTestWheel(t, 9, time.Second)
	before := w.Config()
	if err := w.SetNumberOfColors(0); !errors.Is(err, ErrInvalidColorCount) {
		t.Fatalf("got %v", err)
	}
	if err := w.SetSpaceBetweenBlocks(-1); !errors.Is(err, ErrInvalidSpacing) {
		t.Fatalf("got %v", err)
	}
	if err := w.SetRadii(0.9, 0.1); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("got %v", err)
	}
	if err := w.SetAnimationDuration(-time.Second); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("got %v", err)
	}
	if w.Config() != before || w.Palette().Len() != 9 {
		t.Fatalf("invalid config changed the wheel")
	}
}

func TestWheelConfigChangesRebuild(t *testing.T) {
	w, _, _ := newTestWheel(t, 9, time.Second)
	redraws := 0
	w.OnRedraw(func() { redraws++ })

	if err := w.SetNumberOfColors(4); err != nil {
		t.Fatalf("SetNumberOfColors: %v", err)
	}
	if w.Palette().Len() != 4 || w.Layout().PackAngle != 90 || w.Offset() != w.Layout().StartAngle {
		t.Fatalf("layout not rebuilt: %+v", w.Layout())
	}
	if err := w.SetRadii(0.25, 0.75); err != nil {
		t.Fatalf("SetRadii: %v", err)
	}
	if w.Layout().InnerRadius != 50 || w.Layout().OuterRadius != 150 {
		t.Fatalf("radii %v %v", w.Layout().InnerRadius, w.Layout().OuterRadius)
	}
	w.SetBaseColor(testGreen)
	if w.SelectedColor() != testGreen {
		t.Fatalf("base color not applied")
	}
	if redraws != 3 {
		t.Fatalf("%d redraws", redraws)
	}
}

func TestWheelCountChangeDuringSpinWaitsForCompletion(t *testing.T) {
	w, s, _ := newTestWheel(t, 9, time.Second)
	before := w.Palette()
	type selection struct {
		index int
		front Color
		size  int
	}
	var got []selection
	w.OnColorSelected(func(i int) {
		got = append(got, selection{i, w.SelectedColor(), w.Palette().Len()})
	})

	tap(w, blockCenter(w.Layout(), 7), 100*time.Millisecond)
	if err := w.SetNumberOfColors(3); err != nil {
		t.Fatalf("SetNumberOfColors: %v", err)
	}
	if w.Palette().Len() != 9 || w.Layout().PackAngle != 40 {
		t.Fatalf("palette or layout swapped mid-spin: len %d pack %v", w.Palette().Len(), w.Layout().PackAngle)
	}
	if w.Config().NumberOfColors != 3 {
		t.Fatalf("queued config not reported by Config")
	}

	s.calls[0].onComplete()

	if len(got) != 1 || got[0].index != 7 || got[0].front != before.Fills[7] || got[0].size != 9 {
		t.Fatalf("selections %+v, want index 7 with front %v of 9", got, before.Fills[7])
	}
	l := w.Layout()
	if w.Palette().Len() != 3 || l.PackAngle != 120 || w.Offset() != l.StartAngle {
		t.Fatalf("queued count not applied: len %d pack %v offset %v", w.Palette().Len(), l.PackAngle, w.Offset())
	}
	if w.SelectedColor() != DefaultConfig().BaseColor {
		t.Fatalf("front %v after regeneration", w.SelectedColor())
	}
}

func TestWheelBaseChangeDuringSpinWaitsForCompletion(t *testing.T) {
	w, s, selected := newTestWheel(t, 9, time.Second)
	before := w.Palette()
	var frontAtEmit Color
	w.OnColorSelected(func(i int) {
		*selected = append(*selected, i)
		frontAtEmit = w.SelectedColor()
	})

	tap(w, blockCenter(w.Layout(), 2), 100*time.Millisecond)
	w.SetBaseColor(testGreen)
	if w.Palette().Fills[2] != before.Fills[2] {
		t.Fatalf("palette regenerated mid-spin")
	}
	s.calls[0].onComplete()

	if len(*selected) != 1 || (*selected)[0] != 2 || frontAtEmit != before.Fills[2] {
		t.Fatalf("selections %v front %v, want [2] %v", *selected, frontAtEmit, before.Fills[2])
	}
	if w.SelectedColor() != testGreen || w.Config().BaseColor != testGreen {
		t.Fatalf("new base not applied: front %v", w.SelectedColor())
	}
}

func TestWheelStyleChangeKeepsRotatedPalette(t *testing.T) {
	w, _, _ := newTestWheel(t, 9, 0)
	before := w.Palette()
	w.Select(4)
	w.SetOverlayShadowColor(Transparent)
	w.SetBlockStrokeColor(NewColor(0xff, 0xff, 0xff, 0xff))
	if w.SelectedColor() != before.Fills[4] {
		t.Fatalf("style edit reset the palette: front %v", w.SelectedColor())
	}
	w.SetBaseColor(w.Config().BaseColor)
	if w.SelectedColor() != before.Fills[0] {
		t.Fatalf("SetBaseColor did not regenerate: front %v", w.SelectedColor())
	}
}

func TestWheelWithTickScheduler(t *testing.T) {
	clock := &manualClock{now: t0}
	cfg := DefaultConfig()
	cfg.AnimationDuration = 300 * time.Millisecond
	s := NewTickScheduler(clock, AccelerateDecelerate)
	w, err := NewWheel(cfg, s)
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}
	w.Resize(300, 500)
	before := w.Palette()
	var got []int
	w.OnColorSelected(func(i int) { got = append(got, i) })

	w.Select(6)
	for i := 0; i < 10 && w.Animating(); i++ {
		clock.now = clock.now.Add(50 * time.Millisecond)
		s.Advance()
	}
	if w.Animating() || s.Active() {
		t.Fatalf("rotation did not finish")
	}
	if w.Palette().Fills[0] != before.Fills[6] || len(got) != 1 || got[0] != 6 {
		t.Fatalf("front %v selections %v", w.Palette().Fills[0], got)
	}
}
