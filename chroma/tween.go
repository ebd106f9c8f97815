package chroma

import (
	"math"
	"time"
)

// Scheduler interpolates a scalar from one value to another over d. Progress
// callbacks always precede the single completion callback.
type Scheduler interface {
	Tween(from, to float64, d time.Duration, onProgress func(float64), onComplete func())
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

// Linear easing.
func Linear(t float64) float64 { return t }

// AccelerateDecelerate starts and ends slowly, faster through the middle.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

type tween struct {
	from, to   float64
	start      time.Time
	duration   time.Duration
	onProgress func(float64)
	onComplete func()
}

// TickScheduler runs tweens from a frame loop. Call Advance once per tick
// from the same goroutine that owns the wheel.
type TickScheduler struct {
	clock  Clock
	ease   EaseFunc
	tweens []*tween
}

// NewTickScheduler returns a scheduler reading time from clock. A nil clock
// uses the system clock, a nil ease is linear.
func NewTickScheduler(clock Clock, ease EaseFunc) *TickScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if ease == nil {
		ease = Linear
	}
	return &TickScheduler{clock: clock, ease: ease}
}

func (s *TickScheduler) Tween(from, to float64, d time.Duration, onProgress func(float64), onComplete func()) {
	s.tweens = append(s.tweens, &tween{
		from:       from,
		to:         to,
		start:      s.clock.Now(),
		duration:   d,
		onProgress: onProgress,
		onComplete: onComplete,
	})
}

// Active reports whether any tween is still running.
func (s *TickScheduler) Active() bool {
	return len(s.tweens) > 0
}

// Advance delivers progress to every running tween and completes the ones
// whose duration has elapsed. Finished tweens are removed before their
// completion callback runs, so callbacks may start new tweens.
func (s *TickScheduler) Advance() {
	if len(s.tweens) == 0 {
		return
	}
	now := s.clock.Now()
	current := s.tweens
	s.tweens = nil
	var running, done []*tween
	for _, tw := range current {
		t := 1.0
		if tw.duration > 0 {
			t = float64(now.Sub(tw.start)) / float64(tw.duration)
		}
		if t < 0 {
			t = 0
		}
		if t >= 1 {
			t = 1
			done = append(done, tw)
		} else {
			running = append(running, tw)
		}
		if tw.onProgress != nil {
			tw.onProgress(tw.from + (tw.to-tw.from)*s.ease(t))
		}
	}
	s.tweens = append(running, s.tweens...)
	for _, tw := range done {
		if tw.onComplete != nil {
			tw.onComplete()
		}
	}
}
