package chroma

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidColorCount = errors.New("number of colors must be at least 1")
	ErrInvalidSpacing    = errors.New("space between blocks must not be negative")
	ErrInvalidRadius     = errors.New("radii must be in (0,1] with outer >= inner")
	ErrInvalidDuration   = errors.New("animation duration must not be negative")
)

// TapTimeout is how long a pointer may stay down and still count as a tap.
const TapTimeout = 500 * time.Millisecond

// Config is the recognized configuration surface of a wheel.
type Config struct {
	BaseColor      Color
	NumberOfColors int
	// SpaceBetweenBlocks is the gap as a fraction of the block angle.
	SpaceBetweenBlocks float64
	// InnerRadius and OuterRadius are fractions of half the smaller view side.
	InnerRadius float64
	OuterRadius float64

	// StrokeColorDifference shifts each stroke's lightness from its fill.
	// Zero disables chroma strokes and falls back to BlockStrokeColor.
	StrokeColorDifference int
	BlockStrokeColor      Color
	StrokeFrontBlockOnly  bool
	OverlayShadowColor    Color

	AnimationDuration time.Duration
}

// DefaultConfig matches the stock wheel: nine blocks of a dark green.
func DefaultConfig() Config {
	return Config{
		BaseColor:             NewColor(0x34, 0x57, 0x3d, 0xff),
		NumberOfColors:        9,
		SpaceBetweenBlocks:    0.09,
		InnerRadius:           0.5,
		OuterRadius:           1,
		StrokeColorDifference: -30,
		BlockStrokeColor:      Transparent,
		StrokeFrontBlockOnly:  true,
		OverlayShadowColor:    NewColor(0, 0, 0, 0x80),
		AnimationDuration:     time.Second,
	}
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	if err := validateGeometry(c.NumberOfColors, c.SpaceBetweenBlocks, c.InnerRadius, c.OuterRadius); err != nil {
		return err
	}
	if c.AnimationDuration < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, c.AnimationDuration)
	}
	return nil
}

func validateGeometry(n int, gap, inner, outer float64) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidColorCount, n)
	}
	if gap < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpacing, gap)
	}
	if inner <= 0 || inner > 1 || outer <= 0 || outer > 1 || outer < inner {
		return fmt.Errorf("%w: inner=%v outer=%v", ErrInvalidRadius, inner, outer)
	}
	return nil
}
