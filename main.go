package main

import (
	"flag"
	"image"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"chromawheel/chroma"

	"github.com/hajimehoshi/ebiten/v2"
	clipboard "golang.design/x/clipboard"
)

var (
	doDebug        bool
	clipboardReady bool
)

func main() {
	colors := flag.Int("colors", 0, "number of color blocks (overrides settings)")
	duration := flag.Duration("duration", -1, "rotation animation duration, 0 disables it (overrides settings)")
	base := flag.String("base", "", "base color as #rrggbb (overrides settings)")
	notify := flag.Bool("notify", false, "show a desktop notification for each selection")
	flag.StringVar(&settingsPath, "settings", settingsPath, "settings file")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.Parse()

	setupLogging(doDebug)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	} else {
		clipboardReady = true
	}

	loadSettings()
	if err := applyFlags(&gs, *colors, *duration, *base); err != nil {
		logError("%v", err)
		os.Exit(2)
	}
	if *notify {
		gs.Notify = true
	}

	if icon, err := wheelIcon(gs.toConfig(), 64); err == nil {
		ebiten.SetWindowIcon([]image.Image{icon})
	} else {
		log.Printf("window icon: %v", err)
	}

	g, err := newGame(gs, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
	if err != nil {
		logError("start: %v", err)
		os.Exit(1)
	}
	runGame(g)
}

// applyFlags overlays the command-line wheel options on s. Zero values
// (negative for duration) leave the setting alone.
func applyFlags(s *settings, colors int, duration time.Duration, base string) error {
	cfg := s.toConfig()
	if colors != 0 {
		cfg.NumberOfColors = colors
	}
	if duration >= 0 {
		cfg.AnimationDuration = duration
	}
	if base != "" {
		c, err := chroma.ParseHex(base)
		if err != nil {
			return err
		}
		cfg.BaseColor = c
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.fromConfig(cfg)
	return nil
}

// wheelIcon paints a size×size picture of the wheel for cfg by hit testing
// every pixel center.
func wheelIcon(cfg chroma.Config, size int) (*image.NRGBA, error) {
	half := float64(size) / 2
	layout, err := chroma.NewLayout(cfg.NumberOfColors, cfg.SpaceBetweenBlocks, cfg.InnerRadius, cfg.OuterRadius,
		chroma.Point{X: half, Y: half}, half)
	if err != nil {
		return nil, err
	}
	p := chroma.GeneratePalette(cfg.BaseColor, cfg.NumberOfColors, cfg.StrokeColorDifference)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pt := chroma.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if i, ok := chroma.HitTest(pt, layout, p.Len()); ok {
				img.SetNRGBA(x, y, p.Fills[i].ToNRGBA())
			}
		}
	}
	return img, nil
}
