package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"chromawheel/chroma"
	"chromawheel/wheelview"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hako/durafmt"
	dark "github.com/thiagokokada/dark-mode-go"
	clipboard "golang.design/x/clipboard"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/time/rate"
)

const (
	statusFontSize = 14
	statusHeight   = 56
	statusPad      = 10
)

var (
	shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

	// overlayShadow is the shadow the overlay hotkey toggles on.
	overlayShadow = chroma.NewColor(0, 0, 0, 100)

	darkBackground  = color.NRGBA{0x1e, 0x1f, 0x22, 0xff}
	lightBackground = color.NRGBA{0xf4, 0xf4, 0xf2, 0xff}
)

const hotkeyHelp = "R color  N count  D radii  S spacing  O overlay  T speed  F strokes  Left/Right spin  C copy  E export  Esc quit"

// Game hosts one wheel view plus a status line.
type Game struct {
	view *wheelview.View
	rng  *rand.Rand
	face *text.GoTextFace
	bg   color.Color
	fg   color.Color

	width, height int

	// spinLimiter paces held arrow keys.
	spinLimiter *rate.Limiter

	lastPick      string
	exporting     bool
	exported      chan string
	settingsDirty bool
}

func newGame(s settings, rng *rand.Rand) (*Game, error) {
	v, err := wheelview.New(s.toConfig(), nil)
	if err != nil {
		return nil, err
	}
	v.SetStrokeWidth(s.StrokeWidth)

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	g := &Game{
		view:        v,
		rng:         rng,
		face:        &text.GoTextFace{Source: src, Size: statusFontSize},
		spinLimiter: rate.NewLimiter(rate.Every(150*time.Millisecond), 1),
		exported:    make(chan string, 1),
	}
	g.setTheme(s.Theme)
	v.OnColorSelected(g.colorSelected)
	return g, nil
}

func (g *Game) setTheme(theme string) {
	isDark := true
	switch theme {
	case "dark":
	case "light":
		isDark = false
	default:
		if d, err := dark.IsDarkMode(); err == nil {
			isDark = d
		} else {
			logDebug("dark mode: %v", err)
		}
	}
	if isDark {
		g.bg, g.fg = darkBackground, color.White
	} else {
		g.bg, g.fg = lightBackground, color.Black
	}
}

func (g *Game) colorSelected(index int, c chroma.Color) {
	hex := c.Hex()
	g.lastPick = fmt.Sprintf("%s, %s", hex, blockLabel(index))
	logDebug("selected block %d: %s", index, hex)
	if gs.CopyToClipboard && clipboardReady {
		clipboard.Write(clipboard.FmtText, []byte(hex))
	}
	notifyDesktop("Color selected", hex)
}

// blockLabel names a palette index relative to the front block.
func blockLabel(index int) string {
	if index == 0 {
		return "the front block"
	}
	return fmt.Sprintf("the %s block clockwise", humanize.Ordinal(index))
}

// apply edits the wheel configuration and mirrors accepted changes into the
// settings.
func (g *Game) apply(edit func(cfg *chroma.Config)) {
	cfg := g.view.Wheel.Config()
	edit(&cfg)
	if err := g.view.Wheel.Apply(cfg); err != nil {
		logWarn("apply: %v", err)
		return
	}
	gs.fromConfig(cfg)
	g.settingsDirty = true
}

func randomBase(rng *rand.Rand) chroma.Color {
	return chroma.NewColor(uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 0xff)
}

// randomCount picks a block count in [3,10].
func randomCount(rng *rand.Rand) int {
	return 3 + rng.IntN(8)
}

// randomRadii picks an outer radius in [0.5,1] and an inner one in [0.1,0.4].
func randomRadii(rng *rand.Rand) (inner, outer float64) {
	outer = 0.5 + 0.5*rng.Float64()
	inner = 0.1 + 0.3*rng.Float64()
	return inner, outer
}

// randomDuration picks a spin duration in [100ms,2000ms].
func randomDuration(rng *rand.Rand) time.Duration {
	return time.Duration(100+rng.IntN(1901)) * time.Millisecond
}

func toggleOverlay(c chroma.Color) chroma.Color {
	if c.A == 0 {
		return overlayShadow
	}
	return chroma.Transparent
}

func (g *Game) handleHotkeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		base := randomBase(g.rng)
		g.apply(func(cfg *chroma.Config) { cfg.BaseColor = base })
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		n := randomCount(g.rng)
		g.apply(func(cfg *chroma.Config) { cfg.NumberOfColors = n })
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		inner, outer := randomRadii(g.rng)
		g.apply(func(cfg *chroma.Config) { cfg.InnerRadius, cfg.OuterRadius = inner, outer })
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		gap := g.rng.Float64()
		g.apply(func(cfg *chroma.Config) { cfg.SpaceBetweenBlocks = gap })
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.apply(func(cfg *chroma.Config) { cfg.OverlayShadowColor = toggleOverlay(cfg.OverlayShadowColor) })
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		d := randomDuration(g.rng)
		g.apply(func(cfg *chroma.Config) { cfg.AnimationDuration = d })
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.apply(func(cfg *chroma.Config) { cfg.StrokeFrontBlockOnly = !cfg.StrokeFrontBlockOnly })
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.apply(func(cfg *chroma.Config) { *cfg = chroma.DefaultConfig() })
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if clipboardReady {
			clipboard.Write(clipboard.FmtText, []byte(g.view.Wheel.SelectedColor().Hex()))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.startExport()
	}

	n := g.view.Wheel.Config().NumberOfColors
	if ebiten.IsKeyPressed(ebiten.KeyRight) && g.spinLimiter.Allow() {
		g.view.Wheel.Select(1 % n)
	} else if ebiten.IsKeyPressed(ebiten.KeyLeft) && g.spinLimiter.Allow() {
		g.view.Wheel.Select(n - 1)
	}
	return nil
}

func (g *Game) startExport() {
	if g.exporting {
		return
	}
	g.exporting = true
	p := g.view.Wheel.Palette()
	startDir := gs.ExportDir
	go func() {
		g.exported <- exportWithDialog(p, startDir)
	}()
}

func (g *Game) Update() error {
	select {
	case dir := <-g.exported:
		g.exporting = false
		if dir != "" && dir != gs.ExportDir {
			gs.ExportDir = dir
			g.settingsDirty = true
		}
	default:
	}

	if err := g.view.SetBounds(image.Rect(0, 0, g.width, max(g.height-statusHeight, 0))); err != nil {
		logError("layout: %v", err)
	}
	if err := g.handleHotkeys(); err != nil {
		return err
	}
	g.view.Update()

	if g.settingsDirty && !g.view.Wheel.Animating() {
		saveSettings()
		g.settingsDirty = false
	}
	return nil
}

func (g *Game) status() string {
	w := g.view.Wheel
	cfg := w.Config()
	line := fmt.Sprintf("%s  %d colors  %s spin",
		w.SelectedColor().Hex(), cfg.NumberOfColors,
		durafmt.Parse(cfg.AnimationDuration).LimitFirstN(2).Format(shortUnits))
	if cfg.AnimationDuration == 0 {
		line = fmt.Sprintf("%s  %d colors  no spin", w.SelectedColor().Hex(), cfg.NumberOfColors)
	}
	if g.lastPick != "" {
		line += "  picked " + g.lastPick
	}
	return line
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	g.view.Draw(screen)

	op := &text.DrawOptions{}
	op.GeoM.Translate(statusPad, float64(g.height-statusHeight+statusPad/2))
	op.ColorScale.ScaleWithColor(g.fg)
	op.LineSpacing = statusFontSize * 1.4
	text.Draw(screen, g.status()+"\n"+hotkeyHelp, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if outsideWidth >= 200 && outsideHeight >= 200 {
		if gs.WindowWidth != outsideWidth || gs.WindowHeight != outsideHeight {
			gs.WindowWidth = outsideWidth
			gs.WindowHeight = outsideHeight
			g.settingsDirty = true
		}
	}
	return outsideWidth, outsideHeight
}

func runGame(g *Game) {
	ebiten.SetWindowTitle("Chroma Wheel")
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	op := &ebiten.RunGameOptions{ScreenTransparent: false}
	if err := ebiten.RunGameWithOptions(g, op); err != nil {
		log.Printf("ebiten: %v", err)
	}
	saveSettings()
}
