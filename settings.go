package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chromawheel/chroma"
)

const SETTINGS_VERSION = 1

const (
	initialWindowW = 640
	initialWindowH = 720
)

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

// settingsPath is where settings are read from and saved to; -settings
// overrides it.
var settingsPath = "chromawheel.json"

var errSettingsVersion = errors.New("settings version mismatch")

var gsdef = func() settings {
	cfg := chroma.DefaultConfig()
	return settings{
		Version: SETTINGS_VERSION,

		WindowWidth:  initialWindowW,
		WindowHeight: initialWindowH,

		BaseColor:             cfg.BaseColor,
		NumberOfColors:        cfg.NumberOfColors,
		SpaceBetweenBlocks:    cfg.SpaceBetweenBlocks,
		InnerRadius:           cfg.InnerRadius,
		OuterRadius:           cfg.OuterRadius,
		StrokeColorDifference: cfg.StrokeColorDifference,
		BlockStrokeColor:      cfg.BlockStrokeColor,
		StrokeFrontBlockOnly:  cfg.StrokeFrontBlockOnly,
		OverlayShadowColor:    cfg.OverlayShadowColor,
		AnimationMillis:       int(cfg.AnimationDuration / time.Millisecond),
		StrokeWidth:           10,

		CopyToClipboard: true,
	}
}()

type settings struct {
	Version int

	WindowWidth  int
	WindowHeight int
	// Theme is "dark", "light" or empty to follow the desktop.
	Theme string

	BaseColor             chroma.Color
	NumberOfColors        int
	SpaceBetweenBlocks    float64
	InnerRadius           float64
	OuterRadius           float64
	StrokeColorDifference int
	BlockStrokeColor      chroma.Color
	StrokeFrontBlockOnly  bool
	OverlayShadowColor    chroma.Color
	AnimationMillis       int
	StrokeWidth           float32

	Notify          bool
	CopyToClipboard bool
	ExportDir       string
}

// toConfig converts the persisted settings to a wheel configuration.
func (s settings) toConfig() chroma.Config {
	return chroma.Config{
		BaseColor:             s.BaseColor,
		NumberOfColors:        s.NumberOfColors,
		SpaceBetweenBlocks:    s.SpaceBetweenBlocks,
		InnerRadius:           s.InnerRadius,
		OuterRadius:           s.OuterRadius,
		StrokeColorDifference: s.StrokeColorDifference,
		BlockStrokeColor:      s.BlockStrokeColor,
		StrokeFrontBlockOnly:  s.StrokeFrontBlockOnly,
		OverlayShadowColor:    s.OverlayShadowColor,
		AnimationDuration:     time.Duration(s.AnimationMillis) * time.Millisecond,
	}
}

// fromConfig stores cfg back into the settings.
func (s *settings) fromConfig(cfg chroma.Config) {
	s.BaseColor = cfg.BaseColor
	s.NumberOfColors = cfg.NumberOfColors
	s.SpaceBetweenBlocks = cfg.SpaceBetweenBlocks
	s.InnerRadius = cfg.InnerRadius
	s.OuterRadius = cfg.OuterRadius
	s.StrokeColorDifference = cfg.StrokeColorDifference
	s.BlockStrokeColor = cfg.BlockStrokeColor
	s.StrokeFrontBlockOnly = cfg.StrokeFrontBlockOnly
	s.OverlayShadowColor = cfg.OverlayShadowColor
	s.AnimationMillis = int(cfg.AnimationDuration / time.Millisecond)
}

// readSettings parses a settings file. Fields missing from the file keep
// their defaults; wheel options that would not validate are reset to the
// defaults as a group.
func readSettings(path string) (settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gsdef, err
	}
	s := gsdef
	if err := json.Unmarshal(data, &s); err != nil {
		return gsdef, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Version != SETTINGS_VERSION {
		return gsdef, fmt.Errorf("%w: %s has %d, want %d", errSettingsVersion, path, s.Version, SETTINGS_VERSION)
	}
	if err := s.toConfig().Validate(); err != nil {
		logWarn("settings: %v; using default wheel options", err)
		s.fromConfig(gsdef.toConfig())
	}
	if s.StrokeWidth <= 0 || s.StrokeWidth > 50 {
		s.StrokeWidth = gsdef.StrokeWidth
	}
	if s.WindowWidth < 200 {
		s.WindowWidth = initialWindowW
	}
	if s.WindowHeight < 200 {
		s.WindowHeight = initialWindowH
	}
	return s, nil
}

// writeSettings saves s as indented JSON, writing a temp file first.
func writeSettings(path string, s settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		return err
	}
	return os.Rename(path+".tmp", path)
}

func loadSettings() bool {
	s, err := readSettings(settingsPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logWarn("load settings: %v", err)
		}
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = s
	settingsLoaded = true
	return true
}

func saveSettings() {
	if err := writeSettings(settingsPath, gs); err != nil {
		logError("save settings: %v", err)
	}
}
