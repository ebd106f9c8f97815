package main

import (
	"errors"
	"path/filepath"

	"chromawheel/chroma"

	"github.com/dustin/go-humanize"
	"github.com/skratchdot/open-golang/open"
	"github.com/sqweek/dialog"
)

var errExportDialogCancelled = errors.New("export dialog cancelled")

func pickExportFile(startDir string) (string, error) {
	b := dialog.File().Title("Export palette").Filter("GIMP palette", "gpl")
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	filename, err := b.Save()
	if err != nil {
		if err == dialog.Cancelled {
			return "", errExportDialogCancelled
		}
		return "", err
	}
	return filename, nil
}

// exportWithDialog asks for a destination, writes the palette there and
// opens the containing folder. It returns the folder used, or "" when
// nothing was written. It blocks on the native dialog, so callers run it off
// the game loop.
func exportWithDialog(p chroma.Palette, startDir string) string {
	path, err := pickExportFile(startDir)
	if err != nil {
		if !errors.Is(err, errExportDialogCancelled) {
			logError("export dialog: %v", err)
		}
		return ""
	}
	if filepath.Ext(path) == "" {
		path += gplExt
	}
	size, err := exportPalette(path, p)
	if err != nil {
		logError("export palette: %v", err)
		return ""
	}
	logDebug("exported %d colors to %s (%s)", p.Len(), path, humanize.Bytes(uint64(size)))
	dir := filepath.Dir(path)
	notifyDesktop("Palette exported", filepath.Base(path))
	if err := open.Run(dir); err != nil {
		logWarn("open %s: %v", dir, err)
	}
	return dir
}
