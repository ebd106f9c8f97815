package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chromawheel/chroma"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const gplExt = ".gpl"

// paletteName turns an export file name like "forest_greens.gpl" into the
// palette title "Forest Greens".
func paletteName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Chroma Wheel"
	}
	return cases.Title(language.English).String(base)
}

// writeGPL writes the palette fills in GIMP palette format, front color
// first.
func writeGPL(w io.Writer, name string, p chroma.Palette) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "GIMP Palette\nName: %s\nColumns: %d\n#\n", name, p.Len())
	for i, c := range p.Fills {
		fmt.Fprintf(bw, "%3d %3d %3d\t%s", c.R, c.G, c.B, c.Hex())
		if i == 0 {
			bw.WriteString(" front")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// exportPalette writes p to path and returns the file size.
func exportPalette(path string, p chroma.Palette) (int64, error) {
	if p.Len() == 0 {
		return 0, fmt.Errorf("export %s: empty palette", path)
	}
	if filepath.Ext(path) == "" {
		path += gplExt
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := writeGPL(f, paletteName(path), p); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
