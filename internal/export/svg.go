package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CabinetCut/internal/render"
)

// ExportSVG writes one "<panel id>.svg" per panel into dir and returns the
// paths written, in job order. Panel IDs are reduced with FileStem; a name
// already used in this export gets a numeric suffix.
func ExportSVG(dir string, sheets []render.CabinetSheet) ([]string, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no cabinets to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	used := make(map[string]int)
	for _, sheet := range sheets {
		for _, d := range sheet.Drawings {
			stem := FileStem(d.PanelID, "panel")
			used[stem]++
			if n := used[stem]; n > 1 {
				stem = fmt.Sprintf("%s-%d", stem, n)
			}
			path := filepath.Join(dir, stem+".svg")
			if err := writeSVGFile(path, d); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeSVGFile(path string, d render.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.WriteSVG(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
