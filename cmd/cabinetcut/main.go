// CabinetCut - cabinet panel cut lists
//
// Derives the panels of carcass cabinets from their outer dimensions and
// renders the cut list as tables, SVG diagrams, PDF, labels, Excel or DXF.
//
// Build:
//   go build -o cabinetcut ./cmd/cabinetcut
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o cabinetcut.exe ./cmd/cabinetcut
//   GOOS=darwin  GOARCH=arm64 go build -o cabinetcut-darwin ./cmd/cabinetcut

package main

import (
	"os"

	"github.com/piwi3910/CabinetCut/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
