package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/export"
	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// exportFunc writes the rendered job to path.
type exportFunc func(cmd *cobra.Command, a *App, path string, job model.Job, sheets []render.CabinetSheet) error

// newExportCommand builds a command that renders the job and writes a single
// output file.
func newExportCommand(use, short, long, example, ext string, write exportFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Example: example,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			job, sheets, err := renderJob(cmd, a)
			if err != nil {
				return err
			}
			path := outputPath(cmd, a, job, ext)
			if err := ensureParentDir(path); err != nil {
				return err
			}
			if err := write(cmd, a, path, job, sheets); err != nil {
				return err
			}
			a.Log.Info().Str("file", path).Int("cabinets", len(sheets)).Msgf("wrote %s", use)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	addJobFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Output file (default: <output-dir>/<job name>"+ext+")")
	return cmd
}

func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write one SVG diagram per panel",
		Long: `Render every panel as an SVG diagram: the outline, banded edges,
cut-feed direction arrows, dimension labels and kerf guides.

Files are named after the panel reference, e.g. C1-L1.svg.`,
		Example: `  cabinetcut render --width 600 --height 720 --depth 560 --out-dir svg/
  cabinetcut render --import kitchen.csv --scale 0.25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd)
		},
	}
	addJobFlags(cmd)
	cmd.Flags().String("out-dir", "", "Directory for the SVG files (default: <output-dir>)")
	return cmd
}

func runRender(cmd *cobra.Command) error {
	a := GetApp(cmd)
	_, sheets, err := renderJob(cmd, a)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("out-dir")
	if dir == "" {
		dir = a.Config.OutputDir
	}
	paths, err := export.ExportSVG(dir, sheets)
	if err != nil {
		return err
	}

	a.Log.Info().Str("dir", dir).Int("files", len(paths)).Msg("wrote svg diagrams")
	for _, p := range paths {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// NewPDFCommand creates the pdf command.
func NewPDFCommand() *cobra.Command {
	cmd := newExportCommand("pdf",
		"Write a printable PDF cut list",
		`Write a landscape PDF with the panel diagrams and inventory table of every
cabinet, followed by a summary page with edge banding totals.

--estimate adds the purchase estimate to the summary page.`,
		`  cabinetcut pdf --import kitchen.csv --page-size Letter --estimate`,
		".pdf",
		func(cmd *cobra.Command, a *App, path string, job model.Job, sheets []render.CabinetSheet) error {
			opts := export.PDFOptions{
				PageSize:            a.Config.PageSize,
				BandingWastePercent: a.Config.BandingWastePercent,
			}
			if withEstimate, _ := cmd.Flags().GetBool("estimate"); withEstimate {
				est := purchaseEstimate(a, job)
				opts.Estimate = &est
			}
			return export.ExportPDF(path, job, sheets, opts)
		})
	cmd.Flags().Bool("estimate", false, "Include the purchase estimate on the summary page")
	return cmd
}

// NewLabelsCommand creates the labels command.
func NewLabelsCommand() *cobra.Command {
	return newExportCommand("labels",
		"Write QR-coded panel labels on Avery 5160 sheets",
		`Write a Letter-size PDF of 30-up labels, one per panel piece. Each label
carries the panel reference, size and material, and a QR code with the same
information as JSON.`,
		`  cabinetcut labels --import kitchen.csv -o labels.pdf`,
		"-labels.pdf",
		func(_ *cobra.Command, _ *App, path string, job model.Job, sheets []render.CabinetSheet) error {
			return export.ExportLabels(path, sheets, job.Material)
		})
}

// NewXLSXCommand creates the xlsx command.
func NewXLSXCommand() *cobra.Command {
	return newExportCommand("xlsx",
		"Write the cut list and edge banding to an Excel workbook",
		`Write a workbook with a "Cut List" sheet holding every cabinet's inventory and
an "Edge Banding" sheet with the per-panel breakdown and totals.`,
		`  cabinetcut xlsx --job kitchen.cabcut`,
		".xlsx",
		func(_ *cobra.Command, a *App, path string, _ model.Job, sheets []render.CabinetSheet) error {
			return export.ExportXLSX(path, sheets, a.Config.BandingWastePercent)
		})
}

// NewDXFCommand creates the dxf command.
func NewDXFCommand() *cobra.Command {
	return newExportCommand("dxf",
		"Write full-size panel outlines to a DXF drawing",
		`Write every panel at full size (1 unit = 1 mm), one row per cabinet, with
outlines, banding, kerf guides and labels on separate layers.`,
		`  cabinetcut dxf --width 600 --height 720 --depth 560 -o base.dxf`,
		".dxf",
		func(_ *cobra.Command, _ *App, path string, job model.Job, sheets []render.CabinetSheet) error {
			return export.ExportDXF(path, sheets, job.Material)
		})
}
