// Package ui provides the CabinetCut preview window.
package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/CabinetCut/internal/export"
	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
	"github.com/piwi3910/CabinetCut/internal/ui/widgets"
)

// Diagram cell size at 100% zoom.
const (
	cellWidth  = 280
	cellHeight = 220
)

var zoomLevels = []float32{0.5, 0.75, 1, 1.5, 2, 3}

// Options carries the settings the preview needs from the configuration.
type Options struct {
	BandingWastePercent float64
	PageSize            string
}

// Preview is a read-only window over a rendered job.
type Preview struct {
	window fyne.Window
	job    model.Job
	sheets []render.CabinetSheet
	opts   Options

	zoom      float32
	zoomLabel *widget.Label
	diagrams  *fyne.Container
}

func NewPreview(window fyne.Window, job model.Job, sheets []render.CabinetSheet, opts Options) *Preview {
	return &Preview{
		window: window,
		job:    job,
		sheets: sheets,
		opts:   opts,
		zoom:   1,
	}
}

// ShowPreview opens the preview window and blocks until it is closed.
func ShowPreview(job model.Job, sheets []render.CabinetSheet, opts Options) {
	application := app.NewWithID("com.piwi3910.cabinetcut")
	application.Settings().SetTheme(NewCabinetCutTheme())

	window := application.NewWindow(fmt.Sprintf("CabinetCut - %s", job.Name))
	p := NewPreview(window, job, sheets, opts)
	p.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(p.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}

// SetupMenus creates the native menu bar for the preview.
func (p *Preview) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export SVG...", p.exportSVG),
		fyne.NewMenuItem("Export PDF...", p.exportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			p.window.Close()
		}),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { p.setZoom(StepZoom(p.zoom, 1)) }),
		fyne.NewMenuItem("Zoom Out", func() { p.setZoom(StepZoom(p.zoom, -1)) }),
		fyne.NewMenuItem("Actual Size", func() { p.setZoom(1) }),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About CabinetCut",
				"CabinetCut - cabinet panel cut lists\n\n"+
					"Derives the panels of carcass cabinets and renders\n"+
					"their diagrams, inventory and edge banding.",
				p.window)
		}),
	)
	p.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// Build returns the window content: a zoom toolbar over the diagram,
// inventory and banding tabs.
func (p *Preview) Build() fyne.CanvasObject {
	p.zoomLabel = widget.NewLabel("")
	p.diagrams = container.NewStack()
	p.refreshDiagrams()

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out", func() { p.setZoom(StepZoom(p.zoom, -1)) }),
		p.zoomLabel,
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in", func() { p.setZoom(StepZoom(p.zoom, 1)) }),
		newIconButtonWithTooltip(theme.ViewRestoreIcon(), "Actual size", func() { p.setZoom(1) }),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Export PDF", p.exportPDF),
	)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Panels", theme.GridIcon(), p.diagrams),
		container.NewTabItemWithIcon("Inventory", theme.ListIcon(), p.buildInventoryTable()),
		container.NewTabItemWithIcon("Edge Banding", theme.InfoIcon(), p.buildBandingSummary()),
	)
	return container.NewBorder(toolbar, nil, nil, nil, tabs)
}

// newIconButtonWithTooltip creates an icon-only button with a hover tooltip.
func newIconButtonWithTooltip(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// StepZoom returns the next zoom level above (dir > 0) or below (dir < 0)
// current, clamped to the available levels.
func StepZoom(current float32, dir int) float32 {
	switch {
	case dir > 0:
		for _, z := range zoomLevels {
			if z > current {
				return z
			}
		}
		return zoomLevels[len(zoomLevels)-1]
	case dir < 0:
		for i := len(zoomLevels) - 1; i >= 0; i-- {
			if zoomLevels[i] < current {
				return zoomLevels[i]
			}
		}
		return zoomLevels[0]
	}
	return current
}

func (p *Preview) setZoom(z float32) {
	p.zoom = z
	p.refreshDiagrams()
}

func (p *Preview) refreshDiagrams() {
	p.zoomLabel.SetText(fmt.Sprintf("%.0f%%", p.zoom*100))
	p.diagrams.Objects = []fyne.CanvasObject{
		widgets.RenderCabinetSheets(p.sheets, p.job.Material, cellWidth*p.zoom, cellHeight*p.zoom),
	}
	p.diagrams.Refresh()
}

// InventoryCells returns the header row followed by every cabinet's rows.
func InventoryCells(sheets []render.CabinetSheet) [][]string {
	cells := [][]string{model.InventoryHeaders}
	for _, sheet := range sheets {
		for _, r := range sheet.Rows {
			cells = append(cells, r.Cells())
		}
	}
	return cells
}

func (p *Preview) buildInventoryTable() fyne.CanvasObject {
	cells := InventoryCells(p.sheets)
	table := widget.NewTable(
		func() (int, int) { return len(cells), len(model.InventoryHeaders) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			label.SetText(cells[id.Row][id.Col])
		},
	)
	for col, w := range []float32{90, 110, 170, 110, 140, 40} {
		table.SetColumnWidth(col, w)
	}
	return table
}

func (p *Preview) buildBandingSummary() fyne.CanvasObject {
	panels := p.job.Panels()
	summary := model.CalculateEdgeBanding(panels, p.opts.BandingWastePercent)

	form := widget.NewForm(
		widget.NewFormItem("Banded edges", widget.NewLabel(fmt.Sprintf("%d", summary.EdgeCount))),
		widget.NewFormItem("Total length", widget.NewLabel(model.FormatMM(summary.TotalLinearMM)+" mm")),
		widget.NewFormItem(fmt.Sprintf("Incl. %s%% waste", model.FormatMM(summary.WastePercent)),
			widget.NewLabel(model.FormatMM(summary.TotalWithWasteMM)+" mm")),
	)

	perPanel := container.NewVBox()
	for _, r := range model.CalculatePerPanelEdgeBanding(panels) {
		perPanel.Add(widget.NewLabel(fmt.Sprintf("%s  %s  %s: %s mm", r.Reference, r.Type, r.Edges, model.FormatMM(r.TotalLength))))
	}
	return container.NewBorder(form, nil, nil, nil, container.NewVScroll(perPanel))
}

func (p *Preview) exportSVG() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if uri == nil {
			return
		}
		paths, err := export.ExportSVG(uri.Path(), p.sheets)
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Wrote %d SVG files to %s", len(paths), uri.Path()), p.window)
	}, p.window)
}

func (p *Preview) exportPDF() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		opts := export.PDFOptions{PageSize: p.opts.PageSize, BandingWastePercent: p.opts.BandingWastePercent}
		if err := export.ExportPDF(path, p.job, p.sheets, opts); err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		dialog.ShowInformation("Export Complete", "Cut list saved to "+filepath.Base(path), p.window)
	}, p.window)
	d.SetFileName(p.job.Name + ".pdf")
	d.Show()
}
