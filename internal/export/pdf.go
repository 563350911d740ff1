// Package export writes rendered cut lists to PDF, SVG, DXF, Excel and text
// tables.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// rgb is a color for the PDF pen.
type rgb struct {
	R, G, B int
}

// paperInk is used in place of colors too light to read on white paper.
var paperInk = rgb{R: 51, G: 51, B: 51}

// printable maps light screen colors to paperInk and keeps the rest.
func printable(c rgb) rgb {
	if 299*c.R+587*c.G+114*c.B > 160*1000 {
		return paperInk
	}
	return c
}

// Page layout constants in mm.
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	gridCols     = 3
	gridRows     = 2
	cellPadding  = 4.0
	captionSize  = 5.0
	rowHeight    = 6.0
	minFontPt    = 4.0
)

// PDFOptions controls the cut-list document.
type PDFOptions struct {
	PageSize            string // "A4" or "Letter"; empty means A4
	BandingWastePercent float64
	Estimate            *model.PurchaseEstimate // Optional purchase summary
}

// ExportPDF writes a cut-list document for job: one or more diagram pages and
// an inventory table per cabinet, followed by a summary page.
func ExportPDF(path string, job model.Job, sheets []render.CabinetSheet, opts PDFOptions) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}
	pageSize := opts.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	if !validPageSize(pageSize) {
		return fmt.Errorf("unsupported page size %q", pageSize)
	}

	pdf := fpdf.New("L", "mm", pageSize, "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(job.Name, true)
	pdf.SetCreator("CabinetCut", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, sheet := range sheets {
		renderDiagramPages(pdf, tr, sheet, job.Material)
		renderInventoryPage(pdf, tr, sheet)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, tr, job, sheets, opts)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

func validPageSize(s string) bool {
	switch strings.ToLower(s) {
	case "a4", "letter":
		return true
	}
	return false
}

// renderDiagramPages lays the panel drawings of one cabinet out on a grid,
// adding pages as needed.
func renderDiagramPages(pdf *fpdf.Fpdf, tr func(string) string, sheet render.CabinetSheet, m model.Material) {
	pageW, pageH := pdf.GetPageSize()
	drawW := pageW - marginLeft - marginRight
	drawH := pageH - drawAreaTop - marginBottom
	cellW := drawW / gridCols
	cellH := drawH / gridRows
	perPage := gridCols * gridRows

	pages := (len(sheet.Drawings) + perPage - 1) / perPage
	for i, d := range sheet.Drawings {
		if i%perPage == 0 {
			pdf.AddPage()
			title := fmt.Sprintf("Cabinet %s: %d x %d x %d mm", sheet.Cabinet.Ref(),
				sheet.Cabinet.Cabinet.Width, sheet.Cabinet.Cabinet.Height, sheet.Cabinet.Cabinet.Depth)
			if pages > 1 {
				title += fmt.Sprintf(" (%d/%d)", i/perPage+1, pages)
			}
			pageHeader(pdf, tr, title, fmt.Sprintf("%s, %s mm, kerf %s mm",
				strings.ToUpper(m.Type), model.FormatMM(m.Thickness), model.FormatMM(m.Kerf)))
		}
		pos := i % perPage
		x := marginLeft + float64(pos%gridCols)*cellW
		y := drawAreaTop + float64(pos/gridCols)*cellH
		drawPanel(pdf, tr, d, x, y, cellW, cellH)
	}
}

func pageHeader(pdf *fpdf.Fpdf, tr func(string) string, title, subtitle string) {
	pageW, _ := pdf.GetPageSize()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageW-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageW-marginLeft-marginRight, 5, tr(subtitle), "", 0, "L", false, 0, "")
}

// drawPanel renders d scaled to fit the cell at (x, y).
func drawPanel(pdf *fpdf.Fpdf, tr func(string) string, d render.Drawing, x, y, cellW, cellH float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(cellW, captionSize, tr(d.Title), "", 0, "C", false, 0, "")

	availW := cellW - 2*cellPadding
	availH := cellH - captionSize - 2*cellPadding
	f := fitScale(d, availW, availH)
	ox := x + cellPadding + (availW-d.Width*f)/2 + d.Margin*f
	oy := y + captionSize + cellPadding + d.Margin*f

	pt := func(px, py float64) (float64, float64) { return ox + px*f, oy + py*f }

	o := d.Outline
	setStroke(pdf, o.Stroke, f)
	rx, ry := pt(o.X, o.Y)
	pdf.Rect(rx, ry, o.W*f, o.H*f, "D")

	for _, l := range d.Markers {
		drawLine(pdf, l, f, pt)
	}
	for _, g := range d.Glyphs {
		drawGlyph(pdf, g, f, pt)
	}
	for _, l := range d.KerfLines {
		drawLine(pdf, l, f, pt)
	}
	pdf.SetDashPattern([]float64{}, 0)

	for _, lb := range d.Labels {
		c := printable(hexRGB(lb.Color))
		pdf.SetTextColor(c.R, c.G, c.B)
		pdf.SetFont("Helvetica", "", math.Max(minFontPt, lb.Size*f*72/25.4))
		lx, ly := pt(lb.X, lb.Y)
		text := tr(lb.Text)
		tw := pdf.GetStringWidth(text)
		if lb.Rotate != 0 {
			// fpdf rotates counter-clockwise.
			pdf.TransformBegin()
			pdf.TransformRotate(-lb.Rotate, lx, ly)
			pdf.Text(lx-tw/2, ly, text)
			pdf.TransformEnd()
			continue
		}
		pdf.Text(lx-tw/2, ly, text)
	}
	pdf.SetTextColor(0, 0, 0)
}

// fitScale returns the mm-per-drawing-unit factor that fits d in the box.
func fitScale(d render.Drawing, w, h float64) float64 {
	if d.Width <= 0 || d.Height <= 0 {
		return 1
	}
	return math.Min(w/d.Width, h/d.Height)
}

func setStroke(pdf *fpdf.Fpdf, s render.Stroke, f float64) {
	c := printable(hexRGB(s.Color))
	pdf.SetDrawColor(c.R, c.G, c.B)
	pdf.SetLineWidth(math.Max(0.1, s.Width*f))
	if len(s.Dash) > 0 {
		dash := make([]float64, len(s.Dash))
		for i, v := range s.Dash {
			dash[i] = v * f
		}
		pdf.SetDashPattern(dash, 0)
	} else {
		pdf.SetDashPattern([]float64{}, 0)
	}
}

func drawLine(pdf *fpdf.Fpdf, l render.Line, f float64, pt func(float64, float64) (float64, float64)) {
	setStroke(pdf, l.Stroke, f)
	x1, y1 := pt(l.X1, l.Y1)
	x2, y2 := pt(l.X2, l.Y2)
	pdf.Line(x1, y1, x2, y2)
}

// drawGlyph draws the same arrow icon the SVG writer emits.
func drawGlyph(pdf *fpdf.Fpdf, g render.Glyph, f float64, pt func(float64, float64) (float64, float64)) {
	setStroke(pdf, render.Stroke{Color: g.Color, Width: 2}, f)
	seg := func(x1, y1, x2, y2 float64) {
		ax, ay := pt(g.X+x1, g.Y+y1)
		bx, by := pt(g.X+x2, g.Y+y2)
		pdf.Line(ax, ay, bx, by)
	}
	if g.Dir == render.DirDown {
		seg(12, 5, 12, 19)
		seg(19, 12, 12, 19)
		seg(12, 19, 5, 12)
		return
	}
	seg(5, 12, 19, 12)
	seg(12, 5, 19, 12)
	seg(19, 12, 12, 19)
}

// hexRGB parses "#RRGGBB"; anything else gives black.
func hexRGB(s string) rgb {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}
	}
	return rgb{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// renderInventoryPage draws the cabinet's inventory table on a new page.
func renderInventoryPage(pdf *fpdf.Fpdf, tr func(string) string, sheet render.CabinetSheet) {
	pdf.AddPage()
	pageHeader(pdf, tr, fmt.Sprintf("Cabinet %s: Panel Inventory", sheet.Cabinet.Ref()),
		fmt.Sprintf("%d panels", len(sheet.Rows)))

	pageW, _ := pdf.GetPageSize()
	colWidths := inventoryColumnWidths(pageW - marginLeft - marginRight)
	y := drawAreaTop

	drawTableHeader(pdf, tr, model.InventoryHeaders, colWidths, y)
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range sheet.Rows {
		if y+rowHeight > pageHeightOf(pdf)-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawTableHeader(pdf, tr, model.InventoryHeaders, colWidths, y)
			y += rowHeight
			pdf.SetFont("Helvetica", "", 9)
		}
		drawTableRow(pdf, tr, row.Cells(), colWidths, y, i)
		y += rowHeight
	}
}

func pageHeightOf(pdf *fpdf.Fpdf) float64 {
	_, h := pdf.GetPageSize()
	return h
}

// inventoryColumnWidths splits the table width in fixed proportions.
func inventoryColumnWidths(total float64) []float64 {
	weights := []float64{14, 14, 26, 14, 22, 10}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths
}

func drawTableHeader(pdf *fpdf.Fpdf, tr func(string) string, headers []string, colWidths []float64, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, tr(header), "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
}

func drawTableRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, colWidths []float64, y float64, i int) {
	// Alternate row background
	if i%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], rowHeight, tr(cell), "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
}

// renderSummaryPage draws job totals, edge banding and the optional estimate.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, job model.Job, sheets []render.CabinetSheet, opts PDFOptions) {
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageW-marginLeft-marginRight, 10, tr("Cut List Summary: "+job.Name), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageW-marginRight, marginTop+12)

	var panels []model.Panel
	for _, s := range sheets {
		panels = append(panels, s.Panels...)
	}
	banding := model.CalculateEdgeBanding(panels, opts.BandingWastePercent)

	items := []summaryItem{
		{"Cabinets", strconv.Itoa(len(sheets))},
		{"Panels", strconv.Itoa(len(panels))},
		{"Material", fmt.Sprintf("%s, %s mm", strings.ToUpper(job.Material.Type), model.FormatMM(job.Material.Thickness))},
		{"Kerf", model.FormatMM(job.Material.Kerf) + " mm"},
		{"Edge Banding", fmt.Sprintf("%.2f m (%d edges)", banding.TotalLinearM, banding.EdgeCount)},
		{"Banding incl. Waste", fmt.Sprintf("%.2f m (+%.0f%%)", banding.TotalWithWasteM, banding.WastePercent)},
	}
	y := writeSummarySection(pdf, tr, "Overall Statistics", items, marginTop+18)

	if est := opts.Estimate; est != nil {
		items = []summaryItem{
			{"Panel Area", fmt.Sprintf("%.2f m²", est.TotalSquareMeters)},
			{"Sheets (minimum)", strconv.Itoa(est.SheetsNeededMin)},
			{"Sheets incl. Waste", fmt.Sprintf("%d (+%.0f%%)", est.SheetsWithWaste, est.WastePercent)},
			{"Price per Sheet", est.PricePerSheet.StringFixed(2)},
			{"Estimated Cost", est.EstimatedCost.StringFixed(2)},
		}
		writeSummarySection(pdf, tr, "Purchase Estimate", items, y+5)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageH-marginBottom)
	pdf.CellFormat(pageW-marginLeft-marginRight, 4, "Generated by CabinetCut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type summaryItem struct {
	label string
	value string
}

func writeSummarySection(pdf *fpdf.Fpdf, tr func(string) string, title string, items []summaryItem, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, tr(title), "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, tr(item.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}
