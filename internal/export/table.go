package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// TableFormat selects how WriteInventoryTable and friends render a table.
type TableFormat string

const (
	FormatText     TableFormat = "text"
	FormatMarkdown TableFormat = "markdown"
	FormatCSV      TableFormat = "csv"
	FormatHTML     TableFormat = "html"
)

// ParseTableFormat accepts "text", "table", "markdown", "md", "csv" or "html".
func ParseTableFormat(s string) (TableFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "table":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown table format %q (want text, markdown, csv or html)", s)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func renderTable(t table.Writer, f TableFormat) {
	switch f {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatHTML:
		t.RenderHTML()
	default:
		t.Render()
	}
}

func headerRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// WriteInventoryTable renders an inventory table with the standard headers.
func WriteInventoryTable(w io.Writer, title string, rows []model.InventoryRow, f TableFormat) {
	t := newTable(w, title)
	t.AppendHeader(headerRow(model.InventoryHeaders))
	for _, r := range rows {
		t.AppendRow(table.Row{r.Reference, r.Type, r.Dimensions, r.Material, r.EdgeBanding, r.Quantity})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 6, Align: text.AlignRight}})
	renderTable(t, f)
}

// WriteBanding renders the per-panel edge banding breakdown and its totals.
func WriteBanding(w io.Writer, rows []model.PerPanelEdgeBanding, summary model.EdgeBandingSummary, f TableFormat) {
	t := newTable(w, "Edge Banding")
	t.AppendHeader(headerRow(bandingHeaders))
	for _, r := range rows {
		t.AppendRow(table.Row{r.Reference, r.Type, r.Width, r.Height, r.Edges, mm(r.LengthPerUnit), mm(r.TotalLength)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", "", mm(summary.TotalLinearMM)})
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("+%s%% waste", model.FormatMM(summary.WastePercent)), "", mm(summary.TotalWithWasteMM)})
	renderTable(t, f)
}

// WriteEstimate renders a purchase estimate as a two-column table.
func WriteEstimate(w io.Writer, est model.PurchaseEstimate, f TableFormat) {
	t := newTable(w, "Purchase Estimate")
	t.AppendHeader(table.Row{"Item", "Value"})
	t.AppendRows([]table.Row{
		{"Panel area (m²)", strconv.FormatFloat(est.TotalSquareMeters, 'f', 2, 64)},
		{"Sheet area (m²)", strconv.FormatFloat(est.SheetArea/1e6, 'f', 2, 64)},
		{"Sheets (exact)", strconv.FormatFloat(est.SheetsNeededExact, 'f', 2, 64)},
		{"Sheets (minimum)", est.SheetsNeededMin},
		{fmt.Sprintf("Sheets (+%s%% waste)", model.FormatMM(est.WastePercent)), est.SheetsWithWaste},
		{"Price per sheet", est.PricePerSheet.StringFixed(2)},
		{"Estimated cost", est.EstimatedCost.StringFixed(2)},
	})
	renderTable(t, f)
}

func mm(v float64) string {
	return model.FormatMM(v)
}
