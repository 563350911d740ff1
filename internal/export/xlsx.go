package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// Worksheet names used by ExportXLSX.
const (
	CutListSheet = "Cut List"
	BandingSheet = "Edge Banding"
)

// bandingHeaders are the columns of the edge banding worksheet.
var bandingHeaders = []string{"Reference", "Type", "Width", "Height", "Edges", "Length per Piece (mm)", "Total Length (mm)"}

// ExportXLSX writes the inventory of every cabinet to a "Cut List" worksheet,
// plus an "Edge Banding" worksheet with the per-panel breakdown and totals.
func ExportXLSX(path string, sheets []render.CabinetSheet, bandingWastePercent float64) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CutListSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if _, err := f.NewSheet(BandingSheet); err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	var panels []model.Panel
	rows := [][]any{toAnyRow(model.InventoryHeaders)}
	for _, sheet := range sheets {
		panels = append(panels, sheet.Panels...)
		for _, r := range sheet.Rows {
			rows = append(rows, []any{r.Reference, r.Type, r.Dimensions, r.Material, r.EdgeBanding, r.Quantity})
		}
	}
	if err := writeRows(f, CutListSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(CutListSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(CutListSheet, "A", "F", 20); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	rows = [][]any{toAnyRow(bandingHeaders)}
	for _, b := range model.CalculatePerPanelEdgeBanding(panels) {
		rows = append(rows, []any{b.Reference, b.Type, b.Width, b.Height, b.Edges, b.LengthPerUnit, b.TotalLength})
	}
	summary := model.CalculateEdgeBanding(panels, bandingWastePercent)
	rows = append(rows,
		[]any{},
		[]any{"Total (mm)", summary.TotalLinearMM},
		[]any{fmt.Sprintf("Total incl. %.0f%% waste (mm)", summary.WastePercent), summary.TotalWithWasteMM},
	)
	if err := writeRows(f, BandingSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(BandingSheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(BandingSheet, "A", "G", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toAnyRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
