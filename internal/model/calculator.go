package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// PurchaseEstimate holds the results of a sheet purchasing calculation.
// It is an area estimate only; panels are not nested onto sheets.
type PurchaseEstimate struct {
	TotalPanelArea    float64         `json:"total_panel_area"`    // Total area of all panels (sq mm)
	TotalSquareMeters float64         `json:"total_square_meters"` // Same area in m²
	SheetArea         float64         `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64         `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int             `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int             `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64         `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	PricePerSheet     decimal.Decimal `json:"price_per_sheet"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Kerf              float64         `json:"kerf"` // Kerf allowance added to each panel edge
}

// SheetSize is the nominal size of a stock sheet in mm.
type SheetSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CalculatePurchaseEstimate computes how many sheets to buy for a cut-list.
// Each panel is grown by the kerf in both directions before summing areas.
func CalculatePurchaseEstimate(panels []Panel, sheet SheetSize, kerf, wastePercent float64, pricePerSheet decimal.Decimal) PurchaseEstimate {
	var totalArea float64
	for _, p := range panels {
		w := float64(p.Width) + kerf
		h := float64(p.Height) + kerf
		totalArea += w * h * float64(p.Quantity)
	}

	est := PurchaseEstimate{
		TotalPanelArea:    totalArea,
		TotalSquareMeters: totalArea / 1e6,
		WastePercent:      wastePercent,
		PricePerSheet:     pricePerSheet,
		EstimatedCost:     decimal.Zero,
		Kerf:              kerf,
	}

	sheetArea := sheet.Width * sheet.Height
	if sheetArea <= 0 {
		return est
	}

	exact := totalArea / sheetArea
	minSheets := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minSheets {
		withWaste = minSheets
	}

	est.SheetArea = sheetArea
	est.SheetsNeededExact = exact
	est.SheetsNeededMin = minSheets
	est.SheetsWithWaste = withWaste
	est.EstimatedCost = pricePerSheet.Mul(decimal.NewFromInt(int64(withWaste)))
	return est
}
