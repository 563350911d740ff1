package model

import (
	"fmt"
	"strconv"
	"strings"
)

// InventoryHeaders are the column titles of the cut-list inventory.
var InventoryHeaders = []string{
	"Reference",
	"Type",
	"Dimensions (W × H × D)",
	"Material",
	"Edge Banding",
	"Quantity",
}

// InventoryRow is one line of the cut-list inventory table.
type InventoryRow struct {
	Reference   string `json:"reference"`
	Type        string `json:"type"`
	Dimensions  string `json:"dimensions"`   // "600 × 560 × 18 mm"
	Material    string `json:"material"`     // Upper-cased material type
	EdgeBanding string `json:"edge_banding"` // "front, left, right"
	Quantity    int    `json:"quantity"`
}

// Cells returns the row values in InventoryHeaders order.
func (r InventoryRow) Cells() []string {
	return []string{
		r.Reference,
		r.Type,
		r.Dimensions,
		r.Material,
		r.EdgeBanding,
		strconv.Itoa(r.Quantity),
	}
}

// BuildInventoryRows returns one row per panel, in panel order. Identical
// panels are listed separately, never merged.
func BuildInventoryRows(panels []Panel, m Material) []InventoryRow {
	rows := make([]InventoryRow, 0, len(panels))
	material := strings.ToUpper(m.Type)
	for _, p := range panels {
		rows = append(rows, InventoryRow{
			Reference:   p.ID,
			Type:        p.Type(),
			Dimensions:  fmt.Sprintf("%d × %d × %s mm", p.Width, p.Height, FormatMM(m.Thickness)),
			Material:    material,
			EdgeBanding: JoinEdgeBanding(p.EdgeBanding),
			Quantity:    p.Quantity,
		})
	}
	return rows
}

// JoinEdgeBanding renders banding labels the way the inventory shows them.
func JoinEdgeBanding(edges []EdgeBand) string {
	labels := make([]string, len(edges))
	for i, e := range edges {
		labels[i] = string(e)
	}
	return strings.Join(labels, ", ")
}

// FormatMM prints a length without trailing zeros: 18 -> "18", 3.2 -> "3.2".
func FormatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
