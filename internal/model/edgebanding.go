package model

import "math"

// EdgeBandingSummary holds the calculated edge banding requirements for a set of panels.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // Total banding length in mm (no waste)
	TotalLinearM     float64 `json:"total_linear_m"`      // Total banding length in meters (no waste)
	WastePercent     float64 `json:"waste_percent"`       // Waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // Total with waste in mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // Total with waste in meters
	PanelCount       int     `json:"panel_count"`         // Number of panels needing banding
	EdgeCount        int     `json:"edge_count"`          // Total number of banded edges
}

// bandedEdges resolves a panel's labels to distinct panel-local edges.
// "all" stands for the four edges and supersedes any other label.
func bandedEdges(p Panel) []EdgeBand {
	if p.HasBanding(EdgeAll) {
		return []EdgeBand{EdgeAll}
	}
	seen := make(map[EdgeBand]bool)
	var edges []EdgeBand
	for _, e := range p.EdgeBanding {
		if seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	return edges
}

// BandingLength returns the banding needed for one piece of p, in mm.
// "top" runs along the width; "front", "left" and "right" run along the height.
func BandingLength(p Panel) float64 {
	var total float64
	for _, e := range bandedEdges(p) {
		switch e {
		case EdgeAll:
			total += 2 * float64(p.Width+p.Height)
		case EdgeTop:
			total += float64(p.Width)
		case EdgeFront, EdgeLeft, EdgeRight:
			total += float64(p.Height)
		}
	}
	return total
}

// BandedEdgeCount returns how many physical edges of p are banded.
func BandedEdgeCount(p Panel) int {
	edges := bandedEdges(p)
	if len(edges) == 1 && edges[0] == EdgeAll {
		return 4
	}
	return len(edges)
}

// CalculateEdgeBanding computes the total edge banding needed for a list of panels.
// wastePercent is the additional percentage to add for waste (e.g., 10 for 10%).
func CalculateEdgeBanding(panels []Panel, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var panelCount, edgeCount int

	for _, p := range panels {
		if len(p.EdgeBanding) == 0 {
			continue
		}
		totalMM += BandingLength(p) * float64(p.Quantity)
		panelCount += p.Quantity
		edgeCount += BandedEdgeCount(p) * p.Quantity
	}

	// Round up to whole mm, ignoring float noise such as 1430.0000000000002.
	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := math.Ceil(totalMM*wasteFactor - 1e-6)

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: totalWithWaste,
		TotalWithWasteM:  totalWithWaste / 1000.0,
		PanelCount:       panelCount,
		EdgeCount:        edgeCount,
	}
}

// PerPanelEdgeBanding is one line of the per-panel banding breakdown.
type PerPanelEdgeBanding struct {
	Reference     string  `json:"reference"`
	Type          string  `json:"type"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Edges         string  `json:"edges"`           // e.g., "top, front"
	LengthPerUnit float64 `json:"length_per_unit"` // mm per piece
	TotalLength   float64 `json:"total_length"`    // mm for all pieces
}

// CalculatePerPanelEdgeBanding returns a breakdown of banding per panel.
func CalculatePerPanelEdgeBanding(panels []Panel) []PerPanelEdgeBanding {
	var results []PerPanelEdgeBanding
	for _, p := range panels {
		if len(p.EdgeBanding) == 0 {
			continue
		}
		lengthPerUnit := BandingLength(p)
		results = append(results, PerPanelEdgeBanding{
			Reference:     p.ID,
			Type:          p.Type(),
			Width:         p.Width,
			Height:        p.Height,
			Edges:         JoinEdgeBanding(p.EdgeBanding),
			LengthPerUnit: lengthPerUnit,
			TotalLength:   lengthPerUnit * float64(p.Quantity),
		})
	}
	return results
}
