package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// LabelInfo holds the data encoded into each panel label's QR code.
type LabelInfo struct {
	PanelID     string  `json:"panel"`
	Cabinet     string  `json:"cabinet"`
	Type        string  `json:"type"`
	Width       int     `json:"width_mm"`
	Height      int     `json:"height_mm"`
	Thickness   float64 `json:"thickness_mm"`
	Material    string  `json:"material"`
	EdgeBanding string  `json:"edge_banding,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per panel piece, laid
// out on a standard label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, sheets []render.CabinetSheet, m model.Material) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no cabinets to generate labels for")
	}

	labels := CollectLabelInfos(sheets, m)
	if len(labels) == 0 {
		return fmt.Errorf("no panels to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PanelID, seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.PanelID+" "+info.Type, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%d x %d x %s mm", info.Width, info.Height, model.FormatMM(info.Thickness))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, tr(fmt.Sprintf("Cabinet %s, %s", info.Cabinet, info.Material)), "", 1, "L", false, 0, "")

	if info.EdgeBanding != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(74, 144, 226)
		pdf.CellFormat(textW, 3, truncate(pdf, "Band: "+info.EdgeBanding, textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// truncate shortens s with an ellipsis until it fits w at the current font.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos lists one label per panel piece in job order.
func CollectLabelInfos(sheets []render.CabinetSheet, m model.Material) []LabelInfo {
	var labels []LabelInfo
	for _, sheet := range sheets {
		for _, p := range sheet.Panels {
			info := LabelInfo{
				PanelID:     p.ID,
				Cabinet:     sheet.Cabinet.Ref(),
				Type:        p.Type(),
				Width:       p.Width,
				Height:      p.Height,
				Thickness:   m.Thickness,
				Material:    m.Type,
				EdgeBanding: model.JoinEdgeBanding(p.EdgeBanding),
			}
			for q := 0; q < p.Quantity; q++ {
				labels = append(labels, info)
			}
		}
	}
	return labels
}
