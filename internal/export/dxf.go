package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// DXF layer names.
const (
	LayerOutline = "OUTLINE"
	LayerBanding = "BANDING"
	LayerKerf    = "KERF"
	LayerLabels  = "LABELS"
)

const (
	dxfPanelGap   = 150.0 // mm between panels of one cabinet
	dxfCabinetGap = 250.0 // mm between cabinet rows
	dxfTextHeight = 12.0
)

// ExportDXF writes every panel at full size (1 unit = 1 mm), one row per
// cabinet, with outlines, banding, kerf guides and labels on separate layers.
func ExportDXF(path string, sheets []render.CabinetSheet, m model.Material) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
		lt   *table.LineType
	}{
		{LayerOutline, color.White, dxf.DefaultLineType},
		{LayerBanding, color.Blue, dxf.DefaultLineType},
		{LayerKerf, color.Cyan, table.LT_HIDDEN},
		{LayerLabels, color.Green, dxf.DefaultLineType},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, l.lt, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	rowY := 0.0
	for _, sheet := range sheets {
		x := 0.0
		rowHeight := 0.0
		for _, dr := range render.RenderPanels(sheet.Panels, m, 1) {
			if err := writeDXFPanel(d, dr, x, rowY); err != nil {
				return fmt.Errorf("failed to write panel %s: %w", dr.PanelID, err)
			}
			x += dr.Width + dxfPanelGap
			if dr.Height > rowHeight {
				rowHeight = dr.Height
			}
		}
		rowY -= rowHeight + dxfCabinetGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dxf: %w", err)
	}
	return nil
}

// writeDXFPanel places dr with its canvas corner at (ox, oy). Drawing
// coordinates grow downwards, DXF coordinates grow upwards.
func writeDXFPanel(d *drawing.Drawing, dr render.Drawing, ox, oy float64) error {
	pt := func(x, y float64) (float64, float64) {
		return ox + dr.Margin + x, oy - dr.Margin - y
	}
	line := func(l render.Line) error {
		x1, y1 := pt(l.X1, l.Y1)
		x2, y2 := pt(l.X2, l.Y2)
		_, err := d.Line(x1, y1, 0, x2, y2, 0)
		return err
	}

	if err := d.ChangeLayer(LayerOutline); err != nil {
		return err
	}
	o := dr.Outline
	corners := []render.Line{
		{X1: o.X, Y1: o.Y, X2: o.X + o.W, Y2: o.Y},
		{X1: o.X + o.W, Y1: o.Y, X2: o.X + o.W, Y2: o.Y + o.H},
		{X1: o.X + o.W, Y1: o.Y + o.H, X2: o.X, Y2: o.Y + o.H},
		{X1: o.X, Y1: o.Y + o.H, X2: o.X, Y2: o.Y},
	}
	for _, l := range corners {
		if err := line(l); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerBanding); err != nil {
		return err
	}
	for _, l := range dr.Markers {
		if err := line(l); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerKerf); err != nil {
		return err
	}
	for _, l := range dr.KerfLines {
		if err := line(l); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	tx, ty := pt(0, o.H)
	if _, err := d.Text(dr.Title, tx, ty-2*dxfTextHeight, 0, dxfTextHeight); err != nil {
		return err
	}
	for _, lb := range dr.Labels {
		lx, ly := pt(lb.X, lb.Y)
		t, err := d.Text(lb.Text, lx, ly, 0, dxfTextHeight)
		if err != nil {
			return err
		}
		// DXF angles are counter-clockwise.
		t.Rotation = -lb.Rotate
	}
	return nil
}
