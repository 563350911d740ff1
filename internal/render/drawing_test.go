package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CabinetCut/internal/model"
)

var testMaterial = model.Material{Type: "plywood", Thickness: 18, Kerf: 3.2}

func panelByID(t *testing.T, panels []model.Panel, id string) model.Panel {
	t.Helper()
	for _, p := range panels {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("panel %s not found", id)
	return model.Panel{}
}

func referencePanels() []model.Panel {
	return model.DerivePanels(model.Cabinet{Width: 600, Height: 720, Depth: 560, Divisions: 2}, 1)
}

func TestRenderPanelCanvas(t *testing.T) {
	// Bottom panel of the reference cabinet is 600 x 560.
	p := panelByID(t, referencePanels(), "C1-B1")
	d := RenderPanel(p, testMaterial, Scale)

	assert.InDelta(t, 90.0, d.Outline.W, 1e-9)
	assert.InDelta(t, 84.0, d.Outline.H, 1e-9)
	assert.InDelta(t, 190.0, d.Width, 1e-9)
	assert.InDelta(t, 184.0, d.Height, 1e-9)
	assert.Equal(t, Margin, d.Margin)
	assert.Equal(t, OutlineColor, d.Outline.Stroke.Color)
	assert.Equal(t, 2.0, d.Outline.Stroke.Width)
}

func TestRenderPanelMarkers(t *testing.T) {
	panels := referencePanels()

	t.Run("side has top and front", func(t *testing.T) {
		d := RenderPanel(panelByID(t, panels, "C1-L1"), testMaterial, Scale)
		require.Len(t, d.Markers, 2)

		w, h := 560*Scale, 720*Scale
		assert.Equal(t, Line{X1: 0, Y1: 0, X2: w, Y2: 0, Stroke: Stroke{Color: BandingColor, Width: 4}}, d.Markers[0])
		assert.Equal(t, Line{X1: w, Y1: 0, X2: w, Y2: h, Stroke: Stroke{Color: BandingColor, Width: 4}}, d.Markers[1])
	})

	t.Run("top panel only front", func(t *testing.T) {
		d := RenderPanel(panelByID(t, panels, "C1-T1"), testMaterial, Scale)
		require.Len(t, d.Markers, 1)
		assert.Equal(t, d.Markers[0].X1, d.Markers[0].X2)
	})

	t.Run("door banded all round draws nothing", func(t *testing.T) {
		d := RenderPanel(panelByID(t, panels, "C1-D1"), testMaterial, Scale)
		assert.Empty(t, d.Markers)
	})

	t.Run("left and right draw nothing", func(t *testing.T) {
		p := model.Panel{ID: "X", Width: 100, Height: 100, Quantity: 1, EdgeBanding: []model.EdgeBand{model.EdgeLeft, model.EdgeRight}}
		assert.Empty(t, RenderPanel(p, testMaterial, Scale).Markers)
	})
}

func TestRenderPanelKerfLines(t *testing.T) {
	p := panelByID(t, referencePanels(), "C1-B1")
	d := RenderPanel(p, testMaterial, Scale)
	require.Len(t, d.KerfLines, 2)

	horiz, vert := d.KerfLines[0], d.KerfLines[1]
	assert.Equal(t, -10.0, horiz.X1)
	assert.InDelta(t, 100.0, horiz.X2, 1e-9)
	assert.Equal(t, -3.2, horiz.Y1)
	assert.Equal(t, -3.2, horiz.Y2)

	assert.InDelta(t, 93.2, vert.X1, 1e-9)
	assert.Equal(t, vert.X1, vert.X2)
	assert.Equal(t, -10.0, vert.Y1)
	assert.InDelta(t, 94.0, vert.Y2, 1e-9)

	assert.Equal(t, []float64{5, 5}, horiz.Stroke.Dash)
	assert.Equal(t, 1.0, vert.Stroke.Width)
}

func TestRenderPanelZeroKerf(t *testing.T) {
	p := panelByID(t, referencePanels(), "C1-B1")
	d := RenderPanel(p, model.Material{Type: "mdf", Thickness: 18}, Scale)
	assert.Equal(t, 0.0, d.KerfLines[0].Y1)
	assert.InDelta(t, d.Outline.W, d.KerfLines[1].X1, 1e-9)
}

func TestRenderPanelLabels(t *testing.T) {
	p := panelByID(t, referencePanels(), "C1-S1")
	d := RenderPanel(p, testMaterial, Scale)
	require.Len(t, d.Labels, 2)

	width, height := d.Labels[0], d.Labels[1]
	assert.Equal(t, "596mm (59.6cm)", width.Text)
	assert.InDelta(t, 44.7, width.X, 1e-9)
	assert.Equal(t, -30.0, width.Y)
	assert.Zero(t, width.Rotate)

	assert.Equal(t, "540mm (54.0cm)", height.Text)
	assert.InDelta(t, 596*Scale+40, height.X, 1e-9)
	assert.InDelta(t, 540*Scale/2, height.Y, 1e-9)
	assert.Equal(t, 90.0, height.Rotate)
}

func TestRenderPanelGlyphs(t *testing.T) {
	d := RenderPanel(model.Panel{ID: "X", Width: 200, Height: 100, Quantity: 1}, testMaterial, 1)
	require.Len(t, d.Glyphs, 2)
	assert.Equal(t, Glyph{Dir: DirRight, X: 100, Y: -20, Color: OutlineColor}, d.Glyphs[0])
	assert.Equal(t, Glyph{Dir: DirDown, X: 220, Y: 50, Color: OutlineColor}, d.Glyphs[1])
}

func TestRenderPanelNegativeSize(t *testing.T) {
	// A 15mm deep cabinet with shelves gives a -5mm shelf height.
	panels := model.DerivePanels(model.Cabinet{Width: 600, Height: 720, Depth: 15, Divisions: 1}, 1)
	d := RenderPanel(panelByID(t, panels, "C1-S1"), testMaterial, Scale)
	assert.InDelta(t, -0.75, d.Outline.H, 1e-9)
	assert.Equal(t, "-5mm (-0.5cm)", d.Labels[1].Text)
}

func TestDimensionText(t *testing.T) {
	assert.Equal(t, "600mm (60.0cm)", DimensionText(600))
	assert.Equal(t, "0mm (0.0cm)", DimensionText(0))
	assert.Equal(t, "1235mm (123.5cm)", DimensionText(1235))
}

func TestRenderPanelsKeepsOrder(t *testing.T) {
	panels := referencePanels()
	drawings := RenderPanels(panels, testMaterial, Scale)
	require.Len(t, drawings, len(panels))
	for i := range panels {
		assert.Equal(t, panels[i].ID, drawings[i].PanelID)
	}
}
