// Package render turns derived panels into format-independent drawings that
// the SVG, PDF and DXF writers share.
package render

import (
	"fmt"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// Drawing constants shared by every panel of a render pass.
const (
	Scale          = 0.15 // Drawing units per mm
	Margin         = 50.0 // Room left around the outline for labels
	GlyphSize      = 24.0
	FontSize       = 12.0
	kerfOverhang   = 10.0
	glyphOffset    = 20.0
	widthLabelRise = 30.0
	heightLabelGap = 40.0
)

// Colors used by the panel diagrams.
const (
	OutlineColor = "#CCCCCC"
	BandingColor = "#4A90E2"
)

// Stroke describes how a shape is outlined.
type Stroke struct {
	Color string
	Width float64
	Dash  []float64 // nil for a solid line
}

// Rect is an axis-aligned rectangle in drawing units.
type Rect struct {
	X, Y, W, H float64
	Stroke     Stroke
}

// Line is a straight segment in drawing units.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
}

// Direction is the way a feed-direction glyph points.
type Direction int

const (
	DirRight Direction = iota
	DirDown
)

// Glyph is a decorative arrow whose bounding box starts at (X, Y).
type Glyph struct {
	Dir   Direction
	X, Y  float64
	Color string
}

// Label is a line of text anchored at its middle.
type Label struct {
	X, Y   float64
	Text   string
	Rotate float64 // Degrees clockwise about (X, Y)
	Color  string
	Size   float64
}

// Drawing is the vector diagram of one panel. Coordinates of every shape are
// relative to the outline origin, which sits Margin units inside the canvas.
type Drawing struct {
	PanelID   string
	Title     string
	Width     float64 // Canvas width including margins
	Height    float64 // Canvas height including margins
	Margin    float64
	Outline   Rect
	Markers   []Line // Edge banding
	Glyphs    []Glyph
	Labels    []Label // Width label first, then height label
	KerfLines []Line
}

// RenderPanel lays out the diagram of p at the given scale. Only "top" and
// "front" banding produce markers; "left", "right" and "all" are listed in the
// inventory but not drawn. Negative sizes give inverted geometry.
func RenderPanel(p model.Panel, m model.Material, scale float64) Drawing {
	w := float64(p.Width) * scale
	h := float64(p.Height) * scale

	d := Drawing{
		PanelID: p.ID,
		Title:   fmt.Sprintf("%s - %s", p.ID, p.Type()),
		Width:   w + 2*Margin,
		Height:  h + 2*Margin,
		Margin:  Margin,
		Outline: Rect{X: 0, Y: 0, W: w, H: h, Stroke: Stroke{Color: OutlineColor, Width: 2}},
	}

	banding := Stroke{Color: BandingColor, Width: 4}
	if p.HasBanding(model.EdgeTop) {
		d.Markers = append(d.Markers, Line{X1: 0, Y1: 0, X2: w, Y2: 0, Stroke: banding})
	}
	if p.HasBanding(model.EdgeFront) {
		d.Markers = append(d.Markers, Line{X1: w, Y1: 0, X2: w, Y2: h, Stroke: banding})
	}

	d.Glyphs = []Glyph{
		{Dir: DirRight, X: w / 2, Y: -glyphOffset, Color: OutlineColor},
		{Dir: DirDown, X: w + glyphOffset, Y: h / 2, Color: OutlineColor},
	}

	d.Labels = []Label{
		{X: w / 2, Y: -widthLabelRise, Text: DimensionText(p.Width), Color: OutlineColor, Size: FontSize},
		{X: w + heightLabelGap, Y: h / 2, Text: DimensionText(p.Height), Rotate: 90, Color: OutlineColor, Size: FontSize},
	}

	guide := Stroke{Color: OutlineColor, Width: 1, Dash: []float64{5, 5}}
	k := m.Kerf
	d.KerfLines = []Line{
		{X1: -kerfOverhang, Y1: -k, X2: w + kerfOverhang, Y2: -k, Stroke: guide},
		{X1: w + k, Y1: -kerfOverhang, X2: w + k, Y2: h + kerfOverhang, Stroke: guide},
	}

	return d
}

// DimensionText formats a length as "596mm (59.6cm)".
func DimensionText(mm int) string {
	return fmt.Sprintf("%dmm (%.1fcm)", mm, float64(mm)/10)
}

// RenderPanels draws every panel at the shared scale, in order.
func RenderPanels(panels []model.Panel, m model.Material, scale float64) []Drawing {
	drawings := make([]Drawing, len(panels))
	for i, p := range panels {
		drawings[i] = RenderPanel(p, m, scale)
	}
	return drawings
}
