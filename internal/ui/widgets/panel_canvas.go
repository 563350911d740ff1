package widgets

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// Background behind the diagrams; the light outline color needs a dark ground.
var diagramBackground = color.NRGBA{R: 38, G: 42, B: 48, A: 255}

// PanelCanvas draws one rendered panel diagram with fyne primitives.
type PanelCanvas struct {
	widget.BaseWidget
	drawing   render.Drawing
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(d render.Drawing, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		drawing:   d,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetMaxSize changes the box the diagram is fitted into and redraws it.
func (pc *PanelCanvas) SetMaxSize(maxW, maxH float32) {
	pc.maxWidth = maxW
	pc.maxHeight = maxH
	pc.Refresh()
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

// FitScale returns the pixels per drawing unit that fit d into maxW x maxH.
func FitScale(d render.Drawing, maxW, maxH float32) float32 {
	if d.Width <= 0 || d.Height <= 0 {
		return 1
	}
	return float32(math.Min(float64(maxW)/d.Width, float64(maxH)/d.Height))
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	d := r.pc.drawing
	f := FitScale(d, r.pc.maxWidth, r.pc.maxHeight)
	origin := float32(d.Margin) * f
	pt := func(x, y float64) fyne.Position {
		return fyne.NewPos(origin+float32(x)*f, origin+float32(y)*f)
	}

	bg := canvas.NewRectangle(diagramBackground)
	bg.Resize(fyne.NewSize(float32(d.Width)*f, float32(d.Height)*f))
	r.objects = append(r.objects, bg)

	o := d.Outline
	outline := canvas.NewRectangle(color.Transparent)
	outline.StrokeColor = HexColor(o.Stroke.Color)
	outline.StrokeWidth = strokeWidth(o.Stroke.Width, f)
	outline.Resize(fyne.NewSize(float32(o.W)*f, float32(o.H)*f))
	outline.Move(pt(o.X, o.Y))
	r.objects = append(r.objects, outline)

	for _, l := range d.Markers {
		r.addLine(l, f, pt)
	}
	for _, g := range d.Glyphs {
		r.addGlyph(g, f, pt)
	}
	for _, l := range d.KerfLines {
		r.addLine(l, f, pt)
	}

	for _, lb := range d.Labels {
		text := canvas.NewText(lb.Text, HexColor(lb.Color))
		text.TextSize = float32(math.Max(8, lb.Size*float64(f)*2))
		size := fyne.MeasureText(lb.Text, text.TextSize, text.TextStyle)
		p := pt(lb.X, lb.Y)
		if lb.Rotate != 0 {
			// Text cannot be rotated on a fyne canvas; start it at the anchor instead.
			text.Move(fyne.NewPos(p.X-size.Height/2, p.Y-size.Height/2))
		} else {
			text.Move(fyne.NewPos(p.X-size.Width/2, p.Y-size.Height/2))
		}
		r.objects = append(r.objects, text)
	}
}

// addLine draws l, splitting it into segments when it is dashed.
func (r *panelCanvasRenderer) addLine(l render.Line, f float32, pt func(x, y float64) fyne.Position) {
	col := HexColor(l.Stroke.Color)
	width := strokeWidth(l.Stroke.Width, f)
	for _, seg := range DashSegments(l.X1, l.Y1, l.X2, l.Y2, l.Stroke.Dash) {
		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = pt(seg[0], seg[1])
		line.Position2 = pt(seg[2], seg[3])
		r.objects = append(r.objects, line)
	}
}

// addGlyph draws the same 24-unit arrow the SVG writer emits.
func (r *panelCanvasRenderer) addGlyph(g render.Glyph, f float32, pt func(x, y float64) fyne.Position) {
	segs := [][4]float64{{5, 12, 19, 12}, {12, 5, 19, 12}, {19, 12, 12, 19}}
	if g.Dir == render.DirDown {
		segs = [][4]float64{{12, 5, 12, 19}, {19, 12, 12, 19}, {12, 19, 5, 12}}
	}
	col := HexColor(g.Color)
	for _, s := range segs {
		line := canvas.NewLine(col)
		line.StrokeWidth = strokeWidth(2, f)
		line.Position1 = pt(g.X+s[0], g.Y+s[1])
		line.Position2 = pt(g.X+s[2], g.Y+s[3])
		r.objects = append(r.objects, line)
	}
}

func strokeWidth(w float64, f float32) float32 {
	sw := float32(w) * f
	if sw < 1 {
		return 1
	}
	return sw
}

// DashSegments splits the line into the "on" parts of the dash pattern. A
// nil or all-zero pattern returns the whole line.
func DashSegments(x1, y1, x2, y2 float64, dash []float64) [][4]float64 {
	whole := [][4]float64{{x1, y1, x2, y2}}
	period := 0.0
	for _, v := range dash {
		period += v
	}
	length := math.Hypot(x2-x1, y2-y1)
	if period <= 0 || length == 0 {
		return whole
	}

	ux, uy := (x2-x1)/length, (y2-y1)/length
	var segs [][4]float64
	pos, i := 0.0, 0
	for pos < length {
		step := dash[i%len(dash)]
		end := math.Min(pos+step, length)
		if i%2 == 0 && end > pos {
			segs = append(segs, [4]float64{x1 + ux*pos, y1 + uy*pos, x1 + ux*end, y1 + uy*end})
		}
		pos = end
		i++
	}
	return segs
}

// HexColor parses "#RRGGBB"; anything else gives opaque black.
func HexColor(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	d := r.pc.drawing
	f := FitScale(d, r.pc.maxWidth, r.pc.maxHeight)
	return fyne.NewSize(float32(d.Width)*f, float32(d.Height)*f)
}

// RenderCabinetSheets creates a scrollable container with the diagrams of
// every cabinet, each fitted into a cellW x cellH box.
func RenderCabinetSheets(sheets []render.CabinetSheet, m model.Material, cellW, cellH float32) fyne.CanvasObject {
	if len(sheets) == 0 {
		return widget.NewLabel("No cabinets to preview.")
	}

	var items []fyne.CanvasObject
	panels := 0
	for _, sheet := range sheets {
		c := sheet.Cabinet.Cabinet
		header := widget.NewLabel(fmt.Sprintf(
			"Cabinet %s: %d × %d × %d mm, %d shelves, %d panels",
			sheet.Cabinet.Ref(), c.Width, c.Height, c.Depth, c.Divisions, len(sheet.Panels),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		var cells []fyne.CanvasObject
		for _, d := range sheet.Drawings {
			caption := widget.NewLabel(d.Title)
			caption.Alignment = fyne.TextAlignCenter
			cells = append(cells, container.NewVBox(caption, container.NewCenter(NewPanelCanvas(d, cellW, cellH))))
		}
		panels += len(sheet.Drawings)

		items = append(items, header, container.NewGridWrap(fyne.NewSize(cellW, cellH+40), cells...), widget.NewSeparator())
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d cabinets, %d panels in %s %s mm",
		len(sheets), panels, model.FormatMM(m.Thickness), m.Type,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
