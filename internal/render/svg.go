package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// WriteSVG writes d as a standalone SVG document. The viewBox matches the
// canvas size and all shapes live in a group translated by the margin.
func WriteSVG(w io.Writer, d Drawing) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Startview(d.Width, d.Height, 0, 0, d.Width, d.Height)
	canvas.Title(d.Title)
	canvas.Translate(d.Margin, d.Margin)

	canvas.Gid("outline")
	o := d.Outline
	canvas.Rect(o.X, o.Y, o.W, o.H, "fill:none;"+strokeStyle(o.Stroke))
	canvas.Gend()

	canvas.Gid("banding")
	for _, l := range d.Markers {
		writeLine(canvas, l)
	}
	canvas.Gend()

	canvas.Gid("direction")
	for _, g := range d.Glyphs {
		writeGlyph(canvas, g)
	}
	canvas.Gend()

	canvas.Gid("dimensions")
	for _, lb := range d.Labels {
		style := fmt.Sprintf("text-anchor:middle;fill:%s;font-size:%spx", lb.Color, num(lb.Size))
		if lb.Rotate != 0 {
			rot := fmt.Sprintf(`transform="rotate(%s,%s,%s)"`, num(lb.Rotate), num(lb.X), num(lb.Y))
			canvas.Text(lb.X, lb.Y, lb.Text, style, rot)
			continue
		}
		canvas.Text(lb.X, lb.Y, lb.Text, style)
	}
	canvas.Gend()

	canvas.Gid("kerf")
	for _, l := range d.KerfLines {
		writeLine(canvas, l)
	}
	canvas.Gend()

	canvas.Gend() // translate
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("failed to write svg for %s: %w", d.PanelID, ew.err)
	}
	return nil
}

// SVGBytes renders d into memory.
func SVGBytes(d Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLine(canvas *svg.SVG, l Line) {
	canvas.Line(l.X1, l.Y1, l.X2, l.Y2, strokeStyle(l.Stroke))
}

// writeGlyph draws a 24-unit arrow icon with its box starting at (g.X, g.Y).
func writeGlyph(canvas *svg.SVG, g Glyph) {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2;stroke-linecap:round;stroke-linejoin:round", g.Color)
	canvas.Translate(g.X, g.Y)
	switch g.Dir {
	case DirDown:
		canvas.Line(12, 5, 12, 19, style)
		canvas.Polyline([]float64{19, 12, 5}, []float64{12, 19, 12}, style)
	default:
		canvas.Line(5, 12, 19, 12, style)
		canvas.Polyline([]float64{12, 19, 12}, []float64{5, 12, 19}, style)
	}
	canvas.Gend()
}

func strokeStyle(s Stroke) string {
	style := fmt.Sprintf("stroke:%s;stroke-width:%s", s.Color, num(s.Width))
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, v := range s.Dash {
			parts[i] = num(v)
		}
		style += ";stroke-dasharray:" + strings.Join(parts, ",")
	}
	return style
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errWriter keeps the first write error so the svg calls can stay unchecked.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
