package render

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CabinetCut/internal/model"
)

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	ViewBox string   `xml:"viewBox,attr"`
	Title   string   `xml:"title"`
	Root    struct {
		Transform string     `xml:"transform,attr"`
		Groups    []svgGroup `xml:"g"`
	} `xml:"g"`
}

type svgGroup struct {
	ID    string     `xml:"id,attr"`
	Rects []svgRect  `xml:"rect"`
	Lines []svgLine  `xml:"line"`
	Texts []svgText  `xml:"text"`
	Icons []svgGroup `xml:"g"`
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Style  string `xml:"style,attr"`
}

type svgLine struct {
	X1    string `xml:"x1,attr"`
	Y1    string `xml:"y1,attr"`
	X2    string `xml:"x2,attr"`
	Y2    string `xml:"y2,attr"`
	Style string `xml:"style,attr"`
}

type svgText struct {
	Transform string `xml:"transform,attr"`
	Style     string `xml:"style,attr"`
	Body      string `xml:",chardata"`
}

func parseSVG(t *testing.T, d Drawing) svgDoc {
	t.Helper()
	data, err := SVGBytes(d)
	require.NoError(t, err)

	var doc svgDoc
	require.NoError(t, xml.Unmarshal(data, &doc), string(data))
	return doc
}

func (doc svgDoc) group(t *testing.T, id string) svgGroup {
	t.Helper()
	for _, g := range doc.Root.Groups {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("group %q not found", id)
	return svgGroup{}
}

func parseNum(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	require.NoError(t, err, s)
	return v
}

func TestWriteSVGStructure(t *testing.T) {
	p := panelByID(t, referencePanels(), "C1-L1")
	doc := parseSVG(t, RenderPanel(p, testMaterial, Scale))

	vb := strings.Fields(doc.ViewBox)
	require.Len(t, vb, 4)
	assert.InDelta(t, 0, parseNum(t, vb[0]), 0.01)
	assert.InDelta(t, 0, parseNum(t, vb[1]), 0.01)
	assert.InDelta(t, 560*Scale+100, parseNum(t, vb[2]), 0.01)
	assert.InDelta(t, 720*Scale+100, parseNum(t, vb[3]), 0.01)

	assert.Equal(t, "C1-L1 - Left Side", doc.Title)
	assert.Contains(t, strings.ReplaceAll(doc.Root.Transform, " ", ""), "translate(50")

	outline := doc.group(t, "outline")
	require.Len(t, outline.Rects, 1)
	assert.InDelta(t, 84.0, parseNum(t, outline.Rects[0].Width), 0.01)
	assert.InDelta(t, 108.0, parseNum(t, outline.Rects[0].Height), 0.01)
	assert.Contains(t, outline.Rects[0].Style, "fill:none")
	assert.Contains(t, outline.Rects[0].Style, "stroke:#CCCCCC")
	assert.Contains(t, outline.Rects[0].Style, "stroke-width:2")
}

func TestWriteSVGBandingMarkers(t *testing.T) {
	panels := referencePanels()

	side := parseSVG(t, RenderPanel(panelByID(t, panels, "C1-L1"), testMaterial, Scale)).group(t, "banding")
	require.Len(t, side.Lines, 2)
	for _, l := range side.Lines {
		assert.Contains(t, l.Style, "stroke:#4A90E2")
		assert.Contains(t, l.Style, "stroke-width:4")
	}

	door := parseSVG(t, RenderPanel(panelByID(t, panels, "C1-D1"), testMaterial, Scale)).group(t, "banding")
	assert.Empty(t, door.Lines)
}

func TestWriteSVGKerfAndLabels(t *testing.T) {
	p := panelByID(t, referencePanels(), "C1-S1")
	doc := parseSVG(t, RenderPanel(p, testMaterial, Scale))

	kerf := doc.group(t, "kerf")
	require.Len(t, kerf.Lines, 2)
	assert.InDelta(t, -3.2, parseNum(t, kerf.Lines[0].Y1), 0.01)
	assert.InDelta(t, 596*Scale+3.2, parseNum(t, kerf.Lines[1].X1), 0.01)
	assert.Contains(t, kerf.Lines[0].Style, "stroke-dasharray:5,5")

	dims := doc.group(t, "dimensions")
	require.Len(t, dims.Texts, 2)
	assert.Equal(t, "596mm (59.6cm)", strings.TrimSpace(dims.Texts[0].Body))
	assert.Empty(t, dims.Texts[0].Transform)
	assert.Equal(t, "540mm (54.0cm)", strings.TrimSpace(dims.Texts[1].Body))
	assert.Contains(t, dims.Texts[1].Transform, "rotate(90")
	assert.Contains(t, dims.Texts[1].Style, "text-anchor:middle")

	assert.Len(t, doc.group(t, "direction").Icons, 2)
}

func TestWriteSVGNegativeSizeStillWrites(t *testing.T) {
	panels := model.DerivePanels(model.Cabinet{Width: 600, Height: 720, Depth: 15, Divisions: 1}, 1)
	doc := parseSVG(t, RenderPanel(panelByID(t, panels, "C1-S1"), testMaterial, Scale))
	assert.Len(t, doc.group(t, "outline").Rects, 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGPropagatesWriteError(t *testing.T) {
	d := RenderPanel(model.Panel{ID: "C1-L1", Width: 10, Height: 10, Quantity: 1}, testMaterial, Scale)
	err := WriteSVG(failingWriter{}, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "C1-L1")
}
