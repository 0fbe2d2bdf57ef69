// Package export writes packed shape layouts to output documents: the SVG
// cut file itself, plus DXF, PDF layout reports, QR part labels and cut-list
// spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo/float"

	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

// ErrNoShapes signals that packing produced zero valid placements. The
// caller must report it and write no file.
var ErrNoShapes = errors.New("no shapes to export")

const (
	nsSodipodi = `xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"`
	nsInkscape = `xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`
)

// edgeColors maps each edge type to its stroke color. Laser controllers key
// their cut/engrave modes off these.
var edgeColors = map[trace.EdgeType]string{
	trace.EdgeCut:     "red",
	trace.EdgeEngrave: "blue",
}

// WriteSVG serializes the packed shapes as a page-structured SVG drawing.
// The model is Y-up while SVG is Y-down, so all Y coordinates are negated
// on the way out. Returns the overall canvas size in whole mm.
func WriteSVG(w io.Writer, shapes []*trace.MeshBoundary, opts model.Options, result pack.Result) (int, int, error) {
	if !result.IsValid() {
		return 0, 0, ErrNoShapes
	}

	pageW := math.Round(opts.MaterialWidth)
	pageH := math.Round(opts.MaterialLength)

	canvas := svg.New(w)
	canvas.Decimals = 3
	viewbox := fmt.Sprintf(`viewBox="%s %s %s %s"`,
		coord(0), coord(-pageH), coord(pageW), coord(pageH))
	canvas.Startunit(pageW, pageH, "mm", viewbox, nsSodipodi, nsInkscape)

	writePageMetadata(canvas, opts, result, pageW, pageH)

	// One layer per page, shapes grouped under their page.
	for page := 0; page < result.NumPages; page++ {
		canvas.Group(
			fmt.Sprintf(`id="page-%d"`, page+1),
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label="Page %d"`, page+1),
		)
		for _, shape := range shapes {
			if shape.PageNum != page || shape.IsEmpty() {
				continue
			}
			writeShape(canvas, shape)
		}
		canvas.Gend()
	}

	if opts.ShapeTable {
		canvas.Group(
			`id="layer-annotations"`,
			`inkscape:groupmode="layer"`,
			`inkscape:label="Annotations"`,
		)
		writeShapeTable(canvas, shapes, opts)
		canvas.Gend()
	}

	canvas.End()

	return int(opts.PageOffset(result.NumPages)), int(opts.MaterialLength), nil
}

// writePageMetadata emits one Inkscape page block per output page, spaced
// apart by the page offset.
func writePageMetadata(canvas *svg.SVG, opts model.Options, result pack.Result, pageW, pageH float64) {
	fmt.Fprintln(canvas.Writer, "<sodipodi:namedview>")
	for page := 0; page < result.NumPages; page++ {
		fmt.Fprintf(canvas.Writer,
			`<inkscape:page id="page%d" x="%s" y="0" width="%s" height="%s" />`+"\n",
			page, coord(opts.PageOffset(page)), coord(pageW), coord(pageH))
	}
	fmt.Fprintln(canvas.Writer, "</sodipodi:namedview>")
}

// writeShape emits one group per shape holding its typed chains, with the
// packer's placement as a single group transform: translate first, then
// rotate.
func writeShape(canvas *svg.SVG, shape *trace.MeshBoundary) {
	transform := fmt.Sprintf(`transform="translate(%s,%s) rotate(%d)"`,
		coord(shape.Translation.X), coord(-shape.Translation.Y), shape.Rotation)
	canvas.Group(fmt.Sprintf(`id="%s"`, shape.Name), transform)

	for i, tp := range shape.PolygonsByType() {
		points := tp.Poly.Points()
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for j, p := range points {
			xs[j] = p.X
			ys[j] = -p.Y
		}

		attrs := []string{
			`fill="none"`,
			fmt.Sprintf(`stroke="%s"`, edgeColors[tp.Type]),
			`stroke-width="0.1mm"`,
			fmt.Sprintf(`id="%s-p%d"`, shape.Name, i),
		}
		if tp.Poly.IsClosed() {
			canvas.Polygon(xs, ys, attrs...)
		} else {
			canvas.Polyline(xs, ys, attrs...)
		}
	}

	canvas.Gend()
}

// Shape table layout. Coordinates are in mm below the page origin, matching
// an annotation layer outside the cut area.
const (
	tableColor      = "#f36926"
	tableBoxTop     = 10.0
	tableLineHeight = 9.0
)

var tableColumns = [4]float64{5, 100, 150, 200}

// writeShapeTable renders one row per shape with its net finished size: the
// bounding box minus one laser width per dimension, so the printed numbers
// match the physical part after the kerf is cut away.
func writeShapeTable(canvas *svg.SVG, shapes []*trace.MeshBoundary, opts model.Options) {
	type row [4]string
	var rows []row
	for _, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		w := shape.AABB().Width() - opts.LaserWidth
		h := shape.AABB().Height() - opts.LaserWidth
		surface := (w / 1000.0) * (h / 1000.0)
		rows = append(rows, row{
			shape.Name,
			fmt.Sprintf("%.0f", w),
			fmt.Sprintf("%.0f", h),
			fmt.Sprintf("%.3f", surface),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	rows = append([]row{{"Shape", "Width (mm)", "Height (mm)", "Surface (m²)"}}, rows...)

	canvas.Gid("laserflat-shape-table")

	boxWidth := tableColumns[len(tableColumns)-1] + tableBoxTop
	for rowIdx, r := range rows {
		y := float64(rowIdx+2) * tableLineHeight

		if rowIdx < len(rows)-1 {
			canvas.Line(0, y+2, boxWidth, y+2,
				fmt.Sprintf(`stroke="%s"`, tableColor), `stroke-width="0.1mm"`)
		}

		weight := "normal"
		if rowIdx == 0 {
			weight = "bold"
		}
		style := fmt.Sprintf(
			`style="font-size:4pt; font-family:&quot;Noto Sans&quot;, sans-serif; font-weight:%s"`,
			weight)

		for colIdx, value := range r {
			attrs := []string{style}
			if colIdx > 0 {
				attrs = append(attrs, `text-anchor="end"`)
			}
			canvas.Text(tableColumns[colIdx], y, value, attrs...)
		}
	}

	canvas.Rect(0, tableBoxTop, boxWidth, (float64(len(rows))+0.5)*tableLineHeight,
		`fill="none"`, fmt.Sprintf(`stroke="%s"`, tableColor), `stroke-width="0.3mm"`)

	canvas.Gend()
}

// coord formats a length attribute value without trailing zeros.
func coord(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	// Trim trailing zeros and a dangling decimal point.
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
