package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

// DXF layer names, one per edge type.
var dxfLayers = map[trace.EdgeType]string{
	trace.EdgeCut:     "CUT",
	trace.EdgeEngrave: "ENGRAVE",
}

var dxfLayerColors = map[trace.EdgeType]dxfcolor.ColorNumber{
	trace.EdgeCut:     dxfcolor.Red,
	trace.EdgeEngrave: dxfcolor.Blue,
}

// ExportDXF writes the packed layout as a DXF drawing with one LWPOLYLINE
// per chain, on a CUT or ENGRAVE layer. Coordinates are the final placed
// positions in mm, Y-up, so the drawing matches the SVG output mirrored
// back into model space.
func ExportDXF(path string, shapes []*trace.MeshBoundary, result pack.Result) error {
	if !result.IsValid() {
		return ErrNoShapes
	}

	drawing := dxf.NewDrawing()
	for _, edgeType := range trace.EdgeTypes {
		if _, err := drawing.AddLayer(dxfLayers[edgeType], dxfLayerColors[edgeType], table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", dxfLayers[edgeType], err)
		}
	}

	for _, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		for _, tp := range shape.PolygonsByType() {
			if err := drawing.ChangeLayer(dxfLayers[tp.Type]); err != nil {
				return fmt.Errorf("failed to switch layer: %w", err)
			}

			points := tp.Poly.Points()
			vertices := make([][]float64, len(points))
			for i, p := range points {
				placed := shape.TransformPoint(p)
				vertices[i] = []float64{placed.X, placed.Y}
			}

			if _, err := drawing.LwPolyline(tp.Poly.IsClosed(), vertices...); err != nil {
				return fmt.Errorf("failed to write chain of %q: %w", shape.Name, err)
			}
		}
	}

	return drawing.SaveAs(path)
}
