package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/project"
)

// outline is a closed 2D contour without a repeated closing point.
type outline []geom.Vec2

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start geom.Vec2
	end   geom.Vec2
}

// ImportDXF imports objects from a DXF file. Each closed shape (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs/ARCs) becomes a flat scene object
// whose outline is traced as a cut contour.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	objNum := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			seg := segment{
				start: geom.Vec2{X: e.Start[0], Y: e.Start[1]},
				end:   geom.Vec2{X: e.End[0], Y: e.End[1]},
			}
			segments = append(segments, seg)

		default:
			// Unsupported entity types are silently skipped
		}
	}

	// Chain loose segments (LINEs and ARCs) into closed outlines
	for _, co := range chainSegments(segments, 0.01) {
		if len(co) >= 3 {
			outlines = append(outlines, co)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for _, o := range outlines {
		objNum++
		normalized := normalizeOutline(o)
		max := outlineMax(normalized)

		if max.X < 0.01 || max.Y < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", max.X, max.Y))
			continue
		}

		result.Objects = append(result.Objects,
			outlineObject(fmt.Sprintf("DXF Part %d", objNum), normalized))
	}

	return result
}

// outlineObject builds a flat scene object whose single face follows the
// outline in the XY plane.
func outlineObject(name string, o outline) project.Object {
	obj := project.NewObject(name)
	obj.Vertices = make([]geom.Vec3, len(o))
	face := make([]int, len(o))
	for i, p := range o {
		obj.Vertices[i] = geom.Vec3{X: p.X, Y: p.Y, Z: 0}
		face[i] = i
	}
	obj.Faces = [][]int{face}
	return obj
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	var o outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geom.Vec2{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			// This vertex has a bulge: interpolate an arc to the next vertex
			nextIdx := (i + 1) % len(lw.Vertices)
			next := geom.Vec2{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// Add all but the last point (next vertex will be added naturally)
			o = append(o, arcPts[:len(arcPts)-1]...)
		} else {
			o = append(o, current)
		}
	}

	return o
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 geom.Vec2, bulge float64, numSegments int) []geom.Vec2 {
	// Chord midpoint and length
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []geom.Vec2{p1, p2}
	}

	// Sagitta and radius
	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center of the arc, perpendicular from the chord midpoint
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)

	if bulge < 0 {
		// Clockwise arc
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		// Counter-clockwise arc
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]geom.Vec2, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, geom.Vec2{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) outline {
	o := make(outline, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		o[i] = geom.Vec2{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return o
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []geom.Vec2 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startDeg := a.Angle[0]
	endDeg := a.Angle[1]

	startRad := startDeg * math.Pi / 180
	endRad := endDeg * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geom.Vec2, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geom.Vec2{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []geom.Vec2) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for {
		// Find the first unused segment
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []geom.Vec2{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Check if the chain is closed
		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			// Remove the duplicate closing point
			chain = chain[:len(chain)-1]
		}

		if len(chain) >= 3 {
			outlines = append(outlines, outline(chain))
		}
	}

	// Sort outlines by area (largest first) for consistent ordering
	sort.Slice(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b geom.Vec2, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// normalizeOutline translates the outline so its bounding box starts at (0, 0).
func normalizeOutline(o outline) outline {
	if len(o) == 0 {
		return o
	}
	min := geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
	}
	out := make(outline, len(o))
	for i, p := range o {
		out[i] = geom.Vec2{X: p.X - min.X, Y: p.Y - min.Y}
	}
	return out
}

// outlineMax returns the upper corner of the outline's bounding box.
func outlineMax(o outline) geom.Vec2 {
	max := geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range o {
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return max
}
