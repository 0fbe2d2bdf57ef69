package trace

import (
	"fmt"
	"math"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/mesh"
)

// AnalysisError is a fatal geometric invariant violation in a source object.
// It aborts the export of that object.
type AnalysisError struct {
	Object string
	Msg    string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Object, e.Msg)
}

const tangentTolerance = 1e-6

// AddKerf displaces boundary vertices outward by half the laser width so the
// finished part matches the drawn size after the laser has eaten its kerf.
// Edges marked as seam are skipped.
//
// The pass first accumulates all per-vertex offset directions and only then
// applies them; adjusting positions while tangents are still being computed
// would corrupt later tangents.
func AddKerf(m *mesh.Mesh, laserWidth float64, objectName string) error {
	// One outward in-plane tangent per qualifying boundary edge.
	edgeTangents := make(map[int]geom.Vec3)

	for _, l := range m.Loops() {
		if !m.IsBoundaryVert(l.Vert) {
			continue
		}
		e := &m.Edges[l.Edge]
		if e.IsManifold() || e.IsWire() {
			continue
		}
		if e.Seam { // Seams opt out of kerf compensation.
			continue
		}

		// The face lies to the left of the loop, so edge direction cross
		// face normal points out of the shape, in its plane.
		v := m.Verts[l.Vert].Co
		other := m.Verts[e.OtherVert(l.Vert)].Co
		loopVec := other.Sub(v).Normalized()
		tangent := loopVec.Cross(m.Faces[l.Face].Normal).Normalized()
		if math.Abs(tangent.Length()-1.0) > tangentTolerance {
			return &AnalysisError{
				Object: objectName,
				Msg:    fmt.Sprintf("loop tangent is not unit length: %+v", tangent),
			}
		}

		if _, seen := edgeTangents[l.Edge]; seen {
			// Every qualifying edge has exactly one qualifying loop; a second
			// visit means the mesh adjacency is broken.
			return fmt.Errorf("internal: edge %d produced more than one kerf tangent", l.Edge)
		}
		edgeTangents[l.Edge] = tangent
	}

	// Accumulate directions per vertex, then displace. Clamping per component
	// stops two parallel tangents from pushing a vertex out twice as far.
	directions := make(map[int]geom.Vec3)
	for edgeIdx, tangent := range edgeTangents {
		e := &m.Edges[edgeIdx]
		for _, v := range e.V {
			directions[v] = directions[v].Add(tangent)
		}
	}

	halfKerf := laserWidth / 2
	for v, dir := range directions {
		m.Verts[v].Co = m.Verts[v].Co.Add(dir.Clamped().Scale(halfKerf))
	}
	return nil
}
