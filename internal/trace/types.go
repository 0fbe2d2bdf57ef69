// Package trace turns a 3D mesh into flat 2D boundary shapes: it applies
// kerf compensation, walks the boundary and wire edges into directed chains,
// projects them to 2D and groups them into per-type polygons.
package trace

import (
	"sort"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/mesh"
)

// EdgeType classifies what the laser does with an edge.
type EdgeType int

const (
	EdgeCut     EdgeType = iota // Cut through the material
	EdgeEngrave                 // Engrave the surface only
)

// EdgeTypes lists all edge types in deterministic output order.
var EdgeTypes = []EdgeType{EdgeCut, EdgeEngrave}

func (t EdgeType) String() string {
	if t == EdgeEngrave {
		return "ENGRAVE"
	}
	return "CUT"
}

// TypeForEdge classifies a mesh edge. Sharp (non-smooth) edges are engraved,
// everything else is cut.
func TypeForEdge(e *mesh.Edge) EdgeType {
	if !e.Smooth {
		return EdgeEngrave
	}
	return EdgeCut
}

// AnnotatedEdge is a directed 3D segment with its edge type. It only lives
// between tracing and flattening.
type AnnotatedEdge struct {
	Start, End geom.Vec3
	Type       EdgeType
}

// Flattened projects the edge to 2D by dropping the given axis.
func (e AnnotatedEdge) Flattened(dropAxis int) FlattenedEdge {
	return FlattenedEdge{
		Start: e.Start.Drop(dropAxis),
		End:   e.End.Drop(dropAxis),
		Type:  e.Type,
	}
}

// AnnotatedMesh is one traced chain of 3D edges. For connected edges, the
// end of edge N equals the start of edge N+1.
type AnnotatedMesh struct {
	Edges []AnnotatedEdge
}

// Flattened projects every edge of the chain to 2D.
func (m *AnnotatedMesh) Flattened(dropAxis int) *FlattenedMesh {
	flat := &FlattenedMesh{Edges: make([]FlattenedEdge, 0, len(m.Edges))}
	for _, e := range m.Edges {
		flat.Edges = append(flat.Edges, e.Flattened(dropAxis))
	}
	return flat
}

// FlattenedEdge is a directed 2D segment with its edge type.
type FlattenedEdge struct {
	Start, End geom.Vec2
	Type       EdgeType
}

// Follows reports whether this edge continues the given edge: same type and
// its start coincides exactly with the other edge's end. Coordinates come
// from the same flattening pass, so exact float comparison is intended.
func (e FlattenedEdge) Follows(prev FlattenedEdge) bool {
	return e.Type == prev.Type && prev.End == e.Start
}

func (e FlattenedEdge) translated(offset geom.Vec2) FlattenedEdge {
	e.Start = e.Start.Add(offset)
	e.End = e.End.Add(offset)
	return e
}

// FlattenedMesh is an ordered sequence of 2D edges, either one chain or the
// concatenation of several traced chains.
type FlattenedMesh struct {
	Edges []FlattenedEdge
}

// IsClosed reports whether the chain loops back onto its first point.
func (m *FlattenedMesh) IsClosed() bool {
	if len(m.Edges) == 0 {
		return false
	}
	return m.Edges[0].Start == m.Edges[len(m.Edges)-1].End
}

// Points returns the polyline vertices of the chain. Consecutive duplicate
// points are merged, and for a closed chain the seam point appears only
// once.
func (m *FlattenedMesh) Points() []geom.Vec2 {
	var points []geom.Vec2
	havePrev := false
	var prev geom.Vec2
	for _, e := range m.Edges {
		if !havePrev || e.Start != prev {
			points = append(points, e.Start)
		}
		points = append(points, e.End)
		prev = e.End
		havePrev = true
	}
	if m.IsClosed() && len(points) > 1 {
		points = points[:len(points)-1]
	}
	return points
}

// Extend appends all edges of the other mesh.
func (m *FlattenedMesh) Extend(other *FlattenedMesh) {
	m.Edges = append(m.Edges, other.Edges...)
}

// Append adds a single edge to the chain.
func (m *FlattenedMesh) Append(e FlattenedEdge) {
	m.Edges = append(m.Edges, e)
}

// AABB returns the bounding box over all edge endpoints.
func (m *FlattenedMesh) AABB() geom.AABB {
	box := geom.NewAABB()
	for _, e := range m.Edges {
		box.Extend(e.Start)
		box.Extend(e.End)
	}
	return box
}

// Translate shifts all edges by the given offset.
func (m *FlattenedMesh) Translate(offset geom.Vec2) {
	for i := range m.Edges {
		m.Edges[i] = m.Edges[i].translated(offset)
	}
}

// MoveToOrigin translates the mesh so its bounding-box minimum corner is at
// the origin.
func (m *FlattenedMesh) MoveToOrigin() {
	min := m.AABB().MinPoint()
	m.Translate(geom.Vec2{X: -min.X, Y: -min.Y})
}

// Split partitions the edges by type and, within each type, greedily groups
// them into maximal continuous chains. Each edge goes to the first existing
// chain it can continue, with the currently longest chains tried first so
// disjoint simultaneous chains fragment as little as possible.
func (m *FlattenedMesh) Split() map[EdgeType][]*FlattenedMesh {
	perType := make(map[EdgeType][]*FlattenedMesh)

	for _, edge := range m.Edges {
		chains := perType[edge.Type]

		order := make([]int, len(chains))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return len(chains[order[i]].Edges) > len(chains[order[j]].Edges)
		})

		var target *FlattenedMesh
		for _, idx := range order {
			chain := chains[idx]
			if edge.Follows(chain.Edges[len(chain.Edges)-1]) {
				target = chain
				break
			}
		}
		if target == nil {
			target = &FlattenedMesh{}
			perType[edge.Type] = append(perType[edge.Type], target)
		}
		target.Append(edge)
	}

	return perType
}
