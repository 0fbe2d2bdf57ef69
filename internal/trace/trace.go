package trace

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/mesh"
	"github.com/piwi3910/laserflat/internal/model"
)

// FlattenMesh converts a mesh into the 2D boundary of one exportable shape:
// kerf compensation, boundary tracing, flattening along the thinnest axis,
// and splitting into per-type chains. Non-fatal oddities in the mesh are
// returned as warnings.
//
// The mesh is modified in place by the kerf pass; callers hand over a
// throwaway evaluated snapshot.
func FlattenMesh(m *mesh.Mesh, name string, opts model.Options) (*MeshBoundary, []string, error) {
	dropAxis := axisToDrop(m)

	if err := AddKerf(m, opts.LaserWidth, name); err != nil {
		return nil, nil, err
	}

	chains, warnings := boundaryChains(m)

	combined := &FlattenedMesh{}
	for _, chain := range chains {
		combined.Extend(chain.Flattened(dropAxis))
	}
	combined.MoveToOrigin()

	return NewMeshBoundary(name, combined.Split()), warnings, nil
}

// axisToDrop picks the axis with the smallest extent. Cut pieces are thin
// and roughly planar, so dropping the thinnest dimension keeps the 2D shape.
func axisToDrop(m *mesh.Mesh) int {
	min := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := range m.Verts {
		co := m.Verts[i].Co
		min.X = math.Min(min.X, co.X)
		min.Y = math.Min(min.Y, co.Y)
		min.Z = math.Min(min.Z, co.Z)
		max.X = math.Max(max.X, co.X)
		max.Y = math.Max(max.Y, co.Y)
		max.Z = math.Max(max.Z, co.Z)
	}

	dim := max.Sub(min)
	axis := 0
	smallest := dim.X
	if dim.Y < smallest {
		axis, smallest = 1, dim.Y
	}
	if dim.Z < smallest {
		axis = 2
	}
	return axis
}

// isExportEdge reports whether the edge belongs in the output: edges on a
// mesh opening (one face) or free-floating wire edges.
func isExportEdge(e *mesh.Edge) bool {
	return e.IsBoundary() || e.IsWire()
}

// boundaryChains decomposes the export-edge subgraph into directed chains.
// Along mesh boundaries every vertex has degree at most 2, so this is a
// simple Eulerian-trail walk per component. Open chains are walked from an
// endpoint; closed loops start anywhere.
func boundaryChains(m *mesh.Mesh) ([]*AnnotatedMesh, []string) {
	exportEdges := newIndexSet(len(m.Edges))
	for i := range m.Edges {
		if isExportEdge(&m.Edges[i]) {
			exportEdges.add(i)
		}
	}

	startEdges, warnings := startEdgeSet(m, exportEdges)

	findNextEdge := func(vert int) int {
		for _, e := range m.Verts[vert].LinkEdges() {
			if exportEdges.contains(e) {
				return e
			}
		}
		return -1
	}

	var chains []*AnnotatedMesh
	for !exportEdges.empty() {
		var edgeIdx int
		if !startEdges.empty() {
			edgeIdx = startEdges.pop()
			exportEdges.remove(edgeIdx)
		} else {
			edgeIdx = exportEdges.pop()
		}

		e := &m.Edges[edgeIdx]

		// Walk outward-to-outward: when one endpoint dangles, start there.
		var start, visit int
		if len(m.Verts[e.V[0]].LinkEdges()) == 1 {
			start, visit = e.V[0], e.V[1]
		} else {
			visit, start = e.V[0], e.V[1]
		}

		chain := &AnnotatedMesh{}
		chain.Edges = append(chain.Edges, AnnotatedEdge{
			Start: m.Verts[start].Co,
			End:   m.Verts[visit].Co,
			Type:  TypeForEdge(e),
		})

		for visit != start {
			next := findNextEdge(visit)
			if next < 0 {
				break
			}
			exportEdges.remove(next)
			startEdges.remove(next)

			ne := &m.Edges[next]
			far := ne.OtherVert(visit)
			chain.Edges = append(chain.Edges, AnnotatedEdge{
				Start: m.Verts[visit].Co,
				End:   m.Verts[far].Co,
				Type:  TypeForEdge(ne),
			})
			visit = far
		}

		chains = append(chains, chain)
	}

	return chains, warnings
}

// startEdgeSet collects chain endpoints: edges whose vertex has exactly one
// incident edge in total. Starting from these keeps open chains from being
// discovered mid-chain. Start edges that are not export edges are dropped
// with a warning.
func startEdgeSet(m *mesh.Mesh, exportEdges *indexSet) (*indexSet, []string) {
	starts := newIndexSet(len(m.Edges))
	for v := range m.Verts {
		link := m.Verts[v].LinkEdges()
		if len(link) != 1 {
			continue
		}
		starts.add(link[0])
	}

	var warnings []string
	var nonExport []int
	for _, e := range starts.members() {
		if !exportEdges.contains(e) {
			nonExport = append(nonExport, e)
			starts.remove(e)
		}
	}
	if len(nonExport) > 0 {
		sort.Ints(nonExport)
		warnings = append(warnings, fmt.Sprintf("non-export start edges: %v", nonExport))
	}
	return starts, warnings
}

// indexSet is a worklist of edge indices with deterministic lowest-first
// popping.
type indexSet struct {
	present []bool
	count   int
}

func newIndexSet(capacity int) *indexSet {
	return &indexSet{present: make([]bool, capacity)}
}

func (s *indexSet) add(i int) {
	if !s.present[i] {
		s.present[i] = true
		s.count++
	}
}

func (s *indexSet) remove(i int) {
	if s.present[i] {
		s.present[i] = false
		s.count--
	}
}

func (s *indexSet) contains(i int) bool {
	return s.present[i]
}

func (s *indexSet) empty() bool {
	return s.count == 0
}

// pop removes and returns the lowest member. The set must not be empty.
func (s *indexSet) pop() int {
	for i, p := range s.present {
		if p {
			s.remove(i)
			return i
		}
	}
	panic("pop from empty indexSet")
}

func (s *indexSet) members() []int {
	out := make([]int, 0, s.count)
	for i, p := range s.present {
		if p {
			out = append(out, i)
		}
	}
	return out
}
