// Package mesh holds the evaluated 3D mesh snapshot consumed by the boundary
// tracer. Vertices, edges and faces live in flat arenas addressed by integer
// index, with adjacency (link edges, incident faces) maintained on insertion.
package mesh

import (
	"fmt"

	"github.com/piwi3910/laserflat/internal/geom"
)

// Vert is a single mesh vertex.
type Vert struct {
	Co geom.Vec3

	linkEdges []int
}

// LinkEdges returns the indices of all edges incident to the vertex.
func (v *Vert) LinkEdges() []int {
	return v.linkEdges
}

// Edge connects two vertices. Smooth and Seam carry the source flags that
// the tracer repurposes: a non-smooth (sharp) edge is engraved instead of
// cut, and a seam edge opts out of kerf compensation.
type Edge struct {
	V      [2]int
	Smooth bool
	Seam   bool

	faces []int
}

// OtherVert returns the vertex on the far side of the edge from v.
func (e *Edge) OtherVert(v int) int {
	if e.V[0] == v {
		return e.V[1]
	}
	return e.V[0]
}

// IsWire reports whether the edge has no incident faces.
func (e *Edge) IsWire() bool {
	return len(e.faces) == 0
}

// IsBoundary reports whether the edge borders exactly one face.
func (e *Edge) IsBoundary() bool {
	return len(e.faces) == 1
}

// IsManifold reports whether the edge is shared by two faces.
func (e *Edge) IsManifold() bool {
	return len(e.faces) == 2
}

// Faces returns the indices of the faces incident to the edge.
func (e *Edge) Faces() []int {
	return e.faces
}

// Face is a planar polygon over three or more vertices, wound
// counter-clockwise when seen from the front.
type Face struct {
	Verts  []int
	Normal geom.Vec3
}

// Mesh is an indexed triangle-or-polygon mesh in world space.
type Mesh struct {
	Verts []Vert
	Edges []Edge
	Faces []Face

	edgeLookup map[[2]int]int
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{edgeLookup: make(map[[2]int]int)}
}

// AddVert appends a vertex and returns its index.
func (m *Mesh) AddVert(co geom.Vec3) int {
	m.Verts = append(m.Verts, Vert{Co: co})
	return len(m.Verts) - 1
}

// AddEdge returns the edge between a and b, creating it as a wire edge when
// it does not exist yet. New edges default to smooth (cut).
func (m *Mesh) AddEdge(a, b int) int {
	if idx, ok := m.edgeLookup[edgeKey(a, b)]; ok {
		return idx
	}
	idx := len(m.Edges)
	m.Edges = append(m.Edges, Edge{V: [2]int{a, b}, Smooth: true})
	m.edgeLookup[edgeKey(a, b)] = idx
	m.Verts[a].linkEdges = append(m.Verts[a].linkEdges, idx)
	m.Verts[b].linkEdges = append(m.Verts[b].linkEdges, idx)
	return idx
}

// AddFace appends a face over the given vertex indices, creating any missing
// edges and registering face incidence on all of them. The face normal is
// computed with Newell's method, so non-triangular faces are fine as long as
// they are roughly planar.
func (m *Mesh) AddFace(verts ...int) (int, error) {
	if len(verts) < 3 {
		return -1, fmt.Errorf("face needs at least 3 vertices, got %d", len(verts))
	}
	for _, v := range verts {
		if v < 0 || v >= len(m.Verts) {
			return -1, fmt.Errorf("face references unknown vertex %d", v)
		}
	}

	faceIdx := len(m.Faces)
	face := Face{Verts: verts, Normal: m.newellNormal(verts)}
	m.Faces = append(m.Faces, face)

	for i, v := range verts {
		next := verts[(i+1)%len(verts)]
		edgeIdx := m.AddEdge(v, next)
		m.Edges[edgeIdx].faces = append(m.Edges[edgeIdx].faces, faceIdx)
	}
	return faceIdx, nil
}

// FindEdge returns the index of the edge between a and b, or -1.
func (m *Mesh) FindEdge(a, b int) int {
	if idx, ok := m.edgeLookup[edgeKey(a, b)]; ok {
		return idx
	}
	return -1
}

// IsBoundaryVert reports whether the vertex touches at least one
// non-manifold or wire edge.
func (m *Mesh) IsBoundaryVert(v int) bool {
	for _, e := range m.Verts[v].linkEdges {
		if !m.Edges[e].IsManifold() {
			return true
		}
	}
	return false
}

// Scale multiplies all vertex coordinates component-wise, mirroring the
// object scale that the host applies before handing the mesh over.
func (m *Mesh) Scale(s geom.Vec3) {
	for i := range m.Verts {
		co := m.Verts[i].Co
		m.Verts[i].Co = geom.Vec3{X: co.X * s.X, Y: co.Y * s.Y, Z: co.Z * s.Z}
	}
}

// Loop is one face corner: the corner vertex, the face edge leaving it in
// winding order, and the face itself. The face lies to the left of the edge.
type Loop struct {
	Vert int
	Edge int
	Face int
}

// Loops returns every face corner of the mesh, in face order.
func (m *Mesh) Loops() []Loop {
	var loops []Loop
	for fi, f := range m.Faces {
		for i, v := range f.Verts {
			next := f.Verts[(i+1)%len(f.Verts)]
			loops = append(loops, Loop{Vert: v, Edge: m.FindEdge(v, next), Face: fi})
		}
	}
	return loops
}

func (m *Mesh) newellNormal(verts []int) geom.Vec3 {
	var n geom.Vec3
	for i, vi := range verts {
		a := m.Verts[vi].Co
		b := m.Verts[verts[(i+1)%len(verts)]].Co
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalized()
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
