package trace

import (
	"testing"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edge(t EdgeType, x1, y1, x2, y2 float64) FlattenedEdge {
	return FlattenedEdge{
		Start: geom.Vec2{X: x1, Y: y1},
		End:   geom.Vec2{X: x2, Y: y2},
		Type:  t,
	}
}

// squareChain is a closed unit square of cut edges.
func squareChain() *FlattenedMesh {
	return &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 0, 0, 1, 0),
		edge(EdgeCut, 1, 0, 1, 1),
		edge(EdgeCut, 1, 1, 0, 1),
		edge(EdgeCut, 0, 1, 0, 0),
	}}
}

func TestFollows(t *testing.T) {
	a := edge(EdgeCut, 0, 0, 1, 0)
	b := edge(EdgeCut, 1, 0, 1, 1)
	c := edge(EdgeEngrave, 1, 0, 1, 1)
	d := edge(EdgeCut, 2, 0, 3, 0)

	assert.True(t, b.Follows(a))
	assert.False(t, a.Follows(b))
	assert.False(t, c.Follows(a), "type mismatch breaks continuity")
	assert.False(t, d.Follows(a), "gap breaks continuity")
}

func TestIsClosed(t *testing.T) {
	assert.True(t, squareChain().IsClosed())

	open := &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 0, 0, 1, 0),
		edge(EdgeCut, 1, 0, 1, 1),
	}}
	assert.False(t, open.IsClosed())
	assert.False(t, (&FlattenedMesh{}).IsClosed())
}

func TestPoints_ClosedChainHasNoSeamDuplicate(t *testing.T) {
	points := squareChain().Points()

	require.Len(t, points, 4, "one point per edge, seam not repeated")
	seen := make(map[geom.Vec2]bool)
	for _, p := range points {
		assert.False(t, seen[p], "point %v appears twice", p)
		seen[p] = true
	}
}

func TestPoints_OpenChainKeepsBothEnds(t *testing.T) {
	open := &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 0, 0, 1, 0),
		edge(EdgeCut, 1, 0, 1, 1),
	}}
	points := open.Points()
	require.Len(t, points, 3)
	assert.Equal(t, geom.Vec2{X: 0, Y: 0}, points[0])
	assert.Equal(t, geom.Vec2{X: 1, Y: 1}, points[2])
}

func TestMoveToOrigin(t *testing.T) {
	m := &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 5, 7, 6, 7),
		edge(EdgeCut, 6, 7, 6, 9),
	}}
	m.MoveToOrigin()

	box := m.AABB()
	assert.Equal(t, geom.Vec2{X: 0, Y: 0}, box.MinPoint())
	assert.Equal(t, 1.0, box.Width())
	assert.Equal(t, 2.0, box.Height())
}

func TestSplit_ByTypeAndContinuity(t *testing.T) {
	// A cut square with one engrave line across it and a detached cut
	// segment: expect 2 cut chains and 1 engrave chain.
	m := squareChain()
	m.Append(edge(EdgeEngrave, 0, 0, 1, 1))
	m.Append(edge(EdgeCut, 5, 5, 6, 5))

	split := m.Split()

	require.Len(t, split[EdgeCut], 2)
	require.Len(t, split[EdgeEngrave], 1)
	assert.True(t, split[EdgeCut][0].IsClosed())
	assert.Len(t, split[EdgeCut][0].Edges, 4)
	assert.Len(t, split[EdgeCut][1].Edges, 1)
}

func TestSplit_PrefersLongestChain(t *testing.T) {
	// Two open chains of the same type exist at once; the continuation edge
	// of the longer chain must extend it, not start a third chain.
	m := &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 0, 0, 1, 0),
		edge(EdgeCut, 10, 10, 11, 10), // second, shorter chain
		edge(EdgeCut, 1, 0, 2, 0),     // extends chain one
		edge(EdgeCut, 2, 0, 3, 0),
	}}

	split := m.Split()
	require.Len(t, split[EdgeCut], 2)
	assert.Len(t, split[EdgeCut][0].Edges, 3)
	assert.Len(t, split[EdgeCut][1].Edges, 1)
}

func TestSplit_Idempotent(t *testing.T) {
	m := squareChain()
	m.Append(edge(EdgeEngrave, 0, 0, 1, 1))
	m.Append(edge(EdgeCut, 5, 5, 6, 5))

	first := m.Split()

	// Re-concatenate per type and split again: same partition.
	recombined := &FlattenedMesh{}
	for _, tp := range EdgeTypes {
		for _, chain := range first[tp] {
			recombined.Extend(chain)
		}
	}
	second := recombined.Split()

	for _, tp := range EdgeTypes {
		require.Len(t, second[tp], len(first[tp]), "chain count for %v", tp)
		chainSizes := func(chains []*FlattenedMesh) map[int]int {
			sizes := make(map[int]int)
			for _, c := range chains {
				sizes[len(c.Edges)]++
			}
			return sizes
		}
		assert.Equal(t, chainSizes(first[tp]), chainSizes(second[tp]))
	}
}

func TestTransformInto_NoRotation(t *testing.T) {
	b := NewMeshBoundary("part", squareChain().Split())

	b.TransformInto(geom.Vec2{X: 10, Y: 20}, geom.Vec2{X: 1, Y: 1})
	assert.Equal(t, 0, b.Rotation)
	assert.Equal(t, geom.Vec2{X: 10, Y: 20}, b.Translation)
}

func TestTransformInto_Rotation(t *testing.T) {
	// A 2x1 shape placed into a 1x2 slot must rotate, and the translation
	// must compensate for the rotation pivot by the pre-rotation width.
	wide := &FlattenedMesh{Edges: []FlattenedEdge{
		edge(EdgeCut, 0, 0, 2, 0),
		edge(EdgeCut, 2, 0, 2, 1),
		edge(EdgeCut, 2, 1, 0, 1),
		edge(EdgeCut, 0, 1, 0, 0),
	}}
	b := NewMeshBoundary("part", wide.Split())

	b.TransformInto(geom.Vec2{X: 5, Y: 5}, geom.Vec2{X: 1, Y: 2})
	assert.Equal(t, 90, b.Rotation)
	assert.Equal(t, geom.Vec2{X: 5, Y: 5 + 2}, b.Translation)
}

func TestMeshBoundary_Empty(t *testing.T) {
	b := NewMeshBoundary("void", map[EdgeType][]*FlattenedMesh{})
	assert.True(t, b.IsEmpty())
	assert.False(t, b.AABB().IsValid())
}
