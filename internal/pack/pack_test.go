package pack

import (
	"math"
	"testing"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rectShape builds a w x h rectangular cut boundary at the origin.
func rectShape(name string, w, h float64) *trace.MeshBoundary {
	chain := &trace.FlattenedMesh{Edges: []trace.FlattenedEdge{
		{Start: geom.Vec2{X: 0, Y: 0}, End: geom.Vec2{X: w, Y: 0}, Type: trace.EdgeCut},
		{Start: geom.Vec2{X: w, Y: 0}, End: geom.Vec2{X: w, Y: h}, Type: trace.EdgeCut},
		{Start: geom.Vec2{X: w, Y: h}, End: geom.Vec2{X: 0, Y: h}, Type: trace.EdgeCut},
		{Start: geom.Vec2{X: 0, Y: h}, End: geom.Vec2{X: 0, Y: 0}, Type: trace.EdgeCut},
	}}
	return trace.NewMeshBoundary(name, chain.Split())
}

func packOptions(materialW, materialL float64) model.Options {
	return model.Options{
		MaterialWidth:  materialW,
		MaterialLength: materialL,
		PackSort:       model.SortNone,
	}
}

func TestPack_EmptyInputIsInvalid(t *testing.T) {
	result, err := Pack(nil, packOptions(2000, 2000))
	require.NoError(t, err)

	assert.False(t, result.IsValid(), "no shapes packed means no output")
	assert.Equal(t, 0, result.NumPages)
}

func TestPack_SingleSquare(t *testing.T) {
	shape := rectShape("square", 1000, 1000)

	result, err := Pack([]*trace.MeshBoundary{shape}, packOptions(2000, 2000))
	require.NoError(t, err)

	require.True(t, result.IsValid())
	assert.Equal(t, 1, result.NumPages)
	assert.Equal(t, 1_000_000.0, result.CoveredArea)
	assert.Equal(t, 0, result.WastedSpace(), "canvas bounds hug the single shape")

	assert.Equal(t, 0, shape.Rotation)
	assert.Equal(t, 0, shape.PageNum)
	assert.Equal(t, geom.Vec2{X: 0, Y: 0}, shape.Translation)
}

func TestPack_RotatesWhenOnlyRotatedFits(t *testing.T) {
	shape := rectShape("strip", 300, 100)
	opts := packOptions(150, 400)
	opts.PackMayRotate = true

	result, err := Pack([]*trace.MeshBoundary{shape}, opts)
	require.NoError(t, err)

	require.True(t, result.IsValid())
	assert.Equal(t, 90, shape.Rotation)
	assert.Equal(t, 0, shape.PageNum)
	// The rotation pivot compensation shifts Y by the pre-rotation width.
	assert.Equal(t, geom.Vec2{X: 0, Y: 300}, shape.Translation)
}

func TestPack_RotationDisabledLeavesShapeUnplaced(t *testing.T) {
	shape := rectShape("strip", 300, 100)
	opts := packOptions(150, 400)
	opts.PackMayRotate = false

	result, err := Pack([]*trace.MeshBoundary{shape}, opts)
	require.NoError(t, err)
	assert.False(t, result.IsValid())
}

func TestPack_RotatedShapeStaysInsideUsablePage(t *testing.T) {
	shape := rectShape("strip", 300, 100)
	opts := packOptions(160, 420)
	opts.Margin = 5
	opts.PackMayRotate = true

	result, err := Pack([]*trace.MeshBoundary{shape}, opts)
	require.NoError(t, err)
	require.True(t, result.IsValid())
	require.Equal(t, 90, shape.Rotation)

	placed := shape.PlacedAABB()
	assert.GreaterOrEqual(t, placed.MinX, opts.Margin)
	assert.GreaterOrEqual(t, placed.MinY, opts.Margin)
	assert.LessOrEqual(t, placed.MaxX, opts.MaterialWidth-opts.Margin)
	assert.LessOrEqual(t, placed.MaxY, opts.MaterialLength-opts.Margin)
}

func TestPack_OverflowsToSecondPage(t *testing.T) {
	a := rectShape("a", 1000, 1000)
	b := rectShape("b", 1000, 1000)

	result, err := Pack([]*trace.MeshBoundary{a, b}, packOptions(1200, 1200))
	require.NoError(t, err)

	require.True(t, result.IsValid())
	assert.Equal(t, 2, result.NumPages)
	assert.Equal(t, 0, a.PageNum)
	assert.Equal(t, 1, b.PageNum)

	// The second page sits one page offset to the right.
	assert.Equal(t, geom.Vec2{X: 1200, Y: 0}, b.Translation)
	assert.Equal(t, 2200.0, result.CanvasBounds.MaxX)
}

func TestPack_MarginShiftsPlacement(t *testing.T) {
	shape := rectShape("plate", 200, 200)
	opts := packOptions(220, 220)
	opts.Margin = 10

	result, err := Pack([]*trace.MeshBoundary{shape}, opts)
	require.NoError(t, err)

	require.True(t, result.IsValid())
	assert.Equal(t, geom.Vec2{X: 10, Y: 10}, shape.Translation)

	// Containment: the placed shape must lie inside the usable page rect.
	placed := shape.AABB().Translated(shape.Translation)
	assert.GreaterOrEqual(t, placed.MinX, opts.Margin)
	assert.GreaterOrEqual(t, placed.MinY, opts.Margin)
	assert.LessOrEqual(t, placed.MaxX, opts.MaterialWidth-opts.Margin)
	assert.LessOrEqual(t, placed.MaxY, opts.MaterialLength-opts.Margin)
}

func TestPack_PaddingCountsAsCoveredArea(t *testing.T) {
	shape := rectShape("chip", 100, 100)
	opts := packOptions(2000, 2000)
	opts.ShapePadding = 5

	result, err := Pack([]*trace.MeshBoundary{shape}, opts)
	require.NoError(t, err)

	// Covered area is the gross padded box, not the net shape.
	assert.Equal(t, 110.0*110.0, result.CoveredArea)
}

func TestPack_AreaSortPlacesLargestFirst(t *testing.T) {
	small := rectShape("small", 100, 100)
	big := rectShape("big", 500, 500)
	opts := packOptions(2000, 2000)
	opts.PackSort = model.SortArea

	result, err := Pack([]*trace.MeshBoundary{small, big}, opts)
	require.NoError(t, err)

	require.True(t, result.IsValid())
	assert.Equal(t, geom.Vec2{X: 0, Y: 0}, big.Translation, "largest shape claims the corner")
	assert.NotEqual(t, geom.Vec2{X: 0, Y: 0}, small.Translation)
}

func TestPack_OversizedShapeIsSkipped(t *testing.T) {
	giant := rectShape("giant", 5000, 5000)
	normal := rectShape("normal", 500, 500)

	result, err := Pack([]*trace.MeshBoundary{giant, normal}, packOptions(2000, 2000))
	require.NoError(t, err)

	require.True(t, result.IsValid(), "the fitting shape still packs")
	assert.Equal(t, 1, result.NumPages)
	assert.Equal(t, 500.0*500.0, result.CoveredArea)
}

func TestPack_NonFiniteMaterialIsFatal(t *testing.T) {
	shape := rectShape("square", 100, 100)
	opts := packOptions(math.Inf(1), 2000)

	_, err := Pack([]*trace.MeshBoundary{shape}, opts)
	assert.Error(t, err)
}

func TestPack_UnknownSortMethodIsFatal(t *testing.T) {
	shape := rectShape("square", 100, 100)
	opts := packOptions(2000, 2000)
	opts.PackSort = "bogus"

	_, err := Pack([]*trace.MeshBoundary{shape}, opts)
	assert.Error(t, err)
}

func TestPack_MarginLargerThanMaterialIsFatal(t *testing.T) {
	shape := rectShape("square", 100, 100)
	opts := packOptions(100, 100)
	opts.Margin = 60

	_, err := Pack([]*trace.MeshBoundary{shape}, opts)
	assert.Error(t, err)
}
