package project

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/trace"
)

// squareObject returns a unit square in the XY plane.
func squareObject(name string) Object {
	o := NewObject(name)
	o.Vertices = []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	o.Faces = [][]int{{0, 1, 2, 3}}
	return o
}

func TestNewObjectHasShortID(t *testing.T) {
	o := NewObject("panel")
	if len(o.ID) != 8 {
		t.Errorf("expected 8 character id, got %q", o.ID)
	}
	if o.Scale != 1 {
		t.Errorf("expected scale 1, got %f", o.Scale)
	}
}

func TestBuildMesh(t *testing.T) {
	o := squareObject("panel")
	m, err := o.BuildMesh()
	if err != nil {
		t.Fatalf("BuildMesh failed: %v", err)
	}
	if len(m.Verts) != 4 || len(m.Edges) != 4 || len(m.Faces) != 1 {
		t.Errorf("unexpected mesh: %d verts, %d edges, %d faces",
			len(m.Verts), len(m.Edges), len(m.Faces))
	}
}

func TestBuildMeshAppliesMarks(t *testing.T) {
	o := squareObject("panel")
	o.SharpEdges = [][2]int{{0, 1}}
	o.SeamEdges = [][2]int{{1, 2}}
	o.WireEdges = [][2]int{{0, 2}}

	m, err := o.BuildMesh()
	if err != nil {
		t.Fatalf("BuildMesh failed: %v", err)
	}

	sharp := m.FindEdge(0, 1)
	if sharp < 0 || m.Edges[sharp].Smooth {
		t.Error("sharp mark was not applied")
	}
	seam := m.FindEdge(1, 2)
	if seam < 0 || !m.Edges[seam].Seam {
		t.Error("seam mark was not applied")
	}
	wire := m.FindEdge(0, 2)
	if wire < 0 || !m.Edges[wire].IsWire() {
		t.Error("wire edge was not created")
	}
}

func TestBuildMeshAppliesScale(t *testing.T) {
	o := squareObject("panel")
	o.Scale = 2

	m, err := o.BuildMesh()
	if err != nil {
		t.Fatalf("BuildMesh failed: %v", err)
	}
	if m.Verts[2].Co.X != 2 || m.Verts[2].Co.Y != 2 {
		t.Errorf("scale not applied: %+v", m.Verts[2].Co)
	}
}

func TestBuildMeshRejectsBadIndices(t *testing.T) {
	o := squareObject("panel")
	o.Faces = [][]int{{0, 1, 9}}
	if _, err := o.BuildMesh(); err == nil {
		t.Fatal("expected error for out of range face index")
	}

	o = squareObject("panel")
	o.SeamEdges = [][2]int{{0, 2}}
	if _, err := o.BuildMesh(); err == nil {
		t.Fatal("expected error for seam on nonexistent edge")
	}
}

func TestFlatten(t *testing.T) {
	p := New("box")
	p.AddObject(squareObject("lid"))
	excluded := squareObject("draft")
	excluded.Exclude = true
	p.AddObject(excluded)

	shapes, warnings, err := p.Flatten()
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}

	shape := shapes[0]
	if shape.Name != "lid" {
		t.Errorf("unexpected shape name %q", shape.Name)
	}
	// The unit square grows by one kerf width per dimension.
	want := 1 + p.Options.LaserWidth
	if math.Abs(shape.AABB().Width()-want) > 1e-9 {
		t.Errorf("shape width %.4f, want %.4f", shape.AABB().Width(), want)
	}
	if len(shape.Polygons[trace.EdgeCut]) != 1 {
		t.Errorf("expected one cut chain, got %d", len(shape.Polygons[trace.EdgeCut]))
	}
}

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.json")

	p := New("box")
	p.Options.LaserWidth = 0.2
	p.Laser.CutPower = 900
	p.AddObject(squareObject("lid"))

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "box" {
		t.Errorf("expected name box, got %s", loaded.Name)
	}
	if loaded.Version != FormatVersion {
		t.Errorf("expected version %s, got %s", FormatVersion, loaded.Version)
	}
	if loaded.Options.LaserWidth != 0.2 {
		t.Errorf("expected LaserWidth 0.2, got %f", loaded.Options.LaserWidth)
	}
	if loaded.Laser.CutPower != 900 {
		t.Errorf("expected CutPower 900, got %d", loaded.Laser.CutPower)
	}
	if len(loaded.Objects) != 1 || len(loaded.Objects[0].Vertices) != 4 {
		t.Errorf("objects did not round trip: %+v", loaded.Objects)
	}
}

func TestLoadProjectMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")

	if err := os.WriteFile(path, []byte(`{"name": "broken"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for project file without version")
	}
}

func TestLoadProjectDerivesNameFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nameless.json")

	if err := Save(path, New("")); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "nameless" {
		t.Errorf("expected name derived from file, got %q", loaded.Name)
	}
}
