// Package project holds the persistent scene format: objects with their mesh
// data and edge marks, plus the export options and machine settings, all
// serialized as one JSON document. It also keeps the application config and
// preset stores under the user's config directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/mesh"
	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/trace"
)

// FormatVersion is written into every saved project file.
const FormatVersion = "1.0.0"

// Object is one mesh in the scene. Faces index into Vertices; WireEdges are
// edges without any face, traced as free-standing polylines. SharpEdges
// become engrave chains, SeamEdges are excluded from kerf compensation.
type Object struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Vertices []geom.Vec3 `json:"vertices"`
	Faces    [][]int     `json:"faces,omitempty"`

	WireEdges  [][2]int `json:"wire_edges,omitempty"`
	SharpEdges [][2]int `json:"sharp_edges,omitempty"`
	SeamEdges  [][2]int `json:"seam_edges,omitempty"`

	// Scale is a uniform factor applied to all vertices, 1 when omitted.
	Scale   float64 `json:"scale,omitempty"`
	Exclude bool    `json:"exclude,omitempty"`
}

// Project is the top-level document.
type Project struct {
	Version string              `json:"version"`
	Name    string              `json:"name"`
	Options model.Options       `json:"options"`
	Laser   model.LaserSettings `json:"laser"`
	Objects []Object            `json:"objects"`
}

// New returns an empty project with default options.
func New(name string) *Project {
	return &Project{
		Version: FormatVersion,
		Name:    name,
		Options: model.DefaultOptions(),
		Laser:   model.DefaultLaserSettings(),
	}
}

// NewObject returns an object with a fresh short id, the way part ids are
// shown in the shape table and the SVG groups.
func NewObject(name string) Object {
	return Object{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Scale: 1,
	}
}

// AddObject appends an object to the scene.
func (p *Project) AddObject(o Object) {
	p.Objects = append(p.Objects, o)
}

// BuildMesh constructs the object's mesh, applies the scale factor and the
// edge marks. Mark pairs referencing edges that do not exist on any face are
// created as wire edges for sharp marks and rejected for seams.
func (o Object) BuildMesh() (*mesh.Mesh, error) {
	m := mesh.New()

	for _, co := range o.Vertices {
		m.AddVert(co)
	}

	for fi, face := range o.Faces {
		if _, err := m.AddFace(face...); err != nil {
			return nil, fmt.Errorf("object %q face %d: %w", o.Name, fi, err)
		}
	}

	for _, pair := range o.WireEdges {
		if err := o.checkPair(pair); err != nil {
			return nil, err
		}
		m.AddEdge(pair[0], pair[1])
	}

	for _, pair := range o.SharpEdges {
		if err := o.checkPair(pair); err != nil {
			return nil, err
		}
		idx := m.AddEdge(pair[0], pair[1])
		m.Edges[idx].Smooth = false
	}

	for _, pair := range o.SeamEdges {
		if err := o.checkPair(pair); err != nil {
			return nil, err
		}
		idx := m.FindEdge(pair[0], pair[1])
		if idx < 0 {
			return nil, fmt.Errorf("object %q: seam mark on nonexistent edge (%d, %d)", o.Name, pair[0], pair[1])
		}
		m.Edges[idx].Seam = true
	}

	if o.Scale != 0 && o.Scale != 1 {
		m.Scale(geom.Vec3{X: o.Scale, Y: o.Scale, Z: o.Scale})
	}

	return m, nil
}

func (o Object) checkPair(pair [2]int) error {
	for _, v := range pair {
		if v < 0 || v >= len(o.Vertices) {
			return fmt.Errorf("object %q: edge mark references unknown vertex %d", o.Name, v)
		}
	}
	return nil
}

// Flatten traces every included object into a placed-shape candidate.
// Warnings from individual objects are collected, prefixed with the object
// name; a hard analysis failure aborts the whole run.
func (p *Project) Flatten() ([]*trace.MeshBoundary, []string, error) {
	var shapes []*trace.MeshBoundary
	var warnings []string

	for _, o := range p.Objects {
		if o.Exclude {
			continue
		}

		m, err := o.BuildMesh()
		if err != nil {
			return nil, warnings, err
		}

		shape, objWarnings, err := trace.FlattenMesh(m, o.Name, p.Options)
		if err != nil {
			return nil, warnings, err
		}
		for _, w := range objWarnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", o.Name, w))
		}
		shapes = append(shapes, shape)
	}

	return shapes, warnings, nil
}

// Save writes the project to the given path as indented JSON, creating any
// missing parent directories.
func Save(path string, p *Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	p.Version = FormatVersion
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path. Missing options fall back to the
// defaults so older files keep working.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := New("")
	p.Version = ""
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("invalid project file: missing version field")
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := p.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project options: %w", err)
	}
	return p, nil
}
