package export

import (
	"io"

	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/project"
	"github.com/piwi3910/laserflat/internal/trace"
)

// Collect flattens every included object of the project and packs the
// resulting shapes onto material pages. Non-fatal tracing warnings are
// returned alongside the result.
func Collect(p *project.Project) ([]*trace.MeshBoundary, pack.Result, []string, error) {
	shapes, warnings, err := p.Flatten()
	if err != nil {
		return nil, pack.Result{}, warnings, err
	}
	result, err := pack.Pack(shapes, p.Options)
	if err != nil {
		return nil, pack.Result{}, warnings, err
	}
	return shapes, result, warnings, nil
}

// Write runs the full pipeline and writes the SVG document to w. It returns
// the overall canvas size in whole mm and any tracing warnings.
func Write(w io.Writer, p *project.Project) (int, int, []string, error) {
	shapes, result, warnings, err := Collect(p)
	if err != nil {
		return 0, 0, warnings, err
	}
	width, height, err := WriteSVG(w, shapes, p.Options, result)
	return width, height, warnings, err
}
