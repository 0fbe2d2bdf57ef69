// laserflat - flatten 3D models into laser-ready sheet layouts.
//
// Loads a project file, traces every object's cut and engrave boundaries,
// packs them onto material sheets and writes the layout as SVG. Optional
// flags add DXF, PDF, label sheet, cut list and G-code output.
//
// Build:
//   go build -o laserflat ./cmd/laserflat
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/laserflat/internal/export"
	"github.com/piwi3910/laserflat/internal/gcode"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/project"
	"github.com/piwi3910/laserflat/internal/trace"
)

func main() {
	var (
		svgPath     = flag.String("o", "", "SVG output path (default: project name + .svg)")
		dxfPath     = flag.String("dxf", "", "also write a DXF layout to this path")
		pdfPath     = flag.String("pdf", "", "also write a PDF report to this path")
		labelsPath  = flag.String("labels", "", "also write a QR label sheet to this path")
		cutListPath = flag.String("cutlist", "", "also write an Excel cut list to this path")
		gcodeDir    = flag.String("gcode", "", "also write per-page G-code programs into this directory")
		material    = flag.String("material", "", "material preset name, overrides the project sheet size")
		laserWidth  = flag.Float64("laser-width", 0, "kerf override in mm")
		sheetWidth  = flag.Float64("sheet-width", 0, "sheet width override in mm")
		sheetLength = flag.Float64("sheet-length", 0, "sheet length override in mm")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: laserflat [flags] project.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.Arg(0) == "" {
		flag.Usage()
		os.Exit(2)
	}
	projectPath := flag.Arg(0)

	p, err := project.Load(projectPath)
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}

	if *material != "" {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			log.Fatalf("Failed to load material inventory: %v", err)
		}
		preset := inv.FindMaterial(*material)
		if preset == nil {
			log.Fatalf("Unknown material preset %q", *material)
		}
		preset.ApplyToOptions(&p.Options)
	}
	if *laserWidth > 0 {
		p.Options.LaserWidth = *laserWidth
	}
	if *sheetWidth > 0 {
		p.Options.MaterialWidth = *sheetWidth
	}
	if *sheetLength > 0 {
		p.Options.MaterialLength = *sheetLength
	}

	shapes, result, warnings, err := export.Collect(p)
	if err != nil {
		log.Fatalf("Failed to lay out %s: %v", p.Name, err)
	}
	for _, w := range warnings {
		log.Printf("Warning: %s", w)
	}
	if !result.IsValid() {
		log.Fatalf("Project %s contains no exportable shapes", p.Name)
	}

	out := *svgPath
	if out == "" {
		out = p.Name + ".svg"
	}
	if err := writeSVGFile(out, p, shapes, result); err != nil {
		log.Fatalf("Failed to write SVG: %v", err)
	}
	log.Printf("Wrote %s: %d shapes on %d page(s), %d mm² wasted",
		out, len(shapes), result.NumPages, result.WastedSpace())

	if *dxfPath != "" {
		if err := export.ExportDXF(*dxfPath, shapes, result); err != nil {
			log.Fatalf("Failed to write DXF: %v", err)
		}
		log.Printf("Wrote %s", *dxfPath)
	}
	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, shapes, p.Options, result); err != nil {
			log.Fatalf("Failed to write PDF: %v", err)
		}
		log.Printf("Wrote %s", *pdfPath)
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, shapes, result); err != nil {
			log.Fatalf("Failed to write labels: %v", err)
		}
		log.Printf("Wrote %s", *labelsPath)
	}
	if *cutListPath != "" {
		if err := export.ExportCutList(*cutListPath, shapes, p.Options, result); err != nil {
			log.Fatalf("Failed to write cut list: %v", err)
		}
		log.Printf("Wrote %s", *cutListPath)
	}
	if *gcodeDir != "" {
		if err := writeGCodePrograms(*gcodeDir, p, shapes, result); err != nil {
			log.Fatalf("Failed to write G-code: %v", err)
		}
	}

	rememberProject(projectPath)
}

func writeSVGFile(path string, p *project.Project, shapes []*trace.MeshBoundary, result pack.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, _, err = export.WriteSVG(f, shapes, p.Options, result)
	return err
}

// writeGCodePrograms saves one numbered program per sheet and reports the
// estimated run time of each.
func writeGCodePrograms(dir string, p *project.Project, shapes []*trace.MeshBoundary, result pack.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	gen := gcode.New(p.Laser)
	programs, err := gen.GenerateAll(shapes, p.Options, result)
	if err != nil {
		return err
	}

	base := strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
	for i, program := range programs {
		path := filepath.Join(dir, fmt.Sprintf("%s-page%d.gcode", base, i+1))
		if err := os.WriteFile(path, []byte(program), 0644); err != nil {
			return err
		}

		moves := gcode.Parse(program)
		stats := gcode.Summarize(moves)
		if violations := gcode.CheckWorkArea(moves, p.Options.MaterialWidth, p.Options.MaterialLength); len(violations) > 0 {
			log.Printf("Warning: %s leaves the work area (%s)", path, violations[0])
		}
		log.Printf("Wrote %s: %.0f mm burned, estimated %.0f s", path, stats.BurnLength, stats.Duration)
	}
	return nil
}

// rememberProject records the project in the recent-files list. Config
// trouble only costs the convenience, not the export.
func rememberProject(path string) {
	configPath := project.DefaultConfigPath()
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	config.AddRecentProject(path)
	if err := project.SaveAppConfig(configPath, config); err != nil {
		log.Printf("Warning: could not update recent projects: %v", err)
	}
}
