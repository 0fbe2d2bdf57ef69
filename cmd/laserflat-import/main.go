// laserflat-import - convert part lists and 2D drawings into projects.
//
// Reads a CSV or Excel part list (label, width, height, quantity columns)
// or a DXF drawing of closed outlines and writes a laserflat project file
// ready for layout and export.
//
// Build:
//   go build -o laserflat-import ./cmd/laserflat-import
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/laserflat/internal/importer"
	"github.com/piwi3910/laserflat/internal/project"
)

func main() {
	var (
		output = flag.String("o", "", "project output path (default: input name + .json)")
		name   = flag.String("name", "", "project name (default: input file name)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: laserflat-import [flags] parts.{csv,xlsx,dxf}\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.Arg(0) == "" {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(input)) {
	case ".csv":
		result = importer.ImportCSV(input)
	case ".xlsx", ".xls":
		result = importer.ImportExcel(input)
	case ".dxf":
		result = importer.ImportDXF(input)
	default:
		log.Fatalf("Unsupported input format %q", filepath.Ext(input))
	}

	for _, w := range result.Warnings {
		log.Printf("Warning: %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("Error: %s", e)
	}
	if len(result.Objects) == 0 {
		log.Fatal("No importable parts found")
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	projectName := *name
	if projectName == "" {
		projectName = stem
	}

	p := project.New(projectName)
	for _, o := range result.Objects {
		p.AddObject(o)
	}

	out := *output
	if out == "" {
		out = stem + ".json"
	}
	if err := project.Save(out, p); err != nil {
		log.Fatalf("Failed to save project: %v", err)
	}
	log.Printf("Wrote %s: %d objects", out, len(p.Objects))
}
