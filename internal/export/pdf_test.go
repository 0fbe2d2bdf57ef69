package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.pdf")

	shapes := []*trace.MeshBoundary{
		rectBoundary("side-panel", 200, 150),
		rectBoundary("top", 180, 120),
	}
	opts := model.DefaultOptions()
	result := packShapes(t, shapes, opts)

	if err := ExportPDF(path, shapes, opts, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_MultiplePages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.pdf")

	shapes := []*trace.MeshBoundary{
		rectBoundary("a", 500, 250),
		rectBoundary("b", 500, 250),
	}
	opts := model.DefaultOptions()
	result := packShapes(t, shapes, opts)
	if result.NumPages != 2 {
		t.Fatalf("expected 2 pages, got %d", result.NumPages)
	}

	if err := ExportPDF(path, shapes, opts, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestExportPDF_InvalidResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, nil, model.DefaultOptions(), pack.Result{})
	if err != ErrNoShapes {
		t.Fatalf("expected ErrNoShapes, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file expected for an invalid result")
	}
}
