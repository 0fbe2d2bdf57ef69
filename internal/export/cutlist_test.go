package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

func TestExportCutList_Workbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.xlsx")

	shapes := []*trace.MeshBoundary{
		rectBoundary("lid", 100, 80),
		rectBoundary("base", 120, 90),
	}
	opts := model.DefaultOptions()
	result := packShapes(t, shapes, opts)

	if err := ExportCutList(path, shapes, opts, result); err != nil {
		t.Fatalf("ExportCutList returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook was not created: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cutListSheet)
	if err != nil {
		t.Fatalf("cannot read sheet: %v", err)
	}
	if len(rows) < 3 {
		t.Fatalf("expected header plus 2 shape rows, got %d rows", len(rows))
	}
	if rows[0][0] != "Shape" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	// Rows are sorted by shape name.
	if rows[1][0] != "base" || rows[2][0] != "lid" {
		t.Errorf("unexpected row order: %q, %q", rows[1][0], rows[2][0])
	}

	// Net width of the 120mm shape with the default 0.15mm kerf.
	got, err := f.GetCellValue(cutListSheet, "B2")
	if err != nil {
		t.Fatalf("cannot read cell: %v", err)
	}
	if got != "119.85" {
		t.Errorf("net width = %q, want 119.85", got)
	}
}

func TestExportCutList_InvalidResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	err := ExportCutList(path, nil, model.DefaultOptions(), pack.Result{})
	if err != ErrNoShapes {
		t.Fatalf("expected ErrNoShapes, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file expected for an invalid result")
	}
}
