package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

const cutListSheet = "Cut List"

// ExportCutList writes the shape table as an Excel workbook: one row per
// placed shape with its net kerf-compensated size, page and placement.
func ExportCutList(path string, shapes []*trace.MeshBoundary, opts model.Options, result pack.Result) error {
	if !result.IsValid() {
		return ErrNoShapes
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", cutListSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F36926"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{"Shape", "Width (mm)", "Height (mm)", "Surface (m²)", "Page", "Rotated", "X (mm)", "Y (mm)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(cutListSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(cutListSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	sorted := make([]*trace.MeshBoundary, 0, len(shapes))
	for _, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		sorted = append(sorted, shape)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for i, shape := range sorted {
		row := i + 2
		w := shape.AABB().Width() - opts.LaserWidth
		h := shape.AABB().Height() - opts.LaserWidth
		values := []interface{}{
			shape.Name,
			w,
			h,
			(w / 1000.0) * (h / 1000.0),
			shape.PageNum + 1,
			shape.Rotation != 0,
			shape.Translation.X,
			shape.Translation.Y,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(cutListSheet, cell, v); err != nil {
				return err
			}
		}
	}

	summaryRow := len(sorted) + 3
	summary := [][2]interface{}{
		{"Pages", result.NumPages},
		{"Covered area (mm²)", result.CoveredArea},
		{"Wasted space (mm²)", result.WastedSpace()},
	}
	for i, kv := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		valCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err := f.SetCellValue(cutListSheet, keyCell, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(cutListSheet, valCell, kv[1]); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(cutListSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(cutListSheet, "B", "H", 14); err != nil {
		return err
	}

	return f.SaveAs(path)
}
