package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

// shapeColor represents an RGB fill for a placed shape in the layout report.
type shapeColor struct {
	R, G, B int
}

var shapeColors = []shapeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pdfPageWidth    = 297.0
	pdfPageHeight   = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 15.0
	pdfHeaderHeight = 12.0
	pdfDrawAreaTop  = pdfMarginTop + pdfHeaderHeight + 5.0
)

// ExportPDF generates a PDF layout report. Each material page is rendered on
// its own PDF page with the placed shapes drawn to scale, followed by a
// summary page with overall statistics.
func ExportPDF(path string, shapes []*trace.MeshBoundary, opts model.Options, result pack.Result) error {
	if !result.IsValid() {
		return ErrNoShapes
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pdfMarginBottom)

	for page := 0; page < result.NumPages; page++ {
		pdf.AddPage()
		renderLayoutPage(pdf, shapes, opts, page)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, shapes, opts, result)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws one material page and the shapes placed on it.
func renderLayoutPage(pdf *fpdf.Fpdf, shapes []*trace.MeshBoundary, opts model.Options, page int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	title := fmt.Sprintf("Page %d (%.0f x %.0f mm)", page+1, opts.MaterialWidth, opts.MaterialLength)
	pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, pdfHeaderHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pdfPageWidth - pdfMarginLeft - pdfMarginRight
	drawHeight := pdfPageHeight - pdfDrawAreaTop - pdfMarginBottom

	scale := math.Min(drawWidth/opts.MaterialWidth, drawHeight/opts.MaterialLength)
	canvasW := opts.MaterialWidth * scale
	canvasH := opts.MaterialLength * scale
	offsetX := pdfMarginLeft + (drawWidth-canvasW)/2
	offsetY := pdfDrawAreaTop

	// Material background.
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pageShift := opts.PageOffset(page)
	for i, shape := range shapes {
		if shape.PageNum != page || shape.IsEmpty() {
			continue
		}
		placed := shape.PlacedAABB()

		col := shapeColors[i%len(shapeColors)]
		pw := placed.Width() * scale
		ph := placed.Height() * scale
		px := offsetX + (placed.MinX-pageShift)*scale
		// Model Y grows upward, PDF Y grows downward.
		py := offsetY + canvasH - placed.MaxY*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(0, 0, 0)

			label := shape.Name
			dims := fmt.Sprintf("%.0fx%.0f", shape.AABB().Width(), shape.AABB().Height())

			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			dimsW := pdf.GetStringWidth(dims)
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}
}

// renderSummaryPage lists the packing statistics and per-shape net sizes.
func renderSummaryPage(pdf *fpdf.Fpdf, shapes []*trace.MeshBoundary, opts model.Options, result pack.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	pdf.CellFormat(100, pdfHeaderHeight, "Summary", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := pdfMarginTop + pdfHeaderHeight + 5
	lines := []string{
		fmt.Sprintf("Pages: %d", result.NumPages),
		fmt.Sprintf("Covered area: %.0f mm2", result.CoveredArea),
		fmt.Sprintf("Wasted space: %d mm2", result.WastedSpace()),
		fmt.Sprintf("Laser width: %.2f mm", opts.LaserWidth),
	}
	for _, line := range lines {
		pdf.SetXY(pdfMarginLeft, y)
		pdf.CellFormat(150, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}

	y += 4
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(pdfMarginLeft, y)
	pdf.CellFormat(150, 5, "Shape sizes (kerf compensated)", "", 0, "L", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for _, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		w := shape.AABB().Width() - opts.LaserWidth
		h := shape.AABB().Height() - opts.LaserWidth
		pdf.SetXY(pdfMarginLeft, y)
		line := fmt.Sprintf("%s: %.0f x %.0f mm (page %d)", shape.Name, w, h, shape.PageNum+1)
		pdf.CellFormat(200, 5, line, "", 0, "L", false, 0, "")
		y += 5
	}
}
