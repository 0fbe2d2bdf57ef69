// Package pack assigns a page, position and optional 90 degree rotation to
// each flattened shape so that all of them tile one or more fixed-size
// material sheets. Dimensions go through exact integer micrometer arithmetic
// so fit decisions cannot drift with float rounding.
package pack

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/trace"
)

// Result describes a finished packing run.
type Result struct {
	// CanvasBounds is the union of all placed padded boxes, in global
	// coordinates across all pages (pages offset along X).
	CanvasBounds geom.AABB
	// CoveredArea is the summed area of all placed padded boxes in mm².
	// This is the gross packed area; the shape table reports net part sizes
	// instead, and the two are intentionally different.
	CoveredArea float64
	// NumPages is the highest used page index plus one.
	NumPages int
}

// IsValid reports whether anything was packed. An invalid result means "no
// shapes" and the export must not produce a file.
func (r Result) IsValid() bool {
	return r.CanvasBounds.IsValid()
}

// WastedSpace returns the canvas area not covered by shapes, rounded to
// whole mm².
func (r Result) WastedSpace() int {
	return int(math.Round(r.CanvasBounds.Area() - r.CoveredArea))
}

// packRect is one shape's padded bounding box in micrometers.
type packRect struct {
	w, h  int64
	shape *trace.MeshBoundary
}

// Pack places all shapes onto as many pages as needed, using a best-bin-fit
// strategy: each shape goes to the existing page that fits it with the least
// leftover space, and a new page opens only when no page fits. Shapes whose
// padded box exceeds an empty page are left unplaced.
//
// Each shape's Rotation, Translation and PageNum are set in place.
func Pack(shapes []*trace.MeshBoundary, opts model.Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	pageW, err := mmToUm(opts.MaterialWidth - 2*opts.Margin)
	if err != nil {
		return Result{}, fmt.Errorf("material width: %w", err)
	}
	pageH, err := mmToUm(opts.MaterialLength - 2*opts.Margin)
	if err != nil {
		return Result{}, fmt.Errorf("material length: %w", err)
	}
	if pageW <= 0 || pageH <= 0 {
		return Result{}, fmt.Errorf("margin %g leaves no usable page area", opts.Margin)
	}

	rects := make([]packRect, 0, len(shapes))
	for _, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		aabb := shape.AABB()
		w, err := mmToUm(aabb.Width() + 2*opts.ShapePadding)
		if err != nil {
			return Result{}, fmt.Errorf("shape %q width: %w", shape.Name, err)
		}
		h, err := mmToUm(aabb.Height() + 2*opts.ShapePadding)
		if err != nil {
			return Result{}, fmt.Errorf("shape %q height: %w", shape.Name, err)
		}
		rects = append(rects, packRect{w: w, h: h, shape: shape})
	}

	sortRects(rects, opts.PackSort)

	var pages []*pagePacker
	bounds := geom.NewAABB()
	covered := 0.0
	maxPage := -1

	for _, r := range rects {
		pageIdx, rotated := choosePage(pages, r, opts.PackMayRotate)
		if pageIdx < 0 {
			// No existing page fits; try a fresh one.
			fresh := newPagePacker(pageW, pageH)
			if fits, rot := fitOnPage(fresh, r, opts.PackMayRotate); fits {
				pages = append(pages, fresh)
				pageIdx, rotated = len(pages)-1, rot
			} else {
				continue // Too big for the material, leave unplaced.
			}
		}

		w, h := r.w, r.h
		if rotated {
			w, h = h, w
		}
		x, y, ok := pages[pageIdx].insert(w, h)
		if !ok {
			// choosePage just verified the fit.
			return Result{}, fmt.Errorf("internal: page %d rejected %q after fit check", pageIdx, r.shape.Name)
		}

		paddedPos := geom.Vec2{
			X: umToMm(x) + opts.PageOffset(pageIdx),
			Y: umToMm(y),
		}
		paddedSize := geom.Vec2{X: umToMm(w), Y: umToMm(h)}
		bounds.Extend(paddedPos)
		bounds.Extend(paddedPos.Add(paddedSize))

		marginShift := geom.Vec2{X: opts.Margin, Y: opts.Margin}
		position := paddedPos.Add(marginShift)
		size := paddedSize.Sub(marginShift.Scale(2))
		r.shape.TransformInto(position, size)
		r.shape.PageNum = pageIdx

		covered += paddedSize.X * paddedSize.Y
		if pageIdx > maxPage {
			maxPage = pageIdx
		}
	}

	return Result{
		CanvasBounds: bounds,
		CoveredArea:  covered,
		NumPages:     maxPage + 1,
	}, nil
}

// choosePage picks the existing page that fits the rect with the least
// leftover space (best bin fit), and whether the rect should be rotated
// there. Returns -1 when no page fits.
func choosePage(pages []*pagePacker, r packRect, mayRotate bool) (int, bool) {
	bestPage := -1
	bestWaste := int64(-1)
	bestRotated := false

	for i, page := range pages {
		waste, rotated, ok := fitScore(page, r, mayRotate)
		if !ok {
			continue
		}
		if bestPage < 0 || waste < bestWaste {
			bestPage, bestWaste, bestRotated = i, waste, rotated
		}
	}
	return bestPage, bestRotated
}

// fitScore returns the best waste achievable for the rect on the page over
// the allowed orientations. Normal orientation wins ties.
func fitScore(page *pagePacker, r packRect, mayRotate bool) (int64, bool, bool) {
	normal := page.bestFit(r.w, r.h)
	rotated := int64(-1)
	if mayRotate && r.w != r.h {
		rotated = page.bestFit(r.h, r.w)
	}

	switch {
	case normal < 0 && rotated < 0:
		return 0, false, false
	case normal < 0:
		return rotated, true, true
	case rotated >= 0 && rotated < normal:
		return rotated, true, true
	default:
		return normal, false, true
	}
}

func fitOnPage(page *pagePacker, r packRect, mayRotate bool) (bool, bool) {
	_, rotated, ok := fitScore(page, r, mayRotate)
	return ok, rotated
}

// sortRects pre-sorts the rects by the chosen heuristic, descending. The
// sort is stable so equal shapes keep their input order.
func sortRects(rects []packRect, method model.SortMethod) {
	var key func(r packRect) float64
	switch method {
	case model.SortNone:
		return
	case model.SortArea:
		key = func(r packRect) float64 { return float64(r.w) * float64(r.h) }
	case model.SortPerimeter:
		key = func(r packRect) float64 { return float64(r.w + r.h) }
	case model.SortDifference:
		key = func(r packRect) float64 { return math.Abs(float64(r.w - r.h)) }
	case model.SortShortSide:
		key = func(r packRect) float64 { return float64(min64(r.w, r.h)) }
	case model.SortLongSide:
		key = func(r packRect) float64 { return float64(max64(r.w, r.h)) }
	case model.SortRatio:
		key = func(r packRect) float64 { return float64(r.w) / float64(r.h) }
	default:
		return
	}
	sort.SliceStable(rects, func(i, j int) bool {
		return key(rects[i]) > key(rects[j])
	})
}

// mmToUm converts mm to whole micrometers. Non-finite values are a fatal
// configuration error, never silently truncated.
func mmToUm(mm float64) (int64, error) {
	if math.IsNaN(mm) || math.IsInf(mm, 0) {
		return 0, fmt.Errorf("size %v is not finite", mm)
	}
	return int64(mm * 1000), nil
}

func umToMm(um int64) float64 {
	return float64(um) / 1000.0
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
