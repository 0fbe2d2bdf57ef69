package pack

// pagePacker places rectangles on a single page using the maximal-rectangles
// scheme: a list of free rectangles that gets split around every placement.
// All dimensions are integer micrometers so fit decisions are exact.
type pagePacker struct {
	freeRects []irect
}

type irect struct {
	x, y, w, h int64
}

func newPagePacker(width, height int64) *pagePacker {
	return &pagePacker{freeRects: []irect{{0, 0, width, height}}}
}

// bestFit returns the smallest leftover area among free rectangles that can
// hold a w x h piece, or -1 when none fits. It does not modify the packer.
func (p *pagePacker) bestFit(w, h int64) int64 {
	best := int64(-1)
	for _, r := range p.freeRects {
		if w <= r.w && h <= r.h {
			waste := r.w*r.h - w*h
			if best < 0 || waste < best {
				best = waste
			}
		}
	}
	return best
}

// insert places a w x h piece into the free rect with the least leftover
// area (best area fit). Ties go to the earliest free rect, keeping placement
// deterministic.
func (p *pagePacker) insert(w, h int64) (x, y int64, ok bool) {
	bestIdx := -1
	bestWaste := int64(-1)
	for i, r := range p.freeRects {
		if w <= r.w && h <= r.h {
			waste := r.w*r.h - w*h
			if bestIdx < 0 || waste < bestWaste {
				bestIdx = i
				bestWaste = waste
			}
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}

	chosen := p.freeRects[bestIdx]
	placed := irect{x: chosen.x, y: chosen.y, w: w, h: h}
	p.splitAroundPlacement(placed)
	return placed.x, placed.y, true
}

// splitAroundPlacement removes every free rect overlapping the placed piece
// and replaces it with up to four maximal strips around the piece, then
// prunes strips contained in others.
func (p *pagePacker) splitAroundPlacement(placed irect) {
	var next []irect
	for _, r := range p.freeRects {
		if !overlaps(r, placed) {
			next = append(next, r)
			continue
		}
		if placed.x > r.x {
			next = append(next, irect{r.x, r.y, placed.x - r.x, r.h})
		}
		if placed.x+placed.w < r.x+r.w {
			next = append(next, irect{placed.x + placed.w, r.y, r.x + r.w - (placed.x + placed.w), r.h})
		}
		if placed.y > r.y {
			next = append(next, irect{r.x, r.y, r.w, placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h {
			next = append(next, irect{r.x, placed.y + placed.h, r.w, r.y + r.h - (placed.y + placed.h)})
		}
	}
	p.freeRects = pruneContained(next)
}

// overlaps reports whether two rects share interior area; touching edges do
// not count.
func overlaps(a, b irect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// pruneContained drops rects fully contained in another rect.
func pruneContained(rects []irect) []irect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]irect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j {
				continue
			}
			if contains(b, a) && !(contains(a, b) && j > i) {
				// Identical rects keep only their first occurrence.
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func contains(outer, inner irect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.x+outer.w >= inner.x+inner.w &&
		outer.y+outer.h >= inner.y+inner.h
}
