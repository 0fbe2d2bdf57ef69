// Package model holds the export configuration shared by the tracer, the
// packer and the document writers.
package model

import "fmt"

// SortMethod selects the pre-sort heuristic for the packing algorithm.
type SortMethod string

const (
	SortNone       SortMethod = "none"       // Keep insertion order
	SortArea       SortMethod = "area"       // Largest area first
	SortPerimeter  SortMethod = "perimeter"  // Largest perimeter first
	SortDifference SortMethod = "difference" // Largest side-length difference first
	SortShortSide  SortMethod = "short_side" // Longest shortest-side first
	SortLongSide   SortMethod = "long_side"  // Longest longest-side first
	SortRatio      SortMethod = "ratio"      // Largest side ratio first
)

// SortMethods lists every supported heuristic, in presentation order.
var SortMethods = []SortMethod{
	SortNone,
	SortArea,
	SortPerimeter,
	SortDifference,
	SortShortSide,
	SortLongSide,
	SortRatio,
}

// Valid reports whether s names a known heuristic.
func (s SortMethod) Valid() bool {
	for _, m := range SortMethods {
		if s == m {
			return true
		}
	}
	return false
}

// Options is the immutable configuration for one export run. All lengths are
// in mm. Construct it once per call and thread it through; there is no
// ambient state.
type Options struct {
	LaserWidth     float64    `json:"laser_width"`     // Width of the laser beam in mm
	MaterialWidth  float64    `json:"material_width"`  // Width of the material sheet in mm
	MaterialLength float64    `json:"material_length"` // Length of the material sheet in mm
	Margin         float64    `json:"margin"`          // Distance from sheet edge to the closest shape in mm
	ShapePadding   float64    `json:"shape_padding"`   // Spacing reserved around each shape in mm
	PackSort       SortMethod `json:"pack_sort"`       // Pre-sort heuristic for packing
	PackMayRotate  bool       `json:"pack_may_rotate"` // Whether the packer may rotate shapes 90 degrees
	ShapeTable     bool       `json:"shape_table"`     // Whether to render the table of shape sizes
}

// DefaultOptions returns sensible defaults for a 60W CO2 cutter with a
// 600x300mm bed.
func DefaultOptions() Options {
	return Options{
		LaserWidth:     0.15,
		MaterialWidth:  600,
		MaterialLength: 300,
		Margin:         5,
		ShapePadding:   2,
		PackSort:       SortArea,
		PackMayRotate:  true,
		ShapeTable:     false,
	}
}

// Validate checks the options for values the pipeline cannot work with.
func (o Options) Validate() error {
	if !o.PackSort.Valid() {
		return fmt.Errorf("unknown sorting method %q", o.PackSort)
	}
	if o.MaterialWidth <= 0 || o.MaterialLength <= 0 {
		return fmt.Errorf("material size %gx%g must be positive", o.MaterialWidth, o.MaterialLength)
	}
	if o.LaserWidth < 0 {
		return fmt.Errorf("laser width must not be negative")
	}
	return nil
}

// PageOffset returns the X offset of elements on the given page. Pages are
// laid out side by side, spaced apart by one margin.
func (o Options) PageOffset(page int) float64 {
	return float64(page) * (o.MaterialWidth + o.Margin)
}
