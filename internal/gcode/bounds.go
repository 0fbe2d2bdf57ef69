package gcode

import "fmt"

// BoundsViolation reports a move that leaves the machine work area.
type BoundsViolation struct {
	MoveIndex int
	X, Y      float64
	Burning   bool
}

func (v BoundsViolation) String() string {
	state := "travel"
	if v.Burning {
		state = "burn"
	}
	return fmt.Sprintf("move %d: %s to (%.2f, %.2f) outside work area", v.MoveIndex, state, v.X, v.Y)
}

// CheckWorkArea scans a parsed program for endpoints outside the rectangle
// (0,0)-(width,length). A page packed for one material size but sent to a
// smaller machine shows up here before it ruins stock.
func CheckWorkArea(moves []Move, width, length float64) []BoundsViolation {
	var violations []BoundsViolation
	for i, m := range moves {
		if m.ToX < 0 || m.ToX > width || m.ToY < 0 || m.ToY > length {
			violations = append(violations, BoundsViolation{
				MoveIndex: i,
				X:         m.ToX,
				Y:         m.ToY,
				Burning:   m.Type == MoveBurn,
			})
		}
	}
	return violations
}
