package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of laser head movement.
type MoveType int

const (
	MoveTravel MoveType = iota // G0: rapid positioning, laser off
	MoveBurn                   // G1 with the laser powered
	MoveIdle                   // G1 with the laser off
)

// Move represents a single parsed movement from G-code.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
	Power    int // Laser S value active during the move
}

// Length returns the XY distance covered by the move in mm.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYFS])([-]?\d+\.?\d*)`)

// Parse parses a G-code program into a slice of structured moves. It tracks
// absolute position and laser power state, so each G1 is classified as a
// burn or an idle move.
func Parse(code string) []Move {
	var moves []Move

	curX, curY := 0.0, 0.0
	curFeed := 0.0
	curPower := 0
	laserOn := false

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Strip inline comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)

		// Laser power state
		if strings.HasPrefix(upper, "M3") || strings.HasPrefix(upper, "M4") {
			laserOn = true
			for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
				if m[1] == "S" {
					if val, err := strconv.ParseFloat(m[2], 64); err == nil {
						curPower = int(val)
					}
				}
			}
			continue
		}
		if strings.HasPrefix(upper, "M5") {
			laserOn = false
			continue
		}

		isRapid := strings.HasPrefix(upper, "G0 ") || strings.HasPrefix(upper, "G00 ") || upper == "G0" || upper == "G00"
		isFeed := strings.HasPrefix(upper, "G1 ") || strings.HasPrefix(upper, "G01 ") || upper == "G1" || upper == "G01"
		if !isRapid && !isFeed {
			continue
		}

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			}
		}

		moveType := MoveTravel
		power := 0
		if isFeed {
			if laserOn {
				moveType = MoveBurn
				power = curPower
			} else {
				moveType = MoveIdle
			}
		}

		moves = append(moves, Move{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
			Power:    power,
		})

		curX, curY, curFeed = newX, newY, newFeed
	}

	return moves
}

// Stats summarizes a parsed program.
type Stats struct {
	BurnLength   float64 // mm travelled with the laser on
	TravelLength float64 // mm travelled with the laser off
	Duration     float64 // estimated seconds, travel at travelSpeed
}

// travelSpeed is the assumed rapid speed in mm/min for time estimates.
const travelSpeed = 6000.0

// Summarize computes path lengths and an estimated duration for a program.
func Summarize(moves []Move) Stats {
	var s Stats
	for _, m := range moves {
		length := m.Length()
		switch m.Type {
		case MoveBurn:
			s.BurnLength += length
			if m.FeedRate > 0 {
				s.Duration += length / m.FeedRate * 60
			}
		default:
			s.TravelLength += length
			s.Duration += length / travelSpeed * 60
		}
	}
	return s
}
