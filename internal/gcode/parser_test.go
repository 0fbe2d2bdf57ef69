package gcode

import (
	"math"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	moves := Parse("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParse_CommentsOnly(t *testing.T) {
	code := `; This is a comment
; Another comment
(parenthetical comment)
`
	moves := Parse(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParse_TravelMove(t *testing.T) {
	code := "G0 X10.000 Y20.000\n"
	moves := Parse(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveTravel {
		t.Errorf("expected MoveTravel, got %d", m.Type)
	}
	if m.FromX != 0 || m.FromY != 0 {
		t.Errorf("expected from (0,0), got (%.3f, %.3f)", m.FromX, m.FromY)
	}
	if m.ToX != 10 || m.ToY != 20 {
		t.Errorf("expected to (10,20), got (%.3f, %.3f)", m.ToX, m.ToY)
	}
}

func TestParse_BurnRequiresLaserOn(t *testing.T) {
	code := `G1 X10 Y0 F400
M3 S800
G1 X20 Y0 F400
M5
G1 X30 Y0 F400
`
	moves := Parse(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	if moves[0].Type != MoveIdle {
		t.Errorf("move before M3 should be idle, got %d", moves[0].Type)
	}
	if moves[1].Type != MoveBurn {
		t.Errorf("move after M3 should burn, got %d", moves[1].Type)
	}
	if moves[1].Power != 800 {
		t.Errorf("expected power 800, got %d", moves[1].Power)
	}
	if moves[2].Type != MoveIdle {
		t.Errorf("move after M5 should be idle, got %d", moves[2].Type)
	}
}

func TestParse_TracksPosition(t *testing.T) {
	code := `G0 X10 Y10
M3 S500
G1 X50 Y10 F400
G1 X50 Y40 F400
M5
`
	moves := Parse(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	if moves[1].FromX != 10 || moves[1].FromY != 10 {
		t.Errorf("second move starts at (%.1f, %.1f), want (10, 10)", moves[1].FromX, moves[1].FromY)
	}
	if moves[2].FromX != 50 || moves[2].FromY != 10 {
		t.Errorf("third move starts at (%.1f, %.1f), want (50, 10)", moves[2].FromX, moves[2].FromY)
	}
}

func TestParse_StripsInlineComments(t *testing.T) {
	code := "G1 X10 Y0 F400 ; engrave edge\n"
	moves := Parse(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != 10 {
		t.Errorf("expected X 10, got %.3f", moves[0].ToX)
	}
}

func TestParse_NegativeCoordinates(t *testing.T) {
	moves := Parse("G0 X-5.5 Y-2.25\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != -5.5 || moves[0].ToY != -2.25 {
		t.Errorf("expected (-5.5, -2.25), got (%.3f, %.3f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestMove_Length(t *testing.T) {
	m := Move{FromX: 0, FromY: 0, ToX: 3, ToY: 4}
	if m.Length() != 5 {
		t.Errorf("expected length 5, got %.3f", m.Length())
	}
}

func TestSummarize(t *testing.T) {
	code := `G0 X0 Y0
M3 S1000
G1 X100 Y0 F600
M5
G0 X0 Y0
`
	stats := Summarize(Parse(code))
	if stats.BurnLength != 100 {
		t.Errorf("burn length %.1f, want 100", stats.BurnLength)
	}
	if stats.TravelLength != 100 {
		t.Errorf("travel length %.1f, want 100", stats.TravelLength)
	}
	// 100mm at 600mm/min is 10s, plus 100mm of travel at 6000mm/min is 1s.
	if math.Abs(stats.Duration-11) > 1e-9 {
		t.Errorf("duration %.3f, want 11", stats.Duration)
	}
}
