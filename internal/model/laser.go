package model

import "fmt"

// LaserSettings holds the machine parameters for G-code generation.
// Feeds are in mm/min, powers are spindle-style S values (0-1000 on Grbl).
type LaserSettings struct {
	CutSpeed     float64 `json:"cut_speed"`     // Feed rate for cut moves
	EngraveSpeed float64 `json:"engrave_speed"` // Feed rate for engrave moves
	CutPower     int     `json:"cut_power"`     // Laser power for cut moves
	EngravePower int     `json:"engrave_power"` // Laser power for engrave moves
	CutPasses    int     `json:"cut_passes"`    // Repeats of each cut chain

	// GCode post-processor profile
	Profile string `json:"profile"` // Name of the laser profile to use
}

// LaserProfile defines a post-processor configuration for different laser
// controllers.
type LaserProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file
	LaserOn   string   `json:"laser_on"`   // Laser on command (e.g., "M3 S%d")
	LaserOff  string   `json:"laser_off"`  // Laser off command

	// Motion settings
	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed)

	// Number formatting
	DecimalPlaces int `json:"decimal_places"` // Decimal places for coordinates
}

// Built-in laser profiles
var LaserProfiles = []LaserProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl 1.1 in laser mode ($32=1)",
		StartCode:     []string{"G90", "G21", "M5"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
	{
		Name:          "Marlin",
		Description:   "Marlin 2.x with laser feature enabled",
		StartCode:     []string{"G90", "G21", "M5"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
}

// GetLaserProfile returns a laser profile by name, or the Generic profile if
// not found.
func GetLaserProfile(name string) LaserProfile {
	for _, p := range LaserProfiles {
		if p.Name == name {
			return p
		}
	}
	return LaserProfiles[len(LaserProfiles)-1] // Return Generic (last one)
}

// GetLaserProfileNames returns a list of all available profile names.
func GetLaserProfileNames() []string {
	var names []string
	for _, p := range LaserProfiles {
		names = append(names, p.Name)
	}
	return names
}

func DefaultLaserSettings() LaserSettings {
	return LaserSettings{
		CutSpeed:     400,
		EngraveSpeed: 1200,
		CutPower:     1000,
		EngravePower: 300,
		CutPasses:    1,
		Profile:      "Grbl",
	}
}

// Validate checks the settings for values the generator cannot work with.
func (s LaserSettings) Validate() error {
	if s.CutSpeed <= 0 {
		return fmt.Errorf("cut speed must be positive, got %g", s.CutSpeed)
	}
	if s.EngraveSpeed <= 0 {
		return fmt.Errorf("engrave speed must be positive, got %g", s.EngraveSpeed)
	}
	if s.CutPower <= 0 || s.CutPower > 1000 {
		return fmt.Errorf("cut power must be in 1..1000, got %d", s.CutPower)
	}
	if s.EngravePower <= 0 || s.EngravePower > 1000 {
		return fmt.Errorf("engrave power must be in 1..1000, got %d", s.EngravePower)
	}
	if s.CutPasses < 1 {
		return fmt.Errorf("cut passes must be at least 1, got %d", s.CutPasses)
	}
	return nil
}
