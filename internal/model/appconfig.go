package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default export options applied to new projects
	DefaultLaserWidth     float64 `json:"default_laser_width"`
	DefaultMaterialWidth  float64 `json:"default_material_width"`
	DefaultMaterialLength float64 `json:"default_material_length"`
	DefaultMargin         float64 `json:"default_margin"`
	DefaultShapePadding   float64 `json:"default_shape_padding"`
	DefaultPackSort       string  `json:"default_pack_sort"`
	DefaultMayRotate      bool    `json:"default_may_rotate"`

	// Default machine settings
	DefaultCutSpeed     float64 `json:"default_cut_speed"`
	DefaultEngraveSpeed float64 `json:"default_engrave_speed"`
	DefaultCutPower     int     `json:"default_cut_power"`
	DefaultEngravePower int     `json:"default_engrave_power"`
	DefaultLaserProfile string  `json:"default_laser_profile"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultOptions() and DefaultLaserSettings().
func DefaultAppConfig() AppConfig {
	opts := DefaultOptions()
	laser := DefaultLaserSettings()
	return AppConfig{
		DefaultLaserWidth:     opts.LaserWidth,
		DefaultMaterialWidth:  opts.MaterialWidth,
		DefaultMaterialLength: opts.MaterialLength,
		DefaultMargin:         opts.Margin,
		DefaultShapePadding:   opts.ShapePadding,
		DefaultPackSort:       string(opts.PackSort),
		DefaultMayRotate:      opts.PackMayRotate,
		DefaultCutSpeed:       laser.CutSpeed,
		DefaultEngraveSpeed:   laser.EngraveSpeed,
		DefaultCutPower:       laser.CutPower,
		DefaultEngravePower:   laser.EngravePower,
		DefaultLaserProfile:   laser.Profile,
		RecentProjects:        []string{},
	}
}

// ApplyToOptions copies the default values from AppConfig into an Options
// struct. This is used when creating a new project so it inherits the user's
// saved defaults.
func (c AppConfig) ApplyToOptions(o *Options) {
	o.LaserWidth = c.DefaultLaserWidth
	o.MaterialWidth = c.DefaultMaterialWidth
	o.MaterialLength = c.DefaultMaterialLength
	o.Margin = c.DefaultMargin
	o.ShapePadding = c.DefaultShapePadding
	o.PackSort = SortMethod(c.DefaultPackSort)
	o.PackMayRotate = c.DefaultMayRotate
}

// ApplyToLaser copies the default machine values into a LaserSettings struct.
func (c AppConfig) ApplyToLaser(s *LaserSettings) {
	s.CutSpeed = c.DefaultCutSpeed
	s.EngraveSpeed = c.DefaultEngraveSpeed
	s.CutPower = c.DefaultCutPower
	s.EngravePower = c.DefaultEngravePower
	s.Profile = c.DefaultLaserProfile
}

// AddRecentProject prepends a path to the recent list, dropping duplicates
// and keeping at most ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentProjects = recent
}
