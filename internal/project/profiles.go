package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/laserflat/internal/model"
)

// DefaultProfilesPath returns the default file path for custom laser
// profiles, located at ~/.laserflat/profiles.json.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".laserflat", "profiles.json"), nil
}

// SaveCustomProfiles saves custom laser profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.LaserProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom laser profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.LaserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.LaserProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.LaserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// AllProfiles returns the built-in profiles followed by the custom ones from
// the given path. A custom profile with a built-in name shadows the built-in.
func AllProfiles(path string) ([]model.LaserProfile, error) {
	custom, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]bool, len(custom))
	for _, p := range custom {
		byName[p.Name] = true
	}

	var all []model.LaserProfile
	for _, p := range model.LaserProfiles {
		if !byName[p.Name] {
			all = append(all, p)
		}
	}
	return append(all, custom...), nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.LaserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.LaserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LaserProfile{}, err
	}

	var profile model.LaserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.LaserProfile{}, err
	}

	if profile.Name == "" {
		return model.LaserProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
