package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/laserflat/internal/model"
)

func customProfile(name string) model.LaserProfile {
	return model.LaserProfile{
		Name:          name,
		Description:   "test profile",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	}
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	profiles := []model.LaserProfile{customProfile("Diode 5W"), customProfile("CO2 60W")}
	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Diode 5W" {
		t.Errorf("unexpected profile: %+v", loaded[0])
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	loaded, err := LoadCustomProfiles("/nonexistent/profiles.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty slice, got %d profiles", len(loaded))
	}
}

func TestAllProfilesShadowsBuiltIns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	custom := customProfile("Grbl")
	custom.Description = "tuned for my machine"
	if err := SaveCustomProfiles(path, []model.LaserProfile{custom}); err != nil {
		t.Fatal(err)
	}

	all, err := AllProfiles(path)
	if err != nil {
		t.Fatalf("AllProfiles failed: %v", err)
	}

	grblCount := 0
	for _, p := range all {
		if p.Name == "Grbl" {
			grblCount++
			if p.Description != "tuned for my machine" {
				t.Error("custom profile should shadow the built-in")
			}
		}
	}
	if grblCount != 1 {
		t.Errorf("expected exactly one Grbl profile, got %d", grblCount)
	}
	if len(all) != len(model.LaserProfiles) {
		t.Errorf("expected %d profiles, got %d", len(model.LaserProfiles), len(all))
	}
}

func TestExportAndImportProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")

	if err := ExportProfile(path, customProfile("Shared")); err != nil {
		t.Fatalf("ExportProfile failed: %v", err)
	}

	imported, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile failed: %v", err)
	}
	if imported.Name != "Shared" {
		t.Errorf("expected name Shared, got %s", imported.Name)
	}
}

func TestImportProfileWithoutName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(path, []byte(`{"laser_on":"M3 S%d"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportProfile(path); err == nil {
		t.Fatal("expected error for profile without name")
	}
}
