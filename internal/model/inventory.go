package model

import "github.com/google/uuid"

// MaterialPreset represents a reusable material sheet definition.
type MaterialPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Material  string  `json:"material"`

	// LaserWidth is the kerf this material cuts with, 0 to keep the
	// project's value.
	LaserWidth float64 `json:"laser_width,omitempty"`
}

// NewMaterialPreset creates a new MaterialPreset with a generated ID.
func NewMaterialPreset(name string, width, length, thickness float64, material string) MaterialPreset {
	return MaterialPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Length:    length,
		Thickness: thickness,
		Material:  material,
	}
}

// ApplyToOptions copies this preset's sheet size, and kerf if set, into the
// given Options.
func (mp MaterialPreset) ApplyToOptions(o *Options) {
	o.MaterialWidth = mp.Width
	o.MaterialLength = mp.Length
	if mp.LaserWidth > 0 {
		o.LaserWidth = mp.LaserWidth
	}
}

// Inventory holds the user's saved material presets.
type Inventory struct {
	Materials []MaterialPreset `json:"materials"`
}

// DefaultInventory returns an inventory populated with common laser stock.
func DefaultInventory() Inventory {
	return Inventory{
		Materials: []MaterialPreset{
			NewMaterialPreset("Plywood 3mm 600x300", 600, 300, 3, "plywood"),
			NewMaterialPreset("Plywood 4mm 600x300", 600, 300, 4, "plywood"),
			NewMaterialPreset("MDF 3mm 600x400", 600, 400, 3, "mdf"),
			NewMaterialPreset("Acrylic 3mm 600x400", 600, 400, 3, "acrylic"),
		},
	}
}

// FindMaterial returns the preset with the given name, or nil.
func (inv Inventory) FindMaterial(name string) *MaterialPreset {
	for i := range inv.Materials {
		if inv.Materials[i].Name == name {
			return &inv.Materials[i]
		}
	}
	return nil
}

// AddMaterial appends a preset to the inventory.
func (inv *Inventory) AddMaterial(mp MaterialPreset) {
	inv.Materials = append(inv.Materials, mp)
}

// RemoveMaterial removes a preset by ID. Returns true if found and removed.
func (inv *Inventory) RemoveMaterial(id string) bool {
	for i := range inv.Materials {
		if inv.Materials[i].ID == id {
			inv.Materials = append(inv.Materials[:i], inv.Materials[i+1:]...)
			return true
		}
	}
	return false
}
