package model

import (
	"strings"

	"github.com/google/uuid"
)

// MaterialPreset is a named, reusable material definition.
type MaterialPreset struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Material Material `json:"material"`
}

// NewMaterialPreset creates a new MaterialPreset with a generated ID.
func NewMaterialPreset(name, materialType string, thickness, kerf float64) MaterialPreset {
	return MaterialPreset{
		ID:   uuid.New().String()[:8],
		Name: name,
		Material: Material{
			Type:      materialType,
			Thickness: thickness,
			Kerf:      kerf,
		},
	}
}

// BuiltinPresets returns the materials available without any configuration.
func BuiltinPresets() []MaterialPreset {
	return []MaterialPreset{
		{ID: "plywood18", Name: "plywood-18", Material: Material{Type: "plywood", Thickness: 18, Kerf: 3.2}},
		{ID: "mdf18", Name: "mdf-18", Material: Material{Type: "mdf", Thickness: 18, Kerf: 3.2}},
		{ID: "melamine16", Name: "melamine-16", Material: Material{Type: "melamine", Thickness: 16, Kerf: 4.0}},
		{ID: "birch12", Name: "birch-ply-12", Material: Material{Type: "birch plywood", Thickness: 12, Kerf: 3.2}},
	}
}

// PresetStore holds the user's custom material presets.
type PresetStore struct {
	Presets []MaterialPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{Presets: []MaterialPreset{}}
}

// Add adds a preset to the store, replacing any preset with the same name.
func (ps *PresetStore) Add(p MaterialPreset) {
	for i := range ps.Presets {
		if strings.EqualFold(ps.Presets[i].Name, p.Name) {
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by name. Returns true if found and removed.
func (ps *PresetStore) Remove(name string) bool {
	for i, p := range ps.Presets {
		if strings.EqualFold(p.Name, name) {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the built-in presets followed by the custom ones.
func (ps PresetStore) All() []MaterialPreset {
	return append(BuiltinPresets(), ps.Presets...)
}

// Find looks a preset up by name, case-insensitively. Custom presets shadow
// built-in ones with the same name.
func (ps PresetStore) Find(name string) (MaterialPreset, bool) {
	for _, p := range ps.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	for _, p := range BuiltinPresets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return MaterialPreset{}, false
}

// Names returns the names of every known preset.
func (ps PresetStore) Names() []string {
	all := ps.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}
