package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/CabinetCut/internal/model"
)

// DefaultPresetsPath returns the default file path for custom material presets.
// This is located at ~/.cabinetcut/materials.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "materials.json")
}

// SaveMaterialPresets writes the preset store to a JSON file.
func SaveMaterialPresets(path string, store model.PresetStore) error {
	return writeJSON(path, store)
}

// LoadMaterialPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadMaterialPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []model.MaterialPreset{}
	}
	return store, nil
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, preset model.MaterialPreset) error {
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset from a JSON file.
func ImportPreset(path string) (model.MaterialPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.MaterialPreset{}, err
	}

	var preset model.MaterialPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.MaterialPreset{}, err
	}

	if preset.Name == "" {
		return model.MaterialPreset{}, errors.New("imported preset has no name")
	}
	if err := preset.Material.Validate(); err != nil {
		return model.MaterialPreset{}, err
	}
	return preset, nil
}
