package model

import "github.com/shopspring/decimal"

// MaxRecentJobs caps AppConfig.RecentJobs.
const MaxRecentJobs = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Material applied when a job does not name one
	DefaultMaterialType string  `json:"default_material_type" koanf:"default_material_type"`
	DefaultThickness    float64 `json:"default_thickness" koanf:"default_thickness"`
	DefaultKerf         float64 `json:"default_kerf" koanf:"default_kerf"`

	// Rendering and export
	Scale     float64 `json:"scale" koanf:"scale" validate:"gt=0"`            // Drawing units per mm
	OutputDir string  `json:"output_dir" koanf:"output_dir"`                  // Where export commands write files
	PageSize  string  `json:"page_size" koanf:"page_size"`                    // PDF page size: "A4" or "Letter"

	// Estimates
	BandingWastePercent float64 `json:"banding_waste_percent" koanf:"banding_waste_percent" validate:"gte=0"`
	SheetWastePercent   float64 `json:"sheet_waste_percent" koanf:"sheet_waste_percent" validate:"gte=0"`
	SheetWidth          float64 `json:"sheet_width" koanf:"sheet_width" validate:"gte=0"`
	SheetHeight         float64 `json:"sheet_height" koanf:"sheet_height" validate:"gte=0"`
	PricePerSheet       string  `json:"price_per_sheet" koanf:"price_per_sheet"` // Decimal string, e.g. "45.50"

	// Application preferences
	Verbose    bool     `json:"verbose" koanf:"verbose"`
	RecentJobs []string `json:"recent_jobs" koanf:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMaterialType: "plywood",
		DefaultThickness:    18,
		DefaultKerf:         3.2,
		Scale:               0.15,
		OutputDir:           "cutlist",
		PageSize:            "A4",
		BandingWastePercent: 10,
		SheetWastePercent:   15,
		SheetWidth:          2440,
		SheetHeight:         1220,
		PricePerSheet:       "0",
		RecentJobs:          []string{},
	}
}

// DefaultMaterial builds the fallback material from the config.
func (c AppConfig) DefaultMaterial() Material {
	return Material{
		Type:      c.DefaultMaterialType,
		Thickness: c.DefaultThickness,
		Kerf:      c.DefaultKerf,
	}
}

// Price parses PricePerSheet, treating an empty or malformed value as zero.
func (c AppConfig) Price() decimal.Decimal {
	d, err := decimal.NewFromString(c.PricePerSheet)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Sheet returns the configured stock sheet size.
func (c AppConfig) Sheet() SheetSize {
	return SheetSize{Width: c.SheetWidth, Height: c.SheetHeight}
}

// AddRecentJob moves path to the front of RecentJobs, keeping at most MaxRecentJobs.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentJobs {
		recent = recent[:MaxRecentJobs]
	}
	c.RecentJobs = recent
}
