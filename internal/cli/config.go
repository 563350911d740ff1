package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/project"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// CABINETCUT_DEFAULT_KERF=4.
const EnvPrefix = "CABINETCUT_"

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"scale":         "scale",
	"output-dir":    "output_dir",
	"page-size":     "page_size",
	"banding-waste": "banding_waste_percent",
	"sheet-waste":   "sheet_waste_percent",
	"sheet-width":   "sheet_width",
	"sheet-height":  "sheet_height",
	"price":         "price_per_sheet",
	"verbose":       "verbose",
}

// defaultsMap flattens the default config for the confmap provider.
func defaultsMap(c model.AppConfig) map[string]interface{} {
	return map[string]interface{}{
		"default_material_type": c.DefaultMaterialType,
		"default_thickness":     c.DefaultThickness,
		"default_kerf":          c.DefaultKerf,
		"scale":                 c.Scale,
		"output_dir":            c.OutputDir,
		"page_size":             c.PageSize,
		"banding_waste_percent": c.BandingWastePercent,
		"sheet_waste_percent":   c.SheetWastePercent,
		"sheet_width":           c.SheetWidth,
		"sheet_height":          c.SheetHeight,
		"price_per_sheet":       c.PricePerSheet,
		"verbose":               c.Verbose,
		"recent_jobs":           c.RecentJobs,
	}
}

// findConfigFile returns the explicit path, or the default config file if it
// exists, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := project.DefaultConfigPath(); fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadConfig builds the effective configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// It returns the config and the config file that was read, if any.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (model.AppConfig, string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultsMap(model.DefaultAppConfig()), "."), nil); err != nil {
		return model.AppConfig{}, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file. The YAML parser also reads the JSON written by SaveAppConfig.
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return model.AppConfig{}, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: CABINETCUT_DEFAULT_KERF -> default_kerf
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return model.AppConfig{}, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Explicitly set flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return model.AppConfig{}, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg model.AppConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return model.AppConfig{}, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.RecentJobs == nil {
		cfg.RecentJobs = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return model.AppConfig{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, used, nil
}
