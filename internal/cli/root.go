// Package cli provides the cabinetcut command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/project"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// appKey is used to store the App in the command context.
type appKey struct{}

// App is the state shared by every subcommand once the root has loaded the
// configuration.
type App struct {
	Config      model.AppConfig
	ConfigFile  string // File the config was read from, "" if none
	ConfigPath  string // File config writes go to
	PresetsPath string
	Presets     model.PresetStore
	Log         zerolog.Logger
}

// NewLogger builds the console logger used by the CLI. verbose lowers the
// level to debug.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// presetsPathFor keeps the presets file next to an explicit config file.
func presetsPathFor(cfgFile string) string {
	if cfgFile != "" {
		return filepath.Join(filepath.Dir(cfgFile), "materials.json")
	}
	return project.DefaultPresetsPath()
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "cabinetcut",
		Short: "CabinetCut - cabinet panel cut lists",
		Long: `CabinetCut derives the panels of carcass cabinets and renders their cut list.

Each cabinet (width, height, depth and shelf count) expands into two sides,
top, bottom, door and one panel per shelf. The result can be printed as an
inventory table or exported as SVG diagrams, a PDF cut list, Avery labels,
Excel or DXF.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			a := &App{
				Config:      cfg,
				ConfigFile:  used,
				ConfigPath:  cfgFile,
				PresetsPath: presetsPathFor(cfgFile),
				Log:         NewLogger(cmd.ErrOrStderr(), cfg.Verbose),
			}
			if a.ConfigPath == "" {
				a.ConfigPath = project.DefaultConfigPath()
			}

			a.Presets, err = project.LoadMaterialPresets(a.PresetsPath)
			if err != nil {
				return fmt.Errorf("failed to load material presets: %w", err)
			}

			if used != "" {
				a.Log.Debug().Str("file", used).Msg("using config file")
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ~/.cabinetcut/config.json)")
	pf.Float64("scale", 0, "Drawing units per millimetre")
	pf.String("output-dir", "", "Directory export commands write to")
	pf.String("page-size", "", "PDF page size (A4|Letter)")
	pf.Float64("banding-waste", 0, "Edge banding waste allowance in percent")
	pf.Float64("sheet-waste", 0, "Sheet waste allowance in percent")
	pf.Float64("sheet-width", 0, "Stock sheet width in mm")
	pf.Float64("sheet-height", 0, "Stock sheet height in mm")
	pf.String("price", "", "Price per stock sheet")
	pf.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("page-size", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"A4", "Letter"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewPanelsCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewPDFCommand())
	rootCmd.AddCommand(NewLabelsCommand())
	rootCmd.AddCommand(NewXLSXCommand())
	rootCmd.AddCommand(NewDXFCommand())
	rootCmd.AddCommand(NewBandingCommand())
	rootCmd.AddCommand(NewEstimateCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewMaterialsCommand())
	rootCmd.AddCommand(NewJobCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetApp retrieves the App from the command context.
func GetApp(cmd *cobra.Command) *App {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*App); ok {
			return a
		}
	}
	cfg := model.DefaultAppConfig()
	return &App{
		Config:      cfg,
		ConfigPath:  project.DefaultConfigPath(),
		PresetsPath: project.DefaultPresetsPath(),
		Presets:     model.NewPresetStore(),
		Log:         NewLogger(cmd.ErrOrStderr(), cfg.Verbose),
	}
}
