package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/project"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, show, back up and restore the configuration",
		Long: `Manage the CabinetCut configuration file.

Settings are resolved in this order, later sources winning:
  defaults, config file, CABINETCUT_* environment variables, flags.`,
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigBackupCommand())
	cmd.AddCommand(newConfigRestoreCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			force, _ := cmd.Flags().GetBool("force")
			if fileExists(a.ConfigPath) && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", a.ConfigPath)
			}
			if err := project.SaveAppConfig(a.ConfigPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.ConfigPath)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			data, err := json.MarshalIndent(a.Config, "", "  ")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.ConfigFile != "" {
				_, _ = fmt.Fprintf(out, "# %s\n", a.ConfigFile)
			}
			_, _ = fmt.Fprintln(out, string(data))
			return nil
		},
	}
}

func newConfigBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup FILE",
		Short: "Write the stored config and custom material presets to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			stored, err := project.LoadAppConfig(a.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			if err := project.ExportAllData(args[0], stored, a.Presets); err != nil {
				return err
			}
			a.Log.Info().Str("file", args[0]).Int("presets", len(a.Presets.Presets)).Msg("wrote backup")
			return nil
		},
	}
}

func newConfigRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the config and custom material presets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.ConfigPath, backup.Config); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			if err := project.SaveMaterialPresets(a.PresetsPath, backup.Presets); err != nil {
				return fmt.Errorf("failed to save material presets: %w", err)
			}
			a.Log.Info().
				Str("file", args[0]).
				Str("version", backup.Version).
				Int("presets", len(backup.Presets.Presets)).
				Msg("restored backup")
			return nil
		},
	}
}
