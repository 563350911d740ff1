package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/project"
)

// NewMaterialsCommand creates the materials command group.
func NewMaterialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"material", "presets"},
		Short:   "Manage material presets",
		Long: `List, add, remove, export and import named material presets.

Built-in presets are always available. Custom presets are stored in
materials.json next to the config file and shadow built-ins of the same name.`,
	}
	cmd.AddCommand(newMaterialsListCommand())
	cmd.AddCommand(newMaterialsAddCommand())
	cmd.AddCommand(newMaterialsRemoveCommand())
	cmd.AddCommand(newMaterialsExportCommand())
	cmd.AddCommand(newMaterialsImportCommand())
	return cmd
}

func newMaterialsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom material presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Type", "Thickness (mm)", "Kerf (mm)", "Source"})
			for _, p := range model.BuiltinPresets() {
				t.AppendRow(presetRow(p, "built-in"))
			}
			for _, p := range a.Presets.Presets {
				t.AppendRow(presetRow(p, "custom"))
			}
			t.Render()
			return nil
		},
	}
}

func presetRow(p model.MaterialPreset, source string) table.Row {
	return table.Row{p.Name, p.Material.Type, model.FormatMM(p.Material.Thickness), model.FormatMM(p.Material.Kerf), source}
}

func newMaterialsAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Add or replace a custom material preset",
		Example: `  cabinetcut materials add oak-ply-19 --material-type "oak plywood" --thickness 19 --kerf 3.2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("preset name must not be empty")
			}
			f := cmd.Flags()
			mt, _ := f.GetString("material-type")
			thickness, _ := f.GetFloat64("thickness")
			kerf, _ := f.GetFloat64("kerf")

			preset := model.NewMaterialPreset(name, mt, thickness, kerf)
			if err := preset.Material.Validate(); err != nil {
				return err
			}
			a.Presets.Add(preset)
			if err := project.SaveMaterialPresets(a.PresetsPath, a.Presets); err != nil {
				return fmt.Errorf("failed to save material presets: %w", err)
			}
			a.Log.Info().Str("preset", name).Str("file", a.PresetsPath).Msg("saved material preset")
			return nil
		},
	}
	cmd.Flags().String("material-type", "", "Material type, e.g. plywood")
	cmd.Flags().Float64("thickness", 0, "Thickness in mm")
	cmd.Flags().Float64("kerf", 0, "Saw kerf in mm")
	_ = cmd.MarkFlagRequired("material-type")
	_ = cmd.MarkFlagRequired("thickness")
	return cmd
}

func newMaterialsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a custom material preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			if !a.Presets.Remove(args[0]) {
				return fmt.Errorf("no custom material preset named %q", args[0])
			}
			if err := project.SaveMaterialPresets(a.PresetsPath, a.Presets); err != nil {
				return fmt.Errorf("failed to save material presets: %w", err)
			}
			a.Log.Info().Str("preset", args[0]).Msg("removed material preset")
			return nil
		},
	}
}

func newMaterialsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a material preset to a JSON file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			preset, ok := a.Presets.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown material preset %q", args[0])
			}
			if err := project.ExportPreset(args[1], preset); err != nil {
				return fmt.Errorf("failed to export preset: %w", err)
			}
			a.Log.Info().Str("preset", preset.Name).Str("file", args[1]).Msg("exported material preset")
			return nil
		},
	}
}

func newMaterialsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add a material preset from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			preset, err := project.ImportPreset(args[0])
			if err != nil {
				return fmt.Errorf("failed to import preset: %w", err)
			}
			a.Presets.Add(preset)
			if err := project.SaveMaterialPresets(a.PresetsPath, a.Presets); err != nil {
				return fmt.Errorf("failed to save material presets: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", preset.Name)
			return nil
		},
	}
}
