package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/export"
	"github.com/piwi3910/CabinetCut/internal/importer"
	"github.com/piwi3910/CabinetCut/internal/model"
	"github.com/piwi3910/CabinetCut/internal/project"
	"github.com/piwi3910/CabinetCut/internal/render"
)

// addJobFlags registers the flags every job-consuming command accepts: a
// single cabinet, a saved job, or an imported cabinet list, plus the material.
func addJobFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("width", 0, "Cabinet width in mm")
	f.Int("height", 0, "Cabinet height in mm")
	f.Int("depth", 0, "Cabinet depth in mm")
	f.Int("divisions", 0, "Number of internal shelves")
	f.Int("number", 1, "Cabinet number used in panel references")
	f.String("label", "", "Cabinet label used in panel references instead of the number")
	f.String("name", "", "Job name")

	f.String("job", "", "Saved job file ("+project.JobExtension+")")
	f.String("import", "", "CSV or Excel cabinet list to import")

	f.String("material", "", "Material preset name")
	f.String("material-type", "", "Material type, overrides the preset")
	f.Float64("thickness", 0, "Material thickness in mm, overrides the preset")
	f.Float64("kerf", 0, "Saw kerf in mm, overrides the preset")

	cmd.MarkFlagsMutuallyExclusive("job", "import")
	cmd.MarkFlagsMutuallyExclusive("job", "width")
	cmd.MarkFlagsMutuallyExclusive("import", "width")
	_ = cmd.MarkFlagFilename("job", strings.TrimPrefix(project.JobExtension, "."))
	_ = cmd.MarkFlagFilename("import", "csv", "txt", "xlsx", "xlsm", "xls")
}

// resolveMaterial starts from the base material, applies --material, then the
// individual overrides.
func resolveMaterial(cmd *cobra.Command, a *App, base model.Material) (model.Material, error) {
	f := cmd.Flags()
	m := base

	if name, _ := f.GetString("material"); name != "" {
		preset, ok := a.Presets.Find(name)
		if !ok {
			return model.Material{}, fmt.Errorf("unknown material preset %q (available: %s)", name, strings.Join(a.Presets.Names(), ", "))
		}
		m = preset.Material
	}
	if f.Changed("material-type") {
		m.Type, _ = f.GetString("material-type")
	}
	if f.Changed("thickness") {
		m.Thickness, _ = f.GetFloat64("thickness")
	}
	if f.Changed("kerf") {
		m.Kerf, _ = f.GetFloat64("kerf")
	}

	if err := m.Validate(); err != nil {
		return model.Material{}, err
	}
	return m, nil
}

func materialFlagsChanged(cmd *cobra.Command) bool {
	f := cmd.Flags()
	return f.Changed("material") || f.Changed("material-type") || f.Changed("thickness") || f.Changed("kerf")
}

// errNoCabinet is returned when no input source was given.
var errNoCabinet = errors.New("no cabinet given: use --width, --height and --depth, or --job, or --import")

// resolveJob builds the job a command operates on.
func resolveJob(cmd *cobra.Command, a *App) (model.Job, error) {
	f := cmd.Flags()
	name, _ := f.GetString("name")

	if path, _ := f.GetString("job"); path != "" {
		job, err := project.LoadJob(path)
		if err != nil {
			return model.Job{}, err
		}
		if materialFlagsChanged(cmd) {
			if job.Material, err = resolveMaterial(cmd, a, job.Material); err != nil {
				return model.Job{}, err
			}
		}
		if name != "" {
			job.Name = name
		}
		a.Log.Debug().Str("file", path).Int("cabinets", len(job.Cabinets)).Msg("loaded job")
		return job, nil
	}

	m, err := resolveMaterial(cmd, a, a.Config.DefaultMaterial())
	if err != nil {
		return model.Job{}, err
	}

	if path, _ := f.GetString("import"); path != "" {
		result := importer.ImportFile(path)
		for _, w := range result.Warnings {
			a.Log.Warn().Str("file", path).Msg(w)
		}
		if len(result.Errors) > 0 {
			return model.Job{}, fmt.Errorf("import of %s failed:\n  %s", path, strings.Join(result.Errors, "\n  "))
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		job := result.Job(name, m)
		if err := job.Validate(); err != nil {
			return model.Job{}, err
		}
		a.Log.Debug().Str("file", path).Int("cabinets", len(job.Cabinets)).Msg("imported cabinets")
		return job, nil
	}

	if !f.Changed("width") && !f.Changed("height") && !f.Changed("depth") {
		return model.Job{}, errNoCabinet
	}

	var c model.Cabinet
	c.Width, _ = f.GetInt("width")
	c.Height, _ = f.GetInt("height")
	c.Depth, _ = f.GetInt("depth")
	c.Divisions, _ = f.GetInt("divisions")
	if err := c.Validate(); err != nil {
		return model.Job{}, err
	}

	if name == "" {
		name = "cabinet"
	}
	job := model.NewJob(name, m)
	jc := model.JobCabinet{Cabinet: c}
	jc.Number, _ = f.GetInt("number")
	jc.Label, _ = f.GetString("label")
	job.Cabinets = append(job.Cabinets, jc)

	if err := job.Validate(); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// renderJob resolves the job and renders every cabinet at the configured scale.
func renderJob(cmd *cobra.Command, a *App) (model.Job, []render.CabinetSheet, error) {
	job, err := resolveJob(cmd, a)
	if err != nil {
		return model.Job{}, nil, err
	}
	sheets, err := render.RenderJob(cmd.Context(), job, a.Config.Scale)
	if err != nil {
		return model.Job{}, nil, err
	}
	a.Log.Debug().Int("cabinets", len(sheets)).Float64("scale", a.Config.Scale).Msg("rendered job")
	return job, sheets, nil
}

// outputPath returns the --out flag, or <output_dir>/<job name><ext>.
func outputPath(cmd *cobra.Command, a *App, job model.Job, ext string) string {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return out
	}
	return filepath.Join(a.Config.OutputDir, fileStem(job.Name)+ext)
}

// fileStem turns a job name into a safe file name.
func fileStem(name string) string {
	return export.FileStem(name, "cutlist")
}
