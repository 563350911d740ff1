package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/project"
)

// NewJobCommand creates the job command group.
func NewJobCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Save jobs and list recently saved ones",
	}
	cmd.AddCommand(newJobSaveCommand())
	cmd.AddCommand(newJobRecentCommand())
	return cmd
}

func newJobSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Save the given cabinets and material as a job file",
		Long: `Save a job built from --width/--height/--depth or --import, together with its
material, so later commands can use it with --job.

The file gets the ` + project.JobExtension + ` extension if it has none and is added to the
recent jobs list in the config file.`,
		Example: `  cabinetcut job save kitchen --import kitchen.csv --material melamine-16
  cabinetcut pdf --job kitchen.cabcut`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			job, err := resolveJob(cmd, a)
			if err != nil {
				return err
			}
			path := project.JobPath(args[0])
			if err := project.SaveJob(path, job); err != nil {
				return err
			}

			if err := rememberJob(a, path); err != nil {
				a.Log.Warn().Err(err).Msg("failed to update recent jobs")
			}

			a.Log.Info().Str("file", path).Int("cabinets", len(job.Cabinets)).Msg("saved job")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	addJobFlags(cmd)
	return cmd
}

func newJobRecentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently saved jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			if len(a.Config.RecentJobs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No recent jobs.")
				return nil
			}
			for _, p := range a.Config.RecentJobs {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

// rememberJob records path in the config file's recent jobs. It rewrites the
// file as stored, so flag and env overrides are not persisted.
func rememberJob(a *App, path string) error {
	stored, err := project.LoadAppConfig(a.ConfigPath)
	if err != nil {
		return err
	}
	stored.AddRecentJob(path)
	a.Config.AddRecentJob(path)
	return project.SaveAppConfig(a.ConfigPath, stored)
}
