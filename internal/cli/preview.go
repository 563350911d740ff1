package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/ui"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Open a window with the panel diagrams and inventory",
		Long: `Render the job and open a read-only desktop window showing every panel
diagram, the inventory table and the edge banding summary. The window can
export the job to SVG or PDF.`,
		Example: `  cabinetcut preview --width 600 --height 720 --depth 560 --divisions 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			job, sheets, err := renderJob(cmd, a)
			if err != nil {
				return err
			}
			a.Log.Debug().Str("job", job.Name).Msg("opening preview")
			ui.ShowPreview(job, sheets, ui.Options{
				BandingWastePercent: a.Config.BandingWastePercent,
				PageSize:            a.Config.PageSize,
			})
			return nil
		},
	}
	addJobFlags(cmd)
	return cmd
}
