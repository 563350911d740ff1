package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetCut/internal/export"
	"github.com/piwi3910/CabinetCut/internal/model"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "text", "Table format (text|markdown|csv|html)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "csv", "html"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func tableFormat(cmd *cobra.Command) (export.TableFormat, error) {
	s, _ := cmd.Flags().GetString("format")
	return export.ParseTableFormat(s)
}

// NewPanelsCommand creates the panels command.
func NewPanelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Print the panel inventory of one or more cabinets",
		Long: `Derive the panels of each cabinet and print one inventory table per cabinet.

Every panel is listed with its reference, type, finished dimensions, material,
banded edges and quantity.`,
		Example: `  # A 600 wide base cabinet with two shelves
  cabinetcut panels --width 600 --height 720 --depth 560 --divisions 2

  # Every cabinet of a CSV list, as Markdown
  cabinetcut panels --import kitchen.csv --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPanels(cmd)
		},
	}
	addJobFlags(cmd)
	addFormatFlag(cmd)
	return cmd
}

func runPanels(cmd *cobra.Command) error {
	a := GetApp(cmd)
	format, err := tableFormat(cmd)
	if err != nil {
		return err
	}
	_, sheets, err := renderJob(cmd, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, sheet := range sheets {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		export.WriteInventoryTable(out, "Cabinet "+sheet.Cabinet.Ref(), sheet.Rows, format)
	}
	return nil
}

// NewBandingCommand creates the banding command.
func NewBandingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banding",
		Short: "Print the edge banding required per panel and in total",
		Long: `Sum the banded edges of every panel and list the length each panel needs.

The total is reported with the configured waste allowance (--banding-waste).`,
		Example: `  cabinetcut banding --width 600 --height 720 --depth 560 --banding-waste 15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBanding(cmd)
		},
	}
	addJobFlags(cmd)
	addFormatFlag(cmd)
	return cmd
}

func runBanding(cmd *cobra.Command) error {
	a := GetApp(cmd)
	format, err := tableFormat(cmd)
	if err != nil {
		return err
	}
	job, err := resolveJob(cmd, a)
	if err != nil {
		return err
	}

	panels := job.Panels()
	summary := model.CalculateEdgeBanding(panels, a.Config.BandingWastePercent)
	export.WriteBanding(cmd.OutOrStdout(), model.CalculatePerPanelEdgeBanding(panels), summary, format)
	return nil
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the stock sheets and cost of a job",
		Long: `Estimate how many stock sheets a job needs from the total panel area, the
configured sheet size and waste allowance, and the price per sheet.

This is an area estimate, not a nesting: it assumes panels can be packed
without offcut loss beyond the waste allowance.`,
		Example: `  cabinetcut estimate --import kitchen.csv --price 54.90 --sheet-waste 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd)
		},
	}
	addJobFlags(cmd)
	addFormatFlag(cmd)
	return cmd
}

func purchaseEstimate(a *App, job model.Job) model.PurchaseEstimate {
	return model.CalculatePurchaseEstimate(job.Panels(), a.Config.Sheet(), job.Material.Kerf, a.Config.SheetWastePercent, a.Config.Price())
}

func runEstimate(cmd *cobra.Command) error {
	a := GetApp(cmd)
	format, err := tableFormat(cmd)
	if err != nil {
		return err
	}
	job, err := resolveJob(cmd, a)
	if err != nil {
		return err
	}
	export.WriteEstimate(cmd.OutOrStdout(), purchaseEstimate(a, job), format)
	return nil
}
