package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebaze/secrisk/internal/model"
	"github.com/rebaze/secrisk/internal/output"
	"github.com/rebaze/secrisk/internal/report"
	"github.com/rebaze/secrisk/internal/tui"
)

var dashboardDefaults = map[model.Category]string{
	model.CategorySAST:      "sast-report.json",
	model.CategorySCA:       "sca-report.json",
	model.CategoryDAST:      "dast-report.json",
	model.CategoryContainer: "container-report.json",
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	c := &cobra.Command{
		Use:   "dashboard",
		Short: "Generate an HTML security dashboard",
		Long:  "Counts the findings of each scanner report, with their critical and high subsets, and renders them as a standalone HTML page.",
		Args:  cobra.NoArgs,
	}
	paths := bindScannerFlags(c, dashboardDefaults)
	c.Flags().StringVar(&outPath, "output", "test-dashboard.html", "Output HTML file")

	c.RunE = func(cmd *cobra.Command, args []string) error {
		var inputs model.Inputs

		steps := []tui.Step{
			{
				Name: "Loading scanner reports",
				Run: func() error {
					inputs = paths.load()
					return nil
				},
			},
			{
				Name: "Building dashboard",
				Run: func() error {
					if err := output.EnsureParent(outPath); err != nil {
						return fmt.Errorf("creating output directory: %w", err)
					}
					return report.GenerateDashboard(outPath, report.BuildDashboard(inputs, time.Now()))
				},
			},
		}

		out := cmd.OutOrStdout()
		if err := tui.Run(steps, out, opts.showProgress(out)); err != nil {
			return err
		}
		if !opts.quiet {
			printGenerated(out, "Dashboard", outPath)
		}
		return nil
	}
	return c
}
