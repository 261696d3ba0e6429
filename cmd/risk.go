package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/rebaze/secrisk/internal/enrich"
	"github.com/rebaze/secrisk/internal/load"
	"github.com/rebaze/secrisk/internal/metrics"
	"github.com/rebaze/secrisk/internal/model"
	"github.com/rebaze/secrisk/internal/output"
	"github.com/rebaze/secrisk/internal/report"
	"github.com/rebaze/secrisk/internal/sign"
	"github.com/rebaze/secrisk/internal/tui"
)

type riskOptions struct {
	appContext   string
	output       string
	markdown     string
	kevCatalog   string
	epssScores   string
	metricsFile  string
	signKey      string
	scannerPaths scannerPaths
}

func newRiskCmd(root *rootOptions) *cobra.Command {
	opts := &riskOptions{}

	c := &cobra.Command{
		Use:   "risk",
		Short: "Generate a consolidated JSON risk report",
		Long: "Combines the findings of all scanner reports, weights them by severity " +
			"(critical=10, high=7, medium=4, low=1), applies the application context " +
			"multiplier and writes the score, risk level and findings as JSON.",
		Args: cobra.NoArgs,
	}
	opts.scannerPaths = bindScannerFlags(c, nil)
	c.Flags().StringVar(&opts.appContext, "app-context", "", "Application context file (JSON or YAML) with exposure, data_sensitivity and business_impact")
	c.Flags().StringVar(&opts.output, "output", "risk-report.json", "Output JSON file")
	c.Flags().StringVar(&opts.markdown, "markdown", "", "Also write a Markdown summary to this file")
	c.Flags().StringVar(&opts.kevCatalog, "kev-catalog", "", "Local copy of the CISA KEV catalog JSON for exploit annotation")
	c.Flags().StringVar(&opts.epssScores, "epss-scores", "", "Local EPSS scores CSV (optionally .gz) for exploit annotation")
	c.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this file")
	c.Flags().StringVar(&opts.signKey, "sign-key", "", "Armored OpenPGP private key; writes a detached signature next to the report (passphrase from "+sign.PassphraseEnv+")")

	c.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := opts.run(cmd, root)
		if err != nil {
			return err
		}
		if !root.quiet {
			out := cmd.OutOrStdout()
			printGenerated(out, "Risk report", opts.output)
			printRisk(out, r)
		}
		return nil
	}
	return c
}

func (o *riskOptions) run(cmd *cobra.Command, root *rootOptions) (model.RiskReport, error) {
	var (
		inputs  model.Inputs
		appCtx  model.AppContext
		kevSeen *int
		r       model.RiskReport
	)

	steps := []tui.Step{
		{
			Name: "Loading scanner reports",
			Run: func() error {
				inputs = o.scannerPaths.load()
				appCtx = load.Context(o.appContext)
				return nil
			},
		},
	}

	if o.kevCatalog != "" || o.epssScores != "" {
		steps = append(steps, tui.Step{
			Name: "Enriching with exploit intelligence",
			Run: func() error {
				epss, kev := enrich.Load(enrich.Sources{KEVPath: o.kevCatalog, EPSSPath: o.epssScores})
				res := enrich.Annotate(inputs.All(), epss, kev)
				if res.KEVAvailable {
					kevSeen = &res.KEVCount
				}
				return nil
			},
		})
	}

	steps = append(steps, tui.Step{
		Name: "Scoring and writing risk report",
		Run: func() error {
			r = report.BuildRiskReport(inputs, appCtx, time.Now())
			r.KEVCount = kevSeen
			if err := output.EnsureParent(o.output); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			return report.WriteRiskReport(o.output, r)
		},
	})

	if o.markdown != "" {
		steps = append(steps, tui.Step{
			Name: "Writing Markdown summary",
			Run: func() error {
				return report.GenerateMarkdown(o.markdown, r)
			},
		})
	}

	if o.signKey != "" {
		steps = append(steps, tui.Step{
			Name: "Signing risk report",
			Run: func() error {
				sigPath, err := sign.DetachSignFile(o.output, o.signKey, []byte(os.Getenv(sign.PassphraseEnv)))
				if err != nil {
					return err
				}
				klog.V(1).Infof("signature written to %s", sigPath)
				return nil
			},
		})
	}

	if o.metricsFile != "" {
		steps = append(steps, tui.Step{
			Name: "Exporting metrics",
			Run: func() error {
				return metrics.Export(o.metricsFile, r, time.Now())
			},
		})
	}

	out := cmd.OutOrStdout()
	if err := tui.Run(steps, out, root.showProgress(out)); err != nil {
		return model.RiskReport{}, err
	}
	return r, nil
}
