package cmd

import (
	"flag"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

type rootOptions struct {
	verbose bool
	quiet   bool
	noColor bool
}

// NewRootCmd builds the secrisk command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "secrisk",
		Short: "Consolidate security scanner findings into a dashboard or risk report",
		Long: "Aggregates SAST, SCA, DAST and container image scan results from JSON files.\n" +
			"Missing or unreadable scanner reports are treated as empty.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(opts.verbose)
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newDashboardCmd(opts))
	root.AddCommand(newRiskCmd(opts))
	root.AddCommand(newVerifyCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// initLogging configures klog on a private flag set so its flags stay out of
// the command line.
func initLogging(verbose bool) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	level := "0"
	if verbose {
		level = "2"
	}
	_ = fs.Set("v", level)
	_ = fs.Set("logtostderr", "true")
}
