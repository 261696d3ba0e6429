package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rebaze/secrisk/internal/model"
	"github.com/rebaze/secrisk/internal/tui"
)

const checkEmoji = "✅"

var (
	success = color.New(color.FgGreen, color.Bold).SprintfFunc()
	info    = color.New(color.FgCyan, color.Bold).SprintfFunc()

	levelColors = map[model.RiskLevel]*color.Color{
		model.RiskCritical: color.New(color.BgRed, color.FgWhite, color.Bold),
		model.RiskHigh:     color.New(color.FgRed, color.Bold),
		model.RiskMedium:   color.New(color.FgYellow, color.Bold),
		model.RiskLow:      color.New(color.FgBlue, color.Bold),
		model.RiskInfo:     color.New(color.FgGreen),
	}
)

func colorLevel(level model.RiskLevel) string {
	if c, ok := levelColors[level]; ok {
		return c.Sprint(level)
	}
	return string(level)
}

func printGenerated(w io.Writer, what, path string) {
	fmt.Fprintf(w, "%s %s generated: %s\n", checkEmoji, what, success("%s", path))
}

func printRisk(w io.Writer, r model.RiskReport) {
	fmt.Fprintf(w, "Risk level: %s (score %s)\n", colorLevel(r.RiskLevel), info("%.2f", r.RiskScore))
}

func (o *rootOptions) showProgress(w io.Writer) bool {
	return !o.quiet && tui.Interactive(w)
}
