package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rebaze/secrisk/internal/model"
)

// HighEPSS is the exploit probability at or above which a finding is called
// out in the exploit intelligence summary.
const HighEPSS = 0.7

// GenerateMarkdown writes a Markdown summary of the risk report, suitable for
// CI job summaries.
func GenerateMarkdown(path string, r model.RiskReport) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return fmt.Errorf("writing Markdown summary: %w", err)
	}
	return nil
}

// RenderMarkdown returns the Markdown summary of r.
func RenderMarkdown(r model.RiskReport) string {
	var b strings.Builder

	b.WriteString("# Security Risk Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n", r.Timestamp))
	b.WriteString(fmt.Sprintf("**Risk level:** %s (score %.2f / 100)\n\n", r.RiskLevel, r.RiskScore))

	counts := model.CountSeverities(r.Details)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	b.WriteString(fmt.Sprintf("| Critical | %d |\n", counts.Critical))
	b.WriteString(fmt.Sprintf("| High | %d |\n", counts.High))
	b.WriteString(fmt.Sprintf("| Medium | %d |\n", counts.Medium))
	b.WriteString(fmt.Sprintf("| Low | %d |\n", counts.Low))
	b.WriteString(fmt.Sprintf("| Unknown | %d |\n", counts.Unknown))
	b.WriteString(fmt.Sprintf("| **Total** | %d |\n\n", counts.Total))

	if len(r.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		b.WriteString("| Scanner | Findings |\n")
		b.WriteString("|---------|----------|\n")
		for _, c := range model.Categories {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", strings.ToUpper(string(c)), r.Sources[c]))
		}
		b.WriteString("\n")
	}

	if ctx := r.Context; ctx != (model.AppContext{}) {
		b.WriteString("## Application Context\n\n")
		b.WriteString(fmt.Sprintf("- **Exposure:** %s\n", orNA(ctx.Exposure)))
		b.WriteString(fmt.Sprintf("- **Data sensitivity:** %s\n", orNA(ctx.DataSensitivity)))
		b.WriteString(fmt.Sprintf("- **Business impact:** %s\n", orNA(ctx.BusinessImpact)))
		b.WriteString(fmt.Sprintf("- **Multiplier:** %.2f\n\n", ctx.Multiplier()))
	}

	kevCount, highEPSSCount := countExploitIntelligence(r.Details)
	if kevCount > 0 || highEPSSCount > 0 {
		b.WriteString("## Exploit Intelligence\n\n")
		if kevCount > 0 {
			b.WriteString(fmt.Sprintf("- **CISA KEV:** %d vulnerabilit%s actively exploited in the wild\n", kevCount, pluralSuffix(kevCount)))
		}
		if highEPSSCount > 0 {
			b.WriteString(fmt.Sprintf("- **High EPSS:** %d vulnerabilit%s with exploit probability >= 70%%\n", highEPSSCount, pluralSuffix(highEPSSCount)))
		}
		b.WriteString("\n")
	}

	if len(r.Details) == 0 {
		return b.String()
	}

	b.WriteString("## Findings by Severity\n\n")
	b.WriteString("| Severity | ID | Component | Title |\n")
	b.WriteString("|----------|----|-----------|-------|\n")

	sorted := make([]model.Vulnerability, len(r.Details))
	copy(sorted, r.Details)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityOrder(sorted[i].Severity()) < severityOrder(sorted[j].Severity())
	})
	for _, v := range sorted {
		title := firstString(v, "title", "name", "message", "description")
		if r := []rune(title); len(r) > 120 {
			title = string(r[:120])
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			v.Severity(),
			escapeCell(orNA(firstString(v, "id", "cve", "rule_id", "vulnerability_id"))),
			escapeCell(orNA(component(v))),
			escapeCell(orNA(title))))
	}
	b.WriteString("\n")

	return b.String()
}

func countExploitIntelligence(vulns []model.Vulnerability) (kevCount, highEPSSCount int) {
	for _, v := range vulns {
		if inKEV, _ := v["in_kev"].(bool); inKEV {
			kevCount++
		}
		if epss, ok := number(v["epss"]); ok && epss >= HighEPSS {
			highEPSSCount++
		}
	}
	return
}

// number reads a numeric field set either by enrichment or by the loader.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func firstString(v model.Vulnerability, keys ...string) string {
	for _, k := range keys {
		if s, ok := v[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func severityOrder(sev model.Severity) int {
	switch sev {
	case model.SeverityCritical:
		return 0
	case model.SeverityHigh:
		return 1
	case model.SeverityMedium:
		return 2
	case model.SeverityLow:
		return 3
	default:
		return 4
	}
}
