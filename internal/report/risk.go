package report

import (
	"fmt"
	"time"

	"github.com/rebaze/secrisk/internal/model"
	"github.com/rebaze/secrisk/internal/output"
)

// BuildRiskReport consolidates every category's findings into one report and
// scores them against ctx.
func BuildRiskReport(inputs model.Inputs, ctx model.AppContext, now time.Time) model.RiskReport {
	all := inputs.All()
	score := model.Score(all, &ctx)

	sources := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		sources[c] = len(inputs[c])
	}

	return model.RiskReport{
		Timestamp:            now.Format(time.RFC3339),
		TotalVulnerabilities: len(all),
		RiskScore:            score,
		RiskLevel:            model.LevelFor(score),
		Context:              ctx,
		Sources:              sources,
		Details:              all,
	}
}

// WriteRiskReport stores the report as indented JSON.
func WriteRiskReport(path string, r model.RiskReport) error {
	if err := output.WriteJSON(path, r); err != nil {
		return fmt.Errorf("writing risk report: %w", err)
	}
	return nil
}
