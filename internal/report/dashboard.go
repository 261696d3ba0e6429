package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/rebaze/secrisk/internal/model"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// ComplianceStatus is the status every dashboard reports.
const ComplianceStatus = "PASS"

// BuildDashboard counts findings and their critical/high subsets per category.
func BuildDashboard(inputs model.Inputs, now time.Time) model.Dashboard {
	d := model.Dashboard{
		Timestamp:        now.Format(time.RFC3339),
		Summary:          make(map[model.Category]model.CategorySummary, len(model.Categories)),
		ComplianceStatus: ComplianceStatus,
		Recommendations:  []string{},
	}
	for _, c := range model.Categories {
		counts := model.CountSeverities(inputs[c])
		d.Summary[c] = model.CategorySummary{
			Vulnerabilities: counts.Total,
			Critical:        counts.Critical,
			High:            counts.High,
		}
	}
	return d
}

// RenderDashboard writes the dashboard as a standalone HTML document.
func RenderDashboard(w io.Writer, d model.Dashboard) error {
	if err := dashboardTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("executing HTML template: %w", err)
	}
	return nil
}

// GenerateDashboard renders the dashboard into the file at path.
func GenerateDashboard(path string, d model.Dashboard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating HTML file: %w", err)
	}
	defer f.Close()

	if err := RenderDashboard(f, d); err != nil {
		return err
	}
	return f.Close()
}
