// Package metrics exports the outcome of a risk assessment as Prometheus
// gauges in the node_exporter textfile collector format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rebaze/secrisk/internal/model"
)

// Collector holds the gauges of a single run on a private registry.
type Collector struct {
	registry *prometheus.Registry

	RiskScore       prometheus.Gauge
	Vulnerabilities *prometheus.GaugeVec
	SourceFindings  *prometheus.GaugeVec
	KEVFindings     prometheus.Gauge
	LastRun         prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RiskScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "secrisk_risk_score",
			Help: "Consolidated risk score (0-100) of the last assessment.",
		}),
		Vulnerabilities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "secrisk_vulnerabilities_total",
				Help: "Number of findings in the last assessment by severity.",
			},
			[]string{"severity"},
		),
		SourceFindings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "secrisk_source_findings_total",
				Help: "Number of findings in the last assessment by scanner category.",
			},
			[]string{"category"},
		),
		KEVFindings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "secrisk_kev_findings_total",
			Help: "Number of findings listed in the CISA KEV catalog.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "secrisk_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last assessment.",
		}),
	}
	c.registry.MustRegister(c.RiskScore, c.Vulnerabilities, c.SourceFindings, c.KEVFindings, c.LastRun)
	return c
}

// Observe sets every gauge from the report.
func (c *Collector) Observe(r model.RiskReport, now time.Time) {
	c.RiskScore.Set(r.RiskScore)

	counts := model.CountSeverities(r.Details)
	c.Vulnerabilities.WithLabelValues(string(model.SeverityCritical)).Set(float64(counts.Critical))
	c.Vulnerabilities.WithLabelValues(string(model.SeverityHigh)).Set(float64(counts.High))
	c.Vulnerabilities.WithLabelValues(string(model.SeverityMedium)).Set(float64(counts.Medium))
	c.Vulnerabilities.WithLabelValues(string(model.SeverityLow)).Set(float64(counts.Low))
	c.Vulnerabilities.WithLabelValues(string(model.SeverityUnknown)).Set(float64(counts.Unknown))

	for _, cat := range model.Categories {
		c.SourceFindings.WithLabelValues(string(cat)).Set(float64(r.Sources[cat]))
	}
	if r.KEVCount != nil {
		c.KEVFindings.Set(float64(*r.KEVCount))
	}
	c.LastRun.Set(float64(now.Unix()))
}

// WriteTextfile atomically writes the gathered metrics to path.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Export observes r and writes the metrics to path in one step.
func Export(path string, r model.RiskReport, now time.Time) error {
	c := NewCollector()
	c.Observe(r, now)
	return c.WriteTextfile(path)
}
