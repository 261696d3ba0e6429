package model

import "strings"

// Vulnerability is a single scanner finding. Only the severity field is
// interpreted; every other field is carried through to the reports as-is.
type Vulnerability map[string]any

// Severity returns the record's severity, or SeverityUnknown when the field is
// missing, not a string, or not one of the recognised values.
func (v Vulnerability) Severity() Severity {
	s, _ := v["severity"].(string)
	return ParseSeverity(s)
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityUnknown  Severity = "unknown"
)

// ParseSeverity maps a scanner severity string onto a Severity, ignoring case
// and surrounding whitespace.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityCritical:
		return SeverityCritical
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// Category identifies the scanner family a report came from.
type Category string

const (
	CategorySAST      Category = "sast"
	CategorySCA       Category = "sca"
	CategoryDAST      Category = "dast"
	CategoryContainer Category = "container"
)

// Categories lists every scanner category in report order.
var Categories = []Category{CategorySAST, CategorySCA, CategoryDAST, CategoryContainer}

// Inputs holds the loaded findings of every scanner category.
type Inputs map[Category][]Vulnerability

// All concatenates the findings in report order.
func (in Inputs) All() []Vulnerability {
	all := make([]Vulnerability, 0)
	for _, c := range Categories {
		all = append(all, in[c]...)
	}
	return all
}

// AppContext describes how exposed and how valuable the scanned application is.
// Empty fields are neutral.
type AppContext struct {
	Exposure        string `json:"exposure,omitempty" yaml:"exposure,omitempty"`
	DataSensitivity string `json:"data_sensitivity,omitempty" yaml:"data_sensitivity,omitempty"`
	BusinessImpact  string `json:"business_impact,omitempty" yaml:"business_impact,omitempty"`
}

// Severity counts for reporting

type SeverityCounts struct {
	Critical int
	High     int
	Medium   int
	Low      int
	Unknown  int
	Total    int
}

func CountSeverities(vulns []Vulnerability) SeverityCounts {
	var c SeverityCounts
	for _, v := range vulns {
		switch v.Severity() {
		case SeverityCritical:
			c.Critical++
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		default:
			c.Unknown++
		}
		c.Total++
	}
	return c
}

// Dashboard

type CategorySummary struct {
	Vulnerabilities int `json:"vulnerabilities"`
	Critical        int `json:"critical"`
	High            int `json:"high"`
}

type Dashboard struct {
	Timestamp        string                       `json:"timestamp"`
	Summary          map[Category]CategorySummary `json:"summary"`
	ComplianceStatus string                       `json:"compliance_status"`
	// Recommendations is never filled in; the HTML template renders it only
	// when non-empty.
	Recommendations []string `json:"recommendations"`
}

// CategoryRow is one dashboard line.
type CategoryRow struct {
	Category Category
	CategorySummary
}

// Rows returns the per-category summaries in report order, one per category
// whether or not the category had any findings.
func (d Dashboard) Rows() []CategoryRow {
	rows := make([]CategoryRow, 0, len(Categories))
	for _, c := range Categories {
		rows = append(rows, CategoryRow{Category: c, CategorySummary: d.Summary[c]})
	}
	return rows
}

// Risk report

type RiskReport struct {
	Timestamp            string           `json:"timestamp"`
	TotalVulnerabilities int              `json:"total_vulnerabilities"`
	RiskScore            float64          `json:"risk_score"`
	RiskLevel            RiskLevel        `json:"risk_level"`
	Context              AppContext       `json:"context"`
	Sources              map[Category]int `json:"sources,omitempty"`
	KEVCount             *int             `json:"kev_count,omitempty"`
	Details              []Vulnerability  `json:"details"`
}
