package model

import (
	"math"
	"strings"
)

// RiskLevel is the band a risk score falls into.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskInfo     RiskLevel = "INFO"
)

// MaxScore is the ceiling every risk score is clamped to.
const MaxScore = 100.0

var severityWeights = map[Severity]float64{
	SeverityCritical: 10,
	SeverityHigh:     7,
	SeverityMedium:   4,
	SeverityLow:      1,
}

var (
	exposureFactors = map[string]float64{
		"internal": 1.0,
		"public":   1.5,
	}
	sensitivityFactors = map[string]float64{
		"low":          1.0,
		"confidential": 1.5,
		"high":         2.0,
	}
	impactFactors = map[string]float64{
		"low":    1.0,
		"medium": 1.3,
		"high":   1.7,
	}
)

// Weight returns the score contribution of a single severity.
func Weight(s Severity) float64 {
	return severityWeights[s]
}

// Multiplier is the product of the exposure, data sensitivity and business
// impact factors. Unknown or empty values count as 1.0.
func (c AppContext) Multiplier() float64 {
	return factor(exposureFactors, c.Exposure) *
		factor(sensitivityFactors, c.DataSensitivity) *
		factor(impactFactors, c.BusinessImpact)
}

func factor(table map[string]float64, value string) float64 {
	if f, ok := table[strings.ToLower(strings.TrimSpace(value))]; ok {
		return f
	}
	return 1.0
}

// Score sums the severity weights of vulns, applies the context multiplier
// when ctx is non-nil, clamps the result to MaxScore and rounds it to two
// decimal places.
func Score(vulns []Vulnerability, ctx *AppContext) float64 {
	var sum float64
	for _, v := range vulns {
		sum += Weight(v.Severity())
	}
	if ctx != nil {
		sum *= ctx.Multiplier()
	}
	return math.Round(math.Min(MaxScore, sum)*100) / 100
}

// LevelFor maps a score onto its risk band. Each band includes its lower bound.
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	case score >= 20:
		return RiskLow
	default:
		return RiskInfo
	}
}
