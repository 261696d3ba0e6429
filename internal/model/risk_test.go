package model

import (
	"math"
	"testing"
)

func vulnsOf(severities ...any) []Vulnerability {
	var out []Vulnerability
	for _, s := range severities {
		out = append(out, Vulnerability{"severity": s})
	}
	return out
}

func TestScoreEmpty(t *testing.T) {
	score := Score(nil, nil)
	if score != 0 {
		t.Fatalf("Score(nil) = %v, want 0", score)
	}
	if level := LevelFor(score); level != RiskInfo {
		t.Errorf("LevelFor(0) = %s, want INFO", level)
	}
}

func TestScoreSingleCritical(t *testing.T) {
	score := Score(vulnsOf("critical"), nil)
	if score != 10 {
		t.Fatalf("score = %v, want 10", score)
	}
	if level := LevelFor(score); level != RiskInfo {
		t.Errorf("level = %s, want INFO", level)
	}
}

func TestScoreClampsAtMax(t *testing.T) {
	var vulns []Vulnerability
	for i := 0; i < 10; i++ {
		vulns = append(vulns, Vulnerability{"severity": "critical"})
	}
	if score := Score(vulns, nil); score != 100 {
		t.Fatalf("ten criticals: score = %v, want 100", score)
	}

	vulns = append(vulns, vulnsOf("high", "high", "medium")...)
	score := Score(vulns, nil)
	if score != 100 {
		t.Fatalf("over the cap: score = %v, want 100", score)
	}
	if level := LevelFor(score); level != RiskCritical {
		t.Errorf("level = %s, want CRITICAL", level)
	}
}

func TestScoreWithContext(t *testing.T) {
	ctx := &AppContext{Exposure: "public", DataSensitivity: "high", BusinessImpact: "high"}
	score := Score(vulnsOf("critical"), ctx)
	if score != 51 {
		t.Fatalf("score = %v, want 51", score)
	}
	if level := LevelFor(score); level != RiskMedium {
		t.Errorf("level = %s, want MEDIUM", level)
	}
}

func TestScoreCaseInsensitiveAndUnknown(t *testing.T) {
	vulns := []Vulnerability{
		{"severity": "CRITICAL"},
		{"severity": "High"},
		{"severity": " medium "},
		{"severity": "Low"},
		{"severity": "negligible"},
		{"severity": 9},
		{"severity": nil},
		{"title": "no severity at all"},
	}
	if score := Score(vulns, nil); score != 22 {
		t.Errorf("score = %v, want 22", score)
	}
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	// 3 lows * 1.5 * 1.3
	ctx := &AppContext{Exposure: "public", BusinessImpact: "medium"}
	score := Score(vulnsOf("low", "low", "low"), ctx)
	if score != 5.85 {
		t.Errorf("score = %v, want 5.85", score)
	}
}

func TestScoreBounds(t *testing.T) {
	severities := []string{"critical", "high", "medium", "low", "bogus"}
	contexts := []*AppContext{
		nil,
		{},
		{Exposure: "public", DataSensitivity: "high", BusinessImpact: "high"},
		{Exposure: "internal", DataSensitivity: "confidential", BusinessImpact: "medium"},
	}
	for n := 0; n < 40; n++ {
		var vulns []Vulnerability
		for i := 0; i < n; i++ {
			vulns = append(vulns, Vulnerability{"severity": severities[i%len(severities)]})
		}
		for _, ctx := range contexts {
			score := Score(vulns, ctx)
			if score < 0 || score > MaxScore {
				t.Fatalf("n=%d ctx=%+v: score %v out of [0,100]", n, ctx, score)
			}
		}
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		ctx  AppContext
		want float64
	}{
		{AppContext{}, 1.0},
		{AppContext{Exposure: "internal"}, 1.0},
		{AppContext{Exposure: "public"}, 1.5},
		{AppContext{Exposure: "PUBLIC"}, 1.5},
		{AppContext{DataSensitivity: "confidential"}, 1.5},
		{AppContext{DataSensitivity: "high"}, 2.0},
		{AppContext{BusinessImpact: "medium"}, 1.3},
		{AppContext{BusinessImpact: "high"}, 1.7},
		{AppContext{Exposure: "dmz", DataSensitivity: "secret", BusinessImpact: "severe"}, 1.0},
	}
	for _, tt := range tests {
		if got := tt.ctx.Multiplier(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Multiplier(%+v) = %v, want %v", tt.ctx, got, tt.want)
		}
	}
}

func TestLevelForBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{100, RiskCritical},
		{80, RiskCritical},
		{79.99, RiskHigh},
		{60, RiskHigh},
		{59.99, RiskMedium},
		{40, RiskMedium},
		{39.99, RiskLow},
		{20, RiskLow},
		{19.99, RiskInfo},
		{0, RiskInfo},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
