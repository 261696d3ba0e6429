package model

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"critical", SeverityCritical},
		{"Critical", SeverityCritical},
		{"HIGH", SeverityHigh},
		{"medium", SeverityMedium},
		{" low\n", SeverityLow},
		{"negligible", SeverityUnknown},
		{"", SeverityUnknown},
	}
	for _, tt := range tests {
		if got := ParseSeverity(tt.in); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountSeverities(t *testing.T) {
	vulns := []Vulnerability{
		{"severity": "critical"},
		{"severity": "Critical"},
		{"severity": "high"},
		{"severity": "medium"},
		{"severity": "low"},
		{"severity": 3},
		{},
	}
	c := CountSeverities(vulns)
	want := SeverityCounts{Critical: 2, High: 1, Medium: 1, Low: 1, Unknown: 2, Total: 7}
	if c != want {
		t.Errorf("CountSeverities = %+v, want %+v", c, want)
	}
}

func TestInputsAllKeepsCategoryOrder(t *testing.T) {
	in := Inputs{
		CategoryContainer: {{"id": "c1"}},
		CategorySAST:      {{"id": "s1"}, {"id": "s2"}},
		CategoryDAST:      {{"id": "d1"}},
	}
	all := in.All()
	var ids []string
	for _, v := range all {
		ids = append(ids, v["id"].(string))
	}
	want := []string{"s1", "s2", "d1", "c1"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestInputsAllEmptyIsNonNil(t *testing.T) {
	if all := (Inputs{}).All(); all == nil || len(all) != 0 {
		t.Errorf("All() on empty inputs = %#v, want empty non-nil slice", all)
	}
}

func TestDashboardRowsAlwaysFour(t *testing.T) {
	d := Dashboard{Summary: map[Category]CategorySummary{
		CategorySCA: {Vulnerabilities: 3, Critical: 1},
	}}
	rows := d.Rows()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1].Category != CategorySCA || rows[1].Vulnerabilities != 3 || rows[1].Critical != 1 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[0].Vulnerabilities != 0 || rows[3].Category != CategoryContainer {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
