package enrich

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleEPSS = `#model_version:v2023.03.01,score_date:2024-01-15T00:00:00+0000
cve,epss,percentile
CVE-2021-44228,0.97565,0.99961
CVE-2023-1234,0.00150,0.45000
CVE-2022-9999,0.70000,0.95000
`

func TestParseEPSSCSV(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		want    map[string]EPSSEntry
		wantErr bool
	}{
		{
			name: "valid",
			csv:  sampleEPSS,
			want: map[string]EPSSEntry{
				"CVE-2021-44228": {EPSS: 0.97565, Percentile: 0.99961},
				"CVE-2023-1234":  {EPSS: 0.00150, Percentile: 0.45000},
				"CVE-2022-9999":  {EPSS: 0.70000, Percentile: 0.95000},
			},
		},
		{
			name: "header only",
			csv:  "#comment\ncve,epss,percentile\n",
			want: map[string]EPSSEntry{},
		},
		{
			name: "malformed rows skipped",
			csv: `cve,epss,percentile
CVE-2021-44228,0.97565,0.99961
bad-row
CVE-2023-1234,notanumber,0.45000
CVE-2022-5678,0.50000,0.80000
`,
			want: map[string]EPSSEntry{
				"CVE-2021-44228": {EPSS: 0.97565, Percentile: 0.99961},
				"CVE-2022-5678":  {EPSS: 0.50000, Percentile: 0.80000},
			},
		},
		{
			name: "columns in any order",
			csv:  "percentile,cve,epss\n0.5,CVE-2020-0001,0.1\n",
			want: map[string]EPSSEntry{
				"CVE-2020-0001": {EPSS: 0.1, Percentile: 0.5},
			},
		},
		{
			name:    "missing column",
			csv:     "cve,epss\nCVE-2020-0001,0.1\n",
			wantErr: true,
		},
		{
			name:    "empty",
			csv:     "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEPSSCSV(strings.NewReader(tt.csv))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for cve, w := range tt.want {
				if got[cve] != w {
					t.Errorf("%s = %+v, want %+v", cve, got[cve], w)
				}
			}
		})
	}
}

func TestLoadEPSSFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epss_scores-2024-01-15.csv")
	if err := os.WriteFile(path, []byte(sampleEPSS), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := LoadEPSSFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestLoadEPSSFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epss_scores-2024-01-15.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleEPSS)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadEPSSFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if e := entries["CVE-2021-44228"]; e.EPSS != 0.97565 {
		t.Errorf("CVE-2021-44228 = %+v", e)
	}
}

func TestLoadEPSSFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadEPSSFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}

	notGzip := filepath.Join(dir, "scores.csv.gz")
	if err := os.WriteFile(notGzip, []byte(sampleEPSS), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadEPSSFile(notGzip)
	if err == nil || !strings.Contains(err.Error(), "decompressing") {
		t.Errorf("expected decompression error, got %v", err)
	}
}
