package enrich

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EPSSEntry holds the EPSS score and percentile for a single CVE.
type EPSSEntry struct {
	EPSS       float64 `json:"epss"`
	Percentile float64 `json:"percentile"`
}

// LoadEPSSFile reads a daily EPSS scores export (epss_scores-YYYY-MM-DD.csv),
// gzip-compressed when the name ends in .gz, and returns the scores keyed by
// CVE ID.
func LoadEPSSFile(path string) (map[string]EPSSEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening EPSS file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing EPSS data: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return parseEPSSCSV(r)
}

// parseEPSSCSV parses the EPSS CSV format. It skips lines starting with #
// and expects columns: cve, epss, percentile.
func parseEPSSCSV(r io.Reader) (map[string]EPSSEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading EPSS CSV: %w", err)
	}

	// The model version comment precedes the header and confuses encoding/csv.
	lines := strings.Split(string(data), "\n")
	var clean []string
	for _, line := range lines {
		if !strings.HasPrefix(line, "#") {
			clean = append(clean, line)
		}
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(clean, "\n")))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading EPSS CSV header: %w", err)
	}

	cveIdx, epssIdx, pctIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "cve":
			cveIdx = i
		case "epss":
			epssIdx = i
		case "percentile":
			pctIdx = i
		}
	}
	if cveIdx < 0 || epssIdx < 0 || pctIdx < 0 {
		return nil, fmt.Errorf("EPSS CSV missing required columns (cve, epss, percentile)")
	}

	entries := make(map[string]EPSSEntry)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if len(record) <= cveIdx || len(record) <= epssIdx || len(record) <= pctIdx {
			continue
		}
		cve := strings.TrimSpace(record[cveIdx])
		epss, err1 := strconv.ParseFloat(strings.TrimSpace(record[epssIdx]), 64)
		pct, err2 := strconv.ParseFloat(strings.TrimSpace(record[pctIdx]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		entries[cve] = EPSSEntry{EPSS: epss, Percentile: pct}
	}

	return entries, nil
}
