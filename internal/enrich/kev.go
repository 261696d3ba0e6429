package enrich

import (
	"encoding/json"
	"fmt"
	"os"
)

// KEVEntry holds data for a single KEV catalog entry.
type KEVEntry struct {
	DueDate        string `json:"dueDate"`
	RequiredAction string `json:"requiredAction"`
}

type kevCatalog struct {
	Vulnerabilities []kevVuln `json:"vulnerabilities"`
}

type kevVuln struct {
	CVEID          string `json:"cveID"`
	DueDate        string `json:"dueDate"`
	RequiredAction string `json:"requiredAction"`
}

// LoadKEVFile reads a downloaded copy of the CISA Known Exploited
// Vulnerabilities catalog and returns its entries keyed by CVE ID.
func LoadKEVFile(path string) (map[string]KEVEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading KEV catalog: %w", err)
	}

	var catalog kevCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing KEV JSON: %w", err)
	}

	entries := make(map[string]KEVEntry, len(catalog.Vulnerabilities))
	for _, v := range catalog.Vulnerabilities {
		if v.CVEID == "" {
			continue
		}
		entries[v.CVEID] = KEVEntry{
			DueDate:        v.DueDate,
			RequiredAction: v.RequiredAction,
		}
	}
	return entries, nil
}
