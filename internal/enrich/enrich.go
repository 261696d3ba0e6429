// Package enrich annotates findings with exploit intelligence from local
// copies of the CISA KEV catalog and the EPSS daily scores.
package enrich

import (
	"strings"

	"k8s.io/klog/v2"

	"github.com/rebaze/secrisk/internal/model"
)

// Record fields written by Annotate.
const (
	FieldEPSS           = "epss"
	FieldEPSSPercentile = "epss_percentile"
	FieldInKEV          = "in_kev"
	FieldKEVDueDate     = "kev_due_date"
	FieldKEVAction      = "kev_required_action"
)

// idFields are searched in order for a CVE identifier.
var idFields = []string{"cve", "cve_id", "id", "vulnerability_id"}

// Result holds metadata about the enrichment run.
type Result struct {
	EPSSAvailable bool
	KEVAvailable  bool
	KEVCount      int
	EPSSCount     int
}

// Sources names the local feed files. Empty paths are skipped.
type Sources struct {
	KEVPath  string
	EPSSPath string
}

// Load reads the configured feeds. A feed that cannot be read is reported as
// unavailable rather than failing the run.
func Load(src Sources) (map[string]EPSSEntry, map[string]KEVEntry) {
	var (
		epss map[string]EPSSEntry
		kev  map[string]KEVEntry
		err  error
	)
	if src.EPSSPath != "" {
		if epss, err = LoadEPSSFile(src.EPSSPath); err != nil {
			klog.Warningf("EPSS scores unavailable: %v", err)
		}
	}
	if src.KEVPath != "" {
		if kev, err = LoadKEVFile(src.KEVPath); err != nil {
			klog.Warningf("KEV catalog unavailable: %v", err)
		}
	}
	return epss, kev
}

// Annotate marks every finding whose CVE appears in the EPSS or KEV data.
// Findings are modified in place.
func Annotate(vulns []model.Vulnerability, epss map[string]EPSSEntry, kev map[string]KEVEntry) Result {
	result := Result{
		EPSSAvailable: epss != nil,
		KEVAvailable:  kev != nil,
	}

	for _, v := range vulns {
		cveID := ResolveCVE(v)
		if cveID == "" {
			continue
		}

		if entry, ok := epss[cveID]; ok {
			v[FieldEPSS] = entry.EPSS
			v[FieldEPSSPercentile] = entry.Percentile
			result.EPSSCount++
		}

		if entry, ok := kev[cveID]; ok {
			v[FieldInKEV] = true
			v[FieldKEVDueDate] = entry.DueDate
			v[FieldKEVAction] = entry.RequiredAction
			result.KEVCount++
		}
	}

	klog.V(1).Infof("enrichment: %d findings with EPSS, %d in KEV", result.EPSSCount, result.KEVCount)
	return result
}

// ResolveCVE returns the CVE a finding refers to: the first CVE-prefixed value
// among the identifier fields, else the first CVE in related_cves.
func ResolveCVE(v model.Vulnerability) string {
	for _, f := range idFields {
		if s, ok := v[f].(string); ok && isCVE(s) {
			return strings.ToUpper(strings.TrimSpace(s))
		}
	}
	related, _ := v["related_cves"].([]any)
	for _, rc := range related {
		if s, ok := rc.(string); ok && isCVE(s) {
			return strings.ToUpper(strings.TrimSpace(s))
		}
	}
	return ""
}

func isCVE(s string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "CVE-")
}
