package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rebaze/secrisk/internal/load"
	"github.com/rebaze/secrisk/internal/model"
)

var scannerHelp = map[model.Category]string{
	model.CategorySAST:      "SAST report (JSON array of findings)",
	model.CategorySCA:       "SCA report (JSON array of findings)",
	model.CategoryDAST:      "DAST report (JSON array of findings)",
	model.CategoryContainer: "Container image scan report (JSON array of findings)",
}

// scannerPaths holds one input path per scanner category.
type scannerPaths map[model.Category]*string

// bindScannerFlags registers --sast, --sca, --dast and --container on c.
// defaults maps each category to its default path; nil means no defaults.
func bindScannerFlags(c *cobra.Command, defaults map[model.Category]string) scannerPaths {
	paths := make(scannerPaths, len(model.Categories))
	for _, cat := range model.Categories {
		paths[cat] = c.Flags().String(string(cat), defaults[cat], scannerHelp[cat])
	}
	return paths
}

// load reads every configured report. Missing or malformed files are empty.
func (p scannerPaths) load() model.Inputs {
	inputs := make(model.Inputs, len(p))
	for _, cat := range model.Categories {
		var path string
		if ptr := p[cat]; ptr != nil {
			path = *ptr
		}
		inputs[cat] = load.Vulnerabilities(path)
	}
	return inputs
}
