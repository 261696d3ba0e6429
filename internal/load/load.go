// Package load reads scanner reports and application context files.
//
// Loading is best-effort: a missing, unreadable or malformed file yields an
// empty value and is only logged.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/rebaze/secrisk/internal/model"
)

// JSON decodes the file at path into a T. Numbers landing in interface values
// are kept as json.Number so they are written back with their original digits.
func JSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return &v, nil
}

// Vulnerabilities returns the findings stored in a JSON array at path.
// Array elements that are not objects are skipped.
func Vulnerabilities(path string) []model.Vulnerability {
	vulns := make([]model.Vulnerability, 0)
	if path == "" {
		return vulns
	}
	items, err := JSON[[]any](path)
	if err != nil {
		logSkipped(path, err)
		return vulns
	}
	for _, item := range *items {
		if obj, ok := item.(map[string]any); ok {
			vulns = append(vulns, model.Vulnerability(obj))
		}
	}
	klog.V(2).Infof("loaded %d findings from %s", len(vulns), path)
	return vulns
}

// Context returns the application context stored at path. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. Fields that are not
// strings are ignored.
func Context(path string) model.AppContext {
	if path == "" {
		return model.AppContext{}
	}
	fields, err := contextFields(path)
	if err != nil {
		logSkipped(path, err)
		return model.AppContext{}
	}
	ctx := model.AppContext{
		Exposure:        stringField(fields, "exposure"),
		DataSensitivity: stringField(fields, "data_sensitivity"),
		BusinessImpact:  stringField(fields, "business_impact"),
	}
	klog.V(2).Infof("loaded application context from %s: %+v", path, ctx)
	return ctx
}

func contextFields(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var fields map[string]any
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		if fields == nil {
			return nil, fmt.Errorf("no mapping found")
		}
		return fields, nil
	default:
		fields, err := JSON[map[string]any](path)
		if err != nil {
			return nil, err
		}
		if *fields == nil {
			return nil, fmt.Errorf("no object found")
		}
		return *fields, nil
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func logSkipped(path string, err error) {
	if os.IsNotExist(err) {
		klog.V(1).Infof("%s not found, treating as empty", path)
		return
	}
	klog.V(1).Infof("ignoring %s: %v", path, err)
}
