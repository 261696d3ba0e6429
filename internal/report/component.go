package report

import (
	"strings"

	"github.com/rebaze/secrisk/internal/model"
)

// component names the package a finding affects, from its package and
// version fields or, failing that, its Package URL.
func component(v model.Vulnerability) string {
	name := firstString(v, "package", "pkg_name", "component")
	version := firstString(v, "version", "installed_version")
	if name == "" {
		if purl := firstString(v, "purl"); purl != "" {
			_, name, version = parsePURL(purl)
		}
	}
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + "@" + version
}

// parsePURL extracts type, namespace+name, and version from a PURL string.
// It strips qualifiers (?) and subpath (#) before parsing.
// Example: "pkg:maven/org.apache.commons/commons-lang3@3.12.0" → "maven", "org.apache.commons/commons-lang3", "3.12.0"
func parsePURL(purl string) (typ, name, version string) {
	s := purl

	if idx := strings.Index(s, "#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "?"); idx >= 0 {
		s = s[:idx]
	}

	s = strings.TrimPrefix(s, "pkg:")

	slashIdx := strings.Index(s, "/")
	if slashIdx < 0 {
		return s, "", ""
	}
	typ = s[:slashIdx]
	remainder := s[slashIdx+1:]

	if atIdx := strings.LastIndex(remainder, "@"); atIdx >= 0 {
		name = remainder[:atIdx]
		version = remainder[atIdx+1:]
	} else {
		name = remainder
	}
	return typ, name, version
}
