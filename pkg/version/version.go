// Package version provides CellML specification version parsing, comparison,
// and namespace helpers.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the specification version this library emits.
const Current = "2.0"

// namespacePrefix is the common stem of all CellML namespace URIs.
const namespacePrefix = "http://www.cellml.org/cellml/"

// SpecVersion represents a parsed "major.minor" specification version.
type SpecVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SpecVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SpecVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SpecVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v SpecVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v SpecVersion) Compatible(other SpecVersion) bool {
	return v.Major == other.Major
}

// Namespace returns the CellML namespace URI for a version:
// "http://www.cellml.org/cellml/major.minor#".
func (v SpecVersion) Namespace() string {
	return fmt.Sprintf("%s%d.%d#", namespacePrefix, v.Major, v.Minor)
}

// FromNamespace extracts the specification version from a CellML namespace
// URI.
func FromNamespace(ns string) (SpecVersion, error) {
	if !strings.HasPrefix(ns, namespacePrefix) {
		return SpecVersion{}, fmt.Errorf("not a CellML namespace: %q", ns)
	}

	suffix := strings.TrimSuffix(ns[len(namespacePrefix):], "#")
	if suffix == "" {
		return SpecVersion{}, fmt.Errorf("empty version in namespace: %q", ns)
	}

	v, err := Parse(suffix)
	if err != nil {
		return SpecVersion{}, fmt.Errorf("invalid version in namespace %q: %w", ns, err)
	}

	return v, nil
}

// SupportedNamespaces returns the namespace URIs of all embedded spec
// manifests.
func SupportedNamespaces() ([]string, error) {
	versions, err := AvailableSpecs()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, ver := range versions {
		v, err := Parse(ver)
		if err != nil {
			return nil, err
		}
		out = append(out, v.Namespace())
	}
	return out, nil
}
