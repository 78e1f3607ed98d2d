package version

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed specs/*.yaml
var specFS embed.FS

// SpecManifest describes one CellML specification version: its namespace
// and the element grammar it defines.
type SpecManifest struct {
	Version     string                 `yaml:"version"`
	Namespace   string                 `yaml:"namespace"`
	Description string                 `yaml:"description"`
	Emitted     bool                   `yaml:"emitted"`
	Elements    map[string]ElementSpec `yaml:"elements"`
}

// ElementSpec lists the attributes and child elements an element admits.
type ElementSpec struct {
	Attributes []string `yaml:"attributes"`
	Children   []string `yaml:"children"`
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*SpecManifest)
)

// LoadSpec loads a spec manifest by version string (e.g. "2.0").
func LoadSpec(ver string) (*SpecManifest, error) {
	cacheMu.RLock()
	if s, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return s, nil
	}
	cacheMu.RUnlock()

	data, err := specFS.ReadFile("specs/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("spec version %q not found: %w", ver, err)
	}

	var m SpecManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing spec %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &m
	cacheMu.Unlock()

	return &m, nil
}

// LoadCurrentSpec loads the manifest for the emitted specification version.
func LoadCurrentSpec() (*SpecManifest, error) {
	return LoadSpec(Current)
}

// AvailableSpecs returns the version strings of all embedded spec manifests.
func AvailableSpecs() ([]string, error) {
	entries, err := specFS.ReadDir("specs")
	if err != nil {
		return nil, fmt.Errorf("reading specs directory: %w", err)
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			versions = append(versions, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// ElementNames returns the element names of the manifest, sorted.
func (s *SpecManifest) ElementNames() []string {
	var out []string
	for name := range s.Elements {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AllowsAttribute reports whether the named element admits the attribute.
// Unknown elements admit nothing.
func (s *SpecManifest) AllowsAttribute(element, attribute string) bool {
	es, ok := s.Elements[element]
	if !ok {
		return false
	}
	for _, a := range es.Attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// AllowsChild reports whether the named element admits the child element.
// Unknown elements admit nothing.
func (s *SpecManifest) AllowsChild(element, child string) bool {
	es, ok := s.Elements[element]
	if !ok {
		return false
	}
	for _, c := range es.Children {
		if c == child {
			return true
		}
	}
	return false
}
