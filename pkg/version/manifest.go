package version

import (
	"embed"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Manifest describes the record layouts of one protocol version.
type Manifest struct {
	Version     int                     `yaml:"version"`
	Description string                  `yaml:"description"`
	Separators  Separators              `yaml:"separators"`
	Truncation  Truncation              `yaml:"truncation"`
	Records     map[string]RecordLayout `yaml:"records"`
}

// Separators are the delimiters of the record grammar.
type Separators struct {
	Field    string `yaml:"field"`
	KeyValue string `yaml:"key_value"`
}

// Truncation describes how free-text fields are limited.
type Truncation struct {
	MaxLength int    `yaml:"max_length"`
	Ellipsis  string `yaml:"ellipsis"`
}

// RecordLayout is the ordered field list of one record type.
type RecordLayout struct {
	// Kind is the signpost kind the record is emitted with (begin, event, end).
	Kind string `yaml:"kind"`

	// Fields lists the field keys in wire order.
	Fields []string `yaml:"fields"`

	// Truncated lists the fields subject to truncation.
	Truncated []string `yaml:"truncated"`
}

// Matches reports whether keys are exactly the layout's fields, in order.
func (l RecordLayout) Matches(keys []string) bool {
	return slices.Equal(l.Fields, keys)
}

// IsTruncated reports whether field is subject to truncation.
func (l RecordLayout) IsTruncated(field string) bool {
	return slices.Contains(l.Truncated, field)
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[int]*Manifest)
)

// LoadManifest loads the manifest for protocol version v.
func LoadManifest(v int) (*Manifest, error) {
	cacheMu.RLock()
	if m, ok := cache[v]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := manifestFS.ReadFile("manifests/" + strconv.Itoa(v) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("manifest for version %d not found: %w", v, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %d: %w", v, err)
	}
	if m.Version != v {
		return nil, fmt.Errorf("manifest %d declares version %d", v, m.Version)
	}

	cacheMu.Lock()
	cache[v] = &m
	cacheMu.Unlock()

	return &m, nil
}

// LoadCurrentManifest loads the manifest for the Current protocol version.
func LoadCurrentManifest() (*Manifest, error) {
	return LoadManifest(Current)
}

// AvailableManifests returns the versions of all embedded manifests, ascending.
func AvailableManifests() ([]int, error) {
	entries, err := manifestFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("reading manifests directory: %w", err)
	}

	var versions []int
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".yaml")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions, nil
}

// Layout returns the layout of the named record type.
func (m *Manifest) Layout(record string) (RecordLayout, bool) {
	l, ok := m.Records[record]
	return l, ok
}

// RecordNames returns the names of all record types, sorted.
func (m *Manifest) RecordNames() []string {
	out := make([]string, 0, len(m.Records))
	for name := range m.Records {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
