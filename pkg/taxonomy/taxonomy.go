// Package taxonomy provides the MachLink equipment vocabulary: the known
// component classes and data item types, loaded from embedded manifests.
//
// The vocabulary is advisory. Loading a device definition with an unknown
// class or type tag is not an error (vendors extend the taxonomy through
// prefixed classes), but the loader surfaces vocabulary warnings so
// misspelled standard tags are caught early.
package taxonomy

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/machlink-protocol/machlink-go/pkg/model"
)

//go:embed vocab/*.yaml
var vocabFS embed.FS

// Current is the vocabulary version implemented by this library.
const Current = "1.0"

// Vocabulary describes one version of the equipment vocabulary.
type Vocabulary struct {
	Version     string              `yaml:"version"`
	Description string              `yaml:"description"`
	Classes     map[string]ClassDef `yaml:"classes"`
	DataItems   map[string]TypeDef  `yaml:"dataItemTypes"`
}

// ClassDef describes a known component class.
type ClassDef struct {
	Description string `yaml:"description"`
}

// TypeDef describes a known data item type tag.
type TypeDef struct {
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Vocabulary)
)

// Load loads a vocabulary by version string (e.g. "1.0").
func Load(ver string) (*Vocabulary, error) {
	cacheMu.RLock()
	if v, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return v, nil
	}
	cacheMu.RUnlock()

	data, err := vocabFS.ReadFile("vocab/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("vocabulary version %q not found: %w", ver, err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &v
	cacheMu.Unlock()

	return &v, nil
}

// LoadCurrent loads the vocabulary for the current version.
func LoadCurrent() (*Vocabulary, error) {
	return Load(Current)
}

// Available returns the version strings of all embedded vocabularies.
func Available() ([]string, error) {
	entries, err := vocabFS.ReadDir("vocab")
	if err != nil {
		return nil, fmt.Errorf("reading vocab directory: %w", err)
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

// KnownClass reports whether the class is part of the vocabulary.
// Prefixed (vendor-extended) classes are never looked up.
func (v *Vocabulary) KnownClass(class string) bool {
	_, ok := v.Classes[class]
	return ok
}

// DataItemType returns the definition for a data item type tag.
func (v *Vocabulary) DataItemType(typeTag string) (TypeDef, bool) {
	def, ok := v.DataItems[typeTag]
	return def, ok
}

// ClassNames returns all known class names, sorted.
func (v *Vocabulary) ClassNames() []string {
	out := make([]string, 0, len(v.Classes))
	for name := range v.Classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// ValidationResult holds vocabulary warnings for a device tree. The
// warnings are advisory; the tree is usable regardless.
type ValidationResult struct {
	Warnings []string
}

// ValidateDevice walks a device tree and reports unknown classes, unknown
// data item types, and category mismatches against the vocabulary.
func (v *Vocabulary) ValidateDevice(device *model.Device) ValidationResult {
	var result ValidationResult
	v.validateComponent(device.Root(), &result)
	return result
}

func (v *Vocabulary) validateComponent(c *model.Component, result *ValidationResult) {
	// Vendor-extended classes live outside the vocabulary.
	if c.Prefix() == "" && !v.KnownClass(c.Class()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("component %q: unknown class %q", c.ID(), c.Class()))
	}

	for _, item := range c.DataItems() {
		def, ok := v.DataItemType(item.Type())
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("data item %q: unknown type %q", item.ID(), item.Type()))
			continue
		}
		if item.Category() != "" && item.Category() != def.Category {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("data item %q: type %s expects category %s, declared %s",
					item.ID(), item.Type(), def.Category, item.Category()))
		}
	}

	for _, child := range c.Children() {
		v.validateComponent(child, result)
	}
}
