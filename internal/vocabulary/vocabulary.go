// Package vocabulary holds the versioned, read-only tables that drive lab
// report extraction: parameter synonyms, unit conversions, detection-limit
// phrasings, lab-format keywords, and section keywords.
//
// A Vocabulary is immutable once built and safe for concurrent use.
package vocabulary

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"trustlabel/internal/domain"
)

//go:embed vocabulary.yaml
var defaultYAML []byte

// Section names used by section-scoped extractors.
const (
	SectionPesticides       = "pesticides"
	SectionAllergens        = "allergens"
	SectionPhysicalChemical = "physical_chemical"
	SectionVitamins         = "vitamins"
	SectionMinerals         = "minerals"
)

// FieldKind is the category a canonical field key belongs to.
type FieldKind int

const (
	KindMicrobiological FieldKind = iota + 1
	KindHeavyMetal
	KindNutritional
)

// Synonym maps a lower-case term found in report text to a canonical field key.
type Synonym struct {
	Term  string
	Field string
}

// LabKeywords is the keyword set identifying one lab format.
type LabKeywords struct {
	Format   domain.LabFormat
	Keywords []string
}

// HeaderPatterns are the regexes used to pull header fields for a lab format.
// Each pattern captures the value in group 1.
type HeaderPatterns struct {
	ReportNumber *regexp.Regexp
	Date         *regexp.Regexp
	SampleID     *regexp.Regexp
}

// PhysChemPattern extracts one physical-chemical parameter. Group 1 is the
// value, optional group 2 the unit. Text patterns keep the value as text.
type PhysChemPattern struct {
	Field   string
	Pattern *regexp.Regexp
	Text    bool
}

// Vocabulary is a compiled, immutable extraction vocabulary.
type Vocabulary struct {
	doc document

	labFormats    []LabKeywords
	defaultHeader domain.LabFormat
	headers       map[domain.LabFormat]HeaderPatterns
	productName   *regexp.Regexp
	batchNumber   *regexp.Regexp

	units     map[string]string
	unitsFold map[string]string

	microFields []string
	metalFields []string
	nutriFields []string
	nutriUnits  map[string]string
	kinds       map[string]FieldKind

	parameters      []Synonym
	detectionLimits []*regexp.Regexp
	absent          *regexp.Regexp
	present         *regexp.Regexp

	sections  map[string][]string
	allergens []string
	vitamins  []string
	minerals  []string
	physChem  []PhysChemPattern
}

var loadDefault = sync.OnceValues(func() (*Vocabulary, error) {
	return Parse(defaultYAML)
})

// Default returns the embedded vocabulary. The embedded resource is part of
// the build, so a failure to compile it panics.
func Default() *Vocabulary {
	v, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("vocabulary: embedded resource: %v", err))
	}
	return v
}

// Load reads and compiles a vocabulary file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	return Parse(data)
}

// Parse compiles a YAML vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", domain.ErrInvalidVocabulary, err)
	}
	return compile(doc)
}

// Version returns the vocabulary resource version.
func (v *Vocabulary) Version() int { return v.doc.Version }

// LabFormats returns the ordered lab keyword sets.
func (v *Vocabulary) LabFormats() []LabKeywords {
	out := make([]LabKeywords, len(v.labFormats))
	for i, lf := range v.labFormats {
		out[i] = LabKeywords{Format: lf.Format, Keywords: append([]string(nil), lf.Keywords...)}
	}
	return out
}

// HeaderPatterns returns the header regexes for format, falling back to the
// default pattern set when the format has no dedicated entry.
func (v *Vocabulary) HeaderPatterns(format domain.LabFormat) HeaderPatterns {
	if hp, ok := v.headers[format]; ok {
		return hp
	}
	return v.headers[v.defaultHeader]
}

// ProductNamePattern matches product name labels in either language.
func (v *Vocabulary) ProductNamePattern() *regexp.Regexp { return v.productName }

// BatchNumberPattern matches batch/lot labels in either language.
func (v *Vocabulary) BatchNumberPattern() *regexp.Regexp { return v.batchNumber }

// Parameters returns the synonym table in match order.
func (v *Vocabulary) Parameters() []Synonym {
	return append([]Synonym(nil), v.parameters...)
}

// Kind returns the category of a canonical field key.
func (v *Vocabulary) Kind(field string) (FieldKind, bool) {
	k, ok := v.kinds[field]
	return k, ok
}

// MicrobiologicalFields returns the microbiological field keys.
func (v *Vocabulary) MicrobiologicalFields() []string { return append([]string(nil), v.microFields...) }

// HeavyMetalFields returns the heavy-metal field keys.
func (v *Vocabulary) HeavyMetalFields() []string { return append([]string(nil), v.metalFields...) }

// NutritionalFields returns the nutritional field keys.
func (v *Vocabulary) NutritionalFields() []string { return append([]string(nil), v.nutriFields...) }

// NutritionalUnit returns the reporting unit for a nutritional field.
func (v *Vocabulary) NutritionalUnit(field string) string { return v.nutriUnits[field] }

// NormalizeUnit maps a unit synonym to its canonical unit. Unknown units are
// returned unchanged, so applying it twice gives the same result as once.
func (v *Vocabulary) NormalizeUnit(raw string) string {
	if to, ok := v.units[raw]; ok {
		return to
	}
	if to, ok := v.unitsFold[strings.ToLower(raw)]; ok {
		return to
	}
	return raw
}

// DetectionLimitPatterns returns the ordered detection-limit phrasings.
// Group 1, when present, holds the limit.
func (v *Vocabulary) DetectionLimitPatterns() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), v.detectionLimits...)
}

// AbsentPattern matches qualitative absence wording.
func (v *Vocabulary) AbsentPattern() *regexp.Regexp { return v.absent }

// PresentPattern matches qualitative presence wording.
func (v *Vocabulary) PresentPattern() *regexp.Regexp { return v.present }

// SectionKeywords returns the lower-case keywords that open a section.
func (v *Vocabulary) SectionKeywords(section string) []string {
	return append([]string(nil), v.sections[section]...)
}

// Allergens returns the allergen names searched for in allergen sections.
func (v *Vocabulary) Allergens() []string { return append([]string(nil), v.allergens...) }

// Vitamins returns the vitamin names searched for in vitamin sections.
func (v *Vocabulary) Vitamins() []string { return append([]string(nil), v.vitamins...) }

// Minerals returns the mineral names searched for in mineral sections.
func (v *Vocabulary) Minerals() []string { return append([]string(nil), v.minerals...) }

// PhysicalChemicalPatterns returns the physical-chemical parameter patterns.
func (v *Vocabulary) PhysicalChemicalPatterns() []PhysChemPattern {
	return append([]PhysChemPattern(nil), v.physChem...)
}
