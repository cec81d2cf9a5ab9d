// Package limits loads the regulatory limit tables and nutritional tolerance
// policy used by the validator. A RuleSet is read-only after loading.
package limits

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

//go:embed limits.yaml
var defaultYAML []byte

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeKey lower-cases name and joins its words with underscores, the
// form rule keys are stored in.
func NormalizeKey(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// NutritionalPolicy holds the tolerance bands for declared-vs-actual checks.
type NutritionalPolicy struct {
	Reference           string   `yaml:"reference"`
	Macronutrients      []string `yaml:"macronutrients"`
	Energy              []string `yaml:"energy"`
	Sodium              []string `yaml:"sodium"`
	MacroTolerance      float64  `yaml:"macro_tolerance"`
	SodiumTolerance     float64  `yaml:"sodium_tolerance"`
	MicroToleranceHigh  float64  `yaml:"micro_tolerance_high"`
	MicroToleranceLow   float64  `yaml:"micro_tolerance_low"`
	MicroThresholdMg    float64  `yaml:"micro_threshold_mg"`
	MicroThresholdOther float64  `yaml:"micro_threshold_other"`
	WarningMargin       float64  `yaml:"warning_margin"`
}

type document struct {
	Version         int                     `yaml:"version"`
	Microbiological []domain.ValidationRule `yaml:"microbiological"`
	HeavyMetal      []domain.ValidationRule `yaml:"heavy_metal"`
	Pesticide       []domain.ValidationRule `yaml:"pesticide"`
	Mycotoxin       []domain.ValidationRule `yaml:"mycotoxin"`
	Nutritional     NutritionalPolicy       `yaml:"nutritional"`
}

type table struct {
	rules []domain.ValidationRule
	index map[string]int
}

// RuleSet is a loaded, immutable set of limit tables.
type RuleSet struct {
	version     int
	tables      map[domain.RuleCategory]*table
	nutritional NutritionalPolicy
}

// searchOrder is the order tables are searched when the category is unknown.
var searchOrder = []domain.RuleCategory{
	domain.CategoryMicrobiological,
	domain.CategoryHeavyMetal,
	domain.CategoryPesticide,
	domain.CategoryMycotoxin,
}

var loadDefault = sync.OnceValues(func() (*RuleSet, error) {
	return Parse(defaultYAML)
})

// Default returns the embedded ANVISA rule set. The embedded resource is
// part of the build, so a failure to load it panics.
func Default() *RuleSet {
	rs, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("limits: embedded resource: %v", err))
	}
	return rs
}

// Load reads a limits file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading limits %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML limits document.
func Parse(data []byte) (*RuleSet, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", domain.ErrInvalidLimits, err)
	}
	if doc.Version < 1 {
		return nil, fmt.Errorf("%w: version must be >= 1, got %d", domain.ErrInvalidLimits, doc.Version)
	}
	if err := checkPolicy(doc.Nutritional); err != nil {
		return nil, err
	}

	rs := &RuleSet{
		version:     doc.Version,
		tables:      make(map[domain.RuleCategory]*table, len(searchOrder)),
		nutritional: doc.Nutritional,
	}
	sources := map[domain.RuleCategory][]domain.ValidationRule{
		domain.CategoryMicrobiological: doc.Microbiological,
		domain.CategoryHeavyMetal:      doc.HeavyMetal,
		domain.CategoryPesticide:       doc.Pesticide,
		domain.CategoryMycotoxin:       doc.Mycotoxin,
	}
	for _, cat := range searchOrder {
		t, err := buildTable(cat, sources[cat])
		if err != nil {
			return nil, err
		}
		rs.tables[cat] = t
	}
	return rs, nil
}

// buildTable indexes rules by key, then alias, then display name. An earlier
// entry is never displaced by a later, lower-priority one.
func buildTable(cat domain.RuleCategory, rules []domain.ValidationRule) (*table, error) {
	t := &table{index: make(map[string]int)}
	for i, r := range rules {
		r.Key = NormalizeKey(r.Key)
		r.Category = cat
		if r.Key == "" || r.Parameter == "" {
			return nil, fmt.Errorf("%w: %s rule %d needs key and parameter", domain.ErrInvalidLimits, cat, i)
		}
		if r.Limits.Max == nil && r.Limits.Min == nil {
			return nil, fmt.Errorf("%w: %s rule %s has no limits", domain.ErrInvalidLimits, cat, r.Key)
		}
		switch r.Severity {
		case domain.SeverityCritical, domain.SeverityMajor, domain.SeverityMinor:
		default:
			return nil, fmt.Errorf("%w: %s rule %s has severity %q", domain.ErrInvalidLimits, cat, r.Key, r.Severity)
		}
		if _, dup := t.index[r.Key]; dup {
			return nil, fmt.Errorf("%w: %s rule %s declared twice", domain.ErrInvalidLimits, cat, r.Key)
		}
		t.index[r.Key] = i
		t.rules = append(t.rules, r)
	}
	for i, r := range t.rules {
		for _, a := range r.Aliases {
			if k := NormalizeKey(a); k != "" {
				if _, taken := t.index[k]; !taken {
					t.index[k] = i
				}
			}
		}
	}
	for i, r := range t.rules {
		if k := NormalizeKey(r.Parameter); k != "" {
			if _, taken := t.index[k]; !taken {
				t.index[k] = i
			}
		}
	}
	return t, nil
}

func checkPolicy(p NutritionalPolicy) error {
	for name, v := range map[string]float64{
		"macro_tolerance":      p.MacroTolerance,
		"sodium_tolerance":     p.SodiumTolerance,
		"micro_tolerance_high": p.MicroToleranceHigh,
		"micro_tolerance_low":  p.MicroToleranceLow,
	} {
		if v <= 0 || v >= 1 {
			return fmt.Errorf("%w: nutritional %s must be in (0,1), got %v", domain.ErrInvalidLimits, name, v)
		}
	}
	if p.WarningMargin < 0 || p.WarningMargin >= 1 {
		return fmt.Errorf("%w: nutritional warning_margin must be in [0,1), got %v", domain.ErrInvalidLimits, p.WarningMargin)
	}
	return nil
}

// Version returns the limits resource version.
func (rs *RuleSet) Version() int { return rs.version }

// Lookup resolves name against one category's table.
func (rs *RuleSet) Lookup(cat domain.RuleCategory, name string) (domain.ValidationRule, bool) {
	t, ok := rs.tables[cat]
	if !ok {
		return domain.ValidationRule{}, false
	}
	i, ok := t.index[NormalizeKey(name)]
	if !ok {
		return domain.ValidationRule{}, false
	}
	return cloneRule(t.rules[i]), true
}

// Find resolves name against every table, microbiological first.
func (rs *RuleSet) Find(name string) (domain.ValidationRule, bool) {
	for _, cat := range searchOrder {
		if r, ok := rs.Lookup(cat, name); ok {
			return r, true
		}
	}
	return domain.ValidationRule{}, false
}

// Rules returns the rules of one category in declaration order.
func (rs *RuleSet) Rules(cat domain.RuleCategory) []domain.ValidationRule {
	t, ok := rs.tables[cat]
	if !ok {
		return nil
	}
	out := make([]domain.ValidationRule, len(t.rules))
	for i, r := range t.rules {
		out[i] = cloneRule(r)
	}
	return out
}

// Categories returns the limit-table categories in search order.
func (rs *RuleSet) Categories() []domain.RuleCategory {
	return append([]domain.RuleCategory(nil), searchOrder...)
}

// Nutritional returns the nutritional tolerance policy.
func (rs *RuleSet) Nutritional() NutritionalPolicy {
	p := rs.nutritional
	p.Macronutrients = append([]string(nil), p.Macronutrients...)
	p.Energy = append([]string(nil), p.Energy...)
	p.Sodium = append([]string(nil), p.Sodium...)
	return p
}

func cloneRule(r domain.ValidationRule) domain.ValidationRule {
	r.Limits = domain.Limits{
		Min:              cloneFloat(r.Limits.Min),
		Max:              cloneFloat(r.Limits.Max),
		WarningThreshold: cloneFloat(r.Limits.WarningThreshold),
	}
	r.Aliases = append([]string(nil), r.Aliases...)
	return r
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
