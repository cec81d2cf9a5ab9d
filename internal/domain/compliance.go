package domain

import (
	"fmt"
	"strings"
)

// Limits are the numeric bounds of a regulatory rule. A nil bound is not checked.
type Limits struct {
	Min              *float64 `json:"min,omitempty" yaml:"min"`
	Max              *float64 `json:"max,omitempty" yaml:"max"`
	WarningThreshold *float64 `json:"warning_threshold,omitempty" yaml:"warning_threshold"`
}

// ValidationRule is a codified regulatory limit for one parameter.
type ValidationRule struct {
	Key       string       `json:"key" yaml:"key"`
	Parameter string       `json:"parameter" yaml:"parameter"`
	Unit      string       `json:"unit" yaml:"unit"`
	Limits    Limits       `json:"limits" yaml:"limits"`
	Source    string       `json:"source" yaml:"source"`
	Category  RuleCategory `json:"category" yaml:"category"`
	Severity  Severity     `json:"severity" yaml:"severity"`
	Aliases   []string     `json:"aliases,omitempty" yaml:"aliases"`
}

// ValidationResult is the verdict for one parameter.
type ValidationResult struct {
	Parameter string           `json:"parameter"`
	Value     float64          `json:"value"`
	Unit      string           `json:"unit"`
	Status    ComplianceStatus `json:"status"`
	Message   string           `json:"message"`
	Reference string           `json:"regulatory_reference,omitempty"`
}

// Measurement is a caller-supplied measured value.
type Measurement struct {
	Parameter string  `json:"parameter" yaml:"parameter"`
	Value     float64 `json:"value" yaml:"value"`
	Unit      string  `json:"unit" yaml:"unit"`
}

// NutrientDeclaration pairs a label-declared value with the measured one.
type NutrientDeclaration struct {
	Parameter string  `json:"parameter" yaml:"parameter"`
	Declared  float64 `json:"declared" yaml:"declared"`
	Actual    float64 `json:"actual" yaml:"actual"`
	Unit      string  `json:"unit" yaml:"unit"`
}

// ProductAnalysis bundles the measurements submitted for one compliance run.
type ProductAnalysis struct {
	ProductName     string                `json:"product_name,omitempty" yaml:"product_name"`
	Microbiological []Measurement         `json:"microbiological,omitempty" yaml:"microbiological"`
	HeavyMetals     []Measurement         `json:"heavy_metals,omitempty" yaml:"heavy_metals"`
	Pesticides      []Measurement         `json:"pesticides,omitempty" yaml:"pesticides"`
	Mycotoxins      []Measurement         `json:"mycotoxins,omitempty" yaml:"mycotoxins"`
	Nutritional     []NutrientDeclaration `json:"nutritional,omitempty" yaml:"nutritional"`
}

// Validate checks that every entry names its parameter.
func (a *ProductAnalysis) Validate() error {
	groups := map[string][]Measurement{
		"microbiological": a.Microbiological,
		"heavy_metals":    a.HeavyMetals,
		"pesticides":      a.Pesticides,
		"mycotoxins":      a.Mycotoxins,
	}
	for name, ms := range groups {
		for i, m := range ms {
			if strings.TrimSpace(m.Parameter) == "" {
				return fmt.Errorf("%w: %s[%d] has no parameter", ErrInvalidAnalysis, name, i)
			}
		}
	}
	for i, n := range a.Nutritional {
		if strings.TrimSpace(n.Parameter) == "" {
			return fmt.Errorf("%w: nutritional[%d] has no parameter", ErrInvalidAnalysis, i)
		}
	}
	return nil
}

// OverallStatus is the aggregated verdict for a set of results.
type OverallStatus struct {
	Status            VerdictStatus `json:"status"`
	Summary           string        `json:"summary"`
	CriticalIssues    int           `json:"critical_issues"`
	NonCriticalIssues int           `json:"non_critical_issues"`
	Warnings          int           `json:"warnings"`
}

// Feedback groups result messages by topic with remediation advice.
type Feedback struct {
	Microbiological []string `json:"microbiological"`
	Chemical        []string `json:"chemical"`
	Nutritional     []string `json:"nutritional"`
	Recommendations []string `json:"recommendations"`
}

// AnalysisReport is the full outcome of validating a ProductAnalysis.
type AnalysisReport struct {
	ProductName   string             `json:"product_name,omitempty"`
	Results       []ValidationResult `json:"results"`
	OverallStatus OverallStatus      `json:"overall_status"`
	Feedback      Feedback           `json:"feedback"`
}
