package validator

import (
	"trustlabel/internal/domain"
	"trustlabel/internal/validator/limits"
)

// Registry maps rule categories to Validator implementations.
type Registry struct {
	validators map[domain.RuleCategory]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[domain.RuleCategory]Validator)}
}

// NewDefaultRegistry registers the microbiological and chemical validators
// backed by rules.
func NewDefaultRegistry(rules *limits.RuleSet) *Registry {
	r := NewRegistry()
	r.Register(&microbiologicalValidator{rules: rules})
	for _, cat := range domain.ChemicalCategories {
		r.Register(&chemicalValidator{rules: rules, category: cat})
	}
	return r
}

// Register adds a validator, replacing any existing one for its category.
func (r *Registry) Register(v Validator) {
	r.validators[v.Category()] = v
}

// Get returns the validator for a category, or nil if none is registered.
func (r *Registry) Get(cat domain.RuleCategory) Validator {
	return r.validators[cat]
}

// All returns all registered validators.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.validators))
	for _, v := range r.validators {
		out = append(out, v)
	}
	return out
}
