package validator

import (
	"fmt"
	"strings"

	"trustlabel/internal/domain"
	"trustlabel/internal/validator/limits"
)

// Validator checks a measured value against one category of limits.
type Validator interface {
	Validate(m domain.Measurement) domain.ValidationResult
	Category() domain.RuleCategory
}

// microbiologicalValidator checks colony counts. Salmonella is judged on
// presence alone since its legal limit is strict absence.
type microbiologicalValidator struct {
	rules *limits.RuleSet
}

func (v *microbiologicalValidator) Category() domain.RuleCategory {
	return domain.CategoryMicrobiological
}

func (v *microbiologicalValidator) Validate(m domain.Measurement) domain.ValidationResult {
	if strings.Contains(strings.ToLower(m.Parameter), "salmonella") {
		return presenceResult(v.rules, m)
	}
	rule, ok := v.rules.Lookup(domain.CategoryMicrobiological, m.Parameter)
	if !ok {
		return noRuleResult(m)
	}
	return checkLimits(rule, m)
}

func presenceResult(rules *limits.RuleSet, m domain.Measurement) domain.ValidationResult {
	res := domain.ValidationResult{Parameter: m.Parameter, Value: m.Value, Unit: m.Unit}
	rule, ok := rules.Lookup(domain.CategoryMicrobiological, m.Parameter)
	if !ok {
		rule, ok = rules.Lookup(domain.CategoryMicrobiological, "salmonella")
	}
	if ok {
		res.Reference = rule.Source
	}
	if m.Value == 0 {
		res.Status = domain.ComplianceApproved
		res.Message = "Absent (compliant)"
	} else {
		res.Status = domain.ComplianceRejected
		res.Message = "Present (non-compliant)"
	}
	return res
}

// chemicalValidator checks residues and contaminants for one chemical category.
type chemicalValidator struct {
	rules    *limits.RuleSet
	category domain.RuleCategory
}

func (v *chemicalValidator) Category() domain.RuleCategory {
	return v.category
}

func (v *chemicalValidator) Validate(m domain.Measurement) domain.ValidationResult {
	rule, ok := v.rules.Lookup(v.category, m.Parameter)
	if !ok {
		return noRuleResult(m)
	}
	return checkLimits(rule, m)
}

func noRuleResult(m domain.Measurement) domain.ValidationResult {
	return domain.ValidationResult{
		Parameter: m.Parameter,
		Value:     m.Value,
		Unit:      m.Unit,
		Status:    domain.ComplianceWarning,
		Message:   "No regulatory limit defined for this parameter",
	}
}

// checkLimits applies max, then min, then the warning threshold. A zero
// warning threshold is treated as unset.
func checkLimits(rule domain.ValidationRule, m domain.Measurement) domain.ValidationResult {
	res := domain.ValidationResult{
		Parameter: m.Parameter,
		Value:     m.Value,
		Unit:      m.Unit,
		Reference: rule.Source,
	}
	l := rule.Limits
	switch {
	case l.Max != nil && m.Value > *l.Max:
		res.Status = domain.ComplianceRejected
		res.Message = fmt.Sprintf("Exceeds maximum limit of %s %s", domain.FormatNumber(*l.Max), rule.Unit)
	case l.Min != nil && m.Value < *l.Min:
		res.Status = domain.ComplianceRejected
		res.Message = fmt.Sprintf("Below minimum limit of %s %s", domain.FormatNumber(*l.Min), rule.Unit)
	case l.WarningThreshold != nil && *l.WarningThreshold != 0 && m.Value > *l.WarningThreshold:
		res.Status = domain.ComplianceWarning
		res.Message = fmt.Sprintf("Above warning threshold of %s %s", domain.FormatNumber(*l.WarningThreshold), rule.Unit)
	default:
		res.Status = domain.ComplianceApproved
		res.Message = "Within acceptable limits"
	}
	return res
}
