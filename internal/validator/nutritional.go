package validator

import (
	"fmt"
	"slices"
	"strings"

	"trustlabel/internal/domain"
	"trustlabel/internal/validator/limits"
)

// ValidateNutritional compares a measured nutrient value against the
// tolerance band around its declared value.
func (e *Engine) ValidateNutritional(name string, declared, actual float64, unit string) domain.ValidationResult {
	policy := e.rules.Nutritional()
	lo, hi := toleranceBand(policy, name, declared, unit)

	res := domain.ValidationResult{
		Parameter: name,
		Value:     actual,
		Unit:      unit,
		Reference: policy.Reference,
	}
	decl := domain.FormatNumber(declared)
	switch {
	case actual < lo:
		res.Status = domain.ComplianceRejected
		res.Message = fmt.Sprintf("Below minimum tolerance (declared: %s, min allowed: %.2f)", decl, lo)
	case actual > hi:
		res.Status = domain.ComplianceRejected
		res.Message = fmt.Sprintf("Above maximum tolerance (declared: %s, max allowed: %.2f)", decl, hi)
	case actual < lo*(1+policy.WarningMargin) || actual > hi*(1-policy.WarningMargin):
		res.Status = domain.ComplianceWarning
		res.Message = fmt.Sprintf("Near tolerance limits (declared: %s, actual: %s)", decl, domain.FormatNumber(actual))
	default:
		res.Status = domain.ComplianceApproved
		res.Message = fmt.Sprintf("Within tolerance range (declared: %s, actual: %s)", decl, domain.FormatNumber(actual))
	}
	return res
}

// toleranceBand returns the allowed [lo, hi] for a declared value.
//
//	macronutrients, energy   declared ± macro tolerance
//	sodium                   [0, declared + sodium tolerance]
//	micronutrients           ± high tolerance at or above the magnitude
//	                         threshold, ± low tolerance below it
func toleranceBand(p limits.NutritionalPolicy, name string, declared float64, unit string) (lo, hi float64) {
	key := limits.NormalizeKey(name)
	switch {
	case slices.Contains(p.Macronutrients, key) || slices.Contains(p.Energy, key):
		return declared * (1 - p.MacroTolerance), declared * (1 + p.MacroTolerance)
	case slices.Contains(p.Sodium, key):
		return 0, declared * (1 + p.SodiumTolerance)
	}
	threshold := p.MicroThresholdOther
	if strings.Contains(strings.ToLower(unit), "mg") {
		threshold = p.MicroThresholdMg
	}
	tol := p.MicroToleranceLow
	if declared >= threshold {
		tol = p.MicroToleranceHigh
	}
	return declared * (1 - tol), declared * (1 + tol)
}
