package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trustlabel/internal/domain"
	"trustlabel/internal/validator"
)

func TestValidateNutritional(t *testing.T) {
	e := validator.NewEngine(nil)

	tests := []struct {
		name     string
		param    string
		declared float64
		actual   float64
		unit     string
		want     domain.ComplianceStatus
		message  string
	}{
		{"macro within band", "Protein", 10, 9.5, "g", domain.ComplianceApproved,
			"Within tolerance range (declared: 10, actual: 9.5)"},
		{"macro below band", "Protein", 10, 7, "g", domain.ComplianceRejected,
			"Below minimum tolerance (declared: 10, min allowed: 8.00)"},
		{"macro near upper edge", "Protein", 10, 11.5, "g", domain.ComplianceWarning,
			"Near tolerance limits (declared: 10, actual: 11.5)"},
		{"macro near lower edge", "Total Fat", 10, 8.2, "g", domain.ComplianceWarning,
			"Near tolerance limits (declared: 10, actual: 8.2)"},
		{"energy uses macro band", "Calories", 200, 250, "kcal", domain.ComplianceRejected,
			"Above maximum tolerance (declared: 200, max allowed: 240.00)"},
		{"sodium over upper bound", "Sodium", 100, 125, "mg", domain.ComplianceRejected,
			"Above maximum tolerance (declared: 100, max allowed: 120.00)"},
		{"sodium has no lower bound", "Sodium", 100, 5, "mg", domain.ComplianceApproved,
			"Within tolerance range (declared: 100, actual: 5)"},
		{"small micronutrient", "Vitamin C", 50, 30, "mg", domain.ComplianceApproved,
			"Within tolerance range (declared: 50, actual: 30)"},
		{"upper-case mg unit", "Iron", 50, 30, "MG", domain.ComplianceApproved,
			"Within tolerance range (declared: 50, actual: 30)"},
		{"mixed-case mg unit", "Iron", 50, 30, "Mg", domain.ComplianceApproved,
			"Within tolerance range (declared: 50, actual: 30)"},
		{"large micronutrient", "Calcium", 200, 130, "mg", domain.ComplianceRejected,
			"Below minimum tolerance (declared: 200, min allowed: 160.00)"},
		{"non-mg micronutrient", "Vitamin D", 5, 3.5, "mcg", domain.ComplianceRejected,
			"Below minimum tolerance (declared: 5, min allowed: 4.00)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ValidateNutritional(tt.param, tt.declared, tt.actual, tt.unit)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.message, res.Message)
			assert.Equal(t, tt.actual, res.Value)
			assert.Equal(t, "ANVISA RDC 429/2020", res.Reference)
		})
	}
}
