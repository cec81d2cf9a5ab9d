package port

import "trustlabel/internal/domain"

// ComplianceValidator evaluates measurements against regulatory limits.
type ComplianceValidator interface {
	ValidateProductAnalysis(a *domain.ProductAnalysis) domain.AnalysisReport
	ValidateDataPoints(points []domain.DataPoint) []domain.ValidationResult
	CalculateOverallStatus(results []domain.ValidationResult) domain.OverallStatus
}

// RuleCatalog lists the codified regulatory rules.
type RuleCatalog interface {
	Categories() []domain.RuleCategory
	Rules(cat domain.RuleCategory) []domain.ValidationRule
}
