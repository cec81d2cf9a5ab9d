package validator

import (
	"fmt"

	"trustlabel/internal/domain"
)

// CalculateOverallStatus folds per-parameter results into one verdict. A
// rejection is critical when the parameter resolves to a critical rule in
// any limit table; unmatched parameters count as non-critical.
func (e *Engine) CalculateOverallStatus(results []domain.ValidationResult) domain.OverallStatus {
	var out domain.OverallStatus
	for i := range results {
		switch results[i].Status {
		case domain.ComplianceRejected:
			if rule, ok := e.rules.Find(results[i].Parameter); ok && rule.Severity == domain.SeverityCritical {
				out.CriticalIssues++
			} else {
				out.NonCriticalIssues++
			}
		case domain.ComplianceWarning:
			out.Warnings++
		}
	}

	switch {
	case out.CriticalIssues > 0:
		out.Status = domain.VerdictRejected
		out.Summary = fmt.Sprintf("Product rejected due to %d critical non-compliance(s)", out.CriticalIssues)
	case out.NonCriticalIssues > 0:
		out.Status = domain.VerdictRejected
		out.Summary = fmt.Sprintf("Product rejected due to %d non-compliance(s)", out.NonCriticalIssues)
	case out.Warnings > 0:
		out.Status = domain.VerdictConditional
		out.Summary = fmt.Sprintf("Product conditionally approved with %d warning(s)", out.Warnings)
	default:
		out.Status = domain.VerdictApproved
		out.Summary = "Product meets all regulatory requirements"
	}
	return out
}
