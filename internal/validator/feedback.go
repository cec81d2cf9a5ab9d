package validator

import (
	"strings"

	"trustlabel/internal/domain"
)

var (
	microKeywords = []string{
		"coliform", "salmonella", "listeria", "staphylococcus", "escherichia",
		"bacillus", "clostridium", "yeast", "mold", "mesophile",
	}
	chemicalKeywords = []string{
		"lead", "cadmium", "mercury", "arsenic", "aflatoxin", "ochratoxin", "mycotoxin", "pesticide",
	}
)

// recommendation triggers, checked in order against flagged parameter names.
var recommendations = []struct {
	keywords []string
	advice   string
}{
	{[]string{"coliform"}, "Review hygiene practices and implement stricter sanitation protocols"},
	{[]string{"aflatoxin"}, "Improve storage conditions to prevent fungal growth and mycotoxin production"},
	{[]string{"lead", "heavy"}, "Investigate raw material sources and processing equipment for contamination"},
}

// GenerateValidationFeedback groups "parameter: message" lines by the
// parameter's name and lists remediation advice for rejected and warning
// results. Grouping is by name keywords, not by the table a value came from.
func GenerateValidationFeedback(results []domain.ValidationResult) domain.Feedback {
	fb := domain.Feedback{
		Microbiological: []string{},
		Chemical:        []string{},
		Nutritional:     []string{},
		Recommendations: []string{},
	}
	seen := make(map[string]bool)

	for i := range results {
		r := &results[i]
		name := strings.ToLower(r.Parameter)
		line := r.Parameter + ": " + r.Message

		switch {
		case containsKeyword(name, microKeywords):
			fb.Microbiological = append(fb.Microbiological, line)
		case containsKeyword(name, chemicalKeywords):
			fb.Chemical = append(fb.Chemical, line)
		default:
			fb.Nutritional = append(fb.Nutritional, line)
		}

		if r.Status != domain.ComplianceRejected && r.Status != domain.ComplianceWarning {
			continue
		}
		for _, rec := range recommendations {
			if containsKeyword(name, rec.keywords) && !seen[rec.advice] {
				seen[rec.advice] = true
				fb.Recommendations = append(fb.Recommendations, rec.advice)
			}
		}
	}
	return fb
}

func containsKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
