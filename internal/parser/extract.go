package parser

import (
	"strings"

	"trustlabel/internal/domain"
	"trustlabel/internal/vocabulary"
)

// ExtractMicrobiological scans every line for microbiological synonyms.
func (p *Parser) ExtractMicrobiological(text string) domain.Measurements {
	return p.scanLines(text, vocabulary.KindMicrobiological, func(_, line string) (domain.TestResult, bool) {
		return p.ExtractTestResult(line)
	})
}

// ExtractHeavyMetals scans every line for heavy-metal synonyms.
func (p *Parser) ExtractHeavyMetals(text string) domain.Measurements {
	return p.scanLines(text, vocabulary.KindHeavyMetal, func(_, line string) (domain.TestResult, bool) {
		return p.ExtractTestResult(line)
	})
}

// ExtractNutritional scans every line for nutrition facts and reads the
// vitamin and mineral sections. It returns nil when nothing was found.
func (p *Parser) ExtractNutritional(text string) *domain.NutritionalProfile {
	profile := &domain.NutritionalProfile{
		Values: p.scanLines(text, vocabulary.KindNutritional, func(field, line string) (domain.TestResult, bool) {
			nv, ok := p.ExtractNumericalValue(line)
			if !ok {
				return domain.TestResult{}, false
			}
			return domain.TestResult{
				Value: domain.NumberValue(nv.Value),
				Unit:  p.vocab.NutritionalUnit(field),
			}, true
		}),
		Vitamins: p.extractNutrients(text, vocabulary.SectionVitamins, p.vitamins),
		Minerals: p.extractNutrients(text, vocabulary.SectionMinerals, p.minerals),
	}
	if profile.Empty() {
		return nil
	}
	return profile
}

// scanLines matches every line against the full synonym table. A synonym
// hits when its term is a substring of the lower-cased line; later hits for
// the same field overwrite earlier ones.
func (p *Parser) scanLines(text string, kind vocabulary.FieldKind, extract func(field, line string) (domain.TestResult, bool)) domain.Measurements {
	var out domain.Measurements
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, syn := range p.params {
			if k, _ := p.vocab.Kind(syn.Field); k != kind {
				continue
			}
			if !strings.Contains(lower, syn.Term) {
				continue
			}
			if r, ok := extract(syn.Field, line); ok {
				out.Set(syn.Field, r)
			}
		}
	}
	return out
}
