package parser

import (
	"math"
	"regexp"
	"strings"

	"trustlabel/internal/domain"
	"trustlabel/internal/vocabulary"
)

var (
	sectionHeader    = regexp.MustCompile(`^[A-Z][A-Z\s]+:?$`)
	pesticidePattern = regexp.MustCompile(`(?i)([a-zA-Z\s-]+)\s*([\d.]+)\s*(mg/kg|μg/kg|ppm|ppb)`)
	negatedPresence  = regexp.MustCompile(`(?i)\b(?:not|não|nao)\s+(?:present|presente|detected|detectado)`)
)

type allergenPatterns struct {
	name       string
	contains   *regexp.Regexp
	mayContain *regexp.Regexp
	freeFrom   *regexp.Regexp
}

type nutrientPattern struct {
	name string
	re   *regexp.Regexp
}

func compileAllergenPatterns(names []string) []allergenPatterns {
	out := make([]allergenPatterns, 0, len(names))
	for _, name := range names {
		q := regexp.QuoteMeta(name)
		out = append(out, allergenPatterns{
			name:       name,
			contains:   regexp.MustCompile(`(?i)` + q + `[^\n]*(?:present|presente|detected|detectado)`),
			mayContain: regexp.MustCompile(`(?i)may contain[^\n]*` + q + `|pode conter[^\n]*` + q),
			freeFrom:   regexp.MustCompile(`(?i)free from[^\n]*` + q + `|livre de[^\n]*` + q),
		})
	}
	return out
}

func compileNutrientPatterns(names []string) []nutrientPattern {
	out := make([]nutrientPattern, 0, len(names))
	for _, name := range names {
		out = append(out, nutrientPattern{
			name: name,
			re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[^\n]*?([\d.]+)\s*(mg|mcg|μg|ug|IU)`),
		})
	}
	return out
}

// extractSection returns the run of lines starting at the first line that
// contains one of the section's keywords and ending before the next
// all-caps header line. It returns "" when no line opens the section.
func (p *Parser) extractSection(text, section string) string {
	keywords := p.vocab.SectionKeywords(section)
	var b strings.Builder
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if containsAny(lower, keywords) {
			inSection = true
		} else if inSection && sectionHeader.MatchString(strings.TrimSpace(line)) {
			break
		}
		if inSection {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ExtractPesticides reads residue lines from the pesticide section. It
// returns nil when the section is missing or lists no residues.
func (p *Parser) ExtractPesticides(text string) *domain.PesticideResults {
	section := p.extractSection(text, vocabulary.SectionPesticides)
	if section == "" {
		return nil
	}
	matches := pesticidePattern.FindAllStringSubmatchIndex(section, -1)
	if len(matches) == 0 {
		return nil
	}

	res := &domain.PesticideResults{Detected: make([]domain.NamedResult, 0, len(matches))}
	anyFail := false
	for _, m := range matches {
		valueStart := m[4]
		value := parseLeadingFloat(section[m[4]:m[5]])
		unit := section[m[6]:m[7]]
		status := pesticideStatus(value, unit)
		if status == domain.TestStatusFail {
			anyFail = true
		}
		res.Detected = append(res.Detected, domain.NamedResult{
			Field: compoundName(section, valueStart),
			Result: domain.TestResult{
				Value:  domain.NumberValue(value),
				Unit:   p.NormalizeUnit(unit),
				Status: status,
			},
		})
	}

	total := domain.TestStatusPass
	if anyFail {
		total = domain.TestStatusFail
	}
	res.Total = domain.TestResult{
		Value:  domain.NumberValue(float64(len(matches))),
		Unit:   "compounds detected",
		Status: total,
	}
	return res
}

// compoundName is the text between the start of the value's line and the
// value itself, without a trailing colon.
func compoundName(section string, valueStart int) string {
	lineStart := strings.LastIndexByte(section[:valueStart], '\n') + 1
	name := strings.TrimSpace(section[lineStart:valueStart])
	return strings.TrimSpace(strings.TrimSuffix(name, ":"))
}

// ExtractAllergens reads contains / may-contain / free-from declarations from
// the allergen section. It returns nil when the section is missing.
func (p *Parser) ExtractAllergens(text string) *domain.AllergenInfo {
	section := p.extractSection(text, vocabulary.SectionAllergens)
	if section == "" {
		return nil
	}
	info := &domain.AllergenInfo{
		Contains:   []string{},
		MayContain: []string{},
		FreeFrom:   []string{},
	}
	for _, a := range p.allergens {
		if m := a.contains.FindString(section); m != "" && !negatedPresence.MatchString(m) {
			info.Contains = append(info.Contains, a.name)
		}
		if a.mayContain.MatchString(section) {
			info.MayContain = append(info.MayContain, a.name)
		}
		if a.freeFrom.MatchString(section) {
			info.FreeFrom = append(info.FreeFrom, a.name)
		}
	}
	return info
}

// ExtractPhysicalChemical reads pH, acidity, brix and the other
// physical-chemical parameters from their section.
func (p *Parser) ExtractPhysicalChemical(text string) domain.Measurements {
	section := p.extractSection(text, vocabulary.SectionPhysicalChemical)
	if section == "" {
		return nil
	}
	var out domain.Measurements
	for _, pc := range p.vocab.PhysicalChemicalPatterns() {
		m := pc.Pattern.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		r := domain.TestResult{}
		if pc.Text {
			r.Value = domain.TextValue(strings.TrimSpace(m[1]))
		} else {
			r.Value = domain.NumberValue(parseLeadingFloat(m[1]))
		}
		if len(m) > 2 {
			r.Unit = m[2]
		}
		out.Set(pc.Field, r)
	}
	return out
}

func (p *Parser) extractNutrients(text, section string, patterns []nutrientPattern) []domain.Nutrient {
	body := p.extractSection(text, section)
	if body == "" {
		return nil
	}
	var out []domain.Nutrient
	for _, np := range patterns {
		m := np.re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		value := parseLeadingFloat(m[1])
		if math.IsNaN(value) {
			continue
		}
		out = append(out, domain.Nutrient{
			Name:  np.name,
			Value: value,
			Unit:  p.NormalizeUnit(m[2]),
		})
	}
	return out
}
