package parser

import (
	"math"
	"regexp"
	"strconv"

	"trustlabel/internal/domain"
)

// Numeric patterns, tried in order. The first one that matches wins.
var (
	standardUnitPattern = regexp.MustCompile(`(?i)([\d.]+)\s*(mg/kg|μg/kg|ug/kg|g/100g|g/L|mg/L|μg/L|ug/L|ppm|ppb|%|IU|CFU/g|UFC/g|NMP/g|MPN/g)`)
	scientificPattern   = regexp.MustCompile(`(?i)([\d.]+)\s*x\s*10\^([\d]+)\s*(CFU/g|UFC/g|NMP/g|MPN/g)`)
	energyPattern       = regexp.MustCompile(`(?i)([\d.,]+)\s*(kcal|cal|kJ)`)
)

// NumericValue is a number read from a report line with its canonical unit.
type NumericValue struct {
	Value float64
	Unit  string
}

// ExtractNumericalValue reads the first value+unit on line. Decimal commas
// are rewritten as dots before matching.
func (p *Parser) ExtractNumericalValue(line string) (NumericValue, bool) {
	line = normalizeDecimalCommas(line)

	if m := standardUnitPattern.FindStringSubmatch(line); m != nil {
		return NumericValue{Value: parseLeadingFloat(m[1]), Unit: p.NormalizeUnit(m[2])}, true
	}
	if m := scientificPattern.FindStringSubmatch(line); m != nil {
		exp, err := strconv.Atoi(m[2])
		if err != nil {
			return NumericValue{}, false
		}
		// Unreachable behind standardUnitPattern; the unit stays as written.
		return NumericValue{
			Value: parseLeadingFloat(m[1]) * math.Pow(10, float64(exp)),
			Unit:  m[3],
		}, true
	}
	if m := energyPattern.FindStringSubmatch(line); m != nil {
		return NumericValue{Value: parseLeadingFloat(m[1]), Unit: p.NormalizeUnit(m[2])}, true
	}
	return NumericValue{}, false
}

// ExtractTestResult reads a measurement from line: a numeric value first,
// then a detection-limit phrasing, then a qualitative absent/present word.
func (p *Parser) ExtractTestResult(line string) (domain.TestResult, bool) {
	if nv, ok := p.ExtractNumericalValue(line); ok {
		return domain.TestResult{
			Value:  domain.NumberValue(nv.Value),
			Unit:   nv.Unit,
			Status: determineStatus(nv.Value, nv.Unit),
		}, true
	}

	for _, re := range p.vocab.DetectionLimitPatterns() {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var limit string
		if len(m) > 1 {
			limit = m[1]
		}
		value := limit
		if value == "" {
			value = "ND"
		}
		return domain.TestResult{
			Value:          domain.TextValue(value),
			DetectionLimit: limit,
			Status:         domain.TestStatusPass,
		}, true
	}

	if p.vocab.AbsentPattern().MatchString(line) {
		return domain.TestResult{Value: domain.TextValue("Absent"), Status: domain.TestStatusPass}, true
	}
	if p.vocab.PresentPattern().MatchString(line) {
		return domain.TestResult{Value: domain.TextValue("Present"), Status: domain.TestStatusFail}, true
	}
	return domain.TestResult{}, false
}

// determineStatus flags colony counts above 10^4 CFU/g and values above 1
// in a literal mg/kg unit. unit is already canonical and mg/kg canonicalizes
// to ppm, so parsed heavy-metal lines never take the warning branch.
func determineStatus(value float64, unit string) domain.TestStatus {
	switch {
	case unit == "CFU/g" && value > 10000:
		return domain.TestStatusFail
	case unit == "mg/kg" && value > 1:
		return domain.TestStatusWarning
	default:
		return domain.TestStatusPass
	}
}

// pesticideStatus compares a residue in mg/kg against 0.01 (fail) and 0.005
// (warning). μg/kg and ppb values are scaled down first.
func pesticideStatus(value float64, unit string) domain.TestStatus {
	mgPerKg := value
	if unit == "μg/kg" || unit == "ppb" {
		mgPerKg = value / 1000
	}
	switch {
	case mgPerKg > 0.01:
		return domain.TestStatusFail
	case mgPerKg > 0.005:
		return domain.TestStatusWarning
	default:
		return domain.TestStatusPass
	}
}
