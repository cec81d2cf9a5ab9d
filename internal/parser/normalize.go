package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateSeparator    = regexp.MustCompile(`[-/]`)
	decimalComma     = regexp.MustCompile(`(\d),(\d)`)
	leadingFloatExpr = regexp.MustCompile(`^\d*\.?\d*`)
)

// NormalizeUnit maps a unit synonym to its canonical unit; unknown units are
// returned unchanged.
func (p *Parser) NormalizeUnit(raw string) string {
	return p.vocab.NormalizeUnit(raw)
}

// NormalizeDate converts a day-first date ("05/03/24", "5-3-2024") to
// YYYY-MM-DD. Two-digit years are taken as 20xx. Strings already in
// YYYY-MM-DD form, and strings that do not split into three parts, are
// returned unchanged.
func NormalizeDate(raw string) string {
	if isoDatePattern.MatchString(raw) {
		return raw
	}
	parts := dateSeparator.Split(raw, -1)
	if len(parts) != 3 {
		return raw
	}
	day, month, year := pad2(parts[0]), pad2(parts[1]), pad2(parts[2])
	if len(year) == 2 {
		year = "20" + year
	}
	return year + "-" + month + "-" + day
}

func pad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

// NormalizeText puts text in Unicode NFC so decomposed accents match the
// vocabulary's precomposed terms.
func NormalizeText(text string) string {
	return norm.NFC.String(text)
}

// normalizeDecimalCommas rewrites "0,45" as "0.45".
func normalizeDecimalCommas(line string) string {
	return decimalComma.ReplaceAllString(line, "$1.$2")
}

// parseLeadingFloat reads the longest numeric prefix of s, the way lab
// values such as "1.5." or "2,5" are written. The first comma is read as a
// decimal point. It returns NaN when s has no leading digits.
func parseLeadingFloat(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	m := leadingFloatExpr.FindString(s)
	if strings.Trim(m, ".") == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
