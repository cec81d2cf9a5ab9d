package parser

import (
	"strings"

	"trustlabel/internal/domain"
)

// Data point ID prefixes per category.
const (
	prefixMicrobiological = "micro_"
	prefixHeavyMetal      = "metal_"
	prefixNutritional     = "nutri_"
)

// metalThresholds are the mg/kg maxima attached to heavy-metal data points.
var metalThresholds = map[string]float64{
	"lead":    0.5,
	"cadmium": 0.1,
	"mercury": 0.05,
	"arsenic": 1.0,
}

// ToDataPoints flattens microbiological, heavy-metal and nutritional results,
// in that order, into data points.
func (p *Parser) ToDataPoints(report *domain.ParsedReport) []domain.DataPoint {
	points := []domain.DataPoint{}

	for _, nr := range report.Microbiological {
		points = append(points, domain.DataPoint{
			ID:     prefixMicrobiological + nr.Field,
			Name:   FieldLabel(nr.Field),
			Value:  nr.Result.Value,
			Unit:   nr.Result.Unit,
			Status: dataPointStatus(nr.Result.Status),
			Source: domain.DataPointSourceLabReport,
		})
	}

	for _, nr := range report.HeavyMetals {
		dp := domain.DataPoint{
			ID:     prefixHeavyMetal + nr.Field,
			Name:   FieldLabel(nr.Field),
			Value:  nr.Result.Value,
			Unit:   nr.Result.Unit,
			Status: dataPointStatus(nr.Result.Status),
			Source: domain.DataPointSourceLabReport,
		}
		if limit, ok := metalThresholds[nr.Field]; ok {
			dp.Threshold = &domain.Threshold{Max: &limit, Unit: "mg/kg"}
		}
		points = append(points, dp)
	}

	if report.Nutritional != nil {
		for _, nr := range report.Nutritional.Values {
			if !nr.Result.Value.IsNumeric() {
				continue
			}
			points = append(points, domain.DataPoint{
				ID:     prefixNutritional + nr.Field,
				Name:   FieldLabel(nr.Field),
				Value:  nr.Result.Value,
				Unit:   p.vocab.NutritionalUnit(nr.Field),
				Status: domain.DataPointNotApplicable,
				Source: domain.DataPointSourceLabReport,
			})
		}
	}

	return points
}

func dataPointStatus(s domain.TestStatus) domain.DataPointStatus {
	switch s {
	case domain.TestStatusPass:
		return domain.DataPointPassed
	case domain.TestStatusFail:
		return domain.DataPointFailed
	default:
		return domain.DataPointWarning
	}
}

// FieldLabel turns a field key into a display name: "total_plate_count"
// becomes "Total Plate Count".
func FieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
