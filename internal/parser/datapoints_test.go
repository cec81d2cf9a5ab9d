package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/domain"
	"trustlabel/internal/parser"
)

func TestToDataPoints(t *testing.T) {
	p := parser.New()

	report := &domain.ParsedReport{
		Microbiological: domain.Measurements{
			{Field: "total_plate_count", Result: domain.TestResult{Value: domain.NumberValue(20000), Unit: "CFU/g", Status: domain.TestStatusFail}},
		},
		HeavyMetals: domain.Measurements{
			{Field: "lead", Result: domain.TestResult{Value: domain.NumberValue(0.02), Unit: "ppm", Status: domain.TestStatusPass}},
			{Field: "zinc", Result: domain.TestResult{Value: domain.NumberValue(3), Unit: "ppm", Status: domain.TestStatusWarning}},
		},
		Nutritional: &domain.NutritionalProfile{
			Values: domain.Measurements{
				{Field: "sodium", Result: domain.TestResult{Value: domain.NumberValue(400), Unit: "g"}},
				{Field: "protein", Result: domain.TestResult{Value: domain.TextValue("trace")}},
			},
		},
	}

	points := p.ToDataPoints(report)
	require.Len(t, points, 4)

	t.Run("microbiological first", func(t *testing.T) {
		assert.Equal(t, "micro_total_plate_count", points[0].ID)
		assert.Equal(t, "Total Plate Count", points[0].Name)
		assert.Equal(t, domain.DataPointFailed, points[0].Status)
		assert.Nil(t, points[0].Threshold)
	})

	t.Run("metal thresholds", func(t *testing.T) {
		assert.Equal(t, "metal_lead", points[1].ID)
		require.NotNil(t, points[1].Threshold)
		require.NotNil(t, points[1].Threshold.Max)
		assert.Equal(t, 0.5, *points[1].Threshold.Max)
		assert.Equal(t, "mg/kg", points[1].Threshold.Unit)

		assert.Equal(t, "metal_zinc", points[2].ID)
		assert.Equal(t, domain.DataPointWarning, points[2].Status)
		assert.Nil(t, points[2].Threshold)
	})

	t.Run("nutritional uses field unit and skips text", func(t *testing.T) {
		assert.Equal(t, "nutri_sodium", points[3].ID)
		assert.Equal(t, "mg", points[3].Unit)
		assert.Equal(t, domain.DataPointNotApplicable, points[3].Status)
	})
}

func TestToDataPoints_Empty(t *testing.T) {
	points := parser.New().ToDataPoints(&domain.ParsedReport{})
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Total Plate Count", parser.FieldLabel("total_plate_count"))
	assert.Equal(t, "Ecoli", parser.FieldLabel("ecoli"))
	assert.Equal(t, "", parser.FieldLabel(""))
}

func TestScore(t *testing.T) {
	t.Run("nothing extracted", func(t *testing.T) {
		assert.Equal(t, 0, parser.Score(&domain.ParsedReport{LabFormat: domain.LabFormatUnknown}))
	})

	t.Run("header share", func(t *testing.T) {
		r := &domain.ParsedReport{LabFormat: domain.LabFormatUnknown}
		r.ReportNumber = "R-1"
		assert.Equal(t, 7, parser.Score(r))
	})

	t.Run("saturates at 100", func(t *testing.T) {
		r := &domain.ParsedReport{
			LabFormat:    domain.LabFormatSGS,
			ReportHeader: domain.ReportHeader{ReportNumber: "1", ReportDate: "2024-01-01", SampleID: "S"},
			HeavyMetals:  domain.Measurements{{Field: "lead"}},
			DataPoints:   make([]domain.DataPoint, 12),
		}
		assert.Equal(t, 100, parser.Score(r))
	})
}

func TestCheckExtraction(t *testing.T) {
	t.Run("clean report", func(t *testing.T) {
		r := &domain.ParsedReport{
			ReportHeader: domain.ReportHeader{ReportDate: "2024-01-31"},
			DataPoints:   []domain.DataPoint{{Name: "Lead", Value: domain.NumberValue(0.1)}},
		}
		assert.Empty(t, parser.CheckExtraction(r))
	})

	t.Run("negative value", func(t *testing.T) {
		r := &domain.ParsedReport{
			DataPoints: []domain.DataPoint{{Name: "Lead", Value: domain.NumberValue(-1)}},
		}
		assert.Equal(t, []string{"Invalid value for Lead: -1"}, parser.CheckExtraction(r))
	})

	t.Run("flags are cumulative", func(t *testing.T) {
		r := &domain.ParsedReport{
			ReportHeader:    domain.ReportHeader{ReportDate: "15/03/2024"},
			Microbiological: domain.Measurements{{Field: "salmonella"}},
		}
		assert.Equal(t, []string{
			"No data points were extracted from the report",
			"Invalid report date format",
			"Microbiological report missing basic parameters",
		}, parser.CheckExtraction(r))
	})
}
