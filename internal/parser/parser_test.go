package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/domain"
	"trustlabel/internal/parser"
)

func sampleReportText() string {
	return strings.Join([]string{
		"Eurofins Food Testing",
		"Report Number: EF-2024-001",
		"Date: 15/03/2024",
		"Sample ID: S-123",
		"Product: Granola Bar",
		"Batch: L2024",
		"",
		"Coliformes totais: 150 UFC/g",
		"Salmonela: Ausente em 25g",
		"Chumbo: 0,02 mg/kg",
		"Proteína: 12.5 g/100g",
		"Valor energético: 450 kcal",
	}, "\n")
}

func parseText(t *testing.T, text string) *domain.ParsedReport {
	t.Helper()
	report, err := parser.New().Parse(context.Background(), domain.RawDocument{Name: "report.txt", Text: text})
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

func TestParse_SampleReport(t *testing.T) {
	report := parseText(t, sampleReportText())

	t.Run("header", func(t *testing.T) {
		assert.Equal(t, domain.LabFormatEurofins, report.LabFormat)
		assert.Equal(t, "EF-2024-001", report.ReportNumber)
		assert.Equal(t, "2024-03-15", report.ReportDate)
		assert.Equal(t, "S-123", report.SampleID)
		assert.Equal(t, "Granola Bar", report.ProductName)
		assert.Equal(t, "L2024", report.BatchNumber)
	})

	t.Run("microbiological", func(t *testing.T) {
		coliforms, ok := report.Microbiological.Get("coliforms")
		require.True(t, ok)
		v, numeric := coliforms.Value.Float()
		assert.True(t, numeric)
		assert.Equal(t, 150.0, v)
		assert.Equal(t, "CFU/g", coliforms.Unit)
		assert.Equal(t, domain.TestStatusPass, coliforms.Status)

		salmonella, ok := report.Microbiological.Get("salmonella")
		require.True(t, ok)
		assert.Equal(t, "ND", salmonella.Value.String())
		assert.Equal(t, domain.TestStatusPass, salmonella.Status)
	})

	t.Run("heavy metals", func(t *testing.T) {
		lead, ok := report.HeavyMetals.Get("lead")
		require.True(t, ok)
		v, _ := lead.Value.Float()
		assert.InDelta(t, 0.02, v, 1e-9)
		assert.Equal(t, "ppm", lead.Unit)
	})

	t.Run("nutritional", func(t *testing.T) {
		require.NotNil(t, report.Nutritional)
		protein, ok := report.Nutritional.Values.Get("protein")
		require.True(t, ok)
		v, _ := protein.Value.Float()
		assert.Equal(t, 12.5, v)
		assert.Equal(t, "g", protein.Unit)

		calories, ok := report.Nutritional.Values.Get("calories")
		require.True(t, ok)
		v, _ = calories.Value.Float()
		assert.Equal(t, 450.0, v)
		assert.Equal(t, "kcal", calories.Unit)
	})

	t.Run("data points", func(t *testing.T) {
		require.NotEmpty(t, report.DataPoints)
		assert.Equal(t, "micro_coliforms", report.DataPoints[0].ID)
		assert.Equal(t, "Coliforms", report.DataPoints[0].Name)
		assert.Equal(t, domain.DataPointPassed, report.DataPoints[0].Status)
		for _, dp := range report.DataPoints {
			assert.Equal(t, domain.DataPointSourceLabReport, dp.Source)
		}
	})

	t.Run("quality", func(t *testing.T) {
		assert.Empty(t, report.ExtractionErrors)
		assert.Equal(t, 91, report.Confidence)
		assert.Equal(t, sampleReportText(), report.RawText)
	})
}

func TestParse_Idempotent(t *testing.T) {
	p := parser.New()
	doc := domain.RawDocument{Text: sampleReportText()}

	first, err := p.Parse(context.Background(), doc)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.DataPoints, second.DataPoints)
}

func TestParse_EmptyText(t *testing.T) {
	report := parseText(t, "")

	assert.Equal(t, domain.LabFormatUnknown, report.LabFormat)
	assert.Empty(t, report.DataPoints)
	assert.NotNil(t, report.DataPoints)
	assert.Contains(t, report.ExtractionErrors, "No data points were extracted from the report")
	assert.Equal(t, 0, report.Confidence)
}

func TestParse_InvalidDate(t *testing.T) {
	report := parseText(t, "Eurofins\nDate: 31/02/2024\nChumbo: 0,02 mg/kg")

	assert.Equal(t, "2024-02-31", report.ReportDate)
	assert.Contains(t, report.ExtractionErrors, "Invalid report date format")
}

func TestParse_MissingBaselineMicrobiology(t *testing.T) {
	report := parseText(t, "E. coli: <10")

	require.True(t, report.Microbiological.Has("ecoli"))
	assert.Contains(t, report.ExtractionErrors, "Microbiological report missing basic parameters")
}

func TestParse_UnsupportedMediaType(t *testing.T) {
	_, err := parser.New().Parse(context.Background(), domain.RawDocument{MediaType: "application/pdf", Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMediaType))
}

func TestParse_MalformedMediaType(t *testing.T) {
	_, err := parser.New().Parse(context.Background(), domain.RawDocument{MediaType: "text/", Text: "x"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := parser.New().Parse(context.Background(), domain.RawDocument{Text: "Chumbo \xff\xfe 0.1 mg/kg"})
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.New().Parse(ctx, domain.RawDocument{Text: sampleReportText()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_CSV(t *testing.T) {
	p := parser.New()
	report, err := p.Parse(context.Background(), domain.RawDocument{
		MediaType: "text/csv; charset=utf-8",
		Text:      "Parameter,Result,Unit\nChumbo,\"0,05\",mg/kg\n",
	})
	require.NoError(t, err)

	lead, ok := report.HeavyMetals.Get("lead")
	require.True(t, ok)
	v, _ := lead.Value.Float()
	assert.InDelta(t, 0.05, v, 1e-9)
	assert.Equal(t, "ppm", lead.Unit)
}

func TestParse_ByteOrderMark(t *testing.T) {
	report := parseText(t, "\ufeffEurofins\nReport No: R-9")
	assert.Equal(t, "R-9", report.ReportNumber)
	assert.Equal(t, "Eurofins\nReport No: R-9", report.RawText)
}

func TestParse_CustomTextSource(t *testing.T) {
	p := parser.New(parser.WithTextSource("application/x-upper", func(doc domain.RawDocument) (string, error) {
		return strings.ToLower(doc.Text), nil
	}))
	report, err := p.Parse(context.Background(), domain.RawDocument{MediaType: "application/x-upper", Text: "EUROFINS"})
	require.NoError(t, err)
	assert.Equal(t, domain.LabFormatEurofins, report.LabFormat)
}
