package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/domain"
	"trustlabel/internal/metrics"
	"trustlabel/internal/parser"
	"trustlabel/internal/service"
	"trustlabel/internal/validator"
	"trustlabel/internal/validator/limits"
	"trustlabel/mocks"
)

type testDeps struct {
	parser    *mocks.MockReportParser
	validator *mocks.MockComplianceValidator
	catalog   *mocks.MockRuleCatalog
	metrics   *metrics.Metrics
	svc       service.AnalysisService
}

func setupService(batch service.BatchConfig) testDeps {
	d := testDeps{
		parser:    new(mocks.MockReportParser),
		validator: new(mocks.MockComplianceValidator),
		catalog:   new(mocks.MockRuleCatalog),
		metrics:   metrics.New(),
	}
	d.svc = service.NewAnalysisService(d.parser, d.validator, d.catalog, d.metrics, nil, batch)
	return d
}

// newEngineService wires the real parser and rule engine.
func newEngineService(batch service.BatchConfig) service.AnalysisService {
	engine := validator.NewEngine(nil)
	return service.NewAnalysisService(parser.New(), engine, engine.Rules(), nil, nil, batch)
}

func TestParseReport_Success(t *testing.T) {
	d := setupService(service.BatchConfig{})
	ctx := context.Background()
	doc := domain.RawDocument{Name: "r.txt", Text: "Chumbo: 0.02 mg/kg"}

	points := []domain.DataPoint{{ID: "metal_lead", Name: "Lead", Value: domain.NumberValue(0.02)}}
	report := &domain.ParsedReport{LabFormat: domain.LabFormatSGS, Confidence: 57, DataPoints: points}
	results := []domain.ValidationResult{{Parameter: "Lead", Status: domain.ComplianceApproved}}
	overall := domain.OverallStatus{Status: domain.VerdictApproved}

	d.parser.On("Parse", ctx, doc).Return(report, nil)
	d.validator.On("ValidateDataPoints", points).Return(results)
	d.validator.On("CalculateOverallStatus", results).Return(overall)

	out, err := d.svc.ParseReport(ctx, doc)
	require.NoError(t, err)

	assert.Same(t, report, out.Report)
	assert.Equal(t, results, out.Results)
	assert.Equal(t, overall, out.OverallStatus)
	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.ReportsParsed.WithLabelValues("SGS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.Verdicts.WithLabelValues("approved")))
	d.parser.AssertExpectations(t)
	d.validator.AssertExpectations(t)
}

func TestParseReport_ParserError(t *testing.T) {
	d := setupService(service.BatchConfig{})
	d.parser.On("Parse", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedMediaType)

	out, err := d.svc.ParseReport(context.Background(), domain.RawDocument{Name: "scan.pdf"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
	assert.Contains(t, err.Error(), `"scan.pdf"`)
	d.validator.AssertNotCalled(t, "ValidateDataPoints", mock.Anything)
}

func TestValidateAnalysis(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := setupService(service.BatchConfig{})
		a := &domain.ProductAnalysis{HeavyMetals: []domain.Measurement{{Parameter: "Lead", Value: 0.1}}}
		want := domain.AnalysisReport{OverallStatus: domain.OverallStatus{Status: domain.VerdictApproved}}
		d.validator.On("ValidateProductAnalysis", a).Return(want)

		got, err := d.svc.ValidateAnalysis(context.Background(), a)
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	})

	t.Run("unnamed measurement", func(t *testing.T) {
		d := setupService(service.BatchConfig{})
		a := &domain.ProductAnalysis{Mycotoxins: []domain.Measurement{{Parameter: " ", Value: 3}}}

		_, err := d.svc.ValidateAnalysis(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrInvalidAnalysis)
		d.validator.AssertNotCalled(t, "ValidateProductAnalysis", mock.Anything)
	})

	t.Run("canceled context", func(t *testing.T) {
		d := setupService(service.BatchConfig{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := d.svc.ValidateAnalysis(ctx, &domain.ProductAnalysis{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListRules(t *testing.T) {
	svc := newEngineService(service.BatchConfig{})
	rs := limits.Default()

	t.Run("all categories", func(t *testing.T) {
		rules, err := svc.ListRules("")
		require.NoError(t, err)

		total := 0
		for _, c := range rs.Categories() {
			total += len(rs.Rules(c))
		}
		assert.Len(t, rules, total)
		assert.Equal(t, domain.CategoryMicrobiological, rules[0].Category)
	})

	t.Run("one category", func(t *testing.T) {
		rules, err := svc.ListRules("mycotoxin")
		require.NoError(t, err)
		assert.Equal(t, rs.Rules(domain.CategoryMycotoxin), rules)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.ListRules("radionuclide")
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	})

	t.Run("empty catalog", func(t *testing.T) {
		d := setupService(service.BatchConfig{})
		d.catalog.On("Categories").Return([]domain.RuleCategory{})

		rules, err := d.svc.ListRules("")
		require.NoError(t, err)
		assert.NotNil(t, rules)
		assert.Empty(t, rules)
	})
}

func TestExportAnalyses(t *testing.T) {
	svc := newEngineService(service.BatchConfig{MaxItems: 10})
	analyses := []domain.ProductAnalysis{
		{ProductName: "Bar", HeavyMetals: []domain.Measurement{{Parameter: "Lead", Value: 0.45, Unit: "mg/kg"}}},
		{ProductName: "Juice", Mycotoxins: []domain.Measurement{{Parameter: "Patulin", Value: 60, Unit: "μg/L"}}},
	}

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.ExportAnalyses(context.Background(), analyses, domain.ExportFormatCSV, &buf))

		out := buf.String()
		assert.Contains(t, out, "Bar,Lead,0.45,mg/kg,warning,Above warning threshold of 0.4 mg/kg,ANVISA RDC 722/2022")
		assert.Contains(t, out, "Juice,Patulin,60,μg/L,rejected,Exceeds maximum limit of 50 μg/L,ANVISA RDC 723/2022")
	})

	t.Run("invalid analysis names its index", func(t *testing.T) {
		bad := append([]domain.ProductAnalysis{}, analyses...)
		bad = append(bad, domain.ProductAnalysis{Pesticides: []domain.Measurement{{Value: 1}}})

		var buf bytes.Buffer
		err := svc.ExportAnalyses(context.Background(), bad, domain.ExportFormatCSV, &buf)
		assert.ErrorIs(t, err, domain.ErrInvalidAnalysis)
		assert.Contains(t, err.Error(), "analysis 2:")
		assert.Zero(t, buf.Len())
	})

	t.Run("empty", func(t *testing.T) {
		err := svc.ExportAnalyses(context.Background(), nil, domain.ExportFormatCSV, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := svc.ExportAnalyses(context.Background(), analyses, domain.ExportFormat("ods"), &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrUnsupportedExportFormat))
	})
}
