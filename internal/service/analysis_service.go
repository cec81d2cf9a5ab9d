package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"trustlabel/internal/csvexport"
	"trustlabel/internal/domain"
	"trustlabel/internal/metrics"
	"trustlabel/internal/port"
)

// ParseReportOutput is a parsed report together with the rule evaluation of
// its microbiological and heavy-metal data points.
type ParseReportOutput struct {
	Report        *domain.ParsedReport      `json:"report"`
	Results       []domain.ValidationResult `json:"results"`
	OverallStatus domain.OverallStatus      `json:"overall_status"`
}

// AnalysisService runs the parse and validate pipeline for the HTTP and CLI
// surfaces.
type AnalysisService interface {
	ParseReport(ctx context.Context, doc domain.RawDocument) (*ParseReportOutput, error)
	ValidateAnalysis(ctx context.Context, a *domain.ProductAnalysis) (*domain.AnalysisReport, error)
	ParseBatch(ctx context.Context, docs []domain.RawDocument) ([]ParseBatchItem, error)
	ValidateBatch(ctx context.Context, analyses []domain.ProductAnalysis) ([]ValidateBatchItem, error)
	ExportAnalyses(ctx context.Context, analyses []domain.ProductAnalysis, format domain.ExportFormat, w io.Writer) error
	ListRules(category string) ([]domain.ValidationRule, error)
}

// BatchConfig bounds batch requests.
type BatchConfig struct {
	Concurrency int
	MaxItems    int
}

type analysisService struct {
	parser    port.ReportParser
	validator port.ComplianceValidator
	catalog   port.RuleCatalog
	metrics   *metrics.Metrics
	logger    *zap.Logger
	batch     BatchConfig
}

// NewAnalysisService creates a new AnalysisService implementation. A nil
// metrics disables instrumentation.
func NewAnalysisService(
	parser port.ReportParser,
	validator port.ComplianceValidator,
	catalog port.RuleCatalog,
	m *metrics.Metrics,
	logger *zap.Logger,
	batch BatchConfig,
) AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batch.Concurrency < 1 {
		batch.Concurrency = 1
	}
	return &analysisService{
		parser:    parser,
		validator: validator,
		catalog:   catalog,
		metrics:   m,
		logger:    logger,
		batch:     batch,
	}
}

func (s *analysisService) ParseReport(ctx context.Context, doc domain.RawDocument) (*ParseReportOutput, error) {
	report, err := s.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parsing report %q: %w", doc.Name, err)
	}
	s.metrics.ObserveReport(string(report.LabFormat), report.Confidence)

	results := s.validator.ValidateDataPoints(report.DataPoints)
	overall := s.validator.CalculateOverallStatus(results)
	s.metrics.ObserveVerdict(string(overall.Status), statuses(results))

	s.logger.Info("service.AnalysisService: report parsed",
		zap.String("name", doc.Name),
		zap.String("lab_format", string(report.LabFormat)),
		zap.Int("confidence", report.Confidence),
		zap.Int("data_points", len(report.DataPoints)),
		zap.Int("extraction_errors", len(report.ExtractionErrors)),
	)
	return &ParseReportOutput{Report: report, Results: results, OverallStatus: overall}, nil
}

func (s *analysisService) ValidateAnalysis(ctx context.Context, a *domain.ProductAnalysis) (*domain.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	report := s.validator.ValidateProductAnalysis(a)
	s.metrics.ObserveVerdict(string(report.OverallStatus.Status), statuses(report.Results))
	return &report, nil
}

func (s *analysisService) ExportAnalyses(ctx context.Context, analyses []domain.ProductAnalysis, format domain.ExportFormat, w io.Writer) error {
	if err := s.checkBatchSize(len(analyses)); err != nil {
		return err
	}
	reports := make([]domain.AnalysisReport, 0, len(analyses))
	for i := range analyses {
		report, err := s.ValidateAnalysis(ctx, &analyses[i])
		if err != nil {
			return fmt.Errorf("analysis %d: %w", i, err)
		}
		reports = append(reports, *report)
	}
	return csvexport.Export(w, format, reports)
}

func (s *analysisService) ListRules(category string) ([]domain.ValidationRule, error) {
	cats := s.catalog.Categories()
	if category != "" {
		found := false
		for _, c := range cats {
			if string(c) == category {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
		}
		cats = []domain.RuleCategory{domain.RuleCategory(category)}
	}
	rules := []domain.ValidationRule{}
	for _, c := range cats {
		rules = append(rules, s.catalog.Rules(c)...)
	}
	return rules, nil
}

func (s *analysisService) checkBatchSize(n int) error {
	if n == 0 {
		return domain.ErrEmptyBatch
	}
	if s.batch.MaxItems > 0 && n > s.batch.MaxItems {
		return fmt.Errorf("%w: %d items, limit %d", domain.ErrBatchTooLarge, n, s.batch.MaxItems)
	}
	return nil
}

func statuses(results []domain.ValidationResult) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = string(results[i].Status)
	}
	return out
}
