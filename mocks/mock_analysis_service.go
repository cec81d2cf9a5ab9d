package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"trustlabel/internal/domain"
	"trustlabel/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) ParseReport(ctx context.Context, doc domain.RawDocument) (*service.ParseReportOutput, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParseReportOutput), args.Error(1)
}

func (m *MockAnalysisService) ValidateAnalysis(ctx context.Context, a *domain.ProductAnalysis) (*domain.AnalysisReport, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisReport), args.Error(1)
}

func (m *MockAnalysisService) ParseBatch(ctx context.Context, docs []domain.RawDocument) ([]service.ParseBatchItem, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ParseBatchItem), args.Error(1)
}

func (m *MockAnalysisService) ValidateBatch(ctx context.Context, analyses []domain.ProductAnalysis) ([]service.ValidateBatchItem, error) {
	args := m.Called(ctx, analyses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ValidateBatchItem), args.Error(1)
}

func (m *MockAnalysisService) ExportAnalyses(ctx context.Context, analyses []domain.ProductAnalysis, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, analyses, format, w)
	return args.Error(0)
}

func (m *MockAnalysisService) ListRules(category string) ([]domain.ValidationRule, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationRule), args.Error(1)
}
