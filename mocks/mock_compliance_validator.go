package mocks

import (
	"github.com/stretchr/testify/mock"

	"trustlabel/internal/domain"
)

// MockComplianceValidator is a mock implementation of port.ComplianceValidator.
type MockComplianceValidator struct {
	mock.Mock
}

func (m *MockComplianceValidator) ValidateProductAnalysis(a *domain.ProductAnalysis) domain.AnalysisReport {
	args := m.Called(a)
	return args.Get(0).(domain.AnalysisReport)
}

func (m *MockComplianceValidator) ValidateDataPoints(points []domain.DataPoint) []domain.ValidationResult {
	args := m.Called(points)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ValidationResult)
}

func (m *MockComplianceValidator) CalculateOverallStatus(results []domain.ValidationResult) domain.OverallStatus {
	args := m.Called(results)
	return args.Get(0).(domain.OverallStatus)
}
