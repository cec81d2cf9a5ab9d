package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trustlabel/internal/domain"
)

// MockReportParser is a mock implementation of port.ReportParser.
type MockReportParser struct {
	mock.Mock
}

func (m *MockReportParser) Parse(ctx context.Context, doc domain.RawDocument) (*domain.ParsedReport, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedReport), args.Error(1)
}
