package mocks

import (
	"github.com/stretchr/testify/mock"

	"trustlabel/internal/domain"
)

// MockRuleCatalog is a mock implementation of port.RuleCatalog.
type MockRuleCatalog struct {
	mock.Mock
}

func (m *MockRuleCatalog) Categories() []domain.RuleCategory {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.RuleCategory)
}

func (m *MockRuleCatalog) Rules(cat domain.RuleCategory) []domain.ValidationRule {
	args := m.Called(cat)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ValidationRule)
}
