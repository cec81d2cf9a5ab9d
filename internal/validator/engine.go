// Package validator checks measured values against regulatory limits and
// aggregates the per-parameter verdicts.
package validator

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"trustlabel/internal/domain"
	"trustlabel/internal/validator/limits"
)

// Engine evaluates measurements against a RuleSet. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	rules    *limits.RuleSet
	registry *Registry
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegistry replaces the default category validators.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// NewEngine creates an engine over rules. A nil rules uses limits.Default().
func NewEngine(rules *limits.RuleSet, opts ...Option) *Engine {
	if rules == nil {
		rules = limits.Default()
	}
	e := &Engine{rules: rules, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewDefaultRegistry(rules)
	}
	return e
}

// Rules returns the rule set the engine evaluates against.
func (e *Engine) Rules() *limits.RuleSet { return e.rules }

// ValidateMicrobiological checks a microbiological count.
func (e *Engine) ValidateMicrobiological(name string, value float64, unit string) domain.ValidationResult {
	return e.validate(domain.CategoryMicrobiological, domain.Measurement{Parameter: name, Value: value, Unit: unit})
}

// ValidateChemical checks a heavy metal, pesticide or mycotoxin value.
// Any other category yields the missing-rule warning.
func (e *Engine) ValidateChemical(name string, value float64, unit string, category domain.RuleCategory) domain.ValidationResult {
	m := domain.Measurement{Parameter: name, Value: value, Unit: unit}
	if !category.IsChemical() {
		return noRuleResult(m)
	}
	return e.validate(category, m)
}

func (e *Engine) validate(cat domain.RuleCategory, m domain.Measurement) domain.ValidationResult {
	v := e.registry.Get(cat)
	if v == nil {
		e.logger.Warn("validator.Engine: no validator registered", zap.String("category", string(cat)))
		return noRuleResult(m)
	}
	res := v.Validate(m)
	if res.Status != domain.ComplianceApproved {
		e.logger.Debug("validator.Engine: parameter flagged",
			zap.String("category", string(cat)),
			zap.String("parameter", m.Parameter),
			zap.Float64("value", m.Value),
			zap.String("status", string(res.Status)),
		)
	}
	return res
}

// ValidateProductAnalysis validates every group of the analysis in order:
// microbiological, heavy metals, pesticides, mycotoxins, nutritional.
func (e *Engine) ValidateProductAnalysis(a *domain.ProductAnalysis) domain.AnalysisReport {
	results := make([]domain.ValidationResult, 0,
		len(a.Microbiological)+len(a.HeavyMetals)+len(a.Pesticides)+len(a.Mycotoxins)+len(a.Nutritional))

	for _, m := range a.Microbiological {
		results = append(results, e.ValidateMicrobiological(m.Parameter, m.Value, m.Unit))
	}
	groups := []struct {
		cat domain.RuleCategory
		ms  []domain.Measurement
	}{
		{domain.CategoryHeavyMetal, a.HeavyMetals},
		{domain.CategoryPesticide, a.Pesticides},
		{domain.CategoryMycotoxin, a.Mycotoxins},
	}
	for _, g := range groups {
		for _, m := range g.ms {
			results = append(results, e.ValidateChemical(m.Parameter, m.Value, m.Unit, g.cat))
		}
	}
	for _, n := range a.Nutritional {
		results = append(results, e.ValidateNutritional(n.Parameter, n.Declared, n.Actual, n.Unit))
	}

	overall := e.CalculateOverallStatus(results)
	e.logger.Info("validator.Engine: analysis validated",
		zap.String("product", a.ProductName),
		zap.Int("results", len(results)),
		zap.String("status", string(overall.Status)),
	)
	return domain.AnalysisReport{
		ProductName:   a.ProductName,
		Results:       results,
		OverallStatus: overall,
		Feedback:      GenerateValidationFeedback(results),
	}
}

// Data point ID prefixes assigned by the parser.
const (
	microPrefix = "micro_"
	metalPrefix = "metal_"
)

// ValidateDataPoints checks parsed microbiological and heavy-metal data
// points against the rule tables. Qualitative values count as 0 when the
// point passed and 1 otherwise. NaN values and other categories are skipped.
func (e *Engine) ValidateDataPoints(points []domain.DataPoint) []domain.ValidationResult {
	results := []domain.ValidationResult{}
	for _, dp := range points {
		var cat domain.RuleCategory
		var field string
		switch {
		case strings.HasPrefix(dp.ID, microPrefix):
			cat, field = domain.CategoryMicrobiological, strings.TrimPrefix(dp.ID, microPrefix)
		case strings.HasPrefix(dp.ID, metalPrefix):
			cat, field = domain.CategoryHeavyMetal, strings.TrimPrefix(dp.ID, metalPrefix)
		default:
			continue
		}

		value, ok := dp.Value.Float()
		if ok && math.IsNaN(value) {
			continue
		}
		if !ok {
			value = 1
			if dp.Status == domain.DataPointPassed {
				value = 0
			}
		}
		res := e.validate(cat, domain.Measurement{Parameter: field, Value: value, Unit: dp.Unit})
		res.Parameter = dp.Name
		results = append(results, res)
	}
	return results
}
