// Package parser turns lab report text into structured, typed results.
//
// Extraction is heuristic and order dependent: the first matching pattern in
// an ordered list wins, and within a category scan the last matching line
// wins. A Parser holds only read-only tables, so one instance can serve
// concurrent calls.
package parser

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"trustlabel/internal/domain"
	"trustlabel/internal/vocabulary"
)

// Parser extracts a ParsedReport from raw lab report text.
type Parser struct {
	vocab   *vocabulary.Vocabulary
	logger  *zap.Logger
	sources map[string]TextSource

	labFormats []vocabulary.LabKeywords
	params     []vocabulary.Synonym
	allergens  []allergenPatterns
	vitamins   []nutrientPattern
	minerals   []nutrientPattern
}

// Option configures a Parser.
type Option func(*Parser)

// WithVocabulary replaces the embedded default vocabulary.
func WithVocabulary(v *vocabulary.Vocabulary) Option {
	return func(p *Parser) { p.vocab = v }
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithTextSource registers a text source for an additional media type.
func WithTextSource(mediaType string, src TextSource) Option {
	return func(p *Parser) { p.sources[mediaType] = src }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger:  zap.NewNop(),
		sources: defaultSources(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.vocab == nil {
		p.vocab = vocabulary.Default()
	}
	p.labFormats = p.vocab.LabFormats()
	p.params = p.vocab.Parameters()
	p.allergens = compileAllergenPatterns(p.vocab.Allergens())
	p.vitamins = compileNutrientPatterns(p.vocab.Vitamins())
	p.minerals = compileNutrientPatterns(p.vocab.Minerals())
	return p
}

// Vocabulary returns the vocabulary the parser extracts with.
func (p *Parser) Vocabulary() *vocabulary.Vocabulary {
	return p.vocab
}

// Parse extracts a ParsedReport from doc. Extraction problems are reported in
// the report's ExtractionErrors; an error is returned only when the document
// text cannot be read at all.
func (p *Parser) Parse(ctx context.Context, doc domain.RawDocument) (*domain.ParsedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	raw, err := p.readText(doc)
	if err != nil {
		p.logger.Warn("parser.Parser: unreadable document",
			zap.String("name", doc.Name),
			zap.String("media_type", doc.MediaType),
			zap.Error(err),
		)
		return nil, err
	}
	text := NormalizeText(raw)

	format := p.DetectLabFormat(text)
	report := &domain.ParsedReport{
		LabFormat:    format,
		ReportHeader: p.ExtractHeader(text, format),
	}
	report.Microbiological = p.ExtractMicrobiological(text)
	report.HeavyMetals = p.ExtractHeavyMetals(text)
	report.Nutritional = p.ExtractNutritional(text)
	report.Pesticides = p.ExtractPesticides(text)
	report.Allergens = p.ExtractAllergens(text)
	report.PhysicalChemical = p.ExtractPhysicalChemical(text)

	report.DataPoints = p.ToDataPoints(report)
	report.Confidence = Score(report)
	report.ExtractionErrors = CheckExtraction(report)
	report.RawText = raw

	p.logger.Debug("parser.Parser: parsed report",
		zap.String("name", doc.Name),
		zap.String("lab_format", string(format)),
		zap.Int("data_points", len(report.DataPoints)),
		zap.Int("confidence", report.Confidence),
		zap.Int("extraction_errors", len(report.ExtractionErrors)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// firstGroup returns capture group 1 of the first match of re in text.
func firstGroup(re *regexp.Regexp, text string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
