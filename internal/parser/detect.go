package parser

import (
	"strings"

	"trustlabel/internal/domain"
)

// DetectLabFormat returns the first lab format whose keywords occur in text,
// checked in vocabulary order, or LabFormatUnknown.
func (p *Parser) DetectLabFormat(text string) domain.LabFormat {
	lower := strings.ToLower(text)
	for _, lf := range p.labFormats {
		for _, kw := range lf.Keywords {
			if strings.Contains(lower, kw) {
				return lf.Format
			}
		}
	}
	return domain.LabFormatUnknown
}

// ExtractHeader pulls report metadata using the format's header patterns.
// Formats without their own patterns use the default set. Only the first
// match of each pattern is used.
func (p *Parser) ExtractHeader(text string, format domain.LabFormat) domain.ReportHeader {
	hp := p.vocab.HeaderPatterns(format)

	h := domain.ReportHeader{
		ReportNumber: firstGroup(hp.ReportNumber, text),
		SampleID:     firstGroup(hp.SampleID, text),
		ProductName:  strings.TrimSpace(firstGroup(p.vocab.ProductNamePattern(), text)),
		BatchNumber:  firstGroup(p.vocab.BatchNumberPattern(), text),
	}
	if d := firstGroup(hp.Date, text); d != "" {
		h.ReportDate = NormalizeDate(d)
	}
	return h
}
