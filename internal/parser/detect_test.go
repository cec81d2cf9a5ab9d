package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trustlabel/internal/domain"
	"trustlabel/internal/parser"
)

func TestDetectLabFormat(t *testing.T) {
	p := parser.New()

	tests := []struct {
		name string
		text string
		want domain.LabFormat
	}{
		{"eurofins lower case", "relatório eurofins do brasil", domain.LabFormatEurofins},
		{"eurofins mixed case", "EuroFins Scientific", domain.LabFormatEurofins},
		{"sgs", "SGS do Brasil Ltda", domain.LabFormatSGS},
		{"intertek", "Intertek Food Services", domain.LabFormatIntertek},
		{"bureau veritas", "Bureau Veritas Certificate", domain.LabFormatBureauVeritas},
		{"first listed format wins", "Intertek subcontracted to Eurofins", domain.LabFormatEurofins},
		{"unknown", "Laboratorio Central de Testes", domain.LabFormatUnknown},
		{"empty", "", domain.LabFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DetectLabFormat(tt.text))
		})
	}
}

func TestExtractHeader_Intertek(t *testing.T) {
	p := parser.New()
	text := "Intertek\nCertificate No: IT-77\nTest Date: 1/2/24\nLab Sample No: LS-9"

	h := p.ExtractHeader(text, domain.LabFormatIntertek)

	assert.Equal(t, "IT-77", h.ReportNumber)
	assert.Equal(t, "2024-02-01", h.ReportDate)
	assert.Equal(t, "LS-9", h.SampleID)
}

func TestExtractHeader_SGS(t *testing.T) {
	p := parser.New()
	text := "SGS Report No: SG-100\nIssue Date: 09-11-2023\nSample Reference: REF-3"

	h := p.ExtractHeader(text, domain.LabFormatSGS)

	assert.Equal(t, "SG-100", h.ReportNumber)
	assert.Equal(t, "2023-11-09", h.ReportDate)
	assert.Equal(t, "REF-3", h.SampleID)
}

func TestExtractHeader_UnknownUsesDefaultPatterns(t *testing.T) {
	p := parser.New()

	h := p.ExtractHeader("Report No: R-1\nSample Code: X-2", domain.LabFormatUnknown)

	assert.Equal(t, "R-1", h.ReportNumber)
	assert.Equal(t, "X-2", h.SampleID)
	assert.Empty(t, h.ReportDate)
}

func TestExtractHeader_FirstMatchWins(t *testing.T) {
	p := parser.New()

	h := p.ExtractHeader("Report No: FIRST\nReport No: SECOND", domain.LabFormatEurofins)

	assert.Equal(t, "FIRST", h.ReportNumber)
}
