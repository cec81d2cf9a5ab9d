package port

import (
	"context"

	"trustlabel/internal/domain"
)

// ReportParser turns the raw text of a lab report into structured data.
type ReportParser interface {
	Parse(ctx context.Context, doc domain.RawDocument) (*domain.ParsedReport, error)
}
