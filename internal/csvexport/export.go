package csvexport

import (
	"fmt"
	"io"

	"trustlabel/internal/domain"
)

// ParseFormat maps a format name to an ExportFormat. An empty name means CSV.
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch domain.ExportFormat(s) {
	case "", domain.ExportFormatCSV:
		return domain.ExportFormatCSV, nil
	case domain.ExportFormatXLSX:
		return domain.ExportFormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, s)
	}
}

// ContentType returns the MIME type served for a format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Export writes reports to w in the given format.
func Export(w io.Writer, format domain.ExportFormat, reports []domain.AnalysisReport) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(w, reports)
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, reports)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}
}
