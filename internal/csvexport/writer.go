package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"trustlabel/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows reads
// the file as UTF-8 (units like "μg/kg" depend on it).
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the results header row.
var columns = []string{
	"Product",
	"Parameter",
	"Value",
	"Unit",
	"Status",
	"Message",
	"Regulatory Reference",
}

// Writer wraps csv.Writer for exporting validation results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport writes one row per result of the report.
func (w *Writer) WriteReport(report *domain.AnalysisReport) error {
	for i := range report.Results {
		if err := w.csv.Write(resultToRow(report.ProductName, &report.Results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and every report's results to w.
func WriteCSV(w io.Writer, reports []domain.AnalysisReport) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for i := range reports {
		if err := cw.WriteReport(&reports[i]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func resultToRow(product string, r *domain.ValidationResult) []string {
	return []string{
		product,
		r.Parameter,
		formatValue(r.Value),
		r.Unit,
		string(r.Status),
		r.Message,
		r.Reference,
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a product name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "analysis"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
