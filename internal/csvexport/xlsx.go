package csvexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trustlabel/internal/domain"
)

// Sheet names of the XLSX workbook.
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

var summaryColumns = []string{
	"Product",
	"Status",
	"Summary",
	"Critical Issues",
	"Non-Critical Issues",
	"Warnings",
}

// WriteXLSX writes a workbook with a Results sheet (same columns as the CSV
// export) and a Summary sheet holding one verdict row per report.
func WriteXLSX(w io.Writer, reports []domain.AnalysisReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &columns); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	row := 2
	for i := range reports {
		for j := range reports[i].Results {
			r := &reports[i].Results[j]
			values := []interface{}{
				reports[i].ProductName, r.Parameter, r.Value, r.Unit, string(r.Status), r.Message, r.Reference,
			}
			if err := f.SetSheetRow(ResultsSheet, cell(row), &values); err != nil {
				return fmt.Errorf("writing results row %d: %w", row, err)
			}
			row++
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryColumns); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for i := range reports {
		s := reports[i].OverallStatus
		values := []interface{}{
			reports[i].ProductName, string(s.Status), s.Summary, s.CriticalIssues, s.NonCriticalIssues, s.Warnings,
		}
		if err := f.SetSheetRow(SummarySheet, cell(i+2), &values); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func cell(row int) string {
	name, _ := excelize.CoordinatesToCellName(1, row)
	return name
}
