package parser

import (
	"fmt"
	"math"
	"time"

	"trustlabel/internal/domain"
)

// Baseline microbiological fields a micro report is expected to carry.
const (
	fieldTotalPlateCount = "total_plate_count"
	fieldColiforms       = "coliforms"
)

// Score rates how completely a report was extracted, from 0 to 100. It is a
// completeness proxy, not a probability.
//
//	+20  lab format recognized
//	+20  share of report number, date and sample id found
//	+30  any microbiological, heavy-metal or nutritional result
//	+30  data point count, saturating at 10
func Score(report *domain.ParsedReport) int {
	score := 0.0
	if report.LabFormat != domain.LabFormatUnknown {
		score += 20
	}

	found := 0
	for _, f := range []string{report.ReportNumber, report.ReportDate, report.SampleID} {
		if f != "" {
			found++
		}
	}
	score += float64(found) / 3 * 20

	if len(report.Microbiological) > 0 || len(report.HeavyMetals) > 0 || !report.Nutritional.Empty() {
		score += 30
	}

	score += math.Min(float64(len(report.DataPoints))/10, 1) * 30

	return int(math.Round(score))
}

// CheckExtraction lists problems with an extracted report. It never fails;
// an empty slice means nothing was flagged.
func CheckExtraction(report *domain.ParsedReport) []string {
	errs := []string{}

	if len(report.DataPoints) == 0 {
		errs = append(errs, "No data points were extracted from the report")
	}

	if report.ReportDate != "" {
		if _, err := time.Parse("2006-01-02", report.ReportDate); err != nil {
			errs = append(errs, "Invalid report date format")
		}
	}

	if len(report.Microbiological) > 0 &&
		!report.Microbiological.Has(fieldTotalPlateCount) &&
		!report.Microbiological.Has(fieldColiforms) {
		errs = append(errs, "Microbiological report missing basic parameters")
	}

	for _, dp := range report.DataPoints {
		if v, ok := dp.Value.Float(); ok && (v < 0 || math.IsNaN(v)) {
			errs = append(errs, fmt.Sprintf("Invalid value for %s: %s", dp.Name, dp.Value))
		}
	}

	return errs
}
