package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"trustlabel/internal/domain"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

func checkOutput(format string) error {
	if format != outputText && format != outputJSON {
		return fmt.Errorf("--output must be %s or %s, got %q", outputText, outputJSON, format)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func colorStatus(s domain.ComplianceStatus) string {
	switch s {
	case domain.ComplianceApproved:
		return color.GreenString(string(s))
	case domain.ComplianceWarning:
		return color.YellowString(string(s))
	default:
		return color.RedString(string(s))
	}
}

func colorVerdict(s domain.VerdictStatus) string {
	switch s {
	case domain.VerdictApproved:
		return color.New(color.FgGreen, color.Bold).Sprint(strings.ToUpper(string(s)))
	case domain.VerdictConditional:
		return color.New(color.FgYellow, color.Bold).Sprint(strings.ToUpper(string(s)))
	default:
		return color.New(color.FgRed, color.Bold).Sprint(strings.ToUpper(string(s)))
	}
}

func printResults(w io.Writer, results []domain.ValidationResult) {
	for i := range results {
		r := &results[i]
		fmt.Fprintf(w, "  %-10s %s = %s %s: %s\n",
			colorStatus(r.Status), r.Parameter, domain.FormatNumber(r.Value), r.Unit, r.Message)
	}
}

func printOverall(w io.Writer, s domain.OverallStatus) {
	fmt.Fprintf(w, "\nVerdict: %s  %s\n", colorVerdict(s.Status), s.Summary)
}
