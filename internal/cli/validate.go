package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"trustlabel/internal/domain"
)

// ErrRejected is returned by validate --fail-on-reject for a rejected product.
var ErrRejected = errors.New("product rejected")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var output string
	var failOnReject bool
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a product analysis (JSON or YAML) against regulatory limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			analysis, err := readAnalysis(args[0])
			if err != nil {
				return err
			}
			svc, err := root.newService()
			if err != nil {
				return err
			}
			report, err := svc.ValidateAnalysis(cmd.Context(), analysis)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == outputJSON {
				if err := writeJSON(w, report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report)
			}
			if failOnReject && report.OverallStatus.Status == domain.VerdictRejected {
				return ErrRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|json")
	cmd.Flags().BoolVar(&failOnReject, "fail-on-reject", false, "Exit non-zero when the product is rejected")
	return cmd
}

// readAnalysis decodes a ProductAnalysis from a .yaml/.yml or JSON file.
func readAnalysis(path string) (*domain.ProductAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var a domain.ProductAnalysis
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &a, nil
}

func printReport(cmd *cobra.Command, report *domain.AnalysisReport) {
	w := cmd.OutOrStdout()
	if report.ProductName != "" {
		fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(report.ProductName))
	}
	printResults(w, report.Results)
	printOverall(w, report.OverallStatus)
	if len(report.Feedback.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range report.Feedback.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}
