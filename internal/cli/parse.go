package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trustlabel/internal/domain"
	"trustlabel/internal/service"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var mediaType, output string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract structured results from a lab report text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if mediaType == "" {
				mediaType = mediaTypeFor(args[0])
			}
			svc, err := root.newService()
			if err != nil {
				return err
			}
			out, err := svc.ParseReport(cmd.Context(), domain.RawDocument{
				Name:      filepath.Base(args[0]),
				MediaType: mediaType,
				Text:      string(data),
			})
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printParsed(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&mediaType, "media-type", "", "Media type of the file (default: from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|json")
	return cmd
}

func mediaTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return domain.MediaTypeCSV
	}
	return domain.MediaTypePlainText
}

func printParsed(w io.Writer, out *service.ParseReportOutput) {
	r := out.Report
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", bold("Lab format:"), r.LabFormat)
	fmt.Fprintf(w, "%s %s\n", bold("Report number:"), orDash(r.ReportNumber))
	fmt.Fprintf(w, "%s %s\n", bold("Report date:"), orDash(r.ReportDate))
	fmt.Fprintf(w, "%s %s\n", bold("Sample ID:"), orDash(r.SampleID))
	if r.ProductName != "" {
		fmt.Fprintf(w, "%s %s\n", bold("Product:"), r.ProductName)
	}
	fmt.Fprintf(w, "%s %d%%\n", bold("Confidence:"), r.Confidence)

	fmt.Fprintf(w, "\n%s (%d)\n", bold("Data points"), len(r.DataPoints))
	for _, dp := range r.DataPoints {
		fmt.Fprintf(w, "  %-28s %s %s [%s]\n", dp.Name, dp.Value, dp.Unit, dp.Status)
	}
	for _, e := range r.ExtractionErrors {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("warning:"), e)
	}

	if len(out.Results) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Regulatory checks"))
		printResults(w, out.Results)
		printOverall(w, out.OverallStatus)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
