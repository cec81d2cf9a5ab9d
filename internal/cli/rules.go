package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trustlabel/internal/domain"
)

func newRulesCmd(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "rules [category]",
		Short:     "List regulatory limits, optionally for one category",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"microbiological", "heavy_metal", "pesticide", "mycotoxin"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			svc, err := root.newService()
			if err != nil {
				return err
			}
			rules, err := svc.ListRules(category)
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rules)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tPARAMETER\tMAX\tWARNING\tUNIT\tSEVERITY\tSOURCE")
			for i := range rules {
				r := &rules[i]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Category, r.Parameter, bound(r.Limits.Max), bound(r.Limits.WarningThreshold), r.Unit, r.Severity, r.Source)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|json")
	return cmd
}

func bound(f *float64) string {
	if f == nil {
		return "-"
	}
	return domain.FormatNumber(*f)
}
