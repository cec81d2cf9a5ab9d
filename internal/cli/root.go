// Package cli implements the trustlabel command-line interface.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trustlabel/internal/app"
	"trustlabel/internal/config"
	"trustlabel/internal/logger"
	"trustlabel/internal/service"
)

// Version is injected at build time.
var Version = "dev"

type rootOptions struct {
	vocabularyPath string
	limitsPath     string
	noColor        bool
	verbose        bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "trustlabel",
		Short:         "Parse food lab reports and check them against regulatory limits",
		Long:          `trustlabel extracts structured results from laboratory report text and validates measured values against ANVISA limits and nutritional label tolerances.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.vocabularyPath, "vocabulary", "", "Extraction vocabulary YAML (default: embedded)")
	cmd.PersistentFlags().StringVar(&opts.limitsPath, "limits", "", "Regulatory limits YAML (default: embedded)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stdout")

	cmd.AddCommand(
		newParseCmd(opts),
		newValidateCmd(opts),
		newRulesCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// newService assembles an AnalysisService from the global flags.
func (o *rootOptions) newService() (service.AnalysisService, error) {
	zl := logger.NewNop()
	if o.verbose {
		l, err := logger.New(config.LogConfig{Level: "debug", Format: "console"})
		if err != nil {
			return nil, err
		}
		zl = l
	}
	engines, err := app.Build(config.EngineConfig{
		VocabularyPath: o.vocabularyPath,
		LimitsPath:     o.limitsPath,
	}, zl)
	if err != nil {
		return nil, err
	}
	return service.NewAnalysisService(engines.Parser, engines.Validator, engines.Rules, nil, zl.Named("cli"), service.BatchConfig{Concurrency: 1}), nil
}

