// Package app assembles the parser and validation engine from configuration
// for the server and CLI binaries.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"trustlabel/internal/config"
	"trustlabel/internal/parser"
	"trustlabel/internal/validator"
	"trustlabel/internal/validator/limits"
	"trustlabel/internal/vocabulary"
)

// Engines holds the configured parser and validation engine.
type Engines struct {
	Vocabulary *vocabulary.Vocabulary
	Rules      *limits.RuleSet
	Parser     *parser.Parser
	Validator  *validator.Engine
}

// Build loads the vocabulary and limits named in cfg, falling back to the
// embedded resources for empty paths.
func Build(cfg config.EngineConfig, logger *zap.Logger) (*Engines, error) {
	vocab := vocabulary.Default()
	if cfg.VocabularyPath != "" {
		v, err := vocabulary.Load(cfg.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("loading vocabulary: %w", err)
		}
		vocab = v
	}

	rules := limits.Default()
	if cfg.LimitsPath != "" {
		rs, err := limits.Load(cfg.LimitsPath)
		if err != nil {
			return nil, fmt.Errorf("loading limits: %w", err)
		}
		rules = rs
	}

	logger.Info("app: engines ready",
		zap.Int("vocabulary_version", vocab.Version()),
		zap.Int("limits_version", rules.Version()),
	)
	return &Engines{
		Vocabulary: vocab,
		Rules:      rules,
		Parser:     parser.New(parser.WithVocabulary(vocab), parser.WithLogger(logger)),
		Validator:  validator.NewEngine(rules, validator.WithLogger(logger)),
	}, nil
}
