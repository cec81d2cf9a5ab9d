package domain

import "errors"

var (
	ErrUnsupportedMediaType    = errors.New("unsupported media type")
	ErrUnreadableDocument      = errors.New("document text is not readable")
	ErrInvalidAnalysis         = errors.New("invalid product analysis")
	ErrInvalidVocabulary       = errors.New("invalid extraction vocabulary")
	ErrInvalidLimits           = errors.New("invalid regulatory limits")
	ErrBatchTooLarge           = errors.New("batch exceeds maximum allowed items")
	ErrEmptyBatch              = errors.New("batch contains no items")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUnknownCategory         = errors.New("unknown rule category")
)
