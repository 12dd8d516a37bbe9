package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinels allow callers to branch with errors.Is()
// while still carrying human-readable messages.
var (
	// ErrNoTarget is returned when no seed URL was provided.
	ErrNoTarget = errors.New("no targets provided (specify one or more seed URLs as arguments)")

	// ErrInvalidTimeout is returned when the request timeout is zero
	// or negative.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidMaxPages is returned when the page cap is zero or
	// negative.
	ErrInvalidMaxPages = errors.New("max-pages must be positive")

	// ErrInvalidMaxFrontier is returned when the frontier cap is zero
	// or negative.
	ErrInvalidMaxFrontier = errors.New("max-frontier must be positive")

	// ErrInvalidBatchSize is returned when the batch size is zero or
	// negative.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is
	// zero or negative.
	ErrInvalidMaxBodySize = errors.New("max body size must be positive")

	// ErrConflictingReportFormats is returned when both JSON and
	// Markdown output were requested.
	ErrConflictingReportFormats = errors.New("--json and --markdown are mutually exclusive")

	// ErrUnknownExtractor is returned for an unrecognized extraction
	// strategy name.
	ErrUnknownExtractor = errors.New(`extractor must be "pattern" or "dom"`)
)
