// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and report records shared
// between the CLI, the file processor, and the history ledger.
package types

// FileReport is the per-file outcome of one normalization pass.
type FileReport struct {
	// Path is the file as supplied by the caller.
	Path string `json:"path" yaml:"path"`

	// Quotes is the number of canonical ASCII quotes found after
	// variant folding, i.e. the number of quote positions rewritten.
	Quotes int `json:"quotes" yaml:"quotes"`

	// Left and Right count the typographic quotes in the output.
	Left  int `json:"left" yaml:"left"`
	Right int `json:"right" yaml:"right"`

	// Residual counts ASCII quotes remaining after the transform.
	// Always zero; reported for diagnostic display.
	Residual int `json:"residual" yaml:"residual"`

	// Succeeded reports whether the full pipeline completed.
	Succeeded bool `json:"succeeded" yaml:"succeeded"`

	// Message holds the failure detail when Succeeded is false.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
