// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Log levels accepted in Config.LogLevel.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Config holds the settings for one conversion run. Every path the pipeline
// touches comes from here; nothing is resolved from package state.
type Config struct {
	// ExportDir is where the Markdown notes are written.
	ExportDir string `json:"export_dir" yaml:"export_dir" mapstructure:"export_dir"`

	// ScratchDir is where each archive is extracted while its notes are
	// converted. It is removed after every archive.
	ScratchDir string `json:"scratch_dir" yaml:"scratch_dir" mapstructure:"scratch_dir"`

	// LogLevel is a zerolog level name (default "info").
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// ReportPath, when set, receives a YAML (or JSON, by extension) summary
	// of the run.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}

// Validate checks that the required paths are present and the log level is known.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.ExportDir, validation.Required),
		validation.Field(&c.ScratchDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In(stringsToAny(LogLevels)...)),
	)
}

func stringsToAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
