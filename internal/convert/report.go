// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the serialized summary of a run.
type Report struct {
	GeneratedAt string        `json:"generated_at" yaml:"generated_at"`
	ExportDir   string        `json:"export_dir" yaml:"export_dir"`
	Decks       []ReportDeck  `json:"decks" yaml:"decks"`
	Notes       ReportSummary `json:"notes" yaml:"notes"`
	Failed      bool          `json:"failed" yaml:"failed"`
}

// ReportDeck holds one archive's entry in the report.
type ReportDeck struct {
	Path   string        `json:"path" yaml:"path"`
	Status string        `json:"status" yaml:"status"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
	Notes  ReportSummary `json:"notes" yaml:"notes"`
}

// ReportSummary holds note counts.
type ReportSummary struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
	Total     int `json:"total" yaml:"total"`
}

// NewReport builds the report for run.
func NewReport(run RunResult, exportDir string, now time.Time) Report {
	r := Report{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		ExportDir:   exportDir,
		Decks:       make([]ReportDeck, len(run.Decks)),
		Notes:       summarize(run.Notes),
		Failed:      run.HasFailures(),
	}
	for i, d := range run.Decks {
		r.Decks[i] = ReportDeck{
			Path:   d.Path,
			Status: string(d.Status),
			Notes:  summarize(d.Notes),
		}
		if d.Err != nil {
			r.Decks[i].Error = d.Err.Error()
		}
	}
	return r
}

// WriteReport writes r to path as JSON when the extension is .json and as
// YAML otherwise.
func WriteReport(path string, r Report) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func summarize(b BatchResult) ReportSummary {
	return ReportSummary{
		Converted: b.Converted,
		Skipped:   b.Skipped,
		Failed:    b.Failed,
		Total:     b.Total(),
	}
}
