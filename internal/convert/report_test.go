// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anki-obsidian/pkg/types"
)

func sampleRun() RunResult {
	return RunResult{
		Decks: []DeckResult{
			{Path: "a.apkg", Status: types.StatusConverted, Notes: BatchResult{Converted: 2, Failed: 1}},
			{Path: "b.apkg", Status: types.StatusFailed, Err: errors.New("invalid deck archive")},
		},
		Notes: BatchResult{Converted: 2, Failed: 1},
	}
}

func TestNewReport(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewReport(sampleRun(), "export", now)

	assert.Equal(t, "2026-03-01T12:00:00Z", r.GeneratedAt)
	assert.True(t, r.Failed)
	assert.Equal(t, ReportSummary{Converted: 2, Failed: 1, Total: 3}, r.Notes)
	require.Len(t, r.Decks, 2)
	assert.Equal(t, "converted", r.Decks[0].Status)
	assert.Empty(t, r.Decks[0].Error)
	assert.Equal(t, "invalid deck archive", r.Decks[1].Error)
}

func TestWriteReport(t *testing.T) {
	r := NewReport(sampleRun(), "export", time.Now())

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "run.yaml")
		require.NoError(t, WriteReport(path, r))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got Report
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Len(t, got.Decks, 2)
		assert.Equal(t, "b.apkg", got.Decks[1].Path)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.json")
		require.NoError(t, WriteReport(path, r))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, true, got["failed"])
	})
}
