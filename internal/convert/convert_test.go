// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/anki-obsidian/internal/deck"
	"github.com/pdiddy/anki-obsidian/internal/deck/decktest"
	"github.com/pdiddy/anki-obsidian/internal/export"
	"github.com/pdiddy/anki-obsidian/internal/markup"
	"github.com/pdiddy/anki-obsidian/pkg/types"
)

// fakeTransformer returns the raw field content, or an error for fields
// listed in fail.
type fakeTransformer struct {
	fail map[string]error
}

func (f *fakeTransformer) Transform(_ context.Context, raw string) (string, error) {
	if err, ok := f.fail[raw]; ok {
		return "", err
	}
	return raw, nil
}

func newTestConverter(t *testing.T, tr Transformer, fs afero.Fs) (*Converter, string) {
	t.Helper()
	scratch := filepath.Join(t.TempDir(), "tmp")
	return New(tr, export.NewWriter(fs, "export"), scratch, zerolog.Nop()), scratch
}

func TestConvertNote(t *testing.T) {
	tests := []struct {
		name       string
		transform  *fakeTransformer
		fs         afero.Fs
		note       types.Note
		wantStatus types.Status
		wantLog    string
	}{
		{
			name:       "successful conversion",
			transform:  &fakeTransformer{},
			fs:         afero.NewMemMapFs(),
			note:       types.Note{ID: 1, Title: "Cell", Fields: "body"},
			wantStatus: types.StatusConverted,
			wantLog:    "converted: " + filepath.Join("export", "Cell.md"),
		},
		{
			name:       "transform failure",
			transform:  &fakeTransformer{fail: map[string]error{"body": errors.New("boom")}},
			fs:         afero.NewMemMapFs(),
			note:       types.Note{ID: 2, Title: "Cell", Fields: "body"},
			wantStatus: types.StatusFailed,
			wantLog:    "failed:    Cell (note 2) (boom)",
		},
		{
			name:       "write failure",
			transform:  &fakeTransformer{},
			fs:         afero.NewReadOnlyFs(afero.NewMemMapFs()),
			note:       types.Note{ID: 3, Title: "Cell", Fields: "body"},
			wantStatus: types.StatusFailed,
			wantLog:    "failed:",
		},
		{
			name:       "untitled note",
			transform:  &fakeTransformer{},
			fs:         afero.NewMemMapFs(),
			note:       types.Note{ID: 4, Fields: "body"},
			wantStatus: types.StatusFailed,
			wantLog:    "failed:    note 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConverter(t, tt.transform, tt.fs)
			var log bytes.Buffer

			status := c.ConvertNote(context.Background(), tt.note, &log)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, log.String(), tt.wantLog)
		})
	}
}

func TestConvertDeck_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	archive := decktest.Archive(t, dir, "science.apkg", decktest.Anki21,
		types.Note{ID: 1, Title: "France", Tags: "geography europe",
			Fields: "France\x1fThe capital of France is {{c1::Paris}}."},
		types.Note{ID: 2, Title: "Energy: Mass", Tags: "physics",
			Fields: "Energy\x1f" + `Energy: \(E=mc^2\)`},
	)

	fs := afero.NewMemMapFs()
	c, scratch := newTestConverter(t, markup.NewPipeline(), fs)
	var log bytes.Buffer

	res := c.ConvertDeck(context.Background(), archive, &log)

	require.NoError(t, res.Err)
	assert.Equal(t, types.StatusConverted, res.Status)
	assert.Equal(t, BatchResult{Converted: 2}, res.Notes)
	assert.NoDirExists(t, scratch)

	got, err := afero.ReadFile(fs, filepath.Join("export", "France.md"))
	require.NoError(t, err)
	assert.Equal(t, "The capital of France is Paris.\n#geography #europe ", string(got))

	got, err = afero.ReadFile(fs, filepath.Join("export", "Energy - Mass.md"))
	require.NoError(t, err)
	assert.Equal(t, "Energy: $E=mc^2$\n#physics ", string(got))
}

func TestConvertDeck_NoteIsolation(t *testing.T) {
	dir := t.TempDir()
	archive := decktest.Archive(t, dir, "deck.apkg", decktest.Anki21,
		types.Note{ID: 1, Title: "one", Fields: "a"},
		types.Note{ID: 2, Title: "two", Fields: "b"},
		types.Note{ID: 3, Title: "three", Fields: "c"},
	)

	fs := afero.NewMemMapFs()
	tr := &fakeTransformer{fail: map[string]error{"b": errors.New("bad note")}}
	c, _ := newTestConverter(t, tr, fs)
	var log bytes.Buffer

	res := c.ConvertDeck(context.Background(), archive, &log)

	assert.Equal(t, types.StatusConverted, res.Status)
	assert.Equal(t, BatchResult{Converted: 2, Failed: 1}, res.Notes)
	for _, name := range []string{"one.md", "three.md"} {
		ok, err := afero.Exists(fs, filepath.Join("export", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}

func TestConvertDeck_Stdin(t *testing.T) {
	c, _ := newTestConverter(t, &fakeTransformer{}, afero.NewMemMapFs())
	var log bytes.Buffer

	res := c.ConvertDeck(context.Background(), StdinPath, &log)

	assert.Equal(t, types.StatusSkipped, res.Status)
	assert.Contains(t, log.String(), "skipped:")
}

func TestConvertDeck_Cancelled(t *testing.T) {
	dir := t.TempDir()
	archive := decktest.Archive(t, dir, "deck.apkg", decktest.Anki21,
		types.Note{ID: 1, Title: "one", Fields: "a"},
		types.Note{ID: 2, Title: "two", Fields: "b"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newTestConverter(t, &fakeTransformer{}, afero.NewMemMapFs())
	res := c.ConvertDeck(ctx, archive, &bytes.Buffer{})

	assert.Equal(t, types.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	good := decktest.Archive(t, dir, "good.apkg", decktest.Anki21,
		types.Note{ID: 1, Title: "Alpha", Fields: "x"})
	other := decktest.Archive(t, dir, "other.apkg", decktest.Anki21b,
		types.Note{ID: 1, Title: "Beta", Fields: "y"})
	missing := filepath.Join(dir, "missing.apkg")

	fs := afero.NewMemMapFs()
	c, scratch := newTestConverter(t, &fakeTransformer{}, fs)
	var log bytes.Buffer

	run := c.ConvertBatch(context.Background(), []string{good, missing, StdinPath, other}, &log)

	require.Len(t, run.Decks, 4)
	assert.Equal(t, types.StatusConverted, run.Decks[0].Status)
	assert.Equal(t, types.StatusFailed, run.Decks[1].Status)
	assert.ErrorIs(t, run.Decks[1].Err, deck.ErrArchive)
	assert.Equal(t, types.StatusSkipped, run.Decks[2].Status)
	assert.Equal(t, types.StatusConverted, run.Decks[3].Status)

	assert.Equal(t, BatchResult{Converted: 2}, run.Notes)
	assert.True(t, run.HasFailures())
	assert.Equal(t, 2, run.DeckCount(types.StatusConverted))
	assert.NoDirExists(t, scratch)

	output := log.String()
	assert.Contains(t, output, "failed:    "+missing)
	assert.True(t, strings.Contains(output, "Batch summary: 2 decks converted, 1 skipped, 1 failed"), output)
}

func TestRunResultHasFailures(t *testing.T) {
	ok := RunResult{Decks: []DeckResult{{Status: types.StatusConverted}}, Notes: BatchResult{Converted: 3}}
	assert.False(t, ok.HasFailures())

	noteFailed := RunResult{Decks: []DeckResult{{Status: types.StatusConverted}}, Notes: BatchResult{Failed: 1}}
	assert.True(t, noteFailed.HasFailures())

	skippedOnly := RunResult{Decks: []DeckResult{{Status: types.StatusSkipped}}}
	assert.False(t, skippedOnly.HasFailures())
}

func TestReadDeck(t *testing.T) {
	dir := t.TempDir()
	archive := decktest.Archive(t, dir, "deck.apkg", decktest.Anki2,
		types.Note{ID: 7, Title: "Only", Tags: "t", Fields: "Only\x1fbody"})
	scratch := filepath.Join(dir, "tmp")

	notes, err := ReadDeck(context.Background(), archive, scratch, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Only", notes[0].Title)
	assert.NoDirExists(t, scratch)
}

func TestReadDeck_Missing(t *testing.T) {
	scratch := filepath.Join(t.TempDir(), "tmp")
	_, err := ReadDeck(context.Background(), filepath.Join(t.TempDir(), "none.apkg"), scratch, zerolog.Nop())
	assert.ErrorIs(t, err, deck.ErrArchive)
	assert.NoDirExists(t, scratch)
}
