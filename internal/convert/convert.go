// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Anki deck archives into Obsidian notes.
//
// Each archive is extracted to the scratch directory, every note is run
// through the markup pipeline and written to the export directory, and the
// scratch directory is removed again. A failing note never stops its deck
// and a failing deck never stops the batch.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/anki-obsidian/internal/deck"
	"github.com/pdiddy/anki-obsidian/internal/export"
	"github.com/pdiddy/anki-obsidian/pkg/types"
)

// StdinPath is the conventional "read from stdin" argument. Decks cannot be
// streamed, so it is skipped.
const StdinPath = "-"

// Transformer turns a note's raw field content into its Markdown body.
// markup.Pipeline implements it.
type Transformer interface {
	Transform(ctx context.Context, raw string) (string, error)
}

// BatchResult counts note outcomes.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of notes processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any note failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(o BatchResult) {
	r.Converted += o.Converted
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// DeckResult is the outcome for one archive path.
type DeckResult struct {
	Path   string
	Status types.Status
	Notes  BatchResult
	Err    error
}

// RunResult is the outcome of a batch over several archive paths.
type RunResult struct {
	Decks []DeckResult
	Notes BatchResult
}

// HasFailures reports whether any deck or note failed.
func (r RunResult) HasFailures() bool {
	if r.Notes.HasFailures() {
		return true
	}
	for _, d := range r.Decks {
		if d.Status == types.StatusFailed {
			return true
		}
	}
	return false
}

// DeckCount returns how many decks ended with status s.
func (r RunResult) DeckCount(s types.Status) int {
	n := 0
	for _, d := range r.Decks {
		if d.Status == s {
			n++
		}
	}
	return n
}

// Converter runs decks through a Transformer into an export.Writer.
type Converter struct {
	transformer Transformer
	writer      *export.Writer
	scratchDir  string
	log         zerolog.Logger
}

// New returns a Converter that extracts archives into scratchDir.
func New(t Transformer, w *export.Writer, scratchDir string, log zerolog.Logger) *Converter {
	return &Converter{transformer: t, writer: w, scratchDir: scratchDir, log: log}
}

// ConvertNote transforms and writes a single note, printing its status to
// out.
func (c *Converter) ConvertNote(ctx context.Context, note types.Note, out io.Writer) types.Status {
	body, err := c.transformer.Transform(ctx, note.Fields)
	if err != nil {
		fmt.Fprintf(out, "failed:    %s (%v)\n", noteLabel(note), err)
		c.log.Warn().Err(err).Int64("note", note.ID).Msg("transform failed")
		return types.StatusFailed
	}

	path, err := c.writer.Write(note, body)
	if err != nil {
		fmt.Fprintf(out, "failed:    %s (%v)\n", noteLabel(note), err)
		c.log.Warn().Err(err).Int64("note", note.ID).Msg("write failed")
		return types.StatusFailed
	}

	fmt.Fprintf(out, "converted: %s\n", path)
	return types.StatusConverted
}

// ConvertDeck converts every note of the archive at path. The scratch
// directory is cleared before extraction and removed afterwards.
func (c *Converter) ConvertDeck(ctx context.Context, path string, out io.Writer) DeckResult {
	res := DeckResult{Path: path}
	if path == StdinPath {
		fmt.Fprintf(out, "skipped:   %s (reading decks from stdin is not supported)\n", path)
		res.Status = types.StatusSkipped
		return res
	}

	c.removeScratch()
	defer c.removeScratch()

	d, err := deck.Open(ctx, path, c.scratchDir)
	if err != nil {
		return c.deckFailed(res, err, out)
	}
	defer d.Close()

	notes, err := d.Notes(ctx)
	if err != nil {
		return c.deckFailed(res, err, out)
	}
	c.log.Debug().Str("deck", path).Str("collection", d.Collection()).Int("notes", len(notes)).Msg("deck opened")

	for i, n := range notes {
		if ctx.Err() != nil {
			res.Notes.Skipped += len(notes) - i
			break
		}
		switch c.ConvertNote(ctx, n, out) {
		case types.StatusConverted:
			res.Notes.Converted++
		case types.StatusFailed:
			res.Notes.Failed++
		}
	}

	res.Status = types.StatusConverted
	if err := ctx.Err(); err != nil {
		res.Status = types.StatusFailed
		res.Err = err
	}
	return res
}

// ConvertBatch converts each archive path in turn, printing per-note status
// and a final summary to out.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, out io.Writer) RunResult {
	var run RunResult
	for _, p := range paths {
		if ctx.Err() != nil {
			run.Decks = append(run.Decks, DeckResult{Path: p, Status: types.StatusSkipped, Err: ctx.Err()})
			continue
		}
		res := c.ConvertDeck(ctx, p, out)
		run.Notes.add(res.Notes)
		run.Decks = append(run.Decks, res)
	}

	fmt.Fprintf(out, "\nBatch summary: %d decks converted, %d skipped, %d failed; %d notes converted, %d failed (total: %d)\n",
		run.DeckCount(types.StatusConverted), run.DeckCount(types.StatusSkipped), run.DeckCount(types.StatusFailed),
		run.Notes.Converted, run.Notes.Failed, run.Notes.Total())
	return run
}

// ReadDeck returns the notes of the archive at path without converting them.
// The archive is extracted into scratchDir, which is removed before
// returning.
func ReadDeck(ctx context.Context, path, scratchDir string, log zerolog.Logger) ([]types.Note, error) {
	removeScratch(scratchDir, log)
	defer removeScratch(scratchDir, log)

	d, err := deck.Open(ctx, path, scratchDir)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Notes(ctx)
}

func (c *Converter) deckFailed(res DeckResult, err error, out io.Writer) DeckResult {
	fmt.Fprintf(out, "failed:    %s (%v)\n", res.Path, err)
	ev := c.log.Error().Err(err).Str("deck", res.Path)
	if errors.Is(err, deck.ErrArchive) {
		ev.Msg("cannot read archive")
	} else {
		ev.Msg("cannot read deck")
	}
	res.Status = types.StatusFailed
	res.Err = err
	return res
}

func (c *Converter) removeScratch() {
	removeScratch(c.scratchDir, c.log)
}

// removeScratch deletes dir. Failures are logged and otherwise ignored.
func removeScratch(dir string, log zerolog.Logger) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("removing scratch directory")
	}
}

func noteLabel(n types.Note) string {
	if n.Title == "" {
		return fmt.Sprintf("note %d", n.ID)
	}
	return fmt.Sprintf("%s (note %d)", n.Title, n.ID)
}
