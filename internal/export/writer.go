// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes converted notes as Obsidian Markdown files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/anki-obsidian/pkg/types"
)

// ErrWrite reports a note that could not be written to the export directory.
var ErrWrite = errors.New("writing note")

// Writer places note files in a single export directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter returns a Writer rooted at dir on fs. The directory is created on
// first write.
func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

// Dir returns the export directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores body as the note's file and returns its path. The file holds
// the body, a newline, then one "#tag " per tag in the note's order. An
// existing file with the same name is overwritten.
func (w *Writer) Write(note types.Note, body string) (string, error) {
	name, err := FileName(note.Title)
	if err != nil {
		return "", err
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrWrite, w.dir, err)
	}

	path := filepath.Join(w.dir, name)
	if err := afero.WriteFile(w.fs, path, []byte(Render(note, body)), 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return path, nil
}

// Render returns the file content for a note.
func Render(note types.Note, body string) string {
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	for _, tag := range note.TagList() {
		b.WriteString("#")
		b.WriteString(tag)
		b.WriteString(" ")
	}
	return b.String()
}
