// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Note is a single row of a deck's notes table.
type Note struct {
	// ID is the note's row id in the collection database.
	ID int64 `json:"id" yaml:"id"`

	// Tags is the raw space-delimited tag string. Order is preserved and
	// duplicates are kept.
	Tags string `json:"tags" yaml:"tags"`

	// Fields is the raw flds column: every field of the note joined by the
	// 0x1F separator, with HTML, cloze markers, and MathJax left intact.
	Fields string `json:"fields" yaml:"fields"`

	// Title is the sort field (sfld). It may be empty, contain characters
	// that are illegal in filenames, and repeat across notes.
	Title string `json:"title" yaml:"title"`
}

// TagList splits Tags on whitespace.
func (n Note) TagList() []string {
	return strings.Fields(n.Tags)
}

// Status is the outcome of converting a deck or a single note.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)
