// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decktest builds small .apkg archives for tests.
package decktest

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anki-obsidian/pkg/types"
)

// Layout selects which collection file an archive carries.
type Layout int

const (
	Anki21 Layout = iota
	Anki21b
	Anki2
)

// notesSchema mirrors the columns Anki defines on its notes table.
const notesSchema = `CREATE TABLE notes (
	id    integer primary key,
	guid  text not null,
	mid   integer not null,
	mod   integer not null,
	usn   integer not null,
	tags  text not null,
	flds  text not null,
	sfld  integer not null,
	csum  integer not null,
	flags integer not null,
	data  text not null
)`

// Collection creates a SQLite collection at path holding notes.
func Collection(t *testing.T, path string, notes ...types.Note) {
	t.Helper()
	CollectionWithSchema(t, path, notesSchema, notes...)
}

// CollectionWithSchema is Collection with a custom notes table definition.
// Notes are only inserted when the schema has the standard columns.
func CollectionWithSchema(t *testing.T, path, schema string, notes ...types.Note) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening collection: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating notes table: %v", err)
	}
	for i, n := range notes {
		id := n.ID
		if id == 0 {
			id = int64(i + 1)
		}
		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, 1, 0, -1, ?, ?, ?, 0, 0, '')`,
			id, "guid"+n.Title, n.Tags, n.Fields, n.Title)
		if err != nil {
			t.Fatalf("inserting note: %v", err)
		}
	}
}

// Archive writes a deck archive named name into dir and returns its path.
func Archive(t *testing.T, dir, name string, layout Layout, notes ...types.Note) string {
	t.Helper()
	work := t.TempDir()
	db := filepath.Join(work, "collection.db")
	Collection(t, db, notes...)

	raw, err := os.ReadFile(db)
	if err != nil {
		t.Fatalf("reading collection: %v", err)
	}

	entries := map[string][]byte{"media": []byte("{}")}
	switch layout {
	case Anki21:
		entries["collection.anki21"] = raw
	case Anki2:
		entries["collection.anki2"] = raw
	case Anki21b:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("creating zstd encoder: %v", err)
		}
		entries["collection.anki21b"] = enc.EncodeAll(raw, nil)
		enc.Close()
		entries["collection.anki2"] = []byte("placeholder, not a database")
	}

	return Zip(t, dir, name, entries)
}

// Zip writes an archive with the given entries into dir and returns its
// path.
func Zip(t *testing.T, dir, name string, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for entry, data := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("adding %s: %v", entry, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return path
}
