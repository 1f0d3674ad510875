// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck reads note records out of Anki deck archives (.apkg).
//
// An archive is a zip file holding a SQLite collection plus media. Open
// unpacks it into a scratch directory and opens the collection read-only;
// removing the scratch directory afterwards is the caller's job.
package deck

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anki-obsidian/pkg/types"
)

// Collection file names, most preferred first. Recent Anki versions write a
// zstd-compressed anki21b next to a placeholder anki2 asking users to
// upgrade.
const (
	collectionZstd   = "collection.anki21b"
	collection21     = "collection.anki21"
	collectionLegacy = "collection.anki2"

	// decompressed copy of collectionZstd
	collectionZstdDB = "collection.anki21b.sqlite"
)

var requiredColumns = []string{"tags", "flds", "sfld"}

// Deck is an opened deck archive.
type Deck struct {
	db         *sql.DB
	archive    string
	collection string
}

// Open extracts the archive at archivePath into scratchDir and opens its
// collection database. Failures wrap ErrArchive or ErrFormat.
func Open(ctx context.Context, archivePath, scratchDir string) (*Deck, error) {
	if err := extract(archivePath, scratchDir); err != nil {
		return nil, err
	}

	dbPath, err := locateCollection(scratchDir)
	if err != nil {
		return nil, err
	}

	dsn, err := readOnlyDSN(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrFormat, filepath.Base(dbPath), err)
	}

	d := &Deck{db: db, archive: archivePath, collection: dbPath}
	if err := d.checkSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Archive returns the path the deck was opened from.
func (d *Deck) Archive() string { return d.archive }

// Collection returns the path of the collection database in use.
func (d *Deck) Collection() string { return d.collection }

// Notes returns every note in the collection, ordered by id.
func (d *Deck) Notes(ctx context.Context) ([]types.Note, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, tags, flds, sfld FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []types.Note
	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.Tags, &n.Fields, &n.Title); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	return notes, nil
}

// Close releases the database connection. It does not touch the scratch
// directory.
func (d *Deck) Close() error {
	return d.db.Close()
}

func (d *Deck) checkSchema(ctx context.Context) error {
	rows, err := d.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('notes')`)
	if err != nil {
		return fmt.Errorf("%w: reading notes schema: %w", ErrFormat, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("%w: reading notes schema: %w", ErrFormat, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: reading notes schema: %w", ErrFormat, err)
	}

	if len(cols) == 0 {
		return fmt.Errorf("%w: no notes table", ErrFormat)
	}
	for _, c := range requiredColumns {
		if !slices.Contains(cols, c) {
			return fmt.Errorf("%w: notes table has no %s column", ErrFormat, c)
		}
	}
	return nil
}

// locateCollection picks the collection database inside dir, decompressing
// it first when only the zstd variant is usable.
func locateCollection(dir string) (string, error) {
	if p := filepath.Join(dir, collectionZstd); fileExists(p) {
		out := filepath.Join(dir, collectionZstdDB)
		if err := decompress(p, out); err != nil {
			return "", fmt.Errorf("%w: decompressing %s: %w", ErrFormat, collectionZstd, err)
		}
		return out, nil
	}
	for _, name := range []string{collection21, collectionLegacy} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no collection database in archive", ErrFormat)
}

func decompress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return err
	}
	defer dec.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, dec); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// readOnlyDSN returns a SQLite URI opening path read-only. The path is
// percent-encoded so '?' and '#' in directory names survive.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
