// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// extract unpacks every entry of the zip archive at archivePath into dir.
// Entries whose names would resolve outside dir are rejected.
func extract(archivePath, dir string) error {
	info, err := os.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrArchive, archivePath)
	}

	// With non-local entry names OpenReader returns both a reader and
	// zip.ErrInsecurePath.
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		if zr != nil {
			zr.Close()
		}
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}

	for _, f := range zr.File {
		if !filepath.IsLocal(f.Name) {
			return fmt.Errorf("%w: entry %q escapes the extraction directory", ErrArchive, f.Name)
		}
		target := filepath.Join(dir, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", f.Name, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return out.Close()
}
