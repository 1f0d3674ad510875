//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every deck in decks/ into export/.
func Convert() error {
	mg.Deps(Build)

	decks, err := filepath.Glob(filepath.Join(decksDir, "*.apkg"))
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Printf("[convert] No .apkg files in %s/.\n", decksDir)
		return nil
	}

	args := append([]string{"--export-dir", exportDir, "--report", filepath.Join(exportDir, "report.yaml")}, decks...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
