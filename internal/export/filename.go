// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	noteExt = ".md"

	// maxNameBytes is the common file name limit on Linux, macOS and
	// Windows, extension included.
	maxNameBytes = 255
)

// reservedNames are device names Windows refuses as file names, with or
// without an extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// FileName derives a portable note file name from a title: colons become
// " -", characters no common filesystem accepts are dropped, and ".md" is
// appended. A title with nothing usable left returns ErrWrite.
func FileName(title string) (string, error) {
	name := strings.TrimSpace(strings.ReplaceAll(title, ":", " -"))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimRight(strings.TrimSpace(name), ". ")

	if name == "" {
		return "", fmt.Errorf("%w: title %q yields an empty file name", ErrWrite, title)
	}

	stem, _, _ := strings.Cut(name, ".")
	if reservedNames[strings.ToUpper(stem)] {
		name = stem + "_" + name[len(stem):]
	}

	return truncate(name, maxNameBytes-len(noteExt)) + noteExt, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return strings.TrimRight(s, ". ")
}
