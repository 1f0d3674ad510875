// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import "errors"

var (
	// ErrArchive reports a deck path that is missing, is a directory, or is
	// not a readable zip archive.
	ErrArchive = errors.New("invalid deck archive")

	// ErrFormat reports an archive without a usable collection database.
	ErrFormat = errors.New("unsupported deck format")
)
