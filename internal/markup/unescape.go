// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import "strings"

// The converter escapes every literal backslash and most underscores. Both
// must be literal again before the cloze and math stages see the text:
// MathJax commands and delimiters start with a backslash, and subscripts use
// underscores. Display math delimiters \[ and \] carry an extra escape on
// the bracket and must be matched before the plain backslash pair.
var unescaper = strings.NewReplacer(
	`\\\[`, `\[`,
	`\\\]`, `\]`,
	`\\`, `\`,
	`\_`, `_`,
)

// Unescape reverts the backslash and underscore escapes added by the
// structural converter.
func Unescape(md string) string {
	return unescaper.Replace(md)
}
