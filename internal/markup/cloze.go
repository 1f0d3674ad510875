// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
)

// clozePattern matches one cloze deletion, shortest first, so adjacent
// deletions stay separate. Answers may span lines.
var clozePattern = regexp.MustCompile(`(?s)\{\{c\d+::.*?\}\}`)

var clozePrefix = regexp.MustCompile(`^\{\{c\d+::`)

// RemoveCloze replaces every {{cN::answer}} or {{cN::answer::hint}} marker
// with its answer. Text outside markers is unchanged, and an unterminated
// marker is left as it is.
func RemoveCloze(md string) string {
	return Rewrite(clozePattern, md, clozeAnswer)
}

func clozeAnswer(marker string) string {
	body := clozePrefix.ReplaceAllString(marker, "")
	body = strings.TrimSuffix(body, "}}")
	answer, _, _ := strings.Cut(body, "::")
	return answer
}
