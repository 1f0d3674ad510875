// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
)

// FieldSeparator joins the fields of a note inside the flds column.
const FieldSeparator = "\x1f"

var (
	// A block boundary together with the break that may already sit next to
	// it. Bold tags are allowed between the two because the bold pass moves
	// breaks outside of them.
	divOpen    = regexp.MustCompile(`(?i)(?:<br\s*/?>(?:<b>)*)?<div(?:\s[^>]*)?>`)
	divClose   = regexp.MustCompile(`(?i)</div>(?:(?:</b>)*<br\s*/?>)?`)
	defListEnd = regexp.MustCompile(`(?i)</dd>\s*</dl>(?:(?:</b>)*<br\s*/?>)?`)

	// A run of line breaks directly before a closing bold tag, or directly
	// after an opening one. Either makes the converter emit "**" on a line of
	// its own.
	breaksBeforeBoldClose = regexp.MustCompile(`(?i)((?:<br\s*/?>)+)</b>`)
	breaksAfterBoldOpen   = regexp.MustCompile(`(?i)<b>((?:<br\s*/?>)+)`)

	newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Sanitize removes Anki-specific artifacts from a raw flds value so the
// structural converter produces clean Markdown. It is pure, and applying it
// to its own output changes nothing.
//
// In order, it:
//  1. drops the leading field (a copy of the sort field) up to and including
//     the first field separator, then any remaining separators,
//  2. replaces &nbsp; with a space,
//  3. puts a line break before every div and after every div and definition
//     list, standing in for the vertical spacing CSS gave them in Anki,
//  4. moves line breaks out of bold tags,
//  5. normalizes CR and CRLF to LF.
func Sanitize(raw string) string {
	s := raw
	if _, rest, found := strings.Cut(s, FieldSeparator); found {
		s = rest
	}
	s = strings.ReplaceAll(s, FieldSeparator, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = divOpen.ReplaceAllStringFunc(s, func(m string) string {
		if hasBreakPrefix(m) {
			return m
		}
		return "<br>" + m
	})
	s = divClose.ReplaceAllStringFunc(s, breakAfter)
	s = defListEnd.ReplaceAllStringFunc(s, breakAfter)
	// Runs after the div step so breaks inserted inside bold move out too.
	s = moveBoldBreaks(s)
	return newlines.Replace(s)
}

func hasBreakPrefix(m string) bool {
	return len(m) >= 3 && strings.EqualFold(m[:3], "<br")
}

// breakAfter appends a break to a closing block tag unless the match already
// ends with one.
func breakAfter(m string) string {
	if strings.Contains(strings.ToLower(m), "<br") {
		return m
	}
	return m + "<br>"
}

// moveBoldBreaks swaps breaks past bold boundaries until nothing moves.
// A break never moves back across a tag it has passed, so the loop ends.
func moveBoldBreaks(s string) string {
	for {
		next := breaksBeforeBoldClose.ReplaceAllString(s, "</b>$1")
		next = breaksAfterBoldOpen.ReplaceAllString(next, "$1<b>")
		if next == s {
			return s
		}
		s = next
	}
}
