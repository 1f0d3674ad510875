// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup turns the rich-text fields of Anki notes into Markdown.
//
// The stages must run in this order:
//
//	Sanitize → Structure → Unescape → RemoveCloze → ConvertMath
//
// Sanitize prepares the HTML for the structural converter. Unescape exists
// only to undo escaping the converter applies, and RemoveCloze and
// ConvertMath match patterns that are only stable after that correction.
// Pipeline wires the stages together.
package markup

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Segment is one piece of a string partitioned by a pattern: either a span
// the pattern matched or the gap between two matches.
type Segment struct {
	Text  string
	Match bool
}

// Segments lazily partitions s into gap and match segments, in order.
// Concatenating every segment's Text yields s again. Empty gaps are not
// yielded.
func Segments(re *regexp.Regexp, s string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		pos := 0
		for pos <= len(s) {
			loc := re.FindStringIndex(s[pos:])
			if loc == nil {
				break
			}
			start, end := pos+loc[0], pos+loc[1]
			if start > pos && !yield(Segment{Text: s[pos:start]}) {
				return
			}
			if end == start {
				// Zero-width match: step over one rune so the scan advances.
				if start == len(s) {
					pos = start
					break
				}
				_, size := utf8.DecodeRuneInString(s[start:])
				if !yield(Segment{Text: s[start : start+size]}) {
					return
				}
				pos = start + size
				continue
			}
			if !yield(Segment{Text: s[start:end], Match: true}) {
				return
			}
			pos = end
		}
		if pos < len(s) {
			yield(Segment{Text: s[pos:]})
		}
	}
}

// Rewrite replaces every span of s matched by re with rewrite(span), leaving
// the gaps untouched.
func Rewrite(re *regexp.Regexp, s string, rewrite func(match string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	for seg := range Segments(re, s) {
		if seg.Match {
			b.WriteString(rewrite(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
