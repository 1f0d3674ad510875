// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var inlineMath = regexp.MustCompile(`(?s)\\\(.*?\\\)`)

// ConvertMath rewrites MathJax inline math \( ... \) into Obsidian's $...$
// form, trimming whitespace just inside the delimiters. The converter writes
// < and > back out as entities; inside a span they are decoded again since
// MathJax in Obsidian reads the raw text.
func ConvertMath(md string) string {
	return Rewrite(inlineMath, md, func(span string) string {
		inner := span[2 : len(span)-2]
		return "$" + html.UnescapeString(strings.TrimSpace(inner)) + "$"
	})
}
