// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sort field prefix", "Title\x1fBody text", "Body text"},
		{"remaining separators", "a\x1fb\x1fc", "bc"},
		{"no separator", "no separator", "no separator"},
		{"break before bold close", "<b>bold<br></b>", "<b>bold</b><br>"},
		{"break after bold open", "<b><br>bold</b>", "<br><b>bold</b>"},
		{"break run", "<b>x<br><br /></b>", "<b>x</b><br><br />"},
		{"nested bold", "<b><b>x<br></b></b>", "<b><b>x</b></b><br>"},
		{"uppercase tags", "<B>x<BR></B>", "<B>x</b><BR>"},
		{"nbsp", "a&nbsp;b", "a b"},
		{"div", "<div>x</div>", "<br><div>x</div><br>"},
		{"div with attributes", `<div class="c">x</div>`, `<br><div class="c">x</div><br>`},
		{"existing breaks kept", "<br><div>x</div><br>", "<br><div>x</div><br>"},
		{"definition list", "<dl><dt>t</dt><dd>d</dd></dl>", "<dl><dt>t</dt><dd>d</dd></dl><br>"},
		{"div inside bold", "<b><div>x</div></b>", "<br><b><div>x</div></b><br>"},
		{"line endings", "a\r\nb\rc", "a\nb\nc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Title\x1f<b>Q<br></b><div>one</div><div>two</div>",
		"<b><br><br>x</b>&nbsp;<dl><dd>d</dd></dl>",
		"<b><div>nested</div></b><b><b><br></b></b>",
		"Front\x1fline one\r\nline two",
		"<div class=\"a\"><div>inner</div></div>",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}
