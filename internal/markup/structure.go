// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"context"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// Structure converts sanitized HTML into Markdown: headings in ATX style,
// lists, emphasis, tables and strikethrough. Hyperlinks are reduced to
// their text.
type Structure struct {
	conv *converter.Converter
}

// NewStructure builds a Structure. The result is safe for concurrent use.
func NewStructure() *Structure {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	conv.Register.RendererFor("a", converter.TagTypeInline, renderLinkText, converter.PriorityEarly)
	return &Structure{conv: conv}
}

// Convert returns the Markdown rendering of s.
func (st *Structure) Convert(ctx context.Context, s string) (string, error) {
	md, err := st.conv.ConvertString(s, converter.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("converting html: %w", err)
	}
	return md, nil
}

func renderLinkText(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}
