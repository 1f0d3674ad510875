// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"context"
	"fmt"
)

// Pipeline runs every stage over one note's raw field content.
type Pipeline struct {
	structure *Structure
}

// NewPipeline returns a ready Pipeline. One Pipeline serves any number of
// notes.
func NewPipeline() *Pipeline {
	return &Pipeline{structure: NewStructure()}
}

// Transform converts raw flds content into the Markdown body of a note.
func (p *Pipeline) Transform(ctx context.Context, raw string) (string, error) {
	md, err := p.structure.Convert(ctx, Sanitize(raw))
	if err != nil {
		return "", fmt.Errorf("structure: %w", err)
	}
	md = Unescape(md)
	md = RemoveCloze(md)
	return ConvertMath(md), nil
}
