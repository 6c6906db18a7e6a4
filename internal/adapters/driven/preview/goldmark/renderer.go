// Package goldmark renders markdown to preview HTML using the goldmark
// library with GitHub Flavored Markdown extensions.
package goldmark

import (
	"fmt"
	"strings"

	gm "github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.PreviewRenderer = (*Renderer)(nil)

// Renderer converts markdown to HTML for the live preview pane.
type Renderer struct {
	md gm.Markdown
}

// NewRenderer creates a renderer with tables, strikethrough and autolinks
// enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: gm.New(gm.WithExtensions(extension.GFM)),
	}
}

// Render converts markdown source to HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf strings.Builder
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
