// Package markdown is the Markdown collaborator (C8): it parses a Markdown
// document into a lightweight Document value the standard library's
// markdown* built-ins can query (title, rendered HTML), wrapping
// github.com/gomarkdown/markdown for the actual block/inline parsing. It
// never imports internal/script; the built-ins in library_markdown.go do
// the Value<->Document translation at the boundary.
package markdown

import (
	"bytes"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Document is the parsed form a markdown* built-in operates on.
type Document struct {
	root  ast.Node
	title string
}

func extensions() parser.Extensions {
	return parser.CommonExtensions | parser.AutoHeadingIDs
}

// Parse parses src and extracts the document's title: the text of its
// first level-1 heading, or "" if it has none.
func Parse(src []byte) *Document {
	p := parser.NewWithExtensions(extensions())
	root := p.Parse(src)

	doc := &Document{root: root}
	ast.WalkFunc(root, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering || doc.title != "" {
			return ast.GoToNext
		}
		if h, ok := node.(*ast.Heading); ok && h.Level == 1 {
			doc.title = headingText(h)
		}
		return ast.GoToNext
	})
	return doc
}

// headingText concatenates every Text leaf under a heading node.
func headingText(h *ast.Heading) string {
	var b bytes.Buffer
	ast.WalkFunc(h, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if t, ok := node.(*ast.Text); ok {
			b.Write(t.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}

// Title returns the document's first level-1 heading text, or "".
func (d *Document) Title() string { return d.title }

// RenderHTML parses src with the same extensions as Parse and renders it to
// an HTML fragment.
func RenderHTML(src []byte) string {
	p := parser.NewWithExtensions(extensions())
	return string(markdown.ToHTML(src, p, nil))
}
