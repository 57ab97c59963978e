// Package markdown wraps goldmark parsing for the rubric and benchmark
// readers, which both work from the document AST rather than raw lines.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parse parses src as GitHub-flavored markdown (tables enabled).
func Parse(src []byte) ast.Node {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Parser().Parse(text.NewReader(src))
}

// Text returns the concatenated inline text beneath n.
func Text(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// LineStart returns the byte offset of the start of the source line holding
// block node n, or -1 when n carries no source lines.
func LineStart(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1
	}
	start := lines.At(0).Start
	return bytes.LastIndexByte(src[:start], '\n') + 1
}
