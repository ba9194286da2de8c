package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLines flattens a markdown snippet into plain bullet lines: one line
// per list item, paragraph or heading, in document order. Inline formatting
// is dropped — slides carry their own styling.
func MarkdownLines(src string) []string {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.List:
			for li := node.FirstChild(); li != nil; li = li.NextSibling() {
				if t := nodeText(li, source); t != "" {
					lines = append(lines, t)
				}
			}
		default:
			if t := nodeText(n, source); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return lines
}

// nodeText gets the text content of a goldmark AST node.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(bytes.TrimSpace(line.Value(src)))
			buf.WriteByte(' ')
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(nodeText(c, src))
			buf.WriteByte(' ')
		}
	}
	return strings.TrimSpace(buf.String())
}
