package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Authors write their own blog content, so raw HTML passes through
// unsanitized, same as the public renderer always has.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML renders markdown source to HTML suitable for direct template
// injection.
func ToHTML(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", xerrors.New(err)
	}
	return template.HTML(buf.String()), nil
}

// PlainText strips all markdown formatting, returning the bare text with
// runs of whitespace collapsed to single spaces. Used for meta
// descriptions.
func PlainText(source string) string {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.AutoLink:
			b.Write(n.URL(src))
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt returns the plain text of source truncated to at most n runes.
func Excerpt(source string, n int) string {
	plain := PlainText(source)
	runes := []rune(plain)
	if len(runes) <= n {
		return plain
	}
	return string(runes[:n])
}
