package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// renderMarkdown parses Markdown with Goldmark, rewrites link destinations in
// the AST and renders the result to an HTML fragment. Reference-style links
// are already resolved to Link nodes by the parser, so rewriting Link nodes
// covers them too.
func renderMarkdown(src []byte, rw *Rewriter) (string, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		dest, changed, err := rw.Rewrite(string(link.Destination))
		if err != nil {
			return gmast.WalkStop, err
		}
		if changed {
			link.Destination = []byte(dest)
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, root); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
