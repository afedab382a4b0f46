package markup

import (
	"git.sr.ht/~ser/godjot/v2/djot_html"
	"git.sr.ht/~ser/godjot/v2/djot_parser"
)

const hrefAttr = "href"

// renderDjot parses djot with godjot, rewrites link hrefs in the AST and
// converts the result to an HTML fragment.
func renderDjot(src []byte, rw *Rewriter) (string, error) {
	ast := djot_parser.BuildDjotAst(src)
	for i := range ast {
		if err := rewriteDjotLinks(&ast[i], rw); err != nil {
			return "", err
		}
	}
	return djot_html.New().ConvertDjot(&djot_html.HtmlWriter{}, ast...).String(), nil
}

func rewriteDjotLinks(node *djot_parser.TreeNode[djot_parser.DjotNode], rw *Rewriter) error {
	if node.Type == djot_parser.LinkNode {
		if href, ok := node.Attributes.TryGet(hrefAttr); ok {
			dest, changed, err := rw.Rewrite(href)
			if err != nil {
				return err
			}
			if changed {
				node.Attributes.Set(hrefAttr, dest)
			}
		}
	}
	for i := range node.Children {
		if err := rewriteDjotLinks(&node.Children[i], rw); err != nil {
			return err
		}
	}
	return nil
}
