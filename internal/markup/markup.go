// Package markup converts djot and Markdown documents to HTML fragments,
// rewriting intra-site hyperlinks so they point at rendered output paths.
package markup

import (
	"fmt"
	"path"
	"strings"
)

// Format identifies a supported markup format.
type Format string

const (
	FormatDjot     Format = "djot"
	FormatMarkdown Format = "markdown"
)

// RenderedExt is the extension every recognized markup file is converted to.
const RenderedExt = ".html"

var formatByExt = map[string]Format{
	".dj":   FormatDjot,
	".djot": FormatDjot,
	".md":   FormatMarkdown,
}

// FormatForPath returns the markup format for a file path, if recognized.
func FormatForPath(p string) (Format, bool) {
	f, ok := formatByExt[strings.ToLower(path.Ext(p))]
	return f, ok
}

// IsMarkupPath reports whether the path carries a recognized markup extension.
func IsMarkupPath(p string) bool {
	_, ok := FormatForPath(p)
	return ok
}

// RenderedPath swaps a markup file's extension for the rendered extension.
// Non-markup paths are returned unchanged.
func RenderedPath(p string) string {
	if !IsMarkupPath(p) {
		return p
	}
	return strings.TrimSuffix(p, path.Ext(p)) + RenderedExt
}

// Render converts document text in the given format to an HTML fragment.
// Link destinations are streamed through rw; everything else passes through
// the parsers unchanged.
func Render(src []byte, format Format, rw *Rewriter) (string, error) {
	switch format {
	case FormatDjot:
		return renderDjot(src, rw)
	case FormatMarkdown:
		return renderMarkdown(src, rw)
	default:
		return "", fmt.Errorf("unsupported markup format: %q", format)
	}
}
