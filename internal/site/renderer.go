package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markup"
)

// Renderer converts one markup document into a full page: markup to HTML
// fragment with links rewritten, then wrapped in the applicable template.
// The table-of-contents placeholder is left unresolved for the second pass.
type Renderer struct {
	// Root is the absolute source root; template discovery stops there.
	Root string
	// Prefix is the site link prefix applied to rewritten links.
	Prefix string
	// Template forces this template content for every page, overriding any
	// discovered template.html. Empty means discover per directory.
	Template string
	// Policy routes dangling-link diagnostics.
	Policy *sgerrors.Policy
}

// RenderPage renders the document at srcPath. Read failures are fatal; only
// taxonomy diagnostics go through the policy.
func (r *Renderer) RenderPage(srcPath string) (string, error) {
	format, ok := markup.FormatForPath(srcPath)
	if !ok {
		return "", fmt.Errorf("not a markup document: %s", srcPath)
	}
	slog.Debug("rendering document", logfields.Path(srcPath), logfields.Format(string(format)))

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	rw := &markup.Rewriter{
		SourceDir: filepath.Dir(srcPath),
		Prefix:    r.Prefix,
		Policy:    r.Policy,
	}
	body, err := markup.Render(data, format, rw)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", srcPath, err)
	}

	tmpl := r.Template
	if tmpl == "" {
		tmpl, err = FindTemplate(filepath.Dir(srcPath), r.Root)
		if err != nil {
			return "", err
		}
	}
	return Wrap(body, tmpl, PageTitle(srcPath)), nil
}
