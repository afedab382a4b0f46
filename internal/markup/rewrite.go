package markup

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

// Rewriter rewrites one document's intra-site link destinations. Both parser
// adapters route destinations through the same Rewrite method so the two
// formats cannot drift in behavior.
type Rewriter struct {
	// SourceDir is the directory containing the document being rendered.
	// Relative destinations resolve against it.
	SourceDir string
	// Prefix is the site link prefix prepended to rewritten destinations.
	Prefix string
	// Policy decides whether a dangling target warns or aborts.
	Policy *sgerrors.Policy
}

// Rewrite returns the destination to emit and whether it was changed.
// A destination is rewritten when, resolved against SourceDir, it names a
// file with a recognized markup extension: the extension is swapped for the
// rendered extension and the site prefix is prepended. External URLs,
// anchors and non-markup paths pass through untouched.
//
// The rewrite happens optimistically even when the resolved file does not
// exist, tolerating forward references; a dangling-link diagnostic is raised
// for the policy to log or escalate.
func (r *Rewriter) Rewrite(dest string) (string, bool, error) {
	if dest == "" || strings.HasPrefix(dest, "#") || isExternal(dest) {
		return dest, false, nil
	}
	if !IsMarkupPath(dest) {
		return dest, false, nil
	}

	resolved := filepath.Join(r.SourceDir, filepath.FromSlash(dest))
	if _, err := os.Stat(resolved); err != nil {
		if herr := r.Policy.Handle(sgerrors.DanglingLink(resolved)); herr != nil {
			return "", false, herr
		}
	}

	rewritten := r.Prefix + strings.TrimSuffix(dest, path.Ext(dest)) + RenderedExt
	return rewritten, true, nil
}

func isExternal(dest string) bool {
	if strings.Contains(dest, "://") {
		return true
	}
	for _, scheme := range []string{"mailto:", "tel:", "data:"} {
		if strings.HasPrefix(dest, scheme) {
			return true
		}
	}
	return false
}
