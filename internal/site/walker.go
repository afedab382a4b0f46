package site

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markup"
)

// indexNames are the accepted landing documents at the source root.
var indexNames = []string{"index.dj", "index.djot", "index.md"}

// Walker performs the first pass: a deterministic pre-order traversal that
// classifies entries, renders markup documents, copies static assets and
// appends one structural record per entry to the ledger. Rendered page HTML
// stays in memory; it still needs the second-pass TOC substitution.
type Walker struct {
	Root     string // absolute source root
	OutDir   string // absolute output root
	Renderer *Renderer
	Policy   *sgerrors.Policy

	// AssetsCopied counts static files copied verbatim during the walk.
	AssetsCopied int
}

// Walk traverses the source tree and returns the ledger. Per-entry taxonomy
// diagnostics go through the policy; I/O failures on read or write abort
// immediately.
func (w *Walker) Walk() (Ledger, error) {
	if !hasIndex(w.Root) {
		if err := w.Policy.Handle(sgerrors.MissingIndex(w.Root)); err != nil {
			return nil, err
		}
	}

	var ledger Ledger
	err := filepath.WalkDir(w.Root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if err := w.Policy.Handle(sgerrors.WalkEntry(p, walkErr)); err != nil {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		return w.processEntry(p, d, &ledger)
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func (w *Walker) processEntry(p string, d fs.DirEntry, ledger *Ledger) error {
	rel, err := filepath.Rel(w.Root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return w.Policy.Handle(sgerrors.PathNotUnderRoot(p))
	}
	if rel == "." {
		rel = ""
	}
	relSlash := filepath.ToSlash(rel)
	depth := entryDepth(relSlash)
	slog.Debug("walk entry", logfields.Path(relSlash), logfields.Depth(depth))

	if d.IsDir() {
		*ledger = append(*ledger, Entry{Kind: EntryDir, Depth: depth, RelPath: relSlash})
		return nil
	}
	if d.Name() == TemplateFileName {
		// Renderer configuration, not content.
		return nil
	}

	if markup.IsMarkupPath(p) {
		html, err := w.Renderer.RenderPage(p)
		if err != nil {
			return err
		}
		*ledger = append(*ledger, Entry{
			Kind:    EntryPage,
			Depth:   depth,
			RelPath: markup.RenderedPath(relSlash),
			HTML:    html,
		})
		return nil
	}

	if err := w.copyAsset(p, rel); err != nil {
		return err
	}
	w.AssetsCopied++
	return nil
}

// copyAsset copies a static file byte-for-byte to the mirrored output path,
// creating parent directories on demand.
func (w *Walker) copyAsset(src, rel string) error {
	dst := filepath.Join(w.OutDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy asset %s: %w", rel, err)
	}
	return out.Close()
}

// entryDepth is the number of path segments between the site root and the
// entry; the root itself is depth 0.
func entryDepth(relSlash string) int {
	if relSlash == "" {
		return 0
	}
	return strings.Count(relSlash, "/") + 1
}

func hasIndex(root string) bool {
	for _, name := range indexNames {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
