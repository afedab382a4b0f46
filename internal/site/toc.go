package site

import (
	"path"
	"strings"
)

// TOCMarker is the literal placeholder pages carry until the second pass
// substitutes the assembled table of contents.
const TOCMarker = "<!-- {TABLE_OF_CONTENTS} -->"

// pendingFolder is a directory whose navigation list has not been opened yet.
// The list opens lazily, on the first page encountered inside the folder's
// subtree; a folder whose subtree yields no page before the walk leaves it is
// dropped and never appears in the output.
type pendingFolder struct {
	name  string
	depth int
}

// AssembleTOC reconstructs, for one rendered page, a nested list reflecting
// the directory hierarchy recorded in the ledger.
//
// The single linear scan tracks two things: the count of currently open
// lists (list level n holds entries at depth n) and a stack of pending
// folders. Exactly one item, the target page itself, is emitted as a bold
// non-link; every other page becomes a link prefixed with one "../" per
// level of the target page's own depth beyond the first, followed by the
// site link prefix. Directories appear only as non-clickable headings.
func AssembleTOC(ledger Ledger, targetDepth int, targetRelPath, prefix string) string {
	var b strings.Builder
	b.WriteString("<ul>")

	openLists := 1 // the root list
	var pending []pendingFolder

	for _, e := range ledger {
		// Pending folders at or below this entry's level can no longer
		// receive a page; their list was never opened, so dropping them is
		// the whole close.
		for n := len(pending); n > 0 && pending[n-1].depth > e.Depth; n = len(pending) {
			pending = pending[:n-1]
		}
		for openLists > 1 && openLists > e.Depth {
			b.WriteString("</ul>")
			openLists--
		}
		if n := len(pending); e.Depth > 0 && n > 0 && pending[n-1].depth == e.Depth {
			pending = pending[:n-1]
		}

		switch e.Kind {
		case EntryDir:
			if e.Depth > 0 {
				pending = append(pending, pendingFolder{name: path.Base(e.RelPath), depth: e.Depth})
			}

		case EntryPage:
			// First page under the pending folders: emit their headings,
			// outermost first, each introducing a nested list.
			for _, f := range pending {
				b.WriteString("<li><b><u>")
				b.WriteString(f.name)
				b.WriteString(":</u></b></li><ul>")
				openLists++
			}
			pending = pending[:0]

			stem := strings.TrimSuffix(path.Base(e.RelPath), path.Ext(e.RelPath))
			if e.RelPath == targetRelPath {
				b.WriteString("<li><b>")
				b.WriteString(stem)
				b.WriteString("</b></li>")
			} else {
				b.WriteString(`<li><a href="`)
				if targetDepth > 1 {
					b.WriteString(strings.Repeat("../", targetDepth-1))
				}
				b.WriteString(prefix)
				b.WriteString(e.RelPath)
				b.WriteString(`">`)
				b.WriteString(stem)
				b.WriteString("</a></li>")
			}
		}
	}

	for openLists > 0 {
		b.WriteString("</ul>")
		openLists--
	}
	return b.String()
}
