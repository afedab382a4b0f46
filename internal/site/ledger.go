// Package site implements the two-pass site assembly pipeline: a tree walk
// that renders markup documents and records structural metadata, and a second
// pass that builds each page's table of contents from those records.
package site

// EntryKind tags a ledger entry.
type EntryKind int

const (
	// EntryDir is a directory encountered during the walk.
	EntryDir EntryKind = iota
	// EntryPage is a document that was converted to HTML.
	EntryPage
)

// Entry is one structural record produced by the first pass.
//
// Depth is the number of path segments between the site root and the entry;
// the root directory itself is recorded at depth 0. RelPath is slash-separated
// and relative to the site root; for pages it always carries the rendered
// extension. HTML holds a page's rendered body with the table-of-contents
// placeholder still unresolved.
type Entry struct {
	Kind    EntryKind
	Depth   int
	RelPath string
	HTML    string
}

// Ledger is the ordered sequence of entries in pre-order tree-walk order:
// append-only during the walk, read-only during TOC assembly.
type Ledger []Entry
