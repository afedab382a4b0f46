package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

func runPipeline(t *testing.T, opts Options) (*Result, error) {
	t.Helper()
	g, err := New(opts, nil)
	require.NoError(t, err)
	return g.Run(context.Background())
}

// readTree reads every regular file under dir, keyed by slash-relative path.
func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func scenarioATree(t *testing.T) string {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.dj":               "# Hey everyone!\n\nThis is an example djot file!\n\n[HIHIDHI](nested2/hey.dj)\n",
		"nested2/hey.dj":         "File 2\n\n### Hey\n\n[link](../index.dj)\n",
		"nested3/third_file.dj":  "File 3\n\n[link](../nested2/hey.dj)\n",
	})
	return root
}

func TestGenerateSiteWithLinks(t *testing.T) {
	root := scenarioATree(t)
	out := filepath.Join(t.TempDir(), "output")

	res, err := runPipeline(t, Options{Source: root, Output: out})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 0, res.Warnings)

	tree := readTree(t, out)
	require.Contains(t, tree, "index.html")
	require.Contains(t, tree, "nested2/hey.html")
	require.Contains(t, tree, "nested3/third_file.html")
	for name := range tree {
		assert.NotContains(t, name, ".dj", "sources must not be copied: %s", name)
	}

	// Cross-document links point at the rendered paths.
	assert.Contains(t, tree["index.html"], "nested2/hey.html")
	assert.Contains(t, tree["nested2/hey.html"], "../index.html")
	assert.Contains(t, tree["nested3/third_file.html"], "../nested2/hey.html")
}

func TestGenerateMissingIndex(t *testing.T) {
	makeRoot := func() string {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"nested/example.dj": "# Hey\n",
			"example2.dj":       "# Another\n",
		})
		return root
	}

	// Strict: the run fails with the missing-index kind.
	_, err := runPipeline(t, Options{Source: makeRoot(), Output: filepath.Join(t.TempDir(), "out"), Strict: true})
	require.Error(t, err)
	assert.True(t, sgerrors.IsKind(err, sgerrors.KindMissingIndex))

	// Lenient: everything else still renders.
	out := filepath.Join(t.TempDir(), "out")
	res, err := runPipeline(t, Options{Source: makeRoot(), Output: out})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 1, res.Warnings)
	tree := readTree(t, out)
	assert.Contains(t, tree, "nested/example.html")
	assert.Contains(t, tree, "example2.html")
}

func TestGenerateDanglingLink(t *testing.T) {
	makeRoot := func() string {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"index.dj": "# Home\n\n[gone](missing.dj)\n",
		})
		return root
	}

	// Lenient: rewritten optimistically, reported as a warning.
	out := filepath.Join(t.TempDir(), "out")
	res, err := runPipeline(t, Options{Source: makeRoot(), Output: out})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Warnings)
	tree := readTree(t, out)
	assert.Contains(t, tree["index.html"], "missing.html")

	// Strict: the run aborts.
	_, err = runPipeline(t, Options{Source: makeRoot(), Output: filepath.Join(t.TempDir(), "out"), Strict: true})
	require.Error(t, err)
	assert.True(t, sgerrors.IsKind(err, sgerrors.KindDanglingLink))
}

func TestGenerateIdempotent(t *testing.T) {
	root := scenarioATree(t)
	writeTree(t, root, map[string]string{
		"template.html": "<nav>" + TOCMarker + "</nav><main>" + ContentMarker + "</main>",
		"logo.svg":      "<svg/>",
	})
	out := filepath.Join(t.TempDir(), "output")

	_, err := runPipeline(t, Options{Source: root, Output: out, Clean: true})
	require.NoError(t, err)
	first := readTree(t, out)

	_, err = runPipeline(t, Options{Source: root, Output: out, Clean: true})
	require.NoError(t, err)
	second := readTree(t, out)

	assert.Equal(t, first, second)
}

func TestGenerateTemplateAndTOCSubstitution(t *testing.T) {
	root := scenarioATree(t)
	writeTree(t, root, map[string]string{
		"template.html": "<nav>" + TOCMarker + "</nav><main>" + ContentMarker + "</main>",
	})
	out := filepath.Join(t.TempDir(), "output")

	_, err := runPipeline(t, Options{Source: root, Output: out})
	require.NoError(t, err)

	tree := readTree(t, out)
	hey := tree["nested2/hey.html"]
	assert.NotContains(t, hey, TOCMarker, "placeholder must be resolved")
	// Scenario D orderings: own folder heading, then self as non-link, then
	// the sibling folder heading with its page as a ../-prefixed link.
	assert.Contains(t, hey, `<li><b><u>nested2:</u></b></li><ul><li><b>hey</b></li></ul>`)
	assert.Contains(t, hey, `<li><b><u>nested3:</u></b></li><ul><li><a href="../nested3/third_file.html">third_file</a></li></ul>`)
	assert.Contains(t, hey, "<main>")
}

func TestGenerateBuiltinTemplateOverridesDiscovered(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.dj":      "# Home\n",
		"template.html": "<article id=\"custom\">" + ContentMarker + "</article>",
	})
	out := filepath.Join(t.TempDir(), "output")

	_, err := runPipeline(t, Options{Source: root, Output: out, TemplateName: "plain"})
	require.NoError(t, err)

	tree := readTree(t, out)
	assert.NotContains(t, tree["index.html"], "custom")
	assert.Contains(t, tree["index.html"], "<title>Index</title>")
}

func TestGenerateUnknownBuiltinTemplate(t *testing.T) {
	_, err := New(Options{Source: ".", Output: "x", TemplateName: "bogus"}, nil)
	require.Error(t, err)
}

func TestGenerateCleanRemovesStaleOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.dj": "# Home\n"})
	out := filepath.Join(t.TempDir(), "output")
	writeTree(t, out, map[string]string{"stale.html": "old"})

	_, err := runPipeline(t, Options{Source: root, Output: out, Clean: true})
	require.NoError(t, err)

	tree := readTree(t, out)
	assert.NotContains(t, tree, "stale.html")
	assert.Contains(t, tree, "index.html")
}

func TestGenerateSingleFileMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"page.md": "# Solo\n\nBody.\n"})
	out := filepath.Join(t.TempDir(), "output")

	res, err := runPipeline(t, Options{File: filepath.Join(root, "page.md"), Output: out})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)

	tree := readTree(t, out)
	require.Contains(t, tree, "page.html")
	assert.Contains(t, tree["page.html"], "Solo")
}

func TestGenerateSourceMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "index.dj")
	require.NoError(t, os.WriteFile(file, []byte("# Hi\n"), 0o644))

	_, err := runPipeline(t, Options{Source: file, Output: filepath.Join(t.TempDir(), "out")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}
