package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// TemplateFileName is the reserved per-directory template file. It is
	// configuration for the renderer, never site content.
	TemplateFileName = "template.html"

	// ContentMarker is the literal placeholder templates carry for the
	// rendered document body.
	ContentMarker = "<!-- {CONTENT} -->"

	// TitleMarker is an optional placeholder for the derived page title.
	TitleMarker = "<!-- {TITLE} -->"
)

var builtinTemplates = map[string]string{
	"plain": `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title><!-- {TITLE} --></title>
</head>
<body>
<nav>
<!-- {TABLE_OF_CONTENTS} -->
</nav>
<main>
<!-- {CONTENT} -->
</main>
</body>
</html>
`,
	"sidebar": `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title><!-- {TITLE} --></title>
<style>
body { display: flex; margin: 0; font-family: sans-serif; }
nav { min-width: 14rem; padding: 1rem; background: #f4f4f4; }
nav ul { list-style: none; padding-left: 1rem; }
main { padding: 1rem 2rem; max-width: 50rem; }
</style>
</head>
<body>
<nav>
<!-- {TABLE_OF_CONTENTS} -->
</nav>
<main>
<!-- {CONTENT} -->
</main>
</body>
</html>
`,
}

// BuiltinTemplate returns the named built-in template.
func BuiltinTemplate(name string) (string, error) {
	tmpl, ok := builtinTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown built-in template %q (available: %s)", name, strings.Join(BuiltinTemplateNames(), ", "))
	}
	return tmpl, nil
}

// BuiltinTemplateNames lists the built-in template names, sorted.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindTemplate returns the contents of the nearest template.html found by
// walking upward from dir toward root, both inclusive. It returns "" when no
// template exists at any level.
func FindTemplate(dir, root string) (string, error) {
	for {
		candidate := filepath.Join(dir, TemplateFileName)
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template %s: %w", candidate, err)
		}
		if dir == root || dir == filepath.Dir(dir) {
			return "", nil
		}
		dir = filepath.Dir(dir)
	}
}

// Wrap substitutes the rendered body into the template at the content marker.
// An empty template returns the bare fragment unchanged.
func Wrap(body, tmpl, title string) string {
	if tmpl == "" {
		return body
	}
	out := strings.ReplaceAll(tmpl, ContentMarker, body)
	return strings.ReplaceAll(out, TitleMarker, title)
}

var titleCaser = cases.Title(language.English)

// PageTitle derives a human-readable title from a source file name:
// "getting_started.dj" becomes "Getting Started".
func PageTitle(srcPath string) string {
	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return titleCaser.String(stem)
}
