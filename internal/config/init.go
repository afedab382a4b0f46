package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterConfig = `# sitegen configuration
source: ./docs
output:
  directory: ./output
  clean: false
site:
  # prefix: /docs/
  # template: plain
strict: false
serve:
  port: 8080
  watch: true
history:
  enabled: false
`

const starterTemplate = `<!DOCTYPE html>
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
`

// TemplatePath returns where Init places the sample template: next to the
// configuration file. Move it into the source tree to activate it.
func TemplatePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "template.html")
}

// Init writes a starter configuration file and a sample template.html beside
// it. It refuses to overwrite either existing file unless force is set.
func Init(path string, force bool) error {
	tmplPath := TemplatePath(path)
	if !force {
		for _, p := range []string{path, tmplPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write starter configuration: %w", err)
	}
	if err := os.WriteFile(tmplPath, []byte(starterTemplate), 0o644); err != nil {
		return fmt.Errorf("write sample template: %w", err)
	}
	return nil
}
