package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Source)
	assert.Equal(t, "./output", cfg.Output.Directory)
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.False(t, cfg.Strict)
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source: ./docs
output:
  directory: ./public
  clean: true
site:
  prefix: /handbook/
strict: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./docs", cfg.Source)
	assert.Equal(t, "./public", cfg.Output.Directory)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, "/handbook/", cfg.Site.Prefix)
	assert.True(t, cfg.Strict)
	// Defaults still fill the gaps.
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, ".sitegen/history.db", cfg.History.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEGEN_TEST_PREFIX", "/from-env/")
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  prefix: ${SITEGEN_TEST_PREFIX}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from-env/", cfg.Site.Prefix)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./docs", cfg.Source)
	assert.True(t, cfg.Serve.Watch)
}

func TestInitWritesSampleTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")

	require.NoError(t, Init(path, false))
	data, err := os.ReadFile(TemplatePath(path))
	require.NoError(t, err)
	tmpl := string(data)
	assert.Contains(t, tmpl, "<!-- {CONTENT} -->")
	assert.Contains(t, tmpl, "<!-- {TABLE_OF_CONTENTS} -->")
	assert.Contains(t, tmpl, "<!-- {TITLE} -->")
}

func TestInitRefusesOverwritingTemplateAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitegen.yaml")
	require.NoError(t, os.WriteFile(TemplatePath(path), []byte("mine"), 0o644))

	require.Error(t, Init(path, false))

	// Force replaces the existing template along with the configuration.
	require.NoError(t, Init(path, true))
	data, err := os.ReadFile(TemplatePath(path))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!-- {CONTENT} -->")
}
