package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSiteConfig(t *testing.T) {
	path := writeConfig(t, `title: Docs
description: Project docs
template: dark
project:
  name: GreenDroid
  home: https://example.org
search:
  action: find.html
  placeholder: Find
apilevels: [4, 8, 7]
defaultapilevel: 7
`)

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Docs", cfg.Title)
	assert.Equal(t, "dark", cfg.Template)
	assert.Equal(t, "GreenDroid", cfg.Project.Name)
	assert.Equal(t, "https://example.org", cfg.Project.Home)
	assert.Equal(t, "find.html", cfg.Search.Action)
	assert.Equal(t, "Find", cfg.Search.Placeholder)
	assert.Equal(t, []int{4, 8, 7}, cfg.APILevels)
	assert.Equal(t, 7, cfg.DefaultAPILevel)
}

func TestLoadSiteConfigDefaults(t *testing.T) {
	path := writeConfig(t, "title: Docs\napilevels: [4, 8, 7]\n")

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Template)
	assert.Equal(t, "http://greendroid.cyrilmottier.com", cfg.Project.Home)
	assert.Equal(t, "search.html", cfg.Search.Action)
	assert.Equal(t, "Search", cfg.Search.Placeholder)
	assert.Equal(t, 8, cfg.DefaultAPILevel)
	assert.Empty(t, cfg.Project.Name)
}

func TestLoadSiteConfigErrors(t *testing.T) {
	_, err := LoadSiteConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadSiteConfig(writeConfig(t, "apilevels: [oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse")
}
