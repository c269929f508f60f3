// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gddoc/internal/config"
	"gddoc/internal/util"
)

// CreateNewSite writes a starter documentation site into dir.
func CreateNewSite(dir string) error {
	fmt.Println("Scaffolding new site in:", dir)
	dirs := []string{"content/reference", "static/css", "templates/default", "archetypes"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	files := map[string]string{
		"site.yaml":                     siteYamlContent,
		"static/css/style.css":          staticCssContent,
		"templates/default/layout.html": templateLayoutHtmlContent,
		"templates/default/header.html": templateHeaderHtmlContent,
		"templates/default/footer.html": templateFooterHtmlContent,
		"archetypes/default.md":         archetypeDefaultMdContent,
		"content/index.md":              contentIndexContent,
		"content/reference/index.md":    contentReferenceContent,
	}
	for path, content := range files {
		if err := os.WriteFile(filepath.Join(dir, path), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", dir)
	fmt.Println("  gddoc serve")
	return nil
}

// CreateNewContent renders archetypes/default.md into content/<type>/<slug>.md
// relative to siteDir and returns the path written.
func CreateNewContent(siteDir, contentType, title, configPath string) (string, error) {
	site, err := config.LoadSiteConfig(configPath)
	if err != nil {
		return "", err
	}

	path := filepath.Join(siteDir, "content", contentType, util.Slugify(title)+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("content already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	archetypePath := filepath.Join(siteDir, "archetypes", "default.md")
	tmplBytes, err := os.ReadFile(archetypePath)
	if err != nil {
		return "", fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}

	tmpl, err := template.New("archetype").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title     string
		Project   string
		Reference bool
	}{
		Title:     title,
		Project:   site.Project.Name,
		Reference: contentType == "reference",
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}
	if err := os.WriteFile(path, output.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

const siteYamlContent = `title: My Project Documentation
description: Developer documentation generated by gddoc.
template: default
project:
  name: My Project
  home: http://greendroid.cyrilmottier.com
search:
  action: search.html
  placeholder: Search
apilevels: [4, 7, 8]
`

const archetypeDefaultMdContent = `---
title: {{ .Title }}
description: {{ .Title }} in {{ .Project }}
{{- if .Reference }}
reference:
  apilevels: true
{{- end }}
---

Write something meaningful here.
`

const contentIndexContent = `---
title: Home
---

# Welcome

Start with the [reference](reference/index.md).
`

const contentReferenceContent = `---
title: Reference
reference:
  apilevels: true
---

# Reference

Every class is tagged with the API level it first appeared in.
`

const staticCssContent = `body {
  font-family: sans-serif;
  margin: 0;
  color: #222;
  background: #fdfdfd;
}
#header {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 0.5em 1.5em;
  background: #333;
}
#headerLeft a#masthead-title { color: #9c0; font-size: 1.4em; text-decoration: none; }
#headerRight { display: flex; gap: 1em; align-items: center; }
#api-level-toggle { color: #ddd; font-size: 0.9em; }
main { max-width: 800px; margin: 2em auto; padding: 0 1em; line-height: 1.6; }
footer { text-align: center; font-size: 0.9em; color: #555; }
`

const templateLayoutHtmlContent = `{{ define "main" }}
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{ .Title }} | {{ .Site.Title }}</title>
  <link rel="stylesheet" href="{{ .BaseHref }}css/style.css">
  <meta name="description" content="{{ .Description }}">
</head>
<body>
  {{ template "header" . }}
  <main>
    {{ .Content }}
  </main>
  {{ template "footer" . }}
</body>
</html>
{{ end }}`

const templateHeaderHtmlContent = `{{ define "header" }}
{{ .Masthead }}
{{ end }}`

const templateFooterHtmlContent = `{{ define "footer" }}
<footer>
  <nav>
    <a href="{{ .BaseHref }}index.html">home</a>
  </nav>
  <div class="copyright">
    &copy; {{ .Site.Project.Name }}
  </div>
</footer>
{{ end }}`
