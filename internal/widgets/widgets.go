// Package widgets holds the default fragments inlined into the masthead.
package widgets

import (
	"html/template"
	"sort"
	"strings"
)

var (
	searchBoxTemplate = template.Must(template.New("search").Parse(
		`<div id="search">
  <form action="{{ .Action }}" method="get" id="search-form">
    <input type="text" name="q" id="search_autocomplete" placeholder="{{ .Placeholder }}" autocomplete="off">
    <input type="submit" value="{{ .Placeholder }}" id="search-button">
  </form>
</div>`))

	apiFilterTemplate = template.Must(template.New("apifilter").Parse(
		`<div id="api-level-toggle">
  <label for="apiLevelSelector">Filter by API Level:</label>
  <select id="apiLevelSelector">
  {{- range .Levels }}
    <option value="{{ . }}"{{ if eq . $.Selected }} selected{{ end }}>{{ . }}</option>
  {{- end }}
  </select>
</div>`))
)

// SearchOptions configures the search box form.
type SearchOptions struct {
	Action      string
	Placeholder string
}

// SearchBox returns a helper rendering the site search form.
func SearchBox(opts SearchOptions) func() template.HTML {
	return func() template.HTML {
		return execute(searchBoxTemplate, opts)
	}
}

// APIFilter returns a helper rendering the API level selector. Levels are
// listed in ascending order; an empty list renders nothing.
func APIFilter(levels []int, selected int) func() template.HTML {
	sorted := append([]int(nil), levels...)
	sort.Ints(sorted)
	data := struct {
		Levels   []int
		Selected int
	}{sorted, selected}

	return func() template.HTML {
		if len(data.Levels) == 0 {
			return ""
		}
		return execute(apiFilterTemplate, data)
	}
}

// execute panics on failure: both templates are fixed and their data is typed.
func execute(t *template.Template, data any) template.HTML {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		panic(err)
	}
	return template.HTML(sb.String())
}
