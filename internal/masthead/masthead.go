// Package masthead renders the page header shown at the top of every
// generated documentation page: the project title link, the search box
// and, on reference pages, the API level filter.
package masthead

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

// DefaultHome is the link target of the project title.
const DefaultHome = "http://greendroid.cyrilmottier.com"

//go:embed masthead.html
var defaultTemplate string

// Project holds site-wide project metadata.
type Project struct {
	Name string
}

// Reference is present only on reference documentation pages.
type Reference struct {
	APILevels bool
}

// Context is the input to Render.
type Context struct {
	Project   Project
	Reference *Reference
}

// Helper renders a fragment that the masthead inlines as-is.
type Helper func() template.HTML

// Options configures a Renderer. Nil helpers render nothing.
type Options struct {
	Home      string
	SearchBox Helper
	APIFilter Helper
	// Override replaces the built-in markup. It must define a "masthead" template.
	Override string
}

// Renderer produces masthead fragments. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the masthead template with the given helpers bound to
// default_search_box and default_api_filter.
func New(opts Options) (*Renderer, error) {
	home := opts.Home
	if home == "" {
		home = DefaultHome
	}
	funcs := template.FuncMap{
		"home":               func() string { return home },
		"default_search_box": orEmpty(opts.SearchBox),
		"default_api_filter": orEmpty(opts.APIFilter),
	}

	src := defaultTemplate
	if strings.TrimSpace(opts.Override) != "" {
		src = opts.Override
	}
	tmpl, err := template.New("masthead.html").Funcs(funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse masthead template: %w", err)
	}
	if tmpl.Lookup("masthead") == nil {
		return nil, fmt.Errorf("masthead template does not define %q", "masthead")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the masthead for a single page.
func (r *Renderer) Render(ctx Context) (template.HTML, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, "masthead", ctx); err != nil {
		return "", fmt.Errorf("failed to render masthead: %w", err)
	}
	return template.HTML(sb.String()), nil
}

func orEmpty(h Helper) Helper {
	if h == nil {
		return func() template.HTML { return "" }
	}
	return h
}
