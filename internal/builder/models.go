// internal/builder/models.go
package builder

import (
	"html/template"

	"gddoc/internal/config"
	"gddoc/internal/masthead"
)

// ReferenceMeta marks a page as reference documentation.
type ReferenceMeta struct {
	APILevels bool `yaml:"apilevels"`
	// Since is the API level the documented item first appeared in.
	Since int `yaml:"since"`
}

// PageMeta holds metadata from front matter.
type PageMeta struct {
	Title       string                 `yaml:"title"`
	Draft       bool                   `yaml:"draft"`
	Description string                 `yaml:"description"`
	Reference   *ReferenceMeta         `yaml:"reference"`
	Params      map[string]interface{} `yaml:",inline"`
}

// PageData is the struct passed to templates.
type PageData struct {
	Content     template.HTML
	Masthead    template.HTML
	Title       string
	BaseHref    string
	Description string
	Site        config.SiteConfig
	Reference   *ReferenceMeta
	Params      map[string]interface{}
}

// mastheadContext maps site and page metadata onto the masthead input.
func mastheadContext(site config.SiteConfig, meta PageMeta) masthead.Context {
	ctx := masthead.Context{Project: masthead.Project{Name: site.Project.Name}}
	if meta.Reference != nil {
		ctx.Reference = &masthead.Reference{APILevels: meta.Reference.APILevels}
	}
	return ctx
}
