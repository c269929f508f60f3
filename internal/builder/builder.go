// internal/builder/builder.go
package builder

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gddoc/internal/config"
	"gddoc/internal/masthead"
	"gddoc/internal/util"
	"gddoc/internal/widgets"

	"go.uber.org/zap"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
	Logger           *zap.Logger
}

func (o BuildOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Theme is a parsed template set plus the masthead renderer its pages use.
type Theme struct {
	tmpl     *template.Template
	masthead *masthead.Renderer
}

// BuildSite renders every content file into outputDir and copies static
// assets. It returns the number of pages written.
func BuildSite(outputDir, contentDir, staticDir string, site config.SiteConfig, theme *Theme, opts BuildOptions) (int, error) {
	log := opts.logger()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		log.Debug("cleaning destination directory", zap.String("dir", outputDir))
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	pagesGenerated := 0
	if err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".html" && ext != ".md" {
			return nil
		}

		contentBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if !utf8.Valid(contentBytes) {
			return fmt.Errorf("content file is not valid UTF-8: %s", path)
		}

		meta, htmlOut, err := processContent(contentBytes, opts)
		if err != nil {
			return fmt.Errorf("failed to process content for %s: %w", path, err)
		}

		relPath, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(relPath, ext)

		if meta.Draft && slug != "index" {
			log.Debug("skipping draft", zap.String("page", relPath))
			return nil
		}

		header, err := theme.masthead.Render(mastheadContext(site, meta))
		if err != nil {
			return fmt.Errorf("failed to render page %s: %w", path, err)
		}

		pageData := PageData{
			Content:     template.HTML(htmlOut),
			Masthead:    header,
			Title:       meta.Title,
			BaseHref:    util.ComputeBaseHref(relPath),
			Description: meta.Description,
			Site:        site,
			Reference:   meta.Reference,
			Params:      meta.Params,
		}
		if pageData.Description == "" {
			pageData.Description = site.Description
		}

		outputPath := filepath.Join(outputDir, slug+".html")
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return err
		}
		if err := renderPage(theme.tmpl, outputPath, pageData); err != nil {
			return fmt.Errorf("failed to render page %s: %w", path, err)
		}
		log.Debug("page written", zap.String("page", relPath), zap.Bool("reference", meta.Reference != nil))
		pagesGenerated++
		return nil
	}); err != nil {
		return 0, err
	}

	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return 0, err
	}
	return pagesGenerated, nil
}

// copyStaticAssets copies whitelisted files from staticDir into outputDir.
// A missing staticDir is not an error.
func copyStaticAssets(staticDir, outputDir string) error {
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".woff": true, ".woff2": true, ".ico": true,
	}
	if _, err := os.Stat(staticDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !allowedExts[filepath.Ext(d.Name())] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(outputDir, rel))
	})
}

func copyFile(srcPath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// renderPage executes the "main" template into outPath.
func renderPage(tmpl *template.Template, outPath string, data PageData) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(outFile, "main", data); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

// LoadTheme parses the layout, header and footer of a theme directory and
// builds the masthead renderer. A masthead.html in the theme replaces the
// built-in masthead markup.
func LoadTheme(templateDir string, site config.SiteConfig) (*Theme, error) {
	path := filepath.Join(templateDir, site.Template)
	tmpl, err := template.ParseFiles(
		filepath.Join(path, "layout.html"),
		filepath.Join(path, "header.html"),
		filepath.Join(path, "footer.html"),
	)
	if err != nil {
		return nil, err
	}

	override, err := os.ReadFile(filepath.Join(path, "masthead.html"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read masthead override: %w", err)
	}

	header, err := masthead.New(masthead.Options{
		Home: site.Project.Home,
		SearchBox: widgets.SearchBox(widgets.SearchOptions{
			Action:      site.Search.Action,
			Placeholder: site.Search.Placeholder,
		}),
		APIFilter: widgets.APIFilter(site.APILevels, site.DefaultAPILevel),
		Override:  string(override),
	})
	if err != nil {
		return nil, err
	}
	return &Theme{tmpl: tmpl, masthead: header}, nil
}
