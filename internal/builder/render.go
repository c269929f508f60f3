// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v3"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newLinkRewriter(), 100),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	htmlSanitizer = newSanitizer()

	frontMatterFence = []byte("---")
)

// newSanitizer allows the id attributes generated for headings so that
// in-page links survive sanitization.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// splitFrontMatter separates a leading YAML block fenced by "---" lines
// from the body. Files without a leading fence have no front matter.
func splitFrontMatter(raw []byte) (front, body []byte) {
	trimmed := bytes.TrimLeft(raw, "\ufeff \t\r\n")
	if !bytes.HasPrefix(trimmed, frontMatterFence) {
		return nil, raw
	}
	rest := trimmed[len(frontMatterFence):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterFence...))
	if end < 0 {
		return nil, raw
	}
	front = rest[:end]
	body = rest[end+1+len(frontMatterFence):]
	return front, bytes.TrimLeft(body, "\r\n")
}

// processContent parses front matter and renders the markdown body.
func processContent(rawContent []byte, opts BuildOptions) (PageMeta, string, error) {
	meta := PageMeta{}

	front, body := splitFrontMatter(rawContent)
	if front != nil {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return PageMeta{}, "", fmt.Errorf("failed to parse front matter: %w", err)
		}
	}

	var htmlBuffer bytes.Buffer
	if err := markdownRenderer.Convert(body, &htmlBuffer); err != nil {
		return meta, "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}

	if !opts.Unsafe {
		return meta, string(htmlSanitizer.SanitizeBytes(htmlBuffer.Bytes())), nil
	}
	return meta, htmlBuffer.String(), nil
}
