// Package web holds the embedded page templates and the helpers they use.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// RenderMarkdown converts article markdown to sanitized HTML
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(policy.Sanitize(template.HTMLEscapeString(source)))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// FuncMap returns the template helpers
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": RenderMarkdown,
		"date":     formatDate,
		"excerpt":  excerpt,
		"year":     func() int { return time.Now().Year() },
	}
}

// Templates parses every embedded page template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// Static returns the stylesheet and other public assets
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("January 2, 2006")
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
