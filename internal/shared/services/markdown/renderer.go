// Package markdown renders user-authored notice text into safe HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts notice bodies to sanitized HTML and strips markup from
// single-line fields such as titles.
type Renderer interface {
	ToSafeHTML(markdown string) (string, error)
	PlainText(s string) string
}

type renderer struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	ugc.RequireNoFollowOnLinks(true)

	return &renderer{md: md, ugc: ugc, strict: bluemonday.StrictPolicy()}
}

func (r *renderer) ToSafeHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.ugc.Sanitize(buf.String()), nil
}

func (r *renderer) PlainText(s string) string {
	return strings.TrimSpace(r.strict.Sanitize(s))
}
