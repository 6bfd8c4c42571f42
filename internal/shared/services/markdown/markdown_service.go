// Package markdown renders package terms, which creators author in Markdown, into HTML
// that is safe to embed in client pages.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// TermsRenderer converts terms text to sanitized HTML.
type TermsRenderer interface {
	Render(terms string) (string, error)
}

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewTermsRenderer() TermsRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4")

	return &renderer{md: md, policy: policy}
}

func (r *renderer) Render(terms string) (string, error) {
	if terms == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(terms), &buf); err != nil {
		return "", fmt.Errorf("failed to render terms: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
