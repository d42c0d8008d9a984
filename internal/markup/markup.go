// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup converts release notes between Markdown, HTML and plain
// text.
package markup

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML renders GitHub-flavored Markdown as HTML. Raw HTML in the input
// is omitted.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

var (
	commentRegex    = regexp.MustCompile(`<!--[\s\S]*?-->`)
	blockEndRegex   = regexp.MustCompile(`(?i)</(?:p|div|li|h[1-6]|blockquote|tr)>|<br\s*/?>`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	spaceRunRegex   = regexp.MustCompile(`[ \t]+`)
	blankLinesRegex = regexp.MustCompile(`\n\s*\n+`)
)

// StripHTML removes tags and comments and decodes entities, keeping block
// boundaries as line breaks.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = commentRegex.ReplaceAllString(s, "")
	s = blockEndRegex.ReplaceAllString(s, "\n")
	s = tagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = spaceRunRegex.ReplaceAllString(s, " ")
	s = blankLinesRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// IsHTML reports whether s appears to contain markup.
func IsHTML(s string) bool {
	return tagRegex.MatchString(s)
}
