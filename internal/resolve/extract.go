// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

// shapeError reports a source value whose type does not fit the field.
type shapeError struct {
	key string
	got any
}

func (e *shapeError) Error() string {
	return fmt.Sprintf("%q has unexpected value of type %T", e.key, e.got)
}

// text returns key as trimmed text. A one-element list of text is accepted;
// other lists and objects are a shape error.
func text(t source.Tree, key string) (string, error) {
	switch v := t[key].(type) {
	case []any:
		if len(v) == 1 {
			if s, ok := v[0].(string); ok {
				return strings.TrimSpace(s), nil
			}
		}
		if len(v) > 0 {
			return "", &shapeError{key: key, got: v}
		}
		return "", nil
	case map[string]any:
		return "", &shapeError{key: key, got: v}
	}
	return t.String(key), nil
}

// line is text with runs of whitespace collapsed to one space.
func line(s string) string { return strings.Join(strings.Fields(s), " ") }

// firstText returns the first non-empty scalar among keys.
func firstText(t source.Tree, keys ...string) string {
	for _, k := range keys {
		if s := t.String(k); s != "" {
			return s
		}
	}
	return ""
}

func codemetaText(key string) func(*state) (string, error) {
	return func(s *state) (string, error) { return text(s.b.CodeMeta, key) }
}

func cffText(key string) func(*state) (string, error) {
	return func(s *state) (string, error) { return text(s.b.CFF, key) }
}

// urlValues returns the URLs under key. Elements may be strings or objects
// carrying url or @id.
func urlValues(t source.Tree, key string) []string {
	var out []string
	for _, v := range t.List(key) {
		if m, ok := source.AsTree(v); ok {
			if u := firstText(m, "url", "@id", "id"); u != "" {
				out = append(out, u)
			}
			continue
		}
		if u := source.AsString(v); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// nameValues returns the names under key. Elements may be strings or
// objects carrying name.
func nameValues(t source.Tree, key string) []string {
	var out []string
	for _, v := range t.List(key) {
		if m, ok := source.AsTree(v); ok {
			if n := firstText(m, "name", "@name"); n != "" {
				out = append(out, n)
			}
			continue
		}
		if n := source.AsString(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

var allowedURLSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "git": true,
	"s3": true, "svn": true, "gopher": true,
}

// allowedURL reports whether s is an absolute URL with a scheme the
// repository accepts.
func allowedURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	return allowedURLSchemes[strings.ToLower(u.Scheme)]
}

// related builds url-scheme related identifiers for the allowed URLs
// among urls.
func related(relation string, urls ...string) []types.RelatedIdentifier {
	var out []types.RelatedIdentifier
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if !allowedURL(u) {
			continue
		}
		out = append(out, types.RelatedIdentifier{
			Identifier:   u,
			Scheme:       "url",
			RelationType: types.VocabRef{ID: relation},
		})
	}
	return out
}

var versionPrefix = regexp.MustCompile(`^(?i:v(?:er(?:sion)?)?)[ .]?\s?`)

// versionOf strips a leading v, ver or version from a tag when a digit
// follows it.
func versionOf(tag string) string {
	tag = strings.TrimSpace(tag)
	if m := versionPrefix.FindStringIndex(tag); m != nil && m[1] > 0 && m[1] < len(tag) {
		if c := tag[m[1]]; c >= '0' && c <= '9' {
			return tag[m[1]:]
		}
	}
	return tag
}

var licenseFile = regexp.MustCompile(`(?i)^(?:license|licence|copying)(?:\.(?:md|txt|rst|markdown))?$`)

// splitKeywords splits a keyword string on semicolons, or on commas when
// it has none.
func splitKeywords(s string) []string {
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	var out []string
	for _, k := range strings.Split(s, sep) {
		if k = line(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func subjects(words ...string) []types.Subject {
	out := make([]types.Subject, 0, len(words))
	for _, w := range words {
		if w = line(w); w != "" {
			out = append(out, types.Subject{Subject: w})
		}
	}
	return out
}
