// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package license maps license names, SPDX ids, and license URLs onto
// canonical SPDX licenses.
package license

import (
	"regexp"
	"strings"
	"unicode"
)

// License is a resolved license. ID is empty for the synthetic pointer to a
// license file that matched nothing known.
type License struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Candidate is one piece of license information found in a source. Text is
// a name or SPDX id, URL a license page. File marks the URL of a license
// file in the repository itself.
type Candidate struct {
	Text string
	URL  string
	File bool
}

var (
	byID   = map[string]*entry{}
	byName = map[string]*entry{}
	byURL  = map[string]*entry{}
)

func init() {
	for i := range known {
		e := &known[i]
		byID[strings.ToLower(e.id)] = e
		addName(normText(e.id), e)
		addName(normText(e.title), e)
		for _, a := range e.aliases {
			addName(normText(a), e)
		}
		addURL(normURL(e.url), e)
		addURL(normURL("https://spdx.org/licenses/"+e.id+".html"), e)
		for _, u := range e.urls {
			addURL(normURL(u), e)
		}
	}
	for old, cur := range deprecatedIDs {
		byID[strings.ToLower(old)] = byID[strings.ToLower(cur)]
	}
}

func addName(k string, e *entry) {
	if _, dup := byName[k]; !dup && k != "" {
		byName[k] = e
	}
}

func addURL(k string, e *entry) {
	if _, dup := byURL[k]; !dup && k != "" {
		byURL[k] = e
	}
}

func (e *entry) license() License {
	return License{ID: e.id, Title: e.title, URL: e.url}
}

// Resolve tries candidates in order and returns the first known license.
// When nothing matches but a license file URL was offered, it returns
// {Title: "License", URL: file URL}.
func Resolve(candidates []Candidate) (License, bool) {
	var fileURL string
	for _, c := range candidates {
		if c.File {
			if fileURL == "" {
				fileURL = c.URL
			}
			continue
		}
		if l, ok := match(c); ok {
			return l, true
		}
	}
	if fileURL != "" {
		return License{Title: "License", URL: fileURL}, true
	}
	return License{}, false
}

// Lookup returns the license with the given SPDX id, ignoring case.
func Lookup(id string) (License, bool) {
	if e, ok := byID[strings.ToLower(strings.TrimSpace(id))]; ok {
		return e.license(), true
	}
	return License{}, false
}

func match(c Candidate) (License, bool) {
	if c.URL != "" {
		if e := matchURL(c.URL); e != nil {
			return e.license(), true
		}
	}
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return License{}, false
	}
	if strings.Contains(text, "://") {
		if e := matchURL(text); e != nil {
			return e.license(), true
		}
		return License{}, false
	}
	if e := matchText(text); e != nil {
		return e.license(), true
	}
	return License{}, false
}

var (
	registryPath = regexp.MustCompile(`^(?:spdx\.org/licenses|opensource\.org/licenses|choosealicense\.com/licenses)/([a-z0-9.+-]+)$`)
	ccPath       = regexp.MustCompile(`^creativecommons\.org/licenses/(by(?:-[a-z]+)*)/(\d\.\d)$`)
)

func matchURL(raw string) *entry {
	u := normURL(raw)
	if e, ok := byURL[u]; ok {
		return e
	}
	if m := registryPath.FindStringSubmatch(u); m != nil {
		id := strings.TrimSuffix(m[1], "-license")
		if e, ok := byID[id]; ok {
			return e
		}
		if e, ok := byName[normText(id)]; ok {
			return e
		}
	}
	if m := ccPath.FindStringSubmatch(u); m != nil {
		if e, ok := byID["cc-"+m[1]+"-"+m[2]]; ok {
			return e
		}
	}
	return nil
}

// copyleft matches normalized GNU license names with an optional version
// and an "or later" or "only" qualifier.
var copyleft = regexp.MustCompile(`^(?:gnu )?(?:(affero|lesser|library) )?(general public|agpl|lgpl|gpl)(?: ?v?(\d+(?:\.\d+)?))?(?: (\+|or later|or any later|only))?$`)

func matchText(text string) *entry {
	if e, ok := byID[strings.ToLower(text)]; ok {
		return e
	}
	n := normText(text)
	if m := copyleft.FindStringSubmatch(n); m != nil {
		if e := gnuLicense(m[1], m[2], m[3], m[4]); e != nil {
			return e
		}
	}
	if e, ok := byName[n]; ok {
		return e
	}
	return nil
}

func gnuLicense(adjective, family, version, qualifier string) *entry {
	switch {
	case adjective == "affero" || family == "agpl":
		family = "AGPL"
	case adjective == "lesser" || adjective == "library" || family == "lgpl":
		family = "LGPL"
	default:
		family = "GPL"
	}
	later := qualifier == "+" || strings.HasPrefix(qualifier, "or")
	if version == "" {
		// Unversioned GNU licenses allow any published version.
		version, later = map[string]string{"GPL": "1", "LGPL": "2", "AGPL": "3"}[family], true
	}
	if !strings.Contains(version, ".") {
		version += ".0"
	}
	suffix := "-only"
	if later {
		suffix = "-or-later"
	}
	return byID[strings.ToLower(family+"-"+version+suffix)]
}

var fillerWords = map[string]bool{
	"the": true, "license": true, "version": true, "international": true,
	"unported": true, "universal": true, "agreement": true, "software": true,
}

// normText lowercases s, drops punctuation and filler words, and trims
// ".0" from version numbers.
func normText(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "licence", "license")
	s = strings.ReplaceAll(s, "+", " + ")
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	var out []string
	for _, f := range strings.Fields(b.String()) {
		f = strings.Trim(f, ".")
		if len(f) > 1 && f[0] == 'v' && f[1] >= '0' && f[1] <= '9' {
			f = f[1:]
		}
		for strings.HasSuffix(f, ".0") {
			f = strings.TrimSuffix(f, ".0")
		}
		if f == "" || fillerWords[f] {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// normURL reduces a license URL to host and path without scheme, "www.",
// query, fragment, trailing slash, or file extension.
func normURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimPrefix(u, "www.")
	u = strings.TrimRight(u, "/")
	u = strings.TrimSuffix(u, "/legalcode")
	for _, ext := range []string{".html", ".htm", ".txt", ".php", ".md"} {
		u = strings.TrimSuffix(u, ext)
	}
	return strings.TrimRight(u, "/")
}
