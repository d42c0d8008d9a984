// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxListedAuthors is the APA cutoff after which the list is elided.
const maxListedAuthors = 20

// Renderer turns a bibliographic item into citation text.
type Renderer interface {
	Render(item CSLItem) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(CSLItem) string

func (f RendererFunc) Render(item CSLItem) string { return f(item) }

// APA renders items in APA 7 reference-list style as plain text. Missing
// parts (authors, year, venue, locator) are left out rather than
// reported.
var APA Renderer = RendererFunc(renderAPA)

func renderAPA(item CSLItem) string {
	title := sentence(strings.TrimSpace(string(item.Title)))
	authors := apaAuthors(item.Author)
	if authors == "" {
		authors = apaAuthors(item.Editor)
		if authors != "" {
			authors += " (Ed" + plural(len(item.Editor), "s") + ".)"
		}
	}

	date := "(n.d.)."
	if y := item.Issued.Year(); y > 0 {
		date = fmt.Sprintf("(%d).", y)
	}

	var parts []string
	switch {
	case authors != "":
		parts = append(parts, sentence(authors), date)
		if title != "" {
			parts = append(parts, title)
		}
	case title != "":
		parts = append(parts, title, date)
	default:
		return ""
	}

	if src := apaSource(item); src != "" {
		parts = append(parts, src)
	}
	switch {
	case item.DOI != "":
		parts = append(parts, "https://doi.org/"+item.DOI)
	case item.URL != "":
		parts = append(parts, item.URL)
	}
	return strings.Join(parts, " ")
}

// apaSource renders the venue: journal with volume, issue and pages for
// articles, publisher for everything else.
func apaSource(item CSLItem) string {
	container := strings.TrimSpace(string(item.ContainerTitle))
	publisher := strings.TrimSpace(string(item.Publisher))
	if container == "" {
		if publisher == "" {
			return ""
		}
		return sentence(publisher)
	}

	s := container
	if v := strings.TrimSpace(string(item.Volume)); v != "" {
		s += ", " + v
		if n := strings.TrimSpace(string(item.Issue)); n != "" {
			s += "(" + n + ")"
		}
	}
	if p := strings.TrimSpace(string(item.Page)); p != "" {
		s += ", " + strings.ReplaceAll(p, "-", "–")
	}
	if !strings.HasPrefix(item.Type, "article") && publisher != "" && publisher != container {
		s += ". " + publisher
	}
	return sentence(s)
}

func apaAuthors(names []CSLName) string {
	var list []string
	for _, n := range names {
		if s := apaName(n); s != "" {
			list = append(list, s)
		}
	}
	switch len(list) {
	case 0:
		return ""
	case 1:
		return list[0]
	}
	if len(list) > maxListedAuthors {
		head := strings.Join(list[:maxListedAuthors-1], ", ")
		return head + ", . . . " + list[len(list)-1]
	}
	return strings.Join(list[:len(list)-1], ", ") + ", & " + list[len(list)-1]
}

func apaName(n CSLName) string {
	family := strings.TrimSpace(n.Family)
	if family == "" {
		if lit := strings.TrimSpace(n.Literal); lit != "" {
			return lit
		}
		return strings.TrimSpace(n.Given)
	}
	if in := initials(n.Given); in != "" {
		return family + ", " + in
	}
	return family
}

// initials abbreviates given names: "Jean-Paul Ann" becomes "J.-P. A.".
func initials(given string) string {
	var words []string
	for _, w := range strings.Fields(given) {
		var parts []string
		for _, p := range strings.Split(w, "-") {
			r, _ := utf8.DecodeRuneInString(p)
			if r == utf8.RuneError || !unicode.IsLetter(r) {
				continue
			}
			parts = append(parts, string(unicode.ToUpper(r))+".")
		}
		if len(parts) > 0 {
			words = append(words, strings.Join(parts, "-"))
		}
	}
	return strings.Join(words, " ")
}

// sentence ends s with a period unless it already ends in punctuation.
func sentence(s string) string {
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '?', '!':
		return s
	}
	return s + "."
}

func plural(n int, suffix string) string {
	if n == 1 {
		return ""
	}
	return suffix
}
