// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitLatin splits a cleaned Latin-script personal name into given and
// family parts. It handles "Family, Given" inversion, honorifics,
// generational suffixes, and nobiliary particles ("de", "van der"), and
// otherwise takes the last token as the family name. A single token is
// returned as the family name.
func SplitLatin(name string) (given, family string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	var parts []string
	for _, p := range strings.Split(name, ",") {
		if p = strings.TrimSpace(p); p != "" && !isSuffix(p) {
			parts = append(parts, p)
		}
	}
	if len(parts) == 2 {
		return capitalizeGiven(strings.Fields(parts[1])), capitalizeFamily(strings.Fields(parts[0]))
	}
	return splitTokens(strings.Fields(strings.Join(parts, " ")))
}

func splitTokens(tokens []string) (given, family string) {
	for len(tokens) > 1 && honorifics[strings.ToLower(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 1 && isSuffix(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	for i, t := range tokens {
		if utf8.RuneCountInString(t) > 2 && strings.HasSuffix(t, ".") && !honorifics[strings.ToLower(t)] {
			tokens[i] = strings.TrimSuffix(t, ".")
		}
	}
	if len(tokens) == 0 {
		return "", ""
	}
	if len(tokens) == 1 {
		return "", capitalizeFamily(tokens)
	}

	cut := len(tokens) - 1
	for i := 1; i < len(tokens)-1; i++ {
		if particles[strings.ToLower(tokens[i])] {
			cut = i
			break
		}
	}
	return capitalizeGiven(tokens[:cut]), capitalizeFamily(tokens[cut:])
}

func isSuffix(s string) bool {
	return suffixes[strings.ToLower(strings.TrimSpace(s))]
}

// capitalizeGiven upcases the first letter of each given-name token.
func capitalizeGiven(tokens []string) string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		r, size := utf8.DecodeRuneInString(t)
		out[i] = string(unicode.ToUpper(r)) + t[size:]
	}
	return strings.Join(out, " ")
}

// capitalizeFamily title-cases an all-lowercase surname word and leaves
// particles and mixed-case forms such as "McDonald" alone.
func capitalizeFamily(tokens []string) string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		switch {
		case i < len(tokens)-1 && particles[strings.ToLower(t)]:
			out[i] = t
		case t == strings.ToLower(t):
			out[i] = cases.Title(language.Und).String(t)
		default:
			out[i] = t
		}
	}
	return strings.Join(out, " ")
}
