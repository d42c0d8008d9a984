// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	bracketedPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|（[^）]*）`)
	nicknamePattern  = regexp.MustCompile(`(^|\s)["“‘'][^"”’']+["”’'](\s|$)`)
	glued            = regexp.MustCompile(`\.(\pL)`)
	symbolRunes      = "~`!@#$%^&*_+=?<>{}|¡¿\"“”"
)

// Clean strips markup, bracketed asides, quoted nicknames, emoji, and
// stray symbols from a name and normalizes its spacing. Han and Hangul
// characters are removed when the name also contains Latin letters.
func Clean(raw string) string {
	s := norm.NFC.String(html.UnescapeString(raw))
	s = tagPattern.ReplaceAllString(s, " ")
	s = bracketedPattern.ReplaceAllString(s, " ")
	s = strings.NewReplacer("’", "'", "‘", "'", "`", "'").Replace(s)
	s = nicknamePattern.ReplaceAllString(s, " ")

	latin := hasLatin(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(symbolRunes, r):
			b.WriteRune(' ')
		case unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r) || unicode.Is(unicode.Cs, r):
			b.WriteRune(' ')
		case latin && isCJK(r):
			b.WriteRune(' ')
		case unicode.IsControl(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	s = glued.ReplaceAllString(b.String(), ". $1")
	return strings.Join(strings.Fields(s), " ")
}

func hasLatin(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hangul, unicode.Hiragana, unicode.Katakana)
}

// hasCJK reports whether s contains Han, Hangul, or kana characters.
func hasCJK(s string) bool {
	return strings.IndexFunc(s, isCJK) >= 0
}
