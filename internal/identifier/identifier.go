// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier classifies free-text strings into persistent identifier
// schemes and normalizes them to their bare canonical form.
package identifier

import (
	"net/url"
	"regexp"
	"strings"
)

// Scheme is a persistent identifier type. Values are the InvenioRDM scheme
// names.
type Scheme string

const (
	SchemeARK    Scheme = "ark"
	SchemeArxiv  Scheme = "arxiv"
	SchemeDOI    Scheme = "doi"
	SchemeGND    Scheme = "gnd"
	SchemeHandle Scheme = "handle"
	SchemeISBN   Scheme = "isbn"
	SchemeISNI   Scheme = "isni"
	SchemeISSN   Scheme = "issn"
	SchemeLSID   Scheme = "lsid"
	SchemeORCID  Scheme = "orcid"
	SchemePMCID  Scheme = "pmcid"
	SchemePMID   Scheme = "pmid"
	SchemePURL   Scheme = "purl"
	SchemeRDM    Scheme = "rdm"
	SchemeROR    Scheme = "ror"
	SchemeSWH    Scheme = "swh"
	SchemeURL    Scheme = "url"
	SchemeURN    Scheme = "urn"
)

func (s Scheme) String() string { return string(s) }

// Recognized is a classified identifier. Two values with the same Scheme and
// Normalized are interchangeable.
type Recognized struct {
	Scheme     Scheme
	Value      string
	Normalized string
}

// Key returns the equality key used for deduplication.
func (r Recognized) Key() string { return string(r.Scheme) + ":" + r.Normalized }

// matcher recognizes one scheme. A match that fails valid lets the next
// matcher try.
type matcher struct {
	scheme    Scheme
	pattern   *regexp.Regexp
	normalize func(m []string) string
	valid     func(normalized string) bool
}

func group1(m []string) string { return m[1] }

// matchers is tried in order; the first valid match wins. The ordering keeps
// the schemes mutually exclusive: prefixed forms come before bare ones, and
// bare numeric forms are told apart by length and check digits.
var matchers = []matcher{
	{
		scheme:    SchemeSWH,
		pattern:   regexp.MustCompile(`^(?:https?://archive\.softwareheritage\.org/(?:browse/)?)?((?i:swh):1:(?i:cnt|dir|rel|rev|snp):[0-9a-fA-F]{40})(?:;\S*)?/?$`),
		normalize: func(m []string) string { return strings.ToLower(m[1]) },
	},
	{
		scheme:    SchemeLSID,
		pattern:   regexp.MustCompile(`^(?i)urn:lsid:(\S+:\S+)$`),
		normalize: func(m []string) string { return "urn:lsid:" + m[1] },
	},
	{
		scheme:    SchemeURN,
		pattern:   regexp.MustCompile(`^(?i)urn:([a-z0-9][a-z0-9-]{0,31}:\S+)$`),
		normalize: func(m []string) string { return "urn:" + m[1] },
	},
	{
		scheme:    SchemeDOI,
		pattern:   regexp.MustCompile(`^(?:(?i:doi):\s*|(?i:https?://(?:dx\.)?doi\.org/)|info:doi/)?(10\.\d{4,9}/\S+)$`),
		normalize: group1,
	},
	{
		scheme:    SchemeArxiv,
		pattern:   regexp.MustCompile(`^(?:(?i:arxiv):\s*|(?i:https?://(?:www\.)?arxiv\.org/(?:abs|pdf)/))?(\d{4}\.\d{4,5}(?:v\d+)?)(?:\.pdf)?$`),
		normalize: func(m []string) string { return "arXiv:" + m[1] },
	},
	{
		scheme:    SchemeArxiv,
		pattern:   regexp.MustCompile(`^(?:(?i:arxiv):|(?i:https?://(?:www\.)?arxiv\.org/abs/))([a-z-]+(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?)$`),
		normalize: func(m []string) string { return "arXiv:" + m[1] },
	},
	{
		scheme:    SchemeHandle,
		pattern:   regexp.MustCompile(`^(?:(?i:hdl):\s*|(?i:https?://hdl\.handle\.net/))?(\d+(?:\.\d+)*/\S+)$`),
		normalize: group1,
	},
	{
		scheme:  SchemeARK,
		pattern: regexp.MustCompile(`^(?:https?://[^/\s]+/)?ark:/?(\d{5,9}/\S+)$`),
		normalize: func(m []string) string {
			return "ark:/" + m[1]
		},
	},
	{
		scheme:    SchemePURL,
		pattern:   regexp.MustCompile(`^((?i:https?)://purl\.(?:org|oclc\.org|net|com|fdlp\.gov)/\S+)$`),
		normalize: group1,
	},
	{
		scheme:    SchemeGND,
		pattern:   regexp.MustCompile(`^(?:(?i:gnd):\s*|(?i:https?://d-nb\.info/gnd/))(\d{1,10}(?:-[\dX])?|\d{8,9}X)/?$`),
		normalize: func(m []string) string { return "gnd:" + m[1] },
	},
	{
		scheme:    SchemeISNI,
		pattern:   regexp.MustCompile(`^(?:(?i:https?://(?:www\.)?isni\.org/(?:isni/)?)|(?i:isni):\s*)(\d{4}\s?\d{4}\s?\d{4}\s?\d{3}[\dXx])/?$`),
		normalize: normalizeISNI,
		valid:     validMod112,
	},
	{
		scheme:    SchemeORCID,
		pattern:   regexp.MustCompile(`^(?:(?i:https?://(?:www\.)?orcid\.org/)|(?i:orcid):\s*)?(\d{4}-\d{4}-\d{4}-\d{3}[\dXx])/?$`),
		normalize: func(m []string) string { return strings.ToUpper(m[1]) },
		valid:     func(s string) bool { return validMod112(strings.ReplaceAll(s, "-", "")) },
	},
	{
		scheme:    SchemeROR,
		pattern:   regexp.MustCompile(`^(?:(?i:https?://(?:www\.)?ror\.org/)|(?i:ror):\s*)?(0[0-9a-hjkmnp-tv-zA-HJKMNP-TV-Z]{6}\d{2})/?$`),
		normalize: func(m []string) string { return strings.ToLower(m[1]) },
		valid:     func(s string) bool { return strings.IndexFunc(s, isLetter) >= 0 },
	},
	{
		scheme:    SchemeRDM,
		pattern:   regexp.MustCompile(`^(?:https?://[^/\s]+/(?:records|uploads)/)?([0-9a-z]{5}-[0-9a-z]{5})(?:[/?#]\S*)?$`),
		normalize: group1,
	},
	{
		scheme:    SchemePMCID,
		pattern:   regexp.MustCompile(`^(?:(?i:pmcid):\s*|(?i:https?://(?:www\.)?ncbi\.nlm\.nih\.gov/pmc/articles/))?(?i:pmc)(\d{6,8})/?$`),
		normalize: func(m []string) string { return "PMC" + m[1] },
	},
	{
		scheme:    SchemeISBN,
		pattern:   regexp.MustCompile(`^(?:(?i:isbn)(?:-1[03])?:?\s*)?(\d[\d -]{8,15}[\dXx])$`),
		normalize: normalizeISBN,
		valid:     validISBN,
	},
	{
		scheme:    SchemeISSN,
		pattern:   regexp.MustCompile(`^(?:(?i:issn):?\s*)?(\d{4}-\d{3}[\dXx])$`),
		normalize: func(m []string) string { return strings.ToUpper(m[1]) },
		valid:     validISSN,
	},
	{
		scheme:    SchemeISNI,
		pattern:   regexp.MustCompile(`^(\d{4}\s?\d{4}\s?\d{4}\s?\d{3}[\dXx])$`),
		normalize: normalizeISNI,
		valid:     validMod112,
	},
	{
		scheme:    SchemePMID,
		pattern:   regexp.MustCompile(`^(?:(?i:pmid):\s*|(?i:https?://(?:www\.)?(?:pubmed\.ncbi\.nlm\.nih\.gov|ncbi\.nlm\.nih\.gov/pubmed)/))?(\d{1,8})/?$`),
		normalize: group1,
	},
	{
		scheme:    SchemeURL,
		pattern:   regexp.MustCompile(`^((?i:https?|ftps?|git|s3|svn|gopher)://\S+)$`),
		normalize: group1,
		valid:     validURL,
	},
}

// Recognize classifies candidate into a scheme and normalizes it. It
// returns false when no scheme matches. Recognize is pure: the same input
// always gives the same result, and recognizing a normalized value gives
// that value back.
func Recognize(candidate string) (Recognized, bool) {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return Recognized{}, false
	}
	for _, mt := range matchers {
		m := mt.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		norm := mt.normalize(m)
		if mt.valid != nil && !mt.valid(norm) {
			continue
		}
		return Recognized{Scheme: mt.scheme, Value: s, Normalized: norm}, true
	}
	return Recognized{}, false
}

// RecognizeAs returns the identifier only when it belongs to one of the
// given schemes.
func RecognizeAs(candidate string, schemes ...Scheme) (Recognized, bool) {
	r, ok := Recognize(candidate)
	if !ok {
		return Recognized{}, false
	}
	for _, s := range schemes {
		if r.Scheme == s {
			return r, true
		}
	}
	return Recognized{}, false
}

// IsURL reports whether s is an absolute URL with a host.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.Contains(s, "://") && validURL(s)
}

// DOIForArxiv returns the DataCite DOI arXiv assigns to a preprint.
func DOIForArxiv(normalized string) string {
	return "10.48550/" + strings.Replace(normalized, ":", ".", 1)
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func normalizeISNI(m []string) string {
	return strings.ToUpper(strings.Join(strings.Fields(m[1]), ""))
}

func normalizeISBN(m []string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(m[1]))
}
