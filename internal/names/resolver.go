// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names turns raw name strings from metadata sources into resolved
// person or organization identities.
//
// Resolution runs an ordered chain of strategies and stops at the first
// one that is confident. When none is, the name becomes an organization
// with the raw text as its name: an unsplit organization is a smaller
// citation error than a wrongly split person.
package names

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

// Name is the input to resolution. Raw is the free text; Given and Family
// are set when the source provides the split itself.
type Name struct {
	Raw    string
	Given  string
	Family string

	// Organization is set when the source tags the entity as an
	// organization.
	Organization bool

	// Affiliation is an optional organization hint.
	Affiliation string
}

// Strategy is one classifier in the resolution chain. It returns false
// when it has no confident answer.
type Strategy interface {
	TryClassify(ctx context.Context, n Name) (types.Identity, bool)
}

// PersonLookup resolves an ORCID to a personal name.
type PersonLookup interface {
	LookupPersonName(ctx context.Context, orcid string) (given, family string, err error)
}

// OrganizationLookup resolves a ROR id to an organization name.
type OrganizationLookup interface {
	LookupOrganizationName(ctx context.Context, ror string) (string, error)
}

// Options configures a Resolver. Every collaborator is optional.
type Options struct {
	People     PersonLookup
	Orgs       OrganizationLookup
	Classifier EntityClassifier

	// Threshold is the minimum confidence for a PERSON label (default 0.5).
	Threshold float64

	Logger logging.Logger
}

// Resolver runs the strategy chain.
type Resolver struct {
	chain []Strategy
	log   logging.Logger
}

// NewResolver builds the standard chain: structured fields, organization
// hint, identifier lookup, non-person markers, surname tables, single
// token, entity classifier.
func NewResolver(opts Options) *Resolver {
	log := logging.OrNull(opts.Logger)
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = 0.5
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = HeuristicClassifier{}
	}
	return NewResolverWith(log,
		structured{},
		orgHint{},
		identified{people: opts.People, orgs: opts.Orgs, log: log},
		markers{},
		surnames{},
		singleToken{},
		entities{classifier: classifier, threshold: threshold, log: log},
	)
}

// NewResolverWith builds a Resolver over an explicit chain.
func NewResolverWith(log logging.Logger, chain ...Strategy) *Resolver {
	return &Resolver{chain: chain, log: logging.OrNull(log)}
}

// Resolve returns the identity for n. It never fails; the fallback is an
// organization named by the raw text.
func (r *Resolver) Resolve(ctx context.Context, n Name) types.Identity {
	n.Raw = strings.TrimSpace(n.Raw)
	for _, s := range r.chain {
		if id, ok := s.TryClassify(ctx, n); ok {
			return id
		}
	}
	return Organization(n.Raw)
}

// ResolveString resolves free text with no hints.
func (r *Resolver) ResolveString(ctx context.Context, raw string) types.Identity {
	return r.Resolve(ctx, Name{Raw: raw})
}

// Person builds a person identity.
func Person(given, family string) types.Identity {
	return types.Identity{Kind: types.KindPerson, GivenName: given, FamilyName: family}
}

// Organization builds an organization identity.
func Organization(name string) types.Identity {
	return types.Identity{Kind: types.KindOrganization, Name: strings.TrimSpace(name)}
}

// structured uses given and family fields supplied by the source.
type structured struct{}

func (structured) TryClassify(_ context.Context, n Name) (types.Identity, bool) {
	given, family := strings.TrimSpace(n.Given), strings.TrimSpace(n.Family)
	if given == "" && family == "" {
		return types.Identity{}, false
	}
	if family == "" {
		// A lone given name is still a person; InvenioRDM requires the
		// family part.
		given, family = "", given
	}
	return Person(given, family), true
}

// orgHint honours an explicit organization tag.
type orgHint struct{}

func (orgHint) TryClassify(_ context.Context, n Name) (types.Identity, bool) {
	if !n.Organization || n.Raw == "" {
		return types.Identity{}, false
	}
	return Organization(n.Raw), true
}

// identified resolves bare ORCID and ROR identifiers through lookups.
type identified struct {
	people PersonLookup
	orgs   OrganizationLookup
	log    logging.Logger
}

func (s identified) TryClassify(ctx context.Context, n Name) (types.Identity, bool) {
	id, ok := identifier.RecognizeAs(n.Raw, identifier.SchemeORCID, identifier.SchemeROR)
	if !ok {
		return types.Identity{}, false
	}
	ident := types.Identifier{Scheme: id.Scheme.String(), Identifier: id.Normalized}
	switch id.Scheme {
	case identifier.SchemeORCID:
		if s.people == nil {
			return types.Identity{}, false
		}
		given, family, err := s.people.LookupPersonName(ctx, id.Normalized)
		if err != nil || (family == "" && given == "") {
			s.logFailure("ORCID", id.Normalized, err)
			return types.Identity{}, false
		}
		p := Person(given, family)
		if family == "" {
			p = Person("", given)
		}
		p.Identifiers = []types.Identifier{ident}
		return p, true
	default:
		if s.orgs == nil {
			return types.Identity{}, false
		}
		name, err := s.orgs.LookupOrganizationName(ctx, id.Normalized)
		if err != nil || name == "" {
			s.logFailure("ROR", id.Normalized, err)
			return types.Identity{}, false
		}
		o := Organization(name)
		o.Identifiers = []types.Identifier{ident}
		return o, true
	}
}

func (s identified) logFailure(kind, id string, err error) {
	if err == nil {
		err = errors.New("empty name")
	}
	s.log.Warn("%s lookup for %s failed: %v", kind, id, err)
}

var (
	domainSuffix = regexp.MustCompile(`(?i)\b[a-z0-9-]+\.(com|org|net|io|edu|gov|dev|ai|co|uk|de|fr|jp|cn|info|app)\b`)
	dashJoined   = regexp.MustCompile(`\s[-–—]\s|[–—]`)
	possessive   = regexp.MustCompile(`(?i)\w['’]s\b`)
)

// NonPerson reports whether raw carries a marker that rules out a personal
// name: a URL or domain, an email address, a possessive, a dash-joined
// compound, digits only, or an organization word such as "Inc" or "Lab".
func NonPerson(raw string) bool {
	switch {
	case strings.Contains(raw, "://"), strings.Contains(raw, "www."), strings.Contains(raw, "@"):
		return true
	case domainSuffix.MatchString(raw), dashJoined.MatchString(raw), possessive.MatchString(raw):
		return true
	case strings.IndexFunc(raw, unicode.IsLetter) < 0:
		return true
	}
	for _, w := range strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '(' || r == ')' || r == '/' || r == '&'
	}) {
		if orgWords[w] {
			return true
		}
	}
	return false
}

// markers classifies strings with non-person markers as organizations.
type markers struct{}

func (markers) TryClassify(_ context.Context, n Name) (types.Identity, bool) {
	if n.Raw == "" || !NonPerson(n.Raw) {
		return types.Identity{}, false
	}
	return Organization(n.Raw), true
}

// surnames recognizes names that contain a known surname from the curated
// East and Southeast Asian tables and splits them by script.
type surnames struct{}

func (surnames) TryClassify(_ context.Context, n Name) (types.Identity, bool) {
	if n.Raw == "" {
		return types.Identity{}, false
	}
	if hasCJK(n.Raw) && !hasLatin(n.Raw) {
		given, family, ok := splitCJK(n.Raw)
		if !ok {
			return types.Identity{}, false
		}
		return Person(given, family), true
	}
	cleaned := Clean(n.Raw)
	tokens := strings.Fields(cleaned)
	if len(tokens) < 2 || len(tokens) > 3 {
		return types.Identity{}, false
	}
	for _, t := range tokens {
		if !nameShaped(t) && !isAllUpper(t) {
			return types.Identity{}, false
		}
	}
	first, last := tokens[0], tokens[len(tokens)-1]
	switch {
	case isAllUpper(first) && utf8.RuneCountInString(first) > 1 && romanizedSurnames[strings.ToLower(first)] && !isAllUpper(last):
		// "SHIBATA Hiroshi": capitals mark a leading family name.
		return Person(capitalizeGiven(tokens[1:]), capitalizeFamily([]string{strings.ToLower(first)})), true
	case romanizedSurnames[strings.ToLower(last)], romanizedSurnames[strings.ToLower(first)]:
		given, family := SplitLatin(cleaned)
		return Person(given, family), true
	}
	return types.Identity{}, false
}

// splitCJK splits a Han or Hangul name written family-name first without
// spaces.
func splitCJK(raw string) (given, family string, ok bool) {
	s := strings.Join(strings.Fields(raw), "")
	runes := []rune(s)
	if len(runes) < 2 || len(runes) > 6 {
		return "", "", false
	}
	for _, n := range []int{3, 2} {
		if len(runes) > n && compoundSurnames[string(runes[:n])] {
			return string(runes[n:]), string(runes[:n]), true
		}
	}
	if hanSurnames[string(runes[:1])] {
		return string(runes[1:]), string(runes[:1]), true
	}
	return "", "", false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// singleToken treats a lone word as a handle or brand.
type singleToken struct{}

func (singleToken) TryClassify(_ context.Context, n Name) (types.Identity, bool) {
	if n.Raw == "" || len(strings.Fields(n.Raw)) != 1 {
		return types.Identity{}, false
	}
	return Organization(n.Raw), true
}

// entities asks the entity classifier and splits confident PERSON labels.
type entities struct {
	classifier EntityClassifier
	threshold  float64
	log        logging.Logger
}

func (s entities) TryClassify(ctx context.Context, n Name) (types.Identity, bool) {
	cleaned := Clean(n.Raw)
	if cleaned == "" {
		return types.Identity{}, false
	}
	e, err := s.classifier.ClassifyEntity(ctx, cleaned)
	if err != nil {
		s.log.Warn("entity classification of %q unavailable: %v", cleaned, err)
		return types.Identity{}, false
	}
	if e.Label != LabelPerson || e.Confidence < s.threshold {
		return Organization(n.Raw), true
	}
	if !hasLatin(cleaned) {
		return Person("", cleaned), true
	}
	given, family := SplitLatin(cleaned)
	if family == "" {
		return Organization(n.Raw), true
	}
	return Person(given, family), true
}
