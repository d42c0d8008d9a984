// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

var accountURL = regexp.MustCompile(`^https?://(?:www\.)?([^/\s]+)/([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)/?$`)

// entities converts person or organization values from codemeta.json or
// CITATION.cff. Values of an unknown shape are skipped; they are an error
// only when nothing else could be used.
func (s *state) entities(vals []any, role string) ([]types.Creator, error) {
	var out []types.Creator
	var bad []error
	for _, v := range vals {
		c, ok, err := s.entity(v)
		if err != nil {
			bad = append(bad, err)
			continue
		}
		if !ok {
			continue
		}
		if role != "" {
			c.Role = &types.VocabRef{ID: role}
		}
		out = append(out, c)
	}
	if len(out) == 0 && len(bad) > 0 {
		return nil, errors.Join(bad...)
	}
	for _, err := range bad {
		s.log.Verbose("skipping entity: %v", err)
	}
	return out, nil
}

func (s *state) entity(v any) (types.Creator, bool, error) {
	if v == nil {
		return types.Creator{}, false, nil
	}
	if raw, ok := v.(string); ok {
		return s.entityFromText(raw)
	}
	if t, ok := source.AsTree(v); ok {
		c, ok := s.entityFromTree(t)
		return c, ok, nil
	}
	return types.Creator{}, false, fmt.Errorf("unexpected person or organization value of type %T", v)
}

// entityFromText resolves a bare name, identifier or account URL on the
// release's forge.
func (s *state) entityFromText(raw string) (types.Creator, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Creator{}, false, nil
	}
	if m := accountURL.FindStringSubmatch(raw); m != nil && s.e.fetcher != nil && strings.EqualFold(m[1], s.loc.WebHost()) {
		acct, err := s.e.fetcher.Account(s.ctx, m[2])
		if err == nil {
			return s.accountCreator(*acct), true, nil
		}
		s.log.Verbose("account %s: %v", m[2], err)
	}
	return types.Creator{PersonOrOrg: s.e.names.ResolveString(s.ctx, raw)}, true, nil
}

// entityFromTree handles the structured forms: CFF persons and entities
// and schema.org Person and Organization objects.
func (s *state) entityFromTree(t source.Tree) (types.Creator, bool) {
	kind := strings.ToLower(firstText(t, "@type", "type"))
	given := firstText(t, "given-names", "givenName")
	family := firstText(t, "family-names", "familyName")
	if p := t.String("name-particle"); p != "" && family != "" {
		family = p + " " + family
	}
	name := line(firstText(t, "name", "legalName", "alias"))
	idText := firstText(t, "@id", "orcid", "ror", "identifier")
	orcid, hasORCID := identifier.RecognizeAs(idText, identifier.SchemeORCID)
	ror, hasROR := identifier.RecognizeAs(idText, identifier.SchemeROR)
	isni, hasISNI := identifier.RecognizeAs(idText, identifier.SchemeISNI)

	var ident types.Identity
	switch {
	case kind == "organization" || kind == "organisation" || (kind == "" && hasROR && given == "" && family == ""):
		if name == "" && hasROR {
			name = s.orgName(ror.Normalized)
		}
		if name == "" {
			return types.Creator{}, false
		}
		ident = names.Organization(name)
	case given != "" || family != "":
		ident = s.e.names.Resolve(s.ctx, names.Name{Given: given, Family: family})
	case hasORCID && s.personName(orcid.Normalized, &ident):
	case name != "" && kind != "person":
		// A CFF entity, or an untyped object with only a name, is an
		// organization. Splitting it into a person is the worse error.
		ident = s.e.names.Resolve(s.ctx, names.Name{Raw: name, Organization: true})
	case name != "":
		ident = s.e.names.Resolve(s.ctx, names.Name{Raw: name})
		if !ident.IsPerson() {
			g, f := names.SplitLatin(names.Clean(name))
			if f == "" {
				g, f = "", name
			}
			ident = names.Person(g, f)
		}
	default:
		return types.Creator{}, false
	}

	switch {
	case ident.IsPerson() && hasORCID:
		ident.Identifiers = appendIdentifier(ident.Identifiers, orcid)
	case ident.IsPerson() && hasISNI:
		ident.Identifiers = appendIdentifier(ident.Identifiers, isni)
	case !ident.IsPerson() && hasROR:
		ident.Identifiers = appendIdentifier(ident.Identifiers, ror)
	}
	c := types.Creator{PersonOrOrg: ident}
	if ident.IsPerson() {
		c.Affiliations = s.affiliations(t.List("affiliation"))
	}
	return c, true
}

func appendIdentifier(ids []types.Identifier, r identifier.Recognized) []types.Identifier {
	id := types.Identifier{Scheme: r.Scheme.String(), Identifier: r.Normalized}
	for _, have := range ids {
		if have == id {
			return ids
		}
	}
	return append(ids, id)
}

func (s *state) affiliations(vals []any) []types.Affiliation {
	var out []types.Affiliation
	for _, v := range vals {
		var a types.Affiliation
		if t, ok := source.AsTree(v); ok {
			a.Name = line(firstText(t, "name", "legalName"))
			if ror, ok := identifier.RecognizeAs(firstText(t, "@id", "ror", "identifier"), identifier.SchemeROR); ok {
				a.ID = ror.Normalized
				if a.Name == "" {
					a.Name = s.orgName(ror.Normalized)
				}
			}
		} else {
			a.Name = line(source.AsString(v))
		}
		if a.Name != "" || a.ID != "" {
			out = append(out, a)
		}
	}
	return record.Dedup(out, func(a types.Affiliation) string {
		if a.ID != "" {
			return "ror:" + a.ID
		}
		return strings.ToLower(a.Name)
	})
}

// accountCreator turns a forge account into a creator. A user without a
// display name is a person known only by login.
func (s *state) accountCreator(acct types.Account) types.Creator {
	var ident types.Identity
	switch {
	case strings.TrimSpace(acct.Name) != "":
		ident = s.e.names.Resolve(s.ctx, names.Name{Raw: acct.Name, Organization: acct.IsOrganization()})
	case acct.IsOrganization():
		ident = names.Organization(acct.Login)
	default:
		ident = names.Person("", acct.Login)
	}
	c := types.Creator{PersonOrOrg: ident}
	if company := strings.TrimSpace(acct.Company); company != "" && ident.IsPerson() {
		c.Affiliations = []types.Affiliation{{Name: s.companyName(company)}}
	}
	return c
}

// companyName expands an "@org" company to the organization's name.
func (s *state) companyName(company string) string {
	login, ok := strings.CutPrefix(company, "@")
	if !ok {
		return company
	}
	if s.e.fetcher != nil {
		if acct, err := s.e.fetcher.Account(s.ctx, login); err == nil && acct.Name != "" {
			return acct.Name
		}
	}
	return login
}

// accountCreators converts forge accounts, skipping bots.
func (s *state) accountCreators(accts []types.Account, role string) []types.Creator {
	var out []types.Creator
	for _, a := range accts {
		if a.IsBot() {
			continue
		}
		c := s.accountCreator(a)
		if role != "" {
			c.Role = &types.VocabRef{ID: role}
		}
		out = append(out, c)
	}
	return out
}

func (s *state) orgName(ror string) string {
	if s.e.orgs == nil {
		return ""
	}
	name, err := s.e.orgs.LookupOrganizationName(s.ctx, ror)
	if err != nil {
		s.log.Verbose("ROR %s: %v", ror, err)
		return ""
	}
	return name
}

// personName looks up an ORCID and stores the person in ident.
func (s *state) personName(orcid string, ident *types.Identity) bool {
	if s.e.people == nil {
		return false
	}
	given, family, err := s.e.people.LookupPersonName(s.ctx, orcid)
	if err != nil {
		s.log.Verbose("ORCID %s: %v", orcid, err)
		return false
	}
	if family == "" {
		given, family = "", given
	}
	if family == "" {
		return false
	}
	*ident = names.Person(given, family)
	return true
}

// withoutCreators drops the entries whose identity is already a creator.
func (s *state) withoutCreators(cs []types.Creator) []types.Creator {
	creators, _ := s.value(record.FieldCreators).([]types.Creator)
	seen := make(map[string]bool, len(creators))
	for _, c := range creators {
		seen[record.CreatorKey(c)] = true
	}
	var out []types.Creator
	for _, c := range cs {
		if !seen[record.CreatorKey(c)] {
			out = append(out, c)
		}
	}
	return out
}
