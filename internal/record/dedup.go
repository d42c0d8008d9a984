// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"strings"

	"github.com/caltechlibrary/iga/pkg/types"
)

// Dedup returns items without later entries whose key repeats an earlier
// one. Entries with an empty key are dropped. The result is nil when no
// entries remain.
func Dedup[T any](items []T, key func(T) string) []T {
	var out []T
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := key(it)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// IdentityKey is the equality key of a person or organization: its ORCID
// or ROR id when it has one, else its kind and name.
func IdentityKey(id types.Identity) string {
	for _, i := range id.Identifiers {
		if i.Scheme == "orcid" || i.Scheme == "ror" {
			return i.Scheme + ":" + fold(i.Identifier)
		}
	}
	var name string
	if id.IsPerson() && (id.GivenName != "" || id.FamilyName != "") {
		name = fold(id.GivenName) + "|" + fold(id.FamilyName)
	} else {
		name = fold(id.FullName())
	}
	if name == "" {
		return ""
	}
	return string(id.Kind) + ":" + name
}

// CreatorKey compares creators by identity.
func CreatorKey(c types.Creator) string { return IdentityKey(c.PersonOrOrg) }

// ContributorKey compares contributors by identity and role.
func ContributorKey(c types.Creator) string {
	k := IdentityKey(c.PersonOrOrg)
	if k == "" {
		return ""
	}
	if c.Role != nil {
		k += "#" + c.Role.ID
	}
	return k
}

// IdentifierKey compares identifiers by scheme and value.
func IdentifierKey(i types.Identifier) string {
	if strings.TrimSpace(i.Identifier) == "" {
		return ""
	}
	return fold(i.Scheme) + ":" + fold(i.Identifier)
}

// RelatedKey compares related identifiers by the resource they point to.
// URLs that differ only in scheme, "www." or a trailing slash are equal.
func RelatedKey(r types.RelatedIdentifier) string {
	if strings.TrimSpace(r.Identifier) == "" {
		return ""
	}
	if r.Scheme == "url" {
		return "url:" + URLKey(r.Identifier)
	}
	return fold(r.Scheme) + ":" + fold(r.Identifier)
}

// URLKey loosely normalizes a URL for comparison.
func URLKey(u string) string {
	u = fold(u)
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimRight(u, "/")
}

func DescriptionKey(d types.Description) string { return fold(d.Description) }
func TitleKey(t types.TitleEntry) string        { return fold(t.Title) }
func SubjectKey(s types.Subject) string         { return fold(s.Subject) }
func VocabKey(v types.VocabRef) string          { return fold(v.ID) }

// DateKey allows one date per date type.
func DateKey(d types.Date) string {
	if d.Date == "" {
		return ""
	}
	return d.Type.ID
}

// ReferenceKey compares references by identifier, then by text.
func ReferenceKey(r types.Reference) string {
	if r.Identifier != "" {
		return "id:" + fold(r.Identifier)
	}
	return fold(r.Reference)
}

// RightKey compares rights by license id, then by link and title.
func RightKey(r types.Right) string {
	if r.ID != "" {
		return "id:" + fold(r.ID)
	}
	return fold(r.Link) + "|" + fold(r.Title["en"])
}

// FundingKey compares funding entries by funder and award.
func FundingKey(f types.Funding) string {
	k := fold(f.Funder.ID) + "|" + fold(f.Funder.Name)
	if k == "|" {
		return ""
	}
	if f.Award != nil {
		k += "|" + fold(f.Award.Number)
	}
	return k
}
