// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/license"
	"github.com/caltechlibrary/iga/internal/markup"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

const noDescription = "(No description provided.)"

// fieldTable returns the policy for every record field, in output order.
// The order of a field's probes is its source priority.
func fieldTable() []Policy {
	return []Policy{
		firstOf[string]{
			field: record.FieldTitle,
			probes: []probe[string]{
				{label: "codemeta.json name", get: codemetaText("name")},
				{label: "CITATION.cff title", get: cffText("title")},
				{label: "repository name", get: repoFullName},
			},
			final: titleWithVersion,
		},
		firstOf[[]types.Creator]{
			field: record.FieldCreators,
			probes: []probe[[]types.Creator]{
				{label: "codemeta.json author", get: func(s *state) ([]types.Creator, error) {
					return s.entities(s.b.CodeMeta.List("author"), "")
				}},
				{label: "CITATION.cff authors", get: func(s *state) ([]types.Creator, error) {
					return s.entities(s.b.CFF.List("authors"), "")
				}},
				{label: "release author", get: releaseAuthor},
				{label: "repository owner", get: repoOwner},
			},
		},
		mergeOf[[]types.Creator]{
			field: record.FieldContributors,
			probes: []probe[[]types.Creator]{
				{label: "CITATION.cff contact", get: cffEntities("contact", "contactperson")},
				{label: "codemeta.json sponsor", get: codemetaEntities("sponsor", "sponsor")},
				{label: "codemeta.json producer", get: codemetaEntities("producer", "producer")},
				{label: "codemeta.json editor", get: codemetaEntities("editor", "editor")},
				{label: "codemeta.json copyrightHolder", get: codemetaEntities("copyrightHolder", "rightsholder")},
				{label: "codemeta.json maintainer", get: notCreators(codemetaEntities("maintainer", "other"))},
				{label: "codemeta.json contributor", get: notCreators(codemetaEntities("contributor", "other"))},
				{
					label: "repository contributors",
					when:  func(s *state) bool { return s.includeAll && !s.b.CodeMeta.Has("contributor") },
					get: notCreators(func(s *state) ([]types.Creator, error) {
						return s.accountCreators(s.repo().Contributors, "other"), nil
					}),
				},
			},
			merge: func(_ *state, found [][]types.Creator) []types.Creator {
				return record.Dedup(flatten(found), record.ContributorKey)
			},
		},
		mergeOf[[]types.Date]{
			field: record.FieldDates,
			probes: []probe[[]types.Date]{
				{label: "release date", get: availableDate},
				{label: "codemeta.json dateCreated", get: codemetaDate("dateCreated", "created")},
				{label: "repository creation date", when: includeAll, get: func(s *state) ([]types.Date, error) {
					return dateEntry(dayOf(s.repo().CreatedAt), "created")
				}},
				{label: "codemeta.json dateModified", get: codemetaDate("dateModified", "updated")},
				{label: "repository update date", when: includeAll, get: func(s *state) ([]types.Date, error) {
					return dateEntry(dayOf(s.repo().UpdatedAt), "updated")
				}},
				{label: "codemeta.json copyrightYear", get: codemetaDate("copyrightYear", "copyrighted")},
			},
			merge: func(_ *state, found [][]types.Date) []types.Date {
				return record.Dedup(flatten(found), record.DateKey)
			},
		},
		firstOf[string]{
			field: record.FieldDescription,
			probes: []probe[string]{
				{label: "release notes", get: func(s *state) (string, error) { return strings.TrimSpace(s.release().Body), nil }},
				{label: "codemeta.json releaseNotes", get: notURL(codemetaText("releaseNotes"))},
				{label: "codemeta.json description", get: codemetaText("description")},
				{label: "CITATION.cff abstract", get: cffText("abstract")},
				{label: "repository description", get: func(s *state) (string, error) { return s.repo().Description, nil }},
			},
			fallback: func(*state) string { return noDescription },
			final:    renderDescription,
		},
		unionOf[types.Description]{
			field: record.FieldAdditionalDescriptions,
			probes: []probe[[]types.Description]{
				{label: "codemeta.json releaseNotes", get: extraDescription(codemetaText("releaseNotes"), "other")},
				{label: "codemeta.json description", get: extraDescription(codemetaText("description"), "other")},
				{label: "CITATION.cff abstract", get: extraDescription(cffText("abstract"), "other")},
				{label: "repository description", when: includeAll, get: extraDescription(func(s *state) (string, error) {
					return s.repo().Description, nil
				}, "other")},
				{label: "codemeta.json readme", get: extraDescription(codemetaText("readme"), "technical-info")},
			},
			key: record.DescriptionKey,
		},
		unionOf[types.TitleEntry]{
			field: record.FieldAdditionalTitles,
			probes: []probe[[]types.TitleEntry]{
				{
					label: "CITATION.cff title",
					when:  func(s *state) bool { return s.b.CodeMeta.Has("name") },
					get:   extraTitle(cffText("title")),
				},
				{
					label: "repository name",
					when:  func(s *state) bool { return s.includeAll && (s.b.CodeMeta.Has("name") || s.b.CFF.Has("title")) },
					get:   extraTitle(repoFullName),
				},
			},
			key: record.TitleKey,
		},
		firstOf[[]types.Funding]{
			field: record.FieldFunding,
			probes: []probe[[]types.Funding]{
				{label: "codemeta.json funding", get: funding},
			},
		},
		unionOf[types.Identifier]{
			field: record.FieldIdentifiers,
			probes: []probe[[]types.Identifier]{
				{label: "codemeta.json identifier", get: func(s *state) ([]types.Identifier, error) {
					return identifiersOf(s.b.CodeMeta.List("identifier")), nil
				}},
				{label: "CITATION.cff identifiers", get: func(s *state) ([]types.Identifier, error) {
					return identifiersOf(s.b.CFF.List("identifiers")), nil
				}},
				{label: "CITATION.cff doi", get: func(s *state) ([]types.Identifier, error) {
					return identifiersOf(s.b.CFF.List("doi")), nil
				}},
			},
			key: record.IdentifierKey,
		},
		firstOf[[]types.VocabRef]{
			field: record.FieldLanguages,
			probes: []probe[[]types.VocabRef]{
				{label: "default language", get: func(*state) ([]types.VocabRef, error) {
					return []types.VocabRef{{ID: "eng"}}, nil
				}},
			},
		},
		firstOf[string]{
			field: record.FieldPublicationDate,
			probes: []probe[string]{
				{label: "codemeta.json datePublished", get: codemetaDay("datePublished")},
				{label: "CITATION.cff date-released", get: cffDay("date-released")},
				{label: "release date", get: func(s *state) (string, error) { return dayOf(s.release().PublishedAt), nil }},
			},
		},
		firstOf[string]{
			field: record.FieldPublisher,
			probes: []probe[string]{
				{label: "configuration", get: func(s *state) (string, error) { return s.e.cfg.Publisher, nil }},
			},
			fallback: func(*state) string { return "InvenioRDM" },
		},
		unionOf[types.Reference]{
			field: record.FieldReferences,
			probes: []probe[[]types.Reference]{
				{label: "codemeta.json referencePublication", get: referencesFrom(codemetaReferenceIDs)},
				{label: "CITATION.cff references", get: referencesFrom(cffReferenceIDs)},
			},
			key:   record.ReferenceKey,
			final: sortReferences,
		},
		unionOf[types.RelatedIdentifier]{
			field: record.FieldRelatedIdentifiers,
			probes: []probe[[]types.RelatedIdentifier]{
				{label: "release page", get: releasePage},
				{label: "codemeta.json codeRepository", get: codemetaLinks("codeRepository", "isderivedfrom")},
				{label: "CITATION.cff repository-code", get: cffLinks("repository-code", "isderivedfrom")},
				{label: "repository page", get: func(s *state) ([]types.RelatedIdentifier, error) {
					return related("isderivedfrom", s.repoURL()), nil
				}},
				{label: "codemeta.json releaseNotes", get: codemetaLinks("releaseNotes", "isdescribedby")},
				{label: "codemeta.json url", get: codemetaLinks("url", "isdescribedby")},
				{label: "CITATION.cff url", get: cffLinks("url", "isdescribedby")},
				{label: "repository homepage", when: includeAll, get: func(s *state) ([]types.RelatedIdentifier, error) {
					return related("isdescribedby", s.repo().Homepage), nil
				}},
				{label: "codemeta.json sameAs", get: codemetaLinks("sameAs", "isversionof")},
				{label: "codemeta.json downloadUrl", get: codemetaLinks("downloadUrl", "isvariantformof")},
				{label: "CITATION.cff repository-artifact", get: cffLinks("repository-artifact", "isvariantformof")},
				{label: "codemeta.json installUrl", get: codemetaLinks("installUrl", "isvariantformof")},
				{label: "codemeta.json softwareHelp", get: codemetaLinks("softwareHelp", "isdocumentedby")},
				{label: "pages site", when: func(s *state) bool { return s.includeAll && s.repo().HasPages }, get: pagesSite},
				{label: "codemeta.json issueTracker", get: codemetaLinks("issueTracker", "issupplementedby")},
				{label: "repository issues", when: func(s *state) bool { return s.includeAll && s.repo().HasIssues }, get: issuesPage},
				{label: "codemeta.json relatedLink", get: codemetaLinks("relatedLink", "references")},
				{label: "reference publications", get: referencedBy},
			},
			key: record.RelatedKey,
		},
		firstOf[*types.VocabRef]{
			field: record.FieldResourceType,
			probes: []probe[*types.VocabRef]{
				{label: "CITATION.cff type", get: func(s *state) (*types.VocabRef, error) {
					if strings.EqualFold(s.b.CFF.String("type"), "dataset") {
						return &types.VocabRef{ID: "dataset"}, nil
					}
					return nil, nil
				}},
			},
			fallback: func(*state) *types.VocabRef { return &types.VocabRef{ID: "software"} },
		},
		firstOf[[]types.Right]{
			field: record.FieldRights,
			probes: []probe[[]types.Right]{
				{label: "codemeta.json license", get: licenseFrom(func(s *state) []license.Candidate {
					return licenseCandidates(s.b.CodeMeta.List("license"))
				})},
				{label: "CITATION.cff license", get: licenseFrom(func(s *state) []license.Candidate {
					return licenseCandidates(s.b.CFF.List("license"))
				})},
				{label: "CITATION.cff license-url", get: licenseFrom(func(s *state) []license.Candidate {
					return []license.Candidate{{URL: s.b.CFF.String("license-url")}}
				})},
				{label: "repository license", get: licenseFrom(repoLicense)},
				{label: "repository license file", get: licenseFrom(licenseFileGuess)},
			},
		},
		unionOf[types.Subject]{
			field: record.FieldSubjects,
			probes: []probe[[]types.Subject]{
				{label: "codemeta.json keywords", get: func(s *state) ([]types.Subject, error) {
					var words []string
					for _, k := range s.b.CodeMeta.Strings("keywords") {
						words = append(words, splitKeywords(k)...)
					}
					return subjects(words...), nil
				}},
				{label: "CITATION.cff keywords", get: func(s *state) ([]types.Subject, error) {
					return subjects(s.b.CFF.Strings("keywords")...), nil
				}},
				{label: "codemeta.json programmingLanguage", get: func(s *state) ([]types.Subject, error) {
					return subjects(nameValues(s.b.CodeMeta, "programmingLanguage")...), nil
				}},
				{label: "repository topics", when: includeAll, get: func(s *state) ([]types.Subject, error) {
					return subjects(s.repo().Topics...), nil
				}},
				{label: "repository languages", when: includeAll, get: func(s *state) ([]types.Subject, error) {
					return subjects(s.repo().Languages...), nil
				}},
				{label: "forge", get: func(s *state) ([]types.Subject, error) { return subjects(s.loc.ForgeName()), nil }},
			},
			key:   record.SubjectKey,
			final: sortSubjects,
		},
		firstOf[string]{
			field: record.FieldVersion,
			probes: []probe[string]{
				{label: "release tag", get: func(s *state) (string, error) { return versionOf(s.release().TagName), nil }},
				{label: "requested tag", get: func(s *state) (string, error) { return versionOf(s.loc.Tag), nil }},
			},
		},
	}
}

func includeAll(s *state) bool { return s.includeAll }

func flatten[E any](lists [][]E) []E {
	var out []E
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func repoFullName(s *state) (string, error) {
	if s.b.Repo != nil && s.b.Repo.FullName != "" {
		return s.b.Repo.FullName, nil
	}
	if s.loc.Account == "" || s.loc.Repo == "" {
		return "", nil
	}
	return s.loc.FullName(), nil
}

// titleWithVersion appends the release name, or else its tag.
func titleWithVersion(s *state, title string) string {
	title = line(title)
	suffix := line(s.release().Name)
	if suffix == "" {
		suffix = s.release().TagName
	}
	if suffix == "" {
		suffix = s.loc.Tag
	}
	if suffix == "" {
		return title
	}
	return title + " – " + suffix
}

func releaseAuthor(s *state) ([]types.Creator, error) {
	a := s.release().Author
	if a == nil || a.Login == "" || a.IsBot() {
		return nil, nil
	}
	return []types.Creator{s.accountCreator(*a)}, nil
}

func repoOwner(s *state) ([]types.Creator, error) {
	a := s.repo().Owner
	if a == nil || a.Login == "" {
		return nil, nil
	}
	return []types.Creator{s.accountCreator(*a)}, nil
}

func codemetaEntities(key, role string) func(*state) ([]types.Creator, error) {
	return func(s *state) ([]types.Creator, error) { return s.entities(s.b.CodeMeta.List(key), role) }
}

func cffEntities(key, role string) func(*state) ([]types.Creator, error) {
	return func(s *state) ([]types.Creator, error) { return s.entities(s.b.CFF.List(key), role) }
}

func notCreators(get func(*state) ([]types.Creator, error)) func(*state) ([]types.Creator, error) {
	return func(s *state) ([]types.Creator, error) {
		cs, err := get(s)
		if err != nil {
			return nil, err
		}
		return s.withoutCreators(cs), nil
	}
}

// availableDate is the release date when it is not the publication date.
func availableDate(s *state) ([]types.Date, error) {
	day := dayOf(s.release().PublishedAt)
	if day == "" || day == s.text(record.FieldPublicationDate) {
		return nil, nil
	}
	return dateEntry(day, "available")
}

func notURL(get func(*state) (string, error)) func(*state) (string, error) {
	return func(s *state) (string, error) {
		v, err := get(s)
		if err != nil || identifier.IsURL(v) {
			return "", err
		}
		return v, nil
	}
}

func renderDescription(s *state, desc string) string {
	if !s.e.cfg.HTMLDescription || desc == noDescription || markup.IsHTML(desc) {
		return desc
	}
	html, err := markup.ToHTML(desc)
	if err != nil {
		s.warn(FieldWarning{Field: record.FieldDescription, Source: "markdown rendering", Err: err})
		return desc
	}
	return html
}

// extraDescription keeps a text that differs from the main description. A
// URL becomes a sentence linking to it.
func extraDescription(get func(*state) (string, error), kind string) func(*state) ([]types.Description, error) {
	return func(s *state) ([]types.Description, error) {
		v, err := get(s)
		if err != nil || v == "" {
			return nil, err
		}
		if strings.EqualFold(v, s.text(record.FieldDescription)) {
			return nil, nil
		}
		if identifier.IsURL(v) {
			v = fmt.Sprintf("Additional information is available at <a href='%s'>%s</a>", v, v)
		}
		return []types.Description{{
			Description: v,
			Type:        types.VocabRef{ID: kind, Title: map[string]string{"en": descriptionTitles[kind]}},
			Lang:        &types.VocabRef{ID: "eng"},
		}}, nil
	}
}

var descriptionTitles = map[string]string{"other": "Other", "technical-info": "Technical info"}

// extraTitle keeps a title that differs from the main one.
func extraTitle(get func(*state) (string, error)) func(*state) ([]types.TitleEntry, error) {
	return func(s *state) ([]types.TitleEntry, error) {
		v, err := get(s)
		if v = line(v); err != nil || v == "" {
			return nil, err
		}
		if strings.EqualFold(v, line(s.text(record.FieldTitle))) {
			return nil, nil
		}
		return []types.TitleEntry{{
			Title: v,
			Type:  types.VocabRef{ID: "alternative-title", Title: map[string]string{"en": "Alternative title"}},
			Lang:  &types.VocabRef{ID: "eng"},
		}}, nil
	}
}

var identifierSchemes = map[identifier.Scheme]bool{
	identifier.SchemeARK: true, identifier.SchemeArxiv: true, identifier.SchemeDOI: true,
	identifier.SchemeHandle: true, identifier.SchemeISBN: true, identifier.SchemeISSN: true,
	identifier.SchemeLSID: true, identifier.SchemePMID: true, identifier.SchemePURL: true,
	identifier.SchemeSWH: true, identifier.SchemeURL: true, identifier.SchemeURN: true,
}

// identifiersOf recognizes identifier values given as text or as
// {type, value} objects.
func identifiersOf(vals []any) []types.Identifier {
	var out []types.Identifier
	for _, v := range vals {
		raw, kind := source.AsString(v), ""
		if t, ok := source.AsTree(v); ok {
			raw = firstText(t, "value", "@id", "propertyID")
			kind = strings.ToLower(firstText(t, "type", "@type"))
		}
		r, ok := identifier.Recognize(raw)
		switch {
		case ok && identifierSchemes[r.Scheme]:
			if r.Scheme == identifier.SchemeURL && !allowedURL(r.Normalized) {
				continue
			}
			out = append(out, types.Identifier{Scheme: r.Scheme.String(), Identifier: r.Normalized})
		case !ok && raw != "" && identifierSchemes[identifier.Scheme(kind)] && kind != "url":
			out = append(out, types.Identifier{Scheme: kind, Identifier: raw})
		}
	}
	return out
}

func codemetaLinks(key, relation string) func(*state) ([]types.RelatedIdentifier, error) {
	return func(s *state) ([]types.RelatedIdentifier, error) {
		return related(relation, urlValues(s.b.CodeMeta, key)...), nil
	}
}

func cffLinks(key, relation string) func(*state) ([]types.RelatedIdentifier, error) {
	return func(s *state) ([]types.RelatedIdentifier, error) {
		return related(relation, urlValues(s.b.CFF, key)...), nil
	}
}

func releasePage(s *state) ([]types.RelatedIdentifier, error) {
	u := s.release().HTMLURL
	if u == "" && s.loc.Tag != "" {
		u = s.loc.ReleaseURL()
	}
	out := related("isidenticalto", u)
	for i := range out {
		out[i].ResourceType = &types.VocabRef{ID: "software"}
	}
	return out, nil
}

func pagesSite(s *state) ([]types.RelatedIdentifier, error) {
	owner, name := s.loc.Account, s.loc.Repo
	if o := s.repo().Owner; o != nil && o.Login != "" {
		owner = o.Login
	}
	if s.repo().Name != "" {
		name = s.repo().Name
	}
	return related("isdocumentedby", s.loc.PagesURL(owner, name)), nil
}

func issuesPage(s *state) ([]types.RelatedIdentifier, error) {
	if s.repoURL() == "" {
		return nil, nil
	}
	return related("issupplementedby", s.loc.IssuesURL(s.repoURL())), nil
}

// licenseCandidates reads license values given as names, URLs or
// CreativeWork objects.
func licenseCandidates(vals []any) []license.Candidate {
	var out []license.Candidate
	for _, v := range vals {
		if t, ok := source.AsTree(v); ok {
			out = append(out, license.Candidate{
				Text: firstText(t, "identifier", "name"),
				URL:  firstText(t, "url", "@id"),
			})
			continue
		}
		raw := source.AsString(v)
		if identifier.IsURL(raw) {
			out = append(out, license.Candidate{URL: raw})
		} else if raw != "" {
			out = append(out, license.Candidate{Text: raw})
		}
	}
	return out
}

func repoLicense(s *state) []license.Candidate {
	l := s.repo().License
	if l == nil || l.SPDXID == "" || l.SPDXID == "NOASSERTION" || strings.EqualFold(l.Key, "other") {
		return nil
	}
	return []license.Candidate{{Text: l.SPDXID}, {Text: l.Name}}
}

// licenseFileGuess points at a license file at the top of the repository.
func licenseFileGuess(s *state) []license.Candidate {
	base := s.repoURL()
	if base == "" {
		return nil
	}
	for _, name := range s.b.Files {
		if licenseFile.MatchString(name) {
			return []license.Candidate{{URL: s.loc.FileURL(base, name), File: true}}
		}
	}
	return nil
}

func licenseFrom(candidates func(*state) []license.Candidate) func(*state) ([]types.Right, error) {
	return func(s *state) ([]types.Right, error) {
		cs := candidates(s)
		if len(cs) == 0 {
			return nil, nil
		}
		lic, ok := license.Resolve(cs)
		if !ok {
			return nil, nil
		}
		return []types.Right{s.right(lic)}, nil
	}
}

// right renders a license. Ids the server vocabulary does not list are
// given as title and link.
func (s *state) right(lic license.License) types.Right {
	id := strings.ToLower(lic.ID)
	if id != "" && s.e.knownLicense(id) {
		return types.Right{ID: id, Title: map[string]string{"en": lic.Title}}
	}
	return types.Right{Title: map[string]string{"en": lic.Title}, Link: lic.URL}
}

func sortSubjects(_ *state, subs []types.Subject) []types.Subject {
	sort.SliceStable(subs, func(i, j int) bool {
		a, b := strings.ToLower(subs[i].Subject), strings.ToLower(subs[j].Subject)
		if a != b {
			return a < b
		}
		return subs[i].Subject < subs[j].Subject
	})
	return subs
}
