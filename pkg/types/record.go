// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the iga record pipeline:
// forge source data, resolved identities, and the InvenioRDM metadata record.
package types

// EntityKind tells persons apart from organizations. The values are the
// InvenioRDM person_or_org type names.
type EntityKind string

const (
	KindPerson       EntityKind = "personal"
	KindOrganization EntityKind = "organizational"
)

// Identifier is a typed persistent identifier attached to an identity or to
// the record itself.
type Identifier struct {
	Scheme     string `json:"scheme" yaml:"scheme"`
	Identifier string `json:"identifier" yaml:"identifier"`
}

// Identity is a resolved person or organization.
//
// A person carries GivenName and FamilyName, or FamilyName alone when the
// name could not be split. An organization carries Name only.
type Identity struct {
	Kind        EntityKind   `json:"type" yaml:"type"`
	GivenName   string       `json:"given_name,omitempty" yaml:"given_name,omitempty"`
	FamilyName  string       `json:"family_name,omitempty" yaml:"family_name,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Identifiers []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
}

// IsPerson reports whether the identity is a person.
func (id Identity) IsPerson() bool { return id.Kind == KindPerson }

// FullName returns the display form of the identity's name.
func (id Identity) FullName() string {
	if id.Kind == KindOrganization || id.Name != "" {
		return id.Name
	}
	if id.GivenName == "" {
		return id.FamilyName
	}
	if id.FamilyName == "" {
		return id.GivenName
	}
	return id.GivenName + " " + id.FamilyName
}

// Affiliation names an organization a creator belongs to.
type Affiliation struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// VocabRef is a reference into a controlled vocabulary, optionally with a
// display title keyed by language.
type VocabRef struct {
	ID    string            `json:"id" yaml:"id"`
	Title map[string]string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Creator is an entry of the creators or contributors list.
type Creator struct {
	PersonOrOrg  Identity      `json:"person_or_org" yaml:"person_or_org"`
	Affiliations []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Role         *VocabRef     `json:"role,omitempty" yaml:"role,omitempty"`
}

// TitleEntry is an additional title.
type TitleEntry struct {
	Title string    `json:"title" yaml:"title"`
	Type  VocabRef  `json:"type" yaml:"type"`
	Lang  *VocabRef `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// Description is an additional description.
type Description struct {
	Description string    `json:"description" yaml:"description"`
	Type        VocabRef  `json:"type" yaml:"type"`
	Lang        *VocabRef `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// Date is a typed date entry. Dates are YYYY-MM-DD.
type Date struct {
	Date        string   `json:"date" yaml:"date"`
	Type        VocabRef `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Right is a license or other rights statement.
type Right struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title       map[string]string `json:"title,omitempty" yaml:"title,omitempty"`
	Description map[string]string `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string            `json:"link,omitempty" yaml:"link,omitempty"`
}

// RelatedIdentifier links the record to another resource.
type RelatedIdentifier struct {
	Identifier   string    `json:"identifier" yaml:"identifier"`
	Scheme       string    `json:"scheme" yaml:"scheme"`
	RelationType VocabRef  `json:"relation_type" yaml:"relation_type"`
	ResourceType *VocabRef `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
}

// Reference is a formatted bibliographic reference.
type Reference struct {
	Reference  string `json:"reference" yaml:"reference"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Scheme     string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
}

// Subject is a free-text keyword.
type Subject struct {
	Subject string `json:"subject" yaml:"subject"`
}

// Award describes a grant attached to a funding entry.
type Award struct {
	Number string            `json:"number,omitempty" yaml:"number,omitempty"`
	Title  map[string]string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Funder names the funding organization.
type Funder struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Funding is one funding entry.
type Funding struct {
	Funder Funder `json:"funder" yaml:"funder"`
	Award  *Award `json:"award,omitempty" yaml:"award,omitempty"`
}

// Record is the InvenioRDM metadata document produced for a release.
// Field names follow the InvenioRDM metadata schema.
type Record struct {
	AdditionalDescriptions []Description        `json:"additional_descriptions,omitempty" yaml:"additional_descriptions,omitempty"`
	AdditionalTitles       []TitleEntry         `json:"additional_titles,omitempty" yaml:"additional_titles,omitempty"`
	Contributors           []Creator            `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Creators               []Creator            `json:"creators" yaml:"creators"`
	Dates                  []Date               `json:"dates,omitempty" yaml:"dates,omitempty"`
	Description            string               `json:"description,omitempty" yaml:"description,omitempty"`
	Funding                []Funding            `json:"funding,omitempty" yaml:"funding,omitempty"`
	Identifiers            []Identifier         `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	Languages              []VocabRef           `json:"languages,omitempty" yaml:"languages,omitempty"`
	PublicationDate        string               `json:"publication_date" yaml:"publication_date"`
	Publisher              string               `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	References             []Reference          `json:"references,omitempty" yaml:"references,omitempty"`
	RelatedIdentifiers     []RelatedIdentifier  `json:"related_identifiers,omitempty" yaml:"related_identifiers,omitempty"`
	ResourceType           *VocabRef            `json:"resource_type" yaml:"resource_type"`
	Rights                 []Right              `json:"rights,omitempty" yaml:"rights,omitempty"`
	Subjects               []Subject            `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Title                  string               `json:"title" yaml:"title"`
	Version                string               `json:"version,omitempty" yaml:"version,omitempty"`
}

// Envelope wraps a Record the way the InvenioRDM records API expects it.
type Envelope struct {
	Metadata Record `json:"metadata" yaml:"metadata"`
}
