// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package record assembles resolved field values into an InvenioRDM
// metadata record, validates it, and reads and writes record files.
package record

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caltechlibrary/iga/pkg/types"
)

// Field names a top-level record field.
type Field string

const (
	FieldAdditionalDescriptions Field = "additional_descriptions"
	FieldAdditionalTitles       Field = "additional_titles"
	FieldContributors           Field = "contributors"
	FieldCreators               Field = "creators"
	FieldDates                  Field = "dates"
	FieldDescription            Field = "description"
	FieldFunding                Field = "funding"
	FieldIdentifiers            Field = "identifiers"
	FieldLanguages              Field = "languages"
	FieldPublicationDate        Field = "publication_date"
	FieldPublisher              Field = "publisher"
	FieldReferences             Field = "references"
	FieldRelatedIdentifiers     Field = "related_identifiers"
	FieldResourceType           Field = "resource_type"
	FieldRights                 Field = "rights"
	FieldSubjects               Field = "subjects"
	FieldTitle                  Field = "title"
	FieldVersion                Field = "version"
)

// Mandatory lists the fields a record cannot be deposited without.
var Mandatory = []Field{FieldTitle, FieldCreators, FieldResourceType, FieldPublicationDate}

// IncompleteError reports mandatory fields that have no value. Attempted
// names the sources that were tried for each.
type IncompleteError struct {
	Missing   []Field
	Attempted map[Field][]string
}

func (e *IncompleteError) Error() string {
	var b strings.Builder
	b.WriteString("record is missing required field")
	if len(e.Missing) > 1 {
		b.WriteString("s")
	}
	for i, f := range e.Missing {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(string(f))
		if tried := e.Attempted[f]; len(tried) > 0 {
			fmt.Fprintf(&b, " (tried %s)", strings.Join(tried, ", "))
		}
	}
	return b.String()
}

// Assemble builds a record from resolved values keyed by field. Values
// must have the record's field types; a value of the wrong type is a
// programming error and panics. List fields are deduplicated with the
// field's equality rule, and empty optional fields are dropped. attempted
// may be nil; it only decorates the IncompleteError.
func Assemble(fields map[Field]any, attempted map[Field][]string) (*types.Record, error) {
	rec := &types.Record{}
	for f, v := range fields {
		if v == nil {
			continue
		}
		switch f {
		case FieldAdditionalDescriptions:
			rec.AdditionalDescriptions = Dedup(v.([]types.Description), DescriptionKey)
		case FieldAdditionalTitles:
			rec.AdditionalTitles = Dedup(v.([]types.TitleEntry), TitleKey)
		case FieldContributors:
			rec.Contributors = Dedup(v.([]types.Creator), ContributorKey)
		case FieldCreators:
			rec.Creators = Dedup(v.([]types.Creator), CreatorKey)
		case FieldDates:
			rec.Dates = Dedup(v.([]types.Date), DateKey)
		case FieldDescription:
			rec.Description = strings.TrimSpace(v.(string))
		case FieldFunding:
			rec.Funding = Dedup(v.([]types.Funding), FundingKey)
		case FieldIdentifiers:
			rec.Identifiers = Dedup(v.([]types.Identifier), IdentifierKey)
		case FieldLanguages:
			rec.Languages = Dedup(v.([]types.VocabRef), VocabKey)
		case FieldPublicationDate:
			rec.PublicationDate = strings.TrimSpace(v.(string))
		case FieldPublisher:
			rec.Publisher = strings.TrimSpace(v.(string))
		case FieldReferences:
			rec.References = Dedup(v.([]types.Reference), ReferenceKey)
		case FieldRelatedIdentifiers:
			rec.RelatedIdentifiers = Dedup(v.([]types.RelatedIdentifier), RelatedKey)
		case FieldResourceType:
			rec.ResourceType = v.(*types.VocabRef)
		case FieldRights:
			rec.Rights = Dedup(v.([]types.Right), RightKey)
		case FieldSubjects:
			rec.Subjects = Dedup(v.([]types.Subject), SubjectKey)
		case FieldTitle:
			rec.Title = strings.TrimSpace(v.(string))
		case FieldVersion:
			rec.Version = strings.TrimSpace(v.(string))
		default:
			panic(fmt.Sprintf("record: unknown field %q", f))
		}
	}
	if err := validate(rec, attempted); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks that every mandatory field of rec is populated.
func Validate(rec *types.Record) error { return validate(rec, nil) }

func validate(rec *types.Record, attempted map[Field][]string) error {
	var missing []Field
	if rec.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if len(rec.Creators) == 0 {
		missing = append(missing, FieldCreators)
	}
	if rec.ResourceType == nil || rec.ResourceType.ID == "" {
		missing = append(missing, FieldResourceType)
	}
	if rec.PublicationDate == "" {
		missing = append(missing, FieldPublicationDate)
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return &IncompleteError{Missing: missing, Attempted: attempted}
}
