// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reference turns publication identifiers into formatted
// citations. Bibliographic data comes from a BibliographicLookup and is
// rendered by a Renderer, APA by default.
package reference

import (
	"context"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/logging"
)

// Schemes lists the identifier schemes a reference can be formatted for.
var Schemes = []identifier.Scheme{
	identifier.SchemeDOI,
	identifier.SchemeArxiv,
	identifier.SchemeISBN,
	identifier.SchemePMID,
	identifier.SchemePMCID,
}

// BibliographicLookup fetches structured citation data for an identifier.
type BibliographicLookup interface {
	LookupBibliographic(ctx context.Context, id identifier.Recognized) (CSLItem, error)
}

// Formatter formats references. The zero value is not usable; use
// NewFormatter.
type Formatter struct {
	lookup BibliographicLookup
	render Renderer
	log    logging.Logger
}

// NewFormatter returns a Formatter that renders with render, or APA when
// render is nil.
func NewFormatter(lookup BibliographicLookup, render Renderer, log logging.Logger) *Formatter {
	if render == nil {
		render = APA
	}
	return &Formatter{lookup: lookup, render: render, log: logging.OrNull(log)}
}

// Supported reports whether id is in one of Schemes.
func Supported(id identifier.Recognized) bool {
	for _, s := range Schemes {
		if id.Scheme == s {
			return true
		}
	}
	return false
}

// Format returns the citation text for id. It returns false when the
// scheme is unsupported, the lookup fails, or the record is too sparse to
// render; none of these is an error for the caller.
func (f *Formatter) Format(ctx context.Context, id identifier.Recognized) (string, bool) {
	if !Supported(id) || f.lookup == nil {
		return "", false
	}
	item, err := f.lookup.LookupBibliographic(ctx, id)
	if err != nil {
		f.log.Warn("no bibliographic record for %s %s: %v", id.Scheme, id.Normalized, err)
		return "", false
	}
	text := f.render.Render(item)
	if text == "" {
		f.log.Verbose("bibliographic record for %s has nothing to render", id.Normalized)
		return "", false
	}
	return text, true
}
