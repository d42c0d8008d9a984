// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/reference"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

// codemetaReferenceIDs returns the identifiers of codemeta
// referencePublication, which may be text or ScholarlyArticle objects.
func codemetaReferenceIDs(b *source.Bundle) []identifier.Recognized {
	var out []identifier.Recognized
	for _, v := range b.CodeMeta.List("referencePublication") {
		if t, ok := source.AsTree(v); ok {
			if id, ok := recognizeFirst(t, "identifier", "@id", "id", "sameAs", "url"); ok {
				out = append(out, id)
			}
			continue
		}
		if id, ok := identifier.Recognize(source.AsString(v)); ok {
			out = append(out, id)
		}
	}
	return dedupIDs(out)
}

// cffReferenceIDs returns the identifiers of the CFF preferred-citation and
// references works.
func cffReferenceIDs(b *source.Bundle) []identifier.Recognized {
	works := b.CFF.Trees("references")
	if pc := b.CFF.Tree("preferred-citation"); pc != nil {
		works = append([]source.Tree{pc}, works...)
	}
	var out []identifier.Recognized
	for _, w := range works {
		if id, ok := recognizeFirst(w, "doi", "pmcid", "isbn"); ok {
			out = append(out, id)
			continue
		}
		for _, it := range w.Trees("identifiers") {
			if id, ok := identifier.Recognize(it.String("value")); ok {
				out = append(out, id)
				break
			}
		}
	}
	return dedupIDs(out)
}

func referenceIDs(b *source.Bundle) []identifier.Recognized {
	return dedupIDs(append(codemetaReferenceIDs(b), cffReferenceIDs(b)...))
}

func recognizeFirst(t source.Tree, keys ...string) (identifier.Recognized, bool) {
	for _, k := range keys {
		if id, ok := identifier.Recognize(t.String(k)); ok {
			return id, true
		}
	}
	return identifier.Recognized{}, false
}

func dedupIDs(ids []identifier.Recognized) []identifier.Recognized {
	return record.Dedup(ids, identifier.Recognized.Key)
}

// formatReferences formats the supported identifiers among ids with at
// most e.parallelism lookups in flight. The result maps identifier keys to
// reference text; failed lookups are left out.
func (e *Engine) formatReferences(ctx context.Context, ids []identifier.Recognized) (map[string]string, error) {
	out := map[string]string{}
	if e.refs == nil {
		return out, nil
	}
	var todo []identifier.Recognized
	for _, id := range ids {
		if reference.Supported(id) {
			todo = append(todo, id)
		}
	}
	texts := make([]string, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, id := range todo {
		g.Go(func() error {
			if text, ok := e.refs.Format(gctx, id); ok {
				texts[i] = text
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, id := range todo {
		if texts[i] != "" {
			out[id.Key()] = texts[i]
		}
	}
	return out, nil
}

func referencesFrom(ids func(*source.Bundle) []identifier.Recognized) func(*state) ([]types.Reference, error) {
	return func(s *state) ([]types.Reference, error) {
		var out []types.Reference
		for _, id := range ids(s.b) {
			if text, ok := s.refs[id.Key()]; ok {
				out = append(out, types.Reference{Reference: text, Identifier: id.Normalized, Scheme: "other"})
			}
		}
		return out, nil
	}
}

func sortReferences(_ *state, refs []types.Reference) []types.Reference {
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Identifier < refs[j].Identifier })
	return refs
}

// referencedBy links every recognized reference publication.
func referencedBy(s *state) ([]types.RelatedIdentifier, error) {
	var out []types.RelatedIdentifier
	for _, id := range referenceIDs(s.b) {
		if id.Scheme == identifier.SchemeURL && !allowedURL(id.Normalized) {
			continue
		}
		out = append(out, types.RelatedIdentifier{
			Identifier:   id.Normalized,
			Scheme:       id.Scheme.String(),
			RelationType: types.VocabRef{ID: "isreferencedby"},
		})
	}
	return out, nil
}
