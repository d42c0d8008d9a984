// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caltechlibrary/iga/internal/record"
)

// Mode is how a field combines the values its probes find.
type Mode int

const (
	// First uses the first present value and stops.
	First Mode = iota
	// UnionDedup collects every present value and deduplicates them.
	UnionDedup
	// StructuredMerge combines the probe results with a field-specific rule.
	StructuredMerge
)

func (m Mode) String() string {
	switch m {
	case First:
		return "FIRST"
	case UnionDedup:
		return "UNION_DEDUP"
	case StructuredMerge:
		return "STRUCTURED_MERGE"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// FieldWarning records a probe that failed on an unexpected value. The
// probe counts as absent and resolution continues.
type FieldWarning struct {
	Field  record.Field
	Source string
	Err    error
}

func (w FieldWarning) Error() string {
	return fmt.Sprintf("%s from %s: %v", w.Field, w.Source, w.Err)
}

func (w FieldWarning) Unwrap() error { return w.Err }

// Policy is one row of the field table.
type Policy interface {
	Field() record.Field
	Mode() Mode
	// Sources lists the probe labels in priority order.
	Sources() []string

	resolve(s *state) any
	finish(s *state, v any) any
}

// probe is one (source, extractor) pair. when gates the probe; nil means
// always.
type probe[T any] struct {
	label string
	when  func(*state) bool
	get   func(*state) (T, error)
}

func labels[T any](probes []probe[T]) []string {
	out := make([]string, len(probes))
	for i, p := range probes {
		out[i] = p.label
	}
	return out
}

// run evaluates p and reports whether it yielded a present value.
func run[T any](s *state, f record.Field, p probe[T]) (T, bool) {
	var zero T
	if p.when != nil && !p.when(s) {
		return zero, false
	}
	v, err := p.get(s)
	if err != nil {
		s.warn(FieldWarning{Field: f, Source: p.label, Err: err})
		return zero, false
	}
	if !present(v) {
		return zero, false
	}
	s.log.Verbose("%s: using %s", f, p.label)
	return v, true
}

// present is the default presence predicate: non-blank strings, non-empty
// slices and maps, non-nil pointers, other non-zero values.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}

// firstOf is a FIRST policy.
type firstOf[T any] struct {
	field  record.Field
	probes []probe[T]
	// fallback supplies the value when no probe is present.
	fallback func(*state) T
	// final adjusts the chosen value for output only; other fields that
	// depend on this one see the unadjusted value.
	final func(*state, T) T
}

func (p firstOf[T]) Field() record.Field { return p.field }
func (p firstOf[T]) Mode() Mode          { return First }
func (p firstOf[T]) Sources() []string   { return labels(p.probes) }

func (p firstOf[T]) resolve(s *state) any {
	for _, pr := range p.probes {
		if v, ok := run(s, p.field, pr); ok {
			return v
		}
	}
	if p.fallback != nil {
		if v := p.fallback(s); present(v) {
			return v
		}
	}
	return nil
}

func (p firstOf[T]) finish(s *state, v any) any {
	if v == nil || p.final == nil {
		return v
	}
	return p.final(s, v.(T))
}

// unionOf is a UNION_DEDUP policy over list values.
type unionOf[E any] struct {
	field  record.Field
	probes []probe[[]E]
	key    func(E) string
	final  func(*state, []E) []E
}

func (p unionOf[E]) Field() record.Field { return p.field }
func (p unionOf[E]) Mode() Mode          { return UnionDedup }
func (p unionOf[E]) Sources() []string   { return labels(p.probes) }

func (p unionOf[E]) resolve(s *state) any {
	var all []E
	for _, pr := range p.probes {
		if v, ok := run(s, p.field, pr); ok {
			all = append(all, v...)
		}
	}
	all = record.Dedup(all, p.key)
	if len(all) == 0 {
		return nil
	}
	return all
}

func (p unionOf[E]) finish(s *state, v any) any {
	if v == nil || p.final == nil {
		return v
	}
	return p.final(s, v.([]E))
}

// mergeOf is a STRUCTURED_MERGE policy: every probe runs and merge
// combines the present results in probe order.
type mergeOf[T any] struct {
	field  record.Field
	probes []probe[T]
	merge  func(*state, []T) T
}

func (p mergeOf[T]) Field() record.Field { return p.field }
func (p mergeOf[T]) Mode() Mode          { return StructuredMerge }
func (p mergeOf[T]) Sources() []string   { return labels(p.probes) }

func (p mergeOf[T]) resolve(s *state) any {
	var found []T
	for _, pr := range p.probes {
		if v, ok := run(s, p.field, pr); ok {
			found = append(found, v)
		}
	}
	if len(found) == 0 {
		return nil
	}
	v := p.merge(s, found)
	if !present(v) {
		return nil
	}
	return v
}

func (p mergeOf[T]) finish(_ *state, v any) any { return v }
