// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tree is a parsed metadata file held as a generic key-value tree. Values
// are strings, json.Number, bool, nil, []any or map[string]any.
type Tree map[string]any

// Has reports whether key is present with a non-empty value.
func (t Tree) Has(key string) bool {
	v, ok := t[key]
	return ok && !empty(v)
}

// String returns the scalar value of key as trimmed text, or "".
func (t Tree) String(key string) string { return AsString(t[key]) }

// Strings returns key as a list of non-empty strings. A scalar becomes a
// one-element list; non-scalar list elements are skipped.
func (t Tree) Strings(key string) []string {
	var out []string
	for _, v := range t.List(key) {
		if s := AsString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// List returns key as a list. A single value becomes a one-element list.
func (t Tree) List(key string) []any {
	switch v := t[key].(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

// Tree returns key as a nested tree, or nil.
func (t Tree) Tree(key string) Tree {
	m, _ := AsTree(t[key])
	return m
}

// Trees returns the elements of key that are objects.
func (t Tree) Trees(key string) []Tree {
	var out []Tree
	for _, v := range t.List(key) {
		if m, ok := AsTree(v); ok {
			out = append(out, m)
		}
	}
	return out
}

// AsTree converts an object value to a Tree.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Tree(m), true
	case Tree:
		return m, true
	}
	return nil, false
}

// AsString renders a scalar as trimmed text. Lists, objects, booleans and
// nil give "".
func AsString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format(time.DateOnly)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	}
	return ""
}

func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}
