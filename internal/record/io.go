// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tailscale/hujson"
	"go.yaml.in/yaml/v3"

	"github.com/caltechlibrary/iga/pkg/types"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write writes rec wrapped in a {"metadata": ...} envelope.
func Write(w io.Writer, rec *types.Record, format string) error {
	env := types.Envelope{Metadata: *rec}
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// MalformedFileError reports a record file that cannot be used.
type MalformedFileError struct {
	Path string
	Err  error
}

func (e *MalformedFileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *MalformedFileError) Unwrap() error { return e.Err }

// LoadOverride reads a record file that replaces resolution. The file is
// JSON, comments and trailing commas allowed, holding either the metadata
// object itself or an envelope with a "metadata" member. The record must
// pass Validate.
func LoadOverride(path string) (*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := ParseOverride(data)
	if err != nil {
		return nil, &MalformedFileError{Path: path, Err: err}
	}
	return rec, nil
}

// ParseOverride parses the content of a record file. See LoadOverride.
func ParseOverride(data []byte) (*types.Record, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(std, &probe); err != nil {
		return nil, err
	}
	body := std
	if m, ok := probe["metadata"]; ok {
		body = m
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	var rec types.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if err := Validate(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
