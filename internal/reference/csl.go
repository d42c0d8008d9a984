// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"encoding/json"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// CSLItem is a bibliographic entry in CSL-JSON form. The field names follow
// the CSL schema so doi.org content negotiation responses decode directly
// and CSL-YAML output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `json:"id,omitempty" yaml:"id,omitempty"`
	Type           string    `json:"type,omitempty" yaml:"type,omitempty"`
	Title          Text      `json:"title,omitempty" yaml:"title,omitempty"`
	Author         []CSLName `json:"author,omitempty" yaml:"author,omitempty"`
	Editor         []CSLName `json:"editor,omitempty" yaml:"editor,omitempty"`
	Issued         *CSLDate  `json:"issued,omitempty" yaml:"issued,omitempty"`
	ContainerTitle Text      `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	Volume         Text      `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue          Text      `json:"issue,omitempty" yaml:"issue,omitempty"`
	Page           Text      `json:"page,omitempty" yaml:"page,omitempty"`
	Publisher      Text      `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	DOI            string    `json:"DOI,omitempty" yaml:"DOI,omitempty"`
	URL            string    `json:"URL,omitempty" yaml:"URL,omitempty"`
	ISBN           Text      `json:"ISBN,omitempty" yaml:"ISBN,omitempty"`
}

// CSLName is a person's name in CSL format. Organizations use Literal.
type CSLName struct {
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `json:"date-parts,omitempty" yaml:"date-parts,omitempty"`
	Literal   string  `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// Year returns the first year in the date, or 0.
func (d *CSLDate) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// UnmarshalJSON accepts date parts given as numbers or numeric strings,
// both of which registries emit.
func (d *CSLDate) UnmarshalJSON(data []byte) error {
	var raw struct {
		DateParts [][]any `json:"date-parts"`
		Literal   string  `json:"literal"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Literal = raw.Literal
	d.DateParts = nil
	for _, parts := range raw.DateParts {
		var out []int
		for _, p := range parts {
			switch v := p.(type) {
			case float64:
				out = append(out, int(v))
			case string:
				if n, err := strconv.Atoi(v); err == nil {
					out = append(out, n)
				}
			}
		}
		if len(out) > 0 {
			d.DateParts = append(d.DateParts, out)
		}
	}
	return nil
}

// Text is a CSL string variable. Some registries send these as arrays or
// numbers; the first string form is kept.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case []any:
		*t = ""
		for _, e := range x {
			if s, ok := e.(string); ok && s != "" {
				*t = Text(s)
				break
			}
		}
	default:
		*t = ""
	}
	return nil
}

// WriteCSL writes items as a CSL-YAML list to w.
func WriteCSL(w io.Writer, items []CSLItem) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}
