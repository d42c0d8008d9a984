// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAPA(t *testing.T) {
	tests := []struct {
		name string
		item CSLItem
		want string
	}{
		{
			name: "journal article",
			item: CSLItem{
				Type:           "article-journal",
				Title:          "Distributed version control for science",
				Author:         []CSLName{{Given: "Ann", Family: "Lee"}, {Given: "Jean-Paul", Family: "Sartre"}},
				Issued:         &CSLDate{DateParts: [][]int{{2020, 5}}},
				ContainerTitle: "Journal of Software",
				Volume:         "12",
				Issue:          "3",
				Page:           "45-67",
				DOI:            "10.1000/xyz",
			},
			want: "Lee, A., & Sartre, J.-P. (2020). Distributed version control for science. Journal of Software, 12(3), 45–67. https://doi.org/10.1000/xyz",
		},
		{
			name: "missing year and venue",
			item: CSLItem{Title: "A preprint?", Author: []CSLName{{Literal: "The Consortium"}}},
			want: "The Consortium. (n.d.). A preprint?",
		},
		{
			name: "book without authors",
			item: CSLItem{Type: "book", Title: "Style Manual", Publisher: "Press", Issued: &CSLDate{DateParts: [][]int{{1999}}}, URL: "https://example.org/b"},
			want: "Style Manual. (1999). Press. https://example.org/b",
		},
		{
			name: "editors stand in for authors",
			item: CSLItem{Title: "Collected Papers", Editor: []CSLName{{Given: "Mary Ann", Family: "Ng"}}},
			want: "Ng, M. A. (Ed.). (n.d.). Collected Papers.",
		},
		{
			name: "nothing to render",
			item: CSLItem{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, APA.Render(tt.item))
		})
	}
}

func TestRenderAPA_LongAuthorList(t *testing.T) {
	var authors []CSLName
	for i := range 25 {
		authors = append(authors, CSLName{Given: "A", Family: fmt.Sprintf("Author%d", i)})
	}
	got := APA.Render(CSLItem{Title: "Big", Author: authors})
	assert.Contains(t, got, "Author18, A., . . . Author24, A.")
	assert.NotContains(t, got, "Author19,")
}

func TestCSLDecode_Lenient(t *testing.T) {
	data := []byte(`{
		"type": "article-journal",
		"title": ["Main title", "Other"],
		"container-title": [],
		"volume": 7,
		"issued": {"date-parts": [["2019", "3"]]},
		"author": [{"given": "Ann", "family": "Lee"}]
	}`)
	var item CSLItem
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, Text("Main title"), item.Title)
	assert.Equal(t, Text(""), item.ContainerTitle)
	assert.Equal(t, Text("7"), item.Volume)
	assert.Equal(t, 2019, item.Issued.Year())
}

func TestWriteCSL(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSL(&buf, []CSLItem{{ID: "doi:10.1/x", Type: "book", Title: "T", Issued: &CSLDate{DateParts: [][]int{{2001}}}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "- id: doi:10.1/x")
	assert.Contains(t, buf.String(), "date-parts:")
}
