// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 0
}

func recognize(t *testing.T, s string) identifier.Recognized {
	t.Helper()
	id, ok := identifier.Recognize(s)
	require.True(t, ok, s)
	return id
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/doi/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != cslMediaType {
			http.Error(w, "bad accept", http.StatusNotAcceptable)
			return
		}
		switch r.URL.Path {
		case "/doi/10.1093/nar/gks1195":
			w.Write([]byte(`{"type":"article-journal","title":"NAR paper","author":[{"given":"Ann","family":"Lee"}],"issued":{"date-parts":[[2013]]},"container-title":"Nucleic Acids Research","DOI":"10.1093/nar/gks1195"}`))
		case "/doi/10.48550/arXiv.2101.00001":
			w.Write([]byte(`{"type":"article","title":"A preprint","author":[{"given":"Bo","family":"Kim"}],"issued":{"date-parts":[[2021]]},"publisher":"arXiv"}`))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/idconv/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") == "23193287" {
			w.Write([]byte(`{"status":"ok","records":[{"pmid":"23193287","doi":"10.1093/nar/gks1195"}]}`))
			return
		}
		w.Write([]byte(`{"status":"ok","records":[{"status":"error"}]}`))
	})
	mux.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("bibkeys") == "ISBN:9780262033848" {
			w.Write([]byte(`{"ISBN:9780262033848":{"title":"Introduction to Algorithms","authors":[{"name":"Thomas H. Cormen"}],"publishers":[{"name":"MIT Press"}],"publish_date":"July 31, 2009"}}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	oldDOI, oldConv, oldOL := doiBaseURL, idconvURL, openLibraryURL
	doiBaseURL, idconvURL, openLibraryURL = srv.URL+"/doi/", srv.URL+"/idconv/", srv.URL+"/books"
	t.Cleanup(func() { doiBaseURL, idconvURL, openLibraryURL = oldDOI, oldConv, oldOL })
	return srv
}

func newTestClient() *Client {
	return NewClient(httputil.NewClient(types.HTTPConfig{}), nil, false, nil)
}

func TestLookupBibliographic(t *testing.T) {
	testServer(t)
	c := newTestClient()
	ctx := context.Background()

	tests := []struct {
		input string
		title string
		doi   string
	}{
		{"https://doi.org/10.1093/nar/gks1195", "NAR paper", "10.1093/nar/gks1195"},
		{"arXiv:2101.00001v2", "A preprint", "10.48550/arXiv.2101.00001"},
		{"PMID: 23193287", "NAR paper", "10.1093/nar/gks1195"},
		{"ISBN 978-0-262-03384-8", "Introduction to Algorithms", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			item, err := c.LookupBibliographic(ctx, recognize(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, Text(tt.title), item.Title)
			assert.Equal(t, tt.doi, item.DOI)
		})
	}
}

func TestLookupBibliographic_Book(t *testing.T) {
	testServer(t)
	item, err := newTestClient().LookupBibliographic(context.Background(), recognize(t, "9780262033848"))
	require.NoError(t, err)
	assert.Equal(t, "book", item.Type)
	assert.Equal(t, []CSLName{{Given: "Thomas H.", Family: "Cormen"}}, item.Author)
	assert.Equal(t, 2009, item.Issued.Year())
	assert.Equal(t, "Cormen, T. H. (2009). Introduction to Algorithms. MIT Press.", APA.Render(item))
}

func TestLookupBibliographic_NotFound(t *testing.T) {
	testServer(t)
	c := newTestClient()
	ctx := context.Background()

	_, err := c.LookupBibliographic(ctx, recognize(t, "10.9999/missing"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = c.LookupBibliographic(ctx, recognize(t, "PMC1234567"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = c.LookupBibliographic(ctx, recognize(t, "https://example.org/paper"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = NewClient(httputil.NewClient(types.HTTPConfig{}), nil, true, nil).
		LookupBibliographic(ctx, recognize(t, "10.1093/nar/gks1195"))
	assert.ErrorIs(t, err, types.ErrUnavailable)
}

type fakeLookup struct {
	items map[string]CSLItem
}

func (f fakeLookup) LookupBibliographic(_ context.Context, id identifier.Recognized) (CSLItem, error) {
	item, ok := f.items[id.Normalized]
	if !ok {
		return CSLItem{}, errors.New("lookup failed")
	}
	return item, nil
}

func TestFormatter(t *testing.T) {
	f := NewFormatter(fakeLookup{items: map[string]CSLItem{
		"10.1000/a":     {Title: "Paper A", Author: []CSLName{{Given: "Ann", Family: "Lee"}}},
		"10.1000/empty": {},
	}}, nil, nil)
	ctx := context.Background()

	text, ok := f.Format(ctx, recognize(t, "10.1000/a"))
	assert.True(t, ok)
	assert.Equal(t, "Lee, A. (n.d.). Paper A.", text)

	_, ok = f.Format(ctx, recognize(t, "10.1000/missing"))
	assert.False(t, ok)

	_, ok = f.Format(ctx, recognize(t, "10.1000/empty"))
	assert.False(t, ok)

	_, ok = f.Format(ctx, recognize(t, "0000-0002-1825-0097"))
	assert.False(t, ok, "ORCID is not a publication identifier")
}

func TestFormatter_CustomRenderer(t *testing.T) {
	f := NewFormatter(fakeLookup{items: map[string]CSLItem{"10.1000/a": {Title: "Paper A"}}},
		RendererFunc(func(item CSLItem) string { return "<" + string(item.Title) + ">" }), nil)
	text, ok := f.Format(context.Background(), recognize(t, "doi:10.1000/a"))
	assert.True(t, ok)
	assert.Equal(t, "<Paper A>", text)
}
