// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/internal/lookup"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/pkg/types"
)

// Service endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	doiBaseURL     = "https://doi.org/"
	idconvURL      = "https://www.ncbi.nlm.nih.gov/pmc/utils/idconv/v1.0/"
	openLibraryURL = "https://openlibrary.org/api/books"
)

const cslMediaType = "application/vnd.citationstyles.csl+json"

var (
	arxivVersion = regexp.MustCompile(`v\d+$`)
	yearPattern  = regexp.MustCompile(`\b(\d{4})\b`)
)

// Client fetches bibliographic records for publication identifiers. It
// implements BibliographicLookup.
type Client struct {
	http    *httputil.Client
	cache   *lookup.Cache
	offline bool
	log     logging.Logger
}

// NewClient creates a Client. cache may be nil.
func NewClient(hc *httputil.Client, cache *lookup.Cache, offline bool, log logging.Logger) *Client {
	return &Client{http: hc, cache: cache, offline: offline, log: logging.OrNull(log)}
}

// LookupBibliographic returns the CSL item for id. DOIs go to doi.org
// content negotiation; arXiv, PMID and PMCID identifiers are first mapped
// to DOIs; ISBNs go to Open Library.
func (c *Client) LookupBibliographic(ctx context.Context, id identifier.Recognized) (CSLItem, error) {
	if c.offline {
		return CSLItem{}, types.ErrUnavailable
	}
	switch id.Scheme {
	case identifier.SchemeDOI:
		return c.byDOI(ctx, id.Normalized)
	case identifier.SchemeArxiv:
		return c.byDOI(ctx, identifier.DOIForArxiv(arxivVersion.ReplaceAllString(id.Normalized, "")))
	case identifier.SchemePMID, identifier.SchemePMCID:
		doi, err := c.doiForPubMed(ctx, id.Normalized)
		if err != nil {
			return CSLItem{}, err
		}
		return c.byDOI(ctx, doi)
	case identifier.SchemeISBN:
		return c.byISBN(ctx, id.Normalized)
	}
	return CSLItem{}, fmt.Errorf("no bibliographic source for %s identifiers: %w", id.Scheme, types.ErrNotFound)
}

func (c *Client) byDOI(ctx context.Context, doi string) (CSLItem, error) {
	return lookup.Cached(ctx, c.cache, "csl", "doi:"+strings.ToLower(doi), func(ctx context.Context) (CSLItem, error) {
		c.log.Verbose("fetching CSL-JSON for DOI %s", doi)
		h := http.Header{}
		h.Set("Accept", cslMediaType)
		var item CSLItem
		if err := c.http.GetJSON(ctx, doiBaseURL+doi, h, &item); err != nil {
			return CSLItem{}, fmt.Errorf("DOI %s: %w", doi, err)
		}
		if item.DOI == "" {
			item.DOI = doi
		}
		return item, nil
	})
}

type idconvResponse struct {
	Status  string `json:"status"`
	Records []struct {
		DOI    string `json:"doi"`
		Status string `json:"status"`
	} `json:"records"`
}

func (c *Client) doiForPubMed(ctx context.Context, id string) (string, error) {
	return lookup.Cached(ctx, c.cache, "idconv", id, func(ctx context.Context) (string, error) {
		q := url.Values{"format": {"json"}, "tool": {"iga"}, "ids": {id}}
		var resp idconvResponse
		if err := c.http.GetJSON(ctx, idconvURL+"?"+q.Encode(), nil, &resp); err != nil {
			return "", fmt.Errorf("idconv %s: %w", id, err)
		}
		for _, r := range resp.Records {
			if r.DOI != "" {
				return r.DOI, nil
			}
		}
		return "", fmt.Errorf("no DOI for %s: %w", id, types.ErrNotFound)
	})
}

type openLibraryBook struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	URL      string `json:"url"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate string `json:"publish_date"`
}

func (c *Client) byISBN(ctx context.Context, isbn string) (CSLItem, error) {
	return lookup.Cached(ctx, c.cache, "csl", "isbn:"+isbn, func(ctx context.Context) (CSLItem, error) {
		key := "ISBN:" + isbn
		q := url.Values{"bibkeys": {key}, "format": {"json"}, "jscmd": {"data"}}
		var resp map[string]openLibraryBook
		if err := c.http.GetJSON(ctx, openLibraryURL+"?"+q.Encode(), nil, &resp); err != nil {
			return CSLItem{}, fmt.Errorf("ISBN %s: %w", isbn, err)
		}
		book, ok := resp[key]
		if !ok || book.Title == "" {
			return CSLItem{}, fmt.Errorf("ISBN %s: %w", isbn, types.ErrNotFound)
		}
		return book.item(isbn), nil
	})
}

func (b openLibraryBook) item(isbn string) CSLItem {
	title := b.Title
	if b.Subtitle != "" {
		title += ": " + b.Subtitle
	}
	item := CSLItem{ID: "isbn:" + isbn, Type: "book", Title: Text(title), URL: b.URL, ISBN: Text(isbn)}
	for _, a := range b.Authors {
		given, family := names.SplitLatin(names.Clean(a.Name))
		if family == "" {
			continue
		}
		item.Author = append(item.Author, CSLName{Given: given, Family: family})
	}
	if len(b.Publishers) > 0 {
		item.Publisher = Text(b.Publishers[0].Name)
	}
	if m := yearPattern.FindStringSubmatch(b.PublishDate); m != nil {
		y, _ := strconv.Atoi(m[1])
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	return item
}
