// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup resolves researcher and organization identifiers against
// ORCID and ROR, with an optional SQLite response cache.
package lookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/pkg/types"
)

// Base URLs for the registries. Declared as vars so tests can substitute
// httptest servers.
var (
	orcidAPIBase = "https://pub.orcid.org/v3.0/"
	rorAPIBase   = "https://api.ror.org/v2/organizations/"
)

// maxSuccessorHops bounds how far a withdrawn ROR record is followed.
const maxSuccessorHops = 4

// Client implements names.PersonLookup and names.OrganizationLookup.
type Client struct {
	http    *httputil.Client
	cache   *Cache
	offline bool
	log     logging.Logger
}

// New creates a Client. cache may be nil.
func New(cfg types.LookupConfig, cache *Cache, log logging.Logger) *Client {
	return &Client{
		http:    httputil.NewClient(cfg.HTTPConfig),
		cache:   cache,
		offline: cfg.Offline,
		log:     logging.OrNull(log),
	}
}

// HTTP returns the underlying HTTP client, shared with other collaborators.
func (c *Client) HTTP() *httputil.Client { return c.http }

// Cache returns the response cache, which may be nil.
func (c *Client) Cache() *Cache { return c.cache }

// Offline reports whether network lookups are disabled.
func (c *Client) Offline() bool { return c.offline }

type personName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type orcidPerson struct {
	Name *struct {
		GivenNames *orcidValue `json:"given-names"`
		FamilyName *orcidValue `json:"family-name"`
		CreditName *orcidValue `json:"credit-name"`
	} `json:"name"`
	OtherNames *struct {
		OtherName []struct {
			Content string `json:"content"`
		} `json:"other-name"`
	} `json:"other-names"`
}

type orcidValue struct {
	Value string `json:"value"`
}

func (v *orcidValue) get() string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.Value)
}

// LookupPersonName returns the name on an ORCID public record. A credit
// name, when present, supplies the given name; the family name field wins
// over the credit name's last token.
func (c *Client) LookupPersonName(ctx context.Context, orcid string) (string, string, error) {
	if c.offline {
		return "", "", types.ErrUnavailable
	}
	n, err := Cached(ctx, c.cache, "orcid", orcid, func(ctx context.Context) (personName, error) {
		var p orcidPerson
		if err := c.http.GetJSON(ctx, orcidAPIBase+orcid+"/person", nil, &p); err != nil {
			return personName{}, fmt.Errorf("ORCID %s: %w", orcid, err)
		}
		return p.name()
	})
	if err != nil {
		return "", "", err
	}
	c.log.Verbose("ORCID %s is %s %s", orcid, n.Given, n.Family)
	return n.Given, n.Family, nil
}

func (p orcidPerson) name() (personName, error) {
	var given, family, credit string
	if p.Name != nil {
		given, family, credit = p.Name.GivenNames.get(), p.Name.FamilyName.get(), p.Name.CreditName.get()
	}
	if credit != "" {
		cg, cf := names.SplitLatin(credit)
		if cg != "" {
			given = cg
		}
		if family == "" {
			family = cf
		}
	}
	if given == "" && family == "" && p.OtherNames != nil && len(p.OtherNames.OtherName) > 0 {
		given, family = names.SplitLatin(p.OtherNames.OtherName[0].Content)
	}
	if given == "" && family == "" {
		return personName{}, fmt.Errorf("record has no public name: %w", types.ErrNotFound)
	}
	return personName{Given: given, Family: family}, nil
}

type rorRecord struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Names  []struct {
		Value string   `json:"value"`
		Types []string `json:"types"`
	} `json:"names"`
	Relationships []struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"relationships"`
}

func (r rorRecord) displayName() string {
	for _, n := range r.Names {
		for _, t := range n.Types {
			if t == "ror_display" {
				return n.Value
			}
		}
	}
	return r.Name
}

func (r rorRecord) successor() string {
	for _, rel := range r.Relationships {
		if strings.EqualFold(rel.Type, "successor") {
			return rel.ID[strings.LastIndex(rel.ID, "/")+1:]
		}
	}
	return ""
}

// LookupOrganizationName returns the display name of a ROR record. A
// withdrawn record is replaced by its successor, up to four hops.
func (c *Client) LookupOrganizationName(ctx context.Context, ror string) (string, error) {
	if c.offline {
		return "", types.ErrUnavailable
	}
	return Cached(ctx, c.cache, "ror", ror, func(ctx context.Context) (string, error) {
		id := ror
		for hop := 0; ; hop++ {
			var rec rorRecord
			h := http.Header{}
			h.Set("Accept", "application/json")
			if err := c.http.GetJSON(ctx, rorAPIBase+id, h, &rec); err != nil {
				return "", fmt.Errorf("ROR %s: %w", id, err)
			}
			next := rec.successor()
			if !strings.EqualFold(rec.Status, "withdrawn") || next == "" || hop >= maxSuccessorHops {
				name := rec.displayName()
				if name == "" {
					return "", fmt.Errorf("ROR %s has no name: %w", id, types.ErrNotFound)
				}
				return name, nil
			}
			c.log.Verbose("ROR %s is withdrawn; following successor %s", id, next)
			id = next
		}
	})
}
