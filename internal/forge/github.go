// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package forge talks to the GitHub and GitLab REST APIs to fetch release
// and repository metadata and files at a release tag.
package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

// DefaultAPIBase is the GitHub REST API root.
const DefaultAPIBase = "https://api.github.com"

const (
	apiVersion   = "2022-11-28"
	jsonMedia    = "application/vnd.github+json"
	rawMedia     = "application/vnd.github.raw+json"
	pageSize     = 100
	maxFileNames = 1000
)

// ErrBadToken is returned when the forge rejects the configured token.
var ErrBadToken = errors.New("the forge rejected the access token")

// GitHub is a client for the parts of the GitHub API used to describe a
// release.
type GitHub struct {
	http  *httputil.Client
	base  string
	token string
	log   logging.Logger
}

// NewGitHub creates a client from cfg. An empty token makes anonymous
// requests, which GitHub rate-limits heavily.
func NewGitHub(cfg types.ForgeConfig, log logging.Logger) *GitHub {
	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = DefaultAPIBase
	}
	return &GitHub{
		http:  httputil.NewClient(cfg.HTTPConfig),
		base:  base,
		token: cfg.Token,
		log:   logging.OrNull(log),
	}
}

func (g *GitHub) header(accept string) http.Header {
	h := http.Header{}
	h.Set("Accept", accept)
	h.Set("X-GitHub-Api-Version", apiVersion)
	if g.token != "" {
		h.Set("Authorization", "Bearer "+g.token)
	}
	return h
}

func (g *GitHub) getJSON(ctx context.Context, path string, dst any) error {
	err := g.http.GetJSON(ctx, g.base+path, g.header(jsonMedia), dst)
	return classify(err)
}

func classify(err error) error {
	var se *httputil.StatusError
	if errors.As(err, &se) && se.Status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return err
}

func repoPath(loc types.Locator) string {
	return "/repos/" + url.PathEscape(loc.Account) + "/" + url.PathEscape(loc.Repo)
}

// Release returns the release for loc.Tag.
func (g *GitHub) Release(ctx context.Context, loc types.Locator) (*types.Release, error) {
	var rel types.Release
	if err := g.getJSON(ctx, repoPath(loc)+"/releases/tags/"+url.PathEscape(loc.Tag), &rel); err != nil {
		return nil, fmt.Errorf("release %s: %w", loc, err)
	}
	g.log.Verbose("got release %s (%s)", rel.TagName, rel.HTMLURL)
	return &rel, nil
}

// Repository returns the repository for loc. Languages and Contributors
// are left empty; see Languages and Contributors.
func (g *GitHub) Repository(ctx context.Context, loc types.Locator) (*types.Repository, error) {
	var repo types.Repository
	if err := g.getJSON(ctx, repoPath(loc), &repo); err != nil {
		return nil, fmt.Errorf("repository %s: %w", loc.FullName(), err)
	}
	g.log.Verbose("got repository %s", repo.FullName)
	return &repo, nil
}

// Account returns the user or organization with the given login.
func (g *GitHub) Account(ctx context.Context, login string) (*types.Account, error) {
	var acct types.Account
	if err := g.getJSON(ctx, "/users/"+url.PathEscape(login), &acct); err != nil {
		return nil, fmt.Errorf("account %s: %w", login, err)
	}
	return &acct, nil
}

// Contributors returns the repository's human contributors in GitHub's
// order, with account details filled in. Bots are skipped, and a
// contributor whose details cannot be fetched keeps only the login.
func (g *GitHub) Contributors(ctx context.Context, loc types.Locator) ([]types.Account, error) {
	var list []types.Account
	if err := g.getJSON(ctx, fmt.Sprintf("%s/contributors?per_page=%d", repoPath(loc), pageSize), &list); err != nil {
		return nil, fmt.Errorf("contributors of %s: %w", loc.FullName(), err)
	}
	var out []types.Account
	for _, c := range list {
		if c.IsBot() {
			continue
		}
		acct, err := g.Account(ctx, c.Login)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			g.log.Warn("could not get details of contributor %s: %v", c.Login, err)
			acct = &c
		}
		if acct.IsBot() {
			continue
		}
		out = append(out, *acct)
	}
	return out, nil
}

// Languages returns the repository's languages, largest first.
func (g *GitHub) Languages(ctx context.Context, loc types.Locator) ([]string, error) {
	var sizes map[string]int64
	if err := g.getJSON(ctx, repoPath(loc)+"/languages", &sizes); err != nil {
		return nil, fmt.Errorf("languages of %s: %w", loc.FullName(), err)
	}
	langs := make([]string, 0, len(sizes))
	for l := range sizes {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if sizes[langs[i]] != sizes[langs[j]] {
			return sizes[langs[i]] > sizes[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs, nil
}

type tree struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// FileNames lists the files at the top level of the repository at the
// release tag.
func (g *GitHub) FileNames(ctx context.Context, loc types.Locator) ([]string, error) {
	var t tree
	if err := g.getJSON(ctx, repoPath(loc)+"/git/trees/"+url.PathEscape(loc.Tag), &t); err != nil {
		return nil, fmt.Errorf("file list of %s: %w", loc, err)
	}
	var names []string
	for _, e := range t.Tree {
		if e.Type == "blob" && len(names) < maxFileNames {
			names = append(names, e.Path)
		}
	}
	return names, nil
}

// File returns the raw content of path at the release tag.
func (g *GitHub) File(ctx context.Context, loc types.Locator, path string) ([]byte, error) {
	u := repoPath(loc) + "/contents/" + escapePath(path) + "?ref=" + url.QueryEscape(loc.Tag)
	data, err := g.http.Get(ctx, g.base+u, g.header(rawMedia))
	if err != nil {
		return nil, fmt.Errorf("file %s in %s: %w", path, loc, classify(err))
	}
	return data, nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
