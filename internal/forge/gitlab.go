// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

// GitLabAPIBase returns the REST v4 root of the GitLab server at host.
func GitLabAPIBase(host string) string { return "https://" + host + "/api/v4" }

// GitLab is a client for the parts of the GitLab REST v4 API used to
// describe a release. It serves gitlab.com and self-hosted servers alike.
type GitLab struct {
	http  *httputil.Client
	base  string
	token string
	log   logging.Logger
}

// NewGitLab creates a client from cfg. cfg.APIBase must name the server's
// API root, e.g. GitLabAPIBase("gitlab.com").
func NewGitLab(cfg types.ForgeConfig, log logging.Logger) *GitLab {
	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = GitLabAPIBase("gitlab.com")
	}
	return &GitLab{
		http:  httputil.NewClient(cfg.HTTPConfig),
		base:  base,
		token: cfg.Token,
		log:   logging.OrNull(log),
	}
}

func (g *GitLab) header() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	if g.token != "" {
		h.Set("PRIVATE-TOKEN", g.token)
	}
	return h
}

func (g *GitLab) getJSON(ctx context.Context, path string, dst any) error {
	return classify(g.http.GetJSON(ctx, g.base+path, g.header(), dst))
}

// projectPath addresses a project by its URL-encoded full path.
func projectPath(loc types.Locator) string {
	return "/projects/" + url.PathEscape(loc.FullName())
}

type glUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	WebURL   string `json:"web_url"`
	Bot      bool   `json:"bot"`
	Email    string `json:"public_email"`
	Org      string `json:"organization"`
}

func (u glUser) account() types.Account {
	a := types.Account{Login: u.Username, Name: u.Name, Type: "User", Email: u.Email, Company: u.Org, HTMLURL: u.WebURL}
	if u.Bot {
		a.Type = "Bot"
	}
	return a
}

type glRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleasedAt  time.Time `json:"released_at"`
	CreatedAt   time.Time `json:"created_at"`
	Upcoming    bool      `json:"upcoming_release"`
	Author      *glUser   `json:"author"`
	Links       struct {
		Self string `json:"self"`
	} `json:"_links"`
	Assets struct {
		Sources []struct {
			Format string `json:"format"`
			URL    string `json:"url"`
		} `json:"sources"`
		Links []struct {
			Name           string `json:"name"`
			URL            string `json:"url"`
			DirectAssetURL string `json:"direct_asset_url"`
		} `json:"links"`
	} `json:"assets"`
}

// Release returns the release for loc.Tag. Linked assets become release
// assets and the zip source archive the zipball.
func (g *GitLab) Release(ctx context.Context, loc types.Locator) (*types.Release, error) {
	var r glRelease
	if err := g.getJSON(ctx, projectPath(loc)+"/releases/"+url.PathEscape(loc.Tag), &r); err != nil {
		return nil, fmt.Errorf("release %s: %w", loc, err)
	}
	rel := &types.Release{
		TagName:     r.TagName,
		Name:        r.Name,
		Body:        r.Description,
		HTMLURL:     r.Links.Self,
		Prerelease:  r.Upcoming,
		PublishedAt: r.ReleasedAt,
	}
	if rel.PublishedAt.IsZero() {
		rel.PublishedAt = r.CreatedAt
	}
	if r.Author != nil {
		a := r.Author.account()
		rel.Author = &a
	}
	for _, l := range r.Assets.Links {
		u := l.DirectAssetURL
		if u == "" {
			u = l.URL
		}
		rel.Assets = append(rel.Assets, types.Asset{Name: l.Name, DownloadURL: u})
	}
	for _, s := range r.Assets.Sources {
		if s.Format == "zip" {
			rel.ZipballURL = s.URL
		}
	}
	g.log.Verbose("got release %s (%s)", rel.TagName, rel.HTMLURL)
	return rel, nil
}

type glProject struct {
	Name              string    `json:"name"`
	PathWithNamespace string    `json:"path_with_namespace"`
	Description       string    `json:"description"`
	WebURL            string    `json:"web_url"`
	Topics            []string  `json:"topics"`
	IssuesEnabled     bool      `json:"issues_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	LastActivityAt    time.Time `json:"last_activity_at"`
	ForkedFrom        *struct{} `json:"forked_from_project"`
	Namespace         struct {
		Kind     string `json:"kind"`
		Path     string `json:"path"`
		FullPath string `json:"full_path"`
		Name     string `json:"name"`
	} `json:"namespace"`
	License *struct {
		Key     string `json:"key"`
		Name    string `json:"name"`
		HTMLURL string `json:"html_url"`
	} `json:"license"`
}

// Repository returns the project for loc. The owner is the project's
// namespace: a group becomes an organization account.
func (g *GitLab) Repository(ctx context.Context, loc types.Locator) (*types.Repository, error) {
	var p glProject
	if err := g.getJSON(ctx, projectPath(loc)+"?license=true", &p); err != nil {
		return nil, fmt.Errorf("repository %s: %w", loc.FullName(), err)
	}
	repo := &types.Repository{
		FullName:    p.PathWithNamespace,
		Name:        p.Name,
		Description: p.Description,
		HTMLURL:     p.WebURL,
		Topics:      p.Topics,
		HasIssues:   p.IssuesEnabled,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.LastActivityAt,
		Fork:        p.ForkedFrom != nil,
	}
	owner := &types.Account{Login: p.Namespace.FullPath, Name: p.Namespace.Name, Type: "User"}
	if p.Namespace.Kind == "group" {
		owner.Type = "Organization"
	} else {
		// A user namespace is named by login; the display name needs a
		// user lookup.
		owner.Name = ""
	}
	repo.Owner = owner
	if p.License != nil {
		// GitLab license keys are lowercase SPDX ids.
		repo.License = &types.RepoLicense{Key: p.License.Key, Name: p.License.Name, SPDXID: p.License.Key, URL: p.License.HTMLURL}
	}
	g.log.Verbose("got repository %s", repo.FullName)
	return repo, nil
}

// Account returns the user with the given username, or else the group
// with that path.
func (g *GitLab) Account(ctx context.Context, login string) (*types.Account, error) {
	var users []glUser
	if err := g.getJSON(ctx, "/users?username="+url.QueryEscape(login), &users); err != nil {
		return nil, fmt.Errorf("account %s: %w", login, err)
	}
	if len(users) > 0 {
		a := users[0].account()
		return &a, nil
	}
	var group struct {
		Name     string `json:"name"`
		FullPath string `json:"full_path"`
		WebURL   string `json:"web_url"`
	}
	if err := g.getJSON(ctx, "/groups/"+url.PathEscape(login), &group); err != nil {
		return nil, fmt.Errorf("account %s: %w", login, err)
	}
	return &types.Account{Login: group.FullPath, Name: group.Name, Type: "Organization", HTMLURL: group.WebURL}, nil
}

// Contributors returns the commit authors of the repository, most commits
// first. GitLab reports them by commit name and email, not by account.
func (g *GitLab) Contributors(ctx context.Context, loc types.Locator) ([]types.Account, error) {
	var list []struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Commits int    `json:"commits"`
	}
	path := fmt.Sprintf("%s/repository/contributors?order_by=commits&sort=desc&per_page=%d", projectPath(loc), pageSize)
	if err := g.getJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("contributors of %s: %w", loc.FullName(), err)
	}
	var out []types.Account
	for _, c := range list {
		a := types.Account{Login: c.Name, Name: c.Name, Email: c.Email, Type: "User"}
		if a.IsBot() || strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Languages returns the repository's languages, largest share first.
func (g *GitLab) Languages(ctx context.Context, loc types.Locator) ([]string, error) {
	var shares map[string]float64
	if err := g.getJSON(ctx, projectPath(loc)+"/languages", &shares); err != nil {
		return nil, fmt.Errorf("languages of %s: %w", loc.FullName(), err)
	}
	langs := make([]string, 0, len(shares))
	for l := range shares {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if shares[langs[i]] != shares[langs[j]] {
			return shares[langs[i]] > shares[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs, nil
}

// FileNames lists the files at the top level of the repository at the
// release tag.
func (g *GitLab) FileNames(ctx context.Context, loc types.Locator) ([]string, error) {
	var entries []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	}
	path := fmt.Sprintf("%s/repository/tree?ref=%s&per_page=%d", projectPath(loc), url.QueryEscape(loc.Tag), pageSize)
	if err := g.getJSON(ctx, path, &entries); err != nil {
		return nil, fmt.Errorf("file list of %s: %w", loc, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type == "blob" {
			names = append(names, e.Path)
		}
	}
	return names, nil
}

// File returns the raw content of path at the release tag.
func (g *GitLab) File(ctx context.Context, loc types.Locator, path string) ([]byte, error) {
	u := projectPath(loc) + "/repository/files/" + url.PathEscape(strings.Trim(path, "/")) + "/raw?ref=" + url.QueryEscape(loc.Tag)
	data, err := g.http.Get(ctx, g.base+u, g.header())
	if err != nil {
		return nil, fmt.Errorf("file %s in %s: %w", path, loc, classify(err))
	}
	return data, nil
}
