// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned by collaborators when the requested object does
// not exist. Callers treat it as an absent source.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned by collaborators that failed or timed out.
// Callers treat it the same way as ErrNotFound.
var ErrUnavailable = errors.New("service unavailable")

// Forge kinds.
const (
	ForgeGitHub = "github"
	ForgeGitLab = "gitlab"
)

const (
	gitHubHost = "github.com"
	gitLabHost = "gitlab.com"
)

// Locator identifies one tagged release of a forge repository. The zero
// Forge means GitHub. On GitLab, Account is the full namespace path and may
// contain slashes (group/subgroup).
type Locator struct {
	Forge   string `json:"forge,omitempty" yaml:"forge,omitempty"`
	Host    string `json:"host,omitempty" yaml:"host,omitempty"`
	Account string `json:"account" yaml:"account"`
	Repo    string `json:"repo" yaml:"repo"`
	Tag     string `json:"tag" yaml:"tag"`
}

// IsGitLab reports whether the release lives on a GitLab server.
func (l Locator) IsGitLab() bool { return l.Forge == ForgeGitLab }

// ForgeName is the display name of the forge.
func (l Locator) ForgeName() string {
	if l.IsGitLab() {
		return "GitLab"
	}
	return "GitHub"
}

// WebHost returns the forge's web host.
func (l Locator) WebHost() string {
	switch {
	case l.Host != "":
		return l.Host
	case l.IsGitLab():
		return gitLabHost
	}
	return gitHubHost
}

// FullName returns "account/repo".
func (l Locator) FullName() string { return l.Account + "/" + l.Repo }

// RepoURL returns the web page of the repository.
func (l Locator) RepoURL() string { return "https://" + l.WebHost() + "/" + l.FullName() }

// webPath prefixes GitLab's "/-" separator to a repository sub-page.
func (l Locator) webPath(page string) string {
	if l.IsGitLab() {
		return "/-" + page
	}
	return page
}

// ReleaseURL returns the web page of the release.
func (l Locator) ReleaseURL() string {
	if l.IsGitLab() {
		return l.RepoURL() + "/-/releases/" + l.Tag
	}
	return l.RepoURL() + "/releases/tag/" + l.Tag
}

// FileURL returns the web page of path at the release tag under base, the
// repository URL.
func (l Locator) FileURL(base, path string) string {
	return base + l.webPath("/blob/"+l.Tag+"/"+path)
}

// IssuesURL returns the issue tracker page under base, the repository URL.
func (l Locator) IssuesURL(base string) string { return base + l.webPath("/issues") }

// PagesURL returns the default project site of a repository owned by
// owner, or "" when the forge has no predictable one.
func (l Locator) PagesURL(owner, repo string) string {
	switch {
	case !l.IsGitLab() && l.WebHost() == gitHubHost:
		return "https://" + strings.ToLower(owner) + ".github.io/" + repo
	case l.IsGitLab() && l.WebHost() == gitLabHost:
		top, rest, _ := strings.Cut(owner, "/")
		site := "https://" + strings.ToLower(top) + ".gitlab.io/"
		if rest != "" {
			site += rest + "/"
		}
		return site + repo
	}
	return ""
}

func (l Locator) String() string { return l.FullName() + "@" + l.Tag }

// ParseLocator parses a release URL. GitHub URLs have the form
// https://github.com/{account}/{repo}/releases/tag/{tag}; GitLab URLs
// https://{host}/{namespace...}/{repo}/-/releases/{tag}.
func ParseLocator(releaseURL string) (Locator, error) {
	u, err := url.Parse(strings.TrimSpace(releaseURL))
	if err != nil || u.Host == "" {
		return Locator{}, fmt.Errorf("not a release URL: %q", releaseURL)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	loc := Locator{}
	var tagParts []string
	if i := indexOf(parts, "-"); i >= 2 && i+2 < len(parts) && parts[i+1] == "releases" {
		loc = Locator{
			Forge:   ForgeGitLab,
			Account: strings.Join(parts[:i-1], "/"),
			Repo:    parts[i-1],
		}
		if u.Host != gitLabHost {
			loc.Host = u.Host
		}
		tagParts = parts[i+2:]
	} else if len(parts) >= 5 && parts[2] == "releases" && parts[3] == "tag" {
		loc = Locator{Account: parts[0], Repo: parts[1]}
		if u.Host != gitHubHost && u.Host != "www."+gitHubHost {
			loc.Host = u.Host
		}
		tagParts = parts[4:]
	} else {
		return Locator{}, fmt.Errorf("not a release URL: %q", releaseURL)
	}

	tag, err := url.PathUnescape(strings.Join(tagParts, "/"))
	if err != nil {
		return Locator{}, fmt.Errorf("bad tag in %q: %w", releaseURL, err)
	}
	loc.Tag = tag
	return loc, nil
}

func indexOf(parts []string, s string) int {
	for i, p := range parts {
		if p == s {
			return i
		}
	}
	return -1
}

// Account is a forge user or organization account.
type Account struct {
	Login   string `json:"login" yaml:"login"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	HTMLURL string `json:"html_url,omitempty" yaml:"html_url,omitempty"`
}

// IsBot reports whether the account is an automation account.
func (a Account) IsBot() bool {
	return a.Type == "Bot" || strings.HasSuffix(a.Login, "[bot]")
}

// IsOrganization reports whether the account belongs to an organization.
func (a Account) IsOrganization() bool { return a.Type == "Organization" }

// Asset is a file attached to a release.
type Asset struct {
	Name        string `json:"name" yaml:"name"`
	DownloadURL string `json:"browser_download_url" yaml:"browser_download_url"`
	Size        int64  `json:"size" yaml:"size"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
}

// Release is the forge's description of one tagged release.
type Release struct {
	TagName     string    `json:"tag_name" yaml:"tag_name"`
	Name        string    `json:"name" yaml:"name"`
	Body        string    `json:"body" yaml:"body"`
	HTMLURL     string    `json:"html_url" yaml:"html_url"`
	ZipballURL  string    `json:"zipball_url" yaml:"zipball_url"`
	Draft       bool      `json:"draft" yaml:"draft"`
	Prerelease  bool      `json:"prerelease" yaml:"prerelease"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	Author      *Account  `json:"author,omitempty" yaml:"author,omitempty"`
	Assets      []Asset   `json:"assets" yaml:"assets"`
}

// RepoLicense is the license the forge detected for a repository.
type RepoLicense struct {
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	SPDXID string `json:"spdx_id" yaml:"spdx_id"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Repository is the forge's description of a repository.
type Repository struct {
	FullName    string       `json:"full_name" yaml:"full_name"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	HTMLURL     string       `json:"html_url" yaml:"html_url"`
	Homepage    string       `json:"homepage" yaml:"homepage"`
	Topics      []string     `json:"topics" yaml:"topics"`
	Owner       *Account     `json:"owner,omitempty" yaml:"owner,omitempty"`
	License     *RepoLicense `json:"license,omitempty" yaml:"license,omitempty"`
	HasIssues   bool         `json:"has_issues" yaml:"has_issues"`
	HasPages    bool         `json:"has_pages" yaml:"has_pages"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" yaml:"updated_at"`
	Fork        bool         `json:"fork" yaml:"fork"`

	// Languages and Contributors come from separate API calls.
	Languages    []string  `json:"-" yaml:"-"`
	Contributors []Account `json:"-" yaml:"-"`
}
