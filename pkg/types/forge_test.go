// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		in      string
		want    Locator
		wantErr bool
	}{
		{in: "https://github.com/caltechlibrary/iga/releases/tag/v1.2.0", want: Locator{Account: "caltechlibrary", Repo: "iga", Tag: "v1.2.0"}},
		{in: " https://github.com/org/repo/releases/tag/release/2024-01/ ", want: Locator{Account: "org", Repo: "repo", Tag: "release/2024-01"}},
		{in: "https://github.com/org/repo/releases/tag/v1%2Bbuild", want: Locator{Account: "org", Repo: "repo", Tag: "v1+build"}},
		{in: "https://gitlab.com/group/proj/-/releases/v1.0", want: Locator{Forge: ForgeGitLab, Account: "group", Repo: "proj", Tag: "v1.0"}},
		{
			in:   "https://code.jlab.org/physdiv/jrdb/inveniordm_jlab/-/releases/0.1.0",
			want: Locator{Forge: ForgeGitLab, Host: "code.jlab.org", Account: "physdiv/jrdb", Repo: "inveniordm_jlab", Tag: "0.1.0"},
		},
		{in: "https://gitlab.com/group/proj/-/releases", wantErr: true},
		{in: "https://gitlab.com/-/releases/v1", wantErr: true},
		{in: "https://github.com/org/repo", wantErr: true},
		{in: "https://github.com/org/repo/tree/main/x", wantErr: true},
		{in: "org/repo@v1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocator(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocator(t *testing.T) {
	l := Locator{Account: "org", Repo: "Foo", Tag: "v2.0.0"}
	assert.Equal(t, "org/Foo", l.FullName())
	assert.Equal(t, "org/Foo@v2.0.0", l.String())
	assert.Equal(t, "https://github.com/org/Foo/releases/tag/v2.0.0", l.ReleaseURL())
	assert.Equal(t, "GitHub", l.ForgeName())
	assert.Equal(t, "https://github.com/org/Foo/blob/v2.0.0/LICENSE", l.FileURL(l.RepoURL(), "LICENSE"))
	assert.Equal(t, "https://github.com/org/Foo/issues", l.IssuesURL(l.RepoURL()))
	assert.Equal(t, "https://org.github.io/Foo", l.PagesURL("Org", "Foo"))
}

func TestLocator_GitLab(t *testing.T) {
	l := Locator{Forge: ForgeGitLab, Account: "Group/sub", Repo: "proj", Tag: "1.0"}
	assert.Equal(t, "GitLab", l.ForgeName())
	assert.Equal(t, "https://gitlab.com/Group/sub/proj", l.RepoURL())
	assert.Equal(t, "https://gitlab.com/Group/sub/proj/-/releases/1.0", l.ReleaseURL())
	assert.Equal(t, "https://gitlab.com/Group/sub/proj/-/blob/1.0/COPYING", l.FileURL(l.RepoURL(), "COPYING"))
	assert.Equal(t, "https://gitlab.com/Group/sub/proj/-/issues", l.IssuesURL(l.RepoURL()))
	assert.Equal(t, "https://group.gitlab.io/sub/proj", l.PagesURL(l.Account, l.Repo))

	self := Locator{Forge: ForgeGitLab, Host: "code.example.org", Account: "g", Repo: "p", Tag: "1"}
	assert.Equal(t, "https://code.example.org/g/p", self.RepoURL())
	assert.Equal(t, "", self.PagesURL("g", "p"))
}

func TestAccount(t *testing.T) {
	assert.True(t, Account{Login: "dependabot[bot]"}.IsBot())
	assert.True(t, Account{Login: "renovate", Type: "Bot"}.IsBot())
	assert.False(t, Account{Login: "ann", Type: "User"}.IsBot())
	assert.True(t, Account{Login: "caltechlibrary", Type: "Organization"}.IsOrganization())
}
