// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package forge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/pkg/types"
)

var glLoc = types.Locator{Forge: types.ForgeGitLab, Host: "code.example.org", Account: "physdiv/jrdb", Repo: "tool", Tag: "v0.1.0"}

// Routes are keyed by escaped path, since project ids carry %2F.
func newTestGitLab(t *testing.T, token string, routes map[string]string) *GitLab {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("PRIVATE-TOKEN") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		key := r.URL.EscapedPath()
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewGitLab(types.ForgeConfig{APIBase: srv.URL, Token: token}, nil)
}

const glProjectID = "/projects/physdiv%2Fjrdb%2Ftool"

func TestGitLabAPIBase(t *testing.T) {
	assert.Equal(t, "https://gitlab.com/api/v4", GitLabAPIBase("gitlab.com"))
	g := NewGitLab(types.ForgeConfig{}, nil)
	assert.Equal(t, "https://gitlab.com/api/v4", g.base)
}

func TestGitLab_Release(t *testing.T) {
	g := newTestGitLab(t, "tok", map[string]string{
		glProjectID + "/releases/v0.1.0": `{
			"tag_name":"v0.1.0","name":"First","description":"notes",
			"released_at":"2024-05-02T10:00:00Z","created_at":"2024-05-01T10:00:00Z",
			"author":{"username":"ann","name":"Ann Lee","web_url":"https://code.example.org/ann"},
			"_links":{"self":"https://code.example.org/physdiv/jrdb/tool/-/releases/v0.1.0"},
			"assets":{
				"sources":[{"format":"tar.gz","url":"https://x/tool.tar.gz"},{"format":"zip","url":"https://x/tool.zip"}],
				"links":[{"name":"binary","url":"https://x/l/1","direct_asset_url":"https://x/bin"},{"name":"doc","url":"https://x/doc.pdf"}]
			}}`,
	})
	rel, err := g.Release(context.Background(), glLoc)
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", rel.TagName)
	assert.Equal(t, "notes", rel.Body)
	assert.Equal(t, "https://code.example.org/physdiv/jrdb/tool/-/releases/v0.1.0", rel.HTMLURL)
	assert.Equal(t, 2, rel.PublishedAt.Day())
	require.NotNil(t, rel.Author)
	assert.Equal(t, types.Account{Login: "ann", Name: "Ann Lee", Type: "User", HTMLURL: "https://code.example.org/ann"}, *rel.Author)
	assert.Equal(t, "https://x/tool.zip", rel.ZipballURL)
	assert.Equal(t, []types.Asset{
		{Name: "binary", DownloadURL: "https://x/bin"},
		{Name: "doc", DownloadURL: "https://x/doc.pdf"},
	}, rel.Assets)

	_, err = g.Release(context.Background(), types.Locator{Account: "physdiv/jrdb", Repo: "tool", Tag: "v9"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGitLab_Repository(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		wantOwner types.Account
	}{
		{"group namespace", `{"kind":"group","path":"jrdb","full_path":"physdiv/jrdb","name":"JRDB"}`,
			types.Account{Login: "physdiv/jrdb", Name: "JRDB", Type: "Organization"}},
		{"user namespace", `{"kind":"user","path":"ann","full_path":"ann","name":"Ann Lee"}`,
			types.Account{Login: "ann", Type: "User"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGitLab(t, "", map[string]string{
				glProjectID + "?license=true": `{"name":"tool","path_with_namespace":"physdiv/jrdb/tool",
					"description":"A tool","web_url":"https://code.example.org/physdiv/jrdb/tool",
					"topics":["physics"],"issues_enabled":true,
					"created_at":"2023-01-01T00:00:00Z","last_activity_at":"2024-05-02T00:00:00Z",
					"namespace":` + tt.namespace + `,
					"license":{"key":"mit","name":"MIT License","html_url":"https://opensource.org/licenses/MIT"}}`,
			})
			repo, err := g.Repository(context.Background(), glLoc)
			require.NoError(t, err)
			assert.Equal(t, "physdiv/jrdb/tool", repo.FullName)
			assert.Equal(t, []string{"physics"}, repo.Topics)
			assert.True(t, repo.HasIssues)
			assert.False(t, repo.Fork)
			assert.Equal(t, 2024, repo.UpdatedAt.Year())
			require.NotNil(t, repo.Owner)
			assert.Equal(t, tt.wantOwner, *repo.Owner)
			require.NotNil(t, repo.License)
			assert.Equal(t, "mit", repo.License.SPDXID)
		})
	}
}

func TestGitLab_Account(t *testing.T) {
	g := newTestGitLab(t, "", map[string]string{
		"/users?username=ann":     `[{"username":"ann","name":"Ann Lee","organization":"Caltech"}]`,
		"/users?username=physdiv": `[]`,
		"/groups/physdiv":         `{"name":"Physics Division","full_path":"physdiv","web_url":"https://code.example.org/physdiv"}`,
		"/users?username=ci":      `[{"username":"ci","name":"CI","bot":true}]`,
	})
	ctx := context.Background()

	a, err := g.Account(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", a.Name)
	assert.Equal(t, "Caltech", a.Company)
	assert.False(t, a.IsOrganization())

	a, err = g.Account(ctx, "physdiv")
	require.NoError(t, err)
	assert.True(t, a.IsOrganization())
	assert.Equal(t, "Physics Division", a.Name)

	a, err = g.Account(ctx, "ci")
	require.NoError(t, err)
	assert.True(t, a.IsBot())

	_, err = g.Account(ctx, "nobody")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGitLab_ContributorsAndLanguages(t *testing.T) {
	g := newTestGitLab(t, "", map[string]string{
		glProjectID + "/repository/contributors?order_by=commits&sort=desc&per_page=100": `[{"name":"Ann Lee","email":"ann@example.org","commits":40},{"name":"renovate[bot]","commits":9},{"name":" ","commits":1}]`,
		glProjectID + "/languages": `{"Python":12.5,"C++":80.1,"CMake":7.4}`,
	})
	ctx := context.Background()

	got, err := g.Contributors(ctx, glLoc)
	require.NoError(t, err)
	assert.Equal(t, []types.Account{{Login: "Ann Lee", Name: "Ann Lee", Email: "ann@example.org", Type: "User"}}, got)

	langs, err := g.Languages(ctx, glLoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"C++", "Python", "CMake"}, langs)
}

func TestGitLab_FileNamesAndFile(t *testing.T) {
	g := newTestGitLab(t, "", map[string]string{
		glProjectID + "/repository/tree?ref=v0.1.0&per_page=100":         `[{"path":"codemeta.json","type":"blob"},{"path":"docs","type":"tree"},{"path":"LICENSE","type":"blob"}]`,
		glProjectID + "/repository/files/codemeta.json/raw?ref=v0.1.0":   `{"name":"tool"}`,
		glProjectID + "/repository/files/docs%2Fguide.md/raw?ref=v0.1.0": "# Guide\n",
	})
	ctx := context.Background()

	files, err := g.FileNames(ctx, glLoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"codemeta.json", "LICENSE"}, files)

	data, err := g.File(ctx, glLoc, "codemeta.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"tool"}`, string(data))

	data, err = g.File(ctx, glLoc, "docs/guide.md")
	require.NoError(t, err)
	assert.Equal(t, "# Guide\n", string(data))

	_, err = g.File(ctx, glLoc, "CITATION.cff")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGitLab_BadToken(t *testing.T) {
	g := newTestGitLab(t, "right", nil)
	g.token = "wrong"
	_, err := g.Repository(context.Background(), glLoc)
	assert.ErrorIs(t, err, ErrBadToken)
	_, err = g.File(context.Background(), glLoc, "codemeta.json")
	assert.ErrorIs(t, err, ErrBadToken)
}
