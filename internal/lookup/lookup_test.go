// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 0
}

func serve(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func withBases(t *testing.T, orcid, ror string) {
	t.Helper()
	oldO, oldR := orcidAPIBase, rorAPIBase
	orcidAPIBase, rorAPIBase = orcid, ror
	t.Cleanup(func() { orcidAPIBase, rorAPIBase = oldO, oldR })
}

func TestLookupPersonName(t *testing.T) {
	srv := serve(t, map[string]string{
		"/0000-0001-9105-5960/person": `{"name":{"given-names":{"value":"Michael"},"family-name":{"value":"Hucka"}}}`,
		"/0000-0002-1825-0097/person": `{"name":{"given-names":{"value":"Josiah"},"family-name":{"value":"Carberry"},"credit-name":{"value":"Josiah S. Carberry"}}}`,
		"/0000-0003-0000-0001/person": `{"name":null}`,
	})
	withBases(t, srv.URL+"/", srv.URL+"/")
	c := New(types.LookupConfig{}, nil, nil)
	ctx := context.Background()

	g, f, err := c.LookupPersonName(ctx, "0000-0001-9105-5960")
	require.NoError(t, err)
	assert.Equal(t, "Michael", g)
	assert.Equal(t, "Hucka", f)

	g, f, err = c.LookupPersonName(ctx, "0000-0002-1825-0097")
	require.NoError(t, err)
	assert.Equal(t, "Josiah S.", g)
	assert.Equal(t, "Carberry", f)

	_, _, err = c.LookupPersonName(ctx, "0000-0003-0000-0001")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, _, err = c.LookupPersonName(ctx, "0000-0009-9999-9999")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestLookupOrganizationName_FollowsSuccessor(t *testing.T) {
	srv := serve(t, map[string]string{
		"/old111111": `{"status":"withdrawn","names":[{"value":"Old Lab","types":["ror_display"]}],"relationships":[{"type":"successor","id":"https://ror.org/new222222"}]}`,
		"/new222222": `{"status":"active","names":[{"value":"NL","types":["acronym"]},{"value":"New Lab","types":["ror_display","label"]}]}`,
		"/legacy333": `{"name":"Legacy Institute","status":"active"}`,
	})
	withBases(t, srv.URL+"/", srv.URL+"/")
	c := New(types.LookupConfig{}, nil, nil)
	ctx := context.Background()

	name, err := c.LookupOrganizationName(ctx, "old111111")
	require.NoError(t, err)
	assert.Equal(t, "New Lab", name)

	name, err = c.LookupOrganizationName(ctx, "legacy333")
	require.NoError(t, err)
	assert.Equal(t, "Legacy Institute", name)
}

func TestLookupOrganizationName_SuccessorLoopIsBounded(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		id := strings.TrimPrefix(r.URL.Path, "/")
		w.Write([]byte(`{"status":"withdrawn","name":"Lab ` + id + `","relationships":[{"type":"successor","id":"https://ror.org/` + id + `x"}]}`))
	}))
	t.Cleanup(srv.Close)
	withBases(t, srv.URL+"/", srv.URL+"/")

	name, err := New(types.LookupConfig{}, nil, nil).LookupOrganizationName(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Lab axxxx", name)
	assert.Equal(t, maxSuccessorHops+1, hits)
}

func TestOffline(t *testing.T) {
	c := New(types.LookupConfig{Offline: true}, nil, nil)
	_, _, err := c.LookupPersonName(context.Background(), "0000-0001-9105-5960")
	assert.ErrorIs(t, err, types.ErrUnavailable)
	_, err = c.LookupOrganizationName(context.Background(), "05dxps055")
	assert.ErrorIs(t, err, types.ErrUnavailable)
}
