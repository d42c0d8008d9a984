// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

func testCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "lookup.db"), ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCached_StoresValue(t *testing.T) {
	c := testCache(t, time.Hour)
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "Caltech", nil
	}

	for range 3 {
		v, err := Cached(ctx, c, "ror", "05dxps055", fetch)
		require.NoError(t, err)
		assert.Equal(t, "Caltech", v)
	}
	assert.Equal(t, 1, calls)
}

func TestCached_NegativeAnswer(t *testing.T) {
	c := testCache(t, time.Hour)
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "", types.ErrNotFound
	}

	_, err := Cached(ctx, c, "orcid", "0000-0000-0000-0000", fetch)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = Cached(ctx, c, "orcid", "0000-0000-0000-0000", fetch)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestCached_TransientErrorNotStored(t *testing.T) {
	c := testCache(t, time.Hour)
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, types.ErrUnavailable
		}
		return 42, nil
	}

	_, err := Cached(ctx, c, "x", "k", fetch)
	assert.ErrorIs(t, err, types.ErrUnavailable)
	v, err := Cached(ctx, c, "x", "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestCached_Expiry(t *testing.T) {
	c := testCache(t, time.Hour)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}
	_, err := Cached(ctx, c, "x", "k", fetch)
	require.NoError(t, err)

	now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = Cached(ctx, c, "x", "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	now = func() time.Time { return base.Add(4 * time.Hour) }
	n, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCached_NilCache(t *testing.T) {
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	}
	_, err := Cached[string](context.Background(), nil, "x", "k", fetch)
	assert.EqualError(t, err, "boom")
	_, _ = Cached[string](context.Background(), nil, "x", "k", fetch)
	assert.Equal(t, 2, calls)
}

func TestCached_LogsCacheFailures(t *testing.T) {
	var buf bytes.Buffer
	c, err := OpenCache(filepath.Join(t.TempDir(), "lookup.db"), time.Hour, logging.NewConsoleLogger(&buf, true))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	_, err = c.db.Exec(`DROP TABLE responses`)
	require.NoError(t, err)

	v, err := Cached(context.Background(), c, "ror", "05dxps055", func(context.Context) (string, error) {
		return "Caltech", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Caltech", v)
	assert.Contains(t, buf.String(), "[VERBOSE] ror 05dxps055: reading cache:")
	assert.Contains(t, buf.String(), "[VERBOSE] ror 05dxps055: writing cache:")

	buf.Reset()
	_, err = Cached(context.Background(), c, "orcid", "0000-0002-1825-0097", func(context.Context) (string, error) {
		return "", types.ErrNotFound
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, buf.String(), "orcid 0000-0002-1825-0097: writing cache:")
}
