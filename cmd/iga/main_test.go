// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/internal/forge"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", fmt.Errorf("loading: %w", context.Canceled), exitInterrupted},
		{"bad arguments", badArgs("nope"), exitBadArg},
		{"bad token", fmt.Errorf("release: %w", forge.ErrBadToken), exitBadToken},
		{"local file", &source.LocalFileError{Path: "x", Err: fs.ErrNotExist}, exitFileError},
		{"malformed override", &record.MalformedFileError{Path: "r.json", Err: errors.New("bad")}, exitFileError},
		{"incomplete record", &record.IncompleteError{Missing: []record.Field{record.FieldCreators}}, exitFileError},
		{"output path", &os.PathError{Op: "open", Path: "out", Err: fs.ErrPermission}, exitFileError},
		{"release not found", fmt.Errorf("release: %w", types.ErrNotFound), exitForgeError},
		{"forge unavailable", fmt.Errorf("repo: %w", types.ErrUnavailable), exitForgeError},
		{"anything else", errors.New("boom"), exitOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestParseRelease(t *testing.T) {
	loc, err := parseRelease([]string{"https://github.com/caltechlibrary/iga/releases/tag/v1.2.0"}, types.GitLabConfig{})
	require.NoError(t, err)
	assert.Equal(t, types.Locator{Account: "caltechlibrary", Repo: "iga", Tag: "v1.2.0"}, loc)

	loc, err = parseRelease([]string{"caltechlibrary", "iga", "v1.2.0"}, types.GitLabConfig{})
	require.NoError(t, err)
	assert.Equal(t, "caltechlibrary/iga@v1.2.0", loc.String())
	assert.False(t, loc.IsGitLab())

	for _, args := range [][]string{
		nil,
		{"https://github.com/caltechlibrary/iga"},
		{"caltechlibrary", "iga"},
		{"caltechlibrary", " ", "v1"},
	} {
		_, err := parseRelease(args, types.GitLabConfig{})
		assert.Equal(t, exitBadArg, exitCode(err), "args %q", args)
	}
}

func TestParseRelease_GitLab(t *testing.T) {
	selfHosted := types.GitLabConfig{Enabled: true, Server: "code.jlab.org"}
	tests := []struct {
		name string
		args []string
		gl   types.GitLabConfig
		want types.Locator
	}{
		{"gitlab URL without the setting", []string{"https://gitlab.com/grp/sub/tool/-/releases/v1"}, types.GitLabConfig{},
			types.Locator{Forge: types.ForgeGitLab, Account: "grp/sub", Repo: "tool", Tag: "v1"}},
		{"parts on gitlab.com", []string{"grp", "tool", "v1"}, types.GitLabConfig{Enabled: true, Server: "gitlab.com"},
			types.Locator{Forge: types.ForgeGitLab, Account: "grp", Repo: "tool", Tag: "v1"}},
		{"parts on a self-hosted server", []string{"physdiv/jrdb", "inveniordm_jlab", "0.1.0"}, selfHosted,
			types.Locator{Forge: types.ForgeGitLab, Host: "code.jlab.org", Account: "physdiv/jrdb", Repo: "inveniordm_jlab", Tag: "0.1.0"}},
		{"tag URL on another host", []string{"https://code.jlab.org/grp/tool/releases/tag/v2"}, selfHosted,
			types.Locator{Forge: types.ForgeGitLab, Host: "code.jlab.org", Account: "grp", Repo: "tool", Tag: "v2"}},
		{"github URL stays on GitHub", []string{"https://github.com/org/tool/releases/tag/v3"}, selfHosted,
			types.Locator{Account: "org", Repo: "tool", Tag: "v3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := parseRelease(tt.args, tt.gl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)
		})
	}
}

func TestNewFetcher(t *testing.T) {
	cfg := types.Config{GitLab: types.GitLabConfig{Server: "code.jlab.org", ForgeConfig: types.ForgeConfig{APIBase: "https://code.jlab.org/gitlab/api/v4"}}}

	_, ok := newFetcher(cfg, types.Locator{Account: "org", Repo: "tool", Tag: "v1"}).(*forge.GitHub)
	assert.True(t, ok)

	_, ok = newFetcher(cfg, types.Locator{Forge: types.ForgeGitLab, Host: "code.jlab.org", Account: "grp", Repo: "tool", Tag: "v1"}).(*forge.GitLab)
	assert.True(t, ok)
}

// Every package source file carries the copyright header.
func TestSourceFilesHaveCopyrightHeader(t *testing.T) {
	const header = "// Copyright Mesh Intelligence Inc., 2026. All rights reserved.\n"
	for _, dir := range []string{"../../cmd", "../../internal", "../../pkg"} {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
				return err
			}
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), header), "%s lacks the copyright header", path)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestPublisher(t *testing.T) {
	assert.Equal(t, "CaltechDATA", publisher("CaltechDATA", "https://data.caltech.edu"))
	assert.Equal(t, "data.caltech.edu", publisher("", "https://data.caltech.edu/"))
	assert.Equal(t, "", publisher("", ""))
}
