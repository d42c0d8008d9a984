// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/caltechlibrary/iga/internal/forge"
	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/internal/lookup"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/reference"
	"github.com/caltechlibrary/iga/internal/resolve"
	"github.com/caltechlibrary/iga/internal/secrets"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

// Exit codes.
const (
	exitOK          = 0
	exitInterrupted = 1
	exitBadArg      = 2
	exitFileError   = 3
	exitForgeError  = 4
	exitRepository  = 5 // reserved for the upload step
	exitBadToken    = 6
	exitOther       = 7
)

// argError marks a problem with the command line.
type argError struct{ msg string }

func (e *argError) Error() string { return e.msg }

func badArgs(format string, args ...any) error { return &argError{msg: fmt.Sprintf(format, args...)} }

func exitCode(err error) int {
	var (
		ae  *argError
		lfe *source.LocalFileError
		mfe *record.MalformedFileError
		ie  *record.IncompleteError
		pe  *os.PathError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &ae):
		return exitBadArg
	case errors.Is(err, forge.ErrBadToken):
		return exitBadToken
	case errors.As(err, &lfe), errors.As(err, &mfe), errors.As(err, &ie), errors.As(err, &pe):
		return exitFileError
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrUnavailable):
		return exitForgeError
	}
	return exitOther
}

func setDefaults() {
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.user_agent", httputil.DefaultUserAgent)
	viper.SetDefault("forge.api", forge.DefaultAPIBase)
	viper.SetDefault("gitlab.server", "gitlab.com")
	viper.SetDefault("lookup.ttl", 30*24*time.Hour)
	viper.SetDefault("lookup.parallelism", 4)
	viper.SetDefault("classifier.model", names.DefaultModel)
	viper.SetDefault("classifier.threshold", 0.5)
	viper.SetDefault("classifier.max_retries", 3)

	if dir, err := os.UserCacheDir(); err == nil {
		viper.SetDefault("lookup.cache", filepath.Join(dir, "iga", "lookups.db"))
	}
}

// loadConfig reads the settings from viper, with secrets files filling in
// credentials that are not configured.
func loadConfig() types.Config {
	httpCfg := types.HTTPConfig{
		Timeout:    viper.GetDuration("http.timeout"),
		UserAgent:  viper.GetString("http.user_agent"),
		MaxRetries: viper.GetInt("http.max_retries"),
	}
	return types.Config{
		Forge: types.ForgeConfig{
			HTTPConfig: httpCfg,
			APIBase:    viper.GetString("forge.api"),
			Token:      loadedSecrets.Or(secrets.GitHubToken, viper.GetString("forge.token")),
		},
		GitLab: types.GitLabConfig{
			ForgeConfig: types.ForgeConfig{
				HTTPConfig: httpCfg,
				APIBase:    viper.GetString("gitlab.api"),
				Token:      loadedSecrets.Or(secrets.GitLabToken, viper.GetString("gitlab.token")),
			},
			Enabled: viper.GetBool("gitlab.enabled"),
			Server:  viper.GetString("gitlab.server"),
		},
		Lookup: types.LookupConfig{
			HTTPConfig:  httpCfg,
			CachePath:   viper.GetString("lookup.cache"),
			CacheTTL:    viper.GetDuration("lookup.ttl"),
			Offline:     viper.GetBool("lookup.offline"),
			Parallelism: viper.GetInt("lookup.parallelism"),
		},
		Classifier: types.ClassifierConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("classifier.model"),
				APIKey:     loadedSecrets.Or(secrets.AnthropicAPIKey, viper.GetString("classifier.api_key")),
				MaxRetries: viper.GetInt("classifier.max_retries"),
			},
			Threshold: viper.GetFloat64("classifier.threshold"),
		},
		Record: types.RecordConfig{
			Publisher:       publisher(viper.GetString("record.publisher"), viper.GetString("invenio.server")),
			AllMetadata:     viper.GetBool("record.all_metadata"),
			HTMLDescription: viper.GetBool("record.html_description"),
			KnownLicenses:   viper.GetStringSlice("record.known_licenses"),
		},
	}
}

// publisher names the repository server: the configured name, else the
// host of the server URL.
func publisher(configured, server string) string {
	if configured != "" || server == "" {
		return configured
	}
	if u, err := url.Parse(server); err == nil && u.Host != "" {
		return u.Host
	}
	return server
}

// pipeline holds the collaborators shared by the commands.
type pipeline struct {
	fetcher  source.Fetcher
	lookups  *lookup.Client
	cache    *lookup.Cache
	resolver *names.Resolver
	biblio   *reference.Client
	refs     *reference.Formatter
	engine   *resolve.Engine
}

// newFetcher returns the client for the forge hosting loc.
func newFetcher(cfg types.Config, loc types.Locator) source.Fetcher {
	if !loc.IsGitLab() {
		return forge.NewGitHub(cfg.Forge, logger)
	}
	// A configured API root applies to the configured server only.
	gl := cfg.GitLab.ForgeConfig
	if gl.APIBase == "" || !strings.EqualFold(loc.WebHost(), cfg.GitLab.Server) {
		gl.APIBase = forge.GitLabAPIBase(loc.WebHost())
	}
	return forge.NewGitLab(gl, logger)
}

// newPipeline wires the collaborators. loc selects the forge; commands
// that fetch no release pass the zero Locator.
func newPipeline(cfg types.Config, loc types.Locator) (*pipeline, error) {
	p := &pipeline{}
	if cfg.Lookup.CachePath != "" {
		cache, err := lookup.OpenCache(cfg.Lookup.CachePath, cfg.Lookup.CacheTTL, logger)
		if err != nil {
			logger.Warn("lookup cache disabled: %v", err)
		} else {
			p.cache = cache
		}
	}
	p.fetcher = newFetcher(cfg, loc)
	p.lookups = lookup.New(cfg.Lookup, p.cache, logger)
	p.biblio = reference.NewClient(p.lookups.HTTP(), p.cache, cfg.Lookup.Offline, logger)
	p.refs = reference.NewFormatter(p.biblio, reference.APA, logger)

	var classifier names.EntityClassifier = names.HeuristicClassifier{}
	if cfg.Classifier.APIKey != "" && !cfg.Lookup.Offline {
		classifier = names.ChainClassifier{
			&names.ClaudeClassifier{
				APIKey:     cfg.Classifier.APIKey,
				Model:      cfg.Classifier.Model,
				MaxRetries: cfg.Classifier.MaxRetries,
				Client:     &http.Client{Timeout: cfg.Lookup.Timeout},
			},
			names.HeuristicClassifier{},
		}
	}
	p.resolver = names.NewResolver(names.Options{
		People:     p.lookups,
		Orgs:       p.lookups,
		Classifier: classifier,
		Threshold:  cfg.Classifier.Threshold,
		Logger:     logger,
	})
	p.engine = resolve.New(resolve.Options{
		Fetcher:     p.fetcher,
		Names:       p.resolver,
		People:      p.lookups,
		Orgs:        p.lookups,
		References:  p.refs,
		Record:      cfg.Record,
		Parallelism: cfg.Lookup.Parallelism,
		Logger:      logger,
	})
	return p, nil
}

func (p *pipeline) Close() error { return p.cache.Close() }
