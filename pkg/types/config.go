// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every network collaborator.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "iga/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on 429 and 5xx responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ForgeConfig holds settings for a forge API collaborator.
type ForgeConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the REST API root (for GitHub, default
	// https://api.github.com).
	APIBase string `json:"api_base" yaml:"api_base"`

	// Token is an optional personal access token. Without one the forge
	// applies a low anonymous rate limit.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// GitLabConfig holds settings for releases hosted on GitLab.
type GitLabConfig struct {
	ForgeConfig `yaml:",inline"`

	// Enabled makes account, repository and tag arguments name a GitLab
	// release. Release URLs are recognized either way.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Server is the web host of the GitLab server (default gitlab.com).
	// APIBase defaults to its /api/v4 root.
	Server string `json:"server" yaml:"server"`
}

// LookupConfig holds settings for ORCID, ROR, and bibliographic lookups.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// CachePath is the SQLite cache file. Empty disables caching.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// CacheTTL is how long a cached response stays fresh (default 30 days).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// Offline disables every network lookup; resolution then relies on
	// the sources alone.
	Offline bool `json:"offline" yaml:"offline"`

	// Parallelism bounds concurrent reference lookups (default 4).
	Parallelism int `json:"parallelism" yaml:"parallelism"`
}

// AIConfig holds settings for the LLM-backed entity classifier.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. Empty disables the
	// LLM classifier and leaves only the local heuristics.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifierConfig holds settings for named-entity classification.
type ClassifierConfig struct {
	AIConfig `yaml:",inline"`

	// Threshold is the minimum confidence for a PERSON label to count
	// (default 0.5).
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// RecordConfig holds settings that shape the output record.
type RecordConfig struct {
	// Publisher is the name of the InvenioRDM server (default "InvenioRDM").
	Publisher string `json:"publisher" yaml:"publisher"`

	// AllMetadata also uses repository data when codemeta.json or
	// CITATION.cff exist.
	AllMetadata bool `json:"all_metadata" yaml:"all_metadata"`

	// HTMLDescription renders the release notes from Markdown to HTML.
	HTMLDescription bool `json:"html_description" yaml:"html_description"`

	// KnownLicenses lists license ids the server vocabulary accepts.
	// Empty means every SPDX id is accepted.
	KnownLicenses []string `json:"known_licenses,omitempty" yaml:"known_licenses,omitempty"`
}

// Config groups all settings of one iga invocation.
type Config struct {
	Forge      ForgeConfig      `json:"forge" yaml:"forge"`
	GitLab     GitLabConfig     `json:"gitlab" yaml:"gitlab"`
	Lookup     LookupConfig     `json:"lookup" yaml:"lookup"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Record     RecordConfig     `json:"record" yaml:"record"`
}
