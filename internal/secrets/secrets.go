// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the file name is the key and the trimmed
// contents are the value.
//
// Known keys: github-token, anthropic-api-key, invenio-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caltechlibrary/iga/internal/logging"
)

// DefaultDir is where the CLI looks for secret files.
const DefaultDir = ".secrets"

// Key names recognized by iga.
const (
	GitHubToken     = "github-token"
	GitLabToken     = "gitlab-token"
	AnthropicAPIKey = "anthropic-api-key"
	InvenioToken    = "invenio-token"
)

// Set holds loaded secrets by key.
type Set map[string]string

// Load reads all files in dir. A missing directory is not an error and
// gives an empty Set. Unreadable files are logged and skipped.
func Load(dir string, log logging.Logger) (Set, error) {
	log = logging.OrNull(log)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := Set{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret %s: %v", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Or returns explicit when it is set, else the secret for key.
func (s Set) Or(key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s[key]
}

// Keys returns the loaded key names, sorted. Values are never listed.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
