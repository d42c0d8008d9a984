// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads the metadata sources that describe a release: the
// codemeta.json and CITATION.cff files in the repository, and the release
// and repository records from the forge.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tailscale/hujson"
	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/caltechlibrary/iga/internal/forge"
	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

// File names of the repository metadata sources.
const (
	CodeMetaFile = "codemeta.json"
	CFFFile      = "CITATION.cff"
)

// cffFiles lists the spellings of CFFFile tried in order.
var cffFiles = []string{CFFFile, "CITATION.CFF", "citation.cff"}

// maxCFFNodes bounds the values a CITATION.cff may expand to once its
// aliases are resolved.
const maxCFFNodes = 100_000

// Source names used in errors and logs.
const (
	NameCodeMeta   = "codemeta.json"
	NameCFF        = "CITATION.cff"
	NameRelease    = "release"
	NameRepository = "repository"
)

// MalformedSourceError reports a source that exists but cannot be parsed.
type MalformedSourceError struct {
	Source string
	Err    error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Source, e.Err)
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }

// Fetcher is the forge collaborator the loader reads from.
type Fetcher interface {
	Release(ctx context.Context, loc types.Locator) (*types.Release, error)
	Repository(ctx context.Context, loc types.Locator) (*types.Repository, error)
	Account(ctx context.Context, login string) (*types.Account, error)
	Contributors(ctx context.Context, loc types.Locator) ([]types.Account, error)
	Languages(ctx context.Context, loc types.Locator) ([]string, error)
	FileNames(ctx context.Context, loc types.Locator) ([]string, error)
	File(ctx context.Context, loc types.Locator, path string) ([]byte, error)
}

// Bundle holds the loaded sources. Any of them may be nil. A Bundle is not
// modified after Load returns.
type Bundle struct {
	CodeMeta Tree
	CFF      Tree
	Release  *types.Release
	Repo     *types.Repository

	// Files lists the top-level file names of the repository at the tag.
	Files []string

	// Problems lists the malformed sources, in source-name order.
	Problems []*MalformedSourceError
}

// Options adjusts loading.
type Options struct {
	// Extended fetches repository contributors and languages even when a
	// codemeta.json or CITATION.cff file is present.
	Extended bool
	// CodeMetaPath and CFFPath read the files from local paths instead of
	// the repository.
	CodeMetaPath string
	CFFPath      string
}

// Load fetches and parses the four sources for loc. A missing or
// unavailable source is left nil; a malformed one is recorded in
// Problems. Load returns an error only when ctx ends, the forge rejects the
// token, or a local path in opts cannot be read.
func Load(ctx context.Context, f Fetcher, loc types.Locator, opts Options, log logging.Logger) (*Bundle, error) {
	log = logging.OrNull(log)
	b := &Bundle{}
	var mu sync.Mutex
	problem := func(p *MalformedSourceError) {
		log.Warn("%v", p)
		mu.Lock()
		b.Problems = append(b.Problems, p)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rel, err := f.Release(gctx, loc)
		if err = absent(log, NameRelease, err); err != nil || rel == nil {
			return err
		}
		if rel.Author != nil && rel.Author.Login != "" && rel.Author.Name == "" {
			if acct, err := f.Account(gctx, rel.Author.Login); err == nil {
				rel.Author = acct
			} else if err = absent(log, "release author", err); err != nil {
				return err
			}
		}
		b.Release = rel
		return nil
	})
	g.Go(func() error {
		repo, err := f.Repository(gctx, loc)
		if err = absent(log, NameRepository, err); err != nil || repo == nil {
			return err
		}
		if repo.Owner != nil && repo.Owner.Login != "" && repo.Owner.Name == "" {
			if acct, err := f.Account(gctx, repo.Owner.Login); err == nil {
				repo.Owner = acct
			} else if err = absent(log, "repository owner", err); err != nil {
				return err
			}
		}
		b.Repo = repo
		return nil
	})
	g.Go(func() error {
		data, err := readSource(gctx, f, loc, CodeMetaFile, opts.CodeMetaPath)
		if err = absent(log, NameCodeMeta, err); err != nil || data == nil {
			return err
		}
		t, perr := ParseCodeMeta(data)
		if perr != nil {
			problem(&MalformedSourceError{Source: NameCodeMeta, Err: perr})
			return nil
		}
		b.CodeMeta = t
		return nil
	})
	g.Go(func() error {
		data, err := readCFF(gctx, f, loc, opts.CFFPath)
		if err = absent(log, NameCFF, err); err != nil || data == nil {
			return err
		}
		t, perr := ParseCFF(data)
		if perr != nil {
			problem(&MalformedSourceError{Source: NameCFF, Err: perr})
			return nil
		}
		b.CFF = t
		return nil
	})
	g.Go(func() error {
		names, err := f.FileNames(gctx, loc)
		if err = absent(log, "repository file list", err); err != nil {
			return err
		}
		b.Files = names
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if b.Repo != nil && (opts.Extended || (b.CodeMeta == nil && b.CFF == nil)) {
		if err := loadExtended(ctx, f, loc, b.Repo, log); err != nil {
			return nil, err
		}
	}

	sort.Slice(b.Problems, func(i, j int) bool { return b.Problems[i].Source < b.Problems[j].Source })
	return b, nil
}

func loadExtended(ctx context.Context, f Fetcher, loc types.Locator, repo *types.Repository, log logging.Logger) error {
	langs, err := f.Languages(ctx, loc)
	if err = absent(log, "repository languages", err); err != nil {
		return err
	}
	repo.Languages = langs

	people, err := f.Contributors(ctx, loc)
	if err = absent(log, "repository contributors", err); err != nil {
		return err
	}
	repo.Contributors = people
	return nil
}

// absent turns a collaborator failure into an absent source. It passes
// through only the errors that must stop the run.
func absent(log logging.Logger, what string, err error) error {
	var local *LocalFileError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &local):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, forge.ErrBadToken):
		return err
	case errors.Is(err, types.ErrNotFound):
		log.Verbose("no %s", what)
	default:
		log.Warn("could not get %s: %v", what, err)
	}
	return nil
}

func readSource(ctx context.Context, f Fetcher, loc types.Locator, name, localPath string) ([]byte, error) {
	if localPath == "" {
		return f.File(ctx, loc, name)
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, &LocalFileError{Path: localPath, Err: err}
	}
	return data, nil
}

// readCFF reads the citation file under the first of cffFiles that exists.
func readCFF(ctx context.Context, f Fetcher, loc types.Locator, localPath string) ([]byte, error) {
	if localPath != "" {
		return readSource(ctx, f, loc, CFFFile, localPath)
	}
	var err error
	for _, name := range cffFiles {
		var data []byte
		data, err = f.File(ctx, loc, name)
		if !errors.Is(err, types.ErrNotFound) {
			return data, err
		}
	}
	return nil, err
}

// LocalFileError reports a caller-supplied file that cannot be read.
type LocalFileError struct {
	Path string
	Err  error
}

func (e *LocalFileError) Error() string { return fmt.Sprintf("reading %s: %v", e.Path, e.Err) }
func (e *LocalFileError) Unwrap() error { return e.Err }

// ParseCodeMeta parses a codemeta.json document. Comments and trailing
// commas are accepted.
func ParseCodeMeta(data []byte) (Tree, error) {
	v, err := decodeJSON(data)
	if err != nil {
		std, serr := hujson.Standardize(data)
		if serr != nil {
			return nil, err
		}
		if v, err = decodeJSON(std); err != nil {
			return nil, err
		}
	}
	t, ok := AsTree(v)
	if !ok {
		return nil, errors.New("top level is not an object")
	}
	return t, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseCFF parses a CITATION.cff document. Scalars keep their literal
// text, so "version: 1.10" stays "1.10". A document whose aliases expand
// past maxCFFNodes values is rejected.
func ParseCFF(data []byte) (Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	w := &nodeWalker{budget: maxCFFNodes}
	v, err := w.value(&doc)
	if err != nil {
		return nil, err
	}
	t, ok := AsTree(v)
	if !ok {
		return nil, errors.New("top level is not a mapping")
	}
	return t, nil
}

var errTooLarge = fmt.Errorf("document expands to more than %d values", maxCFFNodes)

// nodeWalker converts a yaml.Node tree to plain values, counting every
// value produced, aliased copies included.
type nodeWalker struct {
	budget int
}

func (w *nodeWalker) value(n *yaml.Node) (any, error) {
	if w.budget--; w.budget < 0 {
		return nil, errTooLarge
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		return w.value(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			return n.Value == "true" || n.Value == "True" || n.Value == "TRUE", nil
		}
		return n.Value, nil
	}
	return nil, nil
}
