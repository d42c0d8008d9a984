// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve builds an InvenioRDM record for a release from the
// release, the repository, codemeta.json and CITATION.cff.
//
// Every record field is described by a Policy: an ordered list of
// (source, extractor) probes and a way to combine what they find. The
// Engine evaluates the table in order; a field may read another field's
// resolved value, which is computed once per run.
package resolve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/reference"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

// Options configures an Engine. Only Fetcher is required.
type Options struct {
	Fetcher source.Fetcher

	// Names resolves free-text names. Defaults to names.NewResolver over
	// People and Orgs.
	Names  *names.Resolver
	People names.PersonLookup
	Orgs   names.OrganizationLookup

	// References formats reference publications. Nil leaves the
	// references field empty.
	References *reference.Formatter

	Record types.RecordConfig

	// Parallelism bounds concurrent reference lookups (default 4).
	Parallelism int

	Logger logging.Logger
}

// Engine resolves records. It is safe for concurrent use; each call keeps
// its state private.
type Engine struct {
	fetcher     source.Fetcher
	names       *names.Resolver
	people      names.PersonLookup
	orgs        names.OrganizationLookup
	refs        *reference.Formatter
	cfg         types.RecordConfig
	parallelism int
	known       map[string]bool
	policies    []Policy
	index       map[record.Field]Policy
	log         logging.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	log := logging.OrNull(opts.Logger)
	e := &Engine{
		fetcher:     opts.Fetcher,
		names:       opts.Names,
		people:      opts.People,
		orgs:        opts.Orgs,
		refs:        opts.References,
		cfg:         opts.Record,
		parallelism: opts.Parallelism,
		policies:    fieldTable(),
		index:       map[record.Field]Policy{},
		log:         log,
	}
	if e.names == nil {
		e.names = names.NewResolver(names.Options{People: opts.People, Orgs: opts.Orgs, Logger: log})
	}
	if e.parallelism <= 0 {
		e.parallelism = 4
	}
	if len(opts.Record.KnownLicenses) > 0 {
		e.known = map[string]bool{}
		for _, id := range opts.Record.KnownLicenses {
			e.known[strings.ToLower(strings.TrimSpace(id))] = true
		}
	}
	for _, p := range e.policies {
		e.index[p.Field()] = p
	}
	return e
}

// Policies returns the field table in output order.
func (e *Engine) Policies() []Policy { return e.policies }

func (e *Engine) knownLicense(id string) bool { return e.known == nil || e.known[id] }

// Request names the release to describe.
type Request struct {
	Locator types.Locator

	// OverrideRecordPath names a record file that replaces resolution.
	OverrideRecordPath string

	// AllSources uses repository data even when codemeta.json or
	// CITATION.cff exist.
	AllSources bool

	// Files lists local files to deposit instead of the release assets.
	Files []string

	// CodeMetaPath and CFFPath read the metadata files from disk.
	CodeMetaPath string
	CFFPath      string
}

// File is a file to deposit with the record: a local Path or a remote URL.
type File struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// Result is the outcome of BuildRecord.
type Result struct {
	RunID    string
	Record   *types.Record
	Files    []File
	Warnings []FieldWarning
	Problems []*source.MalformedSourceError
}

// BuildRecord loads the sources for req.Locator and resolves a record.
// It fails with a *record.IncompleteError when a mandatory field has no
// value, with the override file's error when one is given and unusable,
// and with ctx's error when ctx ends. No partial record is returned.
func (e *Engine) BuildRecord(ctx context.Context, req Request) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := e.log
	if cl, ok := log.(*logging.ConsoleLogger); ok {
		log = cl.With(res.RunID[:8])
	}
	log.Info("building record for %s", req.Locator)

	var rel *types.Release
	if req.OverrideRecordPath != "" {
		rec, err := record.LoadOverride(req.OverrideRecordPath)
		if err != nil {
			return nil, err
		}
		log.Info("using record from %s", req.OverrideRecordPath)
		res.Record = rec
		if len(req.Files) == 0 {
			r, err := e.fetcher.Release(ctx, req.Locator)
			switch {
			case ctx.Err() != nil:
				return nil, ctx.Err()
			case err != nil:
				log.Warn("release %s: %v; no files selected", req.Locator, err)
			default:
				rel = r
			}
		}
	} else {
		opts := source.Options{
			Extended:     req.AllSources || e.cfg.AllMetadata,
			CodeMetaPath: req.CodeMetaPath,
			CFFPath:      req.CFFPath,
		}
		b, err := source.Load(ctx, e.fetcher, req.Locator, opts, log)
		if err != nil {
			return nil, err
		}
		res.Problems = b.Problems
		rec, warnings, err := e.resolve(ctx, b, req.Locator, opts.Extended, log)
		res.Warnings = warnings
		if err != nil {
			return nil, err
		}
		res.Record = rec
		rel = b.Release
	}

	files, err := selectFiles(req, rel)
	if err != nil {
		return nil, err
	}
	res.Files = files
	return res, nil
}

// Resolve evaluates the field table over a loaded bundle. allSources has
// the meaning of Request.AllSources.
func (e *Engine) Resolve(ctx context.Context, b *source.Bundle, loc types.Locator, allSources bool) (*types.Record, []FieldWarning, error) {
	return e.resolve(ctx, b, loc, allSources || e.cfg.AllMetadata, e.log)
}

func (e *Engine) resolve(ctx context.Context, b *source.Bundle, loc types.Locator, allSources bool, log logging.Logger) (*types.Record, []FieldWarning, error) {
	refs, err := e.formatReferences(ctx, referenceIDs(b))
	if err != nil {
		return nil, nil, err
	}
	s := e.newState(ctx, b, loc, allSources, refs, log)

	fields := make(map[record.Field]any, len(e.policies))
	attempted := make(map[record.Field][]string, len(e.policies))
	for _, p := range e.policies {
		if err := ctx.Err(); err != nil {
			return nil, s.warnings, err
		}
		f := p.Field()
		fields[f] = p.finish(s, s.value(f))
		attempted[f] = p.Sources()
	}
	if err := ctx.Err(); err != nil {
		return nil, s.warnings, err
	}
	rec, err := record.Assemble(fields, attempted)
	return rec, s.warnings, err
}

// state is the per-run evaluation state.
type state struct {
	ctx        context.Context
	e          *Engine
	b          *source.Bundle
	loc        types.Locator
	includeAll bool
	refs       map[string]string
	values     map[record.Field]any
	busy       map[record.Field]bool
	warnings   []FieldWarning
	log        logging.Logger
}

func (e *Engine) newState(ctx context.Context, b *source.Bundle, loc types.Locator, allSources bool, refs map[string]string, log logging.Logger) *state {
	return &state{
		ctx:        ctx,
		e:          e,
		b:          b,
		loc:        loc,
		includeAll: allSources || (b.CodeMeta == nil && b.CFF == nil),
		refs:       refs,
		values:     map[record.Field]any{},
		busy:       map[record.Field]bool{},
		log:        log,
	}
}

// value returns the resolved value of f before output adjustments,
// computing it on first use.
func (s *state) value(f record.Field) any {
	if v, ok := s.values[f]; ok {
		return v
	}
	p, ok := s.e.index[f]
	if !ok {
		panic(fmt.Sprintf("resolve: no policy for field %q", f))
	}
	if s.busy[f] {
		panic(fmt.Sprintf("resolve: field %q depends on itself", f))
	}
	s.busy[f] = true
	v := p.resolve(s)
	delete(s.busy, f)
	s.values[f] = v
	return v
}

// text returns a text field's resolved value, or "".
func (s *state) text(f record.Field) string {
	v, _ := s.value(f).(string)
	return v
}

func (s *state) warn(w FieldWarning) {
	s.log.Warn("%v", w)
	s.warnings = append(s.warnings, w)
}

var (
	noRelease = &types.Release{}
	noRepo    = &types.Repository{}
)

// release returns the release, or an empty one when it is absent.
func (s *state) release() *types.Release {
	if s.b.Release == nil {
		return noRelease
	}
	return s.b.Release
}

// repo returns the repository, or an empty one when it is absent.
func (s *state) repo() *types.Repository {
	if s.b.Repo == nil {
		return noRepo
	}
	return s.b.Repo
}

// repoURL is the repository's web page.
func (s *state) repoURL() string {
	if u := s.repo().HTMLURL; u != "" {
		return strings.TrimSuffix(u, "/")
	}
	if s.loc.Account == "" || s.loc.Repo == "" {
		return ""
	}
	return s.loc.RepoURL()
}

// selectFiles picks the files to deposit: the local files named in req,
// else the release assets, else the source archive.
func selectFiles(req Request, rel *types.Release) ([]File, error) {
	if len(req.Files) > 0 {
		out := make([]File, 0, len(req.Files))
		for _, p := range req.Files {
			info, err := os.Stat(p)
			if err != nil {
				return nil, &source.LocalFileError{Path: p, Err: err}
			}
			if info.IsDir() {
				return nil, &source.LocalFileError{Path: p, Err: fmt.Errorf("is a directory")}
			}
			out = append(out, File{Name: filepath.Base(p), Path: p, Size: info.Size()})
		}
		return out, nil
	}
	if rel == nil {
		return nil, nil
	}
	if len(rel.Assets) > 0 {
		out := make([]File, 0, len(rel.Assets))
		for _, a := range rel.Assets {
			out = append(out, File{Name: a.Name, URL: a.DownloadURL, Size: a.Size})
		}
		return out, nil
	}
	if rel.ZipballURL == "" {
		return nil, nil
	}
	name := req.Locator.Repo + "-" + versionOf(req.Locator.Tag) + ".zip"
	return []File{{Name: name, URL: rel.ZipballURL}}, nil
}
