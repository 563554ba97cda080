// Package dirbuild builds a namespace from a directory tree.
//
// Every subdirectory becomes a nested namespace under its own name.
// Every file selected by the predicate is handed to a resolver and
// the result is stored under the file name cut at the predicate's
// index.  Entries whose name contains "index" are ignored at every
// level.
//
// Entries are processed one at a time in listing order; each
// resolution and each subdirectory completes before the next entry
// is considered.
package dirbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/signadot/tony-format/nsbuild/debug"
	"github.com/signadot/tony-format/nsbuild/namespace"
	"github.com/signadot/tony-format/nsbuild/resolve"

	"github.com/spf13/afero"
)

const (
	DefaultSuffix = ".yaml"

	// names containing this are never part of a namespace.
	indexMarker = "index"
)

type Builder struct {
	Fs        afero.Fs
	Suffix    string
	Predicate Predicate
	Resolver  resolve.Resolver
	Env       map[string]any
}

type Option func(*Builder)

func WithFs(fs afero.Fs) Option {
	return func(b *Builder) { b.Fs = fs }
}

// WithSuffix sets the marker of the default predicate.  It has no
// effect when a predicate is given.
func WithSuffix(s string) Option {
	return func(b *Builder) { b.Suffix = s }
}

func WithPredicate(p Predicate) Option {
	return func(b *Builder) { b.Predicate = p }
}

func WithResolver(r resolve.Resolver) Option {
	return func(b *Builder) { b.Resolver = r }
}

// WithEnv sets the environment of the default resolver.
func WithEnv(env map[string]any) Option {
	return func(b *Builder) { b.Env = env }
}

func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds the namespace of the directory at path.
func Build(ctx context.Context, path string, opts ...Option) (namespace.Namespace, error) {
	return New(opts...).Build(ctx, path)
}

// Build builds the namespace of the directory at path.  Any error
// aborts the whole build and no namespace is returned.
func (b *Builder) Build(ctx context.Context, path string) (namespace.Namespace, error) {
	fs := b.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	pred := b.Predicate
	if pred == nil {
		suffix := b.Suffix
		if suffix == "" {
			suffix = DefaultSuffix
		}
		pred = SuffixPredicate(suffix)
	}
	r := b.Resolver
	if r == nil {
		r = resolve.Default(fs, b.Env)
	}
	w := &walker{fs: fs, pred: pred, r: r}
	return w.build(ctx, path)
}

type walker struct {
	fs   afero.Fs
	pred Predicate
	r    resolve.Resolver
}

func (w *walker) build(ctx context.Context, path string) (namespace.Namespace, error) {
	entries, err := afero.ReadDir(w.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %q: %w", ErrPath, path, err)
	}
	if debug.Walk() {
		debug.Log("walk", "dir", path, "entries", len(entries))
	}
	ns := namespace.New()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if strings.Contains(name, indexMarker) {
			if debug.Walk() {
				debug.Log("skip index", "dir", path, "name", name)
			}
			continue
		}
		joined := filepath.Join(path, name)
		fi, err := w.fs.Stat(joined)
		if err != nil {
			return nil, fmt.Errorf("%w: could not stat %q: %w", ErrClassify, joined, err)
		}
		if fi.IsDir() {
			sub, err := w.build(ctx, joined)
			if err != nil {
				return nil, err
			}
			ns[name] = sub
			continue
		}
		m := w.pred(name)
		key, ok := m.Key(name)
		if debug.Match() {
			debug.Log("match", "path", joined, "result", m, "selected", ok)
		}
		if !ok {
			continue
		}
		v, err := w.r.Resolve(ctx, joined)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrResolve, joined, err)
		}
		ns[key] = v
	}
	return ns, nil
}
