// Package resolve turns the path of a selected file into the value
// which stands for it in a namespace.
//
// The builder only knows the [Resolver] interface.  The concrete
// resolvers here load documents (yaml, json), expression scripts and
// plain text from an afero filesystem, and [Mux] dispatches between
// them on the file name.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signadot/tony-format/nsbuild/debug"

	"github.com/spf13/afero"
)

var ErrNoResolver = errors.New("no resolver")

type Resolver interface {
	Resolve(ctx context.Context, path string) (any, error)
}

// Func adapts a function to a Resolver.
type Func func(ctx context.Context, path string) (any, error)

func (f Func) Resolve(ctx context.Context, path string) (any, error) {
	return f(ctx, path)
}

type route struct {
	suffix string
	r      Resolver
}

// Mux dispatches to the resolver registered for the longest suffix
// of the file name.
type Mux struct {
	routes []route
}

func NewMux() *Mux {
	return &Mux{}
}

// Handle registers r for names ending in suffix, replacing any
// previous registration for the same suffix.
func (m *Mux) Handle(suffix string, r Resolver) *Mux {
	i := slices.IndexFunc(m.routes, func(rt route) bool { return rt.suffix == suffix })
	if i != -1 {
		m.routes[i].r = r
		return m
	}
	m.routes = append(m.routes, route{suffix: suffix, r: r})
	slices.SortStableFunc(m.routes, func(a, b route) int {
		return len(b.suffix) - len(a.suffix)
	})
	return m
}

// Suffixes lists the registered suffixes, longest first.
func (m *Mux) Suffixes() []string {
	res := make([]string, len(m.routes))
	for i := range m.routes {
		res[i] = m.routes[i].suffix
	}
	return res
}

func (m *Mux) Resolve(ctx context.Context, path string) (any, error) {
	base := filepath.Base(path)
	for i := range m.routes {
		rt := &m.routes[i]
		if !strings.HasSuffix(base, rt.suffix) {
			continue
		}
		if debug.Resolve() {
			debug.Log("resolve", "path", path, "suffix", rt.suffix)
		}
		return rt.r.Resolve(ctx, path)
	}
	return nil, fmt.Errorf("%w for %q", ErrNoResolver, path)
}

// Default gives a Mux handling yaml, json, expression and text files
// on fs.  env is used for .[expr] expansion in documents and as the
// environment of scripts.
func Default(fs afero.Fs, env map[string]any) *Mux {
	docs := Documents(fs, env)
	return NewMux().
		Handle(".yaml", docs).
		Handle(".yml", docs).
		Handle(".json", docs).
		Handle(".expr", Script(fs, env)).
		Handle(".txt", Text(fs))
}

func readFile(ctx context.Context, fs afero.Fs, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return afero.ReadFile(fs, path)
}
