package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/tony-format/nsbuild/dirbuild"
	"github.com/signadot/tony-format/nsbuild/format"
	"github.com/signadot/tony-format/nsbuild/namespace"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, c := range files {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(c), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestEnvFunc(t *testing.T) {
	env := map[string]any{}
	for _, a := range []string{"name=fred", "on=true", "list=[a, b]", "empty=", "eq=a=b"} {
		if err := envFunc(env, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	want := map[string]any{
		"name":  "fred",
		"on":    true,
		"list":  []any{"a", "b"},
		"empty": "",
		"eq":    "a=b",
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	for _, bad := range []string{"novalue", "=x"} {
		if err := envFunc(env, bad); !errors.Is(err, cli.ErrUsage) {
			t.Errorf("%q: expected usage error, got %v", bad, err)
		}
	}
}

func TestBuilderPrecedence(t *testing.T) {
	root := writeTree(t, map[string]string{
		"svc.mod.yaml":    "region: .[region]\ntier: .[tier]\n",
		"svc.yaml":        "plain: true\n",
		"sub/db.mod.yaml": "owner: .[owner]\n",
	})
	confPath := filepath.Join(t.TempDir(), "nsb.yaml")
	conf := "suffix: .yaml\nformat: json\nenv:\n  region: eu\n  tier: bronze\n  owner: ops\n"
	if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(dirbuild.SuffixEnv, "")
	t.Setenv(dirbuild.EnvEnv, "{tier: silver}")

	cfg := &MainConfig{Config: confPath, Env: map[string]any{"region": "us"}}
	b, c, err := cfg.builder(&SelectConfig{Suffix: ".mod.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.outFormat(c) != format.JSONFormat {
		t.Errorf("expected the configured output format")
	}
	ns, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	want := namespace.Namespace{
		"svc": map[string]any{"region": "us", "tier": "silver"},
		"sub": namespace.Namespace{"db": map[string]any{"owner": "ops"}},
	}
	if diff := cmp.Diff(want, ns); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBuilderSuffixBeatsConfigMatch(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.json": `{"x": 1}`,
		"b.yaml": "y: 2\n",
	})
	confPath := filepath.Join(t.TempDir(), "nsb.yaml")
	conf := "match: 'hasSuffix(name, \".yaml\") ? indexOf(name, \".\") : false'\n"
	if err := os.WriteFile(confPath, []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(dirbuild.SuffixEnv, "")
	t.Setenv(dirbuild.EnvEnv, "")

	cfg := &MainConfig{Config: confPath}
	for _, tc := range []struct {
		name string
		sel  *SelectConfig
		want []string
	}{
		{"config match", &SelectConfig{}, []string{"b"}},
		{"suffix flag", &SelectConfig{Suffix: ".json"}, []string{"a"}},
		{"match flag", &SelectConfig{Suffix: ".json", Match: `name == "b.yaml" ? 1 : false`}, []string{"b"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, _, err := cfg.builder(tc.sel)
			if err != nil {
				t.Fatal(err)
			}
			ns, err := b.Build(context.Background(), root)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, ns.Keys()); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilderBadMatch(t *testing.T) {
	cfg := &MainConfig{}
	if _, _, err := cfg.builder(&SelectConfig{Match: "name +"}); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestOutFormat(t *testing.T) {
	json := format.JSONFormat
	for _, tc := range []struct {
		name string
		cfg  *MainConfig
		conf *dirbuild.Config
		want format.Format
	}{
		{"default", &MainConfig{}, nil, format.YAMLFormat},
		{"flag j", &MainConfig{J: true}, nil, format.JSONFormat},
		{"config", &MainConfig{}, &dirbuild.Config{Format: &json}, format.JSONFormat},
		{"flag beats config", &MainConfig{Y: true}, &dirbuild.Config{Format: &json}, format.YAMLFormat},
		{"-O beats all", &MainConfig{Y: true, OutFormat: &json}, nil, format.JSONFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.outFormat(tc.conf); got != tc.want {
				t.Errorf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestDiffDirs(t *testing.T) {
	t.Setenv(dirbuild.SuffixEnv, "")
	t.Setenv(dirbuild.EnvEnv, "")
	a := writeTree(t, map[string]string{
		"x.yaml":     "v: one\n",
		"s/y.yaml":   "v: two\n",
		"index.yaml": "ignored: true\n",
	})
	b := writeTree(t, map[string]string{
		"x.yaml":   "v: one\n",
		"s/y.yaml": "v: three\n",
	})
	cfg := &MainConfig{}
	bld, conf, err := cfg.builder(&SelectConfig{})
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	differs, err := diffDirs(cfg, bld, conf, buf, a, a)
	if err != nil {
		t.Fatal(err)
	}
	if differs || buf.Len() != 0 {
		t.Errorf("a directory should not differ from itself: %q", buf.String())
	}
	differs, err = diffDirs(cfg, bld, conf, buf, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatalf("expected a difference")
	}
	out := buf.String()
	if !strings.Contains(out, "-    v: two") || !strings.Contains(out, "+    v: three") {
		t.Errorf("unexpected diff output:\n%s", out)
	}
}

func TestPatchFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "p.json")
	if err := os.WriteFile(p, []byte(`[{"op": "add", "path": "/extra", "value": "x"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	ns, err := patchFile(namespace.Namespace{"a": "b"}, p)
	if err != nil {
		t.Fatal(err)
	}
	want := namespace.Namespace{"a": "b", "extra": "x"}
	if diff := cmp.Diff(want, ns); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := patchFile(ns, filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected error for missing patch")
	}
}

func TestListPaths(t *testing.T) {
	ns := namespace.Namespace{
		"a": "x",
		"s": namespace.Namespace{"b": 1, "e": namespace.Namespace{}},
	}
	buf := bytes.NewBuffer(nil)
	if err := listPaths(buf, "", ns); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("a\ns.b\ns.e\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	buf.Reset()
	if err := listPaths(buf, "s", ns["s"]); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("s.b\ns.e\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := listPaths(buf, "a", "x"); err == nil {
		t.Errorf("expected error listing a leaf")
	}
}
