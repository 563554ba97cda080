package namespace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatch(t *testing.T) {
	ns := Namespace{
		"foo": "FOO",
		"sub": Namespace{"baz": "BAZ"},
	}
	patch := []byte(`[
  {"op": "replace", "path": "/foo", "value": "foo2"},
  {"op": "add", "path": "/sub/qux", "value": {"n": 1}},
  {"op": "remove", "path": "/sub/baz"}
]`)
	got, err := Patch(ns, patch)
	if err != nil {
		t.Fatal(err)
	}
	want := Namespace{
		"foo": "foo2",
		"sub": Namespace{"qux": map[string]any{"n": float64(1)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if ns["foo"] != "FOO" {
		t.Errorf("input was modified")
	}
}

func TestPatchKeepsDocuments(t *testing.T) {
	ns := Namespace{
		"app": map[string]any{"name": "svc"},
		"sub": Namespace{
			"db":    map[string]any{"owner": "ops", "tags": []any{"a"}},
			"empty": Namespace{},
		},
	}
	got, err := Patch(ns, []byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(ns, got) {
		t.Errorf("empty patch changed shape:\n%s", cmp.Diff(ns, got))
	}
	var paths []string
	got.Walk(func(path string, _ any) error {
		paths = append(paths, path)
		return nil
	})
	if diff := cmp.Diff([]string{"app", "sub.db", "sub.empty"}, paths); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}

	got, err = Patch(ns, []byte(`[{"op": "replace", "path": "/sub", "value": {"db": {"owner": "dev"}}}]`))
	if err != nil {
		t.Fatal(err)
	}
	want := Namespace{
		"app": map[string]any{"name": "svc"},
		"sub": Namespace{"db": map[string]any{"owner": "dev"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPatchErrors(t *testing.T) {
	ns := Namespace{"foo": "FOO"}
	if _, err := Patch(ns, []byte(`{not json`)); err == nil {
		t.Errorf("expected decode error")
	}
	if _, err := Patch(ns, []byte(`[{"op": "add", "path": "/nope/deeper/x", "value": 1}]`)); err == nil {
		t.Errorf("expected apply error")
	}
}
