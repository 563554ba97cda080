package libdiff

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiffWrite(t *testing.T) {
	from := []byte("a: 1\nb: 2\nc: 3\n")
	to := []byte("a: 1\nb: 5\nc: 3\nd: 4\n")
	diffs := Diff(from, to)
	if !Changed(diffs) {
		t.Fatal("expected a change")
	}
	buf := bytes.NewBuffer(nil)
	changed, err := Write(buf, diffs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Errorf("Write should report a change")
	}
	want := " a: 1\n-b: 2\n+b: 5\n c: 3\n+d: 4\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffEqual(t *testing.T) {
	d := []byte("x: y\n")
	diffs := Diff(d, d)
	if Changed(diffs) {
		t.Errorf("expected no change: %v", diffs)
	}
	buf := bytes.NewBuffer(nil)
	changed, err := Write(buf, diffs, nil)
	if err != nil || changed {
		t.Errorf("got %t, %v", changed, err)
	}
	if buf.String() != " x: y\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriteColors(t *testing.T) {
	colors := &Colors{
		Insert: func(f string, args ...any) string { return "<ins>" + fmt.Sprintf(f, args...) },
		Delete: func(f string, args ...any) string { return "<del>" + fmt.Sprintf(f, args...) },
	}
	buf := bytes.NewBuffer(nil)
	if _, err := Write(buf, Diff([]byte("a\n"), []byte("b\n")), colors); err != nil {
		t.Fatal(err)
	}
	want := "<del>-a\n<ins>+b\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
