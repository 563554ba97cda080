// Package libdiff compares encoded namespaces line by line.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff computes a line diff from from to to.
func Diff(from, to []byte) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(from), string(to))
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Changed reports whether diffs contain any insertion or deletion.
func Changed(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Write writes diffs to w, one line per input line prefixed with
// '+', '-' or ' '.  colors may be nil.
func Write(w io.Writer, diffs []diffpatch.Diff, colors *Colors) (bool, error) {
	changed := false
	for i := range diffs {
		diff := &diffs[i]
		var prefix string
		var paint func(string, ...any) string
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+", colors.insert()
			changed = true
		case diffpatch.DiffDelete:
			prefix, paint = "-", colors.delete()
			changed = true
		default:
			prefix, paint = " ", colors.equal()
		}
		for _, line := range splitLines(diff.Text) {
			if _, err := fmt.Fprintln(w, paint("%s%s", prefix, line)); err != nil {
				return changed, err
			}
		}
	}
	return changed, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
