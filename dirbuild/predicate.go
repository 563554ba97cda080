package dirbuild

import (
	"fmt"
	"strings"

	"github.com/signadot/tony-format/nsbuild/debug"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Match is the result of a Predicate: either no match, or a match
// whose Index is where the name is cut to form the key.
type Match struct {
	OK    bool
	Index int
}

var NoMatch = Match{}

func MatchAt(i int) Match {
	return Match{OK: true, Index: i}
}

// Key returns the key derived from name and whether the entry is
// selected.  A match at index 0 would give an empty key and does not
// select the entry.
func (m Match) Key(name string) (string, bool) {
	if !m.OK || m.Index <= 0 || m.Index > len(name) {
		return "", false
	}
	return name[:m.Index], true
}

func (m Match) String() string {
	if !m.OK {
		return "nomatch"
	}
	return fmt.Sprintf("match@%d", m.Index)
}

// Predicate decides whether a file entry is selected, and where its
// name is cut.
type Predicate func(name string) Match

// SuffixPredicate matches names containing marker, cutting at its
// first occurrence.  The marker need not end the name.
func SuffixPredicate(marker string) Predicate {
	return func(name string) Match {
		i := strings.Index(name, marker)
		if i == -1 {
			return NoMatch
		}
		return MatchAt(i)
	}
}

// ExprPredicate compiles src as an expr expression over the variable
// name.  true selects the whole name, an int selects the name cut at
// that index, false, nil or a negative int reject.
func ExprPredicate(src string) (Predicate, error) {
	prg, err := expr.Compile(src, expr.Env(map[string]any{"name": ""}))
	if err != nil {
		return nil, fmt.Errorf("could not compile match expression %q: %w", src, err)
	}
	return func(name string) Match {
		m, err := runMatch(prg, name)
		if err != nil {
			if debug.Match() {
				debug.Logf("match %q on %q: %v", src, name, err)
			}
			return NoMatch
		}
		if debug.Match() {
			debug.Logf("match %q on %q gave %s", src, name, m)
		}
		return m
	}, nil
}

func runMatch(prg *vm.Program, name string) (Match, error) {
	res, err := expr.Run(prg, map[string]any{"name": name})
	if err != nil {
		return NoMatch, err
	}
	switch x := res.(type) {
	case nil:
		return NoMatch, nil
	case bool:
		if !x {
			return NoMatch, nil
		}
		return MatchAt(len(name)), nil
	case int:
		if x < 0 {
			return NoMatch, nil
		}
		if x > len(name) {
			return NoMatch, fmt.Errorf("index %d out of range", x)
		}
		return MatchAt(x), nil
	default:
		return NoMatch, fmt.Errorf("unexpected result type %T", res)
	}
}
