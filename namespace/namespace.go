// Package namespace provides the nested key/value structure which
// mirrors a directory tree.
//
// A [Namespace] maps derived names to values.  A value is either
// another Namespace, for a subdirectory, or whatever the module
// resolver produced for a file.
package namespace

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var ErrNotFound = errors.New("not found")

type Namespace map[string]any

func New() Namespace {
	return Namespace{}
}

// Keys returns the keys of ns in sorted order.
func (ns Namespace) Keys() []string {
	res := make([]string, 0, len(ns))
	for k := range ns {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Get looks up a dotted path such as "sub.baz".  The empty path
// gives ns itself.
func (ns Namespace) Get(path string) (any, error) {
	if path == "" {
		return ns, nil
	}
	var cur any = ns
	walked := []string{}
	for _, field := range strings.Split(path, ".") {
		sub, ok := cur.(Namespace)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a namespace", ErrNotFound, strings.Join(walked, "."))
		}
		v, present := sub[field]
		if !present {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, strings.Join(append(walked, field), "."))
		}
		walked = append(walked, field)
		cur = v
	}
	return cur, nil
}

// Walk calls f for every leaf value with its dotted path, in sorted
// key order.  Empty namespaces are reported with a nil value.
func (ns Namespace) Walk(f func(path string, v any) error) error {
	return ns.walk("", f)
}

func (ns Namespace) walk(prefix string, f func(string, any) error) error {
	if len(ns) == 0 && prefix != "" {
		return f(prefix, nil)
	}
	for _, k := range ns.Keys() {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if sub, ok := ns[k].(Namespace); ok {
			if err := sub.walk(p, f); err != nil {
				return err
			}
			continue
		}
		if err := f(p, ns[k]); err != nil {
			return err
		}
	}
	return nil
}

// ToAny converts ns into plain maps so that encoders which know
// nothing of Namespace can handle it.
func (ns Namespace) ToAny() map[string]any {
	res := make(map[string]any, len(ns))
	for k, v := range ns {
		if sub, ok := v.(Namespace); ok {
			res[k] = sub.ToAny()
			continue
		}
		res[k] = v
	}
	return res
}

// FromAny converts every map[string]any in m into a Namespace.  It
// inverts ToAny only when ns holds no map-valued documents; Patch
// uses the original namespace to tell the two apart instead.
func FromAny(m map[string]any) Namespace {
	res := make(Namespace, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			res[k] = FromAny(sub)
			continue
		}
		res[k] = v
	}
	return res
}

// Equal reports whether a and b have the same keys and nesting with
// deeply equal leaves.
func Equal(a, b Namespace) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		aSub, aIsNS := av.(Namespace)
		bSub, bIsNS := bv.(Namespace)
		if aIsNS != bIsNS {
			return false
		}
		if aIsNS {
			if !Equal(aSub, bSub) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
