package namespace

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/tony-format/nsbuild/debug"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 json patch to ns.  Leaf values must be
// representable in json.  ns is not modified.  A key of the result is
// a Namespace only where it was a Namespace in ns; every other object,
// including one added by the patch, stays a document value.
func Patch(ns Namespace, patch []byte) (Namespace, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	d, err := json.Marshal(ns.ToAny())
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("applying %d patch ops to %s", len(ops), d)
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(out, &m); err != nil {
		return nil, err
	}
	return reshape(ns, m), nil
}

func reshape(orig Namespace, m map[string]any) Namespace {
	res := make(Namespace, len(m))
	for k, v := range m {
		sub, isMap := v.(map[string]any)
		origSub, wasNS := orig[k].(Namespace)
		if isMap && wasNS {
			res[k] = reshape(origSub, sub)
			continue
		}
		res[k] = v
	}
	return res
}
