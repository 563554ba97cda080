package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/tony-format/nsbuild/eval"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// Documents resolves yaml or json files to their first document.
// When env is not nil, strings in the document are expanded with
// eval.ExpandAny.
func Documents(fs afero.Fs, env map[string]any) Resolver {
	return Func(func(ctx context.Context, path string) (any, error) {
		d, err := readFile(ctx, fs, path)
		if err != nil {
			return nil, err
		}
		v, err := DecodeFirst(d)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", path, err)
		}
		if env == nil {
			return v, nil
		}
		return eval.ExpandAny(v, env)
	})
}

// DecodeFirst decodes the first yaml (or json) document in d.  An
// empty input gives nil.
func DecodeFirst(d []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(d))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
