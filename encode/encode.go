// Package encode writes namespaces as yaml or json.
package encode

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/signadot/tony-format/nsbuild/format"
	"github.com/signadot/tony-format/nsbuild/namespace"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	format format.Format
	indent int
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) {
		if n > 0 {
			es.indent = n
		}
	}
}

// Encode writes ns to w.  Keys are written in sorted order, so equal
// namespaces encode identically.
func Encode(ns namespace.Namespace, w io.Writer, opts ...EncodeOption) error {
	return EncodeValue(ns, w, opts...)
}

// EncodeValue writes an arbitrary value from a namespace, such as the
// result of a lookup.
func EncodeValue(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{format: format.YAMLFormat, indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if ns, ok := v.(namespace.Namespace); ok {
		v = ns.ToAny()
	}
	if es.format.IsJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", es.indent))
		return enc.Encode(v)
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(es.indent))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
