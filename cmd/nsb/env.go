package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

// envFunc sets env[key] from "key=val".  val is read as a yaml
// scalar or flow value, falling back to the plain string.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: expected key=val, got %q", cli.ErrUsage, a)
	}
	var v any = val
	if val != "" {
		if err := yaml.Unmarshal([]byte(val), &v); err != nil {
			v = val
		}
	}
	env[key] = v
	return nil
}
