package resolve

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/spf13/afero"
)

// Script resolves a file by running its contents as an expr program
// with env as the environment.
func Script(fs afero.Fs, env map[string]any) Resolver {
	if env == nil {
		env = map[string]any{}
	}
	return Func(func(ctx context.Context, path string) (any, error) {
		d, err := readFile(ctx, fs, path)
		if err != nil {
			return nil, err
		}
		prg, err := expr.Compile(string(d), expr.Env(env))
		if err != nil {
			return nil, fmt.Errorf("could not compile %s: %w", path, err)
		}
		res, err := expr.Run(prg, env)
		if err != nil {
			return nil, fmt.Errorf("error running %s: %w", path, err)
		}
		return res, nil
	})
}

// Text resolves a file to its contents as a string.
func Text(fs afero.Fs) Resolver {
	return Func(func(ctx context.Context, path string) (any, error) {
		d, err := readFile(ctx, fs, path)
		if err != nil {
			return nil, err
		}
		return string(d), nil
	})
}
