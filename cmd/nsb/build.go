package main

import (
	"fmt"
	"os"

	"github.com/signadot/tony-format/nsbuild/encode"
	"github.com/signadot/tony-format/nsbuild/namespace"

	"github.com/scott-cotton/cli"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: build takes at most one directory, got %v", cli.ErrUsage, args)
	}
	dirPath := "."
	if len(args) != 0 {
		dirPath = args[0]
	}
	b, conf, err := cfg.builder(cfg.selectConfig())
	if err != nil {
		return err
	}
	ns, err := b.Build(cfg.context(), dirPath)
	if err != nil {
		return err
	}
	if cfg.Patch != "" {
		ns, err = patchFile(ns, cfg.Patch)
		if err != nil {
			return err
		}
	}
	return encode.Encode(ns, cc.Out, cfg.encOpts(conf)...)
}

func patchFile(ns namespace.Namespace, path string) (namespace.Namespace, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading patch %s: %w", path, err)
	}
	res, err := namespace.Patch(ns, d)
	if err != nil {
		return nil, fmt.Errorf("error patching with %s: %w", path, err)
	}
	return res, nil
}
