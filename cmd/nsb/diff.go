package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/tony-format/nsbuild/dirbuild"
	"github.com/signadot/tony-format/nsbuild/encode"
	"github.com/signadot/tony-format/nsbuild/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 directories, got %v", cli.ErrUsage, args)
	}
	b, conf, err := cfg.builder(cfg.selectConfig())
	if err != nil {
		return err
	}
	from, to := args[0], args[1]
	if cfg.Reverse {
		from, to = to, from
	}
	differs, err := diffDirs(cfg.MainConfig, b, conf, cc.Out, from, to)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffDirs(cfg *MainConfig, b *dirbuild.Builder, conf *dirbuild.Config, w io.Writer, from, to string) (bool, error) {
	encs := make([][]byte, 2)
	for i, dir := range []string{from, to} {
		ns, err := b.Build(cfg.context(), dir)
		if err != nil {
			return false, fmt.Errorf("error building %s: %w", dir, err)
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(ns, buf, cfg.encOpts(conf)...); err != nil {
			return false, err
		}
		encs[i] = buf.Bytes()
	}
	diffs := libdiff.Diff(encs[0], encs[1])
	if !libdiff.Changed(diffs) {
		return false, nil
	}
	return libdiff.Write(w, diffs, cfg.colors(w))
}
