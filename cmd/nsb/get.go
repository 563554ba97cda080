package main

import (
	"fmt"
	"io"

	"github.com/signadot/tony-format/nsbuild/encode"
	"github.com/signadot/tony-format/nsbuild/namespace"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a path and at most one directory", cli.ErrUsage)
	}
	dirPath := "."
	if len(args) == 2 {
		dirPath = args[1]
	}
	b, conf, err := cfg.builder(cfg.selectConfig())
	if err != nil {
		return err
	}
	ns, err := b.Build(cfg.context(), dirPath)
	if err != nil {
		return err
	}
	v, err := ns.Get(args[0])
	if err != nil {
		return err
	}
	if cfg.List {
		return listPaths(cc.Out, args[0], v)
	}
	return encode.EncodeValue(v, cc.Out, cfg.encOpts(conf)...)
}

func listPaths(w io.Writer, prefix string, v any) error {
	sub, ok := v.(namespace.Namespace)
	if !ok {
		return fmt.Errorf("%q is not a namespace", prefix)
	}
	return sub.Walk(func(p string, _ any) error {
		if prefix != "" {
			p = prefix + "." + p
		}
		_, err := fmt.Fprintln(w, p)
		return err
	})
}
