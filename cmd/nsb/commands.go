package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx, Env: map[string]any{}}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "e",
			Description: "set an environment value",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(key=val)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "nsb").
		WithSynopsis("nsb [opts] command [opts]").
		WithDescription("nsb builds namespaces from directory trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nsbMain(cfg, cc, args)
		}).
		WithSubs(
			BuildCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg))
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [-s suffix] [-m expr] [-p patch] [dir]").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

const buildDescription = `build builds the namespace of a directory and writes it out.

The directory defaults to the current directory.  Each subdirectory
becomes a nested namespace under its own name.  Each file whose name
contains the suffix (default .yaml) is loaded and stored under its
name cut at the suffix.  Names containing "index" are ignored.

Files are loaded according to their extension: .yaml, .yml and .json
files give their first document, .expr files are evaluated as
expressions, and .txt files give their text.  Strings in documents of
the form .[expr] are evaluated in the environment.

Environment

The environment can be set in 3 ways
1. in the config file given with -c, under 'env'.
2. in the OS environment variable $NSB_ENV, as a yaml map.
3. using '-e key=value'.
Later ways override earlier ones.
`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-s suffix] [-l] <path> [dir]").
		WithDescription("get builds the namespace of a directory and writes the value at a dotted path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-s suffix] [-r] dirA dirB").
		WithDescription("diff builds the namespaces of two directories and compares them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
