package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-format/nsbuild/dirbuild"
	"github.com/signadot/tony-format/nsbuild/encode"
	"github.com/signadot/tony-format/nsbuild/format"
	"github.com/signadot/tony-format/nsbuild/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Y      bool   `cli:"name=y aliases=yaml desc='output yaml'"`
	J      bool   `cli:"name=j aliases=json desc='output json'"`
	Color  bool   `cli:"name=color desc='output with color'"`
	Config string `cli:"name=c aliases=config desc='build configuration file (yaml or json)'"`
	Gops   bool   `cli:"name=gops desc='start a gops agent'"`

	OutFormat *format.Format
	Env       map[string]any

	Out      string
	CloseOut func() error

	Main *cli.Command

	ctx context.Context
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) context() context.Context {
	if cfg.ctx == nil {
		return context.Background()
	}
	return cfg.ctx
}

// loadConfig reads the -c file, if any.
func (cfg *MainConfig) loadConfig() (*dirbuild.Config, error) {
	if cfg.Config == "" {
		return &dirbuild.Config{}, nil
	}
	return dirbuild.LoadConfig(cfg.Config)
}

// builder makes a builder from the config file, the OS environment
// and the command line, in increasing order of precedence.
func (cfg *MainConfig) builder(sel *SelectConfig) (*dirbuild.Builder, *dirbuild.Config, error) {
	conf, err := cfg.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts, err := conf.Options()
	if err != nil {
		return nil, nil, err
	}
	if sel.Suffix != "" {
		// a suffix flag also displaces any configured match
		opts = append(opts,
			dirbuild.WithSuffix(sel.Suffix),
			dirbuild.WithPredicate(dirbuild.SuffixPredicate(sel.Suffix)))
	}
	if sel.Match != "" {
		pred, err := dirbuild.ExprPredicate(sel.Match)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, dirbuild.WithPredicate(pred))
	}
	b := dirbuild.New(opts...)
	b.Env = dirbuild.MergeEnv(b.Env, cfg.Env)
	return b, conf, nil
}

func (cfg *MainConfig) outFormat(conf *dirbuild.Config) format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	case conf != nil && conf.Format != nil:
		return *conf.Format
	}
	return format.YAMLFormat
}

func (cfg *MainConfig) encOpts(conf *dirbuild.Config) []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat(conf)),
	}
}

func (cfg *MainConfig) colors(w io.Writer) *libdiff.Colors {
	if cfg.Color {
		return libdiff.NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return libdiff.NewColors()
	}
	return nil
}

// SelectConfig holds the options which choose the files of a build.
type SelectConfig struct {
	Suffix string
	Match  string
}

type BuildConfig struct {
	*MainConfig
	Suffix string `cli:"name=s aliases=suffix desc='file name suffix to select (default .yaml)'"`
	Match  string `cli:"name=m aliases=match desc='expression over name selecting files'"`
	Patch  string `cli:"name=p aliases=patch desc='json patch file applied to the result'"`

	Build *cli.Command
}

func (cfg *BuildConfig) selectConfig() *SelectConfig {
	return &SelectConfig{Suffix: cfg.Suffix, Match: cfg.Match}
}

type GetConfig struct {
	*MainConfig
	Suffix string `cli:"name=s aliases=suffix desc='file name suffix to select (default .yaml)'"`
	Match  string `cli:"name=m aliases=match desc='expression over name selecting files'"`
	List   bool   `cli:"name=l aliases=list desc='list the leaf paths under path'"`

	Get *cli.Command
}

func (cfg *GetConfig) selectConfig() *SelectConfig {
	return &SelectConfig{Suffix: cfg.Suffix, Match: cfg.Match}
}

type DiffConfig struct {
	*MainConfig
	Suffix  string `cli:"name=s aliases=suffix desc='file name suffix to select (default .yaml)'"`
	Match   string `cli:"name=m aliases=match desc='expression over name selecting files'"`
	Reverse bool   `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) selectConfig() *SelectConfig {
	return &SelectConfig{Suffix: cfg.Suffix, Match: cfg.Match}
}
