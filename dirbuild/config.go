package dirbuild

import (
	"fmt"
	"os"

	"github.com/signadot/tony-format/nsbuild/debug"
	"github.com/signadot/tony-format/nsbuild/format"

	"github.com/goccy/go-yaml"
)

// Config is the content of a build configuration file.
//
//	suffix: .mod.yaml
//	match: hasSuffix(name, ".yaml") ? indexOf(name, ".") : false
//	format: json
//	env:
//	  region: eu
type Config struct {
	Suffix string         `yaml:"suffix,omitempty"`
	Match  string         `yaml:"match,omitempty"`
	Format *format.Format `yaml:"format,omitempty"`
	Env    map[string]any `yaml:"env,omitempty"`
}

// LoadConfig reads a yaml or json configuration file.
func LoadConfig(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	if debug.LoadEnv() {
		debug.Logf("loaded config %s: %s", path, debug.JSON(cfg))
	}
	return cfg, nil
}

// Options gives the builder options described by cfg.  The OS
// environment is consulted: $NSB_SUFFIX replaces both the configured
// suffix and the configured match, and $NSB_ENV is merged over the
// configured env.
func (cfg *Config) Options() ([]Option, error) {
	suffix := cfg.Suffix
	envSuffix := os.Getenv(SuffixEnv)
	if envSuffix != "" {
		suffix = envSuffix
	}
	osEnv, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithSuffix(suffix),
		WithEnv(MergeEnv(cfg.Env, osEnv)),
	}
	if cfg.Match != "" && envSuffix == "" {
		pred, err := ExprPredicate(cfg.Match)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithPredicate(pred))
	}
	return opts, nil
}
