package dirbuild

import (
	"fmt"
	"maps"
	"os"

	"github.com/signadot/tony-format/nsbuild/debug"

	"github.com/goccy/go-yaml"
)

const (
	EnvEnv    = "NSB_ENV"
	SuffixEnv = "NSB_SUFFIX"
)

// LoadEnv decodes the yaml map in $NSB_ENV.  An unset variable gives
// a nil map.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(envEnv), &v); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	theEnvEnv, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %T", EnvEnv, v)
	}
	if debug.LoadEnv() {
		debug.Logf("loaded env from env: %s", debug.JSON(theEnvEnv))
	}
	return theEnvEnv, nil
}

// MergeEnv returns the union of envs; later maps override earlier
// ones key by key.
func MergeEnv(envs ...map[string]any) map[string]any {
	res := map[string]any{}
	for _, env := range envs {
		maps.Copy(res, env)
	}
	return res
}
