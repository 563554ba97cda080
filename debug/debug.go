// Package debug provides env-flag-gated debug logging for nsbuild.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	LoadEnv bool
	Walk    bool
	Resolve bool
	Match   bool
	Eval    bool
	Patch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.LoadEnv = boolEnv("NSB_DEBUG_LOAD_ENV")
	d.Walk = boolEnv("NSB_DEBUG_WALK")
	d.Resolve = boolEnv("NSB_DEBUG_RESOLVE")
	d.Match = boolEnv("NSB_DEBUG_MATCH")
	d.Eval = boolEnv("NSB_DEBUG_EVAL")
	d.Patch = boolEnv("NSB_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func LoadEnv() bool {
	return d.LoadEnv
}
func Walk() bool {
	return d.Walk
}
func Resolve() bool {
	return d.Resolve
}
func Match() bool {
	return d.Match
}
func Eval() bool {
	return d.Eval
}
func Patch() bool {
	return d.Patch
}
