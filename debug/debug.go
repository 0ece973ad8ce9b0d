// Package debug provides env-gated diagnostics for template generation.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Scan   bool
	Gen    bool
	Config bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("NEKI_DEBUG_SCAN")
	d.Gen = boolEnv("NEKI_DEBUG_GEN")
	d.Config = boolEnv("NEKI_DEBUG_CONFIG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Gen() bool {
	return d.Gen
}
func Config() bool {
	return d.Config
}
