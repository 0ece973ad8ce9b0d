// Package config loads the directory whitelist and per-extension path
// patterns that drive template generation. Both files are authored in
// the relaxed dialect, so mod authors can comment them. Missing files
// fall back to built-in defaults; unreadable or malformed files are
// errors.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neki-mods/neki-lang/debug"
	"github.com/neki-mods/neki-lang/ir"
	"github.com/neki-mods/neki-lang/parse"
	"github.com/neki-mods/neki-lang/pattern"
)

const (
	DirsFile     = "dirs_config.json"
	PatternsFile = "regex_config.json"
)

// Source reports where a configuration document came from.
type Source int

const (
	BuiltIn Source = iota
	External
)

func (s Source) String() string {
	if s == External {
		return "external"
	}
	return "built-in"
}

type Config struct {
	// Dirs is the whitelist of top-level asset directories, in
	// configuration order.
	Dirs []string
	// Patterns maps file extensions to compiled path matchers.
	Patterns *pattern.Config

	DirsSource     Source
	PatternsSource Source
}

// Load reads dirs_config.json and regex_config.json from dir, falling
// back to the built-in defaults for any file that does not exist. An
// empty dir skips the filesystem entirely.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	dirsText, dirsSource, err := readConfigFile(dir, DirsFile, defaultDirsConfig)
	if err != nil {
		return nil, err
	}
	patternsText, patternsSource, err := readConfigFile(dir, PatternsFile, defaultPatternsConfig)
	if err != nil {
		return nil, err
	}

	cfg.Dirs, err = parseDirs(dirsText)
	if err != nil {
		return nil, fmt.Errorf("dir whitelist config: %w", err)
	}
	cfg.Patterns, err = parsePatterns(patternsText)
	if err != nil {
		return nil, fmt.Errorf("pattern config: %w", err)
	}
	cfg.DirsSource = dirsSource
	cfg.PatternsSource = patternsSource
	if debug.Config() {
		debug.Logf("config: dirs=%s (%s) patterns=%v (%s)\n",
			cfg.Dirs, dirsSource, cfg.Patterns.Extensions(), patternsSource)
	}
	return cfg, nil
}

// LoadNearExecutable loads configuration from the directory containing
// the running executable, the conventional place for per-install
// overrides. Any failure to locate the executable falls back to the
// built-in defaults.
func LoadNearExecutable() (*Config, error) {
	exe, err := os.Executable()
	if err != nil {
		return Load("")
	}
	return Load(filepath.Dir(exe))
}

func readConfigFile(dir, name, dflt string) (string, Source, error) {
	if dir == "" {
		return dflt, BuiltIn, nil
	}
	d, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return dflt, BuiltIn, nil
		}
		return "", BuiltIn, fmt.Errorf("could not read config file %s: %w", name, err)
	}
	return string(d), External, nil
}

func parseDirs(text string) ([]string, error) {
	node, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ArrayType {
		return nil, fmt.Errorf("dir whitelist must be an array, got %s", node.Type)
	}
	dirs := make([]string, 0, len(node.Values))
	for _, v := range node.Values {
		if v.Type != ir.StringType {
			return nil, fmt.Errorf("dir whitelist entry must be a string, got %s", v.Type)
		}
		dirs = append(dirs, v.String)
	}
	return dirs, nil
}

func parsePatterns(text string) (*pattern.Config, error) {
	node, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return pattern.FromNode(node)
}

// Init writes the default config files into dir. Without force, files
// that already exist are left alone and reported as an error.
func Init(dir string, force bool) ([]string, error) {
	var written []string
	for _, f := range []struct {
		name    string
		content string
	}{
		{DirsFile, defaultDirsConfig},
		{PatternsFile, defaultPatternsConfig},
	} {
		path := filepath.Join(dir, f.name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return written, fmt.Errorf("%s already exists in %s (use force to overwrite)", f.name, dir)
			}
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return written, fmt.Errorf("could not write %s: %w", f.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
