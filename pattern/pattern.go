// Package pattern compiles the per-extension path patterns that decide
// which pointer paths hold translatable text.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/neki-mods/neki-lang/ir"
)

// Set is a compiled group of path patterns for one file extension. A
// path matches the set when any pattern finds a match anywhere in it;
// patterns anchor themselves with ^/$ where needed. A Set compiled from
// an empty pattern list matches nothing.
type Set struct {
	res []*regexp.Regexp
}

func NewSet(patterns []string) (*Set, error) {
	s := &Set{}
	for _, pat := range patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		s.res = append(s.res, re)
	}
	return s, nil
}

func (s *Set) Matches(path string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Config maps file extensions (possibly compound, like "object.patch")
// to their pattern sets. It is built once from configuration and is
// read-only afterwards, so it may be shared across goroutines.
type Config struct {
	sets map[string]*Set
}

func New(raw map[string][]string) (*Config, error) {
	cfg := &Config{sets: make(map[string]*Set, len(raw))}
	for ext, patterns := range raw {
		s, err := NewSet(patterns)
		if err != nil {
			return nil, fmt.Errorf("extension %q: %w", ext, err)
		}
		cfg.sets[ext] = s
	}
	return cfg, nil
}

// FromNode builds a Config from a parsed configuration document: an
// object mapping extension to an array of pattern strings.
func FromNode(node *ir.Node) (*Config, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("pattern config must be an object, got %s", node.Type)
	}
	raw := make(map[string][]string, len(node.Fields))
	for i, ext := range node.Fields {
		val := node.Values[i]
		if val.Type != ir.ArrayType {
			return nil, fmt.Errorf("extension %q: patterns must be an array, got %s", ext, val.Type)
		}
		patterns := make([]string, 0, len(val.Values))
		for _, pv := range val.Values {
			if pv.Type != ir.StringType {
				return nil, fmt.Errorf("extension %q: pattern must be a string, got %s", ext, pv.Type)
			}
			patterns = append(patterns, pv.String)
		}
		raw[ext] = patterns
	}
	return New(raw)
}

// Has reports whether ext is a recognized extension.
func (c *Config) Has(ext string) bool {
	_, ok := c.sets[ext]
	return ok
}

// Set returns the pattern set for ext, or nil when the extension is not
// recognized.
func (c *Config) Set(ext string) *Set {
	return c.sets[ext]
}

// Extensions returns the recognized extensions in unspecified order.
func (c *Config) Extensions() []string {
	res := make([]string, 0, len(c.sets))
	for ext := range c.sets {
		res = append(res, ext)
	}
	return res
}
