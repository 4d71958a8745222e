package trash

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/gobwas/glob"
)

// ProtectOptions lists user supplied rules for paths that must never be
// trashed or deleted.
type ProtectOptions struct {
	// Names are matched against the base name
	Names []string
	// Patterns are regular expressions matched against the absolute path
	Patterns []string
	// Globs are matched against the absolute path, "*" stops at "/"
	Globs []string
}

type rule struct {
	desc  string
	match func(path string) bool
}

// protector answers whether a resolved path is off limits.
type protector struct {
	rules []rule
}

func newProtector(opts ProtectOptions) (*protector, error) {
	p := &protector{}

	for _, name := range opts.Names {
		name := name
		p.rules = append(p.rules, rule{
			desc: fmt.Sprintf("name %q", name),
			match: func(path string) bool {
				return filepath.Base(path) == name
			},
		})
	}

	for _, pattern := range opts.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid protect pattern %q: %w", pattern, err)
		}
		p.rules = append(p.rules, rule{
			desc:  fmt.Sprintf("pattern %q", pattern),
			match: re.MatchString,
		})
	}

	for _, g := range opts.Globs {
		compiled, err := glob.Compile(g, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("invalid protect glob %q: %w", g, err)
		}
		p.rules = append(p.rules, rule{
			desc:  fmt.Sprintf("glob %q", g),
			match: compiled.Match,
		})
	}

	return p, nil
}

// match returns the description of the first rule matching path.
func (p *protector) match(path string) (string, bool) {
	for _, r := range p.rules {
		if r.match(path) {
			return r.desc, true
		}
	}
	return "", false
}
