// Package classify provides the declarative pattern tables used to label
// file paths, author identities, commit messages and added diff lines.
package classify

import (
	"fmt"
	"regexp"
)

// PatternSet is an ordered list of precompiled case-insensitive patterns.
// Order matters for First: the lowest matching index wins.
type PatternSet struct {
	sources  []string
	patterns []*regexp.Regexp
}

// Compile builds a PatternSet from regular expression sources. Every
// pattern is compiled case-insensitively. An invalid pattern fails the
// whole set so a typo in configuration is reported instead of ignored.
func Compile(sources []string) (*PatternSet, error) {
	ps := &PatternSet{
		sources:  make([]string, 0, len(sources)),
		patterns: make([]*regexp.Regexp, 0, len(sources)),
	}
	for i, src := range sources {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			return nil, fmt.Errorf("pattern %d %q: %w", i, src, err)
		}
		ps.sources = append(ps.sources, src)
		ps.patterns = append(ps.patterns, re)
	}
	return ps, nil
}

// MustCompile is like Compile but panics on an invalid pattern. It is
// intended for the built-in defaults.
func MustCompile(sources []string) *PatternSet {
	ps, err := Compile(sources)
	if err != nil {
		panic(err)
	}
	return ps
}

// First returns the index of the first pattern matching s.
func (ps *PatternSet) First(s string) (int, bool) {
	if ps == nil {
		return -1, false
	}
	for i, re := range ps.patterns {
		if re.MatchString(s) {
			return i, true
		}
	}
	return -1, false
}

// Match reports whether any pattern matches s.
func (ps *PatternSet) Match(s string) bool {
	_, ok := ps.First(s)
	return ok
}

// Len returns the number of patterns in the set.
func (ps *PatternSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.patterns)
}

// Sources returns the pattern sources in evaluation order.
func (ps *PatternSet) Sources() []string {
	if ps == nil {
		return nil
	}
	out := make([]string, len(ps.sources))
	copy(out, ps.sources)
	return out
}
