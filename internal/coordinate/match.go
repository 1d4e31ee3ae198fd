package coordinate

import (
	"fmt"
	"regexp"
)

// MatchMode selects how non-empty pattern fields are compared.
type MatchMode int

const (
	// MatchExact requires string equality.
	MatchExact MatchMode = iota
	// MatchRegex treats the field as an anchored regular expression.
	MatchRegex
)

// String returns the mode name.
func (m MatchMode) String() string {
	if m == MatchRegex {
		return "regex"
	}
	return "exact"
}

// Matcher is a predicate over a single coordinate field.
type Matcher interface {
	Match(value string) bool
}

type anyMatcher struct{}

func (anyMatcher) Match(string) bool { return true }

type exactMatcher string

func (m exactMatcher) Match(value string) bool { return string(m) == value }

type regexMatcher struct{ re *regexp.Regexp }

func (m regexMatcher) Match(value string) bool { return m.re.MatchString(value) }

// NewMatcher returns the matcher for a single pattern field.
// Empty patterns always match.
func NewMatcher(pattern string, mode MatchMode) (Matcher, error) {
	if pattern == "" {
		return anyMatcher{}, nil
	}
	if mode == MatchExact {
		return exactMatcher(pattern), nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return regexMatcher{re: re}, nil
}

// Pattern is a compiled coordinate pattern.
type Pattern struct {
	source   Coordinate
	mode     MatchMode
	matchers [3]Matcher
}

// Compile compiles every field of c using mode.
func Compile(c Coordinate, mode MatchMode) (*Pattern, error) {
	p := &Pattern{source: c, mode: mode}
	for i, field := range []string{c.Group, c.Artifact, c.Version} {
		m, err := NewMatcher(field, mode)
		if err != nil {
			return nil, fmt.Errorf("coordinate %s: %w", c, err)
		}
		p.matchers[i] = m
	}
	return p, nil
}

// Source returns the coordinate the pattern was compiled from.
func (p *Pattern) Source() Coordinate {
	return p.source
}

// Match reports whether candidate satisfies every field matcher.
func (p *Pattern) Match(candidate Coordinate) bool {
	return p.matchers[0].Match(candidate.Group) &&
		p.matchers[1].Match(candidate.Artifact) &&
		p.matchers[2].Match(candidate.Version)
}

// Matches reports whether candidate matches pattern field by field using
// string equality, with empty pattern fields matching anything.
func Matches(pattern, candidate Coordinate) bool {
	return (pattern.Group == "" || pattern.Group == candidate.Group) &&
		(pattern.Artifact == "" || pattern.Artifact == candidate.Artifact) &&
		(pattern.Version == "" || pattern.Version == candidate.Version)
}
