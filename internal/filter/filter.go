// Package filter removes ignored entries from extracted configuration sets.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreReason describes why a value was ignored.
type IgnoreReason struct {
	Type  string // "value", "pattern", or "regex"
	Rule  string // The rule that matched
	Field string // Configuration field the value belonged to
	Value string // The value that was ignored
}

// Filter determines which extracted values are dropped from the output.
type Filter struct {
	// values holds exact values for O(1) lookup.
	values map[string]bool

	// globPatterns are compiled glob patterns for value matching.
	globPatterns []compiledGlob

	// regexPatterns are compiled regex patterns for value matching.
	regexPatterns []compiledRegex

	// Track ignored values for reporting
	ignored []IgnoreReason
}

// compiledGlob holds a glob pattern and its original string for error reporting.
type compiledGlob struct {
	pattern  glob.Glob
	original string
}

// compiledRegex holds a regex pattern and its original string for error reporting.
type compiledRegex struct {
	pattern  *regexp.Regexp
	original string
}

// Config holds filter configuration.
type Config struct {
	Values        []string // Exact values to ignore (compared lowercase)
	GlobPatterns  []string // Glob patterns (e.g., "bitcoin:*")
	RegexPatterns []string // Regex patterns (e.g., "^(irc|ircs)://$")
}

// New creates a new Filter from the given configuration.
// Patterns are compiled once.
// Returns an error if any pattern fails to compile.
func New(cfg Config) (*Filter, error) {
	f := &Filter{
		values:  map[string]bool{},
		ignored: []IgnoreReason{},
	}

	// Extracted values are lowercase, so exact rules are too
	for _, v := range cfg.Values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			f.values[v] = true
		}
	}

	for _, p := range cfg.GlobPatterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		f.globPatterns = append(f.globPatterns, compiledGlob{
			pattern:  g,
			original: p,
		})
	}

	for _, p := range cfg.RegexPatterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
		f.regexPatterns = append(f.regexPatterns, compiledRegex{
			pattern:  r,
			original: p,
		})
	}

	return f, nil
}

// ShouldIgnore checks if a value should be dropped.
// If the value matches any rule, it records the reason and returns true.
// Check order (fastest first): value → glob → regex.
func (f *Filter) ShouldIgnore(field, value string) bool {
	if f == nil {
		return false
	}

	reason := IgnoreReason{Field: field, Value: value}
	switch {
	case f.values[value]:
		reason.Type, reason.Rule = "value", value
	default:
		if rule, ok := f.matchesGlob(value); ok {
			reason.Type, reason.Rule = "pattern", rule
		} else if rule, ok := f.matchesRegex(value); ok {
			reason.Type, reason.Rule = "regex", rule
		} else {
			return false
		}
	}

	f.ignored = append(f.ignored, reason)
	return true
}

// Apply deletes every ignored value from values.
// Not safe for concurrent use.
func (f *Filter) Apply(field string, values map[string]struct{}) {
	if !f.HasRules() {
		return
	}
	for v := range values {
		if f.ShouldIgnore(field, v) {
			delete(values, v)
		}
	}
}

// matchesGlob checks if the value matches any glob pattern.
func (f *Filter) matchesGlob(value string) (string, bool) {
	for _, g := range f.globPatterns {
		if g.pattern.Match(value) {
			return g.original, true
		}
	}
	return "", false
}

// matchesRegex checks if the value matches any regex pattern.
func (f *Filter) matchesRegex(value string) (string, bool) {
	for _, r := range f.regexPatterns {
		if r.pattern.MatchString(value) {
			return r.original, true
		}
	}
	return "", false
}

// IgnoredCount returns the number of values that were ignored.
func (f *Filter) IgnoredCount() int {
	if f == nil {
		return 0
	}
	return len(f.ignored)
}

// Ignored returns all ignored values with their reasons.
func (f *Filter) Ignored() []IgnoreReason {
	if f == nil {
		return nil
	}
	return f.ignored
}

// HasRules returns true if the filter has any rules defined.
func (f *Filter) HasRules() bool {
	if f == nil {
		return false
	}
	return len(f.values) > 0 || len(f.globPatterns) > 0 || len(f.regexPatterns) > 0
}

// Stats returns a summary of the filter's rules.
func (f *Filter) Stats() (values, globs, regexes int) {
	if f == nil {
		return 0, 0, 0
	}
	return len(f.values), len(f.globPatterns), len(f.regexPatterns)
}
