// Package pcre parses the delimited PCRE patterns published by MediaWiki
// into an immutable syntax tree.
//
// Parsing is delegated to regexp/syntax. The resulting tree is converted
// into the closed set of node types declared in node.go, so consumers can
// dispatch over every construct a pattern may contain.
package pcre

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PatternParseError reports a pattern that could not be parsed.
type PatternParseError struct {
	Pattern string
	Err     error
}

func (e *PatternParseError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternParseError) Unwrap() error {
	return e.Err
}

// Pattern is a parsed, delimited PCRE pattern.
type Pattern struct {
	// Source is the pattern exactly as given to Parse.
	Source string
	// Body is the pattern between the delimiters.
	Body string
	// Modifiers are the flags after the closing delimiter.
	Modifiers string
	// Unicode is set by the u modifier. Without it classes are byte-oriented.
	Unicode bool
	// Root is the syntax tree of Body.
	Root Node
}

// Group returns the capture group with the given index.
func (p *Pattern) Group(index int) (Group, bool) {
	return FindGroupIndex(p.Root, index)
}

// closingDelimiters maps bracket-style opening delimiters to their closing pair.
var closingDelimiters = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// Parse parses a delimited pattern such as "/^([a-z]+)(.*)$/sD".
//
// Supported modifiers are i, m, s, U, u and D. D is accepted and ignored:
// $ already only matches at the end of text unless m is given.
func Parse(pattern string) (*Pattern, error) {
	body, modifiers, err := splitDelimited(pattern)
	if err != nil {
		return nil, &PatternParseError{Pattern: pattern, Err: err}
	}

	flags := syntax.Perl
	unicodeMode := false
	for _, m := range modifiers {
		switch m {
		case 'i':
			flags |= syntax.FoldCase
		case 'm':
			flags &^= syntax.OneLine
		case 's':
			flags |= syntax.DotNL
		case 'U':
			flags |= syntax.NonGreedy
		case 'u':
			unicodeMode = true
		case 'D':
		default:
			return nil, &PatternParseError{Pattern: pattern, Err: fmt.Errorf("unsupported modifier %q", m)}
		}
	}

	re, err := syntax.Parse(body, flags)
	if err != nil {
		return nil, &PatternParseError{Pattern: pattern, Err: err}
	}

	c := converter{unicode: unicodeMode}
	root, err := c.convert(re)
	if err != nil {
		return nil, &PatternParseError{Pattern: pattern, Err: err}
	}

	return &Pattern{
		Source:    pattern,
		Body:      body,
		Modifiers: modifiers,
		Unicode:   unicodeMode,
		Root:      root,
	}, nil
}

// splitDelimited separates the pattern body from its delimiters and modifiers.
func splitDelimited(pattern string) (body, modifiers string, err error) {
	if pattern == "" {
		return "", "", errors.New("empty pattern")
	}

	open, size := utf8.DecodeRuneInString(pattern)
	if open == '\\' || unicode.IsLetter(open) || unicode.IsDigit(open) || unicode.IsSpace(open) {
		return "", "", fmt.Errorf("delimiter must not be alphanumeric, backslash or whitespace: %q", open)
	}

	closing := open
	if c, ok := closingDelimiters[open]; ok {
		closing = c
	}

	rest := pattern[size:]
	end := strings.LastIndex(rest, string(closing))
	if end < 0 {
		return "", "", fmt.Errorf("no ending delimiter %q found", closing)
	}

	return rest[:end], rest[end+utf8.RuneLen(closing):], nil
}
