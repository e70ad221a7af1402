package extract

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrNamespaceNotFound     = errors.New("namespace not found")
	ErrMalformedExtensionTag = errors.New("malformed extension tag")
	ErrGroupNotFound         = errors.New("group not found in link trail pattern")
	ErrGroupInvalid          = errors.New("group of invalid structure in link trail pattern")
)

// NamespaceNotFoundError is returned when no namespace has the requested canonical name.
type NamespaceNotFoundError struct {
	Name string
}

func (e *NamespaceNotFoundError) Error() string {
	return fmt.Sprintf("namespace not found: %q", e.Name)
}

func (e *NamespaceNotFoundError) Is(target error) bool {
	return target == ErrNamespaceNotFound
}

// MalformedExtensionTagError is returned for a tag marker not of the form "<name>".
type MalformedExtensionTagError struct {
	Tag string
}

func (e *MalformedExtensionTagError) Error() string {
	return fmt.Sprintf("malformed extension tag: %q", e.Tag)
}

func (e *MalformedExtensionTagError) Is(target error) bool {
	return target == ErrMalformedExtensionTag
}

// LinkTrailErrorKind classifies a LinkTrailError.
type LinkTrailErrorKind int

const (
	// LinkTrailPatternParse means the pattern is not a valid regular expression.
	LinkTrailPatternParse LinkTrailErrorKind = iota
	// LinkTrailGroupNotFound means the pattern has no group with the expected index.
	LinkTrailGroupNotFound
	// LinkTrailGroupInvalid means the group cannot be reduced to a set of characters.
	LinkTrailGroupInvalid
)

// LinkTrailError is returned when a link trail pattern cannot be turned
// into a character set.
type LinkTrailError struct {
	Kind    LinkTrailErrorKind
	Pattern string
	Index   int
	// Err is the parse error for LinkTrailPatternParse and nil otherwise.
	Err error
}

func (e *LinkTrailError) Error() string {
	switch e.Kind {
	case LinkTrailPatternParse:
		return e.Err.Error()
	case LinkTrailGroupNotFound:
		return fmt.Sprintf("group %d not found in link trail pattern: %q", e.Index, e.Pattern)
	default:
		return fmt.Sprintf("group %d of invalid structure in link trail pattern: %q", e.Index, e.Pattern)
	}
}

func (e *LinkTrailError) Unwrap() error {
	return e.Err
}

func (e *LinkTrailError) Is(target error) bool {
	switch e.Kind {
	case LinkTrailGroupNotFound:
		return target == ErrGroupNotFound
	case LinkTrailGroupInvalid:
		return target == ErrGroupInvalid
	default:
		return false
	}
}
