package extract

import (
	"cmp"
	"maps"
	"slices"
)

// Set is an unordered collection of unique values.
type Set[T cmp.Ordered] map[T]struct{}

// StringSet holds normalized names.
type StringSet = Set[string]

// CharSet holds link trail characters.
type CharSet = Set[rune]

// NewSet returns a set holding items.
func NewSet[T cmp.Ordered](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts v.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s)
}

// Sorted returns the elements in ascending order.
func (s Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s))
}
