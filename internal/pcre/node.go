package pcre

// Kind identifies the variant of a Node.
type Kind int

// Node kinds. The set is closed: every Node in a parsed tree is one of
// the types declared in this file.
const (
	KindEmpty Kind = iota
	KindLiteral
	KindClass
	KindConcat
	KindAlternation
	KindGroup
	KindRepetition
	KindAnchor
	KindWordBoundary
)

var kindNames = [...]string{
	KindEmpty:        "empty",
	KindLiteral:      "literal",
	KindClass:        "class",
	KindConcat:       "concat",
	KindAlternation:  "alternation",
	KindGroup:        "group",
	KindRepetition:   "repetition",
	KindAnchor:       "anchor",
	KindWordBoundary: "word-boundary",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is an immutable regular expression syntax tree node.
// It is sealed: only this package can add implementations.
type Node interface {
	Kind() Kind
	node()
}

// Empty matches the empty string.
type Empty struct{}

// Literal matches a single character.
type Literal struct {
	Rune rune
}

// ClassEncoding tells whether a class ranges over bytes or code points.
type ClassEncoding int

const (
	// ClassUnicode ranges over Unicode code points.
	ClassUnicode ClassEncoding = iota
	// ClassBytes ranges over ASCII bytes. Patterns without the u modifier
	// produce byte classes, clipped to ASCII at parse time.
	ClassBytes
)

// Range is an inclusive character range.
type Range struct {
	Lo, Hi rune
}

// Class matches any single character within one of its ranges.
// Ranges are sorted and non-overlapping.
type Class struct {
	Encoding ClassEncoding
	Ranges   []Range
}

// Concat matches its sub-expressions in sequence.
type Concat struct {
	Subs []Node
}

// Alternation matches any one of its alternatives, tried in order.
type Alternation struct {
	Subs []Node
}

// Group wraps a sub-expression. Index is the capture number,
// or zero for a non-capturing group.
type Group struct {
	Index int
	Name  string
	Sub   Node
}

// Repetition matches Sub between Min and Max times. Max is -1 when unbounded.
type Repetition struct {
	Min    int
	Max    int
	Greedy bool
	Sub    Node
}

// AnchorPosition is the position an Anchor asserts.
type AnchorPosition int

const (
	StartLine AnchorPosition = iota
	EndLine
	StartText
	EndText
)

// Anchor asserts a position without consuming input.
type Anchor struct {
	Position AnchorPosition
}

// WordBoundary asserts a word boundary (\b) or its negation (\B).
type WordBoundary struct {
	Negated bool
}

func (Empty) Kind() Kind        { return KindEmpty }
func (Literal) Kind() Kind      { return KindLiteral }
func (Class) Kind() Kind        { return KindClass }
func (Concat) Kind() Kind       { return KindConcat }
func (Alternation) Kind() Kind  { return KindAlternation }
func (Group) Kind() Kind        { return KindGroup }
func (Repetition) Kind() Kind   { return KindRepetition }
func (Anchor) Kind() Kind       { return KindAnchor }
func (WordBoundary) Kind() Kind { return KindWordBoundary }

func (Empty) node()        {}
func (Literal) node()      {}
func (Class) node()        {}
func (Concat) node()       {}
func (Alternation) node()  {}
func (Group) node()        {}
func (Repetition) node()   {}
func (Anchor) node()       {}
func (WordBoundary) node() {}
