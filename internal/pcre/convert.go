package pcre

import (
	"fmt"
	"regexp/syntax"
	"slices"
	"unicode"
)

// converter turns a regexp/syntax tree into Nodes.
//
// Without the u modifier every Class it produces has Encoding ClassBytes and
// only ASCII ranges: a character the pattern spells out above ASCII is a
// parse error, and implicit ranges (dot, negated and Perl classes, case
// folds) are clipped. Link trail reduction relies on this.
type converter struct {
	unicode bool
}

func (c *converter) convert(re *syntax.Regexp) (Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return c.clip(nil), nil
	case syntax.OpEmptyMatch:
		return Empty{}, nil
	case syntax.OpLiteral:
		return c.literal(re)
	case syntax.OpCharClass:
		ranges := make([]Range, 0, len(re.Rune)/2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			ranges = append(ranges, Range{Lo: re.Rune[i], Hi: re.Rune[i+1]})
		}
		class, err := c.class(ranges, re.Flags&syntax.FoldCase != 0)
		if err != nil {
			return nil, err
		}
		return class, nil
	case syntax.OpAnyCharNotNL:
		return c.clip([]Range{{Lo: 0, Hi: '\n' - 1}, {Lo: '\n' + 1, Hi: unicode.MaxRune}}), nil
	case syntax.OpAnyChar:
		return c.clip([]Range{{Lo: 0, Hi: unicode.MaxRune}}), nil
	case syntax.OpBeginLine:
		return Anchor{Position: StartLine}, nil
	case syntax.OpEndLine:
		return Anchor{Position: EndLine}, nil
	case syntax.OpBeginText:
		return Anchor{Position: StartText}, nil
	case syntax.OpEndText:
		return Anchor{Position: EndText}, nil
	case syntax.OpWordBoundary:
		return WordBoundary{}, nil
	case syntax.OpNoWordBoundary:
		return WordBoundary{Negated: true}, nil
	case syntax.OpCapture:
		sub, err := c.convert(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Group{Index: re.Cap, Name: re.Name, Sub: sub}, nil
	case syntax.OpStar:
		return c.repetition(re, 0, -1)
	case syntax.OpPlus:
		return c.repetition(re, 1, -1)
	case syntax.OpQuest:
		return c.repetition(re, 0, 1)
	case syntax.OpRepeat:
		return c.repetition(re, re.Min, re.Max)
	case syntax.OpConcat:
		subs, err := c.convertAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return Concat{Subs: subs}, nil
	case syntax.OpAlternate:
		subs, err := c.convertAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return Alternation{Subs: subs}, nil
	default:
		return nil, fmt.Errorf("unsupported construct %v", re.Op)
	}
}

func (c *converter) convertAll(res []*syntax.Regexp) ([]Node, error) {
	nodes := make([]Node, 0, len(res))
	for _, re := range res {
		n, err := c.convert(re)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (c *converter) repetition(re *syntax.Regexp, minCount, maxCount int) (Node, error) {
	sub, err := c.convert(re.Sub[0])
	if err != nil {
		return nil, err
	}
	return Repetition{
		Min:    minCount,
		Max:    maxCount,
		Greedy: re.Flags&syntax.NonGreedy == 0,
		Sub:    sub,
	}, nil
}

// literal converts a run of literal runes. A case-insensitive rune becomes
// a class of its case-fold orbit, and a run of several runes a Concat.
func (c *converter) literal(re *syntax.Regexp) (Node, error) {
	nodes := make([]Node, 0, len(re.Rune))
	for _, r := range re.Rune {
		if !c.unicode && r > unicode.MaxASCII {
			return nil, errNonASCII(r)
		}
		if re.Flags&syntax.FoldCase == 0 {
			nodes = append(nodes, Literal{Rune: r})
			continue
		}
		nodes = append(nodes, c.foldClass(r))
	}

	switch len(nodes) {
	case 0:
		return Empty{}, nil
	case 1:
		return nodes[0], nil
	default:
		return Concat{Subs: nodes}, nil
	}
}

func (c *converter) foldClass(r rune) Node {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		// Byte mode folds ASCII letters only.
		if !c.unicode && r <= unicode.MaxASCII && f > unicode.MaxASCII {
			continue
		}
		orbit = append(orbit, f)
	}
	if len(orbit) == 1 {
		return Literal{Rune: r}
	}

	slices.Sort(orbit)
	ranges := make([]Range, len(orbit))
	for i, f := range orbit {
		ranges[i] = Range{Lo: f, Hi: f}
	}
	if !c.unicode && orbit[len(orbit)-1] <= unicode.MaxASCII {
		return Class{Encoding: ClassBytes, Ranges: ranges}
	}
	return Class{Encoding: ClassUnicode, Ranges: ranges}
}

// class builds a Class node from an explicit character class.
// In byte mode a range the pattern wrote above ASCII is an error. Ranges that
// run to the end of Unicode come from negation or Perl classes, and with
// case folding a non-ASCII rune may stand in for an ASCII letter; both are
// clipped instead.
func (c *converter) class(ranges []Range, foldCase bool) (Class, error) {
	if c.unicode {
		return Class{Encoding: ClassUnicode, Ranges: ranges}, nil
	}

	for _, r := range ranges {
		if r.Hi <= unicode.MaxASCII || r.Hi == unicode.MaxRune {
			continue
		}
		for x := max(r.Lo, unicode.MaxASCII+1); x <= r.Hi; x++ {
			if !foldCase || !foldsToASCII(x) {
				return Class{}, errNonASCII(x)
			}
		}
	}
	return c.clip(ranges), nil
}

// clip builds a Class node. In byte mode the ranges are clipped to ASCII.
func (c *converter) clip(ranges []Range) Class {
	if c.unicode {
		return Class{Encoding: ClassUnicode, Ranges: ranges}
	}

	clipped := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Lo > unicode.MaxASCII {
			continue
		}
		r.Hi = min(r.Hi, unicode.MaxASCII)
		clipped = append(clipped, r)
	}
	return Class{Encoding: ClassBytes, Ranges: clipped}
}

// foldsToASCII reports whether r is a case variant of an ASCII rune.
func foldsToASCII(r rune) bool {
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f <= unicode.MaxASCII {
			return true
		}
	}
	return false
}

func errNonASCII(r rune) error {
	return fmt.Errorf("non-ASCII character %q requires the u modifier", r)
}
