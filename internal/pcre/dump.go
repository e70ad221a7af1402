package pcre

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as a compact single-line tree for debug output.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case Empty:
		b.WriteString("empty")
	case Literal:
		b.WriteString(strconv.QuoteRune(n.Rune))
	case Class:
		if n.Encoding == ClassBytes {
			b.WriteString("bytes[")
		} else {
			b.WriteString("[")
		}
		for _, r := range n.Ranges {
			writeClassRune(b, r.Lo)
			if r.Hi != r.Lo {
				b.WriteByte('-')
				writeClassRune(b, r.Hi)
			}
		}
		b.WriteByte(']')
	case Concat:
		dumpList(b, "concat", n.Subs)
	case Alternation:
		dumpList(b, "alt", n.Subs)
	case Group:
		if n.Index == 0 {
			b.WriteString("group(")
		} else {
			fmt.Fprintf(b, "group#%d(", n.Index)
		}
		dump(b, n.Sub)
		b.WriteByte(')')
	case Repetition:
		if n.Max < 0 {
			fmt.Fprintf(b, "rep{%d,}(", n.Min)
		} else {
			fmt.Fprintf(b, "rep{%d,%d}(", n.Min, n.Max)
		}
		dump(b, n.Sub)
		b.WriteByte(')')
	case Anchor:
		b.WriteString([...]string{StartLine: "^line", EndLine: "$line", StartText: "^text", EndText: "$text"}[n.Position])
	case WordBoundary:
		if n.Negated {
			b.WriteString(`\B`)
		} else {
			b.WriteString(`\b`)
		}
	default:
		panic(unreachable(n))
	}
}

func dumpList(b *strings.Builder, name string, nodes []Node) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		dump(b, n)
	}
	b.WriteByte(')')
}

func writeClassRune(b *strings.Builder, r rune) {
	switch {
	case r == ']' || r == '-' || r == '\\':
		b.WriteByte('\\')
		b.WriteRune(r)
		return
	case strconv.IsPrint(r):
		b.WriteRune(r)
		return
	}
	q := strconv.QuoteRuneToASCII(r)
	b.WriteString(q[1 : len(q)-1])
}

// unreachable builds the panic message for a Node outside the closed set.
func unreachable(n Node) string {
	return fmt.Sprintf("pcre: unexpected node type %T", n)
}
