package pcre

// FindGroupIndex returns the capture group with the given index,
// searching the tree depth-first.
func FindGroupIndex(n Node, index int) (Group, bool) {
	switch n := n.(type) {
	case Group:
		if n.Index == index {
			return n, true
		}
		return FindGroupIndex(n.Sub, index)
	case Repetition:
		return FindGroupIndex(n.Sub, index)
	case Concat:
		return findInAll(n.Subs, index)
	case Alternation:
		return findInAll(n.Subs, index)
	case Empty, Literal, Class, Anchor, WordBoundary:
		return Group{}, false
	default:
		panic(unreachable(n))
	}
}

func findInAll(nodes []Node, index int) (Group, bool) {
	for _, n := range nodes {
		if g, ok := FindGroupIndex(n, index); ok {
			return g, true
		}
	}
	return Group{}, false
}
