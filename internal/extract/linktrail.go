package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/pcre"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/siteinfo"
)

// linkTrailGroup is the capture group holding the trail characters.
const linkTrailGroup = 1

var errNotReducible = errors.New("node does not reduce to a set of characters")

// LinkTrail returns the characters the site's link trail pattern absorbs
// into a preceding link.
func LinkTrail(q *siteinfo.Query) (CharSet, error) {
	return ParseLinkTrail(q.General.LinkTrail)
}

// ParseLinkTrail derives the link trail characters from a delimited pattern.
//
// Group 1 of the pattern must either be empty, which yields an empty set,
// or a repetition of a flat alternation of literals and classes.
func ParseLinkTrail(original string) (CharSet, error) {
	pattern, err := pcre.Parse(original)
	if err != nil {
		return nil, &LinkTrailError{Kind: LinkTrailPatternParse, Pattern: original, Index: linkTrailGroup, Err: err}
	}
	slog.Debug("parsed link trail pattern", "pattern", original, "tree", dumpValue{pattern.Root})

	group, ok := pattern.Group(linkTrailGroup)
	if !ok {
		return nil, &LinkTrailError{Kind: LinkTrailGroupNotFound, Pattern: original, Index: linkTrailGroup}
	}

	var repeated pcre.Node
	switch n := group.Sub.(type) {
	case pcre.Empty:
	case pcre.Repetition:
		repeated = n.Sub
	case pcre.Alternation, pcre.Anchor, pcre.Class, pcre.Concat, pcre.Group, pcre.Literal, pcre.WordBoundary:
		return nil, &LinkTrailError{Kind: LinkTrailGroupInvalid, Pattern: original, Index: linkTrailGroup}
	default:
		panic(fmt.Sprintf("extract: unexpected node type %T", n))
	}

	characters := CharSet{}
	if repeated == nil {
		return characters, nil
	}

	slog.Debug("reducing link trail group", "repeated", dumpValue{repeated})
	if err := reduceLinkTrail(repeated, characters); err != nil {
		return nil, &LinkTrailError{Kind: LinkTrailGroupInvalid, Pattern: original, Index: linkTrailGroup}
	}
	return characters, nil
}

// reduceLinkTrail adds every character n can match to characters.
// Only alternations, classes, groups and literals reduce; everything else
// describes more than a single trailing character.
func reduceLinkTrail(n pcre.Node, characters CharSet) error {
	switch n := n.(type) {
	case pcre.Alternation:
		for _, sub := range n.Subs {
			if err := reduceLinkTrail(sub, characters); err != nil {
				return err
			}
		}
	case pcre.Class:
		switch n.Encoding {
		case pcre.ClassBytes:
			for _, r := range n.Ranges {
				for b := r.Lo; b <= r.Hi; b++ {
					// pcre rejects or clips non-ASCII in byte classes.
					if b > unicode.MaxASCII {
						panic(fmt.Sprintf("extract: non-ASCII byte %#x in byte class", b))
					}
					characters.Add(b)
				}
			}
		case pcre.ClassUnicode:
			for _, r := range n.Ranges {
				for c := r.Lo; c <= r.Hi; c++ {
					characters.Add(c)
				}
			}
		}
	case pcre.Group:
		return reduceLinkTrail(n.Sub, characters)
	case pcre.Literal:
		characters.Add(n.Rune)
	case pcre.Anchor, pcre.Concat, pcre.Empty, pcre.Repetition, pcre.WordBoundary:
		return errNotReducible
	default:
		panic(fmt.Sprintf("extract: unexpected node type %T", n))
	}
	return nil
}

// dumpValue defers rendering a tree until the record is actually logged.
type dumpValue struct {
	node pcre.Node
}

func (d dumpValue) LogValue() slog.Value {
	return slog.StringValue(pcre.Dump(d.node))
}
