package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/pcre"
	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/siteinfo"
)

func runes(s string) []rune {
	return NewSet([]rune(s)...).Sorted()
}

func TestLinkTrail(t *testing.T) {
	t.Parallel()

	t.Run("FromQuery", func(t *testing.T) {
		t.Parallel()
		chars, err := LinkTrail(testQuery())
		require.NoError(t, err)
		assert.Equal(t, runes("abcdefghijklmnopqrstuvwxyzßäöü"), chars.Sorted())
	})

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"EmptyGroup", "/^()(.*)$/sD", ""},
		{"ClassRange", "/^([a-z]+)(.*)$/sD", "abcdefghijklmnopqrstuvwxyz"},
		{"LiteralOrDigit", "/^((?:s|[0-9])+)/", "s0123456789"},
		{"NestedCaptureGroup", "/^((a|[0-9])+)/", "a0123456789"},
		{"StarRepetition", "/^([xy]*)(.*)$/sD", "xy"},
		{"CaseInsensitive", "/^([a-c]+)/i", "ABCabc"},
		{"UnicodeLiteral", "/^(é+)(.*)$/sDu", "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chars, err := ParseLinkTrail(tt.pattern)
			require.NoError(t, err)
			require.NotNil(t, chars)
			assert.Equal(t, runes(tt.want), chars.Sorted())
		})
	}
}

func TestLinkTrail_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		kind    LinkTrailErrorKind
		target  error
	}{
		{"Concatenation", "/^((?:ab)+)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"AlternationWithConcatenation", "/^((?:a|bc)+)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"NestedRepetition", "/^((?:a+|b)+)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"AnchorInRepetition", "/^((?:x|$)+)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"TopLevelClass", "/^([a-z])(.*)$/sD", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"TopLevelLiteral", "/^(a)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"TopLevelConcat", "/^(ab)/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"TopLevelWordBoundary", `/^(\b)/`, LinkTrailGroupInvalid, ErrGroupInvalid},
		{"TopLevelGroup", "/^((a+))/", LinkTrailGroupInvalid, ErrGroupInvalid},
		{"NoGroup", "/^[a-z]+$/", LinkTrailGroupNotFound, ErrGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chars, err := ParseLinkTrail(tt.pattern)
			require.Error(t, err)
			assert.Nil(t, chars)
			assert.ErrorIs(t, err, tt.target)

			var lerr *LinkTrailError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.kind, lerr.Kind)
			assert.Equal(t, tt.pattern, lerr.Pattern)
			assert.Equal(t, 1, lerr.Index)
			assert.NoError(t, lerr.Unwrap())
		})
	}

	t.Run("Messages", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLinkTrail("/^((?:ab)+)/")
		assert.EqualError(t, err, `group 1 of invalid structure in link trail pattern: "/^((?:ab)+)/"`)

		_, err = ParseLinkTrail("/^[a-z]+$/")
		assert.EqualError(t, err, `group 1 not found in link trail pattern: "/^[a-z]+$/"`)
	})

	t.Run("PatternParse", func(t *testing.T) {
		t.Parallel()
		q := &siteinfo.Query{General: siteinfo.General{LinkTrail: "/^([a-z]+/"}}
		chars, err := LinkTrail(q)
		require.Error(t, err)
		assert.Nil(t, chars)

		var lerr *LinkTrailError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, LinkTrailPatternParse, lerr.Kind)
		assert.False(t, errors.Is(err, ErrGroupInvalid))

		var perr *pcre.PatternParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "/^([a-z]+/", perr.Pattern)
		assert.Equal(t, perr.Error(), err.Error())
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		t.Parallel()
		_, err := LinkTrail(&siteinfo.Query{})
		var perr *pcre.PatternParseError
		assert.True(t, errors.As(err, &perr))
	})
}

func TestParseLinkTrail_NonASCIIWithoutUnicode(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{
		"/^([äa-z]+)(.*)$/sD",
		"/^([äa-c]+)(.*)$/sD",
		"/^([ä]+)(.*)$/sD",
		"/^(ä+)(.*)$/sD",
		"/^((?:ä|[a-z])+)(.*)$/sD",
	} {
		t.Run(pattern, func(t *testing.T) {
			t.Parallel()

			chars, err := ParseLinkTrail(pattern)
			require.Error(t, err)
			assert.Nil(t, chars)

			var lerr *LinkTrailError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, LinkTrailPatternParse, lerr.Kind)

			var perr *pcre.PatternParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, err.Error(), "requires the u modifier")
		})
	}

	t.Run("same pattern with u", func(t *testing.T) {
		t.Parallel()

		chars, err := ParseLinkTrail("/^([äa-c]+)(.*)$/sDu")
		require.NoError(t, err)
		assert.Equal(t, "abcä", string(chars.Sorted()))
	})
}

func TestReduceLinkTrail(t *testing.T) {
	t.Parallel()

	t.Run("Alternation", func(t *testing.T) {
		t.Parallel()
		chars := CharSet{}
		err := reduceLinkTrail(pcre.Alternation{Subs: []pcre.Node{
			pcre.Literal{Rune: 's'},
			pcre.Class{Encoding: pcre.ClassBytes, Ranges: []pcre.Range{{Lo: '0', Hi: '9'}}},
		}}, chars)
		require.NoError(t, err)
		assert.Equal(t, runes("s0123456789"), chars.Sorted())
	})

	t.Run("UnnumberedGroup", func(t *testing.T) {
		t.Parallel()
		chars := CharSet{}
		err := reduceLinkTrail(pcre.Group{Sub: pcre.Class{
			Encoding: pcre.ClassUnicode,
			Ranges:   []pcre.Range{{Lo: 'α', Hi: 'γ'}, {Lo: 'a', Hi: 'a'}},
		}}, chars)
		require.NoError(t, err)
		assert.Equal(t, runes("aαβγ"), chars.Sorted())
	})

	rejected := []pcre.Node{
		pcre.Anchor{Position: pcre.EndText},
		pcre.Concat{Subs: []pcre.Node{pcre.Literal{Rune: 'a'}, pcre.Literal{Rune: 'b'}}},
		pcre.Empty{},
		pcre.Repetition{Min: 1, Max: -1, Sub: pcre.Literal{Rune: 'a'}},
		pcre.WordBoundary{},
		pcre.Alternation{Subs: []pcre.Node{pcre.Literal{Rune: 'a'}, pcre.Empty{}}},
		pcre.Group{Index: 2, Sub: pcre.WordBoundary{Negated: true}},
	}
	for _, n := range rejected {
		t.Run("Rejects_"+pcre.Dump(n), func(t *testing.T) {
			t.Parallel()
			err := reduceLinkTrail(n, CharSet{})
			assert.ErrorIs(t, err, errNotReducible)
		})
	}

	t.Run("NonASCIIByteClassPanics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			_ = reduceLinkTrail(pcre.Class{
				Encoding: pcre.ClassBytes,
				Ranges:   []pcre.Range{{Lo: 0x7e, Hi: 0x80}},
			}, CharSet{})
		})
	})
}

func TestLinkTrailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	chars, err := ParseLinkTrail("/^([A-C]+)/")
	require.NoError(t, err)
	assert.True(t, chars.Has('A'))
	assert.False(t, chars.Has('a'))
}
