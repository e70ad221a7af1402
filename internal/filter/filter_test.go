package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("EmptyConfig", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{})
		require.NoError(t, err)
		assert.NotNil(t, f)
		assert.False(t, f.HasRules())
	})

	t.Run("ValidValues", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{
			Values: []string{"mailto:", "gopher://"},
		})
		require.NoError(t, err)
		assert.True(t, f.HasRules())

		values, globs, regexes := f.Stats()
		assert.Equal(t, 2, values)
		assert.Equal(t, 0, globs)
		assert.Equal(t, 0, regexes)
	})

	t.Run("InvalidGlob", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{
			GlobPatterns: []string{"[invalid"},
		})
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid glob pattern")
	})

	t.Run("InvalidRegex", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{
			RegexPatterns: []string{"[invalid"},
		})
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})

	t.Run("SkipsEmptyStrings", func(t *testing.T) {
		t.Parallel()
		f, err := New(Config{
			Values:        []string{"", "news:", "  "},
			GlobPatterns:  []string{"", "irc*"},
			RegexPatterns: []string{"", "^sip"},
		})
		require.NoError(t, err)

		values, globs, regexes := f.Stats()
		assert.Equal(t, 1, values)
		assert.Equal(t, 1, globs)
		assert.Equal(t, 1, regexes)
	})
}

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	f, err := New(Config{
		Values:        []string{"  MAILTO:  "},
		GlobPatterns:  []string{"irc*://"},
		RegexPatterns: []string{`^(sip|sips):$`},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"ExactValue", "mailto:", true},
		{"Glob", "ircs://", true},
		{"GlobPlain", "irc://", true},
		{"Regex", "sips:", true},

		{"NoMatch", "https://", false},
		{"PartialValue", "mailto", false},
		{"RegexAnchored", "sip:x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, f.ShouldIgnore("protocols", tt.value), "value: %s", tt.value)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	f, err := New(Config{
		Values:       []string{"ref"},
		GlobPatterns: []string{"math*"},
	})
	require.NoError(t, err)

	tags := map[string]struct{}{"ref": {}, "math": {}, "mathml": {}, "pre": {}}
	f.Apply("extension_tags", tags)

	assert.Equal(t, map[string]struct{}{"pre": {}}, tags)
	assert.Equal(t, 3, f.IgnoredCount())
	for _, r := range f.Ignored() {
		assert.Equal(t, "extension_tags", r.Field)
	}
}

func TestIgnoredReasons(t *testing.T) {
	t.Parallel()

	f, err := New(Config{
		Values:        []string{"notoc"},
		GlobPatterns:  []string{"no*"},
		RegexPatterns: []string{"^force"},
	})
	require.NoError(t, err)

	assert.True(t, f.ShouldIgnore("magic_words", "notoc"))
	assert.True(t, f.ShouldIgnore("magic_words", "nogallery"))
	assert.True(t, f.ShouldIgnore("magic_words", "forcetoc"))
	assert.False(t, f.ShouldIgnore("magic_words", "toc"))

	assert.Equal(t, []IgnoreReason{
		{Type: "value", Rule: "notoc", Field: "magic_words", Value: "notoc"},
		{Type: "pattern", Rule: "no*", Field: "magic_words", Value: "nogallery"},
		{Type: "regex", Rule: "^force", Field: "magic_words", Value: "forcetoc"},
	}, f.Ignored())
}

func TestNilFilter(t *testing.T) {
	t.Parallel()

	var f *Filter
	assert.False(t, f.ShouldIgnore("protocols", "mailto:"))
	assert.False(t, f.HasRules())
	assert.Zero(t, f.IgnoredCount())
	assert.Nil(t, f.Ignored())

	values := map[string]struct{}{"a": {}}
	f.Apply("protocols", values)
	assert.Len(t, values, 1)

	v, g, r := f.Stats()
	assert.Zero(t, v+g+r)
}
