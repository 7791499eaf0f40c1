package search

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Line Matcher:
// - substring, case-sensitive: exact occurrence and offset, miss on different case
// - substring, ignore-case: matches any casing, returns original-cased text
// - substring, ignore-case with length-changing lower-case runes keeps offsets on the original
// - substring: first occurrence wins
// - empty pattern matches at offset 0 in substring mode
// - regex: leftmost match and its exact text
// - regex ignore-case applied at compile time
// - regex: no match returns ok=false
// - invalid regex returns *PatternError wrapping the regexp error

func TestMatcher_SubstringCaseSensitive(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("bar", false, false)
	require.NoError(t, err)

	start, text, ok := m.Match("foo bar baz")
	require.True(t, ok)
	assert.Equal(t, 4, start)
	assert.Equal(t, "bar", text)

	_, _, ok = m.Match("foo BAR baz")
	assert.False(t, ok)
}

func TestMatcher_SubstringIgnoreCasePreservesOriginalText(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("HeLLo", false, true)
	require.NoError(t, err)

	for _, line := range []string{"say hello", "say HELLO", "say Hello"} {
		start, text, ok := m.Match(line)
		require.True(t, ok, line)
		assert.Equal(t, 4, start)
		assert.Equal(t, line[4:], text)
	}
}

func TestMatcher_SubstringIgnoreCaseLengthChangingRunes(t *testing.T) {
	t.Parallel()

	// "İ" (2 bytes) lower-cases to "i̇" (3 bytes), shifting later offsets.
	m, err := NewMatcher("world", false, true)
	require.NoError(t, err)

	line := "İİ WORLD"
	start, text, ok := m.Match(line)
	require.True(t, ok)
	assert.Equal(t, "WORLD", text)
	assert.Equal(t, text, line[start:start+len(text)])
}

func TestMatcher_SubstringFirstOccurrence(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("ab", false, true)
	require.NoError(t, err)

	start, text, ok := m.Match("xAB ab Ab")
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, "AB", text)
}

func TestMatcher_EmptyPatternSubstring(t *testing.T) {
	t.Parallel()

	for _, ignoreCase := range []bool{false, true} {
		m, err := NewMatcher("", false, ignoreCase)
		require.NoError(t, err)

		start, text, ok := m.Match("anything")
		assert.True(t, ok)
		assert.Equal(t, 0, start)
		assert.Equal(t, "", text)
	}
}

func TestMatcher_Regex(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher(`b[a-z]+`, true, false)
	require.NoError(t, err)

	start, text, ok := m.Match("foo bar baz")
	require.True(t, ok)
	assert.Equal(t, 4, start)
	assert.Equal(t, "bar", text)

	_, _, ok = m.Match("FOO BAR")
	assert.False(t, ok)
}

func TestMatcher_RegexIgnoreCase(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher(`func\s+main`, true, true)
	require.NoError(t, err)

	start, text, ok := m.Match("x := FUNC   Main()")
	require.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, "FUNC   Main", text)
}

func TestMatcher_InvalidRegex(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("foo(", true, false)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	var pe *PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "foo(", pe.Pattern)

	var syntaxErr *syntax.Error
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestMatcher_InvalidRegexIgnoredInSubstringMode(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher("foo(", false, false)
	require.NoError(t, err)

	_, text, ok := m.Match("call foo(x)")
	assert.True(t, ok)
	assert.Equal(t, "foo(", text)
}
