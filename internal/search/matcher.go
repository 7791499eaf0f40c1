package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matcher finds the first occurrence of a pattern in a line. It is built
// once per search and reused for every line.
type Matcher struct {
	pattern    string
	needle     string // lower-cased pattern in case-insensitive substring mode
	ignoreCase bool
	re         *regexp.Regexp
}

// NewMatcher compiles pattern. In regex mode an invalid expression returns
// *PatternError; substring mode never fails. Empty patterns are accepted.
func NewMatcher(pattern string, isRegex, ignoreCase bool) (*Matcher, error) {
	m := &Matcher{pattern: pattern, ignoreCase: ignoreCase}

	if isRegex {
		expr := pattern
		if ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		m.re = re
		return m, nil
	}

	m.needle = pattern
	if ignoreCase {
		m.needle = strings.ToLower(pattern)
	}
	return m, nil
}

// Match returns the byte offset and exact text of the first match in line.
// The matched text is always taken from line itself, so it keeps the
// original casing even when matching ignores case.
func (m *Matcher) Match(line string) (start int, text string, ok bool) {
	if m.re != nil {
		loc := m.re.FindStringIndex(line)
		if loc == nil {
			return 0, "", false
		}
		return loc[0], line[loc[0]:loc[1]], true
	}

	if !m.ignoreCase {
		idx := strings.Index(line, m.pattern)
		if idx < 0 {
			return 0, "", false
		}
		return idx, line[idx : idx+len(m.pattern)], true
	}

	if isASCII(line) && isASCII(m.pattern) {
		idx := strings.Index(strings.ToLower(line), m.needle)
		if idx < 0 {
			return 0, "", false
		}
		return idx, line[idx : idx+len(m.pattern)], true
	}
	return m.foldScan(line)
}

// foldScan handles non-ASCII text, where the lower-case form can have a
// different byte length than the original and offsets into a lowered copy
// would not line up. It compares rune-aligned windows of the original line.
func (m *Matcher) foldScan(line string) (int, string, bool) {
	if m.needle == "" {
		return 0, "", true
	}
	for i := 0; i < len(line); {
		for j := i; j < len(line); {
			_, size := utf8.DecodeRuneInString(line[j:])
			j += size
			lowered := strings.ToLower(line[i:j])
			if lowered == m.needle {
				return i, line[i:j], true
			}
			if !strings.HasPrefix(m.needle, lowered) {
				break
			}
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
	}
	return 0, "", false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
