package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/scribe/internal/search"
)

// previewSeparator joins the parts of a one-line preview.
const previewSeparator = "  ← "

// Preview builds a single-line summary of a match: pre-context lines joined
// with " / ", the matched line, then post-context lines joined the same way.
// Empty parts are omitted.
func Preview(m search.Match) string {
	var parts []string
	if len(m.PreContext) > 0 {
		parts = append(parts, strings.Join(m.PreContext, " / "))
	}
	parts = append(parts, m.Line)
	if len(m.PostContext) > 0 {
		parts = append(parts, strings.Join(m.PostContext, " / "))
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, previewSeparator)
}

// Highlight returns the match's line with the matched text styled.
func (t Theme) Highlight(m search.Match) string {
	end := m.Offset + len(m.MatchedText)
	if m.MatchedText == "" || m.Offset < 0 || end > len(m.Line) || m.Line[m.Offset:end] != m.MatchedText {
		return m.Line
	}
	return m.Line[:m.Offset] + t.Match.Render(m.MatchedText) + m.Line[end:]
}

// Matches writes matches grouped by file. Matched lines use ":" after the
// line number and context lines use "-", so the output reads like grep -n -C.
func Matches(w io.Writer, matches []search.Match, theme Theme) error {
	var current string
	for i, m := range matches {
		if m.Path != current {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, theme.Path.Render(m.Path)); err != nil {
				return err
			}
			current = m.Path
		}

		first := m.LineNumber - len(m.PreContext)
		for j, line := range m.PreContext {
			if err := writeLine(w, theme, first+j, "-", theme.Context.Render(line)); err != nil {
				return err
			}
		}
		if err := writeLine(w, theme, m.LineNumber, ":", theme.Highlight(m)); err != nil {
			return err
		}
		for j, line := range m.PostContext {
			if err := writeLine(w, theme, m.LineNumber+1+j, "-", theme.Context.Render(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Previews writes one "path:line: preview" row per match.
func Previews(w io.Writer, matches []search.Match, theme Theme) error {
	for _, m := range matches {
		_, err := fmt.Fprintf(w, "%s:%s: %s\n",
			theme.Path.Render(m.Path),
			theme.LineNo.Render(fmt.Sprint(m.LineNumber)),
			Preview(m))
		if err != nil {
			return err
		}
	}
	return nil
}

// Summary returns the status line shown after a search.
func Summary(result *search.Result, showSkipped bool) string {
	noun := "matches"
	if len(result.Matches) == 1 {
		noun = "match"
	}
	s := fmt.Sprintf("%d %s in %d files", len(result.Matches), noun, result.FilesScanned)
	if showSkipped && len(result.Skipped) > 0 {
		s += fmt.Sprintf(" (%d skipped)", len(result.Skipped))
	}
	return s
}

// Lines writes numbered lines. The line numbered target (1-based) is marked
// and styled; target <= 0 marks nothing.
func Lines(w io.Writer, lines []string, firstLine, target int, theme Theme) error {
	width := len(fmt.Sprint(firstLine + len(lines) - 1))
	for i, line := range lines {
		n := firstLine + i
		marker := " "
		text := line
		if n == target {
			marker = ">"
			text = theme.Current.Render(line)
		}
		_, err := fmt.Fprintf(w, "%s %s  %s\n", marker, theme.LineNo.Render(fmt.Sprintf("%*d", width, n)), text)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, theme Theme, n int, sep, text string) error {
	_, err := fmt.Fprintf(w, "  %s%s %s\n", theme.LineNo.Render(fmt.Sprint(n)), sep, text)
	return err
}
