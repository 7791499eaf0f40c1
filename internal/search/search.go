package search

import (
	"strings"

	"github.com/spf13/afero"
)

// Searcher runs find-in-files queries against a filesystem.
type Searcher struct {
	fs       afero.Fs
	reporter ProgressReporter
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithFs sets the filesystem to search. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *Searcher) {
		s.fs = fsys
	}
}

// WithProgressReporter sets the reporter notified as files are scanned.
func WithProgressReporter(reporter ProgressReporter) Option {
	return func(s *Searcher) {
		s.reporter = reporter
	}
}

// NewSearcher creates a Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		fs:       afero.NewOsFs(),
		reporter: &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs q under root on the OS filesystem and returns the matches.
// Files that cannot be read are skipped without being reported.
func Search(root string, q Query) ([]Match, error) {
	result, err := NewSearcher().Run(root, q)
	if err != nil {
		return nil, err
	}
	return result.Matches, nil
}

// Run executes q under root. A missing root returns *NotFoundError and is
// checked first. Pattern and ignore-glob errors are returned before any file
// is opened. Per-file read failures are collected in Result.Skipped rather
// than aborting the search. Files appear in walker order, matches within a file
// in ascending line order.
func (s *Searcher) Run(root string, q Query) (*Result, error) {
	// The root is checked first; the walk itself is lazy, so a bad pattern
	// still fails before any file is opened.
	files, err := Walk(s.fs, root, WalkOptions{
		Recursive:  q.Recursive,
		Extensions: q.Extensions,
		Ignore:     q.Ignore,
	})
	if err != nil {
		return nil, err
	}

	matcher, err := NewMatcher(q.Pattern, q.IsRegex, q.IgnoreCase)
	if err != nil {
		return nil, err
	}

	result := &Result{Matches: []Match{}}
	for path := range files {
		lines, err := s.readLines(path)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})
			s.reporter.OnFileSkipped(path, err)
			continue
		}

		found := scanLines(path, lines, matcher, q.ContextLines)
		result.Matches = append(result.Matches, found...)
		result.FilesScanned++
		s.reporter.OnFileScanned(path, len(found))
	}

	s.reporter.OnComplete(result)
	return result, nil
}

// readLines reads the whole file, decodes it with the detected encoding, and
// splits it into lines without terminators.
func (s *Searcher) readLines(path string) ([]string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, DetectBytes(data))
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

func scanLines(path string, lines []string, matcher *Matcher, contextLines int) []Match {
	var found []Match
	for i, line := range lines {
		start, text, ok := matcher.Match(line)
		if !ok {
			continue
		}
		pre, post := ContextWindow(lines, i, contextLines)
		found = append(found, Match{
			Path:        path,
			LineNumber:  i + 1,
			Line:        line,
			MatchedText: text,
			Offset:      start,
			PreContext:  pre,
			PostContext: post,
		})
	}
	return found
}

// SplitLines splits text on "\n", "\r\n" and "\r". A trailing terminator
// does not produce an empty final line, and empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
