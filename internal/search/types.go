// Package search implements "find in files": it walks a directory tree,
// detects each file's encoding, scans every line for a literal or regular
// expression pattern, and returns the hits with surrounding context lines.
//
// The search is synchronous. Callers that need responsiveness run it on
// their own goroutine; the package keeps no state between searches.
package search

import "strings"

// Query describes a single find-in-files invocation.
type Query struct {
	Pattern      string   // literal text or regular expression; callers reject empty patterns
	IsRegex      bool     // treat Pattern as a regular expression
	IgnoreCase   bool     // case-insensitive matching
	Extensions   []string // file suffixes including the leading dot; empty means all files
	Recursive    bool     // descend into subdirectories
	ContextLines int      // lines of context before and after each match
	Ignore       []string // glob patterns (relative to root) of paths to skip
}

// Match is one line-level hit.
type Match struct {
	Path        string   `json:"path"`
	LineNumber  int      `json:"line_no"` // 1-based
	Line        string   `json:"line"`    // line terminator stripped
	MatchedText string   `json:"match"`   // exact text that matched, original casing
	Offset      int      `json:"offset"`  // byte offset of MatchedText within Line
	PreContext  []string `json:"pre_context"`
	PostContext []string `json:"post_context"`
}

// SkippedFile records a file that could not be read during a search.
type SkippedFile struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Result is the full outcome of Searcher.Run.
type Result struct {
	Matches      []Match       `json:"matches"`
	FilesScanned int           `json:"files_scanned"`
	Skipped      []SkippedFile `json:"skipped,omitempty"`
}

// NormalizeExtensions trims each suffix and adds a missing leading dot, so
// "py" and ".py" select the same files. Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
