// Package document loads and saves text files for editing.
//
// Files are decoded with the same UTF-8 / Latin-1 detection the search uses,
// with undecodable bytes replaced, and are always written back as UTF-8.
package document

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/scribe/internal/search"
	"github.com/spf13/afero"
)

// ErrLineOutOfRange indicates a line number outside 1..LineCount.
var ErrLineOutOfRange = errors.New("line number out of range")

// ErrNoPath indicates Save was called on a document that was never given a path.
var ErrNoPath = errors.New("document has no path")

// Document is an in-memory text file.
type Document struct {
	fs       afero.Fs
	path     string
	encoding search.Encoding
	text     string
	modified bool
}

// Stats summarises a document's content.
type Stats struct {
	Lines    int             `json:"lines"`
	Words    int             `json:"words"`
	Chars    int             `json:"chars"`
	Encoding search.Encoding `json:"encoding"`
}

// New returns an empty, unsaved document.
func New(fsys afero.Fs) *Document {
	return &Document{fs: fsys, encoding: search.EncodingUTF8}
}

// Open reads path, detecting its encoding.
func Open(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	enc := search.DetectBytes(data)
	text, err := search.Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", path, enc, err)
	}

	return &Document{
		fs:       fsys,
		path:     path,
		encoding: enc,
		text:     text,
	}, nil
}

func (d *Document) Path() string              { return d.path }
func (d *Document) Encoding() search.Encoding { return d.encoding }
func (d *Document) Text() string              { return d.text }
func (d *Document) Modified() bool            { return d.modified }

// SetText replaces the content and marks the document modified.
func (d *Document) SetText(text string) {
	if text == d.text {
		return
	}
	d.text = text
	d.modified = true
}

// Lines returns the content split into lines without terminators.
func (d *Document) Lines() []string {
	return search.SplitLines(d.text)
}

// LineCount is the number of lines; an empty document has one (empty) line.
func (d *Document) LineCount() int {
	return max(1, len(d.Lines()))
}

// GoToLine validates a 1-based line number and returns that line.
func (d *Document) GoToLine(n int) (string, error) {
	count := d.LineCount()
	if n < 1 || n > count {
		return "", fmt.Errorf("%w: line number must be between 1 and %d, got %d", ErrLineOutOfRange, count, n)
	}
	lines := d.Lines()
	if len(lines) == 0 {
		return "", nil
	}
	return lines[n-1], nil
}

// Save writes the document to its current path as UTF-8.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path as UTF-8 and adopts path as its location.
func (d *Document) SaveAs(path string) error {
	if err := afero.WriteFile(d.fs, path, []byte(d.text), 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	d.path = path
	d.encoding = search.EncodingUTF8
	d.modified = false
	return nil
}

// Stats counts lines, whitespace separated words, and characters. Trailing
// newlines are not counted as characters.
func (d *Document) Stats() Stats {
	return Stats{
		Lines:    len(d.Lines()),
		Words:    CountWords(d.text),
		Chars:    CountChars(d.text),
		Encoding: d.encoding,
	}
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountChars returns the number of characters in text, excluding trailing newlines.
func CountChars(text string) int {
	return utf8.RuneCountInString(strings.TrimRight(text, "\n"))
}

// Exists reports whether path names an existing file.
func Exists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
