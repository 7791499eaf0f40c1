package search

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// WalkOptions controls which files Walk yields.
type WalkOptions struct {
	Recursive  bool
	Extensions []string // suffixes including the leading dot, matched case-sensitively
	Ignore     []string // globs relative to the root, '/' separated
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern  string
	glob     glob.Glob
	rootGlob glob.Glob // pattern without its leading "**/", nil otherwise
}

var errStopWalk = errors.New("walk stopped by consumer")

// Walk enumerates the regular files under root. The root is checked eagerly:
// a missing root returns *NotFoundError before any sequence is produced.
// The returned sequence is lazy, visits every path at most once, and silently
// skips directories it cannot read. Order follows directory listing order and
// callers must not rely on it.
func Walk(fsys afero.Fs, root string, opts WalkOptions) (iter.Seq[string], error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, &NotFoundError{Root: root}
	}

	ignore, err := compileIgnorePatterns(opts.Ignore)
	if err != nil {
		return nil, err
	}

	w := &walker{
		fsys:       fsys,
		root:       root,
		extensions: extensionSet(opts.Extensions),
		ignore:     ignore,
	}

	if !info.IsDir() {
		return func(yield func(string) bool) {}, nil
	}
	if opts.Recursive {
		return w.walkTree, nil
	}
	return w.walkChildren, nil
}

type walker struct {
	fsys       afero.Fs
	root       string
	extensions map[string]bool
	ignore     []compiledPattern
}

// walkTree yields every accepted file in the tree rooted at w.root. A root
// that is a symlink to a directory is descended; yielded paths stay under
// w.root as given.
func (w *walker) walkTree(yield func(string) bool) {
	walkRoot := w.resolveRoot()
	_ = afero.Walk(w.fsys, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			// Unreadable entries are skipped, the rest of the tree is still visited.
			return nil
		}
		if walkRoot != w.root {
			rel, relErr := filepath.Rel(walkRoot, path)
			if relErr != nil {
				return nil
			}
			path = filepath.Join(w.root, rel)
		}

		if info.IsDir() {
			if path != w.root && w.shouldIgnore(w.relative(path), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.accept(path, info) {
			return nil
		}
		if !yield(path) {
			return errStopWalk
		}
		return nil
	})
}

// maxLinkHops bounds symlink resolution of the root.
const maxLinkHops = 40

// resolveRoot follows symlinks at w.root so afero.Walk, which does not
// follow its starting point, sees a directory. Filesystems without symlink
// support return w.root unchanged.
func (w *walker) resolveRoot() string {
	lstater, ok := w.fsys.(afero.Lstater)
	if !ok {
		return w.root
	}
	reader, ok := w.fsys.(afero.LinkReader)
	if !ok {
		return w.root
	}

	current := w.root
	for i := 0; i < maxLinkHops; i++ {
		info, lstatCalled, err := lstater.LstatIfPossible(current)
		if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return current
		}
		target, err := reader.ReadlinkIfPossible(current)
		if err != nil {
			return w.root
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = target
	}
	return w.root
}

// walkChildren yields the accepted direct children of w.root.
func (w *walker) walkChildren(yield func(string) bool) {
	entries, err := afero.ReadDir(w.fsys, w.root)
	if err != nil {
		return
	}
	for _, info := range entries {
		path := filepath.Join(w.root, info.Name())
		if info.IsDir() || !w.accept(path, info) {
			continue
		}
		if !yield(path) {
			return
		}
	}
}

// accept applies the regular-file, extension, and ignore filters.
func (w *walker) accept(path string, info os.FileInfo) bool {
	if !w.isRegular(path, info) {
		return false
	}
	if len(w.extensions) > 0 && !w.extensions[fileSuffix(info.Name())] {
		return false
	}
	return !w.shouldIgnore(w.relative(path), false)
}

// isRegular reports whether path is a regular file, following symlinks.
func (w *walker) isRegular(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := w.fsys.Stat(path)
		return err == nil && target.Mode().IsRegular()
	}
	return info.Mode().IsRegular()
}

func (w *walker) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (w *walker) shouldIgnore(relPath string, isDir bool) bool {
	if len(w.ignore) == 0 {
		return false
	}
	if matchesAnyPattern(relPath, w.ignore) {
		return true
	}
	// "node_modules" should match pattern "node_modules/**"
	return isDir && matchesAnyPattern(relPath+"/**", w.ignore)
}

// IgnoreFilter compiles ignore globs into a predicate over paths under root.
// The predicate reports false for paths Walk would skip because of patterns.
func IgnoreFilter(root string, patterns []string) (func(path string) bool, error) {
	ignore, err := compileIgnorePatterns(patterns)
	if err != nil {
		return nil, err
	}
	w := &walker{root: root, ignore: ignore}
	return func(path string) bool {
		if path == root {
			return true
		}
		return !w.shouldIgnore(w.relative(path), true)
	}, nil
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		// "**/x" should also match "x" at the root.
		if cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}

func compileIgnorePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if strings.HasPrefix(pattern, "**/") {
			if rg, err := glob.Compile(strings.TrimPrefix(pattern, "**/"), '/'); err == nil {
				cp.rootGlob = rg
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

func extensionSet(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

// fileSuffix returns the final ".ext" of name. Dotfiles such as ".bashrc"
// and names ending in a bare dot have no suffix.
func fileSuffix(name string) string {
	ext := filepath.Ext(name)
	if ext == name || ext == "." {
		return ""
	}
	return ext
}
