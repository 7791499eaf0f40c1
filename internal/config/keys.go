package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Keys returns every settable key in dotted form.
func Keys() []string {
	keys := make([]string, 0, 16)
	for key := range flatten(Default()) {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// flatten maps dotted keys to values.
func flatten(s *Settings) map[string]any {
	return map[string]any{
		"theme":                s.Theme,
		"autosave":             s.Autosave,
		"autosave_interval":    s.AutosaveInterval,
		"tab_size":             s.TabSize,
		"font_family":          s.FontFamily,
		"font_size":            s.FontSize,
		"recent_files":         s.RecentFiles,
		"search.context_lines": s.Search.ContextLines,
		"search.ignore_case":   s.Search.IgnoreCase,
		"search.regex":         s.Search.Regex,
		"search.recursive":     s.Search.Recursive,
		"search.extensions":    s.Search.Extensions,
		"search.ignore":        s.Search.Ignore,
	}
}

// Get returns the value stored under key.
func (s *Settings) Get(key string) (any, error) {
	value, ok := flatten(s)[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return value, nil
}

// Set parses value for key and stores it. List values are comma separated.
// The result is validated; on error s is left unchanged.
func (s *Settings) Set(key, value string) error {
	next := *s
	next.RecentFiles = slices.Clone(s.RecentFiles)
	next.Search.Extensions = slices.Clone(s.Search.Extensions)
	next.Search.Ignore = slices.Clone(s.Search.Ignore)

	var err error
	switch key {
	case "theme":
		next.Theme = strings.ToLower(strings.TrimSpace(value))
	case "autosave":
		next.Autosave, err = cast.ToBoolE(value)
	case "autosave_interval":
		next.AutosaveInterval, err = cast.ToIntE(value)
	case "tab_size":
		next.TabSize, err = cast.ToIntE(value)
	case "font_family":
		next.FontFamily = value
	case "font_size":
		next.FontSize, err = cast.ToIntE(value)
	case "recent_files":
		next.RecentFiles = SplitList(value)
	case "search.context_lines":
		next.Search.ContextLines, err = cast.ToIntE(value)
	case "search.ignore_case":
		next.Search.IgnoreCase, err = cast.ToBoolE(value)
	case "search.regex":
		next.Search.Regex, err = cast.ToBoolE(value)
	case "search.recursive":
		next.Search.Recursive, err = cast.ToBoolE(value)
	case "search.extensions":
		next.Search.Extensions = SplitList(value)
	case "search.ignore":
		next.Search.Ignore = SplitList(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := Validate(&next); err != nil {
		return err
	}
	*s = next
	return nil
}

// SplitList splits a comma separated list, trimming blanks and dropping
// empty entries (".py, .md," -> [".py", ".md"]).
func SplitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
