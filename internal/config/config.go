// Package config provides user settings for scribe.
//
// Settings are stored as JSON in a per-user directory:
//
//   - Windows: %APPDATA%\Scribe\settings.json
//   - Others:  ~/.config/scribe/settings.json
//
// The directory can be overridden with SCRIBE_CONFIG_DIR or the --config flag.
//
// Loading priority (highest to lowest):
//  1. Environment variables (SCRIBE_*)
//  2. settings.json
//  3. Built-in defaults
//
// Keys missing from the file keep their default values, so older settings
// files keep working when new keys are added.
package config

import "slices"

// MaxRecentFiles is the number of entries kept in Settings.RecentFiles.
const MaxRecentFiles = 10

// Settings holds the user's editor and search preferences.
type Settings struct {
	Theme            string         `json:"theme" mapstructure:"theme"`                         // "light" or "dark"
	Autosave         bool           `json:"autosave" mapstructure:"autosave"`                   // save documents periodically
	AutosaveInterval int            `json:"autosave_interval" mapstructure:"autosave_interval"` // seconds
	TabSize          int            `json:"tab_size" mapstructure:"tab_size"`
	FontFamily       string         `json:"font_family" mapstructure:"font_family"`
	FontSize         int            `json:"font_size" mapstructure:"font_size"`
	RecentFiles      []string       `json:"recent_files" mapstructure:"recent_files"` // most recent first
	Search           SearchSettings `json:"search" mapstructure:"search"`
}

// SearchSettings holds the defaults for find-in-files.
type SearchSettings struct {
	ContextLines int      `json:"context_lines" mapstructure:"context_lines"`
	IgnoreCase   bool     `json:"ignore_case" mapstructure:"ignore_case"`
	Regex        bool     `json:"regex" mapstructure:"regex"`
	Recursive    bool     `json:"recursive" mapstructure:"recursive"`
	Extensions   []string `json:"extensions" mapstructure:"extensions"` // e.g. [".py", ".md"]; empty searches all files
	Ignore       []string `json:"ignore" mapstructure:"ignore"`         // glob patterns relative to the search root
}

// Default returns settings with the built-in defaults.
func Default() *Settings {
	return &Settings{
		Theme:            "light",
		Autosave:         false,
		AutosaveInterval: 300,
		TabSize:          4,
		FontFamily:       "Courier New",
		FontSize:         12,
		RecentFiles:      []string{},
		Search: SearchSettings{
			ContextLines: 1,
			IgnoreCase:   true,
			Regex:        false,
			Recursive:    true,
			Extensions:   []string{},
			Ignore:       []string{".git/**"},
		},
	}
}

// AddRecentFile moves path to the front of RecentFiles, removing any earlier
// entry for it and trimming the list to MaxRecentFiles.
func (s *Settings) AddRecentFile(path string) {
	recent := slices.DeleteFunc(slices.Clone(s.RecentFiles), func(p string) bool {
		return p == path
	})
	recent = append([]string{path}, recent...)
	if len(recent) > MaxRecentFiles {
		recent = recent[:MaxRecentFiles]
	}
	s.RecentFiles = recent
}
