package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTheme indicates an unsupported color theme
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidFontSize indicates a non-positive font size
	ErrInvalidFontSize = errors.New("invalid font size")

	// ErrInvalidTabSize indicates a non-positive tab size
	ErrInvalidTabSize = errors.New("invalid tab size")

	// ErrInvalidAutosaveInterval indicates a non-positive autosave interval
	ErrInvalidAutosaveInterval = errors.New("invalid autosave interval")

	// ErrInvalidContextLines indicates a negative search context window
	ErrInvalidContextLines = errors.New("invalid context lines")

	// ErrInvalidExtension indicates a search extension without its leading dot
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrUnknownSetting indicates a key that does not exist
	ErrUnknownSetting = errors.New("unknown setting")
)

// Themes lists the supported color themes.
var Themes = []string{"light", "dark"}

// Validate checks that the settings are valid and complete.
func Validate(s *Settings) error {
	var errs []error

	theme := strings.ToLower(s.Theme)
	if theme != "light" && theme != "dark" {
		errs = append(errs, fmt.Errorf("%w: must be 'light' or 'dark', got '%s'", ErrInvalidTheme, s.Theme))
	}

	if s.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: font_size must be positive, got %d", ErrInvalidFontSize, s.FontSize))
	}

	if s.TabSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: tab_size must be positive, got %d", ErrInvalidTabSize, s.TabSize))
	}

	if s.AutosaveInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: autosave_interval must be positive, got %d", ErrInvalidAutosaveInterval, s.AutosaveInterval))
	}

	if err := validateSearch(&s.Search); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateSearch(s *SearchSettings) error {
	var errs []error

	if s.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("%w: search.context_lines cannot be negative, got %d", ErrInvalidContextLines, s.ContextLines))
	}

	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("%w: %q must start with '.'", ErrInvalidExtension, ext))
		}
	}

	return errors.Join(errs...)
}
