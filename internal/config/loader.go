package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	settingsName = "settings"
	settingsType = "json"
	envPrefix    = "SCRIBE"
)

// Loader loads and saves settings.
type Loader interface {
	// Load returns defaults merged with the settings file and environment.
	Load() (*Settings, error)

	// Save writes the settings file, creating its directory if needed.
	Save(s *Settings) error

	// Path returns the settings file location.
	Path() string
}

type loader struct {
	dir string
}

// NewLoader creates a settings loader rooted at dir.
func NewLoader(dir string) Loader {
	return &loader{
		dir: dir,
	}
}

// DefaultDir returns the per-user settings directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(envPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "Scribe"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "scribe"), nil
}

func (l *loader) Path() string {
	return filepath.Join(l.dir, settingsName+"."+settingsType)
}

// Load loads settings with the following priority (highest to lowest):
// 1. Environment variables (SCRIBE_*)
// 2. settings.json
// 3. Default values
//
// A settings file that cannot be parsed is ignored with a warning and the
// defaults are used instead, so a damaged file never blocks startup.
func (l *loader) Load() (*Settings, error) {
	return l.load(true, true)
}

// load reads defaults and the settings file, plus the environment when
// withEnv is set.
func (l *loader) load(withEnv, warn bool) (*Settings, error) {
	v := newViper(withEnv)
	v.SetConfigName(settingsName)
	v.SetConfigType(settingsType)
	v.AddConfigPath(l.dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if warn {
				log.Printf("Warning: failed to read settings %s: %v (using defaults)", l.Path(), err)
			}
			v = newViper(withEnv)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	normalize(s)

	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

// Save writes s as indented JSON. Keys currently overridden by SCRIBE_*
// environment variables keep the value already stored in the file, so a
// one-off override is never persisted.
func (l *loader) Save(s *Settings) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	values := flatten(s)
	if overridden := EnvOverrides(); len(overridden) > 0 {
		stored, err := l.load(false, false)
		if err != nil {
			stored = Default()
		}
		storedValues := flatten(stored)
		for _, key := range overridden {
			values[key] = storedValues[key]
		}
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// EnvOverrides returns the keys currently set through the environment.
func EnvOverrides() []string {
	var keys []string
	for _, key := range Keys() {
		if _, ok := os.LookupEnv(EnvVar(key)); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// newViper returns a viper instance carrying defaults, and env bindings
// when withEnv is set.
func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	if !withEnv {
		return v
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SCRIBE_SEARCH_CONTEXT_LINES)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range Keys() {
		v.BindEnv(key)
	}
	return v
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	for key, value := range flatten(Default()) {
		v.SetDefault(key, value)
	}
}

// normalize replaces nil lists with empty ones so JSON output stays stable.
func normalize(s *Settings) {
	if s.RecentFiles == nil {
		s.RecentFiles = []string{}
	}
	if s.Search.Extensions == nil {
		s.Search.Extensions = []string{}
	}
	if s.Search.Ignore == nil {
		s.Search.Ignore = []string{}
	}
}

// LoadSettings is a convenience function that loads settings from DefaultDir.
func LoadSettings() (*Settings, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewLoader(dir).Load()
}
