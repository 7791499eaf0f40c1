package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/scribe/internal/config"
	"github.com/spf13/cobra"
)

var (
	configDir string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe - find in files from the terminal",
	Long: `Scribe is the command-line core of a minimal text editor.

It searches a directory tree for a substring or regular expression,
opens files with automatic UTF-8 / Latin-1 detection, and keeps
editor settings in a per-user JSON file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "settings directory (default is the per-user config dir, or $SCRIBE_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// settingsLoader returns the loader for the --config directory or the default one.
func settingsLoader() (config.Loader, error) {
	dir := configDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate settings directory: %w", err)
		}
	}
	return config.NewLoader(dir), nil
}

// loadSettings loads the user's settings.
func loadSettings() (*config.Settings, config.Loader, error) {
	loader, err := settingsLoader()
	if err != nil {
		return nil, nil, err
	}
	settings, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, loader, nil
}
