package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/mvp-joe/scribe/internal/config"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change editor and search settings",
		Long: `View and change the settings stored in settings.json.

Keys: ` + strings.Join(config.Keys(), ", ") + `

List values (recent_files, search.extensions, search.ignore) are comma
separated. Environment variables such as SCRIBE_THEME override the file.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show [KEY]",
			Short: "Print all settings as JSON, or the value of one key",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := settingsLoader()
				if err != nil {
					return err
				}
				key := ""
				if len(args) == 1 {
					key = args[0]
				}
				return executeSettingsShow(loader, key, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := settingsLoader()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := settingsLoader()
				if err != nil {
					return err
				}
				return executeSettingsSet(loader, args[0], args[1], cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := settingsLoader()
				if err != nil {
					return err
				}
				return executeSettingsReset(loader, cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func init() {
	rootCmd.AddCommand(newSettingsCmd())
}

func executeSettingsShow(loader config.Loader, key string, out io.Writer) error {
	settings, err := loader.Load()
	if err != nil {
		return err
	}

	var value any = settings
	if key != "" {
		value, err = settings.Get(key)
		if err != nil {
			return err
		}
	}

	if s, ok := value.(string); ok {
		fmt.Fprintln(out, s)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func executeSettingsSet(loader config.Loader, key, value string, out io.Writer) error {
	settings, err := loader.Load()
	if err != nil {
		return err
	}
	if err := settings.Set(key, value); err != nil {
		return err
	}
	if err := loader.Save(settings); err != nil {
		return err
	}
	for _, overridden := range config.EnvOverrides() {
		if overridden == key {
			log.Printf("Warning: %s is set in the environment and overrides the saved value", config.EnvVar(key))
		}
	}

	current, _ := settings.Get(key)
	fmt.Fprintf(out, "✓ %s = %v\n", key, current)
	return nil
}

func executeSettingsReset(loader config.Loader, out io.Writer) error {
	if err := loader.Save(config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Settings reset to defaults (%s)\n", loader.Path())
	return nil
}
