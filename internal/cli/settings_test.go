package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/mvp-joe/scribe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Settings Command:
// - show prints every setting as JSON, defaults when no file exists
// - show KEY prints a single value; unknown keys are rejected
// - set validates, persists and echoes the new value
// - reset writes the defaults back to disk
// - the settings subcommands are registered

func TestExecuteSettingsShow(t *testing.T) {
	t.Parallel()

	loader := config.NewLoader(t.TempDir())

	var out bytes.Buffer
	require.NoError(t, executeSettingsShow(loader, "", &out))
	var shown config.Settings
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, *config.Default(), shown)

	out.Reset()
	require.NoError(t, executeSettingsShow(loader, "theme", &out))
	assert.Equal(t, "light\n", out.String())

	out.Reset()
	require.NoError(t, executeSettingsShow(loader, "search.context_lines", &out))
	assert.Equal(t, "1\n", out.String())

	err := executeSettingsShow(loader, "nope", &out)
	assert.ErrorIs(t, err, config.ErrUnknownSetting)
}

func TestExecuteSettingsSet(t *testing.T) {
	t.Parallel()

	loader := config.NewLoader(t.TempDir())

	var out bytes.Buffer
	require.NoError(t, executeSettingsSet(loader, "theme", "dark", &out))
	assert.Equal(t, "✓ theme = dark\n", out.String())

	require.NoError(t, executeSettingsSet(loader, "search.extensions", ".py, .md", &out))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Theme)
	assert.Equal(t, []string{".py", ".md"}, loaded.Search.Extensions)

	err = executeSettingsSet(loader, "font_size", "0", &out)
	assert.ErrorIs(t, err, config.ErrInvalidFontSize)
	err = executeSettingsSet(loader, "colour", "red", &out)
	assert.ErrorIs(t, err, config.ErrUnknownSetting)
}

func TestExecuteSettingsReset(t *testing.T) {
	t.Parallel()

	loader := config.NewLoader(t.TempDir())
	require.NoError(t, executeSettingsSet(loader, "tab_size", "8", &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, executeSettingsReset(loader, &out))
	assert.Contains(t, out.String(), "Settings reset to defaults")

	_, err := os.Stat(loader.Path())
	require.NoError(t, err)

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.TabSize)
}

func TestSettingsCmd_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := newSettingsCmd()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "path", "set", "reset"}, names)
}
