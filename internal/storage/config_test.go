package storage_test

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	"github.com/nikbrunner/bookit/internal/storage"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BOOKIT_EDIT_COMMAND", "BOOKIT_LOG_LEVEL", "BOOKIT_SUGGESTIONS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := storage.LoadSettings(fs.NewDir(t, "bookit").Join("missing.yaml"))
	assert.NilError(t, err)
	assert.DeepEqual(t, *s, storage.DefaultSettings())
	assert.Equal(t, s.Suggestions, 0)
}

func TestLoadSettings_File(t *testing.T) {
	clearSettingsEnv(t)
	f := fs.NewFile(t, "settings", fs.WithContent(`edit_command: code --wait "$BOOKIT_CONFIG_PATH"
log_level: debug
suggestions: 5
`))

	s, err := storage.LoadSettings(f.Path())
	assert.NilError(t, err)
	assert.Equal(t, s.EditCommand, `code --wait "$BOOKIT_CONFIG_PATH"`)
	assert.Equal(t, s.LogLevel, "debug")
	assert.Equal(t, s.Suggestions, 5)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	clearSettingsEnv(t)
	f := fs.NewFile(t, "settings", fs.WithContent("log_level: debug\nsuggestions: 5\n"))
	t.Setenv("BOOKIT_LOG_LEVEL", "warn")
	t.Setenv("BOOKIT_EDIT_COMMAND", "nano $BOOKIT_CONFIG_PATH")

	s, err := storage.LoadSettings(f.Path())
	assert.NilError(t, err)
	assert.Equal(t, s.LogLevel, "warn")
	assert.Equal(t, s.EditCommand, "nano $BOOKIT_CONFIG_PATH")
	assert.Equal(t, s.Suggestions, 5)
}

func TestLoadSettings_EmptyValuesFallBack(t *testing.T) {
	clearSettingsEnv(t)
	f := fs.NewFile(t, "settings", fs.WithContent("edit_command: \"  \"\nlog_level: \"\"\n"))

	s, err := storage.LoadSettings(f.Path())
	assert.NilError(t, err)
	assert.Equal(t, s.EditCommand, storage.DefaultEditCommand)
	assert.Equal(t, s.LogLevel, "error")
}

func TestLoadSettings_InvalidFile(t *testing.T) {
	clearSettingsEnv(t)
	f := fs.NewFile(t, "settings", fs.WithContent("log_level: [unclosed\n"))

	_, err := storage.LoadSettings(f.Path())
	assert.ErrorContains(t, err, "load settings file")
}
